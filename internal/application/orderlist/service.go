package orderlist

import (
	"sync"

	"github.com/tu-usuario/almacen-web/internal/domain"
	"github.com/tu-usuario/almacen-web/internal/domain/repository"
)

// Service acumula una lista de pedidos efímera por producto. Vive solo en
// memoria de proceso: se vacía al reiniciar o con Clear. Instancia única
// compartida entre requests, sin aislamiento por usuario.
type Service struct {
	mu          sync.Mutex
	items       map[string]int // productID -> cantidad pedida acumulada
	productRepo repository.ProductRepository
}

// NewService construye la lista de pedidos.
func NewService(productRepo repository.ProductRepository) *Service {
	return &Service{
		items:       make(map[string]int),
		productRepo: productRepo,
	}
}

// Add acumula quantity para el producto (sumas repetidas se agregan).
// Valida que la cantidad sea positiva y que el producto exista.
func (s *Service) Add(productID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	s.mu.Lock()
	s.items[productID] += quantity
	s.mu.Unlock()
	return nil
}

// Clear vacía la lista.
func (s *Service) Clear() {
	s.mu.Lock()
	s.items = make(map[string]int)
	s.mu.Unlock()
}

// Snapshot devuelve una copia del estado actual (productID -> cantidad).
func (s *Service) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.items))
	for id, qty := range s.items {
		out[id] = qty
	}
	return out
}
