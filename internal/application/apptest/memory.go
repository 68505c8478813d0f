// Package apptest provee repositorios en memoria y un TxRunner con semántica
// de rollback para los tests de los casos de uso, sin PostgreSQL.
package apptest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tu-usuario/almacen-web/internal/domain"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
	"github.com/tu-usuario/almacen-web/internal/domain/repository"
)

// MemoryStore estado compartido por los repositorios en memoria.
type MemoryStore struct {
	mu           sync.Mutex
	products     map[string]*entity.Product
	productOrder []string
	movements    []*entity.Movement
	history      []*entity.EditHistoryEntry
	users        map[string]*entity.User
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]*entity.Product),
		users:    make(map[string]*entity.User),
	}
}

// ProductRepo devuelve el repositorio de productos del store.
func (s *MemoryStore) ProductRepo() repository.ProductRepository { return &productRepo{s: s} }

// MovementRepo devuelve el repositorio de movimientos del store.
func (s *MemoryStore) MovementRepo() repository.MovementRepository { return &movementRepo{s: s} }

// HistoryRepo devuelve el repositorio de historial del store.
func (s *MemoryStore) HistoryRepo() repository.EditHistoryRepository { return &historyRepo{s: s} }

// UserRepo devuelve el repositorio de usuarios del store.
func (s *MemoryStore) UserRepo() repository.UserRepository { return &userRepo{s: s} }

// Movements devuelve una copia de todos los movimientos insertados.
func (s *MemoryStore) Movements() []*entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Movement, len(s.movements))
	for i, m := range s.movements {
		c := *m
		out[i] = &c
	}
	return out
}

// HistoryEntries devuelve una copia de todas las entradas de historial.
func (s *MemoryStore) HistoryEntries() []*entity.EditHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.EditHistoryEntry, len(s.history))
	for i, e := range s.history {
		c := *e
		out[i] = &c
	}
	return out
}

// snapshot copia el estado completo para el rollback del TxRunner.
func (s *MemoryStore) snapshot() *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := NewMemoryStore()
	for id, p := range s.products {
		c := *p
		snap.products[id] = &c
	}
	snap.productOrder = append([]string(nil), s.productOrder...)
	for _, m := range s.movements {
		c := *m
		snap.movements = append(snap.movements, &c)
	}
	for _, e := range s.history {
		c := *e
		snap.history = append(snap.history, &c)
	}
	for id, u := range s.users {
		c := *u
		snap.users[id] = &c
	}
	return snap
}

// restore repone el estado desde un snapshot.
func (s *MemoryStore) restore(snap *MemoryStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.productOrder = snap.productOrder
	s.movements = snap.movements
	s.history = snap.history
	s.users = snap.users
}

// TxRunner ejecuta fn sobre el store y revierte todo el estado si fn falla.
type TxRunner struct {
	Store *MemoryStore
}

// Run implementa ledger.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	historyRepo repository.EditHistoryRepository,
) error) error {
	snap := r.Store.snapshot()
	err := fn(r.Store.ProductRepo(), r.Store.MovementRepo(), r.Store.HistoryRepo())
	if err != nil {
		r.Store.restore(snap)
	}
	return err
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productRepo struct{ s *MemoryStore }

func (r *productRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *product
	r.s.products[product.ID] = &c
	r.s.productOrder = append(r.s.productOrder, product.ID)
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) UpdateQuantity(id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *productRepo) UpdateName(id string, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Name = name
	return nil
}

func (r *productRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	for i, pid := range r.s.productOrder {
		if pid == id {
			r.s.productOrder = append(r.s.productOrder[:i], r.s.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *productRepo) ListByName() ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *productRepo) ListByCreation() ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.productOrder))
	for _, id := range r.s.productOrder {
		if p, ok := r.s.products[id]; ok {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

type movementRepo struct{ s *MemoryStore }

func (r *movementRepo) Create(movement *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *movement
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *movementRepo) ListByKind(kind string, from, to *time.Time, asc bool) ([]*entity.MovementReportRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MovementReportRow
	for _, m := range r.s.movements {
		if m.Kind != kind {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !m.CreatedAt.Before(*to) {
			continue
		}
		p, ok := r.s.products[m.ProductID]
		if !ok {
			continue
		}
		c := *m
		out = append(out, &entity.MovementReportRow{Movement: c, ProductName: p.Name})
	}
	sort.Slice(out, func(i, j int) bool {
		if asc {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out, nil
}

func (r *movementRepo) ListByProduct(productID string) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *movementRepo) DeleteByProduct(productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

// ── Historial ─────────────────────────────────────────────────────────────────

type historyRepo struct{ s *MemoryStore }

func (r *historyRepo) Create(entry *entity.EditHistoryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *entry
	r.s.history = append(r.s.history, &c)
	return nil
}

func (r *historyRepo) ListWithUser() ([]*entity.EditHistoryWithUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.EditHistoryWithUser, 0, len(r.s.history))
	for _, e := range r.s.history {
		c := *e
		row := &entity.EditHistoryWithUser{EditHistoryEntry: c}
		if u, ok := r.s.users[e.UserID]; ok {
			row.Username = u.Username
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[j].CreatedAt.Before(out[i].CreatedAt) })
	return out, nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type userRepo struct{ s *MemoryStore }

func (r *userRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *userRepo) GetByUsername(username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}
