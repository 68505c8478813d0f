package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-web/internal/application/audit"
	"github.com/tu-usuario/almacen-web/internal/application/auth"
	"github.com/tu-usuario/almacen-web/internal/application/ledger"
	"github.com/tu-usuario/almacen-web/internal/application/orderlist"
	"github.com/tu-usuario/almacen-web/internal/application/report"
	"github.com/tu-usuario/almacen-web/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC    *ledger.UseCase
	AuditUC     *audit.UseCase
	AuthUC      *auth.UseCase
	OrderList   *orderlist.Service
	ReportUC    *report.UseCase
	SessionConf config.SessionConfig
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	secret := deps.SessionConf.Secret
	cookie := deps.SessionConf.CookieName

	// Auth (público; con sesión válida redirige al dashboard)
	authHandler := NewAuthHandler(deps.AuthUC, cookie, deps.SessionConf.Expiration)
	public := app.Group("/", RedirectIfAuthenticated(secret, cookie))
	public.Get("/login", authHandler.LoginPage)
	public.Post("/login", authHandler.Login)
	public.Get("/register", authHandler.RegisterPage)
	public.Post("/register", authHandler.Register)

	app.Get("/logout", authHandler.Logout)

	// Rutas protegidas (requieren cookie de sesión)
	protected := app.Group("/", SessionMiddleware(secret, cookie))

	protected.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard", fiber.StatusFound)
	})

	dashboardHandler := NewDashboardHandler(deps.LedgerUC)
	protected.Get("/dashboard", dashboardHandler.Index)

	// Inventario (páginas completas y fragmentos de fila)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.AuditUC)
	protected.Get("/inventory", inventoryHandler.Index)
	protected.Get("/products/new", inventoryHandler.NewProductPage)
	protected.Post("/products", inventoryHandler.CreateProduct)
	protected.Post("/movements", inventoryHandler.ApplyMovement)
	protected.Post("/movements/target", inventoryHandler.RowTarget)
	protected.Post("/products/rename", inventoryHandler.Rename)
	protected.Post("/products/:id/delete", inventoryHandler.Delete)

	// Lista de pedidos
	orderHandler := NewOrderListHandler(deps.OrderList, deps.LedgerUC)
	protected.Get("/orders", orderHandler.Index)
	protected.Post("/orders/items", orderHandler.Add)
	protected.Post("/orders/clear", orderHandler.Clear)

	// Reportes y exportaciones
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports", reportHandler.Menu)
	protected.Get("/reports/:kind", reportHandler.View)
	protected.Post("/reports/:kind", reportHandler.View)
	protected.Get("/exports/:kind/:format", reportHandler.Export)

	// Historial de ediciones
	historyHandler := NewHistoryHandler(deps.AuditUC)
	protected.Get("/history", historyHandler.Index)
}
