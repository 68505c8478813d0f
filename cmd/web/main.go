package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/tu-usuario/almacen-web/internal/application/audit"
	"github.com/tu-usuario/almacen-web/internal/application/auth"
	"github.com/tu-usuario/almacen-web/internal/application/ledger"
	"github.com/tu-usuario/almacen-web/internal/application/orderlist"
	"github.com/tu-usuario/almacen-web/internal/application/report"
	"github.com/tu-usuario/almacen-web/internal/infrastructure/excel"
	infrapdf "github.com/tu-usuario/almacen-web/internal/infrastructure/pdf"
	"github.com/tu-usuario/almacen-web/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-web/internal/interfaces/http"
	"github.com/tu-usuario/almacen-web/pkg/config"
	"github.com/tu-usuario/almacen-web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	historyRepo := postgres.NewEditHistoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, productRepo)
	auditUC := audit.NewUseCase(txRunner, historyRepo, userRepo)
	authUC := auth.NewUseCase(userRepo, auth.SessionConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	})
	orderList := orderlist.NewService(productRepo)

	pdfGen := infrapdf.NewMarotoReportGenerator()
	xlsxGen := excel.NewExcelizeReportGenerator()
	reportUC := report.NewUseCase(movementRepo, pdfGen, xlsxGen)

	// Usuario admin inicial si la base está vacía de usuarios.
	if cfg.App.SeedAdminPassword != "" {
		created, err := authUC.SeedAdmin(cfg.App.SeedAdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("sembrar usuario admin")
		}
		if created {
			log.Warn().Msg("usuario 'admin' creado con la contraseña de SEED_ADMIN_PASSWORD; cámbiela")
		}
	}

	engine := html.New("./web/views", ".html")
	engine.AddFunc("fmtDate", report.FormatDate)
	engine.AddFunc("fmtTime", report.FormatTime)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        engine,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:    ledgerUC,
		AuditUC:     auditUC,
		AuthUC:      authUC,
		OrderList:   orderList,
		ReportUC:    reportUC,
		SessionConf: cfg.Session,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
