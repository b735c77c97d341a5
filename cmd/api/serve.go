package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	appanalytics "github.com/jhoicas/Clinica-api/internal/application/analytics"
	"github.com/jhoicas/Clinica-api/internal/application/billing"
	"github.com/jhoicas/Clinica-api/internal/application/inventory"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/application/treatment"
	"github.com/jhoicas/Clinica-api/internal/application/usecase"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
	"github.com/jhoicas/Clinica-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Clinica-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Clinica-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Clinica-api/internal/interfaces/http"
	"github.com/jhoicas/Clinica-api/pkg/config"
	"github.com/jhoicas/Clinica-api/pkg/logger"
)

// txRunner lo satisfacen postgres.TxRunner y memory.Store.
type txRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos  repository.Repos
		runner txRunner
		pool   *pgxpool.Pool
	)
	switch cfg.Store.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		repos, runner = store.Repos(), store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err = postgres.NewPool(ctx, cfg.DB, log.Component("db"))
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		repos, runner = postgres.NewRepos(pool), postgres.NewTxRunner(pool)
	}

	zl := log.Zerolog()
	cache := state.New(repos, cfg.State.TTL, zl)

	ledger := inventory.NewRegisterTransactionUseCase(runner, repos.Items, repos.Transactions, cache, zl)
	itemUC := inventory.NewItemUseCase(runner, repos.Items, ledger, cache, cfg.Inventory.ExpiryWarningDays)
	replenishmentUC := inventory.NewReplenishmentUseCase(cache)

	createTreatmentUC := treatment.NewCreateTreatmentUseCase(
		runner, ledger, repos.Patients, cache, cfg.Inventory.DeductOnTreatment, zl,
	)
	treatmentUC := treatment.NewTreatmentUseCase(runner, ledger, repos.Treatments, repos.Patients, cache, zl)

	paymentUC := billing.NewPaymentUseCase(runner, repos.Patients, cache, zl)
	// PDF: comprobante del tratamiento con sus pagos
	receiptUC := billing.NewReceiptUseCase(
		repos.Treatments, repos.Patients, repos.Clinics, repos.Payments,
		infrapdf.NewMarotoReceiptGenerator(), cfg.App.Currency,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Clínica API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver}
		if pool == nil {
			return c.JSON(body)
		}
		stats, err := postgres.Health(c.Context(), pool)
		body["pool"] = stats
		if err != nil {
			log.Error().Err(err).Msg("health: ping a la base de datos")
			body["status"] = "unhealthy"
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		}
		return c.JSON(body)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClinicUC:        usecase.NewClinicUseCase(repos.Clinics, "Clínica"),
		PatientUC:       usecase.NewPatientUseCase(repos.Patients, repos.Treatments, cache),
		ItemUC:          itemUC,
		Ledger:          ledger,
		Replenishment:   replenishmentUC,
		CreateTreatment: createTreatmentUC,
		TreatmentUC:     treatmentUC,
		PaymentUC:       paymentUC,
		ReceiptUC:       receiptUC,
		DashboardUC:     appanalytics.NewDashboardUseCase(cache),
		ReportUC:        appanalytics.NewReportUseCase(cache),
		JWTSecret:       cfg.JWT.Secret,
		Logger:          log.Component("http"),
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
	return nil
}
