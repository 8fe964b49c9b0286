package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/utility-backoffice-api/internal/application/analytics"
	"github.com/jhoicas/utility-backoffice-api/internal/application/auth"
	"github.com/jhoicas/utility-backoffice-api/internal/application/billing"
	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/internal/application/usecase"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/utility-backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/security"
	httpRouter "github.com/jhoicas/utility-backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/utility-backoffice-api/pkg/config"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
	"github.com/jhoicas/utility-backoffice-api/pkg/metrics"
)

// repositories adaptadores de persistencia elegidos por STORAGE_DRIVER.
type repositories struct {
	users     repository.UserRepository
	requests  repository.AccountRequestRepository
	consumers repository.ConsumerRepository
	plans     repository.TariffPlanRepository
	slabs     repository.TariffSlabRepository
	bills     repository.BillRepository
	analytics repository.BillingAnalyticsRepository
	tx        auth.AuthTxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var repos repositories
	switch cfg.App.StorageDriver {
	case "memory":
		store := memory.NewStore()
		repos = repositories{
			users:     store.Users(),
			requests:  store.AccountRequests(),
			consumers: store.Consumers(),
			plans:     store.TariffPlans(),
			slabs:     store.TariffSlabs(),
			bills:     store.Bills(),
			analytics: store.BillingAnalytics(),
			tx:        store,
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = repositories{
			users:     postgres.NewUserRepository(pool),
			requests:  postgres.NewAccountRequestRepository(pool),
			consumers: postgres.NewConsumerRepository(pool),
			plans:     postgres.NewTariffPlanRepository(pool),
			slabs:     postgres.NewTariffSlabRepository(pool),
			bills:     postgres.NewBillRepository(pool),
			analytics: postgres.NewBillingAnalyticsRepository(pool),
			tx:        postgres.NewTxRunner(pool),
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Notificaciones: RabbitMQ si hay URL; si no, solo quedan en el log.
	var publisher ports.NotificationPublisher
	if cfg.Messaging.RabbitURL != "" {
		rabbit, err := messaging.NewRabbitPublisher(cfg.Messaging.RabbitURL, log.Named("rabbitmq"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer func() { _ = rabbit.Close() }()
		publisher = rabbit
	} else {
		log.Warn().Msg("RABBITMQ_URL vacío: las notificaciones solo se registran en el log")
		publisher = messaging.NewLogPublisher(log.Named("notifications"))
	}

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	notifyTimeout := time.Duration(cfg.Auth.NotifyTimeoutSec) * time.Second

	authUC := auth.NewAuthUseCase(repos.users, repos.tx, hasher, publisher, auth.Config{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		ResetTokenTTL: time.Duration(cfg.Auth.ResetTTLMinutes) * time.Minute,
		NotifyTimeout: notifyTimeout,
	}, log.Named("auth"), m)
	accountRequestUC := auth.NewAccountRequestUseCase(
		repos.requests, repos.users, repos.tx, hasher, publisher, notifyTimeout, log.Named("account-requests"), m,
	)
	userUC := usecase.NewUserUseCase(repos.users)
	consumerUC := usecase.NewConsumerUseCase(repos.consumers)
	tariffUC := billing.NewTariffUseCase(repos.plans, repos.slabs)
	billUC := billing.NewBillUseCase(
		repos.bills, repos.consumers, repos.plans, repos.slabs,
		billing.Config{DueDays: cfg.Billing.DueDays}, log.Named("billing"), m,
	)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	billPDFUC := billing.NewPDFUseCase(repos.bills, repos.consumers, repos.plans, pdfGenerator)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.analytics, repos.bills, repos.consumers)

	if b := cfg.Bootstrap; b.AdminUsername != "" {
		created, err := authUC.EnsureAdmin(ctx, b.AdminUsername, b.AdminEmail, b.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("username", b.AdminUsername).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.FiberErrorHandler(log),
	})
	app.Use(httpRouter.RequestLogger(log.Named("http"), m))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Utility Back-Office API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		AccountRequestUC: accountRequestUC,
		UserUC:           userUC,
		ConsumerUC:       consumerUC,
		TariffUC:         tariffUC,
		BillUC:           billUC,
		BillPDF:          billPDFUC,
		DashboardUC:      dashboardUC,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log.Named("http"),
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
