package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/analytics"
	"github.com/jhoicas/utility-backoffice-api/internal/application/auth"
	"github.com/jhoicas/utility-backoffice-api/internal/application/billing"
	"github.com/jhoicas/utility-backoffice-api/internal/application/usecase"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	AccountRequestUC *auth.AccountRequestUseCase
	UserUC           *usecase.UserUseCase
	ConsumerUC       *usecase.ConsumerUseCase
	TariffUC         *billing.TariffUseCase
	BillUC           *billing.BillUseCase
	BillPDF          *billing.PDFUseCase
	DashboardUC      *analytics.DashboardUseCase
	JWTSecret        string
	Log              *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	errs := errorHandler{log: log}

	authn := AuthMiddleware(deps.JWTSecret)
	// Autenticado y sin contraseña temporal pendiente.
	secured := []fiber.Handler{authn, RequirePasswordChanged()}
	adminOnly := RequireRole(entity.RoleAdmin)
	backOffice := RequireRole(entity.RoleAdmin, entity.RoleStaff)

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Put("/change-password", authn, authHandler.ChangePassword)
	authGroup.Post("/register", chain(secured, adminOnly, authHandler.Register)...)

	// Users
	userHandler := NewUserHandler(deps.UserUC, errs)
	users := api.Group("/auth/users", secured...)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Account requests
	requestHandler := NewAccountRequestHandler(deps.AccountRequestUC, errs)
	requests := api.Group("/account-requests")
	requests.Post("/", requestHandler.Create)
	requests.Get("/pending", chain(secured, adminOnly, requestHandler.ListPending)...)
	requests.Put("/review", chain(secured, adminOnly, requestHandler.Review)...)

	// Consumers
	consumerHandler := NewConsumerHandler(deps.ConsumerUC, errs)
	consumers := api.Group("/consumers", chain(secured, backOffice)...)
	consumers.Post("/", consumerHandler.Create)
	consumers.Get("/", consumerHandler.List)
	consumers.Get("/:id", consumerHandler.GetByID)
	consumers.Put("/:id", consumerHandler.Update)
	consumers.Put("/:id/deactivate", consumerHandler.Deactivate)

	// Tariffs
	tariffHandler := NewTariffHandler(deps.TariffUC, errs)
	tariffs := api.Group("/tariffs", secured...)
	tariffs.Get("/", tariffHandler.GetTariffs)
	tariffs.Post("/plans", adminOnly, tariffHandler.CreatePlan)
	tariffs.Get("/plans", tariffHandler.GetPlans)
	tariffs.Get("/plans/active", tariffHandler.GetActivePlans)
	tariffs.Put("/plans/:id/deactivate", adminOnly, tariffHandler.DeactivatePlan)
	tariffs.Post("/slabs", adminOnly, tariffHandler.CreateSlab)
	tariffs.Delete("/slabs/:id", adminOnly, tariffHandler.DeleteSlab)

	// Bills
	billHandler := NewBillHandler(deps.BillUC, deps.BillPDF, errs)
	bills := api.Group("/bills", secured...)
	bills.Post("/", backOffice, billHandler.Generate)
	bills.Get("/", backOffice, billHandler.List)
	bills.Get("/consumer/:consumerId", backOffice, billHandler.ListByConsumer)
	bills.Get("/:id", backOffice, billHandler.GetByID)
	bills.Get("/:id/pdf", backOffice, billHandler.DownloadPDF)
	bills.Put("/:id/mark-paid", backOffice, billHandler.MarkPaid)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, errs)
	dashboard := api.Group("/dashboard/billing", chain(secured, backOffice)...)
	dashboard.Get("/bills-summary", dashboardHandler.BillsSummary)
	dashboard.Get("/consumption-summary", dashboardHandler.ConsumptionSummary)
	dashboard.Get("/consumption-average", dashboardHandler.AverageConsumption)
	dashboard.Get("/consumer-summary", dashboardHandler.ConsumerSummary)
	dashboard.Get("/total-billed-monthly", dashboardHandler.TotalBilledMonthly)
	dashboard.Get("/total-billed", dashboardHandler.TotalBilled)
	dashboard.Get("/consumer/:consumerId", dashboardHandler.ConsumerHistory)
}

func chain(base []fiber.Handler, more ...fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(base)+len(more))
	out = append(out, base...)
	return append(out, more...)
}
