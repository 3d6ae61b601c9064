package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/credsim/bandeiras-api/internal/application/auth"
	"github.com/credsim/bandeiras-api/internal/application/catalog"
	"github.com/credsim/bandeiras-api/internal/application/enrollment"
	"github.com/credsim/bandeiras-api/internal/application/reporting"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/infrastructure/cache"
	"github.com/credsim/bandeiras-api/pkg/config"
	"github.com/credsim/bandeiras-api/pkg/jwt"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	PlanUC       *catalog.PlanUseCase
	FlagUC       *catalog.FlagUseCase
	EnrollmentUC *enrollment.UseCase
	ReportUC     *reporting.UseCase
	Tokens       *jwt.Manager
	Limiter      *cache.Limiter
	RateLimit    config.RateLimitConfig
	Upload       config.UploadConfig
	Responder    *Responder
	Log          zerolog.Logger
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	resp := deps.Responder

	general := RateLimit(deps.Limiter, deps.Log, "general",
		deps.RateLimit.GeneralMax, time.Duration(deps.RateLimit.GeneralWindowMin)*time.Minute)
	strict := RateLimit(deps.Limiter, deps.Log, "strict",
		deps.RateLimit.StrictMax, time.Duration(deps.RateLimit.StrictWindowMin)*time.Minute)

	api := app.Group("/api", general)

	// Auth (login público; o resto exige Bearer Token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, resp)
	authGroup.Post("/login", authHandler.Login)

	// Consulta pública de status (sem token, janela restrita)
	public := api.Group("/public")
	publicHandler := NewPublicHandler(deps.EnrollmentUC, resp)
	public.Get("/check-status", strict, publicHandler.CheckStatus)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))

	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/register", adminOnly, authHandler.Register)
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/profile", authHandler.UpdateProfile)
	protected.Get("/auth/users", adminOnly, authHandler.ListUsers)
	protected.Put("/auth/users/:id", adminOnly, authHandler.UpdateUser)

	// Plans (catálogo: leitura para todos, escrita admin)
	plans := protected.Group("/plans")
	planHandler := NewPlanHandler(deps.PlanUC, resp)
	plans.Get("/", planHandler.List)
	plans.Get("/:id", planHandler.Get)
	plans.Post("/", adminOnly, planHandler.Create)
	plans.Put("/:id", adminOnly, planHandler.Update)
	plans.Delete("/:id", adminOnly, planHandler.Delete)

	// Flags (catálogo: leitura para todos, escrita admin)
	flags := protected.Group("/flags")
	flagHandler := NewFlagHandler(deps.FlagUC, resp)
	flags.Get("/", flagHandler.List)
	flags.Get("/:id", flagHandler.Get)
	flags.Post("/", adminOnly, flagHandler.Create)
	flags.Put("/:id", adminOnly, flagHandler.Update)
	flags.Delete("/:id", adminOnly, flagHandler.Delete)

	// Clients (credenciamento)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.EnrollmentUC, resp, deps.Upload.MaxFileSizeBytes())
	clients.Post("/", RequireRole(entity.RoleUser, entity.RoleAdmin), strict, clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Put("/:id/documents", clientHandler.UpdateDocuments)
	clients.Delete("/:id", adminOnly, clientHandler.Delete)
	clients.Patch("/:clientId/flags/:flagId/status", clientHandler.UpdateFlagStatus)

	// Reports (agregados admin; parceiro consulta o próprio)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, resp)
	reports.Get("/daily", adminOnly, reportHandler.Daily)
	reports.Get("/monthly", adminOnly, reportHandler.Monthly)
	reports.Get("/monthly/pdf", adminOnly, reportHandler.MonthlyPDF)
	reports.Get("/yearly", adminOnly, reportHandler.Yearly)
	reports.Get("/partner/:partnerId", RequireRole(entity.RoleAdmin, entity.RolePartner), reportHandler.Partner)
}
