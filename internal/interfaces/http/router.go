package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amber-studios/workspace-api/internal/application/auth"
	"github.com/amber-studios/workspace-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	AccountUC  *usecase.AccountUseCase
	UpdateUC   *usecase.UpdateUseCase
	MatrixUC   *usecase.MatrixUseCase
	ExportUC   *usecase.ExportUseCase
	ScheduleUC *usecase.ScheduleUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)

	// Público
	api.Get("/countries", authHandler.Countries)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Cuentas (solo admin)
	accounts := protected.Group("/accounts", RequireAdmin())
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Delete("/:loginId", accountHandler.Delete)
	accounts.Put("/:loginId/password", accountHandler.ResetPassword)

	// Tablón de publicaciones
	updates := protected.Group("/updates")
	updateHandler := NewUpdateHandler(deps.UpdateUC, deps.MatrixUC, deps.ExportUC)
	// Las rutas con nombre fijo van antes que /:id.
	updates.Get("/matrix", updateHandler.Matrix)
	updates.Get("/sm-users", updateHandler.SMUsers)
	updates.Get("/unread", updateHandler.Unread)
	updates.Post("/read-all", updateHandler.MarkAllRead)
	updates.Get("/export.csv", updateHandler.ExportCSV)
	updates.Get("/export.pdf", updateHandler.ExportPDF)
	updates.Post("/", updateHandler.Create)
	updates.Get("/", updateHandler.List)
	updates.Get("/:id", updateHandler.Get)
	updates.Patch("/:id", updateHandler.Edit)
	updates.Delete("/:id", updateHandler.Delete)
	updates.Post("/:id/approve", updateHandler.Approve)
	updates.Post("/:id/archive", updateHandler.Archive)
	updates.Post("/:id/ack", updateHandler.Acknowledge)

	// Calendarios de turnos
	schedules := protected.Group("/schedules")
	scheduleHandler := NewScheduleHandler(deps.ScheduleUC)
	schedules.Get("/:group", scheduleHandler.Get)
}
