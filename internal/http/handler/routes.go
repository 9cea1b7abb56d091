package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"vaultapi/internal/http/middleware"
	"vaultapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business logic lives in the injected services.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	verifier middleware.Verifier,
	authSvc service.AuthService,
	vaultSvc service.VaultService,
	outreachSvc service.OutreachService,
) {
	// Health endpoints: readiness checks DB connectivity, liveness is static.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", Register(authSvc))
	authGroup.Post("/login", Login(authSvc))
	authGroup.Post("/verify-email", VerifyEmail(authSvc))
	authGroup.Post("/reset-password", ResetPassword(authSvc))

	protected := middleware.RequireAuth(verifier)
	authGroup.Get("/me", protected, Me(authSvc))
	authGroup.Put("/change-password", protected, ChangePassword(authSvc))
	authGroup.Put("/upgrade-plan", protected, UpgradePlan(authSvc))

	files := api.Group("/files", protected)
	files.Get("/all", ListItems(vaultSvc))
	files.Get("/search", SearchItems(vaultSvc))
	files.Get("/logs", ActivityLogs(vaultSvc))
	files.Post("/create-folder", CreateFolder(vaultSvc))
	files.Post("/upload", UploadFile(vaultSvc))
	files.Put("/move/:id", MoveItem(vaultSvc))
	files.Put("/rename/:id", RenameItem(vaultSvc))
	files.Delete("/:id", DeleteItem(vaultSvc))

	api.Post("/contact/submit", SubmitContact(outreachSvc))
	api.Post("/subscribe", Subscribe(outreachSvc))
}
