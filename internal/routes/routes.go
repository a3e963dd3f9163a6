package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amirsoft21/bementor/internal/handlers"
	"github.com/amirsoft21/bementor/internal/models"
)

// Deps bundles everything the router mounts. Protect resolves the caller
// identity; RequireRole runs after it and never without it.
type Deps struct {
	Auth     *handlers.AuthHandler
	Teachers *handlers.TeacherHandler
	Messages *handlers.MessageHandler
	Bookings *handlers.BookingHandler
	Payments *handlers.PaymentHandler
	Admin    *handlers.AdminHandler

	Protect     fiber.Handler
	RequireRole func(roles ...models.Role) fiber.Handler
	AuthLimiter fiber.Handler // nil unless Redis is configured

	StoreMode string
}

func Register(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "store": d.StoreMode})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	if d.AuthLimiter != nil {
		auth.Use(d.AuthLimiter)
	}
	auth.Post("/register", d.Auth.Register)
	auth.Post("/login", d.Auth.Login)
	auth.Get("/me", d.Protect, d.Auth.Me)
	auth.Post("/logout", d.Protect, d.Auth.Logout)
	auth.Post("/change-password", d.Protect, d.Auth.ChangePassword)

	teachers := api.Group("/teachers")
	teachers.Get("/", d.Teachers.List)
	teachers.Get("/featured", d.Teachers.Featured)
	teachers.Get("/:id", d.Teachers.Get)
	teachers.Post("/", d.Protect, d.RequireRole(models.RoleTeacher), d.Teachers.Create)
	teachers.Put("/:id", d.Protect, d.RequireRole(models.RoleTeacher), d.Teachers.Update)

	messages := api.Group("/messages", d.Protect)
	messages.Get("/conversations", d.Messages.Conversations)
	messages.Get("/conversations/:id", d.Messages.ConversationMessages)
	messages.Post("/", d.Messages.Send)

	bookings := api.Group("/bookings", d.Protect)
	bookings.Post("/", d.Bookings.Create)
	bookings.Get("/", d.Bookings.List)

	payments := api.Group("/payments")
	payments.Get("/plans", d.Payments.Plans)
	payments.Post("/subscribe", d.Protect, d.Payments.Subscribe)
	payments.Get("/subscriptions", d.Protect, d.Payments.Subscriptions)
	payments.Delete("/subscriptions/:id", d.Protect, d.Payments.Cancel)

	admin := api.Group("/admin", d.Protect, d.RequireRole(models.RoleAdmin))
	admin.Get("/users", d.Admin.ListUsers)
	admin.Put("/users/:id/deactivate", d.Admin.DeactivateUser)
}
