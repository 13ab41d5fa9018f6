package routes

import (
	"gigboard/internal/delivery/http/handler"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/domain/user"
	"gigboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry wires handlers onto their route groups. Construction of the
// handlers themselves happens in the app container.
type Registry struct {
	Auth          *handler.AuthHandler
	Protected     *handler.ProtectedHandler
	Jobs          *handler.JobHandler
	Applications  *handler.ApplicationHandler
	Account       *handler.AccountHandler
	Search        *handler.SearchHandler
	Browse        *handler.BrowseHandler
	Profile       *handler.ProfileHandler
	Notifications *handler.NotificationHandler
	Health        *handler.HealthHandler
	WS            *ws.Handler

	AuthMW *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", r.Health.Handle)

	api := app.Group("/api")

	r.Auth.RegisterRoutes(api.Group("/auth"))

	authed := r.AuthMW.Middleware()

	r.Protected.RegisterRoutes(api.Group("/protected", authed))

	client := api.Group("/client", authed, middleware.RequireRole(user.RoleClient))
	r.Jobs.RegisterRoutes(client)
	r.Applications.RegisterClientRoutes(client)
	r.Account.RegisterRoutes(client)
	r.Search.RegisterRoutes(client)

	freelancer := api.Group("/freelancer", authed, middleware.RequireRole(user.RoleFreelancer))
	r.Browse.RegisterRoutes(freelancer)
	r.Applications.RegisterFreelancerRoutes(freelancer)
	r.Profile.RegisterRoutes(freelancer)
	r.Notifications.RegisterRoutes(freelancer)
	if r.WS != nil {
		freelancer.Get("/notifications/ws", r.WS.HandleNotificationsWS)
	}
}
