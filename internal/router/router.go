package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/ingresso/backend/api/handler"
)

type Handlers struct {
	Customer *apiHandler.CustomerHandler
	Partner  *apiHandler.PartnerHandler
	Event    *apiHandler.EventHandler
	Admin    *apiHandler.AdminHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, adminAuth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.POST("/customers", handlers.Customer.Create)
	r.GET("/customers/{id}", handlers.Customer.Get)

	r.POST("/partners", handlers.Partner.Create)
	r.GET("/partners/{id}", handlers.Partner.Get)

	r.POST("/events", handlers.Event.Create)
	r.GET("/events/{id}", handlers.Event.Get)
	r.POST("/events/{id}/subscribe", handlers.Event.Subscribe)

	// Operator routes
	r.DELETE("/admin/reset", adminAuth(handlers.Admin.Reset))
	r.GET("/admin/dead-letters", adminAuth(handlers.Admin.DeadLetters))
	r.DELETE("/admin/dead-letters/{id}", adminAuth(handlers.Admin.DiscardDeadLetter))

	return r
}
