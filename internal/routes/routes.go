package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vinted-clone/marketplace-backend/internal/handlers"
)

// SetupRoutes registers the public API. requireUser guards the routes that act on behalf of a caller.
func SetupRoutes(r chi.Router, h *handlers.Handler, requireUser func(http.Handler) http.Handler, home []byte) {
	r.Get("/", handlers.Home(home))
	r.Get("/health", handlers.Health)

	// Accounts
	r.Post("/user/signup", h.Signup)
	r.Post("/user/login", h.Login)

	// Public listing reads
	r.Get("/offers", h.Search)
	r.Get("/offer/{id}", h.GetOffer)

	r.Group(func(r chi.Router) {
		r.Use(requireUser)

		r.Post("/offer/publish", h.Publish)
		r.Put("/offer/update", h.UpdateOffer)
		r.Delete("/offer/delete/{id}", h.DeleteOffer)

		r.Post("/payment", h.Payment)
	})

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)
}
