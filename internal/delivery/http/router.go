package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventinvite/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("POST /components/create-event", eventController.CreateEvent)
	mux.HandleFunc("POST /invite-participants/{eventID}", eventController.SendInvitations)
	mux.HandleFunc("POST /join-event/{eventID}", eventController.JoinEvent)
	mux.HandleFunc("GET /event/{eventID}", eventController.GetEvent)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
