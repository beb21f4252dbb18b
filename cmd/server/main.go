package main

import (
	"net/http"
	"os"
	"time"

	"eventinvite/config"
	_ "eventinvite/docs"
	emailadapter "eventinvite/internal/adapters/email"
	delivery "eventinvite/internal/delivery/http"
	"eventinvite/internal/delivery/http/controllers"
	"eventinvite/internal/delivery/http/middleware"
	"eventinvite/internal/domain"
	"eventinvite/internal/repository/memory"
	"eventinvite/internal/services"
)

const requestTimeout = 10 * time.Second

// @title Event Invite API
// @version 1.0
// @description Event creation, roster invitations, and participant self-registration.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	policy, err := domain.NewIdentifierPolicy(cfg.ParticipantIDField)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	mailer, err := emailadapter.NewMailer(cfg.Email)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())

	eventRepo := memory.NewEventRepository(policy)
	eventService := services.NewEventService(eventRepo, policy, cfg.BaseURL, requestTimeout)
	invitationService := services.NewInvitationService(eventRepo, emailService, logger, cfg.BaseURL)

	eventController := controllers.NewEventController(logger, eventService, invitationService)

	mux := delivery.NewRouter(eventController)
	handler := middleware.CORS(cfg.CORSOrigins, middleware.LoggingMiddleware(logger, mux))

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "identifier_field", string(policy))
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
