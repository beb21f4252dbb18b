package services

import (
	"context"
	"fmt"

	"eventinvite/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendEventInvitation renders the "invitation" template and sends it to the invitee.
func (s *emailService) SendEventInvitation(ctx context.Context, data *domain.EventInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("invitation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render invitation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}
