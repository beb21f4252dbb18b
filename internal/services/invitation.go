package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"eventinvite/internal/domain"
)

type invitationService struct {
	eventRepo    domain.EventRepository
	emailService domain.EmailService
	logger       *slog.Logger
	baseURL      string
}

// NewInvitationService returns an InvitationService that renders and sends
// one invitation email per invited participant.
func NewInvitationService(eventRepo domain.EventRepository, emailService domain.EmailService, logger *slog.Logger, baseURL string) domain.InvitationService {
	return &invitationService{
		eventRepo:    eventRepo,
		emailService: emailService,
		logger:       logger,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *invitationService) SendInvitations(ctx context.Context, eventID string) (*domain.DispatchResult, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	joinURL := s.baseURL + "/" + event.ID

	// Fan out one send per invitee; every attempt settles independently so a
	// slow or failing recipient cannot delay or abort the others.
	outcomes := make([]error, len(event.Invited))
	var wg sync.WaitGroup
	for i, invitee := range event.Invited {
		wg.Add(1)
		go func(i int, invitee domain.InvitedParticipant) {
			defer wg.Done()
			outcomes[i] = s.emailService.SendEventInvitation(ctx, &domain.EventInvitationEmailData{
				Email:         invitee.Email,
				InviteeName:   invitee.Name,
				OrganizerName: event.Creator.Name,
				EventTitle:    event.Title,
				EventAddress:  event.Address,
				Description:   event.Description,
				JoinURL:       joinURL,
			})
		}(i, invitee)
	}
	wg.Wait()

	result := &domain.DispatchResult{Total: len(event.Invited)}
	for i, sendErr := range outcomes {
		if sendErr != nil {
			result.Failed++
			s.logger.Warn("invitation send failed",
				"event_id", event.ID,
				"recipient", event.Invited[i].Email,
				"err", sendErr,
			)
			continue
		}
		result.Succeeded++
	}

	if err := s.eventRepo.MarkInvitationsSent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("mark invitations sent: %w", err)
	}

	s.logger.Info("invitations dispatched",
		"event_id", event.ID,
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result, nil
}
