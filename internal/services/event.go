package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventinvite/internal/domain"
	"eventinvite/internal/roster"
)

type eventService struct {
	eventRepo      domain.EventRepository
	policy         domain.IdentifierPolicy
	baseURL        string
	contextTimeout time.Duration
}

// NewEventService returns an EventService backed by the given repository.
// baseURL is the public prefix for shareable join links.
func NewEventService(eventRepo domain.EventRepository, policy domain.IdentifierPolicy, baseURL string, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		policy:         policy,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event, rosterBytes []byte) (*domain.CreateEventResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Title == "" {
		return nil, fmt.Errorf("%w: event title is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	// A bad roster must not block creation: the parse failure is captured as
	// data on the result and the event is created without invitees.
	var importErr error
	if rosterBytes != nil {
		invited, err := roster.Parse(rosterBytes)
		if err != nil {
			importErr = err
		} else {
			event.Invited = invited
		}
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return &domain.CreateEventResult{
		Event:       event,
		EventURL:    s.joinURL(event.ID),
		ImportError: importErr,
	}, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) JoinEvent(ctx context.Context, eventID string, p *domain.Participant) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if p.Name == "" {
		return false, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if s.policy.IdentifierOf(p) == "" {
		return false, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, s.policy)
	}

	updated, err := s.eventRepo.UpsertParticipant(ctx, eventID, p)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("upsert participant: %w", err)
	}
	return updated, nil
}

// joinURL builds the shareable join link for an event.
func (s *eventService) joinURL(eventID string) string {
	return s.baseURL + "/" + eventID
}
