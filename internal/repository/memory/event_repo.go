package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventinvite/internal/domain"
)

// eventEntry pairs an event with its own mutex so that mutations on one
// event serialize without blocking operations on other events.
type eventEntry struct {
	mu    sync.Mutex
	event *domain.Event
}

type eventRepository struct {
	mu      sync.RWMutex
	entries map[string]*eventEntry
	policy  domain.IdentifierPolicy
}

// NewEventRepository returns an in-memory EventRepository. State lives for
// the process lifetime only: created empty at start, cleared on restart.
// The identifier policy drives participant matching in UpsertParticipant.
func NewEventRepository(policy domain.IdentifierPolicy) domain.EventRepository {
	return &eventRepository{
		entries: make(map[string]*eventEntry),
		policy:  policy,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ID] = &eventEntry{event: copyEvent(e)}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	entry, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return copyEvent(entry.event), nil
}

func (r *eventRepository) UpsertParticipant(ctx context.Context, eventID string, p *domain.Participant) (bool, error) {
	entry, err := r.entry(eventID)
	if err != nil {
		return false, err
	}
	// Scan and write under the event's mutex so two concurrent joins with
	// the same identifier cannot both be treated as new.
	entry.mu.Lock()
	defer entry.mu.Unlock()

	id := r.policy.IdentifierOf(p)
	for i := range entry.event.Participants {
		if r.policy.IdentifierOf(&entry.event.Participants[i]) == id {
			entry.event.Participants[i] = *p
			entry.event.UpdatedAt = time.Now()
			return true, nil
		}
	}
	entry.event.Participants = append(entry.event.Participants, *p)
	entry.event.UpdatedAt = time.Now()
	return false, nil
}

func (r *eventRepository) MarkInvitationsSent(ctx context.Context, eventID string) error {
	entry, err := r.entry(eventID)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if !entry.event.InvitationsSent {
		entry.event.InvitationsSent = true
		entry.event.UpdatedAt = time.Now()
	}
	return nil
}

func (r *eventRepository) entry(id string) (*eventEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// copyEvent returns a deep copy so no caller holds a mutable reference into
// the store.
func copyEvent(e *domain.Event) *domain.Event {
	clone := *e
	clone.Participants = make([]domain.Participant, len(e.Participants))
	copy(clone.Participants, e.Participants)
	clone.Invited = make([]domain.InvitedParticipant, len(e.Invited))
	copy(clone.Invited, e.Invited)
	return &clone
}
