package domain

import (
	"context"
	"time"
)

// ContactInfo describes the event creator: a name plus whichever contact
// fields the deployment collects.
// swagger:model ContactInfo
type ContactInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Event represents a single gathering with an organizer, descriptive fields,
// and two people-collections: confirmed participants and invited stubs.
// swagger:model Event
type Event struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Address         string               `json:"address"`
	Description     string               `json:"description"`
	Creator         ContactInfo          `json:"creator"`
	Participants    []Participant        `json:"participants"`
	Invited         []InvitedParticipant `json:"invitedParticipants"`
	InvitationsSent bool                 `json:"invitationsSent"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// NewEvent returns a new Event with empty participant lists.
// ID is set by the repository on create.
func NewEvent(title, address, description string, creator ContactInfo, createdAt time.Time) *Event {
	return &Event{
		Title:        title,
		Address:      address,
		Description:  description,
		Creator:      creator,
		Participants: []Participant{},
		Invited:      []InvitedParticipant{},
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// EventRepository defines the interface for event storage. Implementations
// own the Event records exclusively: getters return copies and all mutation
// goes through the repository so the per-event uniqueness invariant holds
// under concurrent access.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// UpsertParticipant replaces the participant whose policy identifier
	// matches p, preserving its position, or appends p when no match exists.
	// Returns updated=true on replace, false on append.
	UpsertParticipant(ctx context.Context, eventID string, p *Participant) (updated bool, err error)
	// MarkInvitationsSent flips the invitations_sent flag. Idempotent:
	// marking an already-marked event is a no-op, not an error.
	MarkInvitationsSent(ctx context.Context, eventID string) error
}

// CreateEventResult is returned by EventService.CreateEvent. ImportError
// carries a roster parse failure without failing the creation itself.
type CreateEventResult struct {
	Event       *Event
	EventURL    string
	ImportError error
}

// DispatchResult aggregates per-recipient outcomes of one dispatch call.
type DispatchResult struct {
	Total     int
	Succeeded int
	Failed    int
}

// EventService defines organizer- and attendee-facing event operations.
type EventService interface {
	// CreateEvent allocates an event and, when rosterBytes is non-nil,
	// imports invited participants from it. A malformed roster does not fail
	// the call: the event is still created and the parse failure is reported
	// in the result.
	CreateEvent(ctx context.Context, event *Event, rosterBytes []byte) (*CreateEventResult, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	// JoinEvent inserts or updates the participant keyed by the deployment's
	// identifier policy. Returns updated=true when an existing record was
	// replaced.
	JoinEvent(ctx context.Context, eventID string, p *Participant) (updated bool, err error)
}

// InvitationService dispatches invitation emails for an event.
type InvitationService interface {
	// SendInvitations sends one invitation per invited participant,
	// concurrently, and waits for every attempt to settle. Individual send
	// failures are counted, never returned; a missing event is ErrNotFound.
	SendInvitations(ctx context.Context, eventID string) (*DispatchResult, error)
}
