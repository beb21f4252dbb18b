package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventinvite/internal/domain"
	"eventinvite/internal/repository/memory"
)

// fakeEmailService records sends and fails for configured recipients.
type fakeEmailService struct {
	mu      sync.Mutex
	sent    []*domain.EventInvitationEmailData
	failFor map[string]bool
	barrier *sync.WaitGroup // when set, every send waits for all others to start
}

func (f *fakeEmailService) SendEventInvitation(ctx context.Context, data *domain.EventInvitationEmailData) error {
	if f.barrier != nil {
		f.barrier.Done()
		f.barrier.Wait()
	}
	f.mu.Lock()
	f.sent = append(f.sent, data)
	f.mu.Unlock()
	if f.failFor[data.Email] {
		return errors.New("smtp refused")
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func seedEvent(t *testing.T, repo domain.EventRepository, invited []domain.InvitedParticipant) *domain.Event {
	t.Helper()
	ev := domain.NewEvent("Summer BBQ", "12 Main St", "Bring a salad", domain.ContactInfo{
		Name:  "Olga",
		Email: "olga@example.com",
	}, time.Now())
	ev.Invited = invited
	require.NoError(t, repo.Create(context.Background(), ev))
	return ev
}

func TestInvitationService_SendInvitations_PartialFailure(t *testing.T) {
	repo := memory.NewEventRepository(domain.IdentifyByEmail)
	ev := seedEvent(t, repo, []domain.InvitedParticipant{
		{Name: "A", Email: "a@x.com"},
		{Name: "B", Email: "b@x.com"},
		{Name: "C", Email: "c@x.com"},
		{Name: "D", Email: "d@x.com"},
		{Name: "E", Email: "e@x.com"},
	})
	emails := &fakeEmailService{failFor: map[string]bool{"b@x.com": true, "d@x.com": true}}
	svc := NewInvitationService(repo, emails, discardLogger(), "http://example.com/join-event")

	result, err := svc.SendInvitations(context.Background(), ev.ID)
	require.NoError(t, err, "per-recipient failures must not fail the call")
	assert.Equal(t, &domain.DispatchResult{Total: 5, Succeeded: 3, Failed: 2}, result)

	stored, err := repo.GetByID(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.True(t, stored.InvitationsSent)
}

func TestInvitationService_SendInvitations_NoInvitees(t *testing.T) {
	repo := memory.NewEventRepository(domain.IdentifyByEmail)
	ev := seedEvent(t, repo, nil)
	emails := &fakeEmailService{}
	svc := NewInvitationService(repo, emails, discardLogger(), "http://example.com/join-event")

	result, err := svc.SendInvitations(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, &domain.DispatchResult{}, result)
	assert.Empty(t, emails.sent)

	stored, err := repo.GetByID(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.True(t, stored.InvitationsSent, "dispatch with zero invitees still marks the event")
}

func TestInvitationService_SendInvitations_EventNotFound(t *testing.T) {
	repo := memory.NewEventRepository(domain.IdentifyByEmail)
	svc := NewInvitationService(repo, &fakeEmailService{}, discardLogger(), "http://example.com/join-event")

	_, err := svc.SendInvitations(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvitationService_SendInvitations_MessageContent(t *testing.T) {
	repo := memory.NewEventRepository(domain.IdentifyByEmail)
	ev := seedEvent(t, repo, []domain.InvitedParticipant{{Name: "Ann", Email: "ann@example.com"}})
	emails := &fakeEmailService{}
	svc := NewInvitationService(repo, emails, discardLogger(), "http://example.com/join-event/")

	_, err := svc.SendInvitations(context.Background(), ev.ID)
	require.NoError(t, err)

	require.Len(t, emails.sent, 1)
	data := emails.sent[0]
	assert.Equal(t, "ann@example.com", data.Email)
	assert.Equal(t, "Ann", data.InviteeName)
	assert.Equal(t, "Olga", data.OrganizerName)
	assert.Equal(t, "Summer BBQ", data.EventTitle)
	assert.Equal(t, "12 Main St", data.EventAddress)
	assert.Equal(t, "Bring a salad", data.Description)
	assert.Equal(t, "http://example.com/join-event/"+ev.ID, data.JoinURL)
}

func TestInvitationService_SendInvitations_RunsConcurrently(t *testing.T) {
	repo := memory.NewEventRepository(domain.IdentifyByEmail)
	invited := make([]domain.InvitedParticipant, 8)
	for i := range invited {
		invited[i] = domain.InvitedParticipant{Name: "P", Email: "p@x.com"}
	}
	ev := seedEvent(t, repo, invited)

	// Every send blocks until all 8 have started; a sequential dispatcher
	// would never get past the first one.
	var barrier sync.WaitGroup
	barrier.Add(len(invited))
	emails := &fakeEmailService{barrier: &barrier}
	svc := NewInvitationService(repo, emails, discardLogger(), "http://example.com/join-event")

	result, err := svc.SendInvitations(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Total)
	assert.Equal(t, 8, result.Succeeded)
}

func TestInvitationService_ResendIsFullResend(t *testing.T) {
	repo := memory.NewEventRepository(domain.IdentifyByEmail)
	ev := seedEvent(t, repo, []domain.InvitedParticipant{
		{Name: "A", Email: "a@x.com"},
		{Name: "B", Email: "b@x.com"},
	})
	emails := &fakeEmailService{}
	svc := NewInvitationService(repo, emails, discardLogger(), "http://example.com/join-event")

	_, err := svc.SendInvitations(context.Background(), ev.ID)
	require.NoError(t, err)
	result, err := svc.SendInvitations(context.Background(), ev.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Len(t, emails.sent, 4, "re-dispatch sends to every invitee again")
}
