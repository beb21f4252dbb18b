package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventinvite/internal/domain"
)

func newTestEvent(title string) *domain.Event {
	return domain.NewEvent(title, "12 Main St", "Annual get-together", domain.ContactInfo{
		Name:  "Olga",
		Email: "olga@example.com",
	}, time.Now())
}

func TestEventRepository_Create_AssignsUniqueIDs(t *testing.T) {
	repo := NewEventRepository(domain.IdentifyByEmail)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ev := newTestEvent("Party")
		require.NoError(t, repo.Create(ctx, ev))
		require.NotEmpty(t, ev.ID)
		_, dup := seen[ev.ID]
		require.False(t, dup, "event ID %q allocated twice", ev.ID)
		seen[ev.ID] = struct{}{}
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	repo := NewEventRepository(domain.IdentifyByEmail)
	ctx := context.Background()

	ev := newTestEvent("Picnic")
	ev.Invited = []domain.InvitedParticipant{{Name: "Ann", Email: "ann@example.com"}}
	require.NoError(t, repo.Create(ctx, ev))

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Picnic", got.Title)
	assert.Equal(t, ev.Invited, got.Invited)
	assert.False(t, got.InvitationsSent)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventRepository_GetByID_ReturnsCopy(t *testing.T) {
	repo := NewEventRepository(domain.IdentifyByEmail)
	ctx := context.Background()

	ev := newTestEvent("Picnic")
	require.NoError(t, repo.Create(ctx, ev))
	_, err := repo.UpsertParticipant(ctx, ev.ID, &domain.Participant{Name: "Bo", Email: "bo@example.com"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	got.Title = "Hijacked"
	got.Participants[0].Name = "Mallory"

	again, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Picnic", again.Title)
	assert.Equal(t, "Bo", again.Participants[0].Name)
}

func TestEventRepository_UpsertParticipant_AppendThenReplace(t *testing.T) {
	repo := NewEventRepository(domain.IdentifyByEmail)
	ctx := context.Background()

	ev := newTestEvent("Dinner")
	require.NoError(t, repo.Create(ctx, ev))

	first := &domain.Participant{Name: "Ann", Email: "ann@example.com", HasCar: true}
	updated, err := repo.UpsertParticipant(ctx, ev.ID, first)
	require.NoError(t, err)
	assert.False(t, updated)

	other := &domain.Participant{Name: "Ben", Email: "ben@example.com"}
	updated, err = repo.UpsertParticipant(ctx, ev.ID, other)
	require.NoError(t, err)
	assert.False(t, updated)

	// Same email, different secondary fields: full replacement in place.
	second := &domain.Participant{Name: "Annie", Email: "ann@example.com", CanGiveRides: true, MaxPassengers: 3}
	updated, err = repo.UpsertParticipant(ctx, ev.ID, second)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, got.Participants, 2)
	assert.Equal(t, *second, got.Participants[0], "replacement keeps the original index")
	assert.Equal(t, *other, got.Participants[1])
	assert.False(t, got.Participants[0].HasCar, "replace is not a merge")
}

func TestEventRepository_UpsertParticipant_PhonePolicy(t *testing.T) {
	repo := NewEventRepository(domain.IdentifyByPhone)
	ctx := context.Background()

	ev := newTestEvent("Dinner")
	require.NoError(t, repo.Create(ctx, ev))

	_, err := repo.UpsertParticipant(ctx, ev.ID, &domain.Participant{Name: "Ann", Phone: "555-0100", Email: "a@x.com"})
	require.NoError(t, err)
	// Same phone but different email still matches under the phone policy.
	updated, err := repo.UpsertParticipant(ctx, ev.ID, &domain.Participant{Name: "Ann", Phone: "555-0100", Email: "b@x.com"})
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, got.Participants, 1)
	assert.Equal(t, "b@x.com", got.Participants[0].Email)
}

func TestEventRepository_UpsertParticipant_EventNotFound(t *testing.T) {
	repo := NewEventRepository(domain.IdentifyByEmail)
	_, err := repo.UpsertParticipant(context.Background(), "missing", &domain.Participant{Name: "Ann", Email: "ann@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventRepository_MarkInvitationsSent_Idempotent(t *testing.T) {
	repo := NewEventRepository(domain.IdentifyByEmail)
	ctx := context.Background()

	ev := newTestEvent("Dinner")
	require.NoError(t, repo.Create(ctx, ev))

	require.NoError(t, repo.MarkInvitationsSent(ctx, ev.ID))
	require.NoError(t, repo.MarkInvitationsSent(ctx, ev.ID))

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.True(t, got.InvitationsSent)

	assert.ErrorIs(t, repo.MarkInvitationsSent(ctx, "missing"), domain.ErrNotFound)
}

func TestEventRepository_ConcurrentJoins_SameIdentifier(t *testing.T) {
	repo := NewEventRepository(domain.IdentifyByEmail)
	ctx := context.Background()

	ev := newTestEvent("Rush")
	require.NoError(t, repo.Create(ctx, ev))

	const joiners = 50
	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.UpsertParticipant(ctx, ev.ID, &domain.Participant{Name: "Ann", Email: "ann@example.com"})
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Len(t, got.Participants, 1, "concurrent joins with one identifier must yield one record")
}
