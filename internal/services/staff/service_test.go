package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/clubhouse/internal/database"
	"github.com/thenoetrevino/clubhouse/internal/events"
	"github.com/thenoetrevino/clubhouse/internal/models"
	"github.com/thenoetrevino/clubhouse/internal/testutil"
	"github.com/thenoetrevino/clubhouse/internal/validate"
)

func setupService(t *testing.T) (Service, *database.Store, *events.Bus) {
	t.Helper()
	store, err := database.Open(context.Background(), testutil.NewTestDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	bus := events.NewBus(nil)
	t.Cleanup(bus.Close)
	return NewService(store, bus), store, bus
}

func TestUpdatePreservesDescriptorKeys(t *testing.T) {
	svc, store, bus := setupService(t)
	ctx := context.Background()
	feed, cancel := bus.Subscribe()
	defer cancel()

	require.NoError(t, svc.Update(ctx, 2, Input{Name: "Bob", Ability: "92", Fame: "25"}))

	got, err := store.StaffMember(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 92, got.Ability())
	assert.Equal(t, 25, got.Fame)
	assert.JSONEq(t, `{"rawAbility":92,"potential":95}`, got.AbilityJSON)

	event := <-feed
	assert.Equal(t, events.EventStaffUpdated, event.Type)
	assert.Equal(t, 2, event.RecordID)
}

func TestUpdateReplacesMalformedDescriptor(t *testing.T) {
	svc, store, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, 4, Input{Name: "Dev", Ability: "40", Fame: "0"}))

	got, err := store.StaffMember(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, models.EncodeAbility(40), got.AbilityJSON)
	assert.Nil(t, got.TeamID)
}

func TestUpdateValidation(t *testing.T) {
	svc, store, _ := setupService(t)
	ctx := context.Background()

	before, err := store.StaffMember(ctx, 1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		in     Input
		reason string
	}{
		{"empty name", Input{Name: "", Ability: "1", Fame: "1"}, validate.ReasonEmpty},
		{"text ability", Input{Name: "A", Ability: "great", Fame: "1"}, validate.ReasonNotAnInteger},
		{"negative fame", Input{Name: "A", Ability: "1", Fame: "-1"}, validate.ReasonNegative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Update(ctx, 1, tt.in)
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.Equal(t, tt.reason, validate.Reason(err))
		})
	}

	after, err := store.StaffMember(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateErrors(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Update(ctx, 0, Input{Name: "A"}), ErrInvalidStaffID)
	assert.ErrorIs(t, svc.Update(ctx, 999, Input{Name: "A"}), models.ErrNotFound)
}

func TestInputFrom(t *testing.T) {
	svc, _, _ := setupService(t)

	member, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Input{Name: "Cara", Ability: "85", Fame: "5"}, InputFrom(member))
}
