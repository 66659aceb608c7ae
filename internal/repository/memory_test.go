package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwell/backend/internal/models"
)

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2025, 6, 15, 2, 30, 0, 0, loc) // 2025-06-14 21:30 UTC
	got := DayOf(in)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestMemoryStore_ProfileRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Profiles().GetByUserID(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	profile := &models.SleepProfile{
		UserID:          "u1",
		Bedtime:         "22:30",
		WakeTime:        "06:30",
		SleepChallenges: []string{models.ChallengeFallingAsleep},
	}
	require.NoError(t, store.Profiles().Upsert(ctx, profile))

	got, err := store.Profiles().GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "22:30", got.Bedtime)
	assert.Equal(t, []string{models.ChallengeFallingAsleep}, got.SleepChallenges)

	// Mutating the caller's slice after the write must not leak into the store.
	profile.SleepChallenges[0] = "changed"
	got, err = store.Profiles().GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{models.ChallengeFallingAsleep}, got.SleepChallenges)
}

func TestMemoryStore_TrendUpsertByDay(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Trends().Upsert(ctx, &models.SleepTrendEntry{
		ID: "e1", UserID: "u1", Date: day, SleepQuality: 4,
	}))

	// A second write on the same day replaces, even with a timestamp inside
	// the day rather than on its boundary.
	require.NoError(t, store.Trends().Upsert(ctx, &models.SleepTrendEntry{
		ID: "e1", UserID: "u1", Date: day.Add(9 * time.Hour), SleepQuality: 8,
	}))

	entries, err := store.Trends().GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 8, entries[0].SleepQuality)
	assert.Equal(t, day, entries[0].Date)
}

func TestMemoryStore_TrendsSortedByDate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	for _, daysAgo := range []int{1, 5, 3} {
		require.NoError(t, store.Trends().Upsert(ctx, &models.SleepTrendEntry{
			ID: "e" + string(rune('0'+daysAgo)), UserID: "u1",
			Date: base.AddDate(0, 0, -daysAgo), SleepQuality: 7,
		}))
	}

	entries, err := store.Trends().GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Date.Before(entries[1].Date))
	assert.True(t, entries[1].Date.Before(entries[2].Date))
}

func TestMemoryStore_TrendGetByDate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := store.Trends().GetByUserIDAndDate(ctx, "u1", day)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Trends().Upsert(ctx, &models.SleepTrendEntry{
		ID: "e1", UserID: "u1", Date: day, SleepQuality: 7,
	}))

	got, err := store.Trends().GetByUserIDAndDate(ctx, "u1", day.Add(14*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)

	_, err = store.Trends().GetByUserIDAndDate(ctx, "u2", day)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SessionsSortedByStartTime(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	for i, hoursAgo := range []int{2, 30, 10} {
		require.NoError(t, store.Sessions().Create(ctx, &models.BreathingSession{
			ID: "s" + string(rune('0'+i)), UserID: "u1",
			Technique: models.TechniqueBoxBreathing,
			StartTime: base.Add(-time.Duration(hoursAgo) * time.Hour),
		}))
	}

	sessions, err := store.Sessions().GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.True(t, sessions[0].StartTime.Before(sessions[1].StartTime))
	assert.True(t, sessions[1].StartTime.Before(sessions[2].StartTime))

	other, err := store.Sessions().GetByUserID(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
