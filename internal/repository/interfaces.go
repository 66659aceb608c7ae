// Package repository defines the persistence contracts for sleep profiles,
// daily trend entries, and breathing sessions, keyed by user ID. No
// computation lives here; analytics operate on the lists these return.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/driftwell/backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ProfileRepository stores the one sleep profile per user.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.SleepProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.SleepProfile, error)
}

// TrendRepository stores daily sleep trend entries, one logical entry per
// user per calendar day.
type TrendRepository interface {
	// Upsert inserts the entry or replaces the existing entry for the
	// same user and calendar day.
	Upsert(ctx context.Context, entry *models.SleepTrendEntry) error
	// GetByUserID returns all entries for the user in chronological order.
	GetByUserID(ctx context.Context, userID string) ([]models.SleepTrendEntry, error)
	// GetByUserIDAndDate returns the entry for the given calendar day, or
	// ErrNotFound.
	GetByUserIDAndDate(ctx context.Context, userID string, day time.Time) (*models.SleepTrendEntry, error)
}

// SessionRepository stores breathing sessions as an append-only log.
type SessionRepository interface {
	Create(ctx context.Context, session *models.BreathingSession) error
	// GetByUserID returns all sessions for the user ordered by start time.
	GetByUserID(ctx context.Context, userID string) ([]models.BreathingSession, error)
}

// DayOf truncates t to its calendar day in UTC. All same-day matching goes
// through this so trend entries and sessions agree on day boundaries.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
