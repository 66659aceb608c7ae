package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/driftwell/backend/internal/models"
)

// MemoryStore is an in-memory implementation of all three repositories.
// Every read returns a copy of the stored data, so a concurrent append can
// never produce a torn read during a multi-step analytics computation.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.SleepProfile
	trends   map[string][]models.SleepTrendEntry   // chronological per user
	sessions map[string][]models.BreathingSession  // append order per user
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]models.SleepProfile),
		trends:   make(map[string][]models.SleepTrendEntry),
		sessions: make(map[string][]models.BreathingSession),
	}
}

func (s *MemoryStore) Upsert(ctx context.Context, profile *models.SleepProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *profile
	p.SleepChallenges = append([]string(nil), profile.SleepChallenges...)
	p.WindDownRoutine = append([]string(nil), profile.WindDownRoutine...)
	p.SleepGoals = append([]string(nil), profile.SleepGoals...)
	s.profiles[profile.UserID] = p
	return nil
}

func (s *MemoryStore) GetByUserID(ctx context.Context, userID string) (*models.SleepProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := p
	return &out, nil
}

// Trends returns the TrendRepository view of the store.
func (s *MemoryStore) Trends() TrendRepository { return (*memoryTrends)(s) }

// Sessions returns the SessionRepository view of the store.
func (s *MemoryStore) Sessions() SessionRepository { return (*memorySessions)(s) }

// Profiles returns the ProfileRepository view of the store.
func (s *MemoryStore) Profiles() ProfileRepository { return s }

type memoryTrends MemoryStore

func (s *memoryTrends) Upsert(ctx context.Context, entry *models.SleepTrendEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := *entry
	e.Date = DayOf(entry.Date)
	e.WindDownActivities = append([]string(nil), entry.WindDownActivities...)

	list := s.trends[entry.UserID]
	for i := range list {
		if list[i].Date.Equal(e.Date) {
			list[i] = e
			return nil
		}
	}
	list = append(list, e)
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	s.trends[entry.UserID] = list
	return nil
}

func (s *memoryTrends) GetByUserID(ctx context.Context, userID string) ([]models.SleepTrendEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SleepTrendEntry(nil), s.trends[userID]...), nil
}

func (s *memoryTrends) GetByUserIDAndDate(ctx context.Context, userID string, day time.Time) (*models.SleepTrendEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day = DayOf(day)
	for _, e := range s.trends[userID] {
		if e.Date.Equal(day) {
			out := e
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

type memorySessions MemoryStore

func (s *memorySessions) Create(ctx context.Context, session *models.BreathingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = append(s.sessions[session.UserID], *session)
	return nil
}

func (s *memorySessions) GetByUserID(ctx context.Context, userID string) ([]models.BreathingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]models.BreathingSession(nil), s.sessions[userID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}
