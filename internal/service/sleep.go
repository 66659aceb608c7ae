package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/driftwell/backend/internal/models"
	"github.com/driftwell/backend/internal/repository"
)

var validate = validator.New()

// SleepService is the analytics facade: the only surface exposed to
// callers. It owns record-time bookkeeping (same-day session linkage) and
// assembles analytics snapshots from the three repositories.
type SleepService interface {
	SaveProfile(ctx context.Context, userID string, req *models.SaveProfileRequest) (*models.SleepProfile, error)
	GetProfile(ctx context.Context, userID string) (*models.SleepProfile, error)
	RecordDailySleep(ctx context.Context, userID string, req *models.RecordDailySleepRequest) (*models.SleepTrendEntry, error)
	RecordBreathingSession(ctx context.Context, userID string, req *models.RecordBreathingSessionRequest) (*models.BreathingSession, error)
	GetSleepAnalytics(ctx context.Context, userID string, period models.Period) (*models.SleepAnalytics, error)
	GetSleepTrends(ctx context.Context, userID string, period models.Period) ([]models.SleepTrendEntry, error)
	GetBreathingSessions(ctx context.Context, userID string, period models.Period) ([]models.BreathingSession, error)
}

type sleepService struct {
	profileRepo repository.ProfileRepository
	trendRepo   repository.TrendRepository
	sessionRepo repository.SessionRepository

	now func() time.Time

	// Per-user locks serialize writers for the same user (two devices
	// recording near-simultaneously). Independent users never contend.
	lockMu    sync.Mutex
	userLocks map[string]*sync.Mutex
}

// Option configures a SleepService.
type Option func(*sleepService)

// WithClock overrides the time source, used by tests for deterministic
// window math.
func WithClock(now func() time.Time) Option {
	return func(s *sleepService) { s.now = now }
}

// NewSleepService creates the analytics facade over the given repositories.
func NewSleepService(profileRepo repository.ProfileRepository, trendRepo repository.TrendRepository, sessionRepo repository.SessionRepository, opts ...Option) SleepService {
	s := &sleepService{
		profileRepo: profileRepo,
		trendRepo:   trendRepo,
		sessionRepo: sessionRepo,
		now:         time.Now,
		userLocks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sleepService) userLock(userID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	mu, ok := s.userLocks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.userLocks[userID] = mu
	}
	return mu
}

// storageErr tags a persistence failure so handlers can surface it as a
// distinct recoverable kind.
func storageErr(err error) error {
	return errors.Join(ErrStorageUnavailable, err)
}

func invalidInput(err error) error {
	return errors.Join(ErrMalformedInput, err)
}

func (s *sleepService) SaveProfile(ctx context.Context, userID string, req *models.SaveProfileRequest) (*models.SleepProfile, error) {
	if err := validate.Struct(req); err != nil {
		return nil, invalidInput(err)
	}
	if _, err := parseWallClock(req.Bedtime); err != nil {
		return nil, invalidInput(fmt.Errorf("bedtime: %w", err))
	}
	if _, err := parseWallClock(req.WakeTime); err != nil {
		return nil, invalidInput(fmt.Errorf("wake_time: %w", err))
	}

	now := s.now()
	profile := &models.SleepProfile{
		UserID:          userID,
		Bedtime:         req.Bedtime,
		WakeTime:        req.WakeTime,
		SleepChallenges: req.SleepChallenges,
		WindDownRoutine: req.WindDownRoutine,
		SleepGoals:      req.SleepGoals,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if existing, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		profile.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storageErr(err)
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, storageErr(err)
	}
	return profile, nil
}

func (s *sleepService) GetProfile(ctx context.Context, userID string) (*models.SleepProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileMissing
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return profile, nil
}

func (s *sleepService) RecordDailySleep(ctx context.Context, userID string, req *models.RecordDailySleepRequest) (*models.SleepTrendEntry, error) {
	if err := validate.Struct(req); err != nil {
		return nil, invalidInput(err)
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileMissing
	}
	if err != nil {
		return nil, storageErr(err)
	}

	now := s.now()
	day := now
	if req.Date != nil {
		day = *req.Date
	}
	day = repository.DayOf(day)

	totalSleep := 0.0
	if req.TotalSleepTime != nil {
		totalSleep = *req.TotalSleepTime
	} else {
		totalSleep = sleepHoursFromProfile(profile)
	}

	entry := &models.SleepTrendEntry{
		ID:                   uuid.NewString(),
		UserID:               userID,
		Date:                 day,
		SleepQuality:         req.SleepQuality,
		MorningEnergy:        req.MorningEnergy,
		TimeToFallAsleep:     req.TimeToFallAsleep,
		NightWakeups:         req.NightWakeups,
		TotalSleepTime:       totalSleep,
		StressLevelBeforeBed: req.StressLevelBeforeBed,
		WindDownActivities:   req.WindDownActivities,
		Notes:                req.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	// One logical entry per calendar day: a repeat recording amends that
	// day's entry and keeps its identity and session linkage.
	if existing, err := s.trendRepo.GetByUserIDAndDate(ctx, userID, day); err == nil {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		entry.BreathingSessionUsed = existing.BreathingSessionUsed
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storageErr(err)
	}

	if err := s.trendRepo.Upsert(ctx, entry); err != nil {
		return nil, storageErr(err)
	}
	return entry, nil
}

func (s *sleepService) RecordBreathingSession(ctx context.Context, userID string, req *models.RecordBreathingSessionRequest) (*models.BreathingSession, error) {
	if err := validate.Struct(req); err != nil {
		return nil, invalidInput(err)
	}

	guidance := req.Guidance
	if guidance == "" {
		guidance = models.GuidanceSelfDirected
	}

	session := &models.BreathingSession{
		ID:                      uuid.NewString(),
		UserID:                  userID,
		Technique:               req.Technique,
		Purpose:                 req.Purpose,
		StartTime:               req.StartTime,
		DurationSeconds:         req.DurationSeconds,
		TimeRelativeToBedtime:   req.TimeRelativeToBedtime,
		StressLevelBefore:       req.StressLevelBefore,
		PhysicalTensionBefore:   req.PhysicalTensionBefore,
		MentalActivityBefore:    req.MentalActivityBefore,
		RelaxationAfter:         req.RelaxationAfter,
		SleepQualityNextMorning: req.SleepQualityNextMorning,
		WouldUseAgain:           req.WouldUseAgain,
		Guidance:                guidance,
		Completed:               req.Completed,
		CreatedAt:               s.now(),
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, storageErr(err)
	}

	// Retroactively flip the same-day trend entry's flag. A session with
	// no matching entry on its date is still recorded; it just never
	// links to a day's quality entry.
	day := repository.DayOf(session.StartTime)
	entry, err := s.trendRepo.GetByUserIDAndDate(ctx, userID, day)
	if errors.Is(err, repository.ErrNotFound) {
		return session, nil
	}
	if err != nil {
		return nil, storageErr(err)
	}
	if !entry.BreathingSessionUsed {
		entry.BreathingSessionUsed = true
		entry.UpdatedAt = s.now()
		if err := s.trendRepo.Upsert(ctx, entry); err != nil {
			return nil, storageErr(err)
		}
	}
	return session, nil
}

func (s *sleepService) GetSleepAnalytics(ctx context.Context, userID string, period models.Period) (*models.SleepAnalytics, error) {
	var (
		profile  *models.SleepProfile
		trends   []models.SleepTrendEntry
		sessions []models.BreathingSession
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profileRepo.GetByUserID(gctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInsufficientData
		}
		if err != nil {
			return storageErr(err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		t, err := s.trendRepo.GetByUserID(gctx, userID)
		if err != nil {
			return storageErr(err)
		}
		trends = t
		return nil
	})
	g.Go(func() error {
		sess, err := s.sessionRepo.GetByUserID(gctx, userID)
		if err != nil {
			return storageErr(err)
		}
		sessions = sess
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return computeAnalytics(profile, trends, sessions, period, s.now())
}

// computeAnalytics is the pure, synchronous assembly of one analytics
// snapshot: aggregation, then correlation, then effectiveness ranking,
// then recommendations, in that dependency order.
func computeAnalytics(profile *models.SleepProfile, trends []models.SleepTrendEntry, sessions []models.BreathingSession, period models.Period, now time.Time) (*models.SleepAnalytics, error) {
	entries := filterByPeriod(trends, period, now)
	if len(entries) == 0 {
		return nil, ErrInsufficientData
	}
	periodSessions := filterSessionsByPeriod(sessions, period, now)

	agg := aggregateEntries(entries)

	qualityTrend := classifyTrend(entries, func(e models.SleepTrendEntry) float64 { return float64(e.SleepQuality) })
	energyTrend := classifyTrend(entries, func(e models.SleepTrendEntry) float64 { return float64(e.MorningEnergy) })
	consistencyTrend := classifyConsistencyTrend(entries)
	stressImpact := stressSleepImpact(entries)

	ranked := rankTechniques(periodSessions)
	impact := breathingImpactOnSleep(entries)

	return &models.SleepAnalytics{
		UserID:                         profile.UserID,
		Period:                         period,
		AverageSleepQuality:            agg.AvgQuality,
		AverageMorningEnergy:           agg.AvgEnergy,
		AverageTimeToFallAsleep:        agg.AvgTimeToSleep,
		AverageNightWakeups:            agg.AvgNightWakeups,
		SleepQualityByDayOfWeek:        agg.QualityByDay,
		QualityTrend:                   qualityTrend,
		EnergyTrend:                    energyTrend,
		ConsistencyTrend:               consistencyTrend,
		StressSleepImpact:              stressImpact,
		BreathingImpactOnSleep:         impact,
		TechniqueEffectiveness:         ranked,
		RecommendedBreathingTechniques: recommendTechniques(profile, ranked),
		SuggestedWindDownAdjustments:   suggestWindDownAdjustments(agg, entries),
		EntryCount:                     len(entries),
		ComputedAt:                     now,
	}, nil
}

func (s *sleepService) GetSleepTrends(ctx context.Context, userID string, period models.Period) ([]models.SleepTrendEntry, error) {
	trends, err := s.trendRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return filterByPeriod(trends, period, s.now()), nil
}

func (s *sleepService) GetBreathingSessions(ctx context.Context, userID string, period models.Period) ([]models.BreathingSession, error) {
	sessions, err := s.sessionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return filterSessionsByPeriod(sessions, period, s.now()), nil
}

// parseWallClock parses an HH:MM wall-clock string.
func parseWallClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}

// sleepHoursFromProfile derives total sleep hours from the profile's
// bedtime and wake time, wrapping past midnight. Used when a daily record
// does not state total sleep explicitly.
func sleepHoursFromProfile(profile *models.SleepProfile) float64 {
	bed, err := parseWallClock(profile.Bedtime)
	if err != nil {
		return 0
	}
	wake, err := parseWallClock(profile.WakeTime)
	if err != nil {
		return 0
	}
	minutes := wake.Sub(bed).Minutes()
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return minutes / 60
}
