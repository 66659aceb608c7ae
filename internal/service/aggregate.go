package service

import (
	"time"

	"github.com/driftwell/backend/internal/models"
	"github.com/driftwell/backend/internal/repository"
)

// filterByPeriod returns the entries whose date falls within
// [now − periodLength, now]. Entry dates are stored day-truncated, so the
// cutoff is computed at day granularity too; the lower bound is inclusive:
// an entry dated exactly 7 days ago belongs to a week query regardless of
// now's time of day. Subtraction is calendar-naive (7/30/90 days, not
// business-day aware).
func filterByPeriod(entries []models.SleepTrendEntry, period models.Period, now time.Time) []models.SleepTrendEntry {
	cutoff := repository.DayOf(now).AddDate(0, 0, -period.Days())
	filtered := make([]models.SleepTrendEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Date.Before(cutoff) && !e.Date.After(now) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// filterSessionsByPeriod is the session counterpart of filterByPeriod,
// keyed on the session start time.
func filterSessionsByPeriod(sessions []models.BreathingSession, period models.Period, now time.Time) []models.BreathingSession {
	cutoff := now.AddDate(0, 0, -period.Days())
	filtered := make([]models.BreathingSession, 0, len(sessions))
	for _, s := range sessions {
		if !s.StartTime.Before(cutoff) && !s.StartTime.After(now) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// sleepAggregates holds the arithmetic means over a filtered entry set.
type sleepAggregates struct {
	AvgQuality      float64
	AvgEnergy       float64
	AvgTimeToSleep  float64
	AvgNightWakeups float64
	QualityByDay    map[string]float64
}

// aggregateEntries computes means for quality, energy, time-to-fall-asleep
// and night wakeups, plus per-weekday quality means. Weekdays with no
// entries are absent from the map, not zero-filled. Callers must treat an
// empty entry set as insufficient data; this function is only defined over
// non-empty input.
func aggregateEntries(entries []models.SleepTrendEntry) sleepAggregates {
	agg := sleepAggregates{QualityByDay: make(map[string]float64)}

	var quality, energy, timeToSleep, wakeups []float64
	byDay := make(map[string][]float64)
	for _, e := range entries {
		quality = append(quality, float64(e.SleepQuality))
		energy = append(energy, float64(e.MorningEnergy))
		timeToSleep = append(timeToSleep, float64(e.TimeToFallAsleep))
		wakeups = append(wakeups, float64(e.NightWakeups))

		day := e.Date.Weekday().String()
		byDay[day] = append(byDay[day], float64(e.SleepQuality))
	}

	agg.AvgQuality = mean(quality)
	agg.AvgEnergy = mean(energy)
	agg.AvgTimeToSleep = mean(timeToSleep)
	agg.AvgNightWakeups = mean(wakeups)
	for day, values := range byDay {
		agg.QualityByDay[day] = mean(values)
	}
	return agg
}
