package models

import "time"

// TrendDirection classifies the movement of a metric between two adjacent
// time windows.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// TechniqueEffectiveness is one row of the technique ranking: how a
// technique's sessions scored on self-reported outcomes within the period.
type TechniqueEffectiveness struct {
	Technique          Technique `json:"technique"`
	AverageImprovement float64   `json:"average_improvement"`
	UsageCount         int       `json:"usage_count"`
}

// SleepAnalytics is the derived, immutable snapshot for one user and
// period. It is never stored; every request recomputes it from the trend
// and session records.
type SleepAnalytics struct {
	UserID string `json:"user_id"`
	Period Period `json:"period"`

	// Aggregates over the period's trend entries.
	AverageSleepQuality     float64            `json:"average_sleep_quality"`
	AverageMorningEnergy    float64            `json:"average_morning_energy"`
	AverageTimeToFallAsleep float64            `json:"average_time_to_fall_asleep"`
	AverageNightWakeups     float64            `json:"average_night_wakeups"`
	SleepQualityByDayOfWeek map[string]float64 `json:"sleep_quality_by_day_of_week"`

	// Split-window classifications.
	QualityTrend     TrendDirection `json:"quality_trend"`
	EnergyTrend      TrendDirection `json:"energy_trend"`
	ConsistencyTrend TrendDirection `json:"consistency_trend"`

	// StressSleepImpact is the absolute Pearson correlation between
	// pre-bed stress and sleep quality (magnitude, not direction).
	StressSleepImpact float64 `json:"stress_sleep_impact"`

	// BreathingImpactOnSleep is the normalized quality difference between
	// days with and without a breathing session, in [-0.9, 0.9].
	BreathingImpactOnSleep float64 `json:"breathing_impact_on_sleep"`

	TechniqueEffectiveness         []TechniqueEffectiveness `json:"technique_effectiveness"`
	RecommendedBreathingTechniques []Technique              `json:"recommended_breathing_techniques"`
	SuggestedWindDownAdjustments   []string                 `json:"suggested_wind_down_adjustments"`

	EntryCount int       `json:"entry_count"`
	ComputedAt time.Time `json:"computed_at"`
}
