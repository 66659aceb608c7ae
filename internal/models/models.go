package models

import "time"

// Technique identifies a breathing technique.
type Technique string

const (
	TechniqueFourSevenEight    Technique = "four-seven-eight"
	TechniqueBoxBreathing      Technique = "box-breathing"
	TechniqueCoherentBreathing Technique = "coherent-breathing"
	TechniqueExtendedExhale    Technique = "extended-exhale"
)

// Sleep challenge tags a user can declare on their profile.
const (
	ChallengeFallingAsleep   = "falling-asleep"
	ChallengeRacingThoughts  = "racing-thoughts"
	ChallengePhysicalTension = "physical-tension"
	ChallengeAnxietyBedtime  = "anxiety-bedtime"
)

// GuidanceMode says whether a session was guided or self-directed.
type GuidanceMode string

const (
	GuidanceGuided       GuidanceMode = "guided"
	GuidanceSelfDirected GuidanceMode = "self-directed"
)

// Period is a trailing analytics window.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
)

// Days returns the window length in days. Unknown periods fall back to a
// month, matching the default query behavior.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodQuarter:
		return 90
	default:
		return 30
	}
}

// Valid reports whether p is one of the supported windows.
func (p Period) Valid() bool {
	return p == PeriodWeek || p == PeriodMonth || p == PeriodQuarter
}

// SleepProfile holds a user's sleep setup. One per user, created once and
// mutated only by explicit profile updates.
type SleepProfile struct {
	UserID          string    `json:"user_id"`
	Bedtime         string    `json:"bedtime"`   // wall-clock HH:MM, no timezone
	WakeTime        string    `json:"wake_time"` // wall-clock HH:MM, no timezone
	SleepChallenges []string  `json:"sleep_challenges"`
	WindDownRoutine []string  `json:"wind_down_routine"`
	SleepGoals      []string  `json:"sleep_goals"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SleepTrendEntry is one day's self-reported sleep outcome. There is one
// logical entry per user per calendar day; Date is truncated to the day.
type SleepTrendEntry struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	Date                 time.Time `json:"date"`
	SleepQuality         int       `json:"sleep_quality"`  // 1-10
	MorningEnergy        int       `json:"morning_energy"` // 1-10
	TimeToFallAsleep     int       `json:"time_to_fall_asleep"` // minutes
	NightWakeups         int       `json:"night_wakeups"`
	TotalSleepTime       float64   `json:"total_sleep_time"` // hours
	BreathingSessionUsed bool      `json:"breathing_session_used"`
	StressLevelBeforeBed *int      `json:"stress_level_before_bed,omitempty"` // 1-10
	WindDownActivities   []string  `json:"wind_down_activities,omitempty"`
	Notes                *string   `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// BreathingSession is one logged attempt at a breathing technique.
// Append-only: immutable once created.
type BreathingSession struct {
	ID                      string       `json:"id"`
	UserID                  string       `json:"user_id"`
	Technique               Technique    `json:"technique"`
	Purpose                 string       `json:"purpose"`
	StartTime               time.Time    `json:"start_time"`
	DurationSeconds         int          `json:"duration_seconds"`
	TimeRelativeToBedtime   int          `json:"time_relative_to_bedtime"` // minutes, negative = before bedtime
	StressLevelBefore       *int         `json:"stress_level_before,omitempty"`
	PhysicalTensionBefore   *int         `json:"physical_tension_before,omitempty"`
	MentalActivityBefore    *int         `json:"mental_activity_before,omitempty"`
	RelaxationAfter         *int         `json:"relaxation_after,omitempty"`
	SleepQualityNextMorning *int         `json:"sleep_quality_next_morning,omitempty"`
	WouldUseAgain           bool         `json:"would_use_again"`
	Guidance                GuidanceMode `json:"guidance"`
	Completed               bool         `json:"completed"`
	CreatedAt               time.Time    `json:"created_at"`
}

// SaveProfileRequest is the payload for saving (upserting) a sleep profile.
type SaveProfileRequest struct {
	Bedtime         string   `json:"bedtime" validate:"required,len=5"`
	WakeTime        string   `json:"wake_time" validate:"required,len=5"`
	SleepChallenges []string `json:"sleep_challenges" validate:"dive,required"`
	WindDownRoutine []string `json:"wind_down_routine" validate:"dive,required"`
	SleepGoals      []string `json:"sleep_goals" validate:"dive,required"`
}

// RecordDailySleepRequest is the payload for recording one day's sleep.
// Date defaults to today when omitted. Scores are rejected when out of
// range rather than clamped.
type RecordDailySleepRequest struct {
	Date                 *time.Time `json:"date"`
	SleepQuality         int        `json:"sleep_quality" validate:"gte=1,lte=10"`
	MorningEnergy        int        `json:"morning_energy" validate:"gte=1,lte=10"`
	TimeToFallAsleep     int        `json:"time_to_fall_asleep" validate:"gte=0"`
	NightWakeups         int        `json:"night_wakeups" validate:"gte=0"`
	TotalSleepTime       *float64   `json:"total_sleep_time" validate:"omitempty,gte=0"`
	StressLevelBeforeBed *int       `json:"stress_level_before_bed" validate:"omitempty,gte=1,lte=10"`
	WindDownActivities   []string   `json:"wind_down_activities" validate:"dive,required"`
	Notes                *string    `json:"notes"`
}

// RecordBreathingSessionRequest is the payload for logging a session.
type RecordBreathingSessionRequest struct {
	Technique               Technique    `json:"technique" validate:"required"`
	Purpose                 string       `json:"purpose"`
	StartTime               time.Time    `json:"start_time" validate:"required"`
	DurationSeconds         int          `json:"duration_seconds" validate:"gte=0"`
	TimeRelativeToBedtime   int          `json:"time_relative_to_bedtime"`
	StressLevelBefore       *int         `json:"stress_level_before" validate:"omitempty,gte=1,lte=10"`
	PhysicalTensionBefore   *int         `json:"physical_tension_before" validate:"omitempty,gte=1,lte=10"`
	MentalActivityBefore    *int         `json:"mental_activity_before" validate:"omitempty,gte=1,lte=10"`
	RelaxationAfter         *int         `json:"relaxation_after" validate:"omitempty,gte=1,lte=10"`
	SleepQualityNextMorning *int         `json:"sleep_quality_next_morning" validate:"omitempty,gte=1,lte=10"`
	WouldUseAgain           bool         `json:"would_use_again"`
	Guidance                GuidanceMode `json:"guidance" validate:"omitempty,oneof=guided self-directed"`
	Completed               bool         `json:"completed"`
}
