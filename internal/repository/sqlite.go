package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/driftwell/backend/internal/models"
)

// SQLiteStore is the durable persistence adapter, implementing all three
// repository interfaces on a single SQLite database.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens or creates the database at dbPath, creating the parent
// directory if needed and running migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// WAL improves concurrent read performance for analytics queries.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

// OpenSQLiteInMemory opens an in-memory database, useful for testing.
func OpenSQLiteInMemory() (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.conn.Close() }

func (s *SQLiteStore) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sleep_profiles (
			user_id           TEXT PRIMARY KEY,
			bedtime           TEXT NOT NULL,
			wake_time         TEXT NOT NULL,
			sleep_challenges  TEXT NOT NULL,
			wind_down_routine TEXT NOT NULL,
			sleep_goals       TEXT NOT NULL,
			created_at        TEXT NOT NULL,
			updated_at        TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS sleep_trend_entries (
			id                      TEXT PRIMARY KEY,
			user_id                 TEXT NOT NULL,
			date                    TEXT NOT NULL,
			sleep_quality           INTEGER NOT NULL,
			morning_energy          INTEGER NOT NULL,
			time_to_fall_asleep     INTEGER NOT NULL,
			night_wakeups           INTEGER NOT NULL,
			total_sleep_time        REAL NOT NULL,
			breathing_session_used  BOOLEAN NOT NULL,
			stress_level_before_bed INTEGER,
			wind_down_activities    TEXT NOT NULL,
			notes                   TEXT,
			created_at              TEXT NOT NULL,
			updated_at              TEXT NOT NULL,
			UNIQUE (user_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS breathing_sessions (
			id                         TEXT PRIMARY KEY,
			user_id                    TEXT NOT NULL,
			technique                  TEXT NOT NULL,
			purpose                    TEXT NOT NULL,
			start_time                 TEXT NOT NULL,
			duration_seconds           INTEGER NOT NULL,
			time_relative_to_bedtime   INTEGER NOT NULL,
			stress_level_before        INTEGER,
			physical_tension_before    INTEGER,
			mental_activity_before     INTEGER,
			relaxation_after           INTEGER,
			sleep_quality_next_morning INTEGER,
			would_use_again            BOOLEAN NOT NULL,
			guidance                   TEXT NOT NULL,
			completed                  BOOLEAN NOT NULL,
			created_at                 TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_trend_entries_user_date
			ON sleep_trend_entries (user_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_breathing_sessions_user_start
			ON breathing_sessions (user_id, start_time)`,
	}

	for _, stmt := range statements {
		if _, err := s.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration: %w", err)
		}
	}
	return nil
}

// Profiles returns the ProfileRepository view of the store.
func (s *SQLiteStore) Profiles() ProfileRepository { return s }

// Trends returns the TrendRepository view of the store.
func (s *SQLiteStore) Trends() TrendRepository { return (*sqliteTrends)(s) }

// Sessions returns the SessionRepository view of the store.
func (s *SQLiteStore) Sessions() SessionRepository { return (*sqliteSessions)(s) }

func marshalTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func unmarshalTags(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

func (s *SQLiteStore) Upsert(ctx context.Context, profile *models.SleepProfile) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO sleep_profiles
		 (user_id, bedtime, wake_time, sleep_challenges, wind_down_routine, sleep_goals, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			bedtime = excluded.bedtime,
			wake_time = excluded.wake_time,
			sleep_challenges = excluded.sleep_challenges,
			wind_down_routine = excluded.wind_down_routine,
			sleep_goals = excluded.sleep_goals,
			updated_at = excluded.updated_at`,
		profile.UserID, profile.Bedtime, profile.WakeTime,
		marshalTags(profile.SleepChallenges), marshalTags(profile.WindDownRoutine),
		marshalTags(profile.SleepGoals),
		profile.CreatedAt.UTC().Format(time.RFC3339Nano),
		profile.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetByUserID(ctx context.Context, userID string) (*models.SleepProfile, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT user_id, bedtime, wake_time, sleep_challenges, wind_down_routine, sleep_goals, created_at, updated_at
		 FROM sleep_profiles WHERE user_id = ?`, userID)

	var p models.SleepProfile
	var challenges, routine, goals, createdAt, updatedAt string
	err := row.Scan(&p.UserID, &p.Bedtime, &p.WakeTime, &challenges, &routine, &goals, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.SleepChallenges = unmarshalTags(challenges)
	p.WindDownRoutine = unmarshalTags(routine)
	p.SleepGoals = unmarshalTags(goals)
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &p, nil
}

type sqliteTrends SQLiteStore

func (s *sqliteTrends) Upsert(ctx context.Context, entry *models.SleepTrendEntry) error {
	day := DayOf(entry.Date)
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO sleep_trend_entries
		 (id, user_id, date, sleep_quality, morning_energy, time_to_fall_asleep, night_wakeups,
		  total_sleep_time, breathing_session_used, stress_level_before_bed, wind_down_activities,
		  notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			sleep_quality = excluded.sleep_quality,
			morning_energy = excluded.morning_energy,
			time_to_fall_asleep = excluded.time_to_fall_asleep,
			night_wakeups = excluded.night_wakeups,
			total_sleep_time = excluded.total_sleep_time,
			breathing_session_used = excluded.breathing_session_used,
			stress_level_before_bed = excluded.stress_level_before_bed,
			wind_down_activities = excluded.wind_down_activities,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		entry.ID, entry.UserID, day.Format(time.RFC3339),
		entry.SleepQuality, entry.MorningEnergy, entry.TimeToFallAsleep, entry.NightWakeups,
		entry.TotalSleepTime, entry.BreathingSessionUsed, entry.StressLevelBeforeBed,
		marshalTags(entry.WindDownActivities), entry.Notes,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		entry.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert trend entry: %w", err)
	}
	return nil
}

func (s *sqliteTrends) GetByUserID(ctx context.Context, userID string) ([]models.SleepTrendEntry, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, user_id, date, sleep_quality, morning_energy, time_to_fall_asleep, night_wakeups,
			total_sleep_time, breathing_session_used, stress_level_before_bed, wind_down_activities,
			notes, created_at, updated_at
		 FROM sleep_trend_entries WHERE user_id = ? ORDER BY date ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list trend entries: %w", err)
	}
	defer rows.Close()

	var entries []models.SleepTrendEntry
	for rows.Next() {
		e, err := scanTrendEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *sqliteTrends) GetByUserIDAndDate(ctx context.Context, userID string, day time.Time) (*models.SleepTrendEntry, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, user_id, date, sleep_quality, morning_energy, time_to_fall_asleep, night_wakeups,
			total_sleep_time, breathing_session_used, stress_level_before_bed, wind_down_activities,
			notes, created_at, updated_at
		 FROM sleep_trend_entries WHERE user_id = ? AND date = ?`,
		userID, DayOf(day).Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("get trend entry: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return scanTrendEntry(rows)
}

func scanTrendEntry(rows *sql.Rows) (*models.SleepTrendEntry, error) {
	var e models.SleepTrendEntry
	var date, activities, createdAt, updatedAt string
	var stress sql.NullInt64
	var notes sql.NullString
	err := rows.Scan(&e.ID, &e.UserID, &date, &e.SleepQuality, &e.MorningEnergy,
		&e.TimeToFallAsleep, &e.NightWakeups, &e.TotalSleepTime, &e.BreathingSessionUsed,
		&stress, &activities, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan trend entry: %w", err)
	}
	e.Date, _ = time.Parse(time.RFC3339, date)
	if stress.Valid {
		v := int(stress.Int64)
		e.StressLevelBeforeBed = &v
	}
	e.WindDownActivities = unmarshalTags(activities)
	if notes.Valid {
		e.Notes = &notes.String
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &e, nil
}

type sqliteSessions SQLiteStore

func (s *sqliteSessions) Create(ctx context.Context, session *models.BreathingSession) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO breathing_sessions
		 (id, user_id, technique, purpose, start_time, duration_seconds, time_relative_to_bedtime,
		  stress_level_before, physical_tension_before, mental_activity_before, relaxation_after,
		  sleep_quality_next_morning, would_use_again, guidance, completed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.UserID, string(session.Technique), session.Purpose,
		session.StartTime.UTC().Format(time.RFC3339Nano),
		session.DurationSeconds, session.TimeRelativeToBedtime,
		session.StressLevelBefore, session.PhysicalTensionBefore, session.MentalActivityBefore,
		session.RelaxationAfter, session.SleepQualityNextMorning,
		session.WouldUseAgain, string(session.Guidance), session.Completed,
		session.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create breathing session: %w", err)
	}
	return nil
}

func (s *sqliteSessions) GetByUserID(ctx context.Context, userID string) ([]models.BreathingSession, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, user_id, technique, purpose, start_time, duration_seconds, time_relative_to_bedtime,
			stress_level_before, physical_tension_before, mental_activity_before, relaxation_after,
			sleep_quality_next_morning, would_use_again, guidance, completed, created_at
		 FROM breathing_sessions WHERE user_id = ? ORDER BY start_time ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list breathing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.BreathingSession
	for rows.Next() {
		var b models.BreathingSession
		var technique, guidance, startTime, createdAt string
		var stress, tension, mental, relax, nextQuality sql.NullInt64
		err := rows.Scan(&b.ID, &b.UserID, &technique, &b.Purpose, &startTime,
			&b.DurationSeconds, &b.TimeRelativeToBedtime,
			&stress, &tension, &mental, &relax, &nextQuality,
			&b.WouldUseAgain, &guidance, &b.Completed, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan breathing session: %w", err)
		}
		b.Technique = models.Technique(technique)
		b.Guidance = models.GuidanceMode(guidance)
		b.StartTime, _ = time.Parse(time.RFC3339Nano, startTime)
		b.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		b.StressLevelBefore = nullableInt(stress)
		b.PhysicalTensionBefore = nullableInt(tension)
		b.MentalActivityBefore = nullableInt(mental)
		b.RelaxationAfter = nullableInt(relax)
		b.SleepQualityNextMorning = nullableInt(nextQuality)
		sessions = append(sessions, b)
	}
	return sessions, rows.Err()
}
