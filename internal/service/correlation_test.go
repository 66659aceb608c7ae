package service

import (
	"testing"

	"github.com/driftwell/backend/internal/models"
)

func intPtr(v int) *int { return &v }

// entriesWithQuality builds one entry per element, most recent first.
func entriesWithQuality(qualities ...int) []models.SleepTrendEntry {
	entries := make([]models.SleepTrendEntry, len(qualities))
	for i, q := range qualities {
		entries[i] = entryOn(i, q)
	}
	return entries
}

func qualityOf(e models.SleepTrendEntry) float64 { return float64(e.SleepQuality) }

func TestClassifyTrend_StableWhenMeansEqual(t *testing.T) {
	// Recent 14 and older 14 share the same mean exactly.
	var qualities []int
	for i := 0; i < 28; i++ {
		qualities = append(qualities, 6)
	}
	if got := classifyTrend(entriesWithQuality(qualities...), qualityOf); got != models.TrendStable {
		t.Errorf("expected stable when means are equal, got %s", got)
	}
}

func TestClassifyTrend_Improving(t *testing.T) {
	var qualities []int
	for i := 0; i < 14; i++ {
		qualities = append(qualities, 8) // recent half
	}
	for i := 0; i < 14; i++ {
		qualities = append(qualities, 5) // older half
	}
	if got := classifyTrend(entriesWithQuality(qualities...), qualityOf); got != models.TrendImproving {
		t.Errorf("expected improving, got %s", got)
	}
}

func TestClassifyTrend_Declining(t *testing.T) {
	var qualities []int
	for i := 0; i < 14; i++ {
		qualities = append(qualities, 4)
	}
	for i := 0; i < 14; i++ {
		qualities = append(qualities, 8)
	}
	if got := classifyTrend(entriesWithQuality(qualities...), qualityOf); got != models.TrendDeclining {
		t.Errorf("expected declining, got %s", got)
	}
}

func TestClassifyTrend_SmallShiftIsStable(t *testing.T) {
	// A 0.5 shift does not cross the strict > 0.5 threshold.
	var qualities []int
	for i := 0; i < 14; i++ {
		qualities = append(qualities, 6)
	}
	for i := 0; i < 7; i++ {
		qualities = append(qualities, 5, 6) // older mean 5.5
	}
	if got := classifyTrend(entriesWithQuality(qualities...), qualityOf); got != models.TrendStable {
		t.Errorf("expected stable for a shift of exactly 0.5, got %s", got)
	}
}

func TestClassifyTrend_EmptyOlderHalfDefaultsStable(t *testing.T) {
	// 14 or fewer entries leave the older half empty.
	if got := classifyTrend(entriesWithQuality(9, 9, 9, 9, 9), qualityOf); got != models.TrendStable {
		t.Errorf("expected stable with an empty older half, got %s", got)
	}
	if got := classifyTrend(nil, qualityOf); got != models.TrendStable {
		t.Errorf("expected stable with no entries, got %s", got)
	}
}

func TestClassifyConsistencyTrend_VarianceDecreaseImproves(t *testing.T) {
	// Older half alternates 2 and 10 (high variance); recent half is
	// constant (zero variance). Less variance means more consistent.
	var qualities []int
	for i := 0; i < 14; i++ {
		qualities = append(qualities, 6)
	}
	for i := 0; i < 7; i++ {
		qualities = append(qualities, 2, 10)
	}
	if got := classifyConsistencyTrend(entriesWithQuality(qualities...)); got != models.TrendImproving {
		t.Errorf("expected improving when variance decreases, got %s", got)
	}
}

func TestClassifyConsistencyTrend_VarianceIncreaseDeclines(t *testing.T) {
	var qualities []int
	for i := 0; i < 7; i++ {
		qualities = append(qualities, 2, 10)
	}
	for i := 0; i < 14; i++ {
		qualities = append(qualities, 6)
	}
	if got := classifyConsistencyTrend(entriesWithQuality(qualities...)); got != models.TrendDeclining {
		t.Errorf("expected declining when variance increases, got %s", got)
	}
}

func TestClassifyConsistencyTrend_EmptyHalfDefaultsStable(t *testing.T) {
	if got := classifyConsistencyTrend(entriesWithQuality(4, 9, 2)); got != models.TrendStable {
		t.Errorf("expected stable with an empty older half, got %s", got)
	}
}

func TestStressSleepImpact_AbsoluteValue(t *testing.T) {
	// Higher stress tracks lower quality: strongly negative correlation,
	// reported as a positive magnitude.
	entries := []models.SleepTrendEntry{
		{SleepQuality: 9, StressLevelBeforeBed: intPtr(2)},
		{SleepQuality: 7, StressLevelBeforeBed: intPtr(4)},
		{SleepQuality: 5, StressLevelBeforeBed: intPtr(6)},
		{SleepQuality: 3, StressLevelBeforeBed: intPtr(8)},
	}
	got := stressSleepImpact(entries)
	if !almostEqual(got, 1.0) {
		t.Errorf("expected impact magnitude 1.0, got %f", got)
	}
}

func TestStressSleepImpact_SkipsEntriesWithoutStress(t *testing.T) {
	entries := []models.SleepTrendEntry{
		{SleepQuality: 9},
		{SleepQuality: 7, StressLevelBeforeBed: intPtr(4)},
	}
	// Only one scorable pair remains, below the 2-pair minimum.
	if got := stressSleepImpact(entries); got != 0 {
		t.Errorf("expected 0 with fewer than 2 pairs, got %f", got)
	}
}
