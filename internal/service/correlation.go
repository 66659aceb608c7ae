package service

import (
	"sort"

	"github.com/driftwell/backend/internal/models"
)

// splitWindowSize is the number of entries in each half of the split-window
// trend classifier.
const splitWindowSize = 14

// trendThreshold is the minimum mean (or variance) shift between the two
// halves before a trend stops being classified as stable.
const trendThreshold = 0.5

// splitRecentOlder orders entries most-recent-first and splits them into
// the most recent 14 and the preceding 14, non-overlapping.
func splitRecentOlder(entries []models.SleepTrendEntry) (recent, older []models.SleepTrendEntry) {
	sorted := append([]models.SleepTrendEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	if len(sorted) > splitWindowSize {
		recent = sorted[:splitWindowSize]
		rest := sorted[splitWindowSize:]
		if len(rest) > splitWindowSize {
			rest = rest[:splitWindowSize]
		}
		older = rest
	} else {
		recent = sorted
	}
	return recent, older
}

// classifyShift labels the movement from olderValue to recentValue where a
// positive shift is an improvement.
func classifyShift(recentValue, olderValue float64) models.TrendDirection {
	diff := recentValue - olderValue
	switch {
	case diff > trendThreshold:
		return models.TrendImproving
	case diff < -trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// classifyTrend compares the mean of extract() over the two split windows.
// If either half has zero entries the classification defaults to stable.
func classifyTrend(entries []models.SleepTrendEntry, extract func(models.SleepTrendEntry) float64) models.TrendDirection {
	recent, older := splitRecentOlder(entries)
	if len(recent) == 0 || len(older) == 0 {
		return models.TrendStable
	}
	return classifyShift(mean(values(recent, extract)), mean(values(older, extract)))
}

// classifyConsistencyTrend applies the split-window procedure to the
// variance of sleep quality. A variance decrease greater than the threshold
// is improving (more consistent), an increase is declining.
func classifyConsistencyTrend(entries []models.SleepTrendEntry) models.TrendDirection {
	recent, older := splitRecentOlder(entries)
	if len(recent) == 0 || len(older) == 0 {
		return models.TrendStable
	}
	quality := func(e models.SleepTrendEntry) float64 { return float64(e.SleepQuality) }
	// Inverted sign: lower variance is the improvement.
	return classifyShift(variance(values(older, quality)), variance(values(recent, quality)))
}

// stressSleepImpact pairs each entry that carries a pre-bed stress rating
// with that night's sleep quality and reports the absolute Pearson
// correlation — an impact magnitude, not a direction.
func stressSleepImpact(entries []models.SleepTrendEntry) float64 {
	var stress, quality []float64
	for _, e := range entries {
		if e.StressLevelBeforeBed == nil {
			continue
		}
		stress = append(stress, float64(*e.StressLevelBeforeBed))
		quality = append(quality, float64(e.SleepQuality))
	}
	r := pearsonCorrelation(stress, quality)
	if r < 0 {
		r = -r
	}
	return r
}

func values(entries []models.SleepTrendEntry, extract func(models.SleepTrendEntry) float64) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = extract(e)
	}
	return out
}
