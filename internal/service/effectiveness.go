package service

import (
	"sort"

	"github.com/driftwell/backend/internal/models"
)

// maxRankedTechniques caps the effectiveness ranking length.
const maxRankedTechniques = 5

// rankTechniques groups the period's sessions by technique and ranks them
// by average improvement, descending. A session's improvement score is the
// mean of its next-morning sleep quality and post-session relaxation; a
// session missing either rating still counts toward usage but contributes
// no score. Techniques with zero scorable sessions rank with an average of
// 0 rather than being dropped.
func rankTechniques(sessions []models.BreathingSession) []models.TechniqueEffectiveness {
	type bucket struct {
		technique models.Technique
		scoreSum  float64
		scored    int
		used      int
	}

	buckets := make(map[models.Technique]*bucket)
	var order []models.Technique
	for _, s := range sessions {
		b, ok := buckets[s.Technique]
		if !ok {
			b = &bucket{technique: s.Technique}
			buckets[s.Technique] = b
			order = append(order, s.Technique)
		}
		b.used++
		if s.SleepQualityNextMorning != nil && s.RelaxationAfter != nil {
			b.scoreSum += (float64(*s.SleepQualityNextMorning) + float64(*s.RelaxationAfter)) / 2
			b.scored++
		}
	}

	ranked := make([]models.TechniqueEffectiveness, 0, len(order))
	for _, technique := range order {
		b := buckets[technique]
		avg := 0.0
		if b.scored > 0 {
			avg = b.scoreSum / float64(b.scored)
		}
		ranked = append(ranked, models.TechniqueEffectiveness{
			Technique:          technique,
			AverageImprovement: avg,
			UsageCount:         b.used,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageImprovement > ranked[j].AverageImprovement
	})
	if len(ranked) > maxRankedTechniques {
		ranked = ranked[:maxRankedTechniques]
	}
	return ranked
}

// breathingImpactOnSleep splits the period's entries into days with and
// without a breathing session and reports the normalized quality
// difference: (meanQuality(used) − meanQuality(unused)) / 10. If either
// subset is empty the impact is 0.
func breathingImpactOnSleep(entries []models.SleepTrendEntry) float64 {
	var used, unused []float64
	for _, e := range entries {
		if e.BreathingSessionUsed {
			used = append(used, float64(e.SleepQuality))
		} else {
			unused = append(unused, float64(e.SleepQuality))
		}
	}
	if len(used) == 0 || len(unused) == 0 {
		return 0
	}
	return (mean(used) - mean(unused)) / 10
}
