package service

import "github.com/driftwell/backend/internal/models"

// maxRecommendedTechniques caps the merged recommendation list.
const maxRecommendedTechniques = 3

// topRankedForRecommendation is how many techniques from real usage
// outcomes are merged into the recommendations.
const topRankedForRecommendation = 2

// challengeTechniques maps a declared sleep challenge to the technique
// recommended for it.
var challengeTechniques = map[string]models.Technique{
	models.ChallengeFallingAsleep:   models.TechniqueFourSevenEight,
	models.ChallengeRacingThoughts:  models.TechniqueBoxBreathing,
	models.ChallengePhysicalTension: models.TechniqueCoherentBreathing,
	models.ChallengeAnxietyBedtime:  models.TechniqueExtendedExhale,
}

// Wind-down suggestion thresholds over the period's aggregates.
const (
	slowSleepOnsetMinutes = 20
	lowQualityMean        = 6
	lowEnergyMean         = 5
	highStressLevel       = 6
)

// Fixed wind-down suggestion strings. The notification layer consumes
// these verbatim.
const (
	suggestWindDownRoutine   = "Try a 30-minute wind-down routine before bed to fall asleep faster"
	suggestReduceScreenTime  = "Reduce screen time in the hour before bed to improve sleep quality"
	suggestConsistentWakeups = "Keep a consistent sleep schedule, including weekends, to boost morning energy"
	suggestStressBreathing   = "Add an evening stress-reduction breathing session on high-stress days"
)

// recommendTechniques merges the rule-table matches for the profile's
// declared challenges (applied in the profile's tag order) with the top
// techniques from real usage outcomes, de-duplicates keeping the first
// occurrence, and truncates to three entries.
func recommendTechniques(profile *models.SleepProfile, ranked []models.TechniqueEffectiveness) []models.Technique {
	recommended := make([]models.Technique, 0, maxRecommendedTechniques)
	seen := make(map[models.Technique]bool)

	add := func(t models.Technique) {
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		recommended = append(recommended, t)
	}

	if profile != nil {
		for _, challenge := range profile.SleepChallenges {
			if technique, ok := challengeTechniques[challenge]; ok {
				add(technique)
			}
		}
	}

	for i, r := range ranked {
		if i >= topRankedForRecommendation {
			break
		}
		add(r.Technique)
	}

	if len(recommended) > maxRecommendedTechniques {
		recommended = recommended[:maxRecommendedTechniques]
	}
	return recommended
}

// suggestWindDownAdjustments evaluates the independent threshold rules
// against the period's aggregates and entries. All applicable suggestions
// are emitted; there is no early exit.
func suggestWindDownAdjustments(agg sleepAggregates, entries []models.SleepTrendEntry) []string {
	var suggestions []string

	if agg.AvgTimeToSleep > slowSleepOnsetMinutes {
		suggestions = append(suggestions, suggestWindDownRoutine)
	}
	if agg.AvgQuality < lowQualityMean {
		suggestions = append(suggestions, suggestReduceScreenTime)
	}
	if agg.AvgEnergy < lowEnergyMean {
		suggestions = append(suggestions, suggestConsistentWakeups)
	}
	for _, e := range entries {
		if e.StressLevelBeforeBed != nil && *e.StressLevelBeforeBed > highStressLevel {
			suggestions = append(suggestions, suggestStressBreathing)
			break
		}
	}

	return suggestions
}
