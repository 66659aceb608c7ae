package service

import (
	"reflect"
	"testing"

	"github.com/driftwell/backend/internal/models"
)

func TestRecommendTechniques_RuleTableInTagOrder(t *testing.T) {
	profile := &models.SleepProfile{
		SleepChallenges: []string{models.ChallengeRacingThoughts, models.ChallengeFallingAsleep},
	}
	got := recommendTechniques(profile, nil)
	want := []models.Technique{models.TechniqueBoxBreathing, models.TechniqueFourSevenEight}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRecommendTechniques_UnknownChallengeIgnored(t *testing.T) {
	profile := &models.SleepProfile{
		SleepChallenges: []string{"snoring", models.ChallengeAnxietyBedtime},
	}
	got := recommendTechniques(profile, nil)
	want := []models.Technique{models.TechniqueExtendedExhale}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRecommendTechniques_Deduplicates(t *testing.T) {
	// box-breathing arrives both from the rule table and from real usage
	// outcomes; it must appear exactly once.
	profile := &models.SleepProfile{
		SleepChallenges: []string{models.ChallengeRacingThoughts},
	}
	ranked := []models.TechniqueEffectiveness{
		{Technique: models.TechniqueBoxBreathing, AverageImprovement: 8, UsageCount: 4},
		{Technique: models.TechniqueCoherentBreathing, AverageImprovement: 7, UsageCount: 2},
	}

	got := recommendTechniques(profile, ranked)
	count := 0
	for _, technique := range got {
		if technique == models.TechniqueBoxBreathing {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected box-breathing exactly once, got %d occurrences in %v", count, got)
	}
}

func TestRecommendTechniques_TruncatesToThree(t *testing.T) {
	profile := &models.SleepProfile{
		SleepChallenges: []string{
			models.ChallengeFallingAsleep,
			models.ChallengeRacingThoughts,
			models.ChallengePhysicalTension,
			models.ChallengeAnxietyBedtime,
		},
	}
	ranked := []models.TechniqueEffectiveness{
		{Technique: "alternate-nostril", AverageImprovement: 9, UsageCount: 1},
	}

	got := recommendTechniques(profile, ranked)
	if len(got) != 3 {
		t.Fatalf("expected 3 recommendations, got %d: %v", len(got), got)
	}
	// Rule-table matches come first, in the profile's tag order.
	want := []models.Technique{
		models.TechniqueFourSevenEight,
		models.TechniqueBoxBreathing,
		models.TechniqueCoherentBreathing,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRecommendTechniques_TopTwoRankedOnly(t *testing.T) {
	ranked := []models.TechniqueEffectiveness{
		{Technique: models.TechniqueBoxBreathing, AverageImprovement: 9},
		{Technique: models.TechniqueCoherentBreathing, AverageImprovement: 8},
		{Technique: models.TechniqueExtendedExhale, AverageImprovement: 7},
	}
	got := recommendTechniques(&models.SleepProfile{}, ranked)
	want := []models.Technique{models.TechniqueBoxBreathing, models.TechniqueCoherentBreathing}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected only the top 2 ranked techniques, got %v", got)
	}
}

func TestSuggestWindDownAdjustments_AllRulesIndependent(t *testing.T) {
	agg := sleepAggregates{
		AvgTimeToSleep: 25, // > 20
		AvgQuality:     5,  // < 6
		AvgEnergy:      4,  // < 5
	}
	entries := []models.SleepTrendEntry{
		{SleepQuality: 5, StressLevelBeforeBed: intPtr(8)}, // > 6
	}

	got := suggestWindDownAdjustments(agg, entries)
	want := []string{
		suggestWindDownRoutine,
		suggestReduceScreenTime,
		suggestConsistentWakeups,
		suggestStressBreathing,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected all four suggestions, got %v", got)
	}
}

func TestSuggestWindDownAdjustments_NoneTriggered(t *testing.T) {
	agg := sleepAggregates{
		AvgTimeToSleep: 10,
		AvgQuality:     8,
		AvgEnergy:      7,
	}
	entries := []models.SleepTrendEntry{
		{SleepQuality: 8, StressLevelBeforeBed: intPtr(3)},
	}
	if got := suggestWindDownAdjustments(agg, entries); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestSuggestWindDownAdjustments_ThresholdsAreStrict(t *testing.T) {
	// Values at the thresholds exactly do not trigger.
	agg := sleepAggregates{
		AvgTimeToSleep: 20,
		AvgQuality:     6,
		AvgEnergy:      5,
	}
	entries := []models.SleepTrendEntry{
		{SleepQuality: 6, StressLevelBeforeBed: intPtr(6)},
	}
	if got := suggestWindDownAdjustments(agg, entries); len(got) != 0 {
		t.Errorf("expected no suggestions at exact thresholds, got %v", got)
	}
}

func TestSuggestWindDownAdjustments_StressRuleEmittedOnce(t *testing.T) {
	agg := sleepAggregates{AvgTimeToSleep: 10, AvgQuality: 8, AvgEnergy: 7}
	entries := []models.SleepTrendEntry{
		{StressLevelBeforeBed: intPtr(9)},
		{StressLevelBeforeBed: intPtr(8)},
	}
	got := suggestWindDownAdjustments(agg, entries)
	if len(got) != 1 || got[0] != suggestStressBreathing {
		t.Errorf("expected the stress suggestion exactly once, got %v", got)
	}
}
