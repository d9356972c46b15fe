package behavior

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func dimensional(dims map[Dimension]string, weights map[Index]int) DimensionalAnswer {
	return DimensionalAnswer{Dimensions: dims, Weights: weights}
}

func TestDerive_SecureSelfAwareScenario(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", dimensional(
		map[Dimension]string{AttachmentStyle: "secure"},
		map[Index]int{SelfAwarenessIndex: 25},
	))

	profile := Derive(answers)

	assert.Equal(t, "secure", profile.DominantTraits.Get(AttachmentStyle))
	assert.Equal(t, 75, profile.CalculatedIndexes[SelfAwarenessIndex])
	assert.Contains(t, profile.BehavioralStrengths, "High relational resilience")
	assert.Contains(t, profile.BehavioralStrengths, "High capacity for introspection")
	assert.Equal(t, "Secure Stable Builder", profile.ArchetypeName)
}

func TestDerive_IndexesClampedToRange(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", dimensional(nil, map[Index]int{ReactivityIndex: 400, SecurityVincularIndex: -90}))
	answers.Set("q2", dimensional(nil, map[Index]int{ReactivityIndex: 400, SecurityVincularIndex: -90}))

	profile := Derive(answers)

	assert.Equal(t, MaxIndex, profile.CalculatedIndexes[ReactivityIndex])
	assert.Equal(t, MinIndex, profile.CalculatedIndexes[SecurityVincularIndex])
	for _, idx := range AllIndexes {
		value := profile.CalculatedIndexes[idx]
		assert.GreaterOrEqual(t, value, MinIndex, idx)
		assert.LessOrEqual(t, value, MaxIndex, idx)
	}
}

func TestDerive_UntouchedIndexStaysAtBaseline(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", dimensional(nil, map[Index]int{ReactivityIndex: 10}))

	profile := Derive(answers)

	assert.Equal(t, 60, profile.CalculatedIndexes[ReactivityIndex])
	assert.Equal(t, Baseline, profile.CalculatedIndexes[EmotionalRegulationIndex])
	assert.Equal(t, Baseline, profile.CalculatedIndexes[SecurityVincularIndex])
	assert.Equal(t, Baseline, profile.CalculatedIndexes[SelfAwarenessIndex])
}

func TestDerive_OpposingDeltasCancelOut(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", dimensional(nil, map[Index]int{SelfAwarenessIndex: 30}))
	answers.Set("q2", dimensional(nil, map[Index]int{SelfAwarenessIndex: -30}))

	assert.Equal(t, Baseline, Derive(answers).CalculatedIndexes[SelfAwarenessIndex])
}

func TestDerive_FallbackTraitsWithoutVotes(t *testing.T) {
	tests := []struct {
		name    string
		answers *Answers
	}{
		{"nil answers", nil},
		{"empty answers", NewAnswers()},
		{"only simple answers", func() *Answers {
			a := NewAnswers()
			a.Set("q1", SimpleAnswer{Trait: "Deep Thinker", Kind: KindPositive})
			return a
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := Derive(tt.answers)

			for _, dim := range Dimensions {
				assert.Equal(t, DimensionTraits[dim][0], profile.DominantTraits.Get(dim))
				assert.True(t, IsTrait(dim, profile.DominantTraits.Get(dim)))
			}
			for _, idx := range AllIndexes {
				assert.Equal(t, Baseline, profile.CalculatedIndexes[idx])
			}
			assert.Equal(t, "Secure Stable Builder", profile.ArchetypeName)
		})
	}
}

func TestDerive_MostVotedTraitWins(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", dimensional(map[Dimension]string{LifeOrientation: "explorer"}, nil))
	answers.Set("q2", dimensional(map[Dimension]string{LifeOrientation: "creative_disruptor"}, nil))
	answers.Set("q3", dimensional(map[Dimension]string{LifeOrientation: "creative_disruptor"}, nil))

	profile := Derive(answers)

	assert.Equal(t, "creative_disruptor", profile.DominantTraits.Get(LifeOrientation))
}

func TestDerive_TieGoesToFirstInserted(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", dimensional(map[Dimension]string{AttachmentStyle: "anxious"}, nil))
	answers.Set("q2", dimensional(map[Dimension]string{AttachmentStyle: "avoidant"}, nil))
	answers.Set("q3", dimensional(map[Dimension]string{AttachmentStyle: "avoidant"}, nil))
	answers.Set("q4", dimensional(map[Dimension]string{AttachmentStyle: "anxious"}, nil))

	profile := Derive(answers)

	assert.Equal(t, "anxious", profile.DominantTraits.Get(AttachmentStyle))
}

func TestDerive_UnknownTraitsAndDimensionsIgnored(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", dimensional(map[Dimension]string{
		AttachmentStyle:      "chaotic",
		Dimension("zodiac"): "leo",
	}, map[Index]int{Index("charisma_index"): 30}))

	profile := Derive(answers)

	assert.Equal(t, "secure", profile.DominantTraits.Get(AttachmentStyle))
	assert.Len(t, profile.CalculatedIndexes, len(AllIndexes))
}

func TestDerive_AnxiousRules(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", dimensional(map[Dimension]string{
		AttachmentStyle: "anxious",
		LifeOrientation: "explorer",
	}, nil))

	profile := Derive(answers)

	assert.Equal(t, "Anxious Explorer", profile.ArchetypeName)
	assert.Contains(t, profile.RiskPatterns, "Tendency to prioritize others' needs over self")
	assert.Contains(t, profile.DecisionBiases, "Fear-based commitment")
	assert.NotContains(t, profile.BehavioralStrengths, "High relational resilience")
}

func TestDerive_DominantTraitValuesInDimensionOrder(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", dimensional(map[Dimension]string{
		LifeOrientation: "protector_pragmatic",
		EnergyStyle:     "extrovert_impulsive",
		ConflictStyle:   "withdrawer",
	}, nil))

	values := Derive(answers).DominantTraits.Values()

	assert.Equal(t, []string{
		"extrovert_impulsive",
		"conscious_regulator",
		"secure",
		"withdrawer",
		"protector_pragmatic",
	}, values)
}

func TestArchetypeName(t *testing.T) {
	tests := []struct {
		attachment  string
		orientation string
		want        string
	}{
		{"secure", "explorer", "Secure Explorer"},
		{"anxious", "stable_builder", "Anxious Stable Builder"},
		{"ambivalent", "protector_pragmatic", "Ambivalent Protector Pragmatic"},
		{"avoidant", "creative_disruptor", "Avoidant Creative Disruptor"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := ArchetypeName(tt.attachment, tt.orientation)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "_")
			assert.NotContains(t, got, "  ")
		})
	}
}

func TestArchetypeName_AllCombinations(t *testing.T) {
	for _, attachment := range DimensionTraits[AttachmentStyle] {
		for _, orientation := range DimensionTraits[LifeOrientation] {
			name := ArchetypeName(attachment, orientation)
			assert.False(t, strings.Contains(name, "_"), name)
			assert.Equal(t, strings.Join(strings.Fields(name), " "), name)
		}
	}
}

func TestAnswers_UnmarshalJSONKeepsOrder(t *testing.T) {
	doc := `{
		"q2": {"dimensions": {"attachment_style": "avoidant"}},
		"intent": "Mirror",
		"q1": {"dimensions": {"attachment_style": "anxious"}, "weights": {"reactivity_index": 15}},
		"interests": ["Music", "Art"],
		"q3": {"trait": "Deep Thinker", "type": "positive"},
		"q4": {}
	}`

	var answers Answers
	require.NoError(t, json.Unmarshal([]byte(doc), &answers))

	var ids []string
	answers.Each(func(id string, _ Answer) { ids = append(ids, id) })
	assert.Equal(t, []string{"q2", "q1", "q3"}, ids)
	assert.ElementsMatch(t, []string{"intent", "interests", "q4"}, answers.Skipped())

	q3, ok := answers.Get("q3")
	require.True(t, ok)
	assert.IsType(t, SimpleAnswer{}, q3)

	// avoidant was tallied first, so it wins the one-to-one tie
	profile := Derive(&answers)
	assert.Equal(t, "avoidant", profile.DominantTraits.Get(AttachmentStyle))
	assert.Equal(t, 65, profile.CalculatedIndexes[ReactivityIndex])
}

func TestAnswers_UnmarshalJSONRejectsNonObject(t *testing.T) {
	var answers Answers
	assert.Error(t, json.Unmarshal([]byte(`["q1"]`), &answers))
}

func TestAnswers_UnmarshalYAMLKeepsOrder(t *testing.T) {
	doc := `
q9:
  dimensions:
    life_orientation: explorer
q1:
  dimensions:
    life_orientation: stable_builder
  weights:
    self_awareness_index: 30
intent: Eclipse
`
	var answers Answers
	require.NoError(t, yaml.Unmarshal([]byte(doc), &answers))

	assert.Equal(t, 2, answers.Len())
	assert.Equal(t, []string{"intent"}, answers.Skipped())

	profile := Derive(&answers)
	assert.Equal(t, "explorer", profile.DominantTraits.Get(LifeOrientation))
	assert.Equal(t, 80, profile.CalculatedIndexes[SelfAwarenessIndex])
	assert.Contains(t, profile.BehavioralStrengths, "High capacity for introspection")
}

func TestAnswers_SetReplacesInPlace(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", dimensional(map[Dimension]string{AttachmentStyle: "anxious"}, nil))
	answers.Set("q2", dimensional(map[Dimension]string{AttachmentStyle: "avoidant"}, nil))
	answers.Set("q1", dimensional(map[Dimension]string{AttachmentStyle: "ambivalent"}, nil))

	var ids []string
	answers.Each(func(id string, _ Answer) { ids = append(ids, id) })

	assert.Equal(t, []string{"q1", "q2"}, ids)
	assert.Equal(t, "ambivalent", Derive(answers).DominantTraits.Get(AttachmentStyle))
}

func TestCollectTraits(t *testing.T) {
	answers := NewAnswers()
	answers.Set("q1", SimpleAnswer{Trait: "Deep Thinker", Kind: KindPositive})
	answers.Set("q2", DimensionalAnswer{Trait: "Abandonment Issues", Kind: KindTrauma})
	answers.Set("q3", SimpleAnswer{Trait: "Deep Thinker", Kind: KindPositive})
	answers.Set("q4", SimpleAnswer{Trait: "Loneliness", Kind: KindTrauma})

	positive, traumas := CollectTraits(answers)

	assert.Equal(t, []string{"Deep Thinker"}, positive)
	assert.Equal(t, []string{"Abandonment Issues", "Loneliness"}, traumas)
}

func TestIndexes_GetDefaultsToBaseline(t *testing.T) {
	indexes := Indexes{ReactivityIndex: 0}

	assert.Equal(t, 0, indexes.Get(ReactivityIndex))
	assert.Equal(t, Baseline, indexes.Get(SecurityVincularIndex))

	var profile *Profile
	assert.Equal(t, Baseline, profile.Index(SecurityVincularIndex))
}
