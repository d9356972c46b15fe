// internal/behavior/derive.go
// Converts one user's quiz answers into a behavioral profile

package behavior

import "strings"

// tally counts votes for the traits of one dimension and remembers
// the order in which traits were first seen.
type tally struct {
	order  []string
	counts map[string]int
}

func (t *tally) vote(trait string) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, seen := t.counts[trait]; !seen {
		t.order = append(t.order, trait)
	}
	t.counts[trait]++
}

// dominant returns the most voted trait. Ties go to the trait seen first.
func (t *tally) dominant(fallback string) string {
	best, bestCount := fallback, 0
	for _, trait := range t.order {
		if t.counts[trait] > bestCount {
			best, bestCount = trait, t.counts[trait]
		}
	}
	return best
}

// Derive builds a behavioral profile from answers. It never fails: simple,
// skipped or empty answers have no effect, and a nil set yields the default
// profile with every index at Baseline.
func Derive(answers *Answers) *Profile {
	tallies := make(map[Dimension]*tally, len(Dimensions))
	for _, dim := range Dimensions {
		tallies[dim] = &tally{}
	}

	totals := make(map[Index]int, len(AllIndexes))
	for _, idx := range AllIndexes {
		totals[idx] = Baseline
	}

	answers.Each(func(_ string, answer Answer) {
		dimensional, ok := answer.(DimensionalAnswer)
		if !ok {
			return
		}
		// iterate in fixed dimension order so the walk does not depend on map order
		for _, dim := range Dimensions {
			if trait, voted := dimensional.Dimensions[dim]; voted && IsTrait(dim, trait) {
				tallies[dim].vote(trait)
			}
		}
		for idx, delta := range dimensional.Weights {
			if _, known := totals[idx]; known {
				totals[idx] += delta
			}
		}
	})

	indexes := make(Indexes, len(totals))
	for idx, total := range totals {
		indexes[idx] = clamp(total)
	}

	var dominant DominantTraits
	for _, dim := range Dimensions {
		dominant.set(dim, tallies[dim].dominant(DefaultTrait(dim)))
	}

	profile := &Profile{
		ArchetypeName:         ArchetypeName(dominant.Get(AttachmentStyle), dominant.Get(LifeOrientation)),
		DominantTraits:        dominant,
		CalculatedIndexes:     indexes,
		BehavioralStrengths:   []string{},
		RiskPatterns:          []string{},
		DecisionBiases:        []string{},
		GrowthRecommendations: []string{},
	}
	applyRules(profile, Rules)

	return profile
}

// ArchetypeName combines an attachment trait and a life orientation trait,
// e.g. "anxious" and "explorer" become "Anxious Explorer".
func ArchetypeName(attachment, orientation string) string {
	return titleWords(attachment) + " " + titleWords(orientation)
}

func titleWords(trait string) string {
	words := strings.Split(trait, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func clamp(value int) int {
	if value < MinIndex {
		return MinIndex
	}
	if value > MaxIndex {
		return MaxIndex
	}
	return value
}
