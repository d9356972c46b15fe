// internal/behavior/profile.go

package behavior

import "time"

// Profile is a derived, immutable behavioral snapshot for one user.
// A new quiz submission replaces it wholesale.
type Profile struct {
	ArchetypeName         string         `json:"archetype_name"`
	DominantTraits        DominantTraits `json:"dominant_traits"`
	CalculatedIndexes     Indexes        `json:"calculated_indexes"`
	BehavioralStrengths   []string       `json:"behavioral_strengths"`
	RiskPatterns          []string       `json:"risk_patterns"`
	DecisionBiases        []string       `json:"decision_biases"`
	GrowthRecommendations []string       `json:"growth_recommendations"`
	DerivedAt             *time.Time     `json:"derived_at,omitempty"`
}

// DominantTraits holds the most voted trait of each dimension,
// positioned in the order of Dimensions.
type DominantTraits [5]string

// Get returns the dominant trait of a dimension
func (d DominantTraits) Get(dim Dimension) string {
	for i, candidate := range Dimensions {
		if candidate == dim {
			return d[i]
		}
	}
	return ""
}

// Values returns the dominant traits in fixed dimension order
func (d DominantTraits) Values() []string {
	values := make([]string, len(d))
	copy(values, d[:])
	return values
}

func (d *DominantTraits) set(dim Dimension, trait string) {
	for i, candidate := range Dimensions {
		if candidate == dim {
			d[i] = trait
			return
		}
	}
}

// Indexes holds the four 0-100 index values
type Indexes map[Index]int

// Get returns the value of an index, or Baseline when it is absent
func (ix Indexes) Get(idx Index) int {
	if value, ok := ix[idx]; ok {
		return value
	}
	return Baseline
}

// Index returns the value of an index on a possibly nil profile
func (p *Profile) Index(idx Index) int {
	if p == nil {
		return Baseline
	}
	return p.CalculatedIndexes.Get(idx)
}
