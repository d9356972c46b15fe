// internal/behavior/dimensions.go
// Fixed personality axes, their trait sets and the four weighted indexes

package behavior

// Dimension is one named axis of personality classification
type Dimension string

const (
	EnergyStyle              Dimension = "energy_style"
	EmotionalRegulationStyle Dimension = "emotional_regulation_style"
	AttachmentStyle          Dimension = "attachment_style"
	ConflictStyle            Dimension = "conflict_style"
	LifeOrientation          Dimension = "life_orientation"
)

// Dimensions lists every dimension in the order used for dominant traits
var Dimensions = []Dimension{
	EnergyStyle,
	EmotionalRegulationStyle,
	AttachmentStyle,
	ConflictStyle,
	LifeOrientation,
}

// DimensionTraits holds the enumerated traits of each dimension.
// The first trait of each list is the fallback when nobody voted.
var DimensionTraits = map[Dimension][]string{
	EnergyStyle:              {"introvert_regulated", "introvert_avoidant", "extrovert_expansive", "extrovert_impulsive"},
	EmotionalRegulationStyle: {"conscious_regulator", "reactive_intense", "emotional_avoidant", "affective_dependent"},
	AttachmentStyle:          {"secure", "anxious", "avoidant", "ambivalent"},
	ConflictStyle:            {"direct_resolver", "escalator", "withdrawer", "people_pleaser"},
	LifeOrientation:          {"stable_builder", "explorer", "creative_disruptor", "protector_pragmatic"},
}

// Attachment and orientation traits referenced by the rule table
const (
	TraitSecure     = "secure"
	TraitAnxious    = "anxious"
	TraitAvoidant   = "avoidant"
	TraitAmbivalent = "ambivalent"

	TraitDirectResolver = "direct_resolver"
	TraitEscalator      = "escalator"
	TraitWithdrawer     = "withdrawer"
	TraitPeoplePleaser  = "people_pleaser"
)

// Index is one of the four running psychological scores
type Index string

const (
	EmotionalRegulationIndex Index = "emotional_regulation_index"
	ReactivityIndex          Index = "reactivity_index"
	SecurityVincularIndex    Index = "security_vincular_index"
	SelfAwarenessIndex       Index = "self_awareness_index"
)

// AllIndexes lists the indexes in a stable order
var AllIndexes = []Index{
	EmotionalRegulationIndex,
	ReactivityIndex,
	SecurityVincularIndex,
	SelfAwarenessIndex,
}

// Index bounds
const (
	Baseline = 50
	MinIndex = 0
	MaxIndex = 100
)

// ParseDimension reports whether name is a known dimension
func ParseDimension(name string) (Dimension, bool) {
	for _, d := range Dimensions {
		if string(d) == name {
			return d, true
		}
	}
	return "", false
}

// ParseIndex reports whether name is a known index
func ParseIndex(name string) (Index, bool) {
	for _, idx := range AllIndexes {
		if string(idx) == name {
			return idx, true
		}
	}
	return "", false
}

// IsTrait reports whether trait belongs to the enumerated set of dim
func IsTrait(dim Dimension, trait string) bool {
	for _, t := range DimensionTraits[dim] {
		if t == trait {
			return true
		}
	}
	return false
}

// DefaultTrait returns the fallback trait of a dimension
func DefaultTrait(dim Dimension) string {
	traits := DimensionTraits[dim]
	if len(traits) == 0 {
		return ""
	}
	return traits[0]
}
