// internal/behavior/rules.go
// Advisory strengths, risks and biases keyed on dominant traits and index thresholds

package behavior

// Effect lists the advisory entries a rule adds to a profile
type Effect struct {
	Strengths []string
	Risks     []string
	Biases    []string
	Growth    []string
}

// Rule pairs a predicate over a derived profile with the entries it adds
type Rule struct {
	Name   string
	When   func(p *Profile) bool
	Effect Effect
}

// Rules is evaluated in order on every derived profile
var Rules = []Rule{
	{
		Name: "secure_attachment",
		When: traitIs(AttachmentStyle, TraitSecure),
		Effect: Effect{
			Strengths: []string{"High relational resilience", "Effective emotional communication"},
		},
	},
	{
		Name: "anxious_attachment",
		When: traitIs(AttachmentStyle, TraitAnxious),
		Effect: Effect{
			Risks:  []string{"Tendency to prioritize others' needs over self"},
			Biases: []string{"Fear-based commitment"},
			Growth: []string{"Build routines that soothe without reassurance from others"},
		},
	},
	{
		Name: "avoidant_attachment",
		When: traitIs(AttachmentStyle, TraitAvoidant),
		Effect: Effect{
			Risks:  []string{"Withdraws as intimacy increases"},
			Growth: []string{"Name your needs before stepping back"},
		},
	},
	{
		Name: "high_self_awareness",
		When: indexAbove(SelfAwarenessIndex, 70),
		Effect: Effect{
			Strengths: []string{"High capacity for introspection"},
		},
	},
	{
		Name: "high_regulation",
		When: indexAbove(EmotionalRegulationIndex, 70),
		Effect: Effect{
			Strengths: []string{"Stays grounded under pressure"},
		},
	},
	{
		Name: "high_reactivity",
		When: indexAbove(ReactivityIndex, 70),
		Effect: Effect{
			Risks:  []string{"Escalates quickly under stress"},
			Growth: []string{"Pause before responding in conflict"},
		},
	},
	{
		Name: "low_security",
		When: indexBelow(SecurityVincularIndex, 30),
		Effect: Effect{
			Biases: []string{"Reads ambiguity as rejection"},
		},
	},
	{
		Name: "people_pleaser",
		When: traitIs(ConflictStyle, TraitPeoplePleaser),
		Effect: Effect{
			Risks: []string{"Avoids conflict at the cost of own needs"},
		},
	},
}

func applyRules(p *Profile, rules []Rule) {
	for _, rule := range rules {
		if rule.When == nil || !rule.When(p) {
			continue
		}
		p.BehavioralStrengths = append(p.BehavioralStrengths, rule.Effect.Strengths...)
		p.RiskPatterns = append(p.RiskPatterns, rule.Effect.Risks...)
		p.DecisionBiases = append(p.DecisionBiases, rule.Effect.Biases...)
		p.GrowthRecommendations = append(p.GrowthRecommendations, rule.Effect.Growth...)
	}
}

func traitIs(dim Dimension, trait string) func(*Profile) bool {
	return func(p *Profile) bool {
		return p.DominantTraits.Get(dim) == trait
	}
}

func indexAbove(idx Index, threshold int) func(*Profile) bool {
	return func(p *Profile) bool {
		return p.CalculatedIndexes.Get(idx) > threshold
	}
}

func indexBelow(idx Index, threshold int) func(*Profile) bool {
	return func(p *Profile) bool {
		return p.CalculatedIndexes.Get(idx) < threshold
	}
}
