// internal/dating/matching.go
// Compatibility scoring between two user records

package dating

import (
	"math"
	"sort"

	"github.com/imadgeboyega/soulbond-backend/internal/behavior"
	"github.com/imadgeboyega/soulbond-backend/internal/profile"
)

// Score weights
const (
	baseChemistry        = 25
	sameArchetypeBonus   = 15
	complementaryBonus   = 15
	mirrorTraumaPoints   = 20
	eclipseBalancePoints = 15
	mixedTraumaPoints    = 10
	sharedInterestPoints = 5
	highIndexThreshold   = 70
	frequencySyncMinimum = 2 // strictly more shared interests than this
	maxScore             = 99
)

// Reason strings
const (
	ReasonComplementaryRegulation = "Complementary Regulation"
	ReasonKarmicBalance           = "Karmic Balance"
	ReasonEchoOfThePast           = "Echo of the Past"
	ReasonFrequencySync           = "Frequency Sync"
	sameArchetypePrefix           = "Same Archetype: "
	resonanceSuffix               = " Resonance"
)

// MatchingEngine scores and ranks users against each other
type MatchingEngine interface {
	Score(me, target *profile.User) MatchResult
	Rank(me *profile.User, candidates []*profile.User) []*ScoredCandidate
}

type matchingEngine struct{}

// NewMatchingEngine creates the default matching engine
func NewMatchingEngine() MatchingEngine {
	return &matchingEngine{}
}

func (m *matchingEngine) Score(me, target *profile.User) MatchResult {
	return ScoreCompatibility(me, target)
}

// Rank scores every candidate against me, best first. Equal scores keep
// the order candidates were given in.
func (m *matchingEngine) Rank(me *profile.User, candidates []*profile.User) []*ScoredCandidate {
	scored := make([]*ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil || (me != nil && candidate.ID == me.ID) {
			continue
		}
		result := ScoreCompatibility(me, candidate)
		scored = append(scored, &ScoredCandidate{
			UserID:  candidate.ID,
			Profile: candidate.Public(),
			Score:   result.Score,
			Reasons: result.Reasons,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// ScoreCompatibility scores target from me's point of view. The result is
// not symmetric when the two intents differ. A nil user scores zero.
func ScoreCompatibility(me, target *profile.User) MatchResult {
	if me == nil || target == nil {
		return MatchResult{Score: 0, Reasons: []string{}}
	}

	score := float64(baseChemistry)
	var reasons []string

	if me.BehavioralProfile != nil && target.BehavioralProfile != nil {
		mine, theirs := me.BehavioralProfile, target.BehavioralProfile

		avgSecurity := float64(mine.Index(behavior.SecurityVincularIndex)+theirs.Index(behavior.SecurityVincularIndex)) / 2
		score += avgSecurity / 10 * 5

		if mine.ArchetypeName != "" && mine.ArchetypeName == theirs.ArchetypeName {
			score += sameArchetypeBonus
			reasons = append(reasons, sameArchetypePrefix+mine.ArchetypeName)
		}

		if mine.Index(behavior.ReactivityIndex) > highIndexThreshold &&
			theirs.Index(behavior.EmotionalRegulationIndex) > highIndexThreshold {
			score += complementaryBonus
			reasons = append(reasons, ReasonComplementaryRegulation)
		}
	}

	myIntent, theirIntent := me.ResolvedIntent(), target.ResolvedIntent()
	sharedTraumas := intersect(me.Traumas, target.Traumas)

	switch {
	case myIntent == profile.IntentMirror && theirIntent == profile.IntentMirror:
		score += float64(mirrorTraumaPoints * len(sharedTraumas))
		if len(sharedTraumas) > 0 {
			reasons = append(reasons, sharedTraumas[0]+resonanceSuffix)
		}
	case myIntent == profile.IntentEclipse && theirIntent == profile.IntentEclipse:
		complementary := intersect(me.Positive, target.Traumas)
		score += float64(eclipseBalancePoints * len(complementary))
		if len(complementary) > 0 {
			reasons = append(reasons, ReasonKarmicBalance)
		}
	default:
		score += float64(mixedTraumaPoints * len(sharedTraumas))
		if len(sharedTraumas) > 0 {
			reasons = append(reasons, ReasonEchoOfThePast)
		}
	}

	sharedInterests := intersect(me.Interests, target.Interests)
	score += float64(sharedInterestPoints * len(sharedInterests))
	if len(sharedInterests) > frequencySyncMinimum {
		reasons = append(reasons, ReasonFrequencySync)
	}

	return MatchResult{
		Score:   finalize(score),
		Reasons: dedupe(reasons),
	}
}

func finalize(score float64) int {
	rounded := int(math.Round(score))
	if rounded > maxScore {
		return maxScore
	}
	if rounded < 0 {
		return 0
	}
	return rounded
}

// intersect returns the distinct values of a that also appear in b, in a's order
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}

	seen := make(map[string]bool, len(a))
	var out []string
	for _, v := range a {
		if inB[v] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
