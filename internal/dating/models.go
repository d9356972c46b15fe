// internal/dating/models.go

package dating

import (
	"time"

	"github.com/imadgeboyega/soulbond-backend/internal/profile"
)

// MatchResult is a compatibility score between 0 and 99 with the reasons
// behind it, strongest first
type MatchResult struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// TopReason returns the first reason, or the fallback used when none applies
func (m MatchResult) TopReason() string {
	if len(m.Reasons) == 0 {
		return FallbackReason
	}
	return m.Reasons[0]
}

// FallbackReason is stored on matches whose score had no named reason
const FallbackReason = "Mysterious Spark"

// Match is one side of a mutual match. Every match is stored once per user.
type Match struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	MatchedUserID string    `json:"matched_user_id" db:"matched_user_id"`
	MatchReason   string    `json:"match_reason" db:"match_reason"`
	MatchScore    int       `json:"match_score" db:"match_score"`
	MatchedAt     time.Time `json:"matched_at" db:"matched_at"`

	MatchedUser *profile.PublicProfile `json:"matched_user,omitempty" db:"-"`
}

// SwipeOutcome describes what a swipe led to
type SwipeOutcome string

const (
	OutcomePassed         SwipeOutcome = "passed"
	OutcomeMatched        SwipeOutcome = "matched"
	OutcomeFaded          SwipeOutcome = "faded"
	OutcomeAlreadyMatched SwipeOutcome = "already_matched"
)

// SwipeResult is returned for every swipe
type SwipeResult struct {
	Outcome SwipeOutcome `json:"outcome"`
	Result  *MatchResult `json:"result,omitempty"`
	Match   *Match       `json:"match,omitempty"`
}

// ScoredCandidate is one entry of a discover feed
type ScoredCandidate struct {
	UserID  string                 `json:"user_id"`
	Profile *profile.PublicProfile `json:"profile"`
	Score   int                    `json:"score"`
	Reasons []string               `json:"reasons"`
}
