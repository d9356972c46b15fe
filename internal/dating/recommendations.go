// internal/dating/recommendations.go

package dating

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/imadgeboyega/soulbond-backend/internal/profile"
)

// UserStore is the part of the user record store the dating flow reads
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*profile.User, error)
	ListCandidates(ctx context.Context, excludeID string, limit int) ([]*profile.User, error)
	ListActiveUserIDs(ctx context.Context, days int) ([]string, error)
}

// RecommendationEngine builds ranked discover feeds
type RecommendationEngine struct {
	users          UserStore
	matchingEngine MatchingEngine
	cache          PicksCache
	poolSize       int
	activeDays     int
	ttl            time.Duration
}

func NewRecommendationEngine(users UserStore, engine MatchingEngine, cache PicksCache, opts Options) *RecommendationEngine {
	return &RecommendationEngine{
		users:          users,
		matchingEngine: engine,
		cache:          cache,
		poolSize:       opts.CandidatePoolSize,
		activeDays:     opts.ActiveUserDays,
		ttl:            opts.DiscoverCacheTTL,
	}
}

// GenerateFeed ranks up to poolSize candidates for a user and caches the result.
// A cache write failure does not fail the feed.
func (r *RecommendationEngine) GenerateFeed(ctx context.Context, userID string) ([]*ScoredCandidate, error) {
	me, err := r.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := r.users.ListCandidates(ctx, userID, r.poolSize)
	if err != nil {
		return nil, err
	}

	picks := r.matchingEngine.Rank(me, candidates)
	for _, pick := range picks {
		RecordCompatibilityScore(pick.Score)
	}
	RecordFeedGenerated()

	if err := r.cache.Set(ctx, userID, picks, r.ttl); err != nil {
		log.Printf("Failed to cache feed for user %s: %v", userID, err)
	}
	return picks, nil
}

// RefreshActiveFeeds regenerates the feed of every recently active user.
// It keeps going past individual failures and reports how many failed.
func (r *RecommendationEngine) RefreshActiveFeeds(ctx context.Context) error {
	userIDs, err := r.users.ListActiveUserIDs(ctx, r.activeDays)
	if err != nil {
		return err
	}

	failed := 0
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := r.GenerateFeed(ctx, userID); err != nil {
			log.Printf("Failed to generate feed for user %s: %v", userID, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d feeds failed", failed, len(userIDs))
	}
	return nil
}
