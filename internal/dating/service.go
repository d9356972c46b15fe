// internal/dating/service.go

package dating

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/imadgeboyega/soulbond-backend/internal/profile"
)

var (
	ErrCannotSwipeSelf  = errors.New("cannot swipe on yourself")
	ErrCannotScoreSelf  = errors.New("cannot score compatibility with yourself")
	ErrInvalidDirection = errors.New("direction must be left or right")
	ErrAlreadyMatched   = errors.New("already matched with this user")
	ErrMatchNotFound    = errors.New("match not found")
)

// Options tunes the swipe and discover flow
type Options struct {
	// AcceptanceThreshold is the score a right swipe must exceed to match
	AcceptanceThreshold int
	DiscoverLimit       int
	CandidatePoolSize   int
	DiscoverCacheTTL    time.Duration
	ActiveUserDays      int
}

// DefaultOptions mirrors the config defaults
var DefaultOptions = Options{
	AcceptanceThreshold: 1,
	DiscoverLimit:       20,
	CandidatePoolSize:   100,
	DiscoverCacheTTL:    24 * time.Hour,
	ActiveUserDays:      30,
}

type Service interface {
	Swipe(ctx context.Context, userID string, req *SwipeRequest) (*SwipeResult, error)
	GetMatches(ctx context.Context, userID string) ([]*Match, error)
	GetCompatibility(ctx context.Context, userID, targetID string) (*CompatibilityResponse, error)
	Discover(ctx context.Context, userID string, params *DiscoverParams) ([]*ScoredCandidate, error)

	// Scheduled Jobs
	RefreshActiveFeeds(ctx context.Context) error
}

type service struct {
	repo            Repository
	users           UserStore
	matchingEngine  MatchingEngine
	recommendations *RecommendationEngine
	cache           PicksCache
	notifier        Notifier
	opts            Options
	now             func() time.Time
}

// NewService wires the swipe flow. cache and notifier may be nil.
func NewService(repo Repository, users UserStore, engine MatchingEngine, cache PicksCache, notifier Notifier, opts Options) Service {
	if cache == nil {
		cache = NewNoopPicksCache()
	}
	if opts.CandidatePoolSize <= 0 {
		opts.CandidatePoolSize = DefaultOptions.CandidatePoolSize
	}
	if opts.DiscoverLimit <= 0 {
		opts.DiscoverLimit = DefaultOptions.DiscoverLimit
	}
	if opts.ActiveUserDays <= 0 {
		opts.ActiveUserDays = DefaultOptions.ActiveUserDays
	}
	return &service{
		repo:            repo,
		users:           users,
		matchingEngine:  engine,
		recommendations: NewRecommendationEngine(users, engine, cache, opts),
		cache:           cache,
		notifier:        notifier,
		opts:            opts,
		now:             time.Now,
	}
}

func (s *service) Swipe(ctx context.Context, userID string, req *SwipeRequest) (*SwipeResult, error) {
	if req.TargetID == userID {
		return nil, ErrCannotSwipeSelf
	}

	switch req.Direction {
	case DirectionLeft:
		RecordSwipe(OutcomePassed)
		return &SwipeResult{Outcome: OutcomePassed}, nil
	case DirectionRight:
	default:
		return nil, ErrInvalidDirection
	}

	if existing, err := s.repo.GetMatch(ctx, userID, req.TargetID); err == nil {
		RecordSwipe(OutcomeAlreadyMatched)
		return &SwipeResult{Outcome: OutcomeAlreadyMatched, Match: existing}, nil
	} else if !errors.Is(err, ErrMatchNotFound) {
		return nil, err
	}

	me, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	target, err := s.users.GetUser(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	result := s.matchingEngine.Score(me, target)
	RecordCompatibilityScore(result.Score)

	if result.Score <= s.opts.AcceptanceThreshold {
		RecordSwipe(OutcomeFaded)
		return &SwipeResult{Outcome: OutcomeFaded, Result: &result}, nil
	}

	mine, theirs := s.newMatchPair(me, target, result)
	if err := s.repo.CreateMutualMatch(ctx, mine, theirs); err != nil {
		if errors.Is(err, ErrAlreadyMatched) {
			existing, getErr := s.repo.GetMatch(ctx, userID, req.TargetID)
			if getErr != nil {
				return nil, getErr
			}
			RecordSwipe(OutcomeAlreadyMatched)
			return &SwipeResult{Outcome: OutcomeAlreadyMatched, Result: &result, Match: existing}, nil
		}
		return nil, err
	}

	RecordSwipe(OutcomeMatched)
	RecordMatch()

	// both feeds still list the other user
	if err := s.cache.Invalidate(ctx, userID, req.TargetID); err != nil {
		log.Printf("Failed to invalidate feeds after match %s: %v", mine.ID, err)
	}
	if s.notifier != nil {
		s.notifier.NotifyMatch(userID, req.TargetID, mine, theirs)
	}

	return &SwipeResult{Outcome: OutcomeMatched, Result: &result, Match: mine}, nil
}

// newMatchPair builds both sides of a match. Each side carries the reason
// and score computed from the swiping user's point of view.
func (s *service) newMatchPair(me, target *profile.User, result MatchResult) (*Match, *Match) {
	now := s.now().UTC()
	reason := result.TopReason()

	mine := &Match{
		ID:            uuid.NewString(),
		UserID:        me.ID,
		MatchedUserID: target.ID,
		MatchReason:   reason,
		MatchScore:    result.Score,
		MatchedAt:     now,
		MatchedUser:   target.Public(),
	}
	theirs := &Match{
		ID:            uuid.NewString(),
		UserID:        target.ID,
		MatchedUserID: me.ID,
		MatchReason:   reason,
		MatchScore:    result.Score,
		MatchedAt:     now,
		MatchedUser:   me.Public(),
	}
	return mine, theirs
}

func (s *service) GetMatches(ctx context.Context, userID string) ([]*Match, error) {
	matches, err := s.repo.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, match := range matches {
		user, err := s.users.GetUser(ctx, match.MatchedUserID)
		if err != nil {
			if errors.Is(err, profile.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		match.MatchedUser = user.Public()
	}
	return matches, nil
}

func (s *service) GetCompatibility(ctx context.Context, userID, targetID string) (*CompatibilityResponse, error) {
	if userID == targetID {
		return nil, ErrCannotScoreSelf
	}

	me, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	target, err := s.users.GetUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	result := s.matchingEngine.Score(me, target)
	RecordCompatibilityScore(result.Score)

	return &CompatibilityResponse{
		UserID:      userID,
		TargetID:    targetID,
		MatchResult: result,
	}, nil
}

// Discover serves the ranked feed from cache when possible. Cache errors
// fall back to ranking on the spot.
func (s *service) Discover(ctx context.Context, userID string, params *DiscoverParams) ([]*ScoredCandidate, error) {
	start := s.now()
	limit := s.opts.DiscoverLimit
	refresh := false
	if params != nil {
		if params.Limit > 0 {
			limit = params.Limit
		}
		refresh = params.Refresh
	}
	if limit > s.opts.CandidatePoolSize {
		limit = s.opts.CandidatePoolSize
	}

	if !refresh {
		picks, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.Printf("Feed cache unavailable for user %s: %v", userID, err)
		}
		if ok {
			RecordDiscover("cache", time.Since(start))
			return truncate(picks, limit), nil
		}
	}

	picks, err := s.recommendations.GenerateFeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	RecordDiscover("computed", time.Since(start))
	return truncate(picks, limit), nil
}

func (s *service) RefreshActiveFeeds(ctx context.Context) error {
	return s.recommendations.RefreshActiveFeeds(ctx)
}

func truncate(picks []*ScoredCandidate, limit int) []*ScoredCandidate {
	if picks == nil {
		return []*ScoredCandidate{}
	}
	if len(picks) > limit {
		return picks[:limit]
	}
	return picks
}
