package dating

import (
	"context"
	"sync"
	"time"
)

type memoryMatches struct {
	mu      sync.Mutex
	matches map[string]*Match
	order   []string
	stats   *MatchStats

	createErr error
}

func newMemoryMatches() *memoryMatches {
	return &memoryMatches{matches: make(map[string]*Match)}
}

func matchKey(userID, matchedUserID string) string {
	return userID + "|" + matchedUserID
}

func (m *memoryMatches) CreateMutualMatch(_ context.Context, mine, theirs *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.matches[matchKey(mine.UserID, mine.MatchedUserID)]; ok {
		return ErrAlreadyMatched
	}
	for _, match := range []*Match{mine, theirs} {
		key := matchKey(match.UserID, match.MatchedUserID)
		if _, ok := m.matches[key]; ok {
			continue
		}
		cp := *match
		cp.MatchedUser = nil
		m.matches[key] = &cp
		m.order = append(m.order, key)
	}
	return nil
}

func (m *memoryMatches) GetMatch(_ context.Context, userID, matchedUserID string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[matchKey(userID, matchedUserID)]
	if !ok {
		return nil, ErrMatchNotFound
	}
	cp := *match
	return &cp, nil
}

func (m *memoryMatches) GetUserMatches(_ context.Context, userID string) ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Match{}
	for i := len(m.order) - 1; i >= 0; i-- {
		match := m.matches[m.order[i]]
		if match.UserID == userID {
			cp := *match
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryMatches) GetStats(context.Context, int) (*MatchStats, error) {
	if m.stats == nil {
		return &MatchStats{}, nil
	}
	cp := *m.stats
	return &cp, nil
}

func (m *memoryMatches) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matches)
}

type memoryCache struct {
	mu          sync.Mutex
	feeds       map[string][]*ScoredCandidate
	ttls        map[string]time.Duration
	invalidated []string
	gets, sets  int

	getErr error
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		feeds: make(map[string][]*ScoredCandidate),
		ttls:  make(map[string]time.Duration),
	}
}

func (c *memoryCache) Get(_ context.Context, userID string) ([]*ScoredCandidate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	picks, ok := c.feeds[userID]
	return picks, ok, nil
}

func (c *memoryCache) Set(_ context.Context, userID string, picks []*ScoredCandidate, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.feeds[userID] = picks
	c.ttls[userID] = ttl
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, userIDs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range userIDs {
		delete(c.feeds, id)
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}

type notification struct {
	userID, matchedUserID string
	mine, theirs          *Match
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) NotifyMatch(userID, matchedUserID string, mine, theirs *Match) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{userID, matchedUserID, mine, theirs})
}
