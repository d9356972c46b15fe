// internal/dating/admin.go

package dating

import (
	"context"
	"time"
)

// MatchStats summarises users and matches for operators
type MatchStats struct {
	TotalUsers    int64            `json:"total_users"`
	ActiveUsers   int64            `json:"active_users"`
	AssessedUsers int64            `json:"assessed_users"`
	TotalMatches  int64            `json:"total_matches"`
	AverageScore  float64          `json:"average_score"`
	TopArchetypes []ArchetypeCount `json:"top_archetypes"`
	TopReasons    []ReasonCount    `json:"top_reasons"`
	LastUpdated   time.Time        `json:"last_updated"`
}

// ArchetypeCount is the number of users sharing an archetype
type ArchetypeCount struct {
	Archetype string `json:"archetype" db:"archetype"`
	Users     int64  `json:"users" db:"users"`
}

// ReasonCount is the number of matches stored with a reason
type ReasonCount struct {
	Reason  string `json:"reason" db:"reason"`
	Matches int64  `json:"matches" db:"matches"`
}

type AdminService struct {
	repo       Repository
	activeDays int
}

func NewAdminService(repo Repository, activeDays int) *AdminService {
	return &AdminService{repo: repo, activeDays: activeDays}
}

// GetMatchStats reads current totals from the store
func (a *AdminService) GetMatchStats(ctx context.Context) (*MatchStats, error) {
	stats, err := a.repo.GetStats(ctx, a.activeDays)
	if err != nil {
		return nil, err
	}
	stats.LastUpdated = time.Now()
	return stats, nil
}
