// internal/dating/repository.go

package dating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository stores matches
type Repository interface {
	// CreateMutualMatch stores both sides of a match in one transaction.
	// It returns ErrAlreadyMatched when the pair is already matched.
	CreateMutualMatch(ctx context.Context, mine, theirs *Match) error
	GetMatch(ctx context.Context, userID, matchedUserID string) (*Match, error)
	GetUserMatches(ctx context.Context, userID string) ([]*Match, error)
	GetStats(ctx context.Context, activeDays int) (*MatchStats, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL match repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateMutualMatch(ctx context.Context, mine, theirs *Match) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO matches (id, user_id, matched_user_id, match_reason, match_score, matched_at)
		VALUES (:id, :user_id, :matched_user_id, :match_reason, :match_score, :matched_at)
		ON CONFLICT (user_id, matched_user_id) DO NOTHING`

	res, err := tx.NamedExecContext(ctx, query, mine)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAlreadyMatched
	}

	// the other side may already exist from an earlier partial write
	if _, err := tx.NamedExecContext(ctx, query, theirs); err != nil {
		return fmt.Errorf("failed to create reverse match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetMatch(ctx context.Context, userID, matchedUserID string) (*Match, error) {
	var match Match
	query := `
		SELECT id, user_id, matched_user_id, match_reason, match_score, matched_at
		FROM matches
		WHERE user_id = $1 AND matched_user_id = $2`

	if err := r.db.GetContext(ctx, &match, query, userID, matchedUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &match, nil
}

func (r *postgresRepository) GetUserMatches(ctx context.Context, userID string) ([]*Match, error) {
	query := `
		SELECT id, user_id, matched_user_id, match_reason, match_score, matched_at
		FROM matches
		WHERE user_id = $1
		ORDER BY matched_at DESC`

	matches := []*Match{}
	if err := r.db.SelectContext(ctx, &matches, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	return matches, nil
}

func (r *postgresRepository) GetStats(ctx context.Context, activeDays int) (*MatchStats, error) {
	stats := &MatchStats{}

	userQuery := `
		SELECT
			COUNT(*) AS total,
			COUNT(CASE WHEN last_active > NOW() - make_interval(days => $1) THEN 1 END) AS active,
			COUNT(behavioral_profile) AS assessed
		FROM users`
	err := r.db.QueryRowContext(ctx, userQuery, activeDays).Scan(
		&stats.TotalUsers,
		&stats.ActiveUsers,
		&stats.AssessedUsers,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	// each match is stored once per side
	matchQuery := `
		SELECT COUNT(*) / 2, COALESCE(AVG(match_score), 0)
		FROM matches`
	err = r.db.QueryRowContext(ctx, matchQuery).Scan(&stats.TotalMatches, &stats.AverageScore)
	if err != nil {
		return nil, fmt.Errorf("failed to get match stats: %w", err)
	}

	archetypeQuery := `
		SELECT behavioral_profile->>'archetype_name' AS archetype, COUNT(*) AS users
		FROM users
		WHERE behavioral_profile IS NOT NULL
		GROUP BY archetype
		ORDER BY users DESC, archetype
		LIMIT 5`
	stats.TopArchetypes = []ArchetypeCount{}
	if err := r.db.SelectContext(ctx, &stats.TopArchetypes, archetypeQuery); err != nil {
		return nil, fmt.Errorf("failed to get archetype stats: %w", err)
	}

	topReasonQuery := `
		SELECT match_reason AS reason, COUNT(*) / 2 AS matches
		FROM matches
		GROUP BY match_reason
		ORDER BY matches DESC, reason
		LIMIT 5`
	stats.TopReasons = []ReasonCount{}
	if err := r.db.SelectContext(ctx, &stats.TopReasons, topReasonQuery); err != nil {
		return nil, fmt.Errorf("failed to get reason stats: %w", err)
	}

	return stats, nil
}
