// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines the user record store
type Repository interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	ListCandidates(ctx context.Context, excludeID string, limit int) ([]*User, error)
	ListActiveUserIDs(ctx context.Context, days int) ([]string, error)
	SaveAssessment(ctx context.Context, update *AssessmentUpdate) (*User, error)
	TouchLastActive(ctx context.Context, userID string) error
}

// postgresRepository implements Repository using PostgreSQL
type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `
	u.id, u.name, u.email, u.avatar, u.city,
	u.traumas, u.positive, u.interests, u.intent,
	u.behavioral_profile, u.last_active, u.created_at, u.updated_at`

// GetUser retrieves a user record by id
func (r *postgresRepository) GetUser(ctx context.Context, userID string) (*User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return row.toUser(), nil
}

// ListCandidates returns users other than excludeID that excludeID has not
// matched with yet, most recently active first
func (r *postgresRepository) ListCandidates(ctx context.Context, excludeID string, limit int) ([]*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id <> $1
		AND NOT EXISTS (
			SELECT 1 FROM matches m
			WHERE m.user_id = $1 AND m.matched_user_id = u.id
		)
		ORDER BY u.last_active DESC, u.id
		LIMIT $2`

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, excludeID, limit); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	users := make([]*User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toUser())
	}
	return users, nil
}

// ListActiveUserIDs returns ids of users active within the last days
func (r *postgresRepository) ListActiveUserIDs(ctx context.Context, days int) ([]string, error) {
	query := `
		SELECT id FROM users
		WHERE last_active > NOW() - make_interval(days => $1)
		ORDER BY last_active DESC`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, days); err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	return ids, nil
}

// SaveAssessment writes the outcome of a quiz submission. The user row is
// created on first submission.
func (r *postgresRepository) SaveAssessment(ctx context.Context, update *AssessmentUpdate) (*User, error) {
	query := `
		INSERT INTO users (id, name, traumas, positive, interests, intent, behavioral_profile, last_active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			traumas = EXCLUDED.traumas,
			positive = EXCLUDED.positive,
			interests = EXCLUDED.interests,
			intent = EXCLUDED.intent,
			behavioral_profile = EXCLUDED.behavioral_profile,
			last_active = NOW(),
			updated_at = NOW()
		RETURNING ` + returningColumns

	var row userRow
	err := r.db.GetContext(ctx, &row, query,
		update.UserID,
		DefaultName,
		pq.Array(nonNil(update.Traumas)),
		pq.Array(nonNil(update.Positive)),
		pq.Array(nonNil(update.Interests)),
		update.Intent,
		BehavioralColumn{Profile: update.BehavioralProfile},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}
	return row.toUser(), nil
}

// TouchLastActive marks the user as active now
func (r *postgresRepository) TouchLastActive(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_active = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to update last active: %w", err)
	}
	return nil
}

const returningColumns = `
	id, name, email, avatar, city,
	traumas, positive, interests, intent,
	behavioral_profile, last_active, created_at, updated_at`
