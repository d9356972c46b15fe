// internal/profile/service.go

package profile

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidID    = errors.New("invalid user id")
)

// Service defines the profile service interface
type Service interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	GetMyProfile(ctx context.Context, userID string) (*User, error)
	GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error)
}

// service implements the profile service
type service struct {
	repo Repository
}

// NewService creates a new profile service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetUser retrieves a full user record
func (s *service) GetUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, ErrInvalidID
	}
	return s.repo.GetUser(ctx, userID)
}

// GetMyProfile retrieves the caller's own record and marks them active
func (s *service) GetMyProfile(ctx context.Context, userID string) (*User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	// last_active only feeds the feed scheduler, a failed touch is not fatal
	_ = s.repo.TouchLastActive(ctx, userID)
	return user, nil
}

// GetPublicProfile retrieves what other users may see of a record
func (s *service) GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}
