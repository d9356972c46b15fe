// internal/assessment/service.go

package assessment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/imadgeboyega/soulbond-backend/internal/behavior"
	"github.com/imadgeboyega/soulbond-backend/internal/profile"
)

var (
	ErrEmptySubmission = errors.New("submission has no answers")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidOption   = errors.New("invalid option")
)

// UserStore reads and writes the records a submission updates
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*profile.User, error)
	SaveAssessment(ctx context.Context, update *profile.AssessmentUpdate) (*profile.User, error)
}

type Service interface {
	Questions(ctx context.Context) []QuestionView
	Submit(ctx context.Context, userID string, req *SubmitAssessmentRequest) (*SubmitResult, error)
}

type service struct {
	catalog *Catalog
	users   UserStore

	mu  sync.Mutex
	rng *rand.Rand

	now func() time.Time
}

// NewService creates the assessment service. rng may be nil.
func NewService(catalog *Catalog, users UserStore, rng *rand.Rand) Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &service{
		catalog: catalog,
		users:   users,
		rng:     rng,
		now:     time.Now,
	}
}

// Questions draws a fresh question set
func (s *service) Questions(_ context.Context) []QuestionView {
	s.mu.Lock()
	questions := s.catalog.Draw(s.rng)
	s.mu.Unlock()

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = toView(q)
	}
	return views
}

// Submit derives a new behavioral profile from the selected options and
// stores it with the merged trait lists. The new profile replaces the old
// one. Skipped mandatory questions keep the user's current intent and interests.
func (s *service) Submit(ctx context.Context, userID string, req *SubmitAssessmentRequest) (*SubmitResult, error) {
	if req.Intent == "" && len(req.Interests) == 0 && len(req.Answers) == 0 {
		return nil, ErrEmptySubmission
	}
	if req.Intent != "" && !s.catalog.IsIntent(req.Intent) {
		return nil, fmt.Errorf("%w: intent %q", ErrInvalidOption, req.Intent)
	}
	for _, interest := range req.Interests {
		if !s.catalog.IsInterest(interest) {
			return nil, fmt.Errorf("%w: interest %q", ErrInvalidOption, interest)
		}
	}

	answers, err := s.resolve(req.Answers)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, profile.ErrUserNotFound) {
			return nil, err
		}
		existing = &profile.User{ID: userID}
	}

	// a submission with only the mandatory questions keeps the current profile
	derived := existing.BehavioralProfile
	if answers.Len() > 0 {
		derived = behavior.Derive(answers)
		derivedAt := s.now().UTC()
		derived.DerivedAt = &derivedAt
	}

	positive, traumas := behavior.CollectTraits(answers)
	update := &profile.AssessmentUpdate{
		UserID:            userID,
		Positive:          mergeUnique(existing.Positive, positive),
		Traumas:           mergeUnique(existing.Traumas, traumas),
		Interests:         existing.Interests,
		Intent:            existing.Intent,
		BehavioralProfile: derived,
	}
	if req.Intent != "" {
		update.Intent = req.Intent
	}
	if len(req.Interests) > 0 {
		update.Interests = mergeUnique(nil, req.Interests)
	}

	user, err := s.users.SaveAssessment(ctx, update)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{User: user, Profile: derived}, nil
}

// resolve maps selections to answers in submission order
func (s *service) resolve(selections []Selection) (*behavior.Answers, error) {
	answers := behavior.NewAnswers()
	for _, sel := range selections {
		q, ok := s.catalog.Question(sel.QuestionID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownQuestion, sel.QuestionID)
		}
		if sel.Option < 0 || sel.Option >= len(q.Options) {
			return nil, fmt.Errorf("%w: %d for question %q", ErrInvalidOption, sel.Option, sel.QuestionID)
		}
		answers.Set(q.ID, q.Options[sel.Option].Answer())
	}
	return answers, nil
}

// mergeUnique appends extra to base, dropping repeats and keeping first occurrence order
func mergeUnique(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
