package assessment

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/soulbond-backend/internal/behavior"
	"github.com/imadgeboyega/soulbond-backend/internal/profile"
	"github.com/imadgeboyega/soulbond-backend/internal/profile/profiletest"
)

func newTestService(t *testing.T, users ...*profile.User) (*service, *profiletest.Repository) {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	repo := profiletest.NewRepository(users...)
	svc := NewService(catalog, repo, rand.New(rand.NewSource(1))).(*service)
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestService_SubmitDerivesAndMergesTraits(t *testing.T) {
	svc, repo := newTestService(t, &profile.User{
		ID:        "me",
		Name:      "Ada",
		Positive:  []string{"Direct", "Loyal"},
		Traumas:   []string{"Grief"},
		Interests: []string{"Music"},
	})
	ctx := context.Background()

	result, err := svc.Submit(ctx, "me", &SubmitAssessmentRequest{
		Intent:    "Eclipse",
		Interests: []string{"Art", "Travel", "Art"},
		Answers: []Selection{
			{QuestionID: "q1", Option: 3}, // Open Book
			{QuestionID: "q4", Option: 2}, // Direct
		},
	})
	require.NoError(t, err)

	p := result.Profile
	require.NotNil(t, p)
	assert.Equal(t, "secure", p.DominantTraits.Get(behavior.AttachmentStyle))
	assert.Equal(t, "direct_resolver", p.DominantTraits.Get(behavior.ConflictStyle))
	assert.Equal(t, 70, p.CalculatedIndexes[behavior.SecurityVincularIndex])
	assert.Equal(t, 75, p.CalculatedIndexes[behavior.EmotionalRegulationIndex])
	assert.Contains(t, p.BehavioralStrengths, "High relational resilience")
	assert.Contains(t, p.BehavioralStrengths, "Stays grounded under pressure")
	assert.Equal(t, "Secure Stable Builder", p.ArchetypeName)
	require.NotNil(t, p.DerivedAt)
	assert.Equal(t, 2026, p.DerivedAt.Year())

	stored, err := repo.GetUser(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.Name)
	assert.Equal(t, []string{"Direct", "Loyal", "Open Book"}, stored.Positive)
	assert.Equal(t, []string{"Grief"}, stored.Traumas)
	assert.Equal(t, []string{"Art", "Travel"}, stored.Interests)
	assert.Equal(t, "Eclipse", stored.Intent)
	assert.Equal(t, p, stored.BehavioralProfile)
}

func TestService_SubmitCreatesUnknownUser(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.Submit(context.Background(), "new", &SubmitAssessmentRequest{
		Answers: []Selection{{QuestionID: "q2", Option: 1}}, // Abandonment Issues
	})
	require.NoError(t, err)

	stored, err := repo.GetUser(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, profile.DefaultName, stored.Name)
	assert.Equal(t, []string{"Abandonment Issues"}, stored.Traumas)
	assert.Empty(t, stored.Positive)
	assert.Equal(t, "anxious", stored.BehavioralProfile.DominantTraits.Get(behavior.AttachmentStyle))
	assert.Equal(t, 30, stored.BehavioralProfile.CalculatedIndexes[behavior.SecurityVincularIndex])
}

func TestService_SubmitReplacesProfileWholesale(t *testing.T) {
	svc, repo := newTestService(t, &profile.User{ID: "me"})
	ctx := context.Background()

	_, err := svc.Submit(ctx, "me", &SubmitAssessmentRequest{
		Answers: []Selection{{QuestionID: "q2", Option: 1}},
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "me", &SubmitAssessmentRequest{
		Answers: []Selection{{QuestionID: "q3", Option: 2}}, // Inquisitive
	})
	require.NoError(t, err)

	stored, err := repo.GetUser(ctx, "me")
	require.NoError(t, err)
	p := stored.BehavioralProfile
	assert.Equal(t, "secure", p.DominantTraits.Get(behavior.AttachmentStyle))
	assert.Equal(t, behavior.Baseline, p.CalculatedIndexes[behavior.SecurityVincularIndex])
	assert.Equal(t, 60, p.CalculatedIndexes[behavior.SelfAwarenessIndex])
	assert.Equal(t, "Secure Explorer", p.ArchetypeName)

	// free-text traits accumulate across submissions
	assert.Equal(t, []string{"Abandonment Issues"}, stored.Traumas)
	assert.Equal(t, []string{"Inquisitive"}, stored.Positive)
}

func TestService_SubmitMandatoryOnlyKeepsProfile(t *testing.T) {
	existing := behavior.Derive(nil)
	svc, repo := newTestService(t, &profile.User{ID: "me", Intent: "Mirror", BehavioralProfile: existing})

	_, err := svc.Submit(context.Background(), "me", &SubmitAssessmentRequest{Interests: []string{"Poetry"}})
	require.NoError(t, err)

	stored, err := repo.GetUser(context.Background(), "me")
	require.NoError(t, err)
	assert.Same(t, existing, stored.BehavioralProfile)
	assert.Equal(t, "Mirror", stored.Intent)
	assert.Equal(t, []string{"Poetry"}, stored.Interests)
}

func TestService_SubmitRejects(t *testing.T) {
	tests := []struct {
		name string
		req  SubmitAssessmentRequest
		want error
	}{
		{"empty", SubmitAssessmentRequest{}, ErrEmptySubmission},
		{"unknown question", SubmitAssessmentRequest{Answers: []Selection{{QuestionID: "q99"}}}, ErrUnknownQuestion},
		{"mandatory id as answer", SubmitAssessmentRequest{Answers: []Selection{{QuestionID: "intent"}}}, ErrUnknownQuestion},
		{"option out of range", SubmitAssessmentRequest{Answers: []Selection{{QuestionID: "q1", Option: 4}}}, ErrInvalidOption},
		{"negative option", SubmitAssessmentRequest{Answers: []Selection{{QuestionID: "q1", Option: -1}}}, ErrInvalidOption},
		{"unknown intent", SubmitAssessmentRequest{Intent: "Sun"}, ErrInvalidOption},
		{"unknown interest", SubmitAssessmentRequest{Interests: []string{"Skydiving"}}, ErrInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t, &profile.User{ID: "me"})

			_, err := svc.Submit(context.Background(), "me", &tt.req)

			assert.ErrorIs(t, err, tt.want)
			stored, getErr := repo.GetUser(context.Background(), "me")
			require.NoError(t, getErr)
			assert.Nil(t, stored.BehavioralProfile)
		})
	}
}

func TestService_SubmitStoreFailure(t *testing.T) {
	svc, repo := newTestService(t)
	repo.Err = errors.New("database is down")

	_, err := svc.Submit(context.Background(), "me", &SubmitAssessmentRequest{Intent: "Mirror"})

	assert.ErrorIs(t, err, repo.Err)
}

func TestService_QuestionsHideTraitData(t *testing.T) {
	svc, _ := newTestService(t)

	views := svc.Questions(context.Background())

	require.Len(t, views, 6)
	assert.Equal(t, TypeIntent, views[0].Type)
	assert.Equal(t, "Mirror", views[0].Options[0].Value)
	assert.Len(t, views[1].Options, 14)
	for i, opt := range views[2].Options {
		assert.Equal(t, i, opt.Index)
		assert.NotEmpty(t, opt.Label)
	}
}

func TestMergeUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, mergeUnique([]string{"a", "b"}, []string{"b", "c", "a", ""}))
	assert.Equal(t, []string{}, mergeUnique(nil, nil))
}
