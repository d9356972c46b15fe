// internal/assessment/dto.go
package assessment

import (
	"github.com/imadgeboyega/soulbond-backend/internal/behavior"
	"github.com/imadgeboyega/soulbond-backend/internal/profile"
)

// Selection picks one option of one pool question
type Selection struct {
	QuestionID string `json:"question_id" validate:"required,max=64"`
	Option     int    `json:"option" validate:"min=0"`
}

// SubmitAssessmentRequest is the body of POST /api/v1/assessment.
// Answers are applied in the order given.
type SubmitAssessmentRequest struct {
	Intent    string      `json:"intent" validate:"omitempty,max=32"`
	Interests []string    `json:"interests" validate:"omitempty,max=20,dive,required,max=50"`
	Answers   []Selection `json:"answers" validate:"omitempty,max=20,dive"`
}

// SubmitResult is returned after a successful submission
type SubmitResult struct {
	User    *profile.User     `json:"user"`
	Profile *behavior.Profile `json:"profile"`
}

// OptionView is an option as shown to the user
type OptionView struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
}

// QuestionView is a question as shown to the user, without trait data
type QuestionView struct {
	ID      string       `json:"id"`
	Type    string       `json:"type"`
	Text    string       `json:"text"`
	Options []OptionView `json:"options"`
}

func toView(q Question) QuestionView {
	view := QuestionView{
		ID:      q.ID,
		Type:    q.Type,
		Text:    q.Text,
		Options: make([]OptionView, len(q.Options)),
	}
	for i, opt := range q.Options {
		view.Options[i] = OptionView{Index: i, Label: opt.Label, Value: opt.Value}
	}
	return view
}
