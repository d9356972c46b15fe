// internal/behavior/answer.go

package behavior

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TraitKind classifies the legacy free-text trait an answer carries
type TraitKind string

const (
	KindPositive TraitKind = "positive"
	KindTrauma   TraitKind = "trauma"
)

// Answer is one response to one quiz question.
// It is either a SimpleAnswer or a DimensionalAnswer.
type Answer interface {
	freeTrait() (string, TraitKind)
}

// SimpleAnswer only carries a free-text trait and has no dimensional effect
type SimpleAnswer struct {
	Trait string    `json:"trait"`
	Kind  TraitKind `json:"type,omitempty"`
}

func (a SimpleAnswer) freeTrait() (string, TraitKind) { return a.Trait, a.Kind }

// DimensionalAnswer votes for traits and contributes index deltas
type DimensionalAnswer struct {
	Dimensions map[Dimension]string `json:"dimensions,omitempty"`
	Weights    map[Index]int        `json:"weights,omitempty"`
	Trait      string               `json:"trait,omitempty"`
	Kind       TraitKind            `json:"type,omitempty"`
}

func (a DimensionalAnswer) freeTrait() (string, TraitKind) { return a.Trait, a.Kind }

// Answers maps question ids to answers and remembers insertion order.
// Order only matters for tie-breaking dominant traits.
type Answers struct {
	order   []string
	entries map[string]Answer
	skipped []string
}

// NewAnswers creates an empty answer set
func NewAnswers() *Answers {
	return &Answers{entries: make(map[string]Answer)}
}

// Set stores an answer. Replacing an existing question keeps its original position.
// A nil answer is recorded as skipped.
func (a *Answers) Set(questionID string, answer Answer) {
	if a.entries == nil {
		a.entries = make(map[string]Answer)
	}
	if answer == nil {
		a.skipped = append(a.skipped, questionID)
		return
	}
	if _, exists := a.entries[questionID]; !exists {
		a.order = append(a.order, questionID)
	}
	a.entries[questionID] = answer
}

// Get returns the answer recorded for a question
func (a *Answers) Get(questionID string) (Answer, bool) {
	if a == nil {
		return nil, false
	}
	answer, ok := a.entries[questionID]
	return answer, ok
}

// Len returns the number of usable answers
func (a *Answers) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// Skipped returns the ids of entries that could not be read as answers
func (a *Answers) Skipped() []string {
	if a == nil {
		return nil
	}
	return a.skipped
}

// Each calls fn for every answer in insertion order
func (a *Answers) Each(fn func(questionID string, answer Answer)) {
	if a == nil {
		return
	}
	for _, id := range a.order {
		fn(id, a.entries[id])
	}
}

// CollectTraits splits the free-text traits of all answers by kind, keeping
// first occurrence order and dropping duplicates.
func CollectTraits(answers *Answers) (positive, traumas []string) {
	seen := make(map[string]bool)
	answers.Each(func(_ string, answer Answer) {
		trait, kind := answer.freeTrait()
		if trait == "" || seen[string(kind)+"\x00"+trait] {
			return
		}
		seen[string(kind)+"\x00"+trait] = true
		switch kind {
		case KindPositive:
			positive = append(positive, trait)
		case KindTrauma:
			traumas = append(traumas, trait)
		}
	})
	return positive, traumas
}

// answerDoc is the loosely-typed wire shape of one answer
type answerDoc struct {
	Dimensions map[string]string `json:"dimensions" yaml:"dimensions"`
	Weights    map[string]int    `json:"weights" yaml:"weights"`
	Trait      string            `json:"trait" yaml:"trait"`
	Type       string            `json:"type" yaml:"type"`
}

// toAnswer resolves a wire document into a typed answer. Unknown dimensions,
// traits outside a dimension's set and unknown indexes are dropped.
func (d *answerDoc) toAnswer() Answer {
	if d.Dimensions == nil && d.Weights == nil {
		if d.Trait == "" {
			return nil
		}
		return SimpleAnswer{Trait: d.Trait, Kind: TraitKind(d.Type)}
	}

	answer := DimensionalAnswer{
		Dimensions: make(map[Dimension]string, len(d.Dimensions)),
		Weights:    make(map[Index]int, len(d.Weights)),
		Trait:      d.Trait,
		Kind:       TraitKind(d.Type),
	}
	for name, trait := range d.Dimensions {
		dim, ok := ParseDimension(name)
		if !ok || !IsTrait(dim, trait) {
			continue
		}
		answer.Dimensions[dim] = trait
	}
	for name, delta := range d.Weights {
		idx, ok := ParseIndex(name)
		if !ok {
			continue
		}
		answer.Weights[idx] = delta
	}
	return answer
}

// UnmarshalJSON decodes an object of question id to answer, keeping key order.
// Values that are not answer objects are recorded as skipped.
func (a *Answers) UnmarshalJSON(data []byte) error {
	*a = Answers{entries: make(map[string]Answer)}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("answers: %w", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("answers: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("answers: %w", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("answers: value of %q: %w", key, err)
		}

		var doc answerDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			a.Set(key, nil)
			continue
		}
		a.Set(key, doc.toAnswer())
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("answers: %w", err)
	}
	return nil
}

// UnmarshalYAML decodes a mapping of question id to answer, keeping key order
func (a *Answers) UnmarshalYAML(value *yaml.Node) error {
	*a = Answers{entries: make(map[string]Answer)}

	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("answers: expected mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value

		var doc answerDoc
		if err := value.Content[i+1].Decode(&doc); err != nil {
			a.Set(key, nil)
			continue
		}
		a.Set(key, doc.toAnswer())
	}
	return nil
}
