// internal/assessment/catalog.go
// Quiz question catalog

package assessment

import (
	"bytes"
	_ "embed"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/imadgeboyega/soulbond-backend/internal/behavior"
)

//go:embed questions.yaml
var defaultCatalogYAML []byte

// Question types
const (
	TypeIntent      = "intent"
	TypeMultiselect = "multiselect"
	TypeSingle      = "single"
)

// Option is one selectable answer
type Option struct {
	Label      string            `yaml:"label" json:"label"`
	Value      string            `yaml:"value,omitempty" json:"value,omitempty"`
	Trait      string            `yaml:"trait,omitempty" json:"trait,omitempty"`
	Type       string            `yaml:"type,omitempty" json:"type,omitempty"`
	Dimensions map[string]string `yaml:"dimensions,omitempty" json:"dimensions,omitempty"`
	Weights    map[string]int    `yaml:"weights,omitempty" json:"weights,omitempty"`
}

// Answer converts the option into the answer the derivation engine reads
func (o Option) Answer() behavior.Answer {
	kind := behavior.TraitKind(o.Type)
	if len(o.Dimensions) == 0 && len(o.Weights) == 0 {
		return behavior.SimpleAnswer{Trait: o.Trait, Kind: kind}
	}

	answer := behavior.DimensionalAnswer{
		Dimensions: make(map[behavior.Dimension]string, len(o.Dimensions)),
		Weights:    make(map[behavior.Index]int, len(o.Weights)),
		Trait:      o.Trait,
		Kind:       kind,
	}
	for name, trait := range o.Dimensions {
		if dim, ok := behavior.ParseDimension(name); ok {
			answer.Dimensions[dim] = trait
		}
	}
	for name, delta := range o.Weights {
		if idx, ok := behavior.ParseIndex(name); ok {
			answer.Weights[idx] = delta
		}
	}
	return answer
}

// Question is one quiz question
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Type    string   `yaml:"type" json:"type"`
	Text    string   `yaml:"text" json:"text"`
	Options []Option `yaml:"options" json:"options"`
}

// Catalog holds the mandatory questions and the random pool
type Catalog struct {
	PoolDraw  int        `yaml:"pool_draw"`
	Intent    Question   `yaml:"intent"`
	Interests Question   `yaml:"interests"`
	Pool      []Question `yaml:"pool"`

	byID      map[string]*Question
	interests map[string]bool
}

// DefaultCatalog parses the embedded question catalog
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultCatalogYAML)
}

// LoadCatalog parses and validates a YAML catalog. Unknown fields,
// dimensions, traits and indexes are rejected.
func LoadCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	if c.Intent.Type != TypeIntent || len(c.Intent.Options) == 0 {
		return fmt.Errorf("catalog: intent question must be of type %q with options", TypeIntent)
	}
	if c.Interests.Type != TypeMultiselect || len(c.Interests.Options) == 0 {
		return fmt.Errorf("catalog: interests question must be of type %q with options", TypeMultiselect)
	}
	if len(c.Pool) == 0 {
		return fmt.Errorf("catalog: question pool is empty")
	}
	if c.PoolDraw <= 0 || c.PoolDraw > len(c.Pool) {
		c.PoolDraw = len(c.Pool)
	}

	c.interests = make(map[string]bool, len(c.Interests.Options))
	for _, opt := range c.Interests.Options {
		c.interests[opt.Label] = true
	}

	c.byID = make(map[string]*Question, len(c.Pool))
	for i := range c.Pool {
		q := &c.Pool[i]
		if q.ID == "" || q.ID == c.Intent.ID || q.ID == c.Interests.ID {
			return fmt.Errorf("catalog: pool question %d has a missing or reserved id", i)
		}
		if _, dup := c.byID[q.ID]; dup {
			return fmt.Errorf("catalog: duplicate question id %q", q.ID)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("catalog: question %q has no options", q.ID)
		}
		for j, opt := range q.Options {
			if err := validateOption(opt); err != nil {
				return fmt.Errorf("catalog: question %q option %d: %w", q.ID, j, err)
			}
		}
		c.byID[q.ID] = q
	}
	return nil
}

func validateOption(opt Option) error {
	switch behavior.TraitKind(opt.Type) {
	case behavior.KindPositive, behavior.KindTrauma:
	default:
		return fmt.Errorf("unknown trait type %q", opt.Type)
	}
	if opt.Trait == "" {
		return fmt.Errorf("missing trait")
	}
	for name, trait := range opt.Dimensions {
		dim, ok := behavior.ParseDimension(name)
		if !ok {
			return fmt.Errorf("unknown dimension %q", name)
		}
		if !behavior.IsTrait(dim, trait) {
			return fmt.Errorf("trait %q is not part of %s", trait, name)
		}
	}
	for name := range opt.Weights {
		if _, ok := behavior.ParseIndex(name); !ok {
			return fmt.Errorf("unknown index %q", name)
		}
	}
	return nil
}

// SetPoolDraw changes how many pool questions Draw picks.
// Values outside 1..len(Pool) draw the whole pool.
func (c *Catalog) SetPoolDraw(n int) {
	if n <= 0 || n > len(c.Pool) {
		n = len(c.Pool)
	}
	c.PoolDraw = n
}

// Question returns a pool question by id
func (c *Catalog) Question(id string) (*Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// IsInterest reports whether label is one of the listed interests
func (c *Catalog) IsInterest(label string) bool {
	return c.interests[label]
}

// IsIntent reports whether value is one of the intent options
func (c *Catalog) IsIntent(value string) bool {
	for _, opt := range c.Intent.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Draw returns the mandatory questions followed by PoolDraw pool questions
// picked at random from rng
func (c *Catalog) Draw(rng *rand.Rand) []Question {
	questions := make([]Question, 0, 2+c.PoolDraw)
	questions = append(questions, c.Intent, c.Interests)
	for _, i := range rng.Perm(len(c.Pool))[:c.PoolDraw] {
		questions = append(questions, c.Pool[i])
	}
	return questions
}
