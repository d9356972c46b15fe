// internal/profile/models.go

package profile

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/imadgeboyega/soulbond-backend/internal/behavior"
)

// Intent values a user can pick on the quiz
const (
	IntentMirror  = "Mirror"  // seek similarity
	IntentEclipse = "Eclipse" // seek complementary balance
)

// DefaultName is given to users who have not set one
const DefaultName = "Soul"

// User is the record consumed by the matching engine
type User struct {
	ID                string            `json:"id" db:"id"`
	Name              string            `json:"name" db:"name"`
	Email             *string           `json:"email,omitempty" db:"email"`
	Avatar            *string           `json:"avatar,omitempty" db:"avatar"`
	City              *string           `json:"city,omitempty" db:"city"`
	Traumas           []string          `json:"traumas" db:"-"`
	Positive          []string          `json:"positive" db:"-"`
	Interests         []string          `json:"interests" db:"-"`
	Intent            string            `json:"intent" db:"intent"`
	BehavioralProfile *behavior.Profile `json:"behavioralProfile,omitempty" db:"-"`
	LastActive        time.Time         `json:"last_active" db:"last_active"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// ResolvedIntent returns the user's intent, Mirror when unset
func (u *User) ResolvedIntent() string {
	if u == nil || u.Intent == "" {
		return IntentMirror
	}
	return u.Intent
}

// UnmarshalJSON accepts the older positiveTraits/negativeTraits field names.
// They only fill a list the current field name left empty.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var doc struct {
		*plain
		PositiveTraits []string `json:"positiveTraits"`
		NegativeTraits []string `json:"negativeTraits"`
	}
	doc.plain = (*plain)(u)
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(u.Positive) == 0 && len(doc.PositiveTraits) > 0 {
		u.Positive = doc.PositiveTraits
	}
	if len(u.Traumas) == 0 && len(doc.NegativeTraits) > 0 {
		u.Traumas = doc.NegativeTraits
	}
	return nil
}

// BehavioralColumn stores a behavioral profile as JSONB
type BehavioralColumn struct {
	Profile *behavior.Profile
}

// Scan implements the sql.Scanner interface for BehavioralColumn
func (c *BehavioralColumn) Scan(value interface{}) error {
	if value == nil {
		c.Profile = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("behavioral_profile: unsupported column type")
	}
	var p behavior.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	c.Profile = &p
	return nil
}

// Value implements the driver.Valuer interface for BehavioralColumn
func (c BehavioralColumn) Value() (driver.Value, error) {
	if c.Profile == nil {
		return nil, nil
	}
	return json.Marshal(c.Profile)
}

// userRow is the users table shape
type userRow struct {
	ID                string           `db:"id"`
	Name              string           `db:"name"`
	Email             *string          `db:"email"`
	Avatar            *string          `db:"avatar"`
	City              *string          `db:"city"`
	Traumas           pq.StringArray   `db:"traumas"`
	Positive          pq.StringArray   `db:"positive"`
	Interests         pq.StringArray   `db:"interests"`
	Intent            string           `db:"intent"`
	BehavioralProfile BehavioralColumn `db:"behavioral_profile"`
	LastActive        time.Time        `db:"last_active"`
	CreatedAt         time.Time        `db:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at"`
}

func (r *userRow) toUser() *User {
	return &User{
		ID:                r.ID,
		Name:              r.Name,
		Email:             r.Email,
		Avatar:            r.Avatar,
		City:              r.City,
		Traumas:           nonNil(r.Traumas),
		Positive:          nonNil(r.Positive),
		Interests:         nonNil(r.Interests),
		Intent:            r.Intent,
		BehavioralProfile: r.BehavioralProfile.Profile,
		LastActive:        r.LastActive,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// AssessmentUpdate is the result of one quiz submission. The behavioral
// profile replaces the stored one; trait lists are written as given.
type AssessmentUpdate struct {
	UserID            string
	Traumas           []string
	Positive          []string
	Interests         []string
	Intent            string
	BehavioralProfile *behavior.Profile
}

// PublicProfile is what other users see
type PublicProfile struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Avatar        *string  `json:"avatar,omitempty"`
	City          *string  `json:"city,omitempty"`
	Interests     []string `json:"interests"`
	Intent        string   `json:"intent"`
	ArchetypeName string   `json:"archetype_name,omitempty"`
}

// Public strips trait lists and indexes from a user record
func (u *User) Public() *PublicProfile {
	p := &PublicProfile{
		ID:        u.ID,
		Name:      u.Name,
		Avatar:    u.Avatar,
		City:      u.City,
		Interests: nonNil(u.Interests),
		Intent:    u.ResolvedIntent(),
	}
	if u.BehavioralProfile != nil {
		p.ArchetypeName = u.BehavioralProfile.ArchetypeName
	}
	return p
}
