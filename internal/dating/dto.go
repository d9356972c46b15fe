// internal/dating/dto.go
package dating

// Swipe directions
const (
	DirectionLeft  = "left"
	DirectionRight = "right"
)

// SwipeRequest is the body of POST /api/v1/dating/swipes
type SwipeRequest struct {
	TargetID  string `json:"target_id" validate:"required,max=128"`
	Direction string `json:"direction" validate:"required,oneof=left right"`
}

// CompatibilityResponse is returned by GET /api/v1/dating/compatibility/{userId}
type CompatibilityResponse struct {
	UserID   string `json:"user_id"`
	TargetID string `json:"target_id"`
	MatchResult
}

// DiscoverParams controls the discover feed
type DiscoverParams struct {
	Limit   int  `json:"limit"`
	Refresh bool `json:"refresh"`
}
