package model

import "time"

// FunnelState collapses all of one user's events, across every session,
// into per-stage reached flags. A user with one session reaching "view"
// and another reaching "checkout" collapses to a fully converted state.
type FunnelState struct {
	Signup   bool `json:"signup"`
	View     bool `json:"view"`
	Cart     bool `json:"cart"`
	Checkout bool `json:"checkout"`
}

// DropStage labels where in the funnel a user stopped, or "completed".
type DropStage string

const (
	DropSignup      DropStage = "signup"
	DropProductView DropStage = "product_view"
	DropAddToCart   DropStage = "add_to_cart"
	DropCompleted   DropStage = "completed"
)

// DropStages returns the four labels in funnel order.
func DropStages() []DropStage {
	return []DropStage{DropSignup, DropProductView, DropAddToCart, DropCompleted}
}

// FunnelRecord is one user's funnel state enriched with a drop-stage label
// and the descriptive attributes of the user's chronologically earliest
// event. Immutable after construction; lives only for one analysis run.
type FunnelRecord struct {
	UserID         int         `json:"user_id"`
	State          FunnelState `json:"state"`
	Drop           DropStage   `json:"drop_stage"`
	Device         Device      `json:"device"`
	City           string      `json:"city"`
	FirstEventTime time.Time   `json:"first_event_time"`
	Hour           int         `json:"hour"`
	LateNight      bool        `json:"is_late_night"`
}

// IsLateNight reports whether an hour of day falls in [22,23] or [0,4].
func IsLateNight(hour int) bool {
	return hour >= 22 || hour <= 4
}
