package classify

import "github.com/crimson-sun/funnelscope/internal/model"

// DropStage applies the fixed-priority drop-off rule to a funnel state.
// The rule is total: every state maps to exactly one of the four labels.
//
// A state with Signup=false falls through to "completed". The generator
// never produces such a state (signup is always emitted), but a filtered
// or malformed log can reach it; the fall-through is kept as-is rather
// than patched with a fifth label, and is pinned by tests.
func DropStage(s model.FunnelState) model.DropStage {
	switch {
	case s.Signup && !s.View:
		return model.DropSignup
	case s.View && !s.Cart:
		return model.DropProductView
	case s.Cart && !s.Checkout:
		return model.DropAddToCart
	default:
		return model.DropCompleted
	}
}
