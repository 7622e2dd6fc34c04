package aggregate

import (
	"github.com/pkg/errors"

	"github.com/crimson-sun/funnelscope/internal/model"
)

// Aggregate folds the full event log into one FunnelState per distinct
// user observed. Each stage flag is the OR over all of that user's events,
// irrespective of session, so the fold is order-independent: shuffling the
// log yields identical states. Users with zero events never materialize.
// Returns an error on an event name outside the four funnel stages.
func Aggregate(events []model.Event) (map[int]model.FunnelState, error) {
	states := make(map[int]model.FunnelState)
	for _, e := range events {
		s := states[e.UserID]
		switch e.Name {
		case model.EventSignup:
			s.Signup = true
		case model.EventProductView:
			s.View = true
		case model.EventAddToCart:
			s.Cart = true
		case model.EventCheckout:
			s.Checkout = true
		default:
			return nil, errors.Errorf("aggregate: unexpected event name %q (user %d, session %s)", e.Name, e.UserID, e.SessionID)
		}
		states[e.UserID] = s
	}
	return states, nil
}

// Counts holds the number of users that reached each stage.
type Counts struct {
	Signup   int `json:"signup"`
	View     int `json:"view"`
	Cart     int `json:"cart"`
	Checkout int `json:"checkout"`
}

// Count sums each stage flag across the aggregated states. Stage gating in
// the generator makes the counts non-increasing along the funnel.
func Count(states map[int]model.FunnelState) Counts {
	var c Counts
	for _, s := range states {
		if s.Signup {
			c.Signup++
		}
		if s.View {
			c.View++
		}
		if s.Cart {
			c.Cart++
		}
		if s.Checkout {
			c.Checkout++
		}
	}
	return c
}
