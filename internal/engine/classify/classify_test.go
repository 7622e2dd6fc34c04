package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crimson-sun/funnelscope/internal/model"
)

func TestDropStageGeneratorReachableStates(t *testing.T) {
	cases := []struct {
		name  string
		state model.FunnelState
		want  model.DropStage
	}{
		{"signed up only", model.FunnelState{Signup: true}, model.DropSignup},
		{"viewed", model.FunnelState{Signup: true, View: true}, model.DropProductView},
		{"carted", model.FunnelState{Signup: true, View: true, Cart: true}, model.DropAddToCart},
		{"converted", model.FunnelState{Signup: true, View: true, Cart: true, Checkout: true}, model.DropCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DropStage(tc.state))
		})
	}
}

// The rule is total over all 16 states, including ones the generator can
// never produce. In particular a state that never signed up falls through
// to "completed"; this pins that quirk so a change to the taxonomy is a
// conscious break, not an accident.
func TestDropStageIsTotal(t *testing.T) {
	for i := 0; i < 16; i++ {
		state := model.FunnelState{
			Signup:   i&1 != 0,
			View:     i&2 != 0,
			Cart:     i&4 != 0,
			Checkout: i&8 != 0,
		}
		got := DropStage(state)
		assert.Contains(t, model.DropStages(), got, "state %+v", state)
	}
}

func TestDropStageFallThrough(t *testing.T) {
	cases := []struct {
		name  string
		state model.FunnelState
		want  model.DropStage
	}{
		{"all false", model.FunnelState{}, model.DropCompleted},
		{"never signed up but viewed", model.FunnelState{View: true}, model.DropProductView},
		{"never signed up but carted", model.FunnelState{Cart: true}, model.DropAddToCart},
		{"checkout only", model.FunnelState{Checkout: true}, model.DropCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DropStage(tc.state))
		})
	}
}
