package statehub

import (
	"smartsociety/backend/internal/gate"
	"smartsociety/backend/internal/session"
)

// Frame is what a client receives on every change.
type Frame struct {
	State                  session.State `json:"state"`
	HasCompletedOnboarding bool          `json:"hasCompletedOnboarding"`
	Group                  gate.Group    `json:"group"`
	Decision               gate.Decision `json:"decision"`
}

// BuildFrame runs the navigation gate for st.
func BuildFrame(st session.State, onboarded bool, current gate.Group) Frame {
	return Frame{
		State:                  st,
		HasCompletedOnboarding: onboarded,
		Group:                  current,
		Decision:               gate.Resolve(st.GateInput(onboarded, current)),
	}
}

// clientMessage is sent by the client whenever it shows another route group.
type clientMessage struct {
	Group string `json:"group"`
}
