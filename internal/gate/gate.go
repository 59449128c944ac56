// Package gate decides which route group a client must be shown.
package gate

// Group is a top-level partition of the client's screens.
type Group string

const (
	GroupNone       Group = ""
	GroupOnboarding Group = "onboarding"
	GroupAuth       Group = "auth"
	GroupTabs       Group = "tabs"
)

// LoginRoute is the screen a redirect to GroupAuth lands on.
const LoginRoute = "/auth/login"

// ParseGroup accepts the group names clients report. Unknown names yield GroupNone.
func ParseGroup(s string) Group {
	switch g := Group(s); g {
	case GroupOnboarding, GroupAuth, GroupTabs:
		return g
	}
	return GroupNone
}

// Input is everything the decision depends on.
type Input struct {
	IsLoading              bool  `json:"isLoading"`
	HasCompletedOnboarding bool  `json:"hasCompletedOnboarding"`
	IsAuthenticated        bool  `json:"isAuthenticated"`
	IsApproved             bool  `json:"isApproved"`
	Current                Group `json:"current"`
}

// Decision is the outcome of Resolve. Redirect is GroupNone when the client may
// stay where it is.
type Decision struct {
	Redirect Group  `json:"redirect,omitempty"`
	Route    string `json:"route,omitempty"`
}

// Stay reports whether no redirect is required.
func (d Decision) Stay() bool { return d.Redirect == GroupNone }

func redirect(g Group) Decision {
	d := Decision{Redirect: g}
	if g == GroupAuth {
		d.Route = LoginRoute
	}
	return d
}

// Resolve applies the gating rules in priority order. It has no state, so
// calling it again with the same input always gives the same answer.
func Resolve(in Input) Decision {
	if in.IsLoading {
		return Decision{}
	}

	inOnboarding := in.Current == GroupOnboarding
	inAuth := in.Current == GroupAuth

	switch {
	case !in.HasCompletedOnboarding:
		if !inOnboarding {
			return redirect(GroupOnboarding)
		}
	case !in.IsAuthenticated:
		if !inAuth && !inOnboarding {
			return redirect(GroupAuth)
		}
	case !in.IsApproved:
		if !inAuth {
			return redirect(GroupAuth)
		}
	case inAuth || inOnboarding:
		return redirect(GroupTabs)
	}
	return Decision{}
}

// Target is the group the client ends up in after following d from current.
func (d Decision) Target(current Group) Group {
	if d.Stay() {
		return current
	}
	return d.Redirect
}
