// Package session keeps the signed-in resident's profile in step with the
// authentication state of one device.
package session

import (
	"context"
	"errors"
	"log"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/gate"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/storage"
	"sync"
)

// State is the combined session and profile view.
type State struct {
	SessionPresent bool         `json:"sessionPresent"`
	Profile        *models.User `json:"profile"`
	IsApproved     bool         `json:"isApproved"`
	IsLoading      bool         `json:"isLoading"`
	// ProfileError is set when the profile could not be fetched. The state then
	// looks like "no profile" to every other consumer.
	ProfileError bool `json:"profileError,omitempty"`
}

// GateInput combines the state with the device's onboarding flag and the
// group the client is showing.
func (s State) GateInput(onboarded bool, current gate.Group) gate.Input {
	return gate.Input{
		IsLoading:              s.IsLoading,
		HasCompletedOnboarding: onboarded,
		IsAuthenticated:        s.SessionPresent,
		IsApproved:             s.IsApproved,
		Current:                current,
	}
}

// ProfileFetcher loads a profile by UID.
type ProfileFetcher interface {
	GetUserByID(ctx context.Context, uid string) (*models.User, error)
}

// Resolver turns session changes into States. Use one per device connection.
type Resolver struct {
	profiles ProfileFetcher

	mu      sync.RWMutex
	state   State
	session *auth.Session

	updates chan State
}

// NewResolver starts in the loading state until the first event is applied.
func NewResolver(profiles ProfileFetcher) *Resolver {
	return &Resolver{
		profiles: profiles,
		state:    State{IsLoading: true},
		updates:  make(chan State, 1),
	}
}

// Current returns the latest state, including an in-flight loading state.
func (r *Resolver) Current() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Updates delivers every published state. Slow readers only see the latest one.
func (r *Resolver) Updates() <-chan State {
	return r.updates
}

// SessionUID is the UID of the current session, or "".
func (r *Resolver) SessionUID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session == nil {
		return ""
	}
	return r.session.UID
}

// Apply handles one authentication event and returns the published state.
func (r *Resolver) Apply(ctx context.Context, ev auth.Event) State {
	switch ev.Type {
	case auth.EventSignedIn:
		return r.Resolve(ctx, ev.Session)
	case auth.EventSignedOut:
		return r.Resolve(ctx, nil)
	}
	return r.Current()
}

// Resolve switches to sess (nil for "no session") and publishes the result.
func (r *Resolver) Resolve(ctx context.Context, sess *auth.Session) State {
	if sess == nil {
		r.mu.Lock()
		r.session = nil
		r.mu.Unlock()
		return r.publish(State{})
	}

	r.mu.Lock()
	r.session = sess
	r.state = State{SessionPresent: true, IsLoading: true}
	r.mu.Unlock()

	return r.publish(r.fetch(ctx, sess.UID))
}

// Refresh fetches the profile again when uid belongs to the current session.
func (r *Resolver) Refresh(ctx context.Context, uid string) (State, bool) {
	if uid == "" || r.SessionUID() != uid {
		return r.Current(), false
	}
	return r.publish(r.fetch(ctx, uid)), true
}

func (r *Resolver) fetch(ctx context.Context, uid string) State {
	profile, err := r.profiles.GetUserByID(ctx, uid)
	if err != nil {
		st := State{SessionPresent: true}
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("WARN: Profile fetch for %s failed: %v", uid, err)
			st.ProfileError = true
		}
		return st
	}
	return State{
		SessionPresent: true,
		Profile:        profile,
		IsApproved:     profile.IsApproved,
	}
}

func (r *Resolver) publish(st State) State {
	r.mu.Lock()
	r.state = st
	r.mu.Unlock()

	select {
	case r.updates <- st:
	default:
		select {
		case <-r.updates:
		default:
		}
		r.updates <- st
	}
	return st
}

// Run applies auth events and profile refresh requests until ctx is done or
// events is closed.
func (r *Resolver) Run(ctx context.Context, events <-chan auth.Event, refresh <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			r.Apply(ctx, ev)
		case uid := <-refresh:
			r.Refresh(ctx, uid)
		}
	}
}
