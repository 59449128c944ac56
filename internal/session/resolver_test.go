package session_test

import (
	"context"
	"errors"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/gate"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/session"
	"smartsociety/backend/internal/storage"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolver_StartsLoading(t *testing.T) {
	r := session.NewResolver(new(MockProfiles))
	st := r.Current()
	assert.True(t, st.IsLoading)
	assert.True(t, gate.Resolve(st.GateInput(false, gate.GroupTabs)).Stay())
}

func TestResolver_SignedInApproved(t *testing.T) {
	profiles := new(MockProfiles)
	profiles.On("GetUserByID", mock.Anything, "uid-1").
		Return(&models.User{UID: "uid-1", IsApproved: true, IsActive: true}, nil)

	r := session.NewResolver(profiles)
	st := r.Apply(context.Background(), auth.Event{Type: auth.EventSignedIn, Session: &auth.Session{UID: "uid-1"}})

	assert.True(t, st.SessionPresent)
	assert.True(t, st.IsApproved)
	assert.False(t, st.IsLoading)
	require.NotNil(t, st.Profile)
	assert.Equal(t, st, <-r.Updates())
	assert.Equal(t, "uid-1", r.SessionUID())
}

func TestResolver_MissingProfileIsNotApproved(t *testing.T) {
	profiles := new(MockProfiles)
	profiles.On("GetUserByID", mock.Anything, "uid-1").Return(nil, storage.ErrNotFound)

	st := session.NewResolver(profiles).Resolve(context.Background(), &auth.Session{UID: "uid-1"})
	assert.True(t, st.SessionPresent)
	assert.Nil(t, st.Profile)
	assert.False(t, st.IsApproved)
	assert.False(t, st.ProfileError)
}

func TestResolver_FetchFailureDegradesToNoProfile(t *testing.T) {
	profiles := new(MockProfiles)
	profiles.On("GetUserByID", mock.Anything, "uid-1").Return(nil, errors.New("timeout"))

	st := session.NewResolver(profiles).Resolve(context.Background(), &auth.Session{UID: "uid-1"})
	assert.Nil(t, st.Profile)
	assert.False(t, st.IsApproved)
	assert.True(t, st.ProfileError)

	d := gate.Resolve(st.GateInput(true, gate.GroupTabs))
	assert.Equal(t, gate.GroupAuth, d.Redirect)
}

func TestResolver_SignedOutClearsState(t *testing.T) {
	profiles := new(MockProfiles)
	profiles.On("GetUserByID", mock.Anything, "uid-1").Return(&models.User{UID: "uid-1", IsApproved: true}, nil)

	r := session.NewResolver(profiles)
	r.Resolve(context.Background(), &auth.Session{UID: "uid-1"})
	st := r.Apply(context.Background(), auth.Event{Type: auth.EventSignedOut})

	assert.Equal(t, session.State{}, st)
	assert.Empty(t, r.SessionUID())
	// Only the latest published state is kept for a reader that fell behind.
	assert.Equal(t, session.State{}, <-r.Updates())
}

func TestResolver_RefreshOnlyForCurrentSession(t *testing.T) {
	profiles := new(MockProfiles)
	profiles.On("GetUserByID", mock.Anything, "uid-1").Return(&models.User{UID: "uid-1"}, nil).Once()
	profiles.On("GetUserByID", mock.Anything, "uid-1").Return(&models.User{UID: "uid-1", IsApproved: true}, nil).Once()

	r := session.NewResolver(profiles)
	ctx := context.Background()
	assert.False(t, r.Resolve(ctx, &auth.Session{UID: "uid-1"}).IsApproved)

	_, ok := r.Refresh(ctx, "uid-2")
	assert.False(t, ok)

	st, ok := r.Refresh(ctx, "uid-1")
	assert.True(t, ok)
	assert.True(t, st.IsApproved)
	profiles.AssertNumberOfCalls(t, "GetUserByID", 2)
}

func TestResolver_Run(t *testing.T) {
	profiles := new(MockProfiles)
	profiles.On("GetUserByID", mock.Anything, "uid-1").Return(&models.User{UID: "uid-1", IsApproved: true}, nil)

	r := session.NewResolver(profiles)
	events := make(chan auth.Event, 1)
	refresh := make(chan string)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		r.Run(ctx, events, refresh)
		close(done)
	}()

	events <- auth.Event{Type: auth.EventSignedIn, Session: &auth.Session{UID: "uid-1"}}
	select {
	case st := <-r.Updates():
		assert.True(t, st.IsApproved)
	case <-time.After(time.Second):
		t.Fatal("no state published")
	}

	close(events)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after events closed")
	}
}
