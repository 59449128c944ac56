package statehub_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/gate"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/session"
	"smartsociety/backend/internal/statehub"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildFrame(t *testing.T) {
	st := session.State{SessionPresent: true, IsApproved: true, Profile: &models.User{UID: "u1"}}

	f := statehub.BuildFrame(st, true, gate.GroupAuth)
	assert.Equal(t, gate.GroupTabs, f.Decision.Redirect)

	f = statehub.BuildFrame(st, false, gate.GroupTabs)
	assert.Equal(t, gate.GroupOnboarding, f.Decision.Redirect)
}

func TestFrame_StayOmitsRedirect(t *testing.T) {
	st := session.State{SessionPresent: true, IsApproved: true, Profile: &models.User{UID: "u1"}}

	raw, err := json.Marshal(statehub.BuildFrame(st, true, gate.GroupTabs))
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.JSONEq(t, `{}`, string(fields["decision"]))
}

// readFrame decodes into a fresh Frame so fields omitted from the message
// do not keep values from an earlier one.
func readFrame(t *testing.T, conn *websocket.Conn) statehub.Frame {
	t.Helper()
	var f statehub.Frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestWebSocketClient_StreamsStateChanges(t *testing.T) {
	profiles := new(MockProfiles)
	profiles.On("GetUserByID", mock.Anything, "u1").Return(&models.User{UID: "u1", IsApproved: true, IsActive: true}, nil).Once()
	profiles.On("GetUserByID", mock.Anything, "u1").Return(&models.User{UID: "u1", IsApproved: false}, nil)
	onboarding := new(MockOnboarding)
	onboarding.On("HasCompletedOnboarding", mock.Anything, "dev-1").Return(true, nil)

	hub := statehub.NewManager(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	events := make(chan auth.Event, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := statehub.NewWebSocketClient(hub, conn, "dev-1", gate.GroupTabs,
			session.NewResolver(profiles), onboarding,
			&auth.Session{UID: "u1"}, events, func() {})
		hub.RegisterCh <- client
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	f := readFrame(t, conn)
	assert.True(t, f.State.IsApproved)
	assert.True(t, f.Decision.Stay())

	// An administrator revokes approval.
	hub.ProfileCh <- "u1"
	f = readFrame(t, conn)
	assert.False(t, f.State.IsApproved)
	assert.Equal(t, gate.GroupAuth, f.Decision.Redirect)

	// The client follows the redirect.
	require.NoError(t, conn.WriteJSON(map[string]string{"group": "auth"}))
	f = readFrame(t, conn)
	assert.Equal(t, gate.GroupAuth, f.Group)
	assert.True(t, f.Decision.Stay())

	events <- auth.Event{Type: auth.EventSignedOut, DeviceID: "dev-1"}
	f = readFrame(t, conn)
	assert.False(t, f.State.SessionPresent)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
