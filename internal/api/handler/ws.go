package handler

import (
	"net/http"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/gate"
	"smartsociety/backend/internal/session"
	"smartsociety/backend/internal/statehub"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are checked by the CORS layer for browser clients; mobile clients send none.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// optionalSession verifies the bearer token when one is present. A missing or
// invalid token means "no session" rather than an error.
func (h *Handler) optionalSession(c *gin.Context) *auth.Session {
	token := bearerToken(c)
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		return nil
	}
	sess, err := h.Sessions.Verify(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return sess
}

func deviceOf(c *gin.Context, sess *auth.Session) string {
	if id := strings.TrimSpace(c.GetHeader(deviceHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.Query("device")); id != "" {
		return id
	}
	if sess != nil {
		return sess.DeviceID
	}
	return ""
}

// GetSession resolves the caller's session once and returns it with the gate
// decision for the group given in ?group=.
func (h *Handler) GetSession(c *gin.Context) {
	sess := h.optionalSession(c)
	deviceID := deviceOf(c, sess)

	st := session.NewResolver(h.Profiles).Resolve(c.Request.Context(), sess)
	onboarded := h.onboarded(c, sess, deviceID)
	c.JSON(http.StatusOK, statehub.BuildFrame(st, onboarded, gate.ParseGroup(c.Query("group"))))
}

// ServeSessionStream upgrades to a WebSocket that pushes a frame on every
// session, profile or onboarding change of the device.
func (h *Handler) ServeSessionStream(c *gin.Context) {
	sess := h.optionalSession(c)
	deviceID := deviceOf(c, sess)
	if deviceID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "device id is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		return
	}

	events, cancel := h.Sessions.Subscribe(deviceID)
	client := statehub.NewWebSocketClient(h.Hub, conn, deviceID, gate.ParseGroup(c.Query("group")),
		session.NewResolver(h.Profiles), h.Onboarding, sess, events, cancel)
	h.Hub.RegisterCh <- client
}
