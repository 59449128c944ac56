package handler

import (
	"log"
	"net/http"
	"smartsociety/backend/internal/account"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/gate"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/session"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	deviceHeader = "X-Device-ID"

	ctxSession = "session"
	ctxProfile = "profile"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// RequireSession rejects requests without a valid bearer token.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": h.message(c, "auth.unauthorized")})
			return
		}
		sess, err := h.Sessions.Verify(c.Request.Context(), token)
		if err != nil {
			h.abortWithError(c, "", err, "auth.unauthorized")
			return
		}
		c.Set(ctxSession, sess)
		c.Next()
	}
}

// RequireGroup runs the navigation gate as if the client were showing group
// and aborts with the redirect when the gate would move it elsewhere. It must
// run after RequireSession.
func (h *Handler) RequireGroup(group gate.Group) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		ctx := c.Request.Context()

		st := session.NewResolver(h.Profiles).Resolve(ctx, sess)
		onboarded := h.onboarded(c, sess, sess.DeviceID)

		d := gate.Resolve(st.GateInput(onboarded, group))
		if !d.Stay() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    h.message(c, "gate.redirect"),
				"redirect": d.Redirect,
				"route":    d.Route,
			})
			return
		}
		if st.Profile != nil && !st.Profile.IsActive {
			h.abortWithError(c, "", account.ErrAccountInactive, "")
			return
		}
		c.Set(ctxProfile, st.Profile)
		c.Next()
	}
}

// onboarded reads the device flag. Without a device id the caller counts as
// onboarded only when signed in, since signing in follows onboarding.
func (h *Handler) onboarded(c *gin.Context, sess *auth.Session, deviceID string) bool {
	if deviceID == "" {
		return sess != nil
	}
	done, err := h.Onboarding.HasCompletedOnboarding(c.Request.Context(), deviceID)
	if err != nil {
		log.Printf("WARN: Onboarding flag of device %s unavailable: %v", deviceID, err)
		return false
	}
	return done
}

func currentSession(c *gin.Context) *auth.Session {
	return c.MustGet(ctxSession).(*auth.Session)
}

func currentProfile(c *gin.Context) *models.User {
	return c.MustGet(ctxProfile).(*models.User)
}
