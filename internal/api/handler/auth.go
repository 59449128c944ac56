package handler

import (
	"net/http"
	"smartsociety/backend/internal/account"
	"strings"

	"github.com/gin-gonic/gin"
)

type onboardingRequest struct {
	Completed bool `json:"completed"`
}

// SignUp registers a resident. The account stays unusable until approved.
func (h *Handler) SignUp(c *gin.Context) {
	var form account.SignUpForm
	if !h.bindJSON(c, &form) {
		return
	}

	profile, err := h.Accounts.SignUp(c.Request.Context(), form)
	if err != nil {
		h.abortWithError(c, "", err, "auth.signup_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"uid":     profile.UID,
		"message": h.message(c, "account.signup_success"),
	})
}

// Login returns a session token for an approved, active resident.
func (h *Handler) Login(c *gin.Context) {
	deviceID := strings.TrimSpace(c.GetHeader(deviceHeader))
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header is required"})
		return
	}

	var req account.LoginForm
	if !h.bindJSON(c, &req) {
		return
	}

	res, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password, deviceID)
	if err != nil {
		h.abortWithError(c, "", err, "auth.login_failed")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": h.message(c, "auth.unauthorized")})
		return
	}
	if err := h.Accounts.Logout(c.Request.Context(), token); err != nil {
		h.abortWithError(c, "", err, "generic.failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// SetOnboarding records that the device finished (or reset) onboarding.
func (h *Handler) SetOnboarding(c *gin.Context) {
	deviceID := strings.TrimSpace(c.GetHeader(deviceHeader))
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header is required"})
		return
	}

	var req onboardingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.Onboarding.SetOnboardingCompleted(c.Request.Context(), deviceID, req.Completed); err != nil {
		h.abortWithError(c, "", err, "generic.failed")
		return
	}
	if h.Hub != nil {
		h.Hub.NotifyDevice(deviceID)
	}
	c.Status(http.StatusNoContent)
}
