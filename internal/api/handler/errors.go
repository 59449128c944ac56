package handler

import (
	"errors"
	"log"
	"net/http"
	"smartsociety/backend/internal/account"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/complaint"
	"smartsociety/backend/internal/localization"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/validation"

	"github.com/gin-gonic/gin"
)

func (h *Handler) lang(c *gin.Context) string {
	return h.Localizer.LanguageFromHeader(c.GetHeader("Accept-Language"))
}

func (h *Handler) message(c *gin.Context, key string) string {
	return h.Localizer.GetString(h.lang(c), key)
}

func (h *Handler) fieldErrors(c *gin.Context, fields map[string]localization.Message) gin.H {
	lang := h.lang(c)
	out := make(gin.H, len(fields))
	for name, m := range fields {
		out[name] = h.Localizer.Localize(lang, m)
	}
	return out
}

// bindJSON decodes the request body into obj. A body that fails only its
// binding tags is let through: the service checks the trimmed values against
// the same tags and reports every field at once.
func (h *Handler) bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || validation.IsFailure(err) {
		return true
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": h.message(c, "generic.failed")})
	return false
}

// abortWithError writes the status and localized message for err. kind is
// used for workflow errors whose message depends on the collection; fallback
// is the message key shown for collaborator failures.
func (h *Handler) abortWithError(c *gin.Context, kind models.Kind, err error, fallback string) {
	var accountInvalid *account.ValidationError
	if errors.As(err, &accountInvalid) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"fields": h.fieldErrors(c, accountInvalid.Fields)})
		return
	}
	var inputInvalid *complaint.ValidationError
	if errors.As(err, &inputInvalid) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"fields": h.fieldErrors(c, inputInvalid.Fields)})
		return
	}

	var authErr *auth.Error
	if errors.As(err, &authErr) {
		c.AbortWithStatusJSON(authStatus(authErr.Code), gin.H{
			"error": h.message(c, authErr.MessageKey()),
			"code":  authErr.Code,
		})
		return
	}

	if key, ok := account.MessageKey(err); ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": h.message(c, key)})
		return
	}

	if key, ok := complaint.MessageKey(kind, err); ok {
		c.AbortWithStatusJSON(workflowStatus(err), gin.H{"error": h.message(c, key)})
		return
	}
	if errors.Is(err, complaint.ErrUnknownKind) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": h.message(c, "submission.not_found")})
		return
	}

	log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
	if fallback == "" {
		fallback = "generic.failed"
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": h.message(c, fallback)})
}

func authStatus(code auth.Code) int {
	switch code {
	case auth.CodeTooManyRequests:
		return http.StatusTooManyRequests
	case auth.CodeEmailAlreadyInUse:
		return http.StatusConflict
	case auth.CodeInvalidEmail, auth.CodeWeakPassword:
		return http.StatusBadRequest
	}
	return http.StatusUnauthorized
}

func workflowStatus(err error) int {
	switch {
	case errors.Is(err, complaint.ErrActiveSubmission):
		return http.StatusConflict
	case errors.Is(err, complaint.ErrNotEditable), errors.Is(err, complaint.ErrNotDeletable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, complaint.ErrNotOwner):
		return http.StatusForbidden
	}
	return http.StatusNotFound
}
