package complaint

import (
	"errors"
	"smartsociety/backend/internal/models"
)

// MessageKey returns the localization key for a workflow error on kind.
func MessageKey(kind models.Kind, err error) (string, bool) {
	switch {
	case errors.Is(err, ErrActiveSubmission):
		return string(kind) + ".active_exists", true
	case errors.Is(err, ErrNotEditable):
		return string(kind) + ".not_editable", true
	case errors.Is(err, ErrNotDeletable):
		return string(kind) + ".not_deletable", true
	case errors.Is(err, ErrNotOwner):
		return "submission.not_owner", true
	case errors.Is(err, ErrNotFound):
		return "submission.not_found", true
	}
	return "", false
}
