package complaint

import (
	"fmt"
	"smartsociety/backend/internal/config"
	"smartsociety/backend/internal/localization"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/validation"
	"strings"
)

// Input is the owner-supplied content of a submission. Category is ignored
// for suggestions.
type Input struct {
	Category    string   `json:"category"`
	Title       string   `json:"title" binding:"required,max=100"`
	Description string   `json:"description" binding:"required,max=500"`
	ImageURLs   []string `json:"imageUrls" binding:"omitempty,dive,url"`
}

var inputMessages = validation.Messages{
	"title.required":       localization.NewMessage("validation.title_required"),
	"title":                localization.NewMessage("validation.title_too_long", config.TitleMaxLength),
	"description.required": localization.NewMessage("validation.description_required"),
	"description":          localization.NewMessage("validation.description_too_long", config.DescriptionMaxLength),
	"imageUrls":            localization.NewMessage("validation.image_url_invalid"),
}

func (in Input) title() string       { return strings.TrimSpace(in.Title) }
func (in Input) description() string { return strings.TrimSpace(in.Description) }

// ValidationError maps each invalid field to its message.
type ValidationError struct {
	Fields map[string]localization.Message
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	return fmt.Sprintf("complaint: invalid fields %v", names)
}

// Validate checks the fields a submission of kind needs. Text fields are
// checked after trimming.
func (in Input) Validate(kind models.Kind) error {
	trimmed := in
	trimmed.Title = in.title()
	trimmed.Description = in.description()
	fields := validation.Struct(trimmed, inputMessages)

	if kind == models.KindComplaint {
		switch {
		case strings.TrimSpace(in.Category) == "":
			fields["category"] = localization.NewMessage("validation.category_required")
		case !models.ComplaintCategory(in.Category).Valid():
			fields["category"] = localization.NewMessage("validation.category_invalid")
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
