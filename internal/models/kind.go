package models

// Kind names one of the two submission collections.
type Kind string

const (
	KindComplaint  Kind = "complaint"
	KindSuggestion Kind = "suggestion"
)

// ParseKind accepts both the singular and the collection form ("complaints").
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "complaint", "complaints":
		return KindComplaint, true
	case "suggestion", "suggestions":
		return KindSuggestion, true
	}
	return "", false
}
