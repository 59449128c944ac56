package complaint

import (
	"smartsociety/backend/internal/models"
	"time"
)

// Record is the view of a complaint or suggestion handed to clients.
type Record struct {
	Kind        models.Kind `json:"kind"`
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	UserName    string      `json:"userName"`
	HouseNumber string      `json:"houseNumber"`
	Category    string      `json:"category,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	AdminReply  *string     `json:"adminReply,omitempty"`
	RepliedAt   *time.Time  `json:"repliedAt,omitempty"`
	ResolvedAt  *time.Time  `json:"resolvedAt,omitempty"`
	ReviewedAt  *time.Time  `json:"reviewedAt,omitempty"`
	ImageURLs   []string    `json:"imageUrls,omitempty"`
	// Editable is true while the owner may still edit or delete the record.
	Editable bool `json:"editable"`
}

// Pending reports whether the record is still awaiting the administrator.
func (r *Record) Pending() bool {
	return r.Status == string(models.ComplaintPending)
}

// Active reports whether the record still counts against the one-active rule.
func (r *Record) Active() bool {
	if r.Kind == models.KindComplaint {
		return models.ComplaintStatus(r.Status).Active()
	}
	return models.SuggestionStatus(r.Status).Active()
}

func complaintRecord(c *models.Complaint) *Record {
	r := &Record{
		Kind:        models.KindComplaint,
		ID:          c.ID,
		UserID:      c.UserID,
		UserName:    c.UserName,
		HouseNumber: c.HouseNumber,
		Category:    string(c.Category),
		Title:       c.Title,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		AdminReply:  c.AdminReply,
		RepliedAt:   c.RepliedAt,
		ResolvedAt:  c.ResolvedAt,
		ImageURLs:   c.ImageURLs,
	}
	r.Editable = r.Pending()
	return r
}

func suggestionRecord(s *models.Suggestion) *Record {
	r := &Record{
		Kind:        models.KindSuggestion,
		ID:          s.ID,
		UserID:      s.UserID,
		UserName:    s.UserName,
		HouseNumber: s.HouseNumber,
		Title:       s.Title,
		Description: s.Description,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		AdminReply:  s.AdminReply,
		RepliedAt:   s.RepliedAt,
		ReviewedAt:  s.ReviewedAt,
	}
	r.Editable = r.Pending()
	return r
}

type Step string

const (
	StepSubmitted  Step = "submitted"
	StepInProgress Step = "in_progress"
	StepReplied    Step = "replied"
	StepResolved   Step = "resolved"
	StepReviewed   Step = "reviewed"
)

type TimelineEntry struct {
	Step Step      `json:"step"`
	At   time.Time `json:"at"`
}

// Detail is a record with its activity timeline.
type Detail struct {
	Record
	Timeline []TimelineEntry `json:"timeline"`
}

// BuildTimeline lists the steps the record has gone through. A step is only
// shown when the time it happened is known. The in-progress step has no
// timestamp of its own and is dated by the last update while it lasts.
func BuildTimeline(r *Record) []TimelineEntry {
	timeline := []TimelineEntry{{Step: StepSubmitted, At: r.CreatedAt}}

	if r.Kind == models.KindComplaint && r.Status == string(models.ComplaintInProgress) {
		timeline = append(timeline, TimelineEntry{Step: StepInProgress, At: r.UpdatedAt})
	}
	if r.RepliedAt != nil {
		timeline = append(timeline, TimelineEntry{Step: StepReplied, At: *r.RepliedAt})
	}
	if r.ResolvedAt != nil {
		timeline = append(timeline, TimelineEntry{Step: StepResolved, At: *r.ResolvedAt})
	}
	if r.ReviewedAt != nil {
		timeline = append(timeline, TimelineEntry{Step: StepReviewed, At: *r.ReviewedAt})
	}
	return timeline
}
