// Package storage is the document-store and key-value boundary of the service.
// Users, credentials, complaints and suggestions live in PostgreSQL behind gorm;
// onboarding flags, revoked tokens, sign-in counters and change notifications
// live in Redis. Every record read back is checked by the decoders in decode.go.
package storage

import (
	"context"
	"errors"
	"smartsociety/backend/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrNotFound                = errors.New("record not found")
	ErrMalformedRecord         = errors.New("malformed record")
	ErrEmailTaken              = errors.New("email already registered")
	ErrActiveSubmissionExists  = errors.New("active submission already exists")
	ErrNotPending              = errors.New("record is no longer pending")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// UserFlags carries the lifecycle flags an administrator may change.
// Nil fields are left untouched.
type UserFlags struct {
	IsActive   *bool
	IsApproved *bool
}

// ComplaintUpdate is the owner-editable content of a complaint.
type ComplaintUpdate struct {
	Category    models.ComplaintCategory
	Title       string
	Description string
}

// SuggestionUpdate is the owner-editable content of a suggestion.
type SuggestionUpdate struct {
	Title       string
	Description string
}

type UserStore interface {
	CreateAccount(ctx context.Context, cred *models.Credential, profile *models.User) error
	GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error)
	GetUserByID(ctx context.Context, uid string) (*models.User, error)
	SetUserFlags(ctx context.Context, uid string, flags UserFlags) error
	ListUnapprovedUsers(ctx context.Context) ([]models.User, error)
}

type ComplaintStore interface {
	HasActiveComplaint(ctx context.Context, userID string, category models.ComplaintCategory) (bool, error)
	CreateComplaint(ctx context.Context, c *models.Complaint) error
	GetComplaintByID(ctx context.Context, id string) (*models.Complaint, error)
	ListComplaintsByUser(ctx context.Context, userID string) ([]models.Complaint, error)
	UpdatePendingComplaint(ctx context.Context, id string, upd ComplaintUpdate) error
	DeletePendingComplaint(ctx context.Context, id string) error
	SetComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus, reply *string) error
}

type SuggestionStore interface {
	HasPendingSuggestion(ctx context.Context, userID string) (bool, error)
	CreateSuggestion(ctx context.Context, s *models.Suggestion) error
	GetSuggestionByID(ctx context.Context, id string) (*models.Suggestion, error)
	ListSuggestionsByUser(ctx context.Context, userID string) ([]models.Suggestion, error)
	UpdatePendingSuggestion(ctx context.Context, id string, upd SuggestionUpdate) error
	DeletePendingSuggestion(ctx context.Context, id string) error
	MarkSuggestionReviewed(ctx context.Context, id string, reply *string) error
}

// OnboardingStore remembers per device whether the onboarding flow was finished.
type OnboardingStore interface {
	SetOnboardingCompleted(ctx context.Context, deviceID string, done bool) error
	HasCompletedOnboarding(ctx context.Context, deviceID string) (bool, error)
}

// SessionStore backs token revocation and sign-in throttling.
type SessionStore interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	RegisterFailedLogin(ctx context.Context, email string, window time.Duration) (int64, error)
	FailedLoginCount(ctx context.Context, email string) (int64, error)
	ResetFailedLogins(ctx context.Context, email string) error
}

// ChangeNotifier fans profile changes out to every API instance.
type ChangeNotifier interface {
	PublishProfileChange(ctx context.Context, uid string) error
	SubscribeProfileChanges(ctx context.Context) *redis.PubSub
}

type Storage interface {
	UserStore
	ComplaintStore
	SuggestionStore
	OnboardingStore
	SessionStore
	ChangeNotifier
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStorageService Constructor. The gorm handle must be opened with
// TranslateError enabled so unique-index violations surface as gorm.ErrDuplicatedKey.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
	}
}

var _ Storage = (*Service)(nil)

// validID reports whether id can name a row. Keys are uuid columns, and
// PostgreSQL answers any other text with a syntax error instead of no rows.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
