// Package auth is the authentication collaborator: it owns credentials, issues
// and verifies session tokens, and tells subscribers when a device signs in or out.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"smartsociety/backend/internal/config"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/storage"
	"smartsociety/backend/internal/validation"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Store is the part of storage the auth service needs.
type Store interface {
	CreateAccount(ctx context.Context, cred *models.Credential, profile *models.User) error
	GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error)
	storage.SessionStore
}

// Options configures token signing and sign-in throttling.
type Options struct {
	Secret        string
	Issuer        string
	TTL           time.Duration
	MaxAttempts   int
	AttemptWindow time.Duration
	HashCost      int
}

func (o *Options) setDefaults() {
	if o.TTL <= 0 {
		o.TTL = config.DefaultTokenTTL
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = config.DefaultLoginMaxAttempts
	}
	if o.AttemptWindow <= 0 {
		o.AttemptWindow = config.DefaultLoginAttemptWindow
	}
	if o.HashCost == 0 {
		o.HashCost = bcrypt.DefaultCost
	}
}

// Session is an issued session credential.
type Session struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	DeviceID  string    `json:"deviceId,omitempty"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	Token     string    `json:"token"`
}

type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)

// Event is one session state change of a device. Session is nil for EventSignedOut.
type Event struct {
	Type     EventType
	DeviceID string
	Session  *Session
}

// Service handles credentials and sessions.
type Service struct {
	store Store
	opts  Options
	now   func() time.Time

	mu          sync.Mutex
	nextSubID   int
	subscribers map[string]map[int]chan Event
}

// NewService creates a new auth service.
func NewService(store Store, opts Options) *Service {
	opts.setDefaults()
	return &Service{
		store:       store,
		opts:        opts,
		now:         time.Now,
		subscribers: make(map[string]map[int]chan Event),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAccount stores a new credential and its profile. The returned UID is
// shared by both. No session is issued.
func (s *Service) CreateAccount(ctx context.Context, email, password string, profile *models.User) (string, error) {
	email = normalizeEmail(email)
	if !validation.Email(email) {
		return "", newError(CodeInvalidEmail)
	}
	if len(password) < config.PasswordMinLength {
		return "", newError(CodeWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.HashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	cred := &models.Credential{Email: email, PasswordHash: string(hash)}
	profile.Email = email
	if err := s.store.CreateAccount(ctx, cred, profile); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return "", newError(CodeEmailAlreadyInUse)
		}
		return "", err
	}
	return cred.UID, nil
}

// SignIn checks the password and issues a session for the device.
func (s *Service) SignIn(ctx context.Context, email, password, deviceID string) (*Session, error) {
	email = normalizeEmail(email)
	if !validation.Email(email) {
		return nil, newError(CodeInvalidEmail)
	}

	failures, err := s.store.FailedLoginCount(ctx, email)
	if err != nil {
		return nil, err
	}
	if failures >= int64(s.opts.MaxAttempts) {
		return nil, newError(CodeTooManyRequests)
	}

	cred, err := s.store.GetCredentialByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		s.registerFailure(ctx, email)
		return nil, newError(CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		s.registerFailure(ctx, email)
		return nil, newError(CodeWrongPassword)
	}

	if err := s.store.ResetFailedLogins(ctx, email); err != nil {
		log.Printf("WARN: Failed to reset sign-in counter for %s: %v", email, err)
	}

	sess, err := s.issueToken(cred.UID, cred.Email, deviceID)
	if err != nil {
		return nil, err
	}
	s.emit(Event{Type: EventSignedIn, DeviceID: deviceID, Session: sess})
	return sess, nil
}

func (s *Service) registerFailure(ctx context.Context, email string) {
	if _, err := s.store.RegisterFailedLogin(ctx, email, s.opts.AttemptWindow); err != nil {
		log.Printf("WARN: Failed to count sign-in failure for %s: %v", email, err)
	}
}

// SignOut revokes the session token until its natural expiry.
func (s *Service) SignOut(ctx context.Context, sess *Session) error {
	if err := s.store.RevokeToken(ctx, sess.TokenID, s.remaining(sess)); err != nil {
		return err
	}
	s.emit(Event{Type: EventSignedOut, DeviceID: sess.DeviceID})
	return nil
}

// Verify returns the session behind a bearer token.
func (s *Service) Verify(ctx context.Context, token string) (*Session, error) {
	sess, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.store.IsTokenRevoked(ctx, sess.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, newError(CodeInvalidToken)
	}
	return sess, nil
}

// Subscribe streams session changes of a device until cancel is called.
func (s *Service) Subscribe(deviceID string) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	if s.subscribers[deviceID] == nil {
		s.subscribers[deviceID] = make(map[int]chan Event)
	}
	s.subscribers[deviceID][id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers[deviceID], id)
			if len(s.subscribers[deviceID]) == 0 {
				delete(s.subscribers, deviceID)
			}
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Service) emit(ev Event) {
	if ev.DeviceID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subscribers[ev.DeviceID] {
		select {
		case ch <- ev:
		default:
			log.Printf("WARN: Dropping %s event for slow subscriber on device %s", ev.Type, ev.DeviceID)
		}
	}
}
