// Package account implements resident sign-up, login and logout on top of the
// authentication collaborator and the profile store.
package account

import (
	"context"
	"errors"
	"fmt"
	"log"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/config"
	"smartsociety/backend/internal/localization"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/storage"
	"smartsociety/backend/internal/validation"
	"strings"
)

var (
	ErrProfileMissing  = errors.New("account: profile not found")
	ErrPendingApproval = errors.New("account: pending approval")
	ErrAccountInactive = errors.New("account: deactivated")
)

// MessageKey returns the localization key for the account errors above.
func MessageKey(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrProfileMissing):
		return "account.profile_missing", true
	case errors.Is(err, ErrPendingApproval):
		return "account.pending_approval", true
	case errors.Is(err, ErrAccountInactive):
		return "account.inactive", true
	}
	return "", false
}

// ValidationError lists every invalid form field with its message.
type ValidationError struct {
	Fields map[string]localization.Message
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	return fmt.Sprintf("account: invalid fields %v", names)
}

// Authenticator is the authentication collaborator.
type Authenticator interface {
	CreateAccount(ctx context.Context, email, password string, profile *models.User) (string, error)
	SignIn(ctx context.Context, email, password, deviceID string) (*auth.Session, error)
	SignOut(ctx context.Context, sess *auth.Session) error
	Verify(ctx context.Context, token string) (*auth.Session, error)
}

// ProfileStore reads resident profiles.
type ProfileStore interface {
	GetUserByID(ctx context.Context, uid string) (*models.User, error)
}

type SignUpForm struct {
	FullName        string `json:"fullName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	HouseNumber     string `json:"houseNumber" binding:"required"`
	CNIC            string `json:"cnic" binding:"required,numeric,len=13"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// LoginForm is the credential pair a resident signs in with.
type LoginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is a successful login: the issued session and the resident behind it.
type LoginResult struct {
	Session *auth.Session `json:"session"`
	Profile *models.User  `json:"profile"`
}

// Service handles the account flows.
type Service struct {
	Auth     Authenticator
	Profiles ProfileStore
}

// NewService creates a new account service.
func NewService(a Authenticator, p ProfileStore) *Service {
	return &Service{Auth: a, Profiles: p}
}

func msg(key string, args ...interface{}) localization.Message {
	return localization.NewMessage(key, args...)
}

var signUpMessages = validation.Messages{
	"fullName":                 msg("validation.full_name_required"),
	"email.required":           msg("validation.email_required"),
	"email":                    msg("validation.email_invalid"),
	"phone":                    msg("validation.phone_required"),
	"houseNumber":              msg("validation.house_number_required"),
	"cnic.required":            msg("validation.cnic_required"),
	"cnic":                     msg("validation.cnic_invalid"),
	"password.required":        msg("validation.password_required"),
	"password":                 msg("validation.password_too_short", config.PasswordMinLength),
	"confirmPassword.required": msg("validation.confirm_password_required"),
	"confirmPassword":          msg("validation.passwords_mismatch"),
}

var loginMessages = validation.Messages{
	"email.required": msg("validation.email_required"),
	"email":          msg("validation.email_invalid"),
	"password":       msg("validation.password_required"),
}

// normalized trims every field and strips the separators residents type in
// phone numbers and CNICs. Passwords are kept as typed.
func (f SignUpForm) normalized() SignUpForm {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.ReplaceAll(strings.TrimSpace(f.Phone), " ", "")
	f.HouseNumber = strings.TrimSpace(f.HouseNumber)
	f.CNIC = strings.ReplaceAll(strings.TrimSpace(f.CNIC), "-", "")
	return f
}

// Validate checks the sign-up form and returns the cleaned profile.
func (f SignUpForm) Validate() (*models.User, error) {
	f = f.normalized()
	fields := validation.Struct(f, signUpMessages)

	if _, bad := fields["phone"]; !bad && !config.PhonePattern.MatchString(f.Phone) {
		fields["phone"] = msg("validation.phone_invalid")
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return &models.User{
		FullName:    f.FullName,
		Email:       f.Email,
		Phone:       f.Phone,
		HouseNumber: f.HouseNumber,
		CNIC:        f.CNIC,
		IsActive:    false,
		IsApproved:  false,
		Role:        models.RoleResident,
	}, nil
}

// Validate checks the shape of the credentials before any sign-in attempt.
func (f LoginForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	if fields := validation.Struct(f, loginMessages); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// SignUp creates the credential and the unapproved profile. No session is
// issued: the resident has to wait for approval and then log in.
func (s *Service) SignUp(ctx context.Context, form SignUpForm) (*models.User, error) {
	profile, err := form.Validate()
	if err != nil {
		return nil, err
	}

	uid, err := s.Auth.CreateAccount(ctx, profile.Email, form.Password, profile)
	if err != nil {
		return nil, err
	}
	profile.UID = uid

	log.Printf("INFO: Account %s registered for house %s, awaiting approval", uid, profile.HouseNumber)
	return profile, nil
}

// Login signs in and admits the session only for an approved, active resident.
// In every other case the fresh session is signed out again before returning.
func (s *Service) Login(ctx context.Context, email, password, deviceID string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if err := (LoginForm{Email: email, Password: password}).Validate(); err != nil {
		return nil, err
	}

	sess, err := s.Auth.SignIn(ctx, email, password, deviceID)
	if err != nil {
		return nil, err
	}

	profile, err := s.Profiles.GetUserByID(ctx, sess.UID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, s.reject(ctx, sess, ErrProfileMissing)
	case err != nil:
		log.Printf("ERROR: Failed to load profile %s after sign-in: %v", sess.UID, err)
		return nil, s.reject(ctx, sess, err)
	case !profile.IsApproved:
		return nil, s.reject(ctx, sess, ErrPendingApproval)
	case !profile.IsActive:
		return nil, s.reject(ctx, sess, ErrAccountInactive)
	}

	return &LoginResult{Session: sess, Profile: profile}, nil
}

func (s *Service) reject(ctx context.Context, sess *auth.Session, cause error) error {
	if err := s.Auth.SignOut(ctx, sess); err != nil {
		log.Printf("WARN: Failed to sign out rejected session of %s: %v", sess.UID, err)
	}
	return cause
}

// Logout revokes the session behind token.
func (s *Service) Logout(ctx context.Context, token string) error {
	sess, err := s.Auth.Verify(ctx, token)
	if err != nil {
		return err
	}
	return s.Auth.SignOut(ctx, sess)
}
