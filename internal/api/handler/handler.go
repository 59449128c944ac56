// Package handler exposes the resident API over HTTP and WebSocket.
package handler

import (
	"context"
	"smartsociety/backend/internal/account"
	"smartsociety/backend/internal/analysis"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/complaint"
	"smartsociety/backend/internal/localization"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/statehub"
)

// Accounts is the sign-up, login and logout flow.
type Accounts interface {
	SignUp(ctx context.Context, form account.SignUpForm) (*models.User, error)
	Login(ctx context.Context, email, password, deviceID string) (*account.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// Sessions verifies bearer tokens and streams a device's session changes.
type Sessions interface {
	Verify(ctx context.Context, token string) (*auth.Session, error)
	Subscribe(deviceID string) (<-chan auth.Event, func())
}

// Submissions is the complaint and suggestion workflow.
type Submissions interface {
	Submit(ctx context.Context, owner *models.User, kind models.Kind, in complaint.Input) (*complaint.Record, error)
	List(ctx context.Context, ownerID string, kind models.Kind) ([]complaint.Record, error)
	FetchDetail(ctx context.Context, callerID string, kind models.Kind, id string) (*complaint.Detail, error)
	Edit(ctx context.Context, callerID string, kind models.Kind, id string, in complaint.Input) (*complaint.Record, error)
	Delete(ctx context.Context, callerID string, kind models.Kind, id string) error
}

type Dashboards interface {
	Dashboard(ctx context.Context, userID string) (analysis.Summary, error)
}

type Profiles interface {
	GetUserByID(ctx context.Context, uid string) (*models.User, error)
}

type Onboarding interface {
	SetOnboardingCompleted(ctx context.Context, deviceID string, done bool) error
	HasCompletedOnboarding(ctx context.Context, deviceID string) (bool, error)
}

// Handler holds the services behind every route.
type Handler struct {
	Accounts    Accounts
	Sessions    Sessions
	Submissions Submissions
	Dashboards  Dashboards
	Profiles    Profiles
	Onboarding  Onboarding
	Hub         *statehub.Manager
	Localizer   *localization.Localizer
}

func NewHandler(accounts Accounts, sessions Sessions, submissions Submissions, dashboards Dashboards,
	profiles Profiles, onboarding Onboarding, hub *statehub.Manager, localizer *localization.Localizer) *Handler {
	return &Handler{
		Accounts:    accounts,
		Sessions:    sessions,
		Submissions: submissions,
		Dashboards:  dashboards,
		Profiles:    profiles,
		Onboarding:  onboarding,
		Hub:         hub,
		Localizer:   localizer,
	}
}
