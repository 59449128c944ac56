package auth

import "errors"

// Code identifies an authentication failure the client can show a fixed message for.
type Code string

const (
	CodeInvalidEmail      Code = "invalid-email"
	CodeUserNotFound      Code = "user-not-found"
	CodeWrongPassword     Code = "wrong-password"
	CodeTooManyRequests   Code = "too-many-requests"
	CodeEmailAlreadyInUse Code = "email-already-in-use"
	CodeWeakPassword      Code = "weak-password"
	CodeInvalidToken      Code = "invalid-token"
)

var messageKeys = map[Code]string{
	CodeInvalidEmail:      "auth.invalid_email",
	CodeUserNotFound:      "auth.user_not_found",
	CodeWrongPassword:     "auth.wrong_password",
	CodeTooManyRequests:   "auth.too_many_requests",
	CodeEmailAlreadyInUse: "auth.email_already_in_use",
	CodeWeakPassword:      "auth.weak_password",
	CodeInvalidToken:      "auth.unauthorized",
}

// Error is returned for every failure with a known Code. Anything else coming
// out of this package is a collaborator failure.
type Error struct {
	Code Code
}

func (e *Error) Error() string { return "auth: " + string(e.Code) }

// MessageKey is the localization key of the user-facing message.
func (e *Error) MessageKey() string { return messageKeys[e.Code] }

func newError(code Code) error { return &Error{Code: code} }

// CodeOf extracts the Code of an *Error anywhere in err's chain.
func CodeOf(err error) (Code, bool) {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Code, true
	}
	return "", false
}
