package config

import (
	"regexp"
	"time"
)

const (
	// Submission content. The binding tags on complaint.Input carry the same limits.
	TitleMaxLength       = 100
	DescriptionMaxLength = 500

	// Sign-up, mirrored by the binding tags on account.SignUpForm
	PasswordMinLength = 6
	CNICDigits        = 13

	// Session
	DefaultTokenTTL = 72 * time.Hour

	// Sign-in throttling
	DefaultLoginMaxAttempts   = 5
	DefaultLoginAttemptWindow = 15 * time.Minute
)

// PhonePattern accepts Pakistani mobile numbers with or without the country prefix.
var PhonePattern = regexp.MustCompile(`^(\+92|0)?[0-9]{10}$`)
