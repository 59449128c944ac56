package auth

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type claims struct {
	Email    string `json:"email"`
	DeviceID string `json:"device_id,omitempty"`
	jwt.RegisteredClaims
}

// issueToken signs a session token for the credential.
func (s *Service) issueToken(uid, email, deviceID string) (*Session, error) {
	now := s.now()
	sess := &Session{
		UID:       uid,
		Email:     email,
		DeviceID:  deviceID,
		TokenID:   uuid.New().String(),
		ExpiresAt: now.Add(s.opts.TTL),
	}

	c := claims{
		Email:    email,
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ID:        sess.TokenID,
			Issuer:    s.opts.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(s.opts.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	sess.Token = signed
	return sess, nil
}

// parseToken validates signature, issuer and expiry.
func (s *Service) parseToken(raw string) (*Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.opts.Secret), nil
	},
		jwt.WithIssuer(s.opts.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, newError(CodeInvalidToken)
	}
	if c.Subject == "" || c.ID == "" {
		return nil, newError(CodeInvalidToken)
	}

	return &Session{
		UID:       c.Subject,
		Email:     c.Email,
		DeviceID:  c.DeviceID,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
		Token:     raw,
	}, nil
}

// remaining is how long a revoked token must stay on the deny list.
func (s *Service) remaining(sess *Session) time.Duration {
	return sess.ExpiresAt.Sub(s.now())
}
