// Package auth holds the client side of a marketplace login session.
//
// The API issues HS256 bearer tokens. The client has no signing key, so
// claims are decoded without verification and used only to decide when to
// log in again and whether to offer admin commands; the API remains the
// authority on every request.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lingbao-market/client/internal/model"
)

// ErrMalformedToken is returned for tokens that cannot be decoded.
var ErrMalformedToken = errors.New("malformed token")

// DefaultExpirySkew treats a token as expired slightly early so a request
// started just before expiry does not fail midway.
const DefaultExpirySkew = time.Minute

// Session is an authenticated user's token and what it says about them.
type Session struct {
	Token     string
	UserID    string
	Username  string
	IsAdmin   bool
	ExpiresAt time.Time // Zero if the token has no exp claim
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// SessionFromToken decodes a bearer token into a Session.
func SessionFromToken(token string) (*Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedToken)
	}

	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	s := &Session{
		Token:    token,
		UserID:   claims.Subject,
		Username: claims.Username,
		IsAdmin:  claims.Admin,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// NewSession builds a Session from a login response. Fields the response
// carries take precedence over the token's claims.
func NewSession(resp *model.AuthResponse) (*Session, error) {
	s, err := SessionFromToken(resp.Token)
	if err != nil {
		return nil, err
	}
	if resp.ID != "" {
		s.UserID = resp.ID
	}
	if resp.Username != "" {
		s.Username = resp.Username
	}
	s.IsAdmin = s.IsAdmin || resp.IsAdmin
	return s, nil
}

// LoadToken reads a bearer token from a file, as written by `lingbao login`.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrMalformedToken, path)
	}
	return token, nil
}

// SaveToken writes a bearer token to a file readable only by the owner.
func SaveToken(path, token string) error {
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Expired reports whether the session should be renewed at now.
func (s *Session) Expired(now time.Time, skew time.Duration) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(skew).Before(s.ExpiresAt)
}

// Authorization returns the Authorization header value.
func (s *Session) Authorization() string {
	return "Bearer " + s.Token
}
