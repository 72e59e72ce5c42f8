package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lingbao-market/client/internal/model"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-only-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSessionFromToken(t *testing.T) {
	exp := time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)
	token := signToken(t, jwt.MapClaims{
		"sub":      "u1",
		"username": "alice",
		"admin":    true,
		"exp":      exp.Unix(),
	})

	s, err := SessionFromToken("Bearer " + token)
	if err != nil {
		t.Fatalf("SessionFromToken failed: %v", err)
	}

	if s.Token != token {
		t.Errorf("Token = %q, want prefix stripped", s.Token)
	}
	if s.UserID != "u1" {
		t.Errorf("UserID = %q, want %q", s.UserID, "u1")
	}
	if s.Username != "alice" {
		t.Errorf("Username = %q, want %q", s.Username, "alice")
	}
	if !s.IsAdmin {
		t.Error("IsAdmin = false, want true")
	}
	if !s.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", s.ExpiresAt, exp)
	}
	if s.Authorization() != "Bearer "+token {
		t.Errorf("Authorization() = %q", s.Authorization())
	}
}

func TestSessionFromToken_Malformed(t *testing.T) {
	for _, token := range []string{"", "Bearer ", "not-a-jwt", "a.b.c"} {
		if _, err := SessionFromToken(token); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("SessionFromToken(%q) error = %v, want %v", token, err, ErrMalformedToken)
		}
	}
}

func TestNewSession(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "u1", "username": "alice"})

	s, err := NewSession(&model.AuthResponse{Token: token, Username: "Alice", ID: "u1", IsAdmin: true})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.Username != "Alice" {
		t.Errorf("Username = %q, want response value %q", s.Username, "Alice")
	}
	if !s.IsAdmin {
		t.Error("IsAdmin = false, want true from response")
	}
	if !s.ExpiresAt.IsZero() {
		t.Errorf("ExpiresAt = %v, want zero without exp claim", s.ExpiresAt)
	}
}

func TestSession_Expired(t *testing.T) {
	exp := time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)
	s := &Session{ExpiresAt: exp}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before", exp.Add(-time.Hour), false},
		{"inside skew", exp.Add(-30 * time.Second), true},
		{"after", exp.Add(time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Expired(tt.now, DefaultExpirySkew); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}

	if (&Session{}).Expired(exp, 0) {
		t.Error("session without exp reported expired")
	}
}

func TestSaveLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	if err := SaveToken(path, "abc.def.ghi"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("perm = %o, want 600", perm)
	}

	token, err := LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken failed: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("token = %q, want %q", token, "abc.def.ghi")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	os.WriteFile(empty, []byte("\n"), 0600)
	if _, err := LoadToken(empty); !errors.Is(err, ErrMalformedToken) {
		t.Errorf("LoadToken(empty) error = %v, want %v", err, ErrMalformedToken)
	}

	if _, err := LoadToken(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("LoadToken(missing) expected error")
	}
}
