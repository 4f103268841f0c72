package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/finops-engine/backend/internal/config"
	"github.com/finops-engine/backend/internal/model"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	svc, err := NewAuthService(nil, config.AuthConfig{
		JWTSecret:     "test-secret",
		JWTAccessTTL:  "15m",
		JWTRefreshTTL: "720h",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestAccessTokenCarriesOperatorRole(t *testing.T) {
	svc := newTestAuthService(t)

	op := &model.Operator{ID: 7, LoginID: "cost-admin", Role: model.RoleAdmin}
	token, expiresIn, err := svc.mintAccessToken(op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expiresIn != 15*60 {
		t.Fatalf("expected expiresIn 900, got %d", expiresIn)
	}

	parsed, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.ID != 7 {
		t.Fatalf("expected operator id 7, got %d", parsed.ID)
	}
	if parsed.LoginID != "cost-admin" {
		t.Fatalf("expected login id cost-admin, got %q", parsed.LoginID)
	}
	if parsed.Role != model.RoleAdmin {
		t.Fatalf("expected role admin, got %q", parsed.Role)
	}
}

func TestParseAccessTokenRejectsUnknownRole(t *testing.T) {
	svc := newTestAuthService(t)

	op := &model.Operator{ID: 3, LoginID: "drifter", Role: model.OperatorRole("superuser")}
	token, _, err := svc.mintAccessToken(op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ParseAccessToken(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestAuthService(t)
	other, err := NewAuthService(nil, config.AuthConfig{
		JWTSecret:     "another-secret",
		JWTAccessTTL:  "15m",
		JWTRefreshTTL: "720h",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, _, err := svc.mintAccessToken(&model.Operator{ID: 1, LoginID: "analyst-1", Role: model.RoleAnalyst})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.ParseAccessToken(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	cases := []struct {
		name     string
		loginID  string
		password string
		wantErr  bool
	}{
		{"valid", "analyst-1", "longenough", false},
		{"short login", "ab", "longenough", true},
		{"short password", "analyst-1", "short", true},
		{"blank login", "   ", "longenough", true},
	}
	for _, tc := range cases {
		err := validateCredentials(tc.loginID, tc.password)
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestNewAuthServiceRejectsInsecureSameSiteNone(t *testing.T) {
	_, err := NewAuthService(nil, config.AuthConfig{
		JWTSecret:      "test-secret",
		JWTAccessTTL:   "15m",
		JWTRefreshTTL:  "720h",
		CookieSecure:   "false",
		CookieSameSite: "none",
	})
	if !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}

func TestMintRefreshTokenHashesDiffer(t *testing.T) {
	token, hash, err := mintRefreshToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || hash == "" {
		t.Fatalf("expected non-empty token and hash")
	}
	if token == hash {
		t.Fatalf("expected stored hash to differ from raw token")
	}
	if hashRefreshToken(token) != hash {
		t.Fatalf("expected hash to be derived from token")
	}
}

func TestParseSameSiteDefaultsToLax(t *testing.T) {
	mode, err := parseSameSite("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode != http.SameSiteLaxMode {
		t.Fatalf("expected lax mode, got %v", mode)
	}
}
