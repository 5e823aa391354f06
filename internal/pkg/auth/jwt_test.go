package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/pintando7/escolinha/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "escolinha-test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)
	user := &models.User{ID: "user-1", Email: "maria@pintando7.com.br", RoleType: models.RoleAdmin}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if refreshToken == "" || refreshToken == accessToken {
		t.Fatal("refresh token missing or equal to access token")
	}
	if expiresIn != 3600 {
		t.Fatalf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Fatalf("refreshExpiresIn = %d, want 86400", refreshExpiresIn)
	}

	claims, err := svc.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "maria@pintando7.com.br" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Local {
		t.Fatal("managed token marked local")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)
	user := &models.User{ID: "user-1", Email: "maria@pintando7.com.br"}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := svc.ValidateToken(accessToken); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "maria@pintando7.com.br"}
	accessToken, _, _, _, err := newTestService(time.Hour).GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "another-secret", AccessTokenExp: time.Hour})
	if _, err := other.ValidateToken(accessToken); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestGenerateLocalToken(t *testing.T) {
	svc := newTestService(time.Hour)

	token, err := svc.GenerateLocalToken(&models.LocalSession{
		UserID:   "local-admin",
		Username: "admin",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("GenerateLocalToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !claims.Local {
		t.Fatal("local token not marked local")
	}
	if claims.UserID != "local-admin" {
		t.Fatalf("UserID = %s, want local-admin", claims.UserID)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc123", "abc123", false},
		{"bearer abc123", "abc123", false},
		{"", "", true},
		{"abc123", "", true},
		{"Basic abc123", "", true},
	}
	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ExtractBearerToken(%q) accepted", tt.header)
			}
			continue
		}
		if err != nil {
			t.Errorf("ExtractBearerToken(%q): %v", tt.header, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
