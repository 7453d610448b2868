package jwt

import (
	"testing"
	"time"

	"github.com/leehwangjae/student-success-system-v2/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL:          30 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "admin", "바이오")
	if err != nil {
		t.Fatalf("GenerateAccessToken 실패: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 실패: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("UserID 기대=user-1, 실제=%s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role 기대=admin, 실제=%s", claims.Role)
	}
	if claims.Field != "바이오" {
		t.Errorf("Field 기대=바이오, 실제=%s", claims.Field)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType 기대=access, 실제=%s", claims.TokenType)
	}
	if claims.Issuer != "success-index" {
		t.Errorf("Issuer 기대=success-index, 실제=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 는 비어 있으면 안 됩니다")
	}
}

func TestGenerateRefreshToken_Default(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken("user-1", "student", "물류", false)
	if err != nil {
		t.Fatalf("GenerateRefreshToken 실패: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 실패: %v", err)
	}

	if claims.TokenType != "refresh" {
		t.Errorf("TokenType 기대=refresh, 실제=%s", claims.TokenType)
	}
	if claims.RememberMe {
		t.Error("RememberMe 기대=false")
	}

	// 만료 시간이 약 24시간인지 확인
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("기본 RefreshToken TTL 기대=약 24h, 실제=%v", ttl)
	}
}

func TestGenerateRefreshToken_RememberMe(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken("user-1", "student", "물류", true)
	if err != nil {
		t.Fatalf("GenerateRefreshToken(RememberMe) 실패: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 실패: %v", err)
	}

	if !claims.RememberMe {
		t.Error("RememberMe 기대=true")
	}

	// 만료 시간이 약 7일인지 확인
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 6*24*time.Hour || ttl > 8*24*time.Hour {
		t.Errorf("RememberMe RefreshToken TTL 기대=약 7일, 실제=%v", ttl)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("invalid.token.string")
	if err == nil {
		t.Error("잘못된 토큰 파싱 시 오류를 기대")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "different-secret-key",
		AccessTokenTTL: 30 * time.Minute,
	})

	token, _ := m1.GenerateAccessToken("user-1", "admin", "바이오")
	_, err := m2.ParseToken(token)
	if err == nil {
		t.Error("다른 시크릿으로 서명된 토큰은 검증에 실패해야 합니다")
	}
}
