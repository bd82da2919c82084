package services

import (
	"errors"
	"testing"
	"time"

	"urbexblog/internal/apperr"
	"urbexblog/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func newAuthConfig(adminPassword string) *config.Config {
	return &config.Config{
		AdminPassword: adminPassword,
		JWTSecret:     "test-secret",
		TokenTTL:      7 * 24 * time.Hour,
	}
}

func TestIssueTokenPlaintextSecret(t *testing.T) {
	service := NewAuthService(newAuthConfig("explore2025"))

	token, err := service.IssueToken("explore2025")
	if err != nil {
		t.Fatalf("ошибка выдачи токена: %v", err)
	}
	if token == "" {
		t.Fatal("токен не сгенерирован")
	}

	// токен самодостаточен: подпись + роль, без состояния сервера
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("выданный токен не проходит проверку: %v", err)
	}
	if role, _ := claims["role"].(string); role != "admin" {
		t.Errorf("неожиданная роль в токене: %q", role)
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("в токене нет срока действия")
	}
}

func TestIssueTokenWrongPassword(t *testing.T) {
	service := NewAuthService(newAuthConfig("explore2025"))

	if _, err := service.IssueToken("guess"); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("ожидалась ErrInvalidCredentials, получено %v", err)
	}
}

func TestIssueTokenEmptyPassword(t *testing.T) {
	service := NewAuthService(newAuthConfig("explore2025"))

	if _, err := service.IssueToken(""); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("ожидалась ErrInvalidInput, получено %v", err)
	}
}

func TestIssueTokenBcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("explore2025"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("не удалось захешировать пароль: %v", err)
	}
	service := NewAuthService(newAuthConfig(string(hash)))

	if _, err := service.IssueToken("explore2025"); err != nil {
		t.Fatalf("bcrypt-секрет: ошибка выдачи токена: %v", err)
	}
	if _, err := service.IssueToken("guess"); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("bcrypt-секрет: ожидалась ErrInvalidCredentials, получено %v", err)
	}
}

func TestIssueTokenEmptyConfiguredSecret(t *testing.T) {
	// пустой ADMIN_PASSWORD не должен пускать никого
	service := NewAuthService(newAuthConfig(""))

	if _, err := service.IssueToken("anything"); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("ожидалась ErrInvalidCredentials, получено %v", err)
	}
}
