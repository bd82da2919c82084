package services

import (
	"time"

	"urbexblog/internal/apperr"
	"urbexblog/internal/config"
	"urbexblog/internal/logger"
	"urbexblog/internal/utils"

	"go.uber.org/zap"
)

// AuthService выдаёт админский токен в обмен на пароль. Секрет может
// храниться как открытым текстом (легаси), так и bcrypt-хешем — стратегия
// сравнения выбирается один раз при создании сервиса.
type AuthService struct {
	adminSecret  string
	secretIsHash bool
	jwtSecret    string
	tokenTTL     time.Duration
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		adminSecret:  cfg.AdminPassword,
		secretIsHash: utils.IsBcryptHash(cfg.AdminPassword),
		jwtSecret:    cfg.JWTSecret,
		tokenTTL:     cfg.TokenTTL,
	}
}

// IssueToken проверяет пароль администратора и возвращает подписанный токен.
func (s *AuthService) IssueToken(password string) (string, error) {
	if password == "" {
		logger.Log.Warn("Попытка входа без пароля (service)")
		return "", apperr.ErrInvalidInput
	}

	ok := false
	if s.secretIsHash {
		ok = utils.CheckPasswordHash(password, s.adminSecret)
	} else {
		ok = s.adminSecret != "" && utils.ConstantTimeEquals(password, s.adminSecret)
	}
	if !ok {
		logger.Log.Warn("Неверный пароль администратора (service)")
		return "", apperr.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, "admin", s.tokenTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена (service)", zap.Error(err))
		return "", err
	}

	logger.Log.Info("Вход администратора выполнен (service)")
	return token, nil
}
