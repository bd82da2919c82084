package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken создаёт подписанный HS256-токен с ролью и сроком действия.
// Токен самодостаточен: проверка не зависит от состояния сервера, поэтому
// рестарт не инвалидирует уже выданные токены.
func GenerateToken(secret, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(duration).Unix(),
		"iat":  time.Now().Unix(), // issued at — доп. уникальность
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
