package utils

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// IsBcryptHash — хранится ли секрет в виде bcrypt-хеша ($2a$/$2b$/$2y$).
// Форму хранения определяем один раз на старте сервиса.
func IsBcryptHash(secret string) bool {
	return strings.HasPrefix(secret, "$2")
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ConstantTimeEquals — сравнение паролей без утечки по времени для
// секретов, хранящихся открытым текстом (легаси-вариант).
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
