// Package crypto содержит криптографические примитивы,
// используемые сервером MedTrack.
//
// В частности, пакет отвечает за:
//   - хэширование и проверку паролей пользователей;
//   - подпись и проверку сессионного токена (содержимого cookie).
package crypto

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenConfig описывает параметры сессионного токена.
//
// Токен кладётся в cookie как есть: сервер не хранит таблицу сессий,
// вся сессия — это подписанный токен на стороне клиента.
type SessionTokenConfig struct {
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Должен быть достаточно длинным и случайным.
	SigningKey string
	// TTL — срок жизни сессии (совпадает с max-age cookie).
	TTL time.Duration
}

// NewSessionToken создаёт и подписывает сессионный токен пользователя.
//
// Токен содержит стандартные RegisteredClaims:
//   - sub (userID)
//   - iat (IssuedAt)
//   - exp (ExpiresAt)
//
// Используется алгоритм подписи HS256.
func NewSessionToken(userID string, cfg SessionTokenConfig) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseSessionToken проверяет подпись и срок жизни токена
// и возвращает userID из claims.Subject.
//
// Любая проблема с токеном (подделка, истёкший срок, пустой subject)
// возвращается одинаково как пустой userID и ok=false: наружу не
// утекает, что именно не так с cookie.
func ParseSessionToken(token, signingKey string) (string, bool) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(signingKey), nil
	})
	if err != nil {
		return "", false
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return "", false
	}
	return userID, true
}
