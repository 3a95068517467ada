// Package session реализует cookie-сессии сервера MedTrack.
//
// Сервер не хранит таблицу сессий: состояние сессии — это сама cookie
// с подписанным токеном (userID + срок жизни). Пакет отвечает за:
//   - выпуск cookie при логине/регистрации;
//   - чтение userID из cookie входящего запроса;
//   - guard-middleware с редиректом на /login для неавторизованных;
//   - уничтожение сессии при логауте.
package session

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/config"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/crypto"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userIDKey — ключ контекста, под которым хранится ID владельца сессии.
const userIDKey ctxKey = "user_id"

// Manager инкапсулирует параметры cookie-сессии.
//
// Cookie всегда HttpOnly, SameSite=Strict, Path=/.
// Secure проставляется, когда сервер работает по HTTPS.
type Manager struct {
	cookieName string
	signingKey string
	ttl        time.Duration
	secure     bool
}

// NewManager создаёт Manager из конфига сессии.
//
// secure — работает ли сервер по HTTPS (влияет только на флаг cookie).
func NewManager(cfg config.SessionConfig, secure bool) *Manager {
	return &Manager{
		cookieName: cfg.CookieName,
		signingKey: cfg.Secret,
		ttl:        cfg.TTL,
		secure:     secure,
	}
}

// Create выпускает сессионную cookie для пользователя и делает редирект.
//
// redirectTo — путь, куда вернуть пользователя после логина/регистрации.
func (m *Manager) Create(w http.ResponseWriter, r *http.Request, userID uuid.UUID, redirectTo string) error {
	token, err := crypto.NewSessionToken(userID.String(), crypto.SessionTokenConfig{
		SigningKey: m.signingKey,
		TTL:        m.ttl,
	})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})

	if redirectTo == "" {
		redirectTo = "/"
	}
	http.Redirect(w, r, redirectTo, http.StatusFound)
	return nil
}

// UserID извлекает userID из сессионной cookie запроса.
//
// Отсутствующая, подделанная и истёкшая cookie неразличимы:
// во всех случаях возвращается ok=false.
func (m *Manager) UserID(r *http.Request) (uuid.UUID, bool) {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return uuid.Nil, false
	}

	sub, ok := crypto.ParseSessionToken(c.Value, m.signingKey)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// RequireUser возвращает HTTP middleware-guard для защищённых страниц.
//
// Middleware:
//   - читает userID из сессионной cookie
//   - сохраняет userID в context.Context
//   - без валидной сессии редиректит на /login?redirectTo=<текущий путь>
func (m *Manager) RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := m.UserID(r)
			if !ok {
				params := url.Values{}
				params.Set("redirectTo", r.URL.Path)
				http.Redirect(w, r, "/login?"+params.Encode(), http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Destroy стирает сессионную cookie и редиректит на главную страницу.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// UserIDFromContext извлекает userID владельца сессии из контекста.
//
// Возвращает:
//   - userID
//   - false, если запрос прошёл мимо RequireUser
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(userIDKey)
	id, ok := v.(uuid.UUID)
	return id, ok
}
