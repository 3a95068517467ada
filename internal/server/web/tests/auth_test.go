package tests

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/config"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/go-medtrack/internal/server/service/mocks"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/session"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/web"
	serr "github.com/IvanChernomyrdin/go-medtrack/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-medtrack/internal/shared/logger"
)

const testSecret = "supersecretkeysupersecretkey123456"

// newTestServer собирает полный HTTP-стек (роутер, guard, хендлеры)
// поверх мок-репозиториев через dependency injection.
func newTestServer(t *testing.T) (http.Handler, *session.Manager, *svcmocks.MockUsersRepo, *svcmocks.MockMedicinesRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := svcmocks.NewMockUsersRepo(ctrl)
	medicines := svcmocks.NewMockMedicinesRepo(ctrl)

	cfg := &config.Config{
		Session: config.SessionConfig{
			CookieName: "MT_session",
			Secret:     testSecret,
			TTL:        time.Hour,
		},
		Password: config.PasswordConfig{
			Hasher: "argon2id",
			Argon2: config.Argon2Config{
				Time:      1,
				MemoryKiB: 32 * 1024,
				Threads:   1,
				KeyLen:    32,
				SaltLen:   16,
			},
		},
	}

	svc := service.NewServices(service.Repositories{
		Users:     users,
		Medicines: medicines,
	}, cfg)

	sess := session.NewManager(cfg.Session, false)
	log := logger.NewHTTPLogger()

	h := web.NewHandler(svc, log, sess)
	return web.NewRouter(h), sess, users, medicines
}

// loginCookie выпускает валидную сессионную cookie для userID.
func loginCookie(t *testing.T, userID uuid.UUID) *http.Cookie {
	t.Helper()

	token, err := crypto.NewSessionToken(userID.String(), crypto.SessionTokenConfig{
		SigningKey: testSecret,
		TTL:        time.Hour,
	})
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	return &http.Cookie{Name: "MT_session", Value: token}
}

// postForm отправляет форму на роутер
func postForm(t *testing.T, srv http.Handler, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func getPage(t *testing.T, srv http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// Форма логина открывается без сессии
func TestGetLogin_OK(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := getPage(t, srv, "/login", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("expected login form in body")
	}
}

// Залогиненного с формы логина уводим на главную
func TestGetLogin_AlreadyLoggedIn(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := getPage(t, srv, "/login", loginCookie(t, uuid.New()))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected %d, got %d", http.StatusFound, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

// Ошибки полей формы логина
func TestPostLogin_FieldErrors(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := postForm(t, srv, "/login", url.Values{
		"email":    {"bad"},
		"password": {""},
	}, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Email is invalid") {
		t.Fatalf("expected email error in body")
	}
	if !strings.Contains(body, "Password is required") {
		t.Fatalf("expected password error in body")
	}
}

// Неизвестный email и неверный пароль выглядят одинаково
func TestPostLogin_InvalidCredentials(t *testing.T) {
	srv, _, users, _ := newTestServer(t)

	users.EXPECT().
		GetByEmail(gomock.Any(), "test@mail.com").
		Return(uuid.Nil, "", serr.ErrNotFound)

	rec := postForm(t, srv, "/login", url.Values{
		"email":    {"test@mail.com"},
		"password": {"strongpassword"},
	}, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password") {
		t.Fatalf("expected generic credentials error in body")
	}
}

// Успешный вход: cookie и редирект на redirectTo
func TestPostLogin_Success(t *testing.T) {
	srv, _, users, _ := newTestServer(t)

	userID := uuid.New()
	password := "strongpassword"

	hash, err := crypto.HashPassword(password, crypto.PasswordParams{
		Hasher: "argon2id",
		Argon2: crypto.Argon2Params{
			Time:      1,
			MemoryKiB: 32 * 1024,
			Threads:   1,
			KeyLen:    32,
			SaltLen:   16,
		},
	})
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	users.EXPECT().
		GetByEmail(gomock.Any(), "test@mail.com").
		Return(userID, hash, nil)

	rec := postForm(t, srv, "/login", url.Values{
		"email":      {"test@mail.com"},
		"password":   {password},
		"redirectTo": {"/medication"},
	}, nil)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusFound, rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/medication" {
		t.Fatalf("expected redirect to /medication, got %q", loc)
	}

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "MT_session" && c.Value != "" {
			found = true
			if !c.HttpOnly {
				t.Fatal("expected HttpOnly cookie")
			}
		}
	}
	if !found {
		t.Fatal("expected session cookie after login")
	}
}

// redirectTo на внешний хост не срабатывает (open redirect)
func TestPostLogin_ExternalRedirectRejected(t *testing.T) {
	srv, _, users, _ := newTestServer(t)

	userID := uuid.New()
	password := "strongpassword"

	hash, err := crypto.HashPassword(password, crypto.PasswordParams{
		Hasher: "argon2id",
		Argon2: crypto.Argon2Params{
			Time:      1,
			MemoryKiB: 32 * 1024,
			Threads:   1,
			KeyLen:    32,
			SaltLen:   16,
		},
	})
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	users.EXPECT().
		GetByEmail(gomock.Any(), "test@mail.com").
		Return(userID, hash, nil)

	rec := postForm(t, srv, "/login", url.Values{
		"email":      {"test@mail.com"},
		"password":   {password},
		"redirectTo": {"https://evil.example"},
	}, nil)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected %d, got %d", http.StatusFound, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

// Успешная регистрация: email нормализуется, cookie выпускается
func TestPostSignup_Success(t *testing.T) {
	srv, _, users, _ := newTestServer(t)

	userID := uuid.New()

	users.EXPECT().
		Create(gomock.Any(), "test@mail.com", gomock.Any()).
		Return(userID, nil)

	rec := postForm(t, srv, "/signup", url.Values{
		"email":    {"Test@Mail.com"},
		"password": {"strongpassword"},
	}, nil)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusFound, rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "MT_session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected session cookie after signup")
	}
}

// Email уже занят
func TestPostSignup_AlreadyExists(t *testing.T) {
	srv, _, users, _ := newTestServer(t)

	users.EXPECT().
		Create(gomock.Any(), "test@mail.com", gomock.Any()).
		Return(uuid.Nil, serr.ErrAlreadyExists)

	rec := postForm(t, srv, "/signup", url.Values{
		"email":    {"test@mail.com"},
		"password": {"strongpassword"},
	}, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "A user with this email address already exists!") {
		t.Fatalf("expected duplicate email error in body")
	}
}

// Ошибки полей формы регистрации
func TestPostSignup_FieldErrors(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := postForm(t, srv, "/signup", url.Values{
		"email":    {"no-at-sign"},
		"password": {"123"},
	}, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Email is invalid") {
		t.Fatalf("expected email error in body")
	}
	if !strings.Contains(body, "Password is too short") {
		t.Fatalf("expected password error in body")
	}
}

// Логаут стирает cookie и уводит на главную
func TestPostLogout(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := postForm(t, srv, "/logout", url.Values{}, loginCookie(t, uuid.New()))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected %d, got %d", http.StatusFound, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == "MT_session" {
			if c.Value != "" || c.MaxAge >= 0 {
				t.Fatalf("expected cleared cookie, got value=%q maxAge=%d", c.Value, c.MaxAge)
			}
			return
		}
	}
	t.Fatal("expected MT_session cookie in logout response")
}
