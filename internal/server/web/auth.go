// HTTP-хендлеры страниц логина, регистрации и логаута
package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-medtrack/internal/shared/errors"
)

// AuthFields — значения полей формы логина/регистрации,
// возвращаются обратно в форму при ошибке валидации.
type AuthFields struct {
	Email      string
	Password   string
	RedirectTo string
}

// AuthFieldErrors — ошибки конкретных полей формы.
type AuthFieldErrors struct {
	Email    string
	Password string
}

// AuthPageData — данные шаблонов login.html и signup.html.
type AuthPageData struct {
	Fields      AuthFields
	FieldErrors AuthFieldErrors
	FormError   string
}

// validateEmailField возвращает сообщение об ошибке для поля email
// или пустую строку.
func validateEmailField(email string) string {
	if !service.ValidEmail(email) {
		return "Email is invalid"
	}
	return ""
}

// validatePasswordField возвращает сообщение об ошибке для поля password
// или пустую строку.
func validatePasswordField(password string) string {
	if !service.ValidPassword(password) {
		if password == "" {
			return "Password is required"
		}
		return "Password is too short"
	}
	return ""
}

// safeRedirect пропускает только локальные пути ("/medication"),
// чтобы redirectTo из формы нельзя было превратить в open redirect.
func safeRedirect(to string) string {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		return "/"
	}
	return to
}

// GetLogin отображает форму логина.
//
// Уже залогиненный пользователь редиректится на главную.
func (h *Handler) GetLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Sess.UserID(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	redirectTo := r.URL.Query().Get("redirectTo")
	if redirectTo == "" {
		redirectTo = "/"
	}

	h.Render(w, http.StatusOK, "login.html", AuthPageData{
		Fields: AuthFields{RedirectTo: redirectTo},
	})
}

// PostLogin проверяет учётные данные и выпускает сессионную cookie.
//
// Ответы:
//   - 302 Found: успешный вход, редирект на redirectTo из формы;
//   - 400 Bad Request: форма перерисовывается с ошибками полей либо
//     с общим сообщением "Invalid email or password" (не уточняем,
//     email неизвестен или пароль неверен).
func (h *Handler) PostLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Render(w, http.StatusBadRequest, "login.html", AuthPageData{
			FormError: "Form submitted incorrectly",
		})
		return
	}

	fields := AuthFields{
		Email:      r.PostFormValue("email"),
		Password:   r.PostFormValue("password"),
		RedirectTo: safeRedirect(r.PostFormValue("redirectTo")),
	}

	fieldErrors := AuthFieldErrors{
		Email:    validateEmailField(fields.Email),
		Password: validatePasswordField(fields.Password),
	}
	if fieldErrors.Email != "" || fieldErrors.Password != "" {
		h.Render(w, http.StatusBadRequest, "login.html", AuthPageData{
			Fields:      fields,
			FieldErrors: fieldErrors,
		})
		return
	}

	userID, err := h.Svc.Auth.Login(r.Context(), fields.Email, fields.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput), errors.Is(err, serr.ErrInvalidCredentials):
			h.Render(w, http.StatusBadRequest, "login.html", AuthPageData{
				Fields:    fields,
				FormError: "Invalid email or password",
			})
		default:
			h.Log.Sugar().Error("login failed")
			h.RenderError(w)
		}
		return
	}

	if err := h.Sess.Create(w, r, userID, fields.RedirectTo); err != nil {
		h.Log.Sugar().Error("create session failed")
		h.RenderError(w)
	}
}

// GetSignup отображает форму регистрации.
//
// Уже залогиненный пользователь редиректится на главную.
func (h *Handler) GetSignup(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Sess.UserID(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.Render(w, http.StatusOK, "signup.html", AuthPageData{})
}

// PostSignup создаёт пользователя и выпускает сессионную cookie.
//
// Ответы:
//   - 302 Found: регистрация успешна, редирект на главную;
//   - 400 Bad Request: ошибки полей, включая занятый email
//     ("A user with this email address already exists!").
func (h *Handler) PostSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Render(w, http.StatusBadRequest, "signup.html", AuthPageData{
			FormError: "Form submitted incorrectly",
		})
		return
	}

	fields := AuthFields{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	fieldErrors := AuthFieldErrors{
		Email:    validateEmailField(fields.Email),
		Password: validatePasswordField(fields.Password),
	}
	if fieldErrors.Email != "" || fieldErrors.Password != "" {
		h.Render(w, http.StatusBadRequest, "signup.html", AuthPageData{
			Fields:      fields,
			FieldErrors: fieldErrors,
		})
		return
	}

	userID, err := h.Svc.Auth.Register(r.Context(), fields.Email, fields.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrAlreadyExists):
			h.Render(w, http.StatusBadRequest, "signup.html", AuthPageData{
				Fields: fields,
				FieldErrors: AuthFieldErrors{
					Email: "A user with this email address already exists!",
				},
			})
		case errors.Is(err, serr.ErrInvalidInput):
			h.Render(w, http.StatusBadRequest, "signup.html", AuthPageData{
				Fields:    fields,
				FormError: "Form submitted incorrectly",
			})
		default:
			h.Log.Sugar().Error("signup failed")
			h.RenderError(w)
		}
		return
	}

	if err := h.Sess.Create(w, r, userID, "/"); err != nil {
		h.Log.Sugar().Error("create session failed")
		h.RenderError(w)
	}
}

// PostLogout стирает сессионную cookie и редиректит на главную.
func (h *Handler) PostLogout(w http.ResponseWriter, r *http.Request) {
	h.Sess.Destroy(w, r)
}

// GetLogout существует только чтобы прямой переход на /logout
// не показывал 404 — просто редирект на главную.
func (h *Handler) GetLogout(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}
