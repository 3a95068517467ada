package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - публичные страницы логина/регистрации и логаут;
//   - middleware логирования для всех запросов;
//   - группу страниц за guard'ом сессии (главная и /medication).
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware())

	// Публичные пути
	r.Get("/login", h.GetLogin)
	r.Post("/login", h.PostLogin)
	r.Get("/signup", h.GetSignup)
	r.Post("/signup", h.PostSignup)
	r.Post("/logout", h.PostLogout)
	r.Get("/logout", h.GetLogout)

	// защищённые пути
	r.Group(func(r chi.Router) {
		// проверка сессионной cookie, без неё — редирект на /login
		r.Use(h.Sess.RequireUser())

		r.Get("/", h.Index)

		r.Route("/medication", func(r chi.Router) {
			r.Get("/", h.GetMedication)         // список лекарств
			r.Post("/", h.PostMedication)       // _action=delete + medId
			r.Get("/new", h.GetNewMedication)   // форма добавления
			r.Post("/new", h.PostNewMedication) // создание записи
			r.Get("/{medicationID}", h.GetEditMedication)
			r.Post("/{medicationID}", h.PostEditMedication)
		})
	})

	return r
}
