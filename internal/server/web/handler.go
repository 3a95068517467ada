// Package web реализует HTTP-слой сервера MedTrack.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - разбор HTML-форм и рендеринг страниц (html/template);
//   - маппинг доменных ошибок (service/repository) в редиректы,
//     перерисованные формы с ошибками полей и страницу ошибки;
//   - подключение middleware (логирование, guard сессии).
package web

import (
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/service"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/session"
	"github.com/IvanChernomyrdin/go-medtrack/internal/shared/logger"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Sess: менеджер cookie-сессий (выпуск/чтение/guard).
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc  *service.Services
	Log  *logger.HTTPLogger
	Sess *session.Manager

	tpl *Templates
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
//
// svc — набор сервисов приложения,
// log — логгер,
// sess — менеджер cookie-сессий.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, sess *session.Manager) *Handler {
	return &Handler{
		Svc:  svc,
		Log:  log,
		Sess: sess,
		tpl:  NewTemplates(),
	}
}
