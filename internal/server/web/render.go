package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

// страницы, каждая рендерится внутри layout.html
var pageNames = []string{
	"index.html",
	"login.html",
	"signup.html",
	"medication.html",
	"medication_form.html",
	"error.html",
}

// Templates хранит распарсенные шаблоны страниц.
//
// Каждая страница парсится вместе с layout.html, чтобы блоки
// {{define "content"}} не перетирали друг друга.
type Templates struct {
	pages map[string]*template.Template
}

// NewTemplates парсит встроенные шаблоны. Ошибка парсинга — это
// ошибка сборки, поэтому паникуем сразу при старте.
func NewTemplates() *Templates {
	t := &Templates{pages: make(map[string]*template.Template)}
	for _, name := range pageNames {
		t.pages[name] = template.Must(template.ParseFS(
			templatesFS,
			"templates/layout.html",
			"templates/"+name,
		))
	}
	return t
}

// errorPageData — данные generic-страницы ошибки.
type errorPageData struct {
	Message string
}

// Render рендерит страницу внутри layout и пишет её с указанным статусом.
//
// Шаблон сначала исполняется в буфер: если рендеринг упал на середине,
// пользователь получит целую страницу ошибки, а не обрывок HTML.
func (h *Handler) Render(w http.ResponseWriter, status int, page string, data any) {
	tpl, ok := h.tpl.pages[page]
	if !ok {
		h.RenderError(w)
		return
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.Log.Sugar().Errorf("render %s failed: %v", page, err)
		h.RenderError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// RenderError показывает generic-страницу "что-то пошло не так" (HTTP 500).
func (h *Handler) RenderError(w http.ResponseWriter) {
	h.renderErrorPage(w, http.StatusInternalServerError, "Sorry about that, something went wrong!")
}

// RenderNotFound показывает страницу ошибки для отсутствующего ресурса (HTTP 404).
func (h *Handler) RenderNotFound(w http.ResponseWriter) {
	h.renderErrorPage(w, http.StatusNotFound, "Sorry, we couldn't find what you were looking for.")
}

func (h *Handler) renderErrorPage(w http.ResponseWriter, status int, msg string) {
	tpl, ok := h.tpl.pages["error.html"]
	if !ok {
		http.Error(w, msg, status)
		return
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", errorPageData{Message: msg}); err != nil {
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
