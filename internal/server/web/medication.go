// HTTP-хендлеры страниц с лекарствами: список, добавление,
// редактирование, удаление.
package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/models"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/session"
	serr "github.com/IvanChernomyrdin/go-medtrack/internal/shared/errors"
)

// IndexData — данные главной страницы аккаунта.
type IndexData struct {
	Email string
}

// MedicineItem — строка списка лекарств в шаблоне.
type MedicineItem struct {
	ID        string
	Name      string
	Dosage    string
	Frequency string
}

// MedicationListData — данные шаблона medication.html.
type MedicationListData struct {
	List      []MedicineItem
	FormError string
}

// MedFields — значения полей формы лекарства,
// возвращаются обратно в форму при ошибке валидации.
type MedFields struct {
	Name      string
	Dosage    string
	Frequency string
	MedID     string
}

// MedFieldErrors — ошибки конкретных полей формы лекарства.
type MedFieldErrors struct {
	Name      string
	Dosage    string
	Frequency string
}

// MedicationFormData — данные шаблона medication_form.html
// (общий для добавления и редактирования).
type MedicationFormData struct {
	Title       string
	Action      string
	Fields      MedFields
	FieldErrors MedFieldErrors
	FormError   string
}

// Index отображает главную страницу аккаунта.
//
// Если cookie ссылается на уже несуществующего пользователя,
// сессия уничтожается (редирект на главную без cookie).
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		h.RenderError(w)
		return
	}

	email, err := h.Svc.Auth.Email(r.Context(), userID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			h.Sess.Destroy(w, r)
			return
		}
		h.Log.Sugar().Error("load account failed")
		h.RenderError(w)
		return
	}

	h.Render(w, http.StatusOK, "index.html", IndexData{Email: email})
}

// GetMedication отображает список лекарств пользователя
// (недавно изменённые первыми).
func (h *Handler) GetMedication(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		h.RenderError(w)
		return
	}

	list, err := h.Svc.Medicines.List(r.Context(), userID)
	if err != nil {
		h.Log.Sugar().Error("list medication failed")
		h.RenderError(w)
		return
	}

	h.Render(w, http.StatusOK, "medication.html", MedicationListData{
		List: toItems(list),
	})
}

// PostMedication обрабатывает действия над списком лекарств.
//
// Сейчас поддерживается единственное действие: _action=delete
// с полем medId. Удаление чужой или несуществующей записи — no-op.
//
// Ответы:
//   - 302 Found: успешное удаление, редирект обратно на список;
//   - 400 Bad Request: битая форма или неизвестное действие.
func (h *Handler) PostMedication(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		h.RenderError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderListError(w, r, userID)
		return
	}

	if r.PostFormValue("_action") != "delete" {
		h.renderListError(w, r, userID)
		return
	}

	medID, err := uuid.Parse(r.PostFormValue("medId"))
	if err != nil {
		h.renderListError(w, r, userID)
		return
	}

	if err := h.Svc.Medicines.Delete(r.Context(), medID, userID); err != nil {
		h.Log.Sugar().Error("delete medicine failed")
		h.RenderError(w)
		return
	}

	http.Redirect(w, r, "/medication", http.StatusFound)
}

// renderListError перерисовывает список с сообщением об ошибке формы (400).
func (h *Handler) renderListError(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	list, err := h.Svc.Medicines.List(r.Context(), userID)
	if err != nil {
		h.RenderError(w)
		return
	}
	h.Render(w, http.StatusBadRequest, "medication.html", MedicationListData{
		List:      toItems(list),
		FormError: "error with form submission",
	})
}

// GetNewMedication отображает форму добавления лекарства.
func (h *Handler) GetNewMedication(w http.ResponseWriter, r *http.Request) {
	h.Render(w, http.StatusOK, "medication_form.html", MedicationFormData{
		Title:  "New Medication",
		Action: "/medication/new",
	})
}

// PostNewMedication создаёт новую запись о лекарстве.
//
// Ответы:
//   - 302 Found: запись создана, редирект на /medication;
//   - 400 Bad Request: форма перерисовывается с ошибками полей.
func (h *Handler) PostNewMedication(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		h.RenderError(w)
		return
	}

	data := MedicationFormData{
		Title:  "New Medication",
		Action: "/medication/new",
	}

	if err := r.ParseForm(); err != nil {
		data.FormError = "form submited incorrectly"
		h.Render(w, http.StatusBadRequest, "medication_form.html", data)
		return
	}

	data.Fields = MedFields{
		Name:      r.PostFormValue("name"),
		Dosage:    r.PostFormValue("dosage"),
		Frequency: r.PostFormValue("frequency"),
	}

	data.FieldErrors = validateMedFields(data.Fields)
	if data.FieldErrors != (MedFieldErrors{}) {
		h.Render(w, http.StatusBadRequest, "medication_form.html", data)
		return
	}

	_, err := h.Svc.Medicines.Add(r.Context(), userID,
		data.Fields.Name, data.Fields.Dosage, data.Fields.Frequency)
	if err != nil {
		if errors.Is(err, serr.ErrInvalidInput) {
			data.FormError = "Error adding new medicine"
			h.Render(w, http.StatusBadRequest, "medication_form.html", data)
			return
		}
		h.Log.Sugar().Error("add medicine failed")
		h.RenderError(w)
		return
	}

	http.Redirect(w, r, "/medication", http.StatusFound)
}

// GetEditMedication отображает форму редактирования лекарства.
//
// Чужая или несуществующая запись — страница 404
// (наружу не утекает, существует ли запись вообще).
func (h *Handler) GetEditMedication(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		h.RenderError(w)
		return
	}

	medID, err := uuid.Parse(chi.URLParam(r, "medicationID"))
	if err != nil {
		h.RenderNotFound(w)
		return
	}

	m, err := h.Svc.Medicines.Get(r.Context(), medID, userID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			h.RenderNotFound(w)
			return
		}
		h.Log.Sugar().Error("load medicine failed")
		h.RenderError(w)
		return
	}

	h.Render(w, http.StatusOK, "medication_form.html", MedicationFormData{
		Title:  "Edit Medication",
		Action: "/medication/" + m.ID.String(),
		Fields: MedFields{
			Name:      m.Name,
			Dosage:    m.Dosage,
			Frequency: m.Frequency,
			MedID:     m.ID.String(),
		},
	})
}

// PostEditMedication обновляет name/dosage/frequency записи.
//
// id записи берётся из скрытого поля medId формы.
//
// Ответы:
//   - 302 Found: запись обновлена, редирект на /medication;
//   - 400 Bad Request: битая форма или ошибки полей;
//   - 404 Not Found: записи с таким id не существует.
func (h *Handler) PostEditMedication(w http.ResponseWriter, r *http.Request) {
	data := MedicationFormData{
		Title:  "Edit Medication",
		Action: "/medication/" + chi.URLParam(r, "medicationID"),
	}

	if err := r.ParseForm(); err != nil {
		data.FormError = "form submission invalid"
		h.Render(w, http.StatusBadRequest, "medication_form.html", data)
		return
	}

	data.Fields = MedFields{
		Name:      r.PostFormValue("name"),
		Dosage:    r.PostFormValue("dosage"),
		Frequency: r.PostFormValue("frequency"),
		MedID:     r.PostFormValue("medId"),
	}

	medID, err := uuid.Parse(data.Fields.MedID)
	if err != nil {
		data.FormError = "form submission invalid"
		h.Render(w, http.StatusBadRequest, "medication_form.html", data)
		return
	}

	data.FieldErrors = validateMedFields(data.Fields)
	if data.FieldErrors != (MedFieldErrors{}) {
		h.Render(w, http.StatusBadRequest, "medication_form.html", data)
		return
	}

	err = h.Svc.Medicines.Edit(r.Context(), medID,
		data.Fields.Name, data.Fields.Dosage, data.Fields.Frequency)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			h.RenderNotFound(w)
		case errors.Is(err, serr.ErrInvalidInput):
			data.FormError = "form submission invalid"
			h.Render(w, http.StatusBadRequest, "medication_form.html", data)
		default:
			h.Log.Sugar().Error("edit medicine failed")
			h.RenderError(w)
		}
		return
	}

	http.Redirect(w, r, "/medication", http.StatusFound)
}

// validateMedFields возвращает ошибки обязательных полей формы лекарства.
func validateMedFields(f MedFields) MedFieldErrors {
	var fe MedFieldErrors
	if f.Name == "" {
		fe.Name = "Please provide a name."
	}
	if f.Dosage == "" {
		fe.Dosage = "Please insert the dosage to intake."
	}
	if f.Frequency == "" {
		fe.Frequency = "Please indicate how often to take this medication."
	}
	return fe
}

func toItems(list []models.Medicine) []MedicineItem {
	items := make([]MedicineItem, 0, len(list))
	for _, m := range list {
		items = append(items, MedicineItem{
			ID:        m.ID.String(),
			Name:      m.Name,
			Dosage:    m.Dosage,
			Frequency: m.Frequency,
		})
	}
	return items
}
