package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-medtrack/internal/shared/errors"
)

// MedicinesService реализует бизнес-логику работы с записями о лекарствах.
//
// Все три текстовых поля (name/dosage/frequency) обязательны и непустые;
// подробные сообщения для конкретных полей формирует web-слой,
// сервис только гарантирует инвариант.
type MedicinesService struct {
	medicines MedicinesRepo
}

// NewMedicinesService создаёт MedicinesService.
func NewMedicinesService(medicines MedicinesRepo) *MedicinesService {
	return &MedicinesService{medicines: medicines}
}

// Add создаёт новую запись о лекарстве для пользователя.
//
// Ошибки:
//   - ErrInvalidInput — пустое name/dosage/frequency
func (s *MedicinesService) Add(ctx context.Context, userID uuid.UUID, name, dosage, frequency string) (models.Medicine, error) {
	name = strings.TrimSpace(name)
	dosage = strings.TrimSpace(dosage)
	frequency = strings.TrimSpace(frequency)

	if name == "" || dosage == "" || frequency == "" {
		return models.Medicine{}, serr.ErrInvalidInput
	}

	return s.medicines.Create(ctx, userID, name, dosage, frequency)
}

// Edit обновляет name/dosage/frequency существующей записи.
//
// Владелец записи здесь не перепроверяется — фильтр только по id
// (см. MedicinesRepository.Update).
//
// Ошибки:
//   - ErrInvalidInput — пустое name/dosage/frequency
//   - ErrNotFound — записи с таким id нет
func (s *MedicinesService) Edit(ctx context.Context, id uuid.UUID, name, dosage, frequency string) error {
	name = strings.TrimSpace(name)
	dosage = strings.TrimSpace(dosage)
	frequency = strings.TrimSpace(frequency)

	if name == "" || dosage == "" || frequency == "" {
		return serr.ErrInvalidInput
	}

	return s.medicines.Update(ctx, id, name, dosage, frequency)
}

// Delete удаляет запись пользователя.
//
// Чужая или несуществующая запись молча игнорируется (ноль строк в БД).
func (s *MedicinesService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.medicines.Delete(ctx, id, userID)
}

// Get возвращает запись пользователя по id.
//
// Ошибки:
//   - ErrNotFound — записи нет либо она чужая
func (s *MedicinesService) Get(ctx context.Context, id, userID uuid.UUID) (models.Medicine, error) {
	return s.medicines.Get(ctx, id, userID)
}

// List возвращает все записи пользователя (недавно изменённые первыми).
func (s *MedicinesService) List(ctx context.Context, userID uuid.UUID) ([]models.Medicine, error) {
	return s.medicines.List(ctx, userID)
}
