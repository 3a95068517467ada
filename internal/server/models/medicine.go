package models

import (
	"time"

	"github.com/google/uuid"
)

// Medicine — запись о лекарстве пользователя.
//
// Поля:
//   - ID: уникальный идентификатор записи
//   - Name: название лекарства
//   - Dosage: дозировка, свободный текст ("150 mg")
//   - Frequency: частота приёма, свободный текст ("1 x day")
//   - UserID: владелец записи (FK на users)
//   - UpdatedAt: время последнего изменения (серверное)
type Medicine struct {
	ID        uuid.UUID
	Name      string
	Dosage    string
	Frequency string
	UserID    uuid.UUID
	UpdatedAt time.Time
}
