package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-medtrack/internal/shared/errors"
)

// MedicinesRepository реализует доступ к записям о лекарствах (PostgreSQL).
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
//
// Все операции чтения/удаления фильтруются по паре (id, user_id):
// пользователь не может увидеть или удалить чужую запись.
type MedicinesRepository struct {
	db *sql.DB
}

// NewMedicinesRepository создаёт новый экземпляр MedicinesRepository.
func NewMedicinesRepository(db *sql.DB) *MedicinesRepository {
	return &MedicinesRepository{db: db}
}

// Create сохраняет новую запись о лекарстве для пользователя.
//
// Возвращает созданную запись целиком (id и updated_at проставляет БД).
//
// Ошибки:
//   - ErrInternal — ошибка базы данных
func (r *MedicinesRepository) Create(
	ctx context.Context,
	userID uuid.UUID,
	name, dosage, frequency string,
) (models.Medicine, error) {

	m := models.Medicine{
		Name:      name,
		Dosage:    dosage,
		Frequency: frequency,
		UserID:    userID,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO medicines (user_id, name, dosage, frequency)
		VALUES ($1, $2, $3, $4)
		RETURNING id, updated_at
	`,
		userID, name, dosage, frequency,
	).Scan(&m.ID, &m.UpdatedAt)

	if err != nil {
		return models.Medicine{}, serr.ErrInternal
	}

	return m, nil
}

// Update обновляет name/dosage/frequency записи по её id.
//
// TODO: добавить фильтр по user_id — сейчас владелец записи при
// обновлении не перепроверяется, id приходит из формы редактирования.
//
// Ошибки:
//   - ErrNotFound — запись с таким id не существует
//   - ErrInternal — ошибка базы данных
func (r *MedicinesRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	name, dosage, frequency string,
) error {

	res, err := r.db.ExecContext(ctx, `
		UPDATE medicines
		   SET name = $2,
		       dosage = $3,
		       frequency = $4,
		       updated_at = now()
		 WHERE id = $1
	`,
		id, name, dosage, frequency,
	)
	if err != nil {
		return serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}

// Delete удаляет запись, только если совпали и id, и владелец.
//
// Удаление несуществующей или чужой записи — это no-op (ноль строк),
// а не ошибка.
func (r *MedicinesRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM medicines
		 WHERE id = $1
		   AND user_id = $2
	`,
		id, userID,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}

// Get возвращает запись, только если она принадлежит userID.
//
// Ошибки:
//   - ErrNotFound — записи нет либо она принадлежит другому пользователю
//   - ErrInternal — ошибка базы данных
func (r *MedicinesRepository) Get(ctx context.Context, id, userID uuid.UUID) (models.Medicine, error) {
	var m models.Medicine

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, dosage, frequency, user_id, updated_at
		  FROM medicines
		 WHERE id = $1
		   AND user_id = $2
	`,
		id, userID,
	).Scan(&m.ID, &m.Name, &m.Dosage, &m.Frequency, &m.UserID, &m.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return models.Medicine{}, serr.ErrNotFound
		}
		return models.Medicine{}, serr.ErrInternal
	}

	return m, nil
}

// List возвращает все записи пользователя,
// отсортированные от недавно изменённых к старым.
func (r *MedicinesRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, dosage, frequency, user_id, updated_at
		  FROM medicines
		 WHERE user_id = $1
		 ORDER BY updated_at DESC
	`,
		userID,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	var list []models.Medicine
	for rows.Next() {
		var m models.Medicine
		if err := rows.Scan(&m.ID, &m.Name, &m.Dosage, &m.Frequency, &m.UserID, &m.UpdatedAt); err != nil {
			return nil, serr.ErrInternal
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return list, nil
}
