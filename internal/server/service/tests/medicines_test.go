package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/models"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/service"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-medtrack/internal/shared/errors"
)

func newMedicinesService(t *testing.T) (*service.MedicinesService, *mocks.MockMedicinesRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	medicines := mocks.NewMockMedicinesRepo(ctrl)
	svc := service.NewMedicinesService(medicines)
	return svc, medicines
}

// Успешное добавление, поля обрезаются от пробелов
func TestMedicinesService_Add_OK(t *testing.T) {
	ctx := context.Background()
	svc, medicines := newMedicinesService(t)

	userID := uuid.New()
	want := models.Medicine{ID: uuid.New(), Name: "Brufen", UserID: userID}

	medicines.EXPECT().
		Create(ctx, userID, "Brufen", "150 mg", "1 x day").
		Return(want, nil)

	got, err := svc.Add(ctx, userID, "  Brufen ", " 150 mg ", " 1 x day ")

	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Пустое имя — запись не создаётся
func TestMedicinesService_Add_EmptyName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMedicinesService(t)

	_, err := svc.Add(ctx, uuid.New(), "   ", "150 mg", "1 x day")

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// Пустая дозировка
func TestMedicinesService_Add_EmptyDosage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMedicinesService(t)

	_, err := svc.Add(ctx, uuid.New(), "Brufen", "", "1 x day")

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// Пустая частота приёма
func TestMedicinesService_Add_EmptyFrequency(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMedicinesService(t)

	_, err := svc.Add(ctx, uuid.New(), "Brufen", "150 mg", "")

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// Успешное редактирование
func TestMedicinesService_Edit_OK(t *testing.T) {
	ctx := context.Background()
	svc, medicines := newMedicinesService(t)

	medID := uuid.New()

	medicines.EXPECT().
		Update(ctx, medID, "Brufen", "200 mg", "2 x day").
		Return(nil)

	err := svc.Edit(ctx, medID, "Brufen", " 200 mg ", "2 x day")

	require.NoError(t, err)
}

// Пустые поля при редактировании
func TestMedicinesService_Edit_EmptyFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMedicinesService(t)

	err := svc.Edit(ctx, uuid.New(), "", "", "")

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// Записи с таким id нет
func TestMedicinesService_Edit_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, medicines := newMedicinesService(t)

	medID := uuid.New()

	medicines.EXPECT().
		Update(ctx, medID, "Brufen", "200 mg", "2 x day").
		Return(serr.ErrNotFound)

	err := svc.Edit(ctx, medID, "Brufen", "200 mg", "2 x day")

	require.ErrorIs(t, err, serr.ErrNotFound)
}

// Удаление: сервис не добавляет логики поверх репозитория
func TestMedicinesService_Delete_OK(t *testing.T) {
	ctx := context.Background()
	svc, medicines := newMedicinesService(t)

	medID := uuid.New()
	userID := uuid.New()

	medicines.EXPECT().
		Delete(ctx, medID, userID).
		Return(nil)

	require.NoError(t, svc.Delete(ctx, medID, userID))
}

// Чтение чужой записи
func TestMedicinesService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, medicines := newMedicinesService(t)

	medID := uuid.New()
	userID := uuid.New()

	medicines.EXPECT().
		Get(ctx, medID, userID).
		Return(models.Medicine{}, serr.ErrNotFound)

	_, err := svc.Get(ctx, medID, userID)

	require.ErrorIs(t, err, serr.ErrNotFound)
}

// Список записей пользователя
func TestMedicinesService_List_OK(t *testing.T) {
	ctx := context.Background()
	svc, medicines := newMedicinesService(t)

	userID := uuid.New()
	want := []models.Medicine{
		{ID: uuid.New(), Name: "Viscotin", UserID: userID},
		{ID: uuid.New(), Name: "Brufen", UserID: userID},
	}

	medicines.EXPECT().
		List(ctx, userID).
		Return(want, nil)

	got, err := svc.List(ctx, userID)

	require.NoError(t, err)
	require.Equal(t, want, got)
}
