// Package service содержит бизнес-логику приложения (MedTrack).
// Это прослойка между HTTP-обработчиками (web) и хранилищем данных (repository).
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/config"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users     UsersRepo
	Medicines MedicinesRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth      *AuthService
	Medicines *MedicinesService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хеширования пароля).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(repos.Users, cfg),
		Medicines: NewMedicinesService(repos.Medicines),
	}
}

// UsersRepo — репозиторий пользователей (нужен для signup/login).
type UsersRepo interface {
	Create(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (uuid.UUID, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (uuid.UUID, string, error)
}

// MedicinesRepo — репозиторий записей о лекарствах (CRUD с фильтром по владельцу).
type MedicinesRepo interface {
	Create(ctx context.Context, userID uuid.UUID, name, dosage, frequency string) (models.Medicine, error)
	Update(ctx context.Context, id uuid.UUID, name, dosage, frequency string) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Get(ctx context.Context, id, userID uuid.UUID) (models.Medicine, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Medicine, error)
}
