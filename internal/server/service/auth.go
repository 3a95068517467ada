package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-medtrack/internal/server/config"
	"github.com/IvanChernomyrdin/go-medtrack/internal/server/crypto"
	serr "github.com/IvanChernomyrdin/go-medtrack/internal/shared/errors"
)

// AuthService реализует бизнес-логику работы с учётными записями.
//
// Ответственность:
//   - регистрация пользователей (signup)
//   - проверка учётных данных (login)
//   - получение email владельца сессии
//
// Выпуском и проверкой сессионной cookie занимается session.Manager,
// сюда эта логика не попадает.
type AuthService struct {
	users UsersRepo
	pass  crypto.PasswordParams
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,
		pass: crypto.PasswordParams{
			Hasher: cfg.Password.Hasher,
			Argon2: crypto.Argon2Params{
				Time:      cfg.Password.Argon2.Time,
				MemoryKiB: cfg.Password.Argon2.MemoryKiB,
				Threads:   cfg.Password.Argon2.Threads,
				KeyLen:    cfg.Password.Argon2.KeyLen,
				SaltLen:   cfg.Password.Argon2.SaltLen,
			},
			BcryptCost: cfg.Password.Bcrypt.Cost,
		},
	}
}

// ValidEmail проверяет email по тем же правилам, что и форма регистрации:
// минимум 4 символа и наличие '@'.
func ValidEmail(email string) bool {
	return len(email) >= 4 && strings.Contains(email, "@")
}

// ValidPassword проверяет минимальную длину пароля (6 символов).
func ValidPassword(password string) bool {
	return len(password) >= 6
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - email обязателен, минимум 4 символа, содержит '@'
//   - пароль обязателен, минимум 6 символов
//
// Возвращает:
//   - id пользователя
//   - ErrInvalidInput при некорректных данных или ErrAlreadyExists если email уже зарегистрирован
func (s *AuthService) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if !ValidEmail(email) || !ValidPassword(password) {
		return uuid.Nil, serr.ErrInvalidInput
	}

	hash, err := crypto.HashPassword(password, s.pass)
	if err != nil {
		return uuid.Nil, serr.ErrInternal
	}
	return s.users.Create(ctx, email, hash)
}

// Login проверяет учётные данные пользователя.
//
// Поведение:
//   - не раскрывает факт существования email: неизвестный email и
//     неверный пароль возвращают одну и ту же ошибку
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (uuid.UUID, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return uuid.Nil, serr.ErrInvalidInput
	}
	// получаем юзера по email
	userID, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return uuid.Nil, serr.ErrInvalidCredentials
		}
		return uuid.Nil, err
	}
	// проверяем пароль
	ok, err := crypto.VerifyPassword(password, hash)
	if err != nil {
		return uuid.Nil, serr.ErrInternal
	}
	if !ok {
		return uuid.Nil, serr.ErrInvalidCredentials
	}

	return userID, nil
}

// Email возвращает email пользователя по его id.
//
// Используется для отображения владельца сессии на главной странице.
func (s *AuthService) Email(ctx context.Context, userID uuid.UUID) (string, error) {
	_, email, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return email, nil
}
