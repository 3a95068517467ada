// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях
// и превращаются в web-слое в редиректы, перерисованные формы
// или страницу ошибки.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные (email или пароль — не уточняем какой именно)
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Форма отправлена некорректно (нет обязательных полей, битый POST)
	ErrBadForm = errors.New("bad form")
	// Нет активной сессии либо cookie не прошла проверку
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден (или запись принадлежит другому пользователю)
	ErrNotFound = errors.New("not found")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
)
