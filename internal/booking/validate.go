package booking

import (
	"errors"
	"strings"
)

// Ошибки валидации аргументов, приходящих из слоя представления.
var (
	ErrInvalidUserID    = errors.New("invalid user id")
	ErrEmptyDate        = errors.New("screening date must not be empty")
	ErrEmptyTitle       = errors.New("screening title must not be empty")
	ErrNegativeCapacity = errors.New("screening capacity must not be negative")
)

// ValidateUserID проверяет внешний идентификатор пользователя.
func ValidateUserID(userID int64) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	return nil
}

// ValidateScreeningInput проверяет примитивные аргументы
// административных операций. Дата — произвольная короткая строка,
// календарно не валидируется и сохраняется как есть.
func ValidateScreeningInput(date, title string, capacity int) error {
	if strings.TrimSpace(date) == "" {
		return ErrEmptyDate
	}
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if capacity < 0 {
		return ErrNegativeCapacity
	}
	return nil
}
