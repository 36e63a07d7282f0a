package service

import (
	"fmt"

	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// Определяем кастомные ошибки для сервисов
var (
	// ErrIDMismatch - ID в пути не совпадает с ID в теле запроса
	ErrIDMismatch = fmt.Errorf("%w: id in path does not match id in body", apperrors.ErrValidation)
)
