package repository

import (
	"context"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// ItemRepository определяет методы для работы с записями списка дел
type ItemRepository interface {
	List(ctx context.Context) ([]entity.Item, error)
	GetByID(ctx context.Context, id uint) (*entity.Item, error)
	Create(ctx context.Context, item *entity.Item) error
	// Update обновляет name и is_complete. Secret не затрагивается.
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uint) error
}
