package service

import (
	"context"
	"fmt"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
)

// ItemService предоставляет CRUD для записей списка дел
type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService создает новый сервис записей
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// ListItems возвращает все записи
func (s *ItemService) ListItems(ctx context.Context) ([]entity.Item, error) {
	return s.itemRepo.List(ctx)
}

// GetItem возвращает запись по ID
func (s *ItemService) GetItem(ctx context.Context, id uint) (*entity.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

// CreateItem создает запись. ID назначается базой.
func (s *ItemService) CreateItem(ctx context.Context, name *string, isComplete bool) (*entity.Item, error) {
	item := &entity.Item{Name: name, IsComplete: isComplete}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// UpdateItem обновляет name и is_complete записи pathID.
// Несовпадение pathID и bodyID дает ErrIDMismatch.
func (s *ItemService) UpdateItem(ctx context.Context, pathID, bodyID uint, name *string, isComplete bool) error {
	if pathID != bodyID {
		return ErrIDMismatch
	}
	return s.itemRepo.Update(ctx, &entity.Item{ID: pathID, Name: name, IsComplete: isComplete})
}

// DeleteItem удаляет запись
func (s *ItemService) DeleteItem(ctx context.Context, id uint) error {
	return s.itemRepo.Delete(ctx, id)
}
