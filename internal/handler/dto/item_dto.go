package dto

import "github.com/yourusername/quizgen-api/internal/domain/entity"

// ItemDTO - публичное представление записи. Secret не входит в DTO.
type ItemDTO struct {
	ID         uint    `json:"id"`
	Name       *string `json:"name"`
	IsComplete bool    `json:"isComplete"`
}

// NewItemDTO создает DTO для записи
func NewItemDTO(item *entity.Item) *ItemDTO {
	return &ItemDTO{
		ID:         item.ID,
		Name:       item.Name,
		IsComplete: item.IsComplete,
	}
}

// NewItemListDTO создает список DTO
func NewItemListDTO(items []entity.Item) []*ItemDTO {
	resp := make([]*ItemDTO, 0, len(items))
	for i := range items {
		resp = append(resp, NewItemDTO(&items[i]))
	}
	return resp
}
