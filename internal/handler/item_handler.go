package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgen-api/internal/handler/dto"
	"github.com/yourusername/quizgen-api/internal/middleware"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
	"github.com/yourusername/quizgen-api/internal/service"
)

// ItemHandler обрабатывает CRUD-запросы для записей списка дел
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler создает новый обработчик записей
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ListItems возвращает все записи
// GET /backend
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.itemService.ListItems(c.Request.Context())
	if err != nil {
		h.handleItemError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemListDTO(items))
}

// GetItem возвращает запись по ID
// GET /backend/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID := c.MustGet("itemID").(uint)

	item, err := h.itemService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		h.handleItemError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemDTO(item))
}

// CreateItem создает запись. ID из тела запроса игнорируется.
// POST /backend
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req dto.ItemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), req.Name, req.IsComplete)
	if err != nil {
		h.handleItemError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/backend/%d", item.ID))
	c.JSON(http.StatusCreated, dto.NewItemDTO(item))
}

// UpdateItem обновляет запись. ID в пути и в теле должны совпадать.
// PUT /backend/:id
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID := c.MustGet("itemID").(uint)

	var req dto.ItemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.itemService.UpdateItem(c.Request.Context(), itemID, req.ID, req.Name, req.IsComplete); err != nil {
		h.handleItemError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteItem удаляет запись
// DELETE /backend/:id
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID := c.MustGet("itemID").(uint)

	if err := h.itemService.DeleteItem(c.Request.Context(), itemID); err != nil {
		h.handleItemError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ItemHandler) handleItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		log.Printf("[ItemHandler] ERROR: internal server error (request_id=%s): %v",
			c.GetString(middleware.RequestIDKey), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
