package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgen-api/internal/handler/dto"
	"github.com/yourusername/quizgen-api/internal/middleware"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
	"github.com/yourusername/quizgen-api/internal/service"
	"github.com/yourusername/quizgen-api/internal/service/quizgen"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService   *service.QuizService
	resultService *service.ResultService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService, resultService *service.ResultService) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		resultService: resultService,
	}
}

// GenerateQuiz генерирует и сохраняет новую викторину
// POST /quiz/generate
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	var req dto.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.GenerateQuiz(c.Request.Context(), req.Topic, req.NumberOfQuestions)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true))
}

// GetQuiz возвращает викторину с вопросами, но без правильных ответов
// GET /quiz/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetQuiz(c.Request.Context(), quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true))
}

// ListQuizzes возвращает последние викторины без вопросов
// GET /quiz/list
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListRecentQuizzes(c.Request.Context())
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizListResponse(quizzes))
}

// SubmitQuiz подсчитывает и сохраняет результат игрока
// POST /quiz/submit
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.resultService.SubmitQuiz(c.Request.Context(), req.QuizID, req.PlayerName, req.ToSubmissions())
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResultResponse(result))
}

// GetQuizResults возвращает рейтинг результатов викторины
// GET /quiz/results/:quizId
func (h *QuizHandler) GetQuizResults(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	results, err := h.resultService.GetQuizResults(c.Request.Context(), quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResultListResponse(results))
}

// handleQuizError переводит ошибки сервисов в HTTP-ответы
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	requestID := c.GetString(middleware.RequestIDKey)

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
	case errors.Is(err, quizgen.ErrMissingAPIKey),
		errors.Is(err, quizgen.ErrRateLimited),
		errors.Is(err, quizgen.ErrUpstream),
		errors.Is(err, quizgen.ErrMalformedPayload):
		log.Printf("[QuizHandler] ERROR: quiz generation failed (request_id=%s): %v", requestID, err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Failed to generate quiz",
			Details: quizgen.Details(err),
		})
	default:
		log.Printf("[QuizHandler] ERROR: internal server error (request_id=%s): %v", requestID, err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Details: err.Error(),
		})
	}
}
