package dto

import (
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/handler/helper"
	"github.com/yourusername/quizgen-api/internal/service"
)

// GenerateQuizRequest - запрос на генерацию викторины
type GenerateQuizRequest struct {
	Topic             string `json:"topic"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
}

// AnswerSubmissionRequest - ответ игрока на один вопрос
type AnswerSubmissionRequest struct {
	QuestionID       uint `json:"questionId"`
	SelectedAnswerID uint `json:"selectedAnswerId"`
}

// SubmitQuizRequest - отправка ответов на викторину
type SubmitQuizRequest struct {
	QuizID     uint                      `json:"quizId"`
	PlayerName string                    `json:"playerName"`
	Answers    []AnswerSubmissionRequest `json:"answers"`
}

// ToSubmissions преобразует ответы запроса в формат сервиса
func (r *SubmitQuizRequest) ToSubmissions() []service.AnswerSubmission {
	submissions := make([]service.AnswerSubmission, len(r.Answers))
	for i, a := range r.Answers {
		submissions[i] = service.AnswerSubmission{QuestionID: a.QuestionID, SelectedAnswerID: a.SelectedAnswerID}
	}
	return submissions
}

// QuestionResponse - публичное представление вопроса без правильного ответа
type QuestionResponse struct {
	ID           uint                  `json:"id"`
	QuestionText string                `json:"questionText"`
	Answers      []helper.AnswerOption `json:"answers"`
}

// QuizResponse - публичное представление викторины
type QuizResponse struct {
	ID                uint               `json:"id"`
	Topic             string             `json:"topic"`
	NumberOfQuestions int                `json:"numberOfQuestions"`
	CreatedAt         time.Time          `json:"createdAt"`
	Questions         []QuestionResponse `json:"questions"`
}

// ResultResponse - результат прохождения викторины
type ResultResponse struct {
	ID             uint      `json:"id"`
	PlayerName     string    `json:"playerName"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     float64   `json:"percentage"`
	CompletedAt    time.Time `json:"completedAt"`
}

// ErrorResponse - ответ об ошибке генерации с диагностикой
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Answers:      helper.ConvertAnswersToOptions(q.Answers),
	}
}

// NewQuizResponse создает DTO для викторины.
// Без includeQuestions список вопросов пустой (но не null).
func NewQuizResponse(quiz *entity.Quiz, includeQuestions bool) *QuizResponse {
	resp := &QuizResponse{
		ID:                quiz.ID,
		Topic:             quiz.Topic,
		NumberOfQuestions: quiz.NumberOfQuestions,
		CreatedAt:         quiz.CreatedAt,
		Questions:         []QuestionResponse{},
	}
	if includeQuestions {
		resp.Questions = make([]QuestionResponse, 0, len(quiz.Questions))
		for i := range quiz.Questions {
			resp.Questions = append(resp.Questions, NewQuestionResponse(&quiz.Questions[i]))
		}
	}
	return resp
}

// NewQuizListResponse создает список викторин без вопросов
func NewQuizListResponse(quizzes []entity.Quiz) []*QuizResponse {
	resp := make([]*QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		resp = append(resp, NewQuizResponse(&quizzes[i], false))
	}
	return resp
}

// NewResultResponse создает DTO для результата
func NewResultResponse(r *entity.QuizResult) *ResultResponse {
	return &ResultResponse{
		ID:             r.ID,
		PlayerName:     r.PlayerName,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Percentage:     r.Percentage(),
		CompletedAt:    r.CompletedAt,
	}
}

// NewResultListResponse создает список результатов, сохраняя порядок рейтинга
func NewResultListResponse(results []entity.QuizResult) []*ResultResponse {
	resp := make([]*ResultResponse, 0, len(results))
	for i := range results {
		resp = append(resp, NewResultResponse(&results[i]))
	}
	return resp
}
