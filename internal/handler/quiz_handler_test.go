package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/service/quizgen"
)

func TestGenerateQuiz_ReturnsPublicShape(t *testing.T) {
	// Arrange
	env := newTestEnv(t)

	// Act
	w := env.perform(http.MethodPost, "/quiz/generate", map[string]interface{}{
		"topic":             "Общие знания",
		"numberOfQuestions": 2,
	})

	// Assert
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "Ответ должен содержать идентификатор запроса")

	resp := parseJSONResponse(t, w)
	assert.Equal(t, "Общие знания", resp["topic"])
	assert.Equal(t, float64(2), resp["numberOfQuestions"])
	questions := resp["questions"].([]interface{})
	require.Len(t, questions, 2)

	first := questions[0].(map[string]interface{})
	assert.Equal(t, "2 + 2 = ?", first["questionText"])
	answers := first["answers"].([]interface{})
	require.Len(t, answers, 4)
	answer := answers[0].(map[string]interface{})
	assert.Len(t, answer, 2, "У ответа только id и answerText")
	assert.Contains(t, answer, "id")
	assert.Equal(t, "3", answer["answerText"])

	body := strings.ToLower(w.Body.String())
	assert.NotContains(t, body, "correct", "Ответ не должен раскрывать правильные ответы")
}

func TestGetQuiz_NeverRevealsCorrectAnswer(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	quizID := env.generateQuiz(t, "Тема", 2)

	// Act
	w := env.perform(http.MethodGet, fmt.Sprintf("/quiz/%d", quizID), nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	body := strings.ToLower(w.Body.String())
	assert.NotContains(t, body, "correct")
	assert.NotContains(t, body, "iscorrect")
	assert.NotContains(t, body, "correctanswer")
	resp := parseJSONResponse(t, w)
	assert.Len(t, resp["questions"], 2)
}

func TestGetQuiz_NotFoundAndBadID(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(http.MethodGet, "/quiz/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.perform(http.MethodGet, "/quiz/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateQuiz_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{name: "пустая тема", body: map[string]interface{}{"topic": "", "numberOfQuestions": 5}},
		{name: "тема из пробелов", body: map[string]interface{}{"topic": "   ", "numberOfQuestions": 5}},
		{name: "ноль вопросов", body: map[string]interface{}{"topic": "Тема", "numberOfQuestions": 0}},
		{name: "21 вопрос", body: map[string]interface{}{"topic": "Тема", "numberOfQuestions": 21}},
		{name: "битый JSON", body: `{"topic":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			w := env.perform(http.MethodPost, "/quiz/generate", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, parseJSONResponse(t, w), "error")
			assert.Zero(t, env.generator.calls, "Модель не должна вызываться при невалидном запросе")
		})
	}
}

func TestGenerateQuiz_MalformedOutputPersistsNothing(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	env.generator.content = "Sorry, I can only answer in prose."

	// Act
	w := env.perform(http.MethodPost, "/quiz/generate", map[string]interface{}{
		"topic":             "Тема",
		"numberOfQuestions": 3,
	})

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := parseJSONResponse(t, w)
	assert.NotEmpty(t, resp["error"])
	assert.Equal(t, "Sorry, I can only answer in prose.", resp["details"], "Детали должны содержать исходный текст модели")

	var count int64
	require.NoError(t, env.db.Model(&entity.Quiz{}).Count(&count).Error)
	assert.Zero(t, count, "Викторина не должна сохраниться")
}

func TestGenerateQuiz_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantDetails string
	}{
		{name: "лимит запросов", err: &quizgen.RateLimitedError{Attempts: 3, Body: "quota exceeded"}, wantDetails: "quota exceeded"},
		{name: "ошибка API", err: &quizgen.UpstreamError{StatusCode: 502, Body: "bad gateway"}, wantDetails: "bad gateway"},
		{name: "нет ключа", err: quizgen.ErrMissingAPIKey, wantDetails: quizgen.ErrMissingAPIKey.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.generator.err = tt.err

			w := env.perform(http.MethodPost, "/quiz/generate", map[string]interface{}{
				"topic":             "Тема",
				"numberOfQuestions": 3,
			})

			require.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tt.wantDetails, parseJSONResponse(t, w)["details"])
		})
	}
}

// correctAnswerIDs возвращает правильные ответы по ID вопроса прямо из базы
func correctAnswerIDs(t *testing.T, env *testEnv, quizID uint) map[uint]uint {
	t.Helper()
	quiz, err := env.quizRepo.GetWithQuestions(context.Background(), quizID)
	require.NoError(t, err)

	ids := make(map[uint]uint, len(quiz.Questions))
	for _, q := range quiz.Questions {
		correctID, ok := q.CorrectAnswerID()
		require.True(t, ok)
		ids[q.ID] = correctID
	}
	return ids
}

func TestSubmitQuiz_ScoresExactly(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	quizID := env.generateQuiz(t, "Тема", 4)
	correct := correctAnswerIDs(t, env, quizID)

	allCorrect := make([]map[string]uint, 0, len(correct))
	allWrong := make([]map[string]uint, 0, len(correct))
	for questionID, answerID := range correct {
		allCorrect = append(allCorrect, map[string]uint{"questionId": questionID, "selectedAnswerId": answerID})
		allWrong = append(allWrong, map[string]uint{"questionId": questionID, "selectedAnswerId": answerID + 1})
	}

	// Act
	wCorrect := env.perform(http.MethodPost, "/quiz/submit", map[string]interface{}{
		"quizId": quizID, "playerName": "Алиса", "answers": allCorrect,
	})
	wWrong := env.perform(http.MethodPost, "/quiz/submit", map[string]interface{}{
		"quizId": quizID, "playerName": "Боб", "answers": allWrong,
	})

	// Assert
	require.Equal(t, http.StatusOK, wCorrect.Code, wCorrect.Body.String())
	resp := parseJSONResponse(t, wCorrect)
	assert.Equal(t, "Алиса", resp["playerName"])
	assert.Equal(t, float64(2), resp["score"], "Все ответы правильные")
	assert.Equal(t, float64(4), resp["totalQuestions"], "Используется запрошенное количество")
	assert.InDelta(t, 50.0, resp["percentage"], 0.0001)
	assert.NotEmpty(t, resp["completedAt"])

	require.Equal(t, http.StatusOK, wWrong.Code)
	assert.Equal(t, float64(0), parseJSONResponse(t, wWrong)["score"])
}

func TestSubmitQuiz_Errors(t *testing.T) {
	env := newTestEnv(t)
	quizID := env.generateQuiz(t, "Тема", 2)

	w := env.perform(http.MethodPost, "/quiz/submit", map[string]interface{}{
		"quizId": 999, "playerName": "Алиса", "answers": []interface{}{},
	})
	assert.Equal(t, http.StatusNotFound, w.Code, "Неизвестная викторина")

	w = env.perform(http.MethodPost, "/quiz/submit", map[string]interface{}{
		"quizId": quizID, "playerName": "  ", "answers": []interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "Пустое имя игрока")

	w = env.perform(http.MethodPost, "/quiz/submit", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitQuiz_UnknownQuestionsIgnored(t *testing.T) {
	env := newTestEnv(t)
	quizID := env.generateQuiz(t, "Тема", 2)

	w := env.perform(http.MethodPost, "/quiz/submit", map[string]interface{}{
		"quizId":     quizID,
		"playerName": "Алиса",
		"answers":    []map[string]uint{{"questionId": 12345, "selectedAnswerId": 1}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), parseJSONResponse(t, w)["score"])
}

func TestGetQuizResults_Ranking(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	quizID := env.generateQuiz(t, "Тема", 2)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	env.seedResult(t, quizID, "A", 3, day.Add(10*time.Hour))
	env.seedResult(t, quizID, "B", 5, day.Add(9*time.Hour))
	env.seedResult(t, quizID, "C", 3, day.Add(9*time.Hour+30*time.Minute))

	// Act
	w := env.perform(http.MethodGet, fmt.Sprintf("/quiz/results/%d", quizID), nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	results := parseJSONArray(t, w)
	require.Len(t, results, 3)
	assert.Equal(t, "B", results[0]["playerName"])
	assert.Equal(t, "C", results[1]["playerName"])
	assert.Equal(t, "A", results[2]["playerName"])
	assert.InDelta(t, 100.0, results[0]["percentage"], 0.0001)
}

func TestGetQuizResults_EmptyForUnknownQuiz(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(http.MethodGet, "/quiz/results/77", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestListQuizzes_RecentTenWithoutQuestions(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		require.NoError(t, env.quizRepo.CreateWithQuestions(context.Background(), &entity.Quiz{
			Topic:             fmt.Sprintf("Тема %d", i),
			NumberOfQuestions: 1,
			CreatedAt:         base.Add(time.Duration(i) * time.Hour),
			Questions: []entity.Question{{
				QuestionText:       "Q",
				CorrectAnswerIndex: 0,
				Answers:            []entity.Answer{{AnswerText: "a"}},
			}},
		}))
	}

	// Act
	w := env.perform(http.MethodGet, "/quiz/list", nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	quizzes := parseJSONArray(t, w)
	require.Len(t, quizzes, 10)
	assert.Equal(t, "Тема 11", quizzes[0]["topic"])
	for _, q := range quizzes {
		assert.Equal(t, []interface{}{}, q["questions"], "Список всегда возвращает пустые вопросы")
	}
}

func TestExportQuizResults_CSV(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	quizID := env.generateQuiz(t, "Тема", 2)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	env.seedResult(t, quizID, "=HYPERLINK(\"x\")", 4, day)
	env.seedResult(t, quizID, "Боб", 5, day.Add(time.Hour))

	// Act
	w := env.perform(http.MethodGet, fmt.Sprintf("/quiz/results/%d/export?format=csv", quizID), nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), fmt.Sprintf("quiz_%d_results_", quizID))

	raw := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "CSV должен начинаться с BOM")
	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, []string{"1", "Боб", "5", "5", "100.00", "2024-05-01T01:00:00Z"}, rows[1])
	assert.Equal(t, "'=HYPERLINK(\"x\")", rows[2][1], "Формулы должны экранироваться")
}

func TestExportQuizResults_XLSX(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	quizID := env.generateQuiz(t, "Тема", 2)
	env.seedResult(t, quizID, "Алиса", 3, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	// Act
	w := env.perform(http.MethodGet, fmt.Sprintf("/quiz/results/%d/export?format=xlsx", quizID), nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	player, err := f.GetCellValue("Results", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Алиса", player)
	score, err := f.GetCellValue("Results", "C2")
	require.NoError(t, err)
	assert.Equal(t, "3", score)
}

func TestExportQuizResults_Errors(t *testing.T) {
	env := newTestEnv(t)
	quizID := env.generateQuiz(t, "Тема", 2)

	w := env.perform(http.MethodGet, "/quiz/results/404/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "Выгрузка несуществующей викторины")

	w = env.perform(http.MethodGet, fmt.Sprintf("/quiz/results/%d/export?format=pdf", quizID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "Неподдерживаемый формат")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.perform(http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", parseJSONResponse(t, w)["status"])
}
