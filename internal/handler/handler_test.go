package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/middleware"
	"github.com/yourusername/quizgen-api/internal/repository/postgres"
	"github.com/yourusername/quizgen-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubGenerator возвращает заранее заданный ответ модели
type stubGenerator struct {
	content string
	err     error
	calls   int
}

func (g *stubGenerator) Generate(_ context.Context, _ string, _ int) (string, error) {
	g.calls++
	return g.content, g.err
}

const twoQuestionPayload = `{"questions":[
 {"question":"2 + 2 = ?","answers":[{"text":"3","isCorrect":false},{"text":"4","isCorrect":true},{"text":"5","isCorrect":false},{"text":"22","isCorrect":false}]},
 {"question":"Столица Франции?","answers":[{"text":"Париж","isCorrect":true},{"text":"Лион","isCorrect":false},{"text":"Марсель","isCorrect":false},{"text":"Ницца","isCorrect":false}]}
]}`

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	quizRepo  *postgres.QuizRepo
	generator *stubGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entity.Quiz{}, &entity.Question{}, &entity.Answer{}, &entity.QuizResult{}, &entity.Item{}))

	quizRepo := postgres.NewQuizRepo(db)
	resultRepo := postgres.NewResultRepo(db)
	itemRepo := postgres.NewItemRepo(db)
	generator := &stubGenerator{content: twoQuestionPayload}

	router := NewRouter(RouterDeps{
		QuizHandler: NewQuizHandler(
			service.NewQuizService(quizRepo, generator),
			service.NewResultService(quizRepo, resultRepo),
		),
		ItemHandler:   NewItemHandler(service.NewItemService(itemRepo)),
		GenerateLimit: middleware.DefaultGenerateRateLimitConfig(),
		CORSOrigins:   []string{"http://localhost:5000"},
	})

	return &testEnv{router: router, db: db, quizRepo: quizRepo, generator: generator}
}

// perform выполняет запрос через роутер
func (e *testEnv) perform(method, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req, _ = http.NewRequest(method, path, nil)
	case string:
		req, _ = http.NewRequest(method, path, strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		bodyBytes, _ := json.Marshal(b)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	}

	e.router.ServeHTTP(w, req)
	return w
}

// parseJSONResponse парсит JSON-объект из ответа
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// parseJSONArray парсит JSON-массив из ответа
func parseJSONArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be a JSON array: %s", w.Body.String())
	return resp
}

// generateQuiz создает викторину через API и возвращает ее ID
func (e *testEnv) generateQuiz(t *testing.T, topic string, count int) uint {
	t.Helper()
	w := e.perform(http.MethodPost, "/quiz/generate", map[string]interface{}{
		"topic":             topic,
		"numberOfQuestions": count,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return uint(parseJSONResponse(t, w)["id"].(float64))
}

// seedResult сохраняет результат напрямую в базу
func (e *testEnv) seedResult(t *testing.T, quizID uint, player string, score int, completedAt time.Time) {
	t.Helper()
	require.NoError(t, e.db.Create(&entity.QuizResult{
		QuizID:         quizID,
		PlayerName:     player,
		Score:          score,
		TotalQuestions: 5,
		CompletedAt:    completedAt,
	}).Error)
}
