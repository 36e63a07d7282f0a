package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-3.5-turbo"
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000

	maxErrorBodyBytes    = 4096
	maxResponseBodyBytes = 1 << 20
)

// Config содержит параметры подключения к API генерации текста
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Retry       RetryPolicy
}

// Client вызывает chat completions API и возвращает сырой текст ответа модели
type Client struct {
	cfg        Config
	httpClient *http.Client
	sleep      Sleeper
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет HTTP-клиент
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithSleeper подменяет ожидание между попытками (используется в тестах)
func WithSleeper(sleep Sleeper) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// NewClient создает клиент. Пустые поля конфигурации заполняются значениями по умолчанию.
// Отсутствие ключа API не проверяется здесь, Generate вернет ErrMissingAPIKey.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryPolicy()
	}

	c := &Client{
		cfg: cfg,
		// Таймаут не задаем: ожидание ограничивается контекстом запроса
		httpClient: &http.Client{},
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// Generate запрашивает у модели questionCount вопросов по теме и возвращает
// содержимое первого варианта ответа без изменений.
func (c *Client) Generate(ctx context.Context, topic string, questionCount int) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	if strings.TrimSpace(topic) == "" {
		return "", fmt.Errorf("%w: topic is required", apperrors.ErrValidation)
	}
	if questionCount < entity.MinQuestionsPerQuiz || questionCount > entity.MaxQuestionsPerQuiz {
		return "", fmt.Errorf("%w: question count must be between %d and %d",
			apperrors.ErrValidation, entity.MinQuestionsPerQuiz, entity.MaxQuestionsPerQuiz)
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(topic, questionCount)},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	machine := newRetryMachine(c.cfg.Retry, c.sleep)
	return machine.run(ctx, func(ctx context.Context, attempt int) (string, error) {
		return c.doRequest(ctx, payload, attempt)
	})
}

func (c *Client) doRequest(ctx context.Context, payload []byte, attempt int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		log.Printf("[QuizGen] ERROR: chat completion attempt %d failed: status=%d body=%s",
			attempt, resp.StatusCode, string(body))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if len(parsed.Choices) == 0 {
		log.Printf("[QuizGen] ERROR: chat completion returned no choices: %s", string(body))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	log.Printf("[QuizGen] Chat completion succeeded on attempt %d in %s (model=%s)",
		attempt, time.Since(started).Round(time.Millisecond), parsed.Model)
	return parsed.Choices[0].Message.Content, nil
}
