package quizgen

import (
	"errors"
	"fmt"
)

// Ошибки генерации викторины
var (
	// ErrMissingAPIKey - ключ API не настроен. Фатальная ошибка конфигурации, без повторов.
	ErrMissingAPIKey = errors.New("openai api key is not configured")
	// ErrRateLimited - лимит запросов не снялся за все попытки
	ErrRateLimited = errors.New("upstream rate limit exceeded")
	// ErrUpstream - внешний API ответил ошибкой
	ErrUpstream = errors.New("upstream api error")
	// ErrMalformedPayload - ответ модели не удалось разобрать как викторину
	ErrMalformedPayload = errors.New("malformed quiz payload")
)

// UpstreamError несет статус и тело неуспешного ответа внешнего API
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream api error: status=%d body=%s", e.StatusCode, e.Body)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrUpstream)
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// RateLimitedError возвращается, когда все попытки завершились ответом 429
type RateLimitedError struct {
	Attempts int
	Body     string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("upstream rate limit exceeded after %d attempts: %s", e.Attempts, e.Body)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrRateLimited)
func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}

// MalformedPayloadError хранит исходный текст модели для диагностики
type MalformedPayloadError struct {
	Raw   string
	Cause error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed quiz payload: %v", e.Cause)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Cause
}

// Is позволяет проверять ошибку через errors.Is(err, ErrMalformedPayload)
func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

// Details возвращает диагностический текст ошибки генерации для ответа клиенту:
// тело ответа внешнего API, исходный текст модели или текст ошибки конфигурации
// без обертки вызывающего кода.
func Details(err error) string {
	if errors.Is(err, ErrMissingAPIKey) {
		return ErrMissingAPIKey.Error()
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Body
	}
	var rateErr *RateLimitedError
	if errors.As(err, &rateErr) {
		return rateErr.Body
	}
	var malformedErr *MalformedPayloadError
	if errors.As(err, &malformedErr) {
		return malformedErr.Raw
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
