package quizgen

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
)

// Значения по умолчанию: 3 попытки, паузы 2s, 4s, 8s
const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 2 * time.Second
)

// RetryPolicy описывает повторы при ответе 429
type RetryPolicy struct {
	MaxAttempts int
	// Delays[i] - пауза после попытки i+1. Если попыток больше, используется последняя пауза.
	Delays []time.Duration
}

// NewRetryPolicy строит политику с удваивающейся паузой, начиная с initialDelay
func NewRetryPolicy(maxAttempts int, initialDelay time.Duration) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	delays := make([]time.Duration, maxAttempts)
	delay := initialDelay
	for i := range delays {
		delays[i] = delay
		delay *= 2
	}
	return RetryPolicy{MaxAttempts: maxAttempts, Delays: delays}
}

// DefaultRetryPolicy возвращает политику 3 попытки / 2s, 4s, 8s
func DefaultRetryPolicy() RetryPolicy {
	return NewRetryPolicy(DefaultMaxAttempts, DefaultInitialDelay)
}

// Delay возвращает паузу после попытки attempt (нумерация с 1)
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if len(p.Delays) == 0 {
		return 0
	}
	idx := attempt - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.Delays) {
		idx = len(p.Delays) - 1
	}
	return p.Delays[idx]
}

// Sleeper ожидает заданное время или отмену контекста
type Sleeper func(ctx context.Context, d time.Duration) error

// sleepContext - Sleeper по умолчанию
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type retryState int

const (
	stateAttempting retryState = iota
	stateBackoff
	stateFailed
	stateSucceeded
)

func (s retryState) String() string {
	switch s {
	case stateAttempting:
		return "attempting"
	case stateBackoff:
		return "backoff"
	case stateFailed:
		return "failed"
	case stateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// attemptFunc выполняет одну попытку запроса
type attemptFunc func(ctx context.Context, attempt int) (string, error)

// retryMachine проводит запрос через состояния Attempting -> Backoff -> ... -> Succeeded | Failed.
// Повторяется только ответ 429, все остальные ошибки сразу переводят в Failed.
type retryMachine struct {
	policy RetryPolicy
	sleep  Sleeper

	state   retryState
	attempt int
	content string
	err     error
}

func newRetryMachine(policy RetryPolicy, sleep Sleeper) *retryMachine {
	if sleep == nil {
		sleep = sleepContext
	}
	return &retryMachine{policy: policy, sleep: sleep, state: stateAttempting, attempt: 1}
}

func (m *retryMachine) run(ctx context.Context, do attemptFunc) (string, error) {
	for {
		switch m.state {
		case stateAttempting:
			m.step(ctx, do)
		case stateBackoff:
			delay := m.policy.Delay(m.attempt)
			log.Printf("[QuizGen] WARN: rate limit hit, attempt %d/%d, waiting %s before retry",
				m.attempt, m.policy.MaxAttempts, delay)
			if err := m.sleep(ctx, delay); err != nil {
				m.err = err
				m.state = stateFailed
				continue
			}
			m.attempt++
			m.state = stateAttempting
		case stateSucceeded:
			return m.content, nil
		case stateFailed:
			return "", m.err
		}
	}
}

func (m *retryMachine) step(ctx context.Context, do attemptFunc) {
	content, err := do(ctx, m.attempt)
	if err == nil {
		m.content = content
		m.state = stateSucceeded
		return
	}

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) || upstreamErr.StatusCode != http.StatusTooManyRequests {
		m.err = err
		m.state = stateFailed
		return
	}

	if m.attempt >= m.policy.MaxAttempts {
		m.err = &RateLimitedError{Attempts: m.attempt, Body: upstreamErr.Body}
		m.state = stateFailed
		return
	}
	m.state = stateBackoff
}
