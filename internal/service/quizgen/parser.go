package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ParsedQuiz - структура викторины в том виде, в котором ее возвращает модель
type ParsedQuiz struct {
	Questions []ParsedQuestion `json:"questions"`
}

// ParsedQuestion - вопрос из ответа модели
type ParsedQuestion struct {
	Question string         `json:"question"`
	Answers  []ParsedAnswer `json:"answers"`
}

// ParsedAnswer - вариант ответа из ответа модели
type ParsedAnswer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// quizPayloadSchema проверяет только форму документа.
// Количество ответов и правильных отметок намеренно не ограничивается.
const quizPayloadSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "answers"],
        "properties": {
          "question": {"type": "string"},
          "answers": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["text", "isCorrect"],
              "properties": {
                "text": {"type": "string"},
                "isCorrect": {"type": "boolean"}
              }
            }
          }
        }
      }
    }
  }
}`

var quizSchema = mustCompileSchema(quizPayloadSchema)

func mustCompileSchema(schema string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("quizgen: invalid payload schema: %v", err))
	}
	return compiled
}

// Parse разбирает текст модели в ParsedQuiz.
// Обрамление Markdown (```json ... ```) снимается, все остальное должно быть JSON нужной формы,
// иначе возвращается *MalformedPayloadError с исходным текстом.
func Parse(rawContent string) (*ParsedQuiz, error) {
	document := stripCodeFence(rawContent)
	if document == "" {
		return nil, &MalformedPayloadError{Raw: rawContent, Cause: errors.New("empty content")}
	}

	result, err := quizSchema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		// Документ не является JSON
		return nil, &MalformedPayloadError{Raw: rawContent, Cause: err}
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return nil, &MalformedPayloadError{
			Raw:   rawContent,
			Cause: fmt.Errorf("schema violations: %s", strings.Join(violations, "; ")),
		}
	}

	var parsed ParsedQuiz
	if err := json.Unmarshal([]byte(document), &parsed); err != nil {
		return nil, &MalformedPayloadError{Raw: rawContent, Cause: err}
	}
	return &parsed, nil
}

// stripCodeFence снимает Markdown-обрамление вокруг JSON
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Первая строка - метка языка (json или пусто)
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
