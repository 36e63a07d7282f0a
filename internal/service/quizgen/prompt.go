package quizgen

import "fmt"

const systemPrompt = "You are a helpful assistant that creates educational quizzes. " +
	"Always respond with valid JSON in the exact format requested."

const userPromptTemplate = `Generate a quiz about '%s' with %d multiple choice questions.
Each question should have 4 answer options (A, B, C, D) with only one correct answer.

Return the response in the following JSON format:
{
    "questions": [
        {
            "question": "Question text here",
            "answers": [
                { "text": "Answer A", "isCorrect": true },
                { "text": "Answer B", "isCorrect": false },
                { "text": "Answer C", "isCorrect": false },
                { "text": "Answer D", "isCorrect": false }
            ]
        }
    ]
}`

// buildPrompt формирует пользовательское сообщение для модели
func buildPrompt(topic string, questionCount int) string {
	return fmt.Sprintf(userPromptTemplate, topic, questionCount)
}
