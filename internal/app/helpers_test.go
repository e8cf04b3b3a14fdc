package app_test

import (
	"fmt"

	"cert-quiz-service/internal/app"
	"cert-quiz-service/internal/domain"
)

// makeQuestions builds a pool of total questions; the first critical of
// them carry critical importance. Every question has 4 options with the
// correct answer at index i%4.
func makeQuestions(total, critical int) []domain.Question {
	questions := make([]domain.Question, total)
	for i := range questions {
		importance := domain.ImportanceNormal
		if i < critical {
			importance = domain.ImportanceCritical
		}
		questions[i] = domain.Question{
			ID:         fmt.Sprintf("q%03d", i),
			Prompt:     fmt.Sprintf("Question %d?", i),
			Options:    []string{"alpha", "beta", "gamma", "delta"},
			Answer:     i % 4,
			Importance: importance,
			TopicTags:  []string{"topic"},
		}
	}
	return questions
}

// answerCorrectly fills an answer map with the right original index for
// the first n questions and leaves the rest unanswered.
func answerCorrectly(questions []domain.Question, n int) domain.AnswerMap {
	answers := make(domain.AnswerMap, len(questions))
	for i, q := range questions {
		if i < n {
			v := q.Answer
			answers[q.ID] = &v
		} else {
			answers[q.ID] = nil
		}
	}
	return answers
}

func answerWrong(answers domain.AnswerMap, q domain.Question) {
	v := (q.Answer + 1) % len(q.Options)
	answers[q.ID] = &v
}

func testPolicy() app.Policy {
	p := app.DefaultPolicy()
	p.TargetSize = 5
	return p
}
