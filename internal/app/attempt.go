package app

import (
	"sync"
	"time"

	"cert-quiz-service/internal/domain"
)

// Attempt is the in-memory state of one quiz attempt. The quiz set is
// fixed at creation; only the answer map mutates, and only until the
// attempt is scored.
type Attempt struct {
	id          string
	participant string
	questions   []domain.Question
	byID        map[string]int
	startedAt   time.Time
	timeLimit   time.Duration
	now         func() time.Time

	mu      sync.RWMutex
	answers domain.AnswerMap
	result  *domain.ScoreResult
}

// NewAttempt is exported for infrastructure layers that need to seed attempts.
func NewAttempt(id, participant string, questions []domain.Question, timeLimit time.Duration) *Attempt {
	return newAttemptWithClock(id, participant, questions, timeLimit, time.Now)
}

// NewAttemptWithClock is test-only for deterministic timestamps.
func NewAttemptWithClock(id, participant string, questions []domain.Question, timeLimit time.Duration, now func() time.Time) *Attempt {
	return newAttemptWithClock(id, participant, questions, timeLimit, now)
}

func newAttemptWithClock(id, participant string, questions []domain.Question, timeLimit time.Duration, now func() time.Time) *Attempt {
	byID := make(map[string]int, len(questions))
	answers := make(domain.AnswerMap, len(questions))
	for i, q := range questions {
		byID[q.ID] = i
		answers[q.ID] = nil
	}
	return &Attempt{
		id:          id,
		participant: participant,
		questions:   questions,
		byID:        byID,
		startedAt:   now(),
		timeLimit:   timeLimit,
		now:         now,
		answers:     answers,
	}
}

func (a *Attempt) ID() string          { return a.id }
func (a *Attempt) Participant() string { return a.participant }

// Questions returns the quiz set in presentation order.
func (a *Attempt) Questions() []domain.Question { return a.questions }

// Deadline is the instant at which the caller must force a submit.
func (a *Attempt) Deadline() time.Time { return a.startedAt.Add(a.timeLimit) }

// TimeLimit is the configured attempt duration.
func (a *Attempt) TimeLimit() time.Duration { return a.timeLimit }

// Scored reports whether the attempt has reached its terminal state.
func (a *Attempt) Scored() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.result != nil
}

// Answers returns a snapshot of the answer map.
func (a *Attempt) Answers() domain.AnswerMap {
	a.mu.RLock()
	defer a.mu.RUnlock()
	snapshot := make(domain.AnswerMap, len(a.answers))
	for id, sel := range a.answers {
		if sel == nil {
			snapshot[id] = nil
			continue
		}
		v := *sel
		snapshot[id] = &v
	}
	return snapshot
}

// recordAnswer stores the selected original option index for a question.
// Legal only while the attempt is in progress.
func (a *Attempt) recordAnswer(questionID string, originalIndex int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.result != nil {
		return domain.ErrAttemptScored
	}
	idx, ok := a.byID[questionID]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	if originalIndex < 0 || originalIndex >= len(a.questions[idx].Options) {
		return domain.ErrOptionOutOfRange
	}
	v := originalIndex
	a.answers[questionID] = &v
	return nil
}

// submit scores the attempt exactly once. Repeat calls return the stored
// result; the answer map is frozen from the first scoring onward.
func (a *Attempt) submit(p Policy) domain.ScoreResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.result != nil {
		return *a.result
	}
	result := ScoreAttempt(a.questions, a.answers, a.participant, p, a.now())
	a.result = &result
	return result
}
