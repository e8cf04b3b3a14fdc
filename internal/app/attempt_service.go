package app

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"cert-quiz-service/internal/domain"
)

// AttemptRepository abstracts how live attempts are stored (in-memory, Redis, etc).
type AttemptRepository interface {
	Put(attempt *Attempt)
	Get(attemptID string) (*Attempt, bool)
	Delete(attemptID string)
}

// BankRepository loads the validated question pool (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) ([]domain.Question, error)
}

// AttemptService contains the core assessment use cases: start an
// attempt, record answers, submit for scoring.
type AttemptService struct {
	banks    BankRepository
	attempts AttemptRepository
	policy   Policy
	now      func() time.Time

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewAttemptService(banks BankRepository, attempts AttemptRepository, policy Policy) *AttemptService {
	return NewAttemptServiceWithClock(banks, attempts, policy, time.Now,
		rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewAttemptServiceWithClock allows deterministic timestamps and selection in tests.
func NewAttemptServiceWithClock(banks BankRepository, attempts AttemptRepository, policy Policy, now func() time.Time, rnd *rand.Rand) *AttemptService {
	return &AttemptService{
		banks:    banks,
		attempts: attempts,
		policy:   policy,
		now:      now,
		rnd:      rnd,
	}
}

// Policy returns the selection/scoring rules in effect.
func (s *AttemptService) Policy() Policy { return s.policy }

// QuestionView is a question as handed to the presentation layer:
// shuffled options, no correct-answer information.
type QuestionView struct {
	ID        string       `json:"id"`
	Prompt    string       `json:"prompt"`
	TopicTags []string     `json:"topicTags"`
	Options   []OptionView `json:"options"`
}

// StartedAttempt is everything the presentation layer needs to run an attempt.
type StartedAttempt struct {
	AttemptID   string         `json:"attemptId"`
	Participant string         `json:"participant"`
	Questions   []QuestionView `json:"questions"`
	TimeLimitMS int64          `json:"timeLimitMs"`
	Deadline    time.Time      `json:"deadline"`
}

// Start validates the participant name, draws a fresh quiz from the bank
// and registers a new attempt with an all-unanswered answer map. Every
// call produces independent state; nothing leaks between attempts.
func (s *AttemptService) Start(ctx context.Context, bankID, participantName string) (StartedAttempt, error) {
	if err := domain.ValidateName(participantName); err != nil {
		return StartedAttempt{}, err
	}
	name := strings.TrimSpace(participantName)

	pool, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return StartedAttempt{}, err
	}

	s.rndMu.Lock()
	selected, err := SelectQuestions(pool, s.policy.TargetSize, s.rnd)
	s.rndMu.Unlock()
	if err != nil {
		return StartedAttempt{}, err
	}

	attempt := newAttemptWithClock(newAttemptID(), name, selected, s.policy.TimeLimit, s.now)
	s.attempts.Put(attempt)

	return StartedAttempt{
		AttemptID:   attempt.ID(),
		Participant: name,
		Questions:   s.views(selected),
		TimeLimitMS: s.policy.TimeLimit.Milliseconds(),
		Deadline:    attempt.Deadline(),
	}, nil
}

// Answer records a selection for one question of an in-progress attempt.
// The index refers to the original unshuffled option list.
func (s *AttemptService) Answer(attemptID, questionID string, originalIndex int) error {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.ErrAttemptNotFound
	}
	return attempt.recordAnswer(questionID, originalIndex)
}

// Submit scores the attempt with whatever the answer map currently
// holds. Voluntary submission and the caller's timeout both land here;
// a second Submit returns the already-stored result.
func (s *AttemptService) Submit(attemptID string) (domain.ScoreResult, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.ScoreResult{}, domain.ErrAttemptNotFound
	}
	return attempt.submit(s.policy), nil
}

// End discards a finished attempt. A new attempt requires a fresh Start.
func (s *AttemptService) End(attemptID string) {
	s.attempts.Delete(attemptID)
}

// FailureReason derives the failure-display signal for a scored result.
func (s *AttemptService) FailureReason(r domain.ScoreResult, timedOut bool) string {
	return FailureReason(r, timedOut, s.policy)
}

// Views recomputes the shuffled option views for an attempt's questions,
// e.g. when the participant navigates back: the seeded shuffle guarantees
// the same order without persisting it.
func (s *AttemptService) Views(attemptID string) ([]QuestionView, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return nil, domain.ErrAttemptNotFound
	}
	return s.views(attempt.Questions()), nil
}

func (s *AttemptService) views(questions []domain.Question) []QuestionView {
	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = QuestionView{
			ID:        q.ID,
			Prompt:    q.Prompt,
			TopicTags: q.TopicTags,
			Options:   ShuffleOptions(q, s.policy.ShuffleOptions, s.policy.ShuffleSeed),
		}
	}
	return views
}
