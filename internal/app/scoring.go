package app

import (
	"math"
	"time"

	"cert-quiz-service/internal/config"
	"cert-quiz-service/internal/domain"
)

// Policy bundles the selection and scoring rules for one attempt.
type Policy struct {
	TargetSize            int
	TimeLimit             time.Duration
	CriticalFailThreshold int
	Thresholds            config.Thresholds
	ShuffleOptions        bool
	ShuffleSeed           *int64
}

// DefaultPolicy returns the published assessment policy: 50 questions,
// one hour, auto-fail at 2 critical misses, tiers at 95/80/60.
func DefaultPolicy() Policy {
	return Policy{
		TargetSize:            config.DefaultTargetSize,
		TimeLimit:             config.DefaultTimeLimit,
		CriticalFailThreshold: config.DefaultCriticalFailThreshold,
		Thresholds:            config.DefaultThresholds(),
		ShuffleOptions:        true,
	}
}

// PolicyFromConfig resolves a Policy from file config, applying defaults
// for anything unset.
func PolicyFromConfig(q config.Quiz) Policy {
	return Policy{
		TargetSize:            q.TargetSizeOrDefault(),
		TimeLimit:             q.TimeLimitOrDefault(),
		CriticalFailThreshold: q.CriticalFailThresholdOrDefault(),
		Thresholds:            q.ThresholdsOrDefault(),
		ShuffleOptions:        q.ShuffleEnabled(),
		ShuffleSeed:           q.ShuffleSeed,
	}
}

// ScoreAttempt evaluates the answer map against the quiz set. An
// unanswered question counts as wrong; a wrong or unanswered critical
// question additionally counts toward the auto-fail threshold. The tier
// is decided on the raw percentage (thresholds are never reached by
// rounding up); the stored score is rounded once, to one decimal.
func ScoreAttempt(questions []domain.Question, answers domain.AnswerMap, participantName string, p Policy, completedAt time.Time) domain.ScoreResult {
	correct := 0
	criticalWrong := 0
	for _, q := range questions {
		selected := answers[q.ID]
		if selected != nil && *selected == q.Answer {
			correct++
		} else if q.Importance == domain.ImportanceCritical {
			criticalWrong++
		}
	}

	var raw float64
	if len(questions) > 0 {
		raw = 100 * float64(correct) / float64(len(questions))
	}
	tier := TierFor(raw, criticalWrong, p)

	result := domain.ScoreResult{
		ParticipantName: participantName,
		TotalQuestions:  len(questions),
		CorrectAnswers:  correct,
		CriticalWrong:   criticalWrong,
		Score:           math.Round(raw*10) / 10,
		Tier:            tier,
		CompletedAt:     completedAt,
	}
	if tier != domain.TierFailed {
		result.CertificateID = NewCertificateID()
	}
	return result
}

// TierFor applies the tier decision: the critical auto-fail override
// first, then inclusive lower score bounds in descending order.
func TierFor(score float64, criticalWrong int, p Policy) domain.Tier {
	if criticalWrong >= p.CriticalFailThreshold {
		return domain.TierFailed
	}
	switch {
	case score >= p.Thresholds.Platinum:
		return domain.TierPlatinum
	case score >= p.Thresholds.Gold:
		return domain.TierGold
	case score >= p.Thresholds.Silver:
		return domain.TierSilver
	default:
		return domain.TierFailed
	}
}

// FailureReason derives the presentation-layer failure signal from a
// scored result. Empty for passing tiers.
func FailureReason(r domain.ScoreResult, timedOut bool, p Policy) string {
	if r.Tier != domain.TierFailed {
		return ""
	}
	switch {
	case timedOut:
		return domain.ReasonTimeExpired
	case r.CriticalWrong >= p.CriticalFailThreshold:
		return domain.ReasonCriticalThreshold
	default:
		return domain.ReasonScoreBelow
	}
}
