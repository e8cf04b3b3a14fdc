package app

import (
	"math/rand"

	"cert-quiz-service/internal/domain"
)

// SelectQuestions draws a quiz of exactly targetSize questions from the
// pool. Every critical question is always included; the remaining slots
// are filled from normal questions uniformly without replacement, and the
// combined set is uniformly permuted for presentation order. Selection is
// intentionally non-reproducible: callers pass a freshly seeded source so
// attempts differ (anti-memorization).
func SelectQuestions(pool []domain.Question, targetSize int, rnd *rand.Rand) ([]domain.Question, error) {
	var critical, normal []domain.Question
	for _, q := range pool {
		if q.Importance == domain.ImportanceCritical {
			critical = append(critical, q)
		} else {
			normal = append(normal, q)
		}
	}

	needed := targetSize - len(critical)
	if needed < 0 || len(normal) < needed {
		return nil, &domain.InsufficientPoolError{
			Critical:   len(critical),
			Normal:     len(normal),
			TargetSize: targetSize,
		}
	}

	selected := make([]domain.Question, 0, targetSize)
	selected = append(selected, critical...)
	for _, idx := range rnd.Perm(len(normal))[:needed] {
		selected = append(selected, normal[idx])
	}

	rnd.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected, nil
}
