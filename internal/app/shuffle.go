package app

import (
	"math"

	"cert-quiz-service/internal/domain"
)

// OptionView is one answer option as shown to the participant. The
// original index travels with the text so submissions always record the
// position in the unshuffled list, never the display position.
type OptionView struct {
	Text          string `json:"text"`
	OriginalIndex int    `json:"originalIndex"`
}

// ShuffleOptions returns the question's options in display order. The
// permutation is derived from a fixed sine formula seeded by the question
// ID (or the explicit override), so the same question renders in the same
// order every time within an attempt without persisting anything. When
// disabled, the identity order is returned.
func ShuffleOptions(q domain.Question, enabled bool, seedOverride *int64) []OptionView {
	views := make([]OptionView, len(q.Options))
	for i, opt := range q.Options {
		views[i] = OptionView{Text: opt, OriginalIndex: i}
	}
	if !enabled {
		return views
	}

	seed := SeedFromID(q.ID)
	if seedOverride != nil {
		seed = *seedOverride
	}

	// Fisher-Yates with a reproducible draw. Do not swap in a real PRNG:
	// per-question order stability depends on this exact formula.
	for i := len(views) - 1; i > 0; i-- {
		j := int(seededFrac(seed, i) * float64(i+1))
		views[i], views[j] = views[j], views[i]
	}
	return views
}

// SeedFromID derives the default shuffle seed as the sum of the question
// ID's character codes.
func SeedFromID(id string) int64 {
	var sum int64
	for _, r := range id {
		sum += int64(r)
	}
	return sum
}

// seededFrac returns the fractional part of sin(seed+i)*10000, a value in [0, 1).
func seededFrac(seed int64, i int) float64 {
	x := math.Sin(float64(seed)+float64(i)) * 10000
	return x - math.Floor(x)
}
