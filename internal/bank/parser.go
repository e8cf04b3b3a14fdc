// Package bank parses and validates JSONL question banks. A bank is a
// sequence of independent records, one JSON object per line; a failure on
// any line aborts the whole load so a malformed bank can never silently
// produce a shorter or garbled quiz.
package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cert-quiz-service/internal/domain"
)

// rawQuestion uses pointers so missing fields are distinguishable from
// zero values during validation.
type rawQuestion struct {
	ID         *string  `json:"id"`
	Prompt     *string  `json:"question"`
	Options    []string `json:"options"`
	Answer     *int     `json:"answer"`
	Importance *string  `json:"importance"`
	TopicTags  []string `json:"topic_tags"`

	SlideRef     *int   `json:"slide_ref"`
	VTTTimestamp string `json:"vtt_timestamp"`
	BloomLevel   string `json:"bloom_level"`
	Difficulty   string `json:"difficulty"`
}

// Parse decodes a JSONL bank into validated questions. Blank lines are
// skipped. The first invalid line fails the load with a *domain.ParseError
// (bad JSON) or *domain.ValidationError (schema violation) carrying the
// 1-based line number; no partial result is returned.
func Parse(raw string) ([]domain.Question, error) {
	lines := strings.Split(raw, "\n")
	questions := make([]domain.Question, 0, len(lines))
	seen := make(map[string]int, len(lines))

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineNo := i + 1

		var rec rawQuestion
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, &domain.ParseError{Line: lineNo, Content: line, Err: err}
		}

		q, reason := validate(rec)
		if reason != "" {
			return nil, &domain.ValidationError{Line: lineNo, Content: line, Reason: reason}
		}
		if prev, dup := seen[q.ID]; dup {
			return nil, &domain.ValidationError{
				Line:    lineNo,
				Content: line,
				Reason:  fmt.Sprintf("duplicate question id %q (first seen on line %d)", q.ID, prev),
			}
		}
		seen[q.ID] = lineNo
		questions = append(questions, q)
	}
	return questions, nil
}

// ParseFile reads and parses a bank file from disk.
func ParseFile(path string) ([]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	return Parse(string(data))
}

func validate(rec rawQuestion) (domain.Question, string) {
	var q domain.Question

	switch {
	case rec.ID == nil || strings.TrimSpace(*rec.ID) == "":
		return q, "missing or empty id"
	case rec.Prompt == nil || strings.TrimSpace(*rec.Prompt) == "":
		return q, "missing or empty question prompt"
	case len(rec.Options) < 2:
		return q, fmt.Sprintf("need at least 2 options, got %d", len(rec.Options))
	case rec.Answer == nil:
		return q, "missing answer index"
	case *rec.Answer < 0 || *rec.Answer >= len(rec.Options):
		return q, fmt.Sprintf("answer index %d out of range for %d options", *rec.Answer, len(rec.Options))
	case rec.Importance == nil:
		return q, "missing importance"
	case !domain.Importance(*rec.Importance).Valid():
		return q, fmt.Sprintf("importance must be %q or %q, got %q",
			domain.ImportanceNormal, domain.ImportanceCritical, *rec.Importance)
	}

	tags := rec.TopicTags
	if tags == nil {
		tags = []string{}
	}

	return domain.Question{
		ID:           *rec.ID,
		Prompt:       *rec.Prompt,
		Options:      rec.Options,
		Answer:       *rec.Answer,
		Importance:   domain.Importance(*rec.Importance),
		TopicTags:    tags,
		SlideRef:     rec.SlideRef,
		VTTTimestamp: rec.VTTTimestamp,
		BloomLevel:   rec.BloomLevel,
		Difficulty:   rec.Difficulty,
	}, ""
}
