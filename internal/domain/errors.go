package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrAttemptNotFound is returned when an attempt ID is unknown.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrAttemptScored is returned when answers arrive after scoring.
	ErrAttemptScored = errors.New("attempt already scored")
	// ErrQuestionNotFound indicates a submitted question ID is not part of the quiz.
	ErrQuestionNotFound = errors.New("question not part of this quiz")
	// ErrOptionOutOfRange indicates a submitted option index is invalid for the question.
	ErrOptionOutOfRange = errors.New("option index out of range")
)

// ParseError reports a bank line that is not valid JSON. Line is 1-based.
type ParseError struct {
	Line    int
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bank line %d: invalid JSON: %v (content: %s)", e.Line, e.Err, excerpt(e.Content))
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a parsed bank line that violates the question schema.
type ValidationError struct {
	Line    int
	Content string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bank line %d: %s (content: %s)", e.Line, e.Reason, excerpt(e.Content))
}

// InsufficientPoolError means the pool cannot fill the target quiz size
// while keeping every critical question.
type InsufficientPoolError struct {
	Critical   int
	Normal     int
	TargetSize int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("question pool too small: %d critical + %d normal < target %d",
		e.Critical, e.Normal, e.TargetSize)
}

// InvalidNameError reports a participant name outside the 1-100 character rule.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid participant name %q: must be 1-100 characters after trimming", e.Name)
}

// MaxNameLength bounds participant names after whitespace trimming.
const MaxNameLength = 100

// ValidateName enforces the participant-name contract shared with the
// presentation layer: non-empty after trimming, at most MaxNameLength runes.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len([]rune(trimmed)) > MaxNameLength {
		return &InvalidNameError{Name: name}
	}
	return nil
}

func excerpt(s string) string {
	const max = 200
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
