package bank

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cert-quiz-service/internal/domain"
)

func TestFileLoaderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.jsonl")
	if err := os.WriteFile(path, []byte(validLine+"\n"), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}

	loader := NewFileLoader(map[string]string{"safety-cert": path})
	questions, err := loader.LoadBank(context.Background(), "safety-cert")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != "q1" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestFileLoaderUnknownBank(t *testing.T) {
	loader := NewFileLoader(map[string]string{})
	if _, err := loader.LoadBank(context.Background(), "nope"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestFileLoaderBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.jsonl")
	if err := os.WriteFile(path, []byte("not json\n"), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}

	loader := NewFileLoader(map[string]string{"broken": path})
	_, err := loader.LoadBank(context.Background(), "broken")
	var perr *domain.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
