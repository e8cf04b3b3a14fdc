package bank

import (
	"context"

	"cert-quiz-service/internal/domain"
)

// FileLoader serves banks from JSONL files on disk, keyed by bank ID.
type FileLoader struct {
	paths map[string]string
}

func NewFileLoader(paths map[string]string) *FileLoader {
	return &FileLoader{paths: paths}
}

func (l *FileLoader) LoadBank(_ context.Context, bankID string) ([]domain.Question, error) {
	path, ok := l.paths[bankID]
	if !ok {
		return nil, domain.ErrBankNotFound
	}
	return ParseFile(path)
}

// StaticLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticLoader struct {
	banks map[string][]domain.Question
}

func NewStaticLoader(banks map[string][]domain.Question) *StaticLoader {
	return &StaticLoader{banks: banks}
}

func (l *StaticLoader) LoadBank(_ context.Context, bankID string) ([]domain.Question, error) {
	if qs, ok := l.banks[bankID]; ok {
		return qs, nil
	}
	return nil, domain.ErrBankNotFound
}
