package memory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cert-quiz-service/internal/domain"
)

func TestNameStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewNameStore()

	if err := store.Save(ctx, "p1", "Alice"); err != nil {
		t.Fatalf("save: %v", err)
	}
	name, ok, err := store.Load(ctx, "p1")
	if err != nil || !ok || name != "Alice" {
		t.Fatalf("load: got %q ok=%v err=%v", name, ok, err)
	}

	if err := store.Clear(ctx, "p1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Load(ctx, "p1"); ok {
		t.Fatal("expected name cleared")
	}
}

func TestNameStoreRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := NewNameStore()

	for _, name := range []string{"", "   ", strings.Repeat("n", 101)} {
		err := store.Save(ctx, "p1", name)
		var nameErr *domain.InvalidNameError
		if !errors.As(err, &nameErr) {
			t.Fatalf("name %q: expected InvalidNameError, got %v", name, err)
		}
	}
	if _, ok, _ := store.Load(ctx, "p1"); ok {
		t.Fatal("invalid name must not be persisted")
	}
}
