package memory

import (
	"testing"
	"time"

	"cert-quiz-service/internal/app"
)

func TestAttemptStoreLifecycle(t *testing.T) {
	store := NewAttemptStore()

	attempt := app.NewAttempt("att-1", "Alice", samplePool(), time.Hour)
	store.Put(attempt)

	got, ok := store.Get("att-1")
	if !ok || got.ID() != "att-1" {
		t.Fatalf("expected stored attempt, got %v (ok=%v)", got, ok)
	}

	store.Delete("att-1")
	if _, ok := store.Get("att-1"); ok {
		t.Fatal("expected attempt removed")
	}
}
