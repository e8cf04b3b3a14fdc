package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cert-quiz-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestNameStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewNameStore(client, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, "p1", "Alice"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("participant:p1:name") {
		t.Fatal("expected name key in redis")
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

func TestNameStoreRejectsInvalidSave(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	store := NewNameStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)

	err = store.Save(context.Background(), "p1", "   ")
	var nameErr *domain.InvalidNameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected InvalidNameError, got %v", err)
	}
	if mr.Exists("participant:p1:name") {
		t.Fatal("invalid name must not be persisted")
	}
}

func TestNameStoreClearsInvalidStoredValue(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	store := NewNameStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)

	// Simulate an out-of-band write that violates the name contract.
	if err := mr.Set("participant:p1:name", strings.Repeat("n", 150)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, ok, err := store.Load(context.Background(), "p1")
	if err != nil || ok {
		t.Fatalf("expected invalid stored name to be rejected, ok=%v err=%v", ok, err)
	}
	if mr.Exists("participant:p1:name") {
		t.Fatal("expected invalid stored name to be deleted")
	}
}
