package kvstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, "hospital:1:picture"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := m.Set(ctx, "hospital:1:picture", "https://img/a.png"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Set(ctx, "hospital:1:picture", "https://img/b.png"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := m.Get(ctx, "hospital:1:picture")
	if err != nil || v != "https://img/b.png" {
		t.Fatalf("expected last write to win, got %q, %v", v, err)
	}
	if err := m.Delete(ctx, "hospital:1:picture"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(ctx, "hospital:1:picture"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
