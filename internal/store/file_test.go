package store

import (
	"context"
	"errors"
	"testing"

	"cocktailhaven/internal/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	provider, err := NewFileProvider(t.TempDir())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	s := provider.Namespace("user@example.com")
	ctx := context.Background()

	if err := s.Set(ctx, KeyCart, []byte(`[{"idDrink":"11007"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, KeyCart)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"idDrink":"11007"}]` {
		t.Fatalf("unexpected value: %s", got)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	provider, err := NewFileProvider(t.TempDir())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	s := provider.Namespace(SharedNamespace)
	if _, err := s.Get(context.Background(), KeyUsers); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreRemove(t *testing.T) {
	provider, err := NewFileProvider(t.TempDir())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	s := provider.Namespace("n")
	ctx := context.Background()

	if err := s.Set(ctx, KeyCart, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Remove(ctx, KeyCart); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.Get(ctx, KeyCart); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}

	// Removing an absent key is a no-op.
	if err := s.Remove(ctx, KeyCart); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestFileStoreNamespacesAreIsolated(t *testing.T) {
	provider, err := NewFileProvider(t.TempDir())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	ctx := context.Background()
	a := provider.Namespace("a@example.com")
	b := provider.Namespace("b@example.com")

	if err := a.Set(ctx, KeyCart, []byte(`["a"]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := b.Get(ctx, KeyCart); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("namespaces leaked: %v", err)
	}
}
