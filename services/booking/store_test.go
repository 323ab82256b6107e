package booking

import (
	"context"
	"testing"

	"jetset/models"
)

func TestMemoryDraftStoreMissingUser(t *testing.T) {
	store := NewMemoryDraftStore()
	draft, err := store.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("missing user is not an error: %v", err)
	}
	if draft != nil {
		t.Fatalf("expected nil draft, got %+v", draft)
	}
}

func TestMemoryDraftStoreIsolation(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	qty := 1
	original := &models.BookingDraft{
		Domain: "desert",
		UserID: "u1",
		Status: models.StatusCollecting,
		Items:  []models.LineItem{{Activity: "buggy", Quantity: &qty}},
	}
	if err := store.Put(ctx, "u1", original); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Mutating what we stored or what we read back must not leak into the
	// store's copy.
	original.Items[0].Activity = "mutated"
	first, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.Items[0].Activity != "buggy" {
		t.Fatalf("store leaked caller mutation: %q", first.Items[0].Activity)
	}
	*first.Items[0].Quantity = 99
	second, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *second.Items[0].Quantity != 1 {
		t.Fatalf("store leaked reader mutation: %d", *second.Items[0].Quantity)
	}
}

func TestMemoryDraftStoreDelete(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	if err := store.Put(ctx, "u1", &models.BookingDraft{UserID: "u1"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	draft, err := store.Get(ctx, "u1")
	if err != nil || draft != nil {
		t.Fatalf("expected nil, nil after delete, got %+v, %v", draft, err)
	}
}
