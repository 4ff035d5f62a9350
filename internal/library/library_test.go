package library

import (
	"errors"
	"sync"
	"testing"

	"github.com/promptdeck/promptdeck/internal/domain"
)

func record(id string, createdAt int64) domain.PromptRecord {
	return domain.PromptRecord{
		ID:        id,
		Title:     "Coding: something...",
		Content:   "body",
		Category:  "Coding",
		Tags:      []string{"Professional"},
		CreatedAt: createdAt,
	}
}

func TestNew(t *testing.T) {
	lib := New()
	if lib == nil {
		t.Fatal("New() returned nil")
	}
	if lib.Len() != 0 {
		t.Errorf("New() should start empty, got %d records", lib.Len())
	}
}

func TestAddAppendsInOrder(t *testing.T) {
	lib := New()
	for _, id := range []string{"a", "b", "c"} {
		if err := lib.Add(record(id, 1)); err != nil {
			t.Fatalf("Add(%q) = %v, want nil", id, err)
		}
	}

	snapshot := lib.Snapshot()
	if len(snapshot) != 3 {
		t.Fatalf("Snapshot() has %d records, want 3", len(snapshot))
	}
	for i, want := range []string{"a", "b", "c"} {
		if snapshot[i].ID != want {
			t.Errorf("snapshot[%d].ID = %q, want %q", i, snapshot[i].ID, want)
		}
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	lib := New()
	if err := lib.Add(record("dup", 1)); err != nil {
		t.Fatalf("first Add() = %v, want nil", err)
	}

	err := lib.Add(record("dup", 2))
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("second Add() = %v, want *ValidationError", err)
	}
	if verr.Field != "id" {
		t.Errorf("Field = %q, want %q", verr.Field, "id")
	}
	if lib.Len() != 1 {
		t.Errorf("Len() = %d after rejected add, want 1", lib.Len())
	}
}

func TestAddRejectsInvalidRecord(t *testing.T) {
	lib := New()
	err := lib.Add(domain.PromptRecord{ID: "x", Title: "t"}) // no content
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Add() = %v, want *ValidationError", err)
	}
	if lib.Len() != 0 {
		t.Errorf("invalid record was stored, Len() = %d", lib.Len())
	}
}

func TestToggleFavorite(t *testing.T) {
	lib := New()
	if err := lib.Add(record("a", 1)); err != nil {
		t.Fatal(err)
	}

	updated, err := lib.ToggleFavorite("a")
	if err != nil {
		t.Fatalf("ToggleFavorite() = %v, want nil", err)
	}
	if !updated.IsFavorite {
		t.Error("first toggle should set IsFavorite")
	}

	updated, err = lib.ToggleFavorite("a")
	if err != nil {
		t.Fatalf("second ToggleFavorite() = %v, want nil", err)
	}
	if updated.IsFavorite {
		t.Error("second toggle should clear IsFavorite")
	}
}

func TestToggleFavoriteUnknownID(t *testing.T) {
	lib := New()
	_, err := lib.ToggleFavorite("missing")
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("ToggleFavorite(missing) = %v, want *NotFoundError", err)
	}
	if nf.ID != "missing" {
		t.Errorf("NotFoundError.ID = %q, want %q", nf.ID, "missing")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	lib := New()
	if err := lib.Add(record("a", 1)); err != nil {
		t.Fatal(err)
	}

	if !lib.Delete("a") {
		t.Error("first Delete() = false, want true")
	}
	if lib.Delete("a") {
		t.Error("second Delete() = true, want false")
	}
	if lib.Delete("never-existed") {
		t.Error("Delete(unknown) = true, want false")
	}
	if lib.Len() != 0 {
		t.Errorf("Len() = %d after delete, want 0", lib.Len())
	}
}

func TestDeleteFreesIDForReuse(t *testing.T) {
	lib := New()
	if err := lib.Add(record("a", 1)); err != nil {
		t.Fatal(err)
	}
	lib.Delete("a")
	if err := lib.Add(record("a", 2)); err != nil {
		t.Errorf("Add() after Delete() = %v, want nil", err)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	lib := New()
	if err := lib.Add(record("a", 1)); err != nil {
		t.Fatal(err)
	}

	snapshot := lib.Snapshot()
	snapshot[0].IsFavorite = true
	snapshot[0].Tags[0] = "Casual"

	fresh := lib.Snapshot()
	if fresh[0].IsFavorite {
		t.Error("mutating a snapshot record leaked into the library")
	}
	if fresh[0].Tags[0] != "Professional" {
		t.Error("mutating a snapshot's tags leaked into the library")
	}
}

func TestConcurrentAccess(t *testing.T) {
	lib := New()
	if err := lib.Add(record("base", 1)); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = lib.ToggleFavorite("base")
				_ = lib.Snapshot()
				_ = lib.Len()
			}
		}()
	}
	wg.Wait()

	if lib.Len() != 1 {
		t.Errorf("Len() = %d after concurrent toggles, want 1", lib.Len())
	}
}
