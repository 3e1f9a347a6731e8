package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"studium-server/internal/domain"
)

func seedDocument(t *testing.T, store *InMemoryDocumentStore, id string) {
	t.Helper()
	err := store.Put(&domain.Document{
		ID:         id,
		Filename:   id + ".pdf",
		MediaType:  domain.MediaTypePDF,
		Status:     domain.StatusUploaded,
		UploadedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewInMemoryDocumentStore()
	seedDocument(t, store, "doc-1")

	doc, err := store.Get("doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc.Filename = "mutated.pdf"

	again, _ := store.Get("doc-1")
	if again.Filename != "doc-1.pdf" {
		t.Fatal("mutating a returned document must not affect the store")
	}
}

func TestStore_GetUnknown(t *testing.T) {
	store := NewInMemoryDocumentStore()
	if _, err := store.Get("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SetProcessingTransitions(t *testing.T) {
	store := NewInMemoryDocumentStore()
	seedDocument(t, store, "doc-1")

	if err := store.SetProcessing("doc-1"); err != nil {
		t.Fatalf("uploaded -> processing should succeed: %v", err)
	}
	if err := store.SetProcessing("doc-1"); !errors.Is(err, domain.ErrAlreadyProcessing) {
		t.Fatalf("expected ErrAlreadyProcessing, got %v", err)
	}
	if err := store.SetProcessing("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_CompleteOnlyFromProcessing(t *testing.T) {
	store := NewInMemoryDocumentStore()
	seedDocument(t, store, "doc-1")

	if err := store.Complete("doc-1", "texto", 1); !errors.Is(err, domain.ErrNotProcessed) {
		t.Fatalf("complete from uploaded must fail, got %v", err)
	}

	if err := store.SetProcessing("doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Complete("doc-1", "texto extraido", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, _ := store.Get("doc-1")
	if doc.Status != domain.StatusCompleted || doc.WordCount != 2 {
		t.Fatalf("unexpected state after complete: %+v", doc)
	}
	if doc.ProcessedAt == nil {
		t.Fatal("expected processed_at to be set")
	}

	// Terminal: a second complete must fail.
	if err := store.Complete("doc-1", "otro", 1); !errors.Is(err, domain.ErrNotProcessed) {
		t.Fatalf("double complete must fail, got %v", err)
	}
}

func TestStore_ReprocessingFromTerminalState(t *testing.T) {
	store := NewInMemoryDocumentStore()
	seedDocument(t, store, "doc-1")

	if err := store.SetProcessing("doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Fail("doc-1", "ocr crashed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Failed documents can be retried; the claim resets previous results.
	if err := store.SetProcessing("doc-1"); err != nil {
		t.Fatalf("retry from failed should succeed: %v", err)
	}
	doc, _ := store.Get("doc-1")
	if doc.Status != domain.StatusProcessing || doc.ErrorDetail != "" {
		t.Fatalf("expected clean processing state, got %+v", doc)
	}
}

func TestStore_ConcurrentSetProcessingSingleWinner(t *testing.T) {
	store := NewInMemoryDocumentStore()
	seedDocument(t, store, "doc-1")

	const racers = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.SetProcessing("doc-1") == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	if count != 1 {
		t.Fatalf("exactly one racer must win the processing slot, got %d", count)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := NewInMemoryDocumentStore()
	older := &domain.Document{ID: "old", UploadedAt: time.Now().Add(-time.Hour)}
	newer := &domain.Document{ID: "new", UploadedAt: time.Now()}
	_ = store.Put(older)
	_ = store.Put(newer)

	docs := store.List()
	if len(docs) != 2 || docs[0].ID != "new" {
		t.Fatalf("expected newest first, got %v", docs)
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewInMemoryDocumentStore()
	seedDocument(t, store, "doc-1")

	if err := store.Delete("doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete("doc-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
