package repository

import (
	"sort"
	"sync"
	"time"

	"studium-server/internal/domain"
)

// InMemoryDocumentStore keeps documents in process memory. State is lost on
// restart; the upload directory is the only thing that survives.
type InMemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*domain.Document
}

func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{docs: make(map[string]*domain.Document)}
}

func (s *InMemoryDocumentStore) Put(doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *doc
	s.docs[doc.ID] = &cp
	return nil
}

func (s *InMemoryDocumentStore) Get(id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (s *InMemoryDocumentStore) List() []*domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		cp := *doc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out
}

func (s *InMemoryDocumentStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// SetProcessing claims the single extraction slot for a document. Exactly
// one caller wins when several race on the same id.
func (s *InMemoryDocumentStore) SetProcessing(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if doc.Status == domain.StatusProcessing {
		return domain.ErrAlreadyProcessing
	}
	doc.Status = domain.StatusProcessing
	doc.ExtractedText = ""
	doc.WordCount = 0
	doc.ErrorDetail = ""
	doc.ProcessedAt = nil
	return nil
}

func (s *InMemoryDocumentStore) Complete(id string, text string, wordCount int) error {
	return s.finish(id, func(doc *domain.Document) {
		doc.Status = domain.StatusCompleted
		doc.ExtractedText = text
		doc.WordCount = wordCount
	})
}

func (s *InMemoryDocumentStore) Fail(id string, reason string) error {
	return s.finish(id, func(doc *domain.Document) {
		doc.Status = domain.StatusFailed
		doc.ErrorDetail = reason
	})
}

func (s *InMemoryDocumentStore) finish(id string, apply func(*domain.Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if doc.Status != domain.StatusProcessing {
		return domain.ErrNotProcessed
	}
	apply(doc)
	now := time.Now()
	doc.ProcessedAt = &now
	return nil
}
