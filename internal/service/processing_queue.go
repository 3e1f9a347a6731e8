package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"studium-server/internal/domain"
)

// ProcessingQueue runs text extraction in the background. Handlers enqueue a
// document id after claiming its processing slot; a fixed pool of workers
// drains the queue so OCR-heavy extractions cannot pile up unbounded.
type ProcessingQueue struct {
	store     domain.DocumentStore
	documents *DocumentService
	extractor domain.TextExtractor
	logger    domain.Logger

	jobs    chan string
	workers int
	group   *errgroup.Group
	cancel  context.CancelFunc
}

func NewProcessingQueue(store domain.DocumentStore, documents *DocumentService, extractor domain.TextExtractor, cfg domain.Config, logger domain.Logger) *ProcessingQueue {
	workers := cfg.GetExtractionWorkers()
	if workers < 1 {
		workers = 1
	}
	return &ProcessingQueue{
		store:     store,
		documents: documents,
		extractor: extractor,
		logger:    logger,
		jobs:      make(chan string, 64),
		workers:   workers,
	}
}

// Start launches the worker pool. Stop cancels it and waits for in-flight
// extractions to finish.
func (q *ProcessingQueue) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	q.cancel = cancel
	q.group, ctx = errgroup.WithContext(ctx)
	for i := 0; i < q.workers; i++ {
		q.group.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case id, ok := <-q.jobs:
					if !ok {
						return nil
					}
					q.process(ctx, id)
				}
			}
		})
	}
}

func (q *ProcessingQueue) Stop() {
	if q.cancel != nil {
		q.cancel()
	}
	if q.group != nil {
		_ = q.group.Wait()
	}
}

// Enqueue hands a claimed document to the workers. It never blocks; a full
// queue fails the document immediately rather than stalling the handler.
func (q *ProcessingQueue) Enqueue(id string) error {
	select {
	case q.jobs <- id:
		return nil
	default:
		_ = q.store.Fail(id, "processing queue is full")
		return errors.New("processing queue is full")
	}
}

func (q *ProcessingQueue) process(ctx context.Context, id string) {
	doc, err := q.store.Get(id)
	if err != nil {
		q.logger.Warn("queued document disappeared", "document_id", id)
		return
	}

	data, err := q.documents.ReadFile(doc)
	if err != nil {
		q.fail(id, fmt.Sprintf("failed to read stored file: %v", err))
		return
	}

	text, err := q.extractor.Extract(ctx, data, doc.MediaType)
	if err != nil {
		q.fail(id, err.Error())
		return
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		q.fail(id, domain.ErrEmptyDocument.Error())
		return
	}

	if err := q.store.Complete(id, cleaned, WordCount(cleaned)); err != nil {
		q.logger.Error("failed to record extraction result", err, "document_id", id)
		return
	}
	q.logger.Info("document processed",
		"document_id", id,
		"word_count", fmt.Sprintf("%d", WordCount(cleaned)))
}

func (q *ProcessingQueue) fail(id, reason string) {
	if err := q.store.Fail(id, reason); err != nil {
		q.logger.Error("failed to record extraction failure", err, "document_id", id)
		return
	}
	q.logger.Warn("document processing failed", "document_id", id, "reason", reason)
}
