// Package handler provides HTTP handlers for the API.
package handler

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"studium-server/internal/domain"
	"studium-server/internal/service"
)

// DocumentHandler handles document upload, processing and retrieval.
type DocumentHandler struct {
	documents *service.DocumentService
	store     domain.DocumentStore
	queue     *service.ProcessingQueue
	logger    domain.Logger
	maxSize   int64
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents *service.DocumentService, store domain.DocumentStore, queue *service.ProcessingQueue, cfg domain.Config, logger domain.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		store:     store,
		queue:     queue,
		logger:    logger,
		maxSize:   cfg.GetMaxFileSize(),
	}
}

// Upload accepts a multipart file and registers it in uploaded state.
// Extraction does not start until the client calls the process endpoint.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// One extra byte over the limit so the size check in the service can
	// distinguish "too large" from "at the limit".
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+1)
	if err := r.ParseMultipartForm(h.maxSize + 1); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	doc, err := h.documents.Upload(header.Filename, data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// Process claims the document's extraction slot and enqueues it. Returns
// 202 on success and 409 if an extraction is already in flight.
func (h *DocumentHandler) Process(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.SetProcessing(id); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.queue.Enqueue(id); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"document_id": id,
		"status":      string(domain.StatusProcessing),
	})
}

// Status reports the extraction state of a document.
func (h *DocumentHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	doc, err := h.store.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := map[string]interface{}{
		"document_id": doc.ID,
		"status":      string(doc.Status),
	}
	if doc.Status == domain.StatusCompleted {
		resp["word_count"] = doc.WordCount
	}
	if doc.Status == domain.StatusFailed {
		resp["error"] = doc.ErrorDetail
	}
	if doc.ProcessedAt != nil {
		resp["processed_at"] = doc.ProcessedAt
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetText returns the extracted text of a completed document.
func (h *DocumentHandler) GetText(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	doc, err := h.store.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if doc.Status != domain.StatusCompleted {
		writeError(w, http.StatusConflict, domain.ErrNotProcessed.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"document_id": doc.ID,
		"filename":    doc.Filename,
		"text":        doc.ExtractedText,
		"word_count":  doc.WordCount,
	})
}

// List returns all registered documents, newest first, without text bodies.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs := h.store.List()
	// Text bodies can be large; the list view carries metadata only.
	for _, doc := range docs {
		doc.ExtractedText = ""
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"count":     len(docs),
	})
}

// Delete removes a document and its stored file.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.documents.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"document_id": id,
		"status":      "deleted",
	})
}
