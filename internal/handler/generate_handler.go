package handler

import (
	"encoding/json"
	"net/http"

	"studium-server/internal/domain"
)

// GenerateHandler exposes study-content generation. Content can be generated
// from raw text or from a previously processed document.
type GenerateHandler struct {
	generation domain.GenerationService
	store      domain.DocumentStore
	logger     domain.Logger
}

func NewGenerateHandler(generation domain.GenerationService, store domain.DocumentStore, logger domain.Logger) *GenerateHandler {
	return &GenerateHandler{generation: generation, store: store, logger: logger}
}

type generateRequest struct {
	DocumentID   string `json:"document_id,omitempty"`
	Text         string `json:"text,omitempty"`
	ActivityType string `json:"activity_type,omitempty"`
	Count        int    `json:"count,omitempty"`
	Language     string `json:"language,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	Topic        string `json:"topic,omitempty"`
}

var validActivityTypes = map[domain.ActivityType]bool{
	domain.ActivityFlashcard:      true,
	domain.ActivityMultipleChoice: true,
	domain.ActivityTrueFalse:      true,
	domain.ActivitySummary:        true,
	domain.ActivityMixed:          true,
}

// Route suffixes map onto activity types so clients can hit, for example,
// POST /generate/flashcards instead of passing activity_type in the body.
var pathActivityTypes = map[string]domain.ActivityType{
	"flashcards":      domain.ActivityFlashcard,
	"multiple-choice": domain.ActivityMultipleChoice,
	"true-false":      domain.ActivityTrueFalse,
	"summary":         domain.ActivitySummary,
	"mixed":           domain.ActivityMixed,
}

// Generate handles POST /generate with activity_type in the request body.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "")
}

// GenerateTyped returns a handler bound to one activity type.
func (h *GenerateHandler) GenerateTyped(activityType domain.ActivityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.generate(w, r, activityType)
	}
}

func (h *GenerateHandler) generate(w http.ResponseWriter, r *http.Request, forcedType domain.ActivityType) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}

	activityType := forcedType
	if activityType == "" {
		activityType = domain.ActivityType(req.ActivityType)
	}
	if !validActivityTypes[activityType] {
		writeError(w, http.StatusBadRequest, "unknown activity_type")
		return
	}

	text := req.Text
	if text == "" && req.DocumentID != "" {
		doc, err := h.store.Get(req.DocumentID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if doc.Status != domain.StatusCompleted {
			writeError(w, http.StatusConflict, domain.ErrNotProcessed.Error())
			return
		}
		text = doc.ExtractedText
	}
	if text == "" {
		writeError(w, http.StatusBadRequest, "either text or document_id is required")
		return
	}

	result, err := h.generation.Generate(r.Context(), domain.GenerationRequest{
		Text:         text,
		ActivityType: activityType,
		Count:        req.Count,
		Language:     req.Language,
		Difficulty:   req.Difficulty,
		Topic:        req.Topic,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AIStatus reports provider availability and the failover order.
func (h *GenerateHandler) AIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.generation.Status())
}
