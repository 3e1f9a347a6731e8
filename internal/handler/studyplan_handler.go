package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"studium-server/internal/domain"
)

// StudyPlanHandler exposes exam study plan generation and retrieval.
type StudyPlanHandler struct {
	plans  domain.StudyPlanService
	store  domain.StudyPlanStore
	docs   domain.DocumentStore
	logger domain.Logger
}

func NewStudyPlanHandler(plans domain.StudyPlanService, store domain.StudyPlanStore, docs domain.DocumentStore, logger domain.Logger) *StudyPlanHandler {
	return &StudyPlanHandler{plans: plans, store: store, docs: docs, logger: logger}
}

// Generate builds a plan from a processed document and saves it.
func (h *StudyPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.StudyPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}
	if req.FileID == "" || req.SubjectName == "" || req.ExamDate == "" {
		writeError(w, http.StatusBadRequest, "file_id, subject_name and exam_date are required")
		return
	}

	doc, err := h.docs.Get(req.FileID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if doc.Status != domain.StatusCompleted {
		writeError(w, http.StatusConflict, domain.ErrNotProcessed.Error())
		return
	}

	plan, err := h.plans.GeneratePlan(r.Context(), doc.ExtractedText, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.store.Save(plan); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// Get returns a previously generated plan.
func (h *StudyPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, err := h.store.Get(mux.Vars(r)["plan_id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// List returns all stored plans, newest first.
func (h *StudyPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans := h.store.List()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plans": plans,
		"count": len(plans),
	})
}

// Delete removes a stored plan.
func (h *StudyPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["plan_id"]
	if err := h.store.Delete(planID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"plan_id": planID,
		"status":  "deleted",
	})
}
