package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/healthtracker/internal/common"
	"github.com/dmitrijs2005/healthtracker/internal/server/api"
	"github.com/dmitrijs2005/healthtracker/internal/server/models"
	"github.com/dmitrijs2005/healthtracker/internal/server/services"
)

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// respondError maps the error taxonomy to a status code. Missing rows map
// to notFoundStatus because patch and delete report absence differently.
// Anything outside the taxonomy is logged and answered with an opaque body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, notFoundStatus int) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrNotFound):
		writeError(w, notFoundStatus, err.Error())
	default:
		s.logger.Error(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusUnprocessableEntity, common.SeeLogs)
	}
}

type createSymptomRequest struct {
	ID         *string  `json:"id"`
	Name       string   `json:"name"`
	OtherNames []string `json:"otherNames"`
	UpdatedAt  string   `json:"updatedAt"`
}

type updateSymptomRequest struct {
	Name       *string   `json:"name"`
	OtherNames *[]string `json:"otherNames"`
	UpdatedAt  *string   `json:"updatedAt"`
}

func (s *Server) handleCreateSymptom(w http.ResponseWriter, r *http.Request) {
	var req createSymptomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updatedAt, err := models.ParseTime("updatedAt", req.UpdatedAt)
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}

	symptom, err := s.symptoms.Create(r.Context(), services.CreateSymptomParams{
		ID:         req.ID,
		Name:       req.Name,
		OtherNames: req.OtherNames,
		UpdatedAt:  updatedAt,
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]api.Symptom{"createdSymptom": api.SymptomFromDomain(symptom)})
}

func (s *Server) handleListSymptoms(w http.ResponseWriter, r *http.Request) {
	stored := s.symptoms.ReadAll(r.Context())
	out := make([]api.Symptom, 0, len(stored))
	for _, symptom := range stored {
		out = append(out, api.SymptomFromDomain(symptom))
	}
	writeJSON(w, http.StatusOK, map[string][]api.Symptom{"symptoms": out})
}

func (s *Server) handleUpdateSymptom(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateSymptomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := services.UpdateSymptomParams{
		Name:       req.Name,
		OtherNames: req.OtherNames,
	}
	if req.UpdatedAt != nil {
		updatedAt, err := models.ParseTime("updatedAt", *req.UpdatedAt)
		if err != nil {
			s.respondError(w, r, err, http.StatusConflict)
			return
		}
		params.UpdatedAt = &updatedAt
	}

	symptom, err := s.symptoms.Update(r.Context(), id, params)
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]api.Symptom{"updatedSymptom": api.SymptomFromDomain(symptom)})
}

func (s *Server) handleDeleteSymptom(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.symptoms.Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "symptom not found, nothing was deleted")
			return
		}
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deletedSymptom": id})
}
