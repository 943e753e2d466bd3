package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/healthtracker/internal/common"
	"github.com/dmitrijs2005/healthtracker/internal/server/api"
	"github.com/dmitrijs2005/healthtracker/internal/server/models"
	"github.com/dmitrijs2005/healthtracker/internal/server/services"
)

type createMetricRequest struct {
	ID        *string `json:"id"`
	SymptomID string  `json:"symptomId"`
	Date      string  `json:"date"`
	UpdatedAt string  `json:"updatedAt"`
	Intensity string  `json:"intensity"`
	Notes     string  `json:"notes"`
}

type updateMetricRequest struct {
	SymptomID *string `json:"symptomId"`
	Date      *string `json:"date"`
	UpdatedAt *string `json:"updatedAt"`
	Intensity *string `json:"intensity"`
	Notes     *string `json:"notes"`
}

func (s *Server) handleCreateMetric(w http.ResponseWriter, r *http.Request) {
	var req createMetricRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := models.ParseTime("date", req.Date)
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}
	updatedAt, err := models.ParseTime("updatedAt", req.UpdatedAt)
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}
	intensity, err := models.ParseIntensity(req.Intensity)
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}

	metric, err := s.metrics.Create(r.Context(), services.CreateMetricParams{
		ID:        req.ID,
		SymptomID: req.SymptomID,
		Date:      date,
		Intensity: intensity,
		Notes:     req.Notes,
		UpdatedAt: updatedAt,
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]api.Metric{"createdMetric": api.MetricFromDomain(metric)})
}

func (s *Server) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	stored := s.metrics.ReadAll(r.Context())
	out := make([]api.Metric, 0, len(stored))
	for _, metric := range stored {
		out = append(out, api.MetricFromDomain(metric))
	}
	writeJSON(w, http.StatusOK, map[string][]api.Metric{"metrics": out})
}

func (s *Server) handleUpdateMetric(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateMetricRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := services.UpdateMetricParams{
		SymptomID: req.SymptomID,
		Notes:     req.Notes,
	}
	if req.Date != nil {
		date, err := models.ParseTime("date", *req.Date)
		if err != nil {
			s.respondError(w, r, err, http.StatusConflict)
			return
		}
		params.Date = &date
	}
	if req.UpdatedAt != nil {
		updatedAt, err := models.ParseTime("updatedAt", *req.UpdatedAt)
		if err != nil {
			s.respondError(w, r, err, http.StatusConflict)
			return
		}
		params.UpdatedAt = &updatedAt
	}
	if req.Intensity != nil {
		intensity, err := models.ParseIntensity(*req.Intensity)
		if err != nil {
			s.respondError(w, r, err, http.StatusConflict)
			return
		}
		params.Intensity = &intensity
	}

	metric, err := s.metrics.Update(r.Context(), id, params)
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]api.Metric{"updatedMetric": api.MetricFromDomain(metric)})
}

func (s *Server) handleDeleteMetric(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.metrics.Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "metric not found, nothing was deleted")
			return
		}
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deletedMetric": id})
}
