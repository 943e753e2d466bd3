package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/server/api"
	"github.com/dmitrijs2005/healthtracker/internal/server/models"
)

// handleReadAll serves the pull side of the sync protocol. Without a
// publishedSince cursor the full dataset is returned; with one, only rows
// published strictly after it. The response is all-or-nothing.
func (s *Server) handleReadAll(w http.ResponseWriter, r *http.Request) {
	var since *time.Time
	if raw := r.URL.Query().Get("publishedSince"); raw != "" {
		cursor, err := models.ParseTime("publishedSince", raw)
		if err != nil {
			s.respondError(w, r, err, http.StatusNotFound)
			return
		}
		since = &cursor
	}

	changes, err := s.sync.ReadAllSince(r.Context(), since)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, changes)
}

// handlePushAll serves the push side. The batch is absorbed item by item
// and the response accounts for every pushed id, so a push never fails as
// a whole once the body parses.
func (s *Server) handlePushAll(w http.ResponseWriter, r *http.Request) {
	var batch api.ChangeSet
	if err := decodeJSON(r, &batch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := s.sync.PushAll(r.Context(), &batch)
	writeJSON(w, http.StatusOK, result)
}
