package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"hexageeky/internal/domain"
	"hexageeky/internal/prefs"
)

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request, sessionID string) {
	snapshot, err := s.prefs.Get(sessionID)
	if err != nil {
		s.writeError(w, domain.Wrap(domain.CodeUnavailable, "httpapi.getPreferences", err))
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handlePatchPreferences(w http.ResponseWriter, r *http.Request, sessionID string) {
	var patch prefs.Patch
	if err := decodeBody(r, &patch); err != nil {
		s.writeError(w, err)
		return
	}
	snapshot, err := s.prefs.Apply(sessionID, patch)
	s.respondMutation(w, snapshot, err)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body struct {
		ID string `json:"id"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(body.ID) == "" {
		s.writeError(w, domain.E(domain.CodeInvalidArgument, "httpapi.toggleFavorite", "id is required", domain.ErrInvalidRequest))
		return
	}
	snapshot, err := s.prefs.ToggleFavorite(sessionID, body.ID)
	s.respondMutation(w, snapshot, err)
}

func (s *Server) handleToggleTag(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body struct {
		Tag string `json:"tag"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(body.Tag) == "" {
		s.writeError(w, domain.E(domain.CodeInvalidArgument, "httpapi.toggleTag", "tag is required", domain.ErrInvalidRequest))
		return
	}
	snapshot, err := s.prefs.ToggleTag(sessionID, body.Tag)
	s.respondMutation(w, snapshot, err)
}

func (s *Server) handleRecordView(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body struct {
		ID string `json:"id"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(body.ID) == "" {
		s.writeError(w, domain.E(domain.CodeInvalidArgument, "httpapi.recordView", "id is required", domain.ErrInvalidRequest))
		return
	}
	snapshot, err := s.prefs.RecordView(sessionID, body.ID)
	s.respondMutation(w, snapshot, err)
}

func (s *Server) handleClearRecent(w http.ResponseWriter, r *http.Request, sessionID string) {
	snapshot, err := s.prefs.ClearRecentlyViewed(sessionID)
	s.respondMutation(w, snapshot, err)
}

func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request, sessionID string) {
	snapshot, err := s.prefs.ClearFilters(sessionID)
	s.respondMutation(w, snapshot, err)
}

func (s *Server) handleToggleSidebar(w http.ResponseWriter, r *http.Request, sessionID string) {
	snapshot, err := s.prefs.ToggleSidebar(sessionID)
	s.respondMutation(w, snapshot, err)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request, sessionID string) {
	var patch domain.SettingsPatch
	if err := decodeBody(r, &patch); err != nil {
		s.writeError(w, err)
		return
	}
	snapshot, err := s.prefs.UpdateSettings(sessionID, patch)
	s.respondMutation(w, snapshot, err)
}

func (s *Server) respondMutation(w http.ResponseWriter, snapshot domain.Preferences, err error) {
	if err != nil {
		s.writeError(w, domain.Wrap(domain.CodeUnavailable, "httpapi.preferences", err))
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

func decodeBody(r *http.Request, into any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(into); err != nil {
		return domain.E(domain.CodeInvalidArgument, "httpapi.decode", "malformed request body", err)
	}
	return nil
}
