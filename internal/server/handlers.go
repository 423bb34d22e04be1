package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/thenoetrevino/clubhouse/internal/models"
	"github.com/thenoetrevino/clubhouse/internal/roster"
	staffservice "github.com/thenoetrevino/clubhouse/internal/services/staff"
	teamservice "github.com/thenoetrevino/clubhouse/internal/services/team"
	"github.com/thenoetrevino/clubhouse/internal/storage"
	"github.com/thenoetrevino/clubhouse/internal/validate"
)

// teamDetail is the GET /teams/{id} payload
type teamDetail struct {
	Team   *models.TeamRecord    `json:"team"`
	League string                `json:"league"`
	Staff  []*models.StaffRecord `json:"staff"`
	Staged *teamservice.Input    `json:"staged,omitempty"`
}

type openRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jsonResponse{
		"status":   "ok",
		"database": s.app.DatabasePath(),
		"teams":    len(s.app.Teams()),
		"staff":    len(s.app.Staff()),
		"metrics":  s.metrics.Snapshot(),
	})
}

// The API never touches the session's search term or selection, so
// concurrent clients do not disturb each other.
func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	teams := roster.Search(s.app.Teams(), term)
	writeJSON(w, http.StatusOK, jsonResponse{"search": term, "teams": teams})
}

func (s *Server) findTeam(id int) (*models.TeamRecord, error) {
	t, ok := roster.FindTeam(s.app.Teams(), id)
	if !ok {
		return nil, fmt.Errorf("team %d: %w", id, models.ErrNotFound)
	}
	return t, nil
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	t, err := s.findTeam(id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	detail := teamDetail{
		Team:   t,
		League: s.app.Leagues().Name(t.LeagueID),
		Staff:  s.app.StaffForTeam(id),
	}
	if in, ok := s.app.StagedEdits(id); ok {
		detail.Staged = &in
	}
	writeJSON(w, http.StatusOK, detail)
}

// formFor is what a JSON edit is merged over: pending edits when there are
// any, otherwise the stored team.
func (s *Server) formFor(t *models.TeamRecord) teamservice.Input {
	if in, ok := s.app.StagedEdits(t.ID); ok {
		return in
	}
	return teamservice.InputFrom(t)
}

// handleStageTeam keeps unsaved edits for a team without validating them.
func (s *Server) handleStageTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	current, err := s.findTeam(id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	in := s.formFor(current)
	if err := readJSON(w, r, &in); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.app.StageTeamEdits(id, in)
	writeJSON(w, http.StatusOK, jsonResponse{"staged": in})
}

func (s *Server) handleDiscardTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.app.DiscardEdits(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateTeam applies the JSON body over the stored values, so a
// client may send only the fields it changes.
func (s *Server) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	current, err := s.findTeam(id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	in := s.formFor(current)
	if err := readJSON(w, r, &in); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.app.SaveTeam(r.Context(), id, in); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	updated, err := s.findTeam(id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"team": updated})
}

func (s *Server) handleGetLogo(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	data, ok := s.app.LoadLogo(id)
	if !ok {
		s.errorResponse(w, r, fmt.Errorf("logo of team %d: %w", id, models.ErrNotFound))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}

func (s *Server) handleListStaff(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	writeJSON(w, http.StatusOK, jsonResponse{"search": term, "staff": s.app.SearchStaff(term)})
}

func (s *Server) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	member, err := s.app.StaffMember(id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"staff": member})
}

func (s *Server) handleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	current, err := s.app.StaffMember(id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	in := staffservice.InputFrom(current)
	if err := readJSON(w, r, &in); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.app.SaveStaff(r.Context(), id, in); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	updated, err := s.app.StaffMember(id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"staff": updated})
}

// handleOpenDatabase switches the session to another database file.
func (s *Server) handleOpenDatabase(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := readJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		s.errorResponse(w, r, &validate.ValidationError{Field: "path", Reason: validate.ReasonEmpty})
		return
	}

	snap, err := s.app.OpenDatabase(r.Context(), req.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.errorResponse(w, r, fmt.Errorf("database %s: %w", req.Path, models.ErrNotFound))
		return
	case errors.Is(err, models.ErrStorage):
		// A file that is not a club database is the caller's mistake
		s.errorResponse(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	case err != nil:
		s.errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"database": snap})
}

func (s *Server) handleCloseDatabase(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Close(); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"status": "closed"})
}

// handleExportDatabase takes a fresh copy into a scratch directory and
// streams it as an attachment.
func (s *Server) handleExportDatabase(w http.ResponseWriter, r *http.Request) {
	dir, err := os.MkdirTemp("", "clubhouse-export-*")
	if err != nil {
		s.errorResponse(w, r, &models.IOError{Op: "create scratch dir", Path: os.TempDir(), Err: err})
		return
	}
	defer os.RemoveAll(dir)

	name := s.app.NextExportName()
	path, err := s.app.ExportDatabase(r.Context(), filepath.Join(dir, name))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		s.errorResponse(w, r, &models.IOError{Op: "open export", Path: path, Err: err})
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", storage.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if st, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", fmt.Sprint(st.Size()))
	}
	if _, err := io.Copy(w, f); err != nil {
		s.logger.Warn("export download interrupted", "path", path, "error", err)
	}
}
