// Package app is the editing session shared by the CLI and the HTTP API
package app

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/thenoetrevino/clubhouse/internal/database"
	"github.com/thenoetrevino/clubhouse/internal/events"
	"github.com/thenoetrevino/clubhouse/internal/logo"
	"github.com/thenoetrevino/clubhouse/internal/models"
	"github.com/thenoetrevino/clubhouse/internal/roster"
	staffservice "github.com/thenoetrevino/clubhouse/internal/services/staff"
	teamservice "github.com/thenoetrevino/clubhouse/internal/services/team"
)

// App holds the open database, the loaded lists and the edit state of one
// session. All methods are safe for concurrent use; mu is always taken
// before the store's own lock.
type App struct {
	mu sync.Mutex

	cfg    appConfig
	logger *slog.Logger
	clock  clockwork.Clock

	// Set while a database is open
	store    *database.Store
	logos    *logo.Store
	teamSvc  teamservice.Service
	staffSvc staffservice.Service

	leagues   models.Leagues
	teams     []*models.TeamRecord
	displayed []*models.TeamRecord
	staff     []*models.StaffRecord

	searchTerm    string
	currentTeamID int
	staged        map[int]teamservice.Input
}

// Snapshot summarizes what OpenDatabase loaded
type Snapshot struct {
	Path    string         `json:"path"`
	Leagues models.Leagues `json:"leagues"`
	Teams   int            `json:"teams"`
	Staff   int            `json:"staff"`
}

// Selection is the detail view of one team
type Selection struct {
	Team   *models.TeamRecord    `json:"team"`
	League string                `json:"league"`
	Staff  []*models.StaffRecord `json:"staff"`
	Staged *teamservice.Input    `json:"staged,omitempty"` // pending edits, nil when none
}

// Form returns the values an edit form should show: pending edits when
// there are any, otherwise the stored team.
func (s *Selection) Form() teamservice.Input {
	if s.Staged != nil {
		return *s.Staged
	}
	return teamservice.InputFrom(s.Team)
}

// New creates an App with no database open.
func New(opts ...Option) *App {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.clock == nil {
		cfg.clock = clockwork.NewRealClock()
	}

	return &App{
		cfg:    cfg,
		logger: cfg.logger,
		clock:  cfg.clock,
		staged: make(map[int]teamservice.Input),
	}
}

// OpenDatabase closes the current database, if any, and opens path. The
// search, the selection and all pending edits are reset. On failure the
// session is left with no database.
func (a *App) OpenDatabase(ctx context.Context, path string) (*Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	_ = a.closeLocked()

	store, err := database.Open(ctx, path)
	if err != nil {
		a.logger.Error("failed to open database", "path", path, "error", err)
		return nil, err
	}

	leagues, err := store.Leagues(ctx)
	if err == nil {
		a.leagues = leagues
		a.store = store
		err = a.reloadLocked(ctx)
	}
	if err != nil {
		a.logger.Error("failed to load database", "path", path, "error", err)
		if closeErr := store.Close(); closeErr != nil {
			a.logger.Error("error closing db", "error", closeErr)
		}
		a.resetLocked()
		return nil, err
	}

	a.logos = logo.NewStore(store.Dir(), a.cfg.logoSize)
	a.teamSvc = teamservice.NewService(store, a.cfg.eventClient)
	a.staffSvc = staffservice.NewService(store, a.cfg.eventClient)

	a.logger.Info("database loaded",
		"path", store.Path(),
		"leagues", len(a.leagues),
		"teams", len(a.teams),
		"staff", len(a.staff))
	events.Notify(a.cfg.eventClient, events.Event{Type: events.EventDatabaseOpened, Path: store.Path()})

	return &Snapshot{
		Path:    store.Path(),
		Leagues: maps.Clone(a.leagues),
		Teams:   len(a.teams),
		Staff:   len(a.staff),
	}, nil
}

// Refresh reloads teams and staff. On failure the previous lists are kept.
func (a *App) Refresh(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireStore(); err != nil {
		return err
	}
	return a.reloadLocked(ctx)
}

// reloadLocked replaces the lists only when both loads succeed.
func (a *App) reloadLocked(ctx context.Context) error {
	teams, err := a.store.Teams(ctx)
	if err != nil {
		a.logger.Error("failed to refresh teams", "error", err)
		return err
	}
	staff, err := a.store.Staff(ctx)
	if err != nil {
		a.logger.Error("failed to refresh staff", "error", err)
		return err
	}

	a.teams = teams
	a.staff = staff
	a.applySearchLocked()
	return nil
}

// applySearchLocked recomputes the displayed list and drops a selection
// that is no longer displayed.
func (a *App) applySearchLocked() {
	a.displayed = roster.Search(a.teams, a.searchTerm)
	if a.currentTeamID != 0 {
		if _, ok := roster.FindTeam(a.displayed, a.currentTeamID); !ok {
			a.currentTeamID = 0
		}
	}
}

// Search filters the displayed teams. An empty term shows every team.
func (a *App) Search(term string) []*models.TeamRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.searchTerm = term
	a.applySearchLocked()
	return slices.Clone(a.displayed)
}

// SelectTeam makes id the current team and returns its detail view. A team
// outside the displayed list clears the selection.
func (a *App) SelectTeam(id int) (*Selection, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, ok := roster.FindTeam(a.displayed, id)
	if !ok {
		a.currentTeamID = 0
		return nil, fmt.Errorf("team %d: %w", id, models.ErrNoSelection)
	}
	a.currentTeamID = id

	sel := &Selection{
		Team:   t,
		League: a.leagues.Name(t.LeagueID),
		Staff:  roster.StaffForTeam(a.staff, id),
	}
	if in, ok := a.staged[id]; ok {
		sel.Staged = &in
	}
	return sel, nil
}

// StageTeamEdits remembers unsaved form values for a team
func (a *App) StageTeamEdits(id int, in teamservice.Input) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.staged[id] = in
}

// StagedEdits returns the unsaved form values for a team
func (a *App) StagedEdits(id int) (teamservice.Input, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	in, ok := a.staged[id]
	return in, ok
}

// DiscardEdits drops unsaved form values for a team
func (a *App) DiscardEdits(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.staged, id)
}

// SaveTeam validates and persists a team edit, then reloads the lists.
// The selection is kept.
func (a *App) SaveTeam(ctx context.Context, id int, in teamservice.Input) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireStore(); err != nil {
		return err
	}
	if err := a.teamSvc.Update(ctx, id, in); err != nil {
		return err
	}
	delete(a.staged, id)

	// The write is committed; a failed reload only leaves the lists stale
	if err := a.reloadLocked(ctx); err != nil {
		a.logger.Warn("saved team but reload failed", "team_id", id, "error", err)
	}
	return nil
}

// SaveStaff validates and persists a staff edit, then reloads the lists.
func (a *App) SaveStaff(ctx context.Context, id int, in staffservice.Input) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireStore(); err != nil {
		return err
	}
	if err := a.staffSvc.Update(ctx, id, in); err != nil {
		return err
	}

	if err := a.reloadLocked(ctx); err != nil {
		a.logger.Warn("saved staff but reload failed", "staff_id", id, "error", err)
	}
	return nil
}

// LoadLogo returns the current team's logo bytes, or false when there is none
func (a *App) LoadLogo(teamID int) ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.logos == nil {
		return nil, false
	}
	return a.logos.Load(teamID)
}

// ReplaceLogo stores the image at source as the team's logo
func (a *App) ReplaceLogo(teamID int, source string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.logos == nil {
		return models.ErrNoDatabase
	}
	if _, ok := roster.FindTeam(a.teams, teamID); !ok {
		return fmt.Errorf("team %d: %w", teamID, models.ErrNotFound)
	}
	if err := a.logos.Replace(teamID, source); err != nil {
		return err
	}
	events.Notify(a.cfg.eventClient, events.Event{
		Type:     events.EventLogoReplaced,
		RecordID: teamID,
		Path:     logo.Path(a.logos.Dir(), teamID),
	})
	return nil
}

// LogoPath returns where a team's logo is stored
func (a *App) LogoPath(teamID int) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	store, err := a.requireStore()
	if err != nil {
		return "", err
	}
	return logo.Path(store.Dir(), teamID), nil
}

// Teams returns every loaded team ordered by name
func (a *App) Teams() []*models.TeamRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.teams)
}

// Displayed returns the teams matching the current search
func (a *App) Displayed() []*models.TeamRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.displayed)
}

// Staff returns every loaded staff member ordered by name
func (a *App) Staff() []*models.StaffRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.staff)
}

// SearchStaff returns staff whose name contains term
func (a *App) SearchStaff(term string) []*models.StaffRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(roster.SearchStaff(a.staff, term))
}

// StaffMember returns one loaded staff member
func (a *App) StaffMember(id int) (*models.StaffRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := roster.FindStaff(a.staff, id)
	if !ok {
		return nil, fmt.Errorf("staff %d: %w", id, models.ErrNotFound)
	}
	return s, nil
}

// StaffForTeam returns a team's staff, highest ability first
func (a *App) StaffForTeam(teamID int) []*models.StaffRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return roster.StaffForTeam(a.staff, teamID)
}

// Leagues returns the league names keyed by ID
func (a *App) Leagues() models.Leagues {
	a.mu.Lock()
	defer a.mu.Unlock()
	return maps.Clone(a.leagues)
}

// CurrentTeamID is the selected team, or 0
func (a *App) CurrentTeamID() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentTeamID
}

// SearchTerm is the active team filter
func (a *App) SearchTerm() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.searchTerm
}

// DatabasePath is the open file, or "" when none is open
func (a *App) DatabasePath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		return ""
	}
	return a.store.Path()
}

// Close releases the database. The session can open another one afterwards.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closeLocked()
}

func (a *App) closeLocked() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		if err != nil {
			a.logger.Error("error closing db", "error", err)
		}
	}
	a.resetLocked()
	return err
}

// resetLocked forgets everything tied to the open file
func (a *App) resetLocked() {
	a.store = nil
	a.logos = nil
	a.teamSvc = nil
	a.staffSvc = nil
	a.leagues = nil
	a.teams = nil
	a.displayed = nil
	a.staff = nil
	a.searchTerm = ""
	a.currentTeamID = 0
	clear(a.staged)
}

// requireStore returns the open store or ErrNoDatabase. Callers must hold mu.
func (a *App) requireStore() (*database.Store, error) {
	if a.store == nil {
		return nil, models.ErrNoDatabase
	}
	return a.store, nil
}
