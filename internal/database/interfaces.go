package database

import (
	"context"

	"github.com/thenoetrevino/clubhouse/internal/models"
)

// LeagueRepository reads the league lookup table
type LeagueRepository interface {
	Leagues(ctx context.Context) (models.Leagues, error)
}

// TeamRepository reads and updates teams
type TeamRepository interface {
	Teams(ctx context.Context) ([]*models.TeamRecord, error)
	Team(ctx context.Context, id int) (*models.TeamRecord, error)
	UpdateTeam(ctx context.Context, id int, u TeamUpdate) error
}

// StaffRepository reads and updates staff
type StaffRepository interface {
	Staff(ctx context.Context) ([]*models.StaffRecord, error)
	StaffMember(ctx context.Context, id int) (*models.StaffRecord, error)
	UpdateStaff(ctx context.Context, id int, name, abilityJSON string, fame int) error
}

// DataStore is everything the session needs from an open database file.
// Services depend on the smaller interfaces.
type DataStore interface {
	LeagueRepository
	TeamRepository
	StaffRepository
	ExportCopy(ctx context.Context, dest string) (int64, error)
	Path() string
	Dir() string
	Close() error
}

var _ DataStore = (*Store)(nil)
