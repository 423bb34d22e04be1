package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

// ============================================================================
// Team Operations
// ============================================================================

const teamColumns = `ID, TeamName, TeamWealth, TeamFoundYear, TeamLocation,
	SupporterCount, StadiumName, Nickname, BelongingLeague`

// TeamUpdate carries the editable columns of a team. BelongingLeague is not
// editable and is left alone.
type TeamUpdate struct {
	Name           string
	Wealth         int
	FoundYear      int
	Location       string
	SupporterCount int
	StadiumName    string
	Nickname       string
}

// getAllTeams retrieves every team ordered by name
func getAllTeams(ctx context.Context, db sqlx.QueryerContext) ([]*models.TeamRecord, error) {
	rows, err := db.QueryxContext(ctx, `SELECT `+teamColumns+` FROM Teams ORDER BY TeamName`)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, models.TeamFromRow)
}

// getTeamByID retrieves a single team
func getTeamByID(ctx context.Context, db sqlx.QueryerContext, id int) (*models.TeamRecord, error) {
	row, err := db.QueryxContext(ctx, `SELECT `+teamColumns+` FROM Teams WHERE ID = ?`, id)
	if err != nil {
		return nil, err
	}
	teams, err := scanRows(row, models.TeamFromRow)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("team %d: %w", id, models.ErrNotFound)
	}
	return teams[0], nil
}

// updateTeam rewrites every editable column of one team
func updateTeam(ctx context.Context, tx *sqlx.Tx, id int, u TeamUpdate) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE Teams SET
			TeamName = ?,
			TeamWealth = ?,
			TeamFoundYear = ?,
			TeamLocation = ?,
			SupporterCount = ?,
			StadiumName = ?,
			Nickname = ?
		WHERE ID = ?`,
		u.Name, max(u.Wealth, 0), u.FoundYear, u.Location, max(u.SupporterCount, 0), u.StadiumName, u.Nickname, id,
	)
	if err != nil {
		return err
	}
	return requireOneRow(res, fmt.Errorf("team %d: %w", id, models.ErrNotFound))
}

// Teams returns all teams ordered by name
func (s *Store) Teams(ctx context.Context) ([]*models.TeamRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	teams, err := getAllTeams(ctx, db)
	if err != nil {
		return nil, storageErr("load teams", err)
	}
	return teams, nil
}

// Team returns one team by ID
func (s *Store) Team(ctx context.Context, id int) (*models.TeamRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	team, err := getTeamByID(ctx, db, id)
	if err != nil {
		return nil, storageErr(fmt.Sprintf("load team %d", id), err)
	}
	return team, nil
}

// UpdateTeam writes all editable columns of a team in one committed transaction.
func (s *Store) UpdateTeam(ctx context.Context, id int, u TeamUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.handle()
	if err != nil {
		return err
	}
	err = withTx(ctx, db, func(tx *sqlx.Tx) error {
		return updateTeam(ctx, tx, id, u)
	})
	return storageErr(fmt.Sprintf("update team %d", id), err)
}
