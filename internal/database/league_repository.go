package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

// getLeagues loads the League lookup table
func getLeagues(ctx context.Context, db sqlx.QueryerContext) (models.Leagues, error) {
	var rows []models.League
	if err := sqlx.SelectContext(ctx, db, &rows, `SELECT ID, COALESCE(LeagueName, '') AS LeagueName FROM League ORDER BY ID`); err != nil {
		return nil, err
	}

	leagues := make(models.Leagues, len(rows))
	for _, l := range rows {
		leagues[l.ID] = l.Name
	}
	return leagues, nil
}

// Leagues returns the league names keyed by ID
func (s *Store) Leagues(ctx context.Context) (models.Leagues, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	leagues, err := getLeagues(ctx, db)
	return leagues, storageErr("load leagues", err)
}
