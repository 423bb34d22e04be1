package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

// ============================================================================
// Staff Operations
// ============================================================================

const staffColumns = `ID, Name, AbilityJSON, Fame, EmployedTeamID`

// getAllStaff retrieves every staff member ordered by name
func getAllStaff(ctx context.Context, db sqlx.QueryerContext) ([]*models.StaffRecord, error) {
	rows, err := db.QueryxContext(ctx, `SELECT `+staffColumns+` FROM Staff ORDER BY Name`)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, models.StaffFromRow)
}

// getStaffByID retrieves a single staff member
func getStaffByID(ctx context.Context, db sqlx.QueryerContext, id int) (*models.StaffRecord, error) {
	rows, err := db.QueryxContext(ctx, `SELECT `+staffColumns+` FROM Staff WHERE ID = ?`, id)
	if err != nil {
		return nil, err
	}
	staff, err := scanRows(rows, models.StaffFromRow)
	if err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		return nil, fmt.Errorf("staff %d: %w", id, models.ErrNotFound)
	}
	return staff[0], nil
}

// updateStaff rewrites the name, ability descriptor and fame of one staff member
func updateStaff(ctx context.Context, tx *sqlx.Tx, id int, name, abilityJSON string, fame int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE Staff SET Name = ?, AbilityJSON = ?, Fame = ? WHERE ID = ?`,
		name, abilityJSON, max(fame, 0), id,
	)
	if err != nil {
		return err
	}
	return requireOneRow(res, fmt.Errorf("staff %d: %w", id, models.ErrNotFound))
}

// Staff returns all staff ordered by name
func (s *Store) Staff(ctx context.Context) ([]*models.StaffRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	staff, err := getAllStaff(ctx, db)
	if err != nil {
		return nil, storageErr("load staff", err)
	}
	return staff, nil
}

// StaffMember returns one staff member by ID
func (s *Store) StaffMember(ctx context.Context, id int) (*models.StaffRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	member, err := getStaffByID(ctx, db, id)
	if err != nil {
		return nil, storageErr(fmt.Sprintf("load staff %d", id), err)
	}
	return member, nil
}

// UpdateStaff writes name, descriptor and fame in one committed transaction.
func (s *Store) UpdateStaff(ctx context.Context, id int, name, abilityJSON string, fame int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.handle()
	if err != nil {
		return err
	}
	err = withTx(ctx, db, func(tx *sqlx.Tx) error {
		return updateStaff(ctx, tx, id, name, abilityJSON, fame)
	})
	return storageErr(fmt.Sprintf("update staff %d", id), err)
}
