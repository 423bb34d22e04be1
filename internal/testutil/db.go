// Package testutil builds throwaway team database files for tests
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Schema mirrors the tables the game writes. Column order matters: the
// loaders read rows positionally.
const Schema = `
	CREATE TABLE League (
		ID INTEGER PRIMARY KEY,
		LeagueName TEXT NOT NULL
	);

	CREATE TABLE Teams (
		ID INTEGER PRIMARY KEY,
		TeamName TEXT NOT NULL,
		TeamWealth INTEGER DEFAULT 0,
		TeamFoundYear INTEGER DEFAULT 0,
		TeamLocation TEXT,
		SupporterCount INTEGER DEFAULT 0,
		StadiumName TEXT,
		Nickname TEXT,
		BelongingLeague INTEGER REFERENCES League(ID)
	);

	CREATE TABLE Staff (
		ID INTEGER PRIMARY KEY,
		Name TEXT NOT NULL,
		AbilityJSON TEXT,
		Fame INTEGER DEFAULT 0,
		EmployedTeamID INTEGER REFERENCES Teams(ID)
	);
`

// Team is a row to seed into Teams
type Team struct {
	ID         int
	Name       string
	Wealth     int
	Founded    int
	Location   string
	Supporters int
	Stadium    string
	Nickname   any // nil stores NULL
	LeagueID   int
}

// Staff is a row to seed into Staff
type Staff struct {
	ID      int
	Name    string
	Ability string
	Fame    int
	TeamID  any // nil stores NULL
}

// Fixture is the default data set used across packages
var (
	FixtureLeagues = map[int]string{1: "Premier", 2: "Championship"}

	FixtureTeams = []Team{
		{ID: 1, Name: "Red FC", Wealth: 100, Founded: 1892, Location: "Liverpool", Supporters: 50000, Stadium: "Anfield Road", Nickname: "The Reds", LeagueID: 1},
		{ID: 2, Name: "Blue Rovers", Wealth: 80, Founded: 1883, Location: "Bristol", Supporters: 12000, Stadium: "Memorial Ground", Nickname: nil, LeagueID: 2},
		{ID: 3, Name: "Athletic Club", Wealth: 60, Founded: 1898, Location: "Bilbao", Supporters: 40000, Stadium: "San Mames", Nickname: "Lions", LeagueID: 9},
	}

	FixtureStaff = []Staff{
		{ID: 1, Name: "Alice", Ability: `{"rawAbility":70}`, Fame: 10, TeamID: 1},
		{ID: 2, Name: "Bob", Ability: `{"rawAbility":90,"potential":95}`, Fame: 20, TeamID: 1},
		{ID: 3, Name: "Cara", Ability: `{"rawAbility":85}`, Fame: 5, TeamID: 2},
		{ID: 4, Name: "Dev", Ability: `broken`, Fame: 0, TeamID: nil},
	}
)

// NewTestDB creates database.db in a temp dir with the schema and fixture
// data, and returns its path. The seeding connection is closed before returning.
func NewTestDB(t *testing.T) string {
	t.Helper()
	return NewTestDBWith(t, FixtureLeagues, FixtureTeams, FixtureStaff)
}

// NewTestDBWith creates a seeded database file from the given rows
func NewTestDBWith(t *testing.T, leagues map[int]string, teams []Team, staff []Staff) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.db")
	db := OpenRaw(t, path)
	defer db.Close()

	if _, err := db.ExecContext(context.Background(), Schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	for id, name := range leagues {
		InsertLeague(t, db, id, name)
	}
	for _, team := range teams {
		InsertTeam(t, db, team)
	}
	for _, s := range staff {
		InsertStaff(t, db, s)
	}
	return path
}

// OpenRaw opens a plain connection for seeding or inspecting a file behind
// the store's back.
func OpenRaw(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db
}

// InsertLeague adds a league row
func InsertLeague(t *testing.T, db *sql.DB, id int, name string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(), "INSERT INTO League (ID, LeagueName) VALUES (?, ?)", id, name)
	if err != nil {
		t.Fatalf("Failed to insert league: %v", err)
	}
}

// InsertTeam adds a team row
func InsertTeam(t *testing.T, db *sql.DB, team Team) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO Teams (ID, TeamName, TeamWealth, TeamFoundYear, TeamLocation, SupporterCount, StadiumName, Nickname, BelongingLeague)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		team.ID, team.Name, team.Wealth, team.Founded, team.Location, team.Supporters, team.Stadium, team.Nickname, team.LeagueID,
	)
	if err != nil {
		t.Fatalf("Failed to insert team: %v", err)
	}
}

// InsertStaff adds a staff row
func InsertStaff(t *testing.T, db *sql.DB, s Staff) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		"INSERT INTO Staff (ID, Name, AbilityJSON, Fame, EmployedTeamID) VALUES (?, ?, ?, ?, ?)",
		s.ID, s.Name, s.Ability, s.Fame, s.TeamID,
	)
	if err != nil {
		t.Fatalf("Failed to insert staff: %v", err)
	}
}

// Dump reads every row of every contract table as strings, for comparing two files.
func Dump(t *testing.T, path string) map[string][][]string {
	t.Helper()
	db := OpenRaw(t, path)
	defer db.Close()

	queries := map[string]string{
		"League": "SELECT ID, LeagueName FROM League ORDER BY ID",
		"Teams":  "SELECT ID, TeamName, TeamWealth, TeamFoundYear, TeamLocation, SupporterCount, StadiumName, Nickname, BelongingLeague FROM Teams ORDER BY ID",
		"Staff":  "SELECT ID, Name, AbilityJSON, Fame, EmployedTeamID FROM Staff ORDER BY ID",
	}

	out := make(map[string][][]string, len(queries))
	for table, q := range queries {
		rows, err := db.QueryContext(context.Background(), q)
		if err != nil {
			t.Fatalf("Failed to dump %s: %v", table, err)
		}
		cols, _ := rows.Columns()
		for rows.Next() {
			vals := make([]sql.NullString, len(cols))
			ptrs := make([]any, len(cols))
			for i := range vals {
				ptrs[i] = &vals[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				t.Fatalf("Failed to scan %s: %v", table, err)
			}
			row := make([]string, len(cols))
			for i, v := range vals {
				if v.Valid {
					row[i] = v.String
				} else {
					row[i] = "<null>"
				}
			}
			out[table] = append(out[table], row)
		}
		if err := rows.Err(); err != nil {
			t.Fatalf("Failed to read %s: %v", table, err)
		}
		rows.Close()
	}
	return out
}
