package models

// UnknownLeague is shown when a team points at a league that is not loaded
const UnknownLeague = "Unknown league"

// League is one row of the read-only League lookup table
type League struct {
	ID   int    `db:"ID"`
	Name string `db:"LeagueName"`
}

// Leagues maps league IDs to names
type Leagues map[int]string

// Name resolves a league ID, falling back to UnknownLeague
func (l Leagues) Name(id int) string {
	if name, ok := l[id]; ok {
		return name
	}
	return UnknownLeague
}
