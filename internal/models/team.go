package models

import (
	"strconv"
	"strings"
)

// Column names of the Teams table, in contract order.
var TeamFieldNames = []string{
	"ID",
	"TeamName",
	"TeamWealth",
	"TeamFoundYear",
	"TeamLocation",
	"SupporterCount",
	"StadiumName",
	"Nickname",
	"BelongingLeague",
}

// TeamRecord is one row of the Teams table
type TeamRecord struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Wealth         int    `json:"wealth"`
	FoundYear      int    `json:"found_year"`
	Location       string `json:"location"`
	SupporterCount int    `json:"supporters"`
	StadiumName    string `json:"stadium"`
	Nickname       string `json:"nickname"` // NULL in storage reads as ""
	LeagueID       int    `json:"league_id"`
}

// TeamFromRow builds a team from a nine-column row ordered like TeamFieldNames.
// Values are trusted to come from storage and are not validated.
func TeamFromRow(row []any) (*TeamRecord, error) {
	if err := checkWidth("team", row, len(TeamFieldNames)); err != nil {
		return nil, err
	}
	return &TeamRecord{
		ID:             asInt(row[0]),
		Name:           asString(row[1]),
		Wealth:         asInt(row[2]),
		FoundYear:      asInt(row[3]),
		Location:       asString(row[4]),
		SupporterCount: asInt(row[5]),
		StadiumName:    asString(row[6]),
		Nickname:       asString(row[7]),
		LeagueID:       asInt(row[8]),
	}, nil
}

// Fields returns every column value as a string, in TeamFieldNames order.
func (t *TeamRecord) Fields() []string {
	return []string{
		strconv.Itoa(t.ID),
		t.Name,
		strconv.Itoa(t.Wealth),
		strconv.Itoa(t.FoundYear),
		t.Location,
		strconv.Itoa(t.SupporterCount),
		t.StadiumName,
		t.Nickname,
		strconv.Itoa(t.LeagueID),
	}
}

// SearchKey concatenates all field values without a delimiter. A term can
// therefore match across a field boundary: ID 1 followed by a name starting
// with "2" matches "12".
func (t *TeamRecord) SearchKey() string {
	return strings.Join(t.Fields(), "")
}

// DisplayName returns "Name (Nickname)", or just the name when there is no nickname.
func (t *TeamRecord) DisplayName() string {
	if t.Nickname == "" {
		return t.Name
	}
	return t.Name + " (" + t.Nickname + ")"
}

// GetID satisfies the quiet-mode output contract
func (t *TeamRecord) GetID() int {
	return t.ID
}
