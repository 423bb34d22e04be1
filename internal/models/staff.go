package models

import (
	"encoding/json"
	"log/slog"
	"math"
)

// AbilityKey is the descriptor key holding the numeric rating
const AbilityKey = "rawAbility"

// StaffRecord is one row of the Staff table
type StaffRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	AbilityJSON string `json:"ability_json"` // opaque descriptor, only AbilityKey is interpreted
	Fame        int    `json:"fame"`
	TeamID      *int   `json:"team_id"` // nil when unemployed
}

// StaffFromRow builds a staff member from a five-column row
// (ID, Name, AbilityJSON, Fame, EmployedTeamID).
func StaffFromRow(row []any) (*StaffRecord, error) {
	if err := checkWidth("staff", row, 5); err != nil {
		return nil, err
	}
	return &StaffRecord{
		ID:          asInt(row[0]),
		Name:        asString(row[1]),
		AbilityJSON: asString(row[2]),
		Fame:        asInt(row[3]),
		TeamID:      asIntPtr(row[4]),
	}, nil
}

// Ability returns the rating stored in the descriptor.
// Malformed or missing data reads as 0; this never fails.
func (s *StaffRecord) Ability() int {
	n, err := DecodeAbility(s.AbilityJSON)
	if err != nil {
		slog.Debug("unreadable ability descriptor", "staff_id", s.ID, "error", err)
		return 0
	}
	return n
}

// MarshalJSON adds the decoded rating next to the raw descriptor
func (s StaffRecord) MarshalJSON() ([]byte, error) {
	type plain StaffRecord
	return json.Marshal(struct {
		plain
		Ability int `json:"ability"`
	}{plain(s), s.Ability()})
}

// EmployedBy reports whether the staff member works for the given team
func (s *StaffRecord) EmployedBy(teamID int) bool {
	return s.TeamID != nil && *s.TeamID == teamID
}

// GetID satisfies the quiet-mode output contract
func (s *StaffRecord) GetID() int {
	return s.ID
}

// DecodeAbility extracts the rating from a descriptor. A missing key is 0,
// negative ratings clamp to 0 and fractions truncate.
func DecodeAbility(descriptor string) (int, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(descriptor), &fields); err != nil {
		return 0, err
	}
	raw, ok := fields[AbilityKey]
	if !ok {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	if f <= 0 || math.IsNaN(f) {
		return 0, nil
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(f), nil
}

// EncodeAbility returns the canonical descriptor for a rating
func EncodeAbility(n int) string {
	b, _ := json.Marshal(map[string]int{AbilityKey: max(n, 0)})
	return string(b)
}

// WithAbility rewrites the rating inside an existing descriptor and keeps
// every other key as-is. A descriptor that is not a JSON object is replaced
// by the canonical form.
func WithAbility(descriptor string, n int) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(descriptor), &fields); err != nil || fields == nil {
		return EncodeAbility(n)
	}
	raw, _ := json.Marshal(max(n, 0))
	fields[AbilityKey] = raw
	b, err := json.Marshal(fields)
	if err != nil {
		return EncodeAbility(n)
	}
	return string(b)
}
