// Package roster filters and ranks the in-memory team and staff lists
package roster

import (
	"cmp"
	"slices"
	"strings"

	"github.com/thenoetrevino/clubhouse/internal/models"
)

// Search returns the teams whose search key contains term, ignoring case.
// An empty term returns teams unchanged. Order is always preserved.
func Search(teams []*models.TeamRecord, term string) []*models.TeamRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return teams
	}

	matched := make([]*models.TeamRecord, 0, len(teams))
	for _, t := range teams {
		if strings.Contains(strings.ToLower(t.SearchKey()), term) {
			matched = append(matched, t)
		}
	}
	return matched
}

// FindTeam looks a team up by ID
func FindTeam(teams []*models.TeamRecord, id int) (*models.TeamRecord, bool) {
	i := slices.IndexFunc(teams, func(t *models.TeamRecord) bool { return t.ID == id })
	if i < 0 {
		return nil, false
	}
	return teams[i], true
}

// FindStaff looks a staff member up by ID
func FindStaff(staff []*models.StaffRecord, id int) (*models.StaffRecord, bool) {
	i := slices.IndexFunc(staff, func(s *models.StaffRecord) bool { return s.ID == id })
	if i < 0 {
		return nil, false
	}
	return staff[i], true
}

// StaffForTeam returns the team's staff, best ability first. Ties keep load order.
func StaffForTeam(staff []*models.StaffRecord, teamID int) []*models.StaffRecord {
	members := make([]*models.StaffRecord, 0)
	for _, s := range staff {
		if s.EmployedBy(teamID) {
			members = append(members, s)
		}
	}

	slices.SortStableFunc(members, func(a, b *models.StaffRecord) int {
		return cmp.Compare(b.Ability(), a.Ability())
	})
	return members
}

// SearchStaff matches staff names case-insensitively. Empty term returns staff unchanged.
func SearchStaff(staff []*models.StaffRecord, term string) []*models.StaffRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return staff
	}

	matched := make([]*models.StaffRecord, 0, len(staff))
	for _, s := range staff {
		if strings.Contains(strings.ToLower(s.Name), term) {
			matched = append(matched, s)
		}
	}
	return matched
}

// Ability bands used when rendering staff lists
const (
	TierHigh = "high"
	TierMid  = "mid"
)

// AbilityTier buckets a rating: 80 and up is high, 60 and up is mid.
func AbilityTier(ability int) string {
	switch {
	case ability >= 80:
		return TierHigh
	case ability >= 60:
		return TierMid
	default:
		return ""
	}
}
