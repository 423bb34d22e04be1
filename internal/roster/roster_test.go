package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func intPtr(v int) *int { return &v }

func staffMember(id int, name string, teamID *int, ability string) *models.StaffRecord {
	return &models.StaffRecord{ID: id, Name: name, AbilityJSON: ability, TeamID: teamID}
}

func ids[T interface{ GetID() int }](records []T) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.GetID())
	}
	return out
}

func sampleTeams() []*models.TeamRecord {
	return []*models.TeamRecord{
		{ID: 3, Name: "Athletic Club", Location: "Bilbao", StadiumName: "San Mames", LeagueID: 2},
		{ID: 1, Name: "Red FC", Wealth: 100, FoundYear: 1899, Location: "Liverpool", LeagueID: 1},
		{ID: 12, Name: "Rovers", Nickname: "The Gas", Location: "Bristol", LeagueID: 1},
		{ID: 7, Name: "United", Location: "Redditch", LeagueID: 3},
	}
}

// ============================================================================
// Search
// ============================================================================

func TestSearch_EmptyTermReturnsAllInOrder(t *testing.T) {
	teams := sampleTeams()

	assert.Equal(t, teams, Search(teams, ""))
	assert.Equal(t, teams, Search(teams, "   "))
}

func TestSearch_Scenario(t *testing.T) {
	teams := []*models.TeamRecord{{ID: 1, Name: "Red FC", Wealth: 100, LeagueID: 1}}

	assert.Equal(t, []int{1}, ids(Search(teams, "red")))
	assert.Empty(t, Search(teams, "blue"))
}

func TestSearch_CaseInsensitiveAndOrderPreserving(t *testing.T) {
	teams := sampleTeams()

	got := Search(teams, "RED")

	// "Red FC" by name, "United" by location Redditch
	assert.Equal(t, []int{1, 7}, ids(got))
}

func TestSearch_MatchesAnyField(t *testing.T) {
	teams := sampleTeams()

	assert.Equal(t, []int{12}, ids(Search(teams, "the gas")))
	assert.Equal(t, []int{3}, ids(Search(teams, "mames")))
	assert.Equal(t, []int{1}, ids(Search(teams, "1899")))
}

func TestSearch_MatchesAcrossFieldBoundary(t *testing.T) {
	teams := []*models.TeamRecord{
		{ID: 1, Name: "2 Towers"},
		{ID: 12, Name: ""},
		{ID: 5, Name: "Five"},
	}

	// ID 1 followed by a name starting with "2" also matches "12".
	assert.Equal(t, []int{1, 12}, ids(Search(teams, "12")))
}

func TestSearch_PartitionProperty(t *testing.T) {
	teams := sampleTeams()

	for _, term := range []string{"r", "o", "1", "bil", "zzz", "c"} {
		got := Search(teams, term)
		included := map[int]bool{}
		for _, team := range got {
			included[team.ID] = true
		}

		for _, team := range teams {
			contains := strings.Contains(strings.ToLower(team.SearchKey()), strings.ToLower(term))
			assert.Equal(t, contains, included[team.ID], "term %q team %d", term, team.ID)
		}
	}
}

func TestFindTeam(t *testing.T) {
	teams := sampleTeams()

	team, ok := FindTeam(teams, 12)
	require.True(t, ok)
	assert.Equal(t, "Rovers", team.Name)

	_, ok = FindTeam(teams, 99)
	assert.False(t, ok)
}

// ============================================================================
// StaffForTeam
// ============================================================================

func TestStaffForTeam_Scenario(t *testing.T) {
	staff := []*models.StaffRecord{
		staffMember(1, "A", intPtr(1), `{"rawAbility":70}`),
		staffMember(2, "B", intPtr(1), `{"rawAbility":90}`),
	}

	assert.Equal(t, []int{2, 1}, ids(StaffForTeam(staff, 1)))
}

func TestStaffForTeam_FiltersAndSortsStable(t *testing.T) {
	staff := []*models.StaffRecord{
		staffMember(1, "Alan", intPtr(1), `{"rawAbility":60}`),
		staffMember(2, "Beth", intPtr(2), `{"rawAbility":99}`),
		staffMember(3, "Carl", intPtr(1), `{"rawAbility":80}`),
		staffMember(4, "Dina", nil, `{"rawAbility":95}`),
		staffMember(5, "Emil", intPtr(1), `{"rawAbility":60}`),
		staffMember(6, "Fay", intPtr(1), `not json`),
		staffMember(7, "Gus", intPtr(1), `{"rawAbility":80}`),
	}

	got := StaffForTeam(staff, 1)

	// 80s in load order, then 60s in load order, then the unreadable descriptor as 0.
	assert.Equal(t, []int{3, 7, 1, 5, 6}, ids(got))
}

func TestStaffForTeam_NoMembers(t *testing.T) {
	staff := []*models.StaffRecord{staffMember(1, "A", intPtr(2), `{}`)}

	got := StaffForTeam(staff, 1)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStaffForTeam_DoesNotReorderInput(t *testing.T) {
	staff := []*models.StaffRecord{
		staffMember(1, "A", intPtr(1), `{"rawAbility":10}`),
		staffMember(2, "B", intPtr(1), `{"rawAbility":20}`),
	}

	_ = StaffForTeam(staff, 1)
	assert.Equal(t, []int{1, 2}, ids(staff))
}

// ============================================================================
// SearchStaff / tiers
// ============================================================================

func TestSearchStaff(t *testing.T) {
	staff := []*models.StaffRecord{
		staffMember(1, "Jurgen Klopp", nil, `{}`),
		staffMember(2, "Pep", nil, `{}`),
		staffMember(3, "Jose", nil, `{}`),
	}

	assert.Equal(t, []int{1, 3}, ids(SearchStaff(staff, "j")))
	assert.Equal(t, []int{2}, ids(SearchStaff(staff, "PEP")))
	assert.Equal(t, []int{1, 2, 3}, ids(SearchStaff(staff, "")))
}

func TestAbilityTier(t *testing.T) {
	assert.Equal(t, TierHigh, AbilityTier(80))
	assert.Equal(t, TierMid, AbilityTier(79))
	assert.Equal(t, TierMid, AbilityTier(60))
	assert.Equal(t, "", AbilityTier(59))
}
