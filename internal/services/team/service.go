package team

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/thenoetrevino/clubhouse/internal/database"
	"github.com/thenoetrevino/clubhouse/internal/events"
	"github.com/thenoetrevino/clubhouse/internal/models"
	"github.com/thenoetrevino/clubhouse/internal/validate"
)

// Service defines all team-related business operations
type Service interface {
	// Read operations
	Get(ctx context.Context, id int) (*models.TeamRecord, error)

	// Write operations
	Update(ctx context.Context, id int, in Input) error
}

// Input is the raw text of an edit form, before validation
type Input struct {
	Name       string `json:"name"`
	Wealth     string `json:"wealth"`
	FoundYear  string `json:"found_year"`
	Location   string `json:"location"`
	Supporters string `json:"supporters"`
	Stadium    string `json:"stadium"`
	Nickname   string `json:"nickname"`
}

// InputFrom renders a stored team back into form text
func InputFrom(t *models.TeamRecord) Input {
	return Input{
		Name:       t.Name,
		Wealth:     strconv.Itoa(t.Wealth),
		FoundYear:  strconv.Itoa(t.FoundYear),
		Location:   t.Location,
		Supporters: strconv.Itoa(t.SupporterCount),
		Stadium:    t.StadiumName,
		Nickname:   t.Nickname,
	}
}

// Parse validates every field and returns the update to persist.
// The first failing field is reported.
func (in Input) Parse() (database.TeamUpdate, error) {
	var u database.TeamUpdate
	var err error

	if u.Name, err = validate.RequiredString("name", in.Name); err != nil {
		return u, err
	}
	if u.Wealth, err = validate.NonNegativeInt("wealth", in.Wealth); err != nil {
		return u, err
	}
	if u.FoundYear, err = validate.Int("found_year", in.FoundYear); err != nil {
		return u, err
	}
	if u.SupporterCount, err = validate.NonNegativeInt("supporters", in.Supporters); err != nil {
		return u, err
	}
	u.Location = strings.TrimSpace(in.Location)
	u.StadiumName = strings.TrimSpace(in.Stadium)
	u.Nickname = strings.TrimSpace(in.Nickname)
	return u, nil
}

// service implements Service interface
type service struct {
	repo        database.TeamRepository
	eventClient events.Publisher
}

// NewService creates a new team service
func NewService(repo database.TeamRepository, eventClient events.Publisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// Get retrieves one team
func (s *service) Get(ctx context.Context, id int) (*models.TeamRecord, error) {
	if id <= 0 {
		return nil, ErrInvalidTeamID
	}
	return s.repo.Team(ctx, id)
}

// Update validates the input and then writes every editable column.
// Nothing is written when validation fails.
func (s *service) Update(ctx context.Context, id int, in Input) error {
	if id <= 0 {
		return ErrInvalidTeamID
	}

	u, err := in.Parse()
	if err != nil {
		slog.Debug("team edit rejected", "team_id", id, "error", err)
		return err
	}

	if err := s.repo.UpdateTeam(ctx, id, u); err != nil {
		slog.Error("failed to update team", "team_id", id, "error", err)
		return fmt.Errorf("failed to update team %d: %w", id, err)
	}

	slog.Info("team updated", "team_id", id)
	events.Notify(s.eventClient, events.Event{Type: events.EventTeamUpdated, RecordID: id})
	return nil
}
