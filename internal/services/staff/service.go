package staff

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/thenoetrevino/clubhouse/internal/database"
	"github.com/thenoetrevino/clubhouse/internal/events"
	"github.com/thenoetrevino/clubhouse/internal/models"
	"github.com/thenoetrevino/clubhouse/internal/validate"
)

// Service defines all staff-related business operations
type Service interface {
	// Read operations
	Get(ctx context.Context, id int) (*models.StaffRecord, error)

	// Write operations
	Update(ctx context.Context, id int, in Input) error
}

// Input is the raw text of a staff edit
type Input struct {
	Name    string `json:"name"`
	Ability string `json:"ability"`
	Fame    string `json:"fame"`
}

// InputFrom renders a stored staff member back into form text
func InputFrom(s *models.StaffRecord) Input {
	return Input{
		Name:    s.Name,
		Ability: strconv.Itoa(s.Ability()),
		Fame:    strconv.Itoa(s.Fame),
	}
}

// service implements Service interface
type service struct {
	repo        database.StaffRepository
	eventClient events.Publisher
}

// NewService creates a new staff service
func NewService(repo database.StaffRepository, eventClient events.Publisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// Get retrieves one staff member
func (s *service) Get(ctx context.Context, id int) (*models.StaffRecord, error) {
	if id <= 0 {
		return nil, ErrInvalidStaffID
	}
	return s.repo.StaffMember(ctx, id)
}

// Update validates the input, rewrites the rating inside the stored
// descriptor and persists name, descriptor and fame together.
func (s *service) Update(ctx context.Context, id int, in Input) error {
	if id <= 0 {
		return ErrInvalidStaffID
	}

	name, err := validate.RequiredString("name", in.Name)
	if err != nil {
		return err
	}
	ability, err := validate.NonNegativeInt("ability", in.Ability)
	if err != nil {
		return err
	}
	fame, err := validate.NonNegativeInt("fame", in.Fame)
	if err != nil {
		return err
	}

	current, err := s.repo.StaffMember(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load staff %d: %w", id, err)
	}
	descriptor := models.WithAbility(current.AbilityJSON, ability)

	if err := s.repo.UpdateStaff(ctx, id, name, descriptor, fame); err != nil {
		slog.Error("failed to update staff", "staff_id", id, "error", err)
		return fmt.Errorf("failed to update staff %d: %w", id, err)
	}

	slog.Info("staff updated", "staff_id", id, "ability", ability)
	events.Notify(s.eventClient, events.Event{Type: events.EventStaffUpdated, RecordID: id})
	return nil
}
