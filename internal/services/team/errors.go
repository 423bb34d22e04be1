package team

import (
	"fmt"

	"github.com/thenoetrevino/clubhouse/internal/models"
)

// Team-related errors
var (
	// Validation errors
	ErrInvalidTeamID = fmt.Errorf("invalid team ID: %w", models.ErrValidation)
)
