package staff

import (
	"fmt"

	"github.com/thenoetrevino/clubhouse/internal/models"
)

// Staff-related errors
var (
	// Validation errors
	ErrInvalidStaffID = fmt.Errorf("invalid staff ID: %w", models.ErrValidation)
)
