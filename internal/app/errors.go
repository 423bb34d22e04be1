package app

import "errors"

// Session errors
var (
	ErrNothingToExport = errors.New("no teams are loaded to export")
)
