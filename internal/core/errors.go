package core

import "errors"

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrQueryDisabled is returned by LoadQuery when no database is configured.
	ErrQueryDisabled = errors.New("query source disabled")

	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoFile is returned when an upload carries no data and no name.
	ErrNoFile = errors.New("no file provided")
)
