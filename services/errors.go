package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	// State errors: the operation targets a round that cannot accept it.
	ErrNoCurrentRound = errors.New("no current round exists")
	ErrRoundCompleted = errors.New("round is already completed")

	// Validation and business rule errors.
	ErrValidationFailed   = errors.New("validation failed")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrPlayerNameTooLong  = errors.New("player name is too long")

	// Entity errors (more context than the repository-level not-found).
	ErrTableNotFound = errors.New("table not found in round")

	// Backup storage was not configured at startup.
	ErrBackupNotConfigured = errors.New("backup storage is not configured")
)
