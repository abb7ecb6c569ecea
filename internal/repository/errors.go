package repository

import "errors"

// Common repository errors
var (
	// ErrEmailAlreadyExists is returned when a user with the same email already exists
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrWorkspaceNotFound is returned when a referenced workspace does not exist
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrProjectNotFound is returned when a referenced project does not exist
	ErrProjectNotFound = errors.New("project not found")
)
