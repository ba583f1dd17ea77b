package domain

import "errors"

// Sentinel errors shared by every layer. Repositories translate driver errors
// into these; usecases wrap them with context via fmt.Errorf("%w: ...").
var (
	// ErrNotFound indicates the target entity is missing or filtered out by status.
	ErrNotFound = errors.New("entity not found")
	// ErrAlreadyExists indicates an insert violated a uniqueness constraint.
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrUpdateFailed indicates a conditional update matched zero documents.
	ErrUpdateFailed = errors.New("update matched no documents")
	// ErrInvalidInput indicates the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrNotAllowed indicates the request is valid but not permitted (e.g. asking
	// an agent listing query for DELETE status).
	ErrNotAllowed = errors.New("request not allowed")
	// ErrInconsistentState indicates a statistics-propagation step could not find
	// the entity whose counter it was told to adjust. The join record and the
	// denormalized counter are out of sync and need reconciliation.
	ErrInconsistentState = errors.New("statistics out of sync with join records")
)
