package domain

import "errors"

// Domain errors.
var (
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrInvalidStatusTag   = errors.New("invalid status tag")
	ErrItemNotFound       = errors.New("item not found")
	ErrAlreadyInitialized = errors.New("centre directory already exists")
	ErrNoHomeDir          = errors.New("could not determine home directory")
	ErrInvalidMode        = errors.New("invalid mode")
	ErrInvalidDate        = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrEmptyJournalEntry  = errors.New("journal entry cannot be empty")
)
