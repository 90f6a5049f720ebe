package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrBoardInUse is returned when deleting a board a display still shows
	ErrBoardInUse = errors.New("board is assigned to a display")

	// ErrDuplicateStorageID is returned when a blob already has a metadata row
	ErrDuplicateStorageID = errors.New("file metadata already exists for storage id")
)
