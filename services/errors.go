package services

import "errors"

// Common service-level errors
var (
	// Note errors
	ErrNoteNotFound = errors.New("note not found")

	// Tag errors
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag already exists")
	ErrTagAlreadyAttached = errors.New("tag already attached to note")
)
