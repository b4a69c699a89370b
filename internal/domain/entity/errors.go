package entity

import "errors"

var (
	// ErrPrecondition means an operation needs a session that does not exist.
	ErrPrecondition = errors.New("browser not initialized, call initialize_browser first")
	// ErrStartup means every launch profile failed.
	ErrStartup = errors.New("browser initialization failed")

	ErrIndexNotFound = errors.New("element index not found")
	ErrStaleElement  = errors.New("element not found anymore")
	ErrExtraction    = errors.New("element extraction failed")
	ErrNotFound      = errors.New("not found")
)
