package domain

import "errors"

var (
	// Submission errors
	ErrValidation = errors.New("invalid transfer input")
	ErrSubmission = errors.New("transfer submission rejected")

	// History errors
	ErrFetch = errors.New("history fetch failed")

	// Store errors
	ErrDuplicateKey = errors.New("duplicate transaction id")

	// Session errors
	ErrNoSession = errors.New("no authenticated session")
)
