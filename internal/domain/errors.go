package domain

import "errors"

var (
	// ErrValidation signals a document that violates its structural schema.
	ErrValidation = errors.New("invalid document")
	// ErrAlreadyExists signals a duplicate logical id on ingestion.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotFound signals a missing document or a dangling course reference.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest signals a search request with no usable parameters.
	ErrBadRequest = errors.New("bad request")
)
