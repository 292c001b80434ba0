package suggest

import "errors"

var (
	ErrCollaboratorUnavailable = errors.New("move suggestion backend unavailable")
	ErrSchemaValidation        = errors.New("move suggestion does not match schema")
	ErrEmptyResult             = errors.New("move suggestion backend returned no output")
)
