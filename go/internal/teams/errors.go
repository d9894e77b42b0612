package teams

import (
	"errors"
	"fmt"
)

// ErrTeamNotFound is returned when a team does not exist or is not owned by the caller
var ErrTeamNotFound = errors.New("team not found")

// ValidationError reports invalid input on a team request
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
