package checkout

import (
	"errors"
	"fmt"
)

var ErrEmptyCart = errors.New("cannot check out an empty cart")

// ValidationError reports a missing or malformed submission field.
// Nothing is dispatched to a gateway while one of these is pending.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid checkout field %q: %s", e.Field, e.Message)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "required"}
}
