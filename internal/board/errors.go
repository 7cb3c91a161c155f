package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("invalid task")

	// ErrDuplicateID is returned when a task id is already in the collection.
	ErrDuplicateID = errors.New("duplicate task id")

	// ErrIndexOutOfRange is returned when a move names a source position
	// that does not exist in the category view.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidCategory is returned for a category outside the fixed three.
	ErrInvalidCategory = errors.New("invalid category")
)

// ValidationError lists the required fields that were missing on create.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrValidation, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
