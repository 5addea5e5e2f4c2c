package level

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable marks an attempt whose point of interest cannot be
	// reached from the player start.
	ErrUnreachable = errors.New("point of interest unreachable")

	// ErrGenerationExhausted is matched by ExhaustedError.
	ErrGenerationExhausted = errors.New("generation exhausted")
)

// ExhaustedError is returned when a level could not be generated within
// the attempt bound.
type ExhaustedError struct {
	Level    int
	Attempts int
	Last     error // Failure of the final attempt
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("level %d: %v after %d attempts: %v", e.Level, ErrGenerationExhausted, e.Attempts, e.Last)
}

// Unwrap exposes both ErrGenerationExhausted and the final attempt failure.
func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrGenerationExhausted, e.Last}
}
