package vanigo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vanigo/engine"
)

var (
	// ErrNoCandidate is returned when a run ends before any candidate was
	// committed.
	ErrNoCandidate = errors.New("no candidate found")
)

// ErrInvalidPrefix indicates a prefix no address can ever match.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidPrefix struct {
	Prefix string
	cause  error
}

func (e *ErrInvalidPrefix) Error() string {
	return fmt.Sprintf("invalid prefix: %q", e.Prefix)
}

func (e *ErrInvalidPrefix) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, engine.ErrNoCandidate) {
		return fmt.Errorf("%w: %w", ErrNoCandidate, err)
	}

	return err
}
