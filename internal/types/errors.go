package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the analysis pipeline.
var (
	// ErrNoData means the heuristics matched nothing. Shells render an
	// empty-state message for it, not an error.
	ErrNoData = errors.New("no data found")

	// ErrParseSkipped marks a single field whose numeric pattern did not
	// match. It never escapes the extractor.
	ErrParseSkipped = errors.New("field parse skipped")

	// ErrInvalidSelection is wrapped by InvalidSelectionError.
	ErrInvalidSelection = errors.New("invalid analyzer selection")
)

// FetchError wraps errors that occur during fetching.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// InvalidSelectionError is returned when an analyzer name is not registered.
type InvalidSelectionError struct {
	Name string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("unknown analyzer %q", e.Name)
}

func (e *InvalidSelectionError) Unwrap() error { return ErrInvalidSelection }

// IsNoData reports whether err signals an empty result rather than a failure.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}

// PipelineError wraps errors raised by a product middleware.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error at stage %q: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
