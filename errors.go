package globe

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyActivated is returned by a second call to Activate.
	ErrAlreadyActivated = errors.New("globe: already activated")

	// ErrDeactivated is returned by Activate after Deactivate.
	ErrDeactivated = errors.New("globe: deactivated")
)

// FetchError reports a failed asset fetch.
type FetchError struct {
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("globe: fetch %s: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
