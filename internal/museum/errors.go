package museum

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnknownSource signals a caller/config mistake, never a missing record.
	ErrUnknownSource = errors.New("unknown museum source")
	// ErrAllSourcesFailed is returned by the Aggregator only when no source
	// produced a result.
	ErrAllSourcesFailed = errors.New("all museum sources failed")
)

// UnknownSourceError names the source string that matched no fetcher.
type UnknownSourceError struct {
	Source string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown museum source %q", e.Source)
}

func (e *UnknownSourceError) Is(target error) bool { return target == ErrUnknownSource }

// StatusError is a non-2xx answer from a museum API.
type StatusError struct {
	Source     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Source, e.StatusCode, body)
}

// Transient reports whether retrying the same request may succeed.
func (e *StatusError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Definitive reports whether the record is known to be unavailable.
func (e *StatusError) Definitive() bool {
	switch e.StatusCode {
	case http.StatusNotFound, http.StatusForbidden, http.StatusGone:
		return true
	}
	return false
}
