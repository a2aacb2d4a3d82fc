// Package errs defines the error taxonomy shared by all handlers:
// validation failures, missing (or not-owned) entities, and failures of
// external collaborators such as the database or the metadata fetcher.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed input, naming the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a missing entity. It is also used when the entity
// exists but belongs to another user, so callers cannot probe ownership.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// DependencyError wraps a failure of an external collaborator.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// HTTP maps an error to a status code and a client-safe message.
// DependencyError details stay out of the response body.
func HTTP(err error) (int, string) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return http.StatusNotFound, nfe.Error()
	}
	var de *DependencyError
	if errors.As(err, &de) {
		return http.StatusBadGateway, "Service temporarily unavailable"
	}
	return http.StatusInternalServerError, "Internal server error"
}
