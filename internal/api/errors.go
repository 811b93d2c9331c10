// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// FallbackMessage is shown when a failure carries no usable message.
const FallbackMessage = "Something went wrong. Please try again."

// TransportError means the request never produced a response: DNS
// failure, refused connection, cancelled context.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "api: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is a non-2xx response carrying a field error map
// ({message, errors: {field: [msg, ...]}}).
type ValidationError struct {
	Status  int
	Message string
	Errors  map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("api: validation failed (status %d): %s", e.Status, e.Message)
}

// APIError is any other non-2xx response. Message may be empty when the
// body was not a recognized failure shape.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed (status %d)", e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// decodeFailure maps a non-2xx response body onto ValidationError or
// APIError. Malformed bodies still yield a usable error value.
func decodeFailure(status int, body []byte) error {
	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	// Best effort; an undecodable body leaves both fields empty.
	_ = json.Unmarshal(body, &payload)

	if len(payload.Errors) > 0 {
		return &ValidationError{Status: status, Message: payload.Message, Errors: payload.Errors}
	}
	return &APIError{Status: status, Message: payload.Message}
}

// IsUnauthorized reports whether err is a 401 from the API. Protected
// views treat it as an expired session and redirect to login.
func IsUnauthorized(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Status == http.StatusUnauthorized
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status == http.StatusUnauthorized
	}
	return false
}

// FieldError returns the first validation message recorded for the named
// field, or an empty string so the caller can fall back to a generic
// handler. Pure and total: any err, including nil, yields a result.
func FieldError(err error, field string) string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return ""
	}
	if msgs := ve.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ErrorMessage reduces any failure to a single human-readable string:
// the first field error if a map is present, else the response message,
// else FallbackMessage. Field names are sorted so "first" is
// deterministic.
func ErrorMessage(err error) string {
	if err == nil {
		return FallbackMessage
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve.Errors))
		for f := range ve.Errors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			if msgs := ve.Errors[f]; len(msgs) > 0 {
				return msgs[0]
			}
		}
		if ve.Message != "" {
			return ve.Message
		}
		return FallbackMessage
	}

	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}

	return FallbackMessage
}
