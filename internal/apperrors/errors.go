// Package apperrors holds the error kinds shared by the completion client,
// the chat gateway and the conversation handlers.
package apperrors

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// TransportError is a network or timeout failure talking to an external API.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MaxBodyRunes bounds the response body kept in an UpstreamError.
const MaxBodyRunes = 300

// UpstreamError is a non-success response from an external API. Body is
// expected to be cut with Truncate where the error is built.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

// ConfigurationError reports a setting that is missing at the point of use.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Setting)
}

// UserStateError is returned when an action needs a draft or a generated post
// that the user does not have yet.
type UserStateError struct {
	Reason string
}

func (e *UserStateError) Error() string {
	return e.Reason
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsUserState(err error) bool {
	var target *UserStateError
	return errors.As(err, &target)
}
