package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestKindsSurviveWrapping(t *testing.T) {
	transport := &TransportError{Op: "completion", Err: context.DeadlineExceeded}
	upstream := &UpstreamError{Service: "completion", StatusCode: 500, Body: "boom"}
	cfg := &ConfigurationError{Setting: "CHANNEL_ID"}
	state := &UserStateError{Reason: "no draft"}

	wrap := func(err error) error { return fmt.Errorf("autopost: %w", err) }

	if !IsTransport(wrap(transport)) {
		t.Error("Expected wrapped TransportError to be detected")
	}
	if !errors.Is(wrap(transport), context.DeadlineExceeded) {
		t.Error("Expected TransportError to unwrap to its cause")
	}
	if !IsUpstream(wrap(upstream)) {
		t.Error("Expected wrapped UpstreamError to be detected")
	}
	if !IsConfiguration(wrap(cfg)) {
		t.Error("Expected wrapped ConfigurationError to be detected")
	}
	if !IsUserState(wrap(state)) {
		t.Error("Expected wrapped UserStateError to be detected")
	}
	if IsUpstream(transport) || IsTransport(upstream) || IsConfiguration(state) {
		t.Error("Kinds must not be confused with each other")
	}
}

func TestMessages(t *testing.T) {
	upstream := &UpstreamError{Service: "completion", StatusCode: 429, Body: "quota"}
	if got := upstream.Error(); !strings.Contains(got, "429") || !strings.Contains(got, "quota") {
		t.Errorf("UpstreamError message %q should carry status and body", got)
	}
	cfg := &ConfigurationError{Setting: "CHANNEL_ID"}
	if got := cfg.Error(); got != "CHANNEL_ID is not configured" {
		t.Errorf("Unexpected ConfigurationError message %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "short", n: 10, want: "short"},
		{in: "exactly", n: 7, want: "exactly"},
		{in: "abcdef", n: 3, want: "abc..."},
		{in: "ошибка шлюза", n: 6, want: "ошибка..."},
		{in: "", n: 0, want: ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("Truncate(%q, %d) cut a rune in half", tt.in, tt.n)
		}
	}
}
