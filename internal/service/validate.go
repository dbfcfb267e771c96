package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const maxTextLength = 4096

var phonePattern = regexp.MustCompile(`^\+[0-9]+$`)

// validatePayload enforces the webhook field contract and returns the
// parsed ts. The error names every offending field.
func validatePayload(p WebhookPayload) (time.Time, error) {
	var invalid []string

	if p.MessageID == "" {
		invalid = append(invalid, "message_id")
	}
	if !phonePattern.MatchString(p.From) {
		invalid = append(invalid, "from")
	}
	if !phonePattern.MatchString(p.To) {
		invalid = append(invalid, "to")
	}

	ts, err := parseUTCTimestamp(p.TS)
	if err != nil {
		invalid = append(invalid, "ts")
	}

	if p.Text != nil && utf8.RuneCountInString(*p.Text) > maxTextLength {
		invalid = append(invalid, "text")
	}

	if len(invalid) > 0 {
		return time.Time{}, fmt.Errorf("invalid fields: %s", strings.Join(invalid, ", "))
	}

	return ts, nil
}

// parseUTCTimestamp accepts only ISO-8601 instants carrying the UTC
// designator, e.g. 2025-06-01T12:00:00Z.
func parseUTCTimestamp(v string) (time.Time, error) {
	if !strings.HasSuffix(v, "Z") {
		return time.Time{}, errors.New("timestamp must end with the UTC designator")
	}

	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}

	return t.UTC(), nil
}
