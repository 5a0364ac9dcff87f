package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	// StorageDateLayout is how exercise dates are persisted and compared.
	StorageDateLayout = "2006-01-02"
	// DisplayDateLayout renders a date for API responses, e.g. "Sun Jan 15 2023".
	DisplayDateLayout = "Mon Jan 02 2006"
)

var ErrInvalidDate = errors.New("invalid date")

// Layouts accepted from clients, tried in order.
var inputDateLayouts = []string{
	StorageDateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	DisplayDateLayout,
	"Mon Jan 2 2006",
	"January 2, 2006",
	"2006/01/02",
}

// ParseDate parses client supplied date input into a calendar day at UTC midnight.
// Timestamps carrying an offset are converted to UTC first.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range inputDateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return TruncateDay(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// TruncateDay drops the clock part of t, in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatStorageDate renders t as yyyy-mm-dd in UTC.
func FormatStorageDate(t time.Time) string {
	return t.UTC().Format(StorageDateLayout)
}

// DisplayDate converts a stored yyyy-mm-dd value to its human-readable form.
// Values that are not in storage form are returned unchanged.
func DisplayDate(stored string) string {
	t, err := time.Parse(StorageDateLayout, stored)
	if err != nil {
		return stored
	}
	return t.Format(DisplayDateLayout)
}
