package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)

	cases := map[string]string{
		"storage form":   "2023-01-15",
		"padded":         "  2023-01-15 ",
		"rfc3339":        "2023-01-15T18:30:00Z",
		"rfc3339 offset": "2023-01-15T08:00:00+02:00",
		"display form":   "Sun Jan 15 2023",
		"long form":      "January 15, 2023",
		"slashes":        "2023/01/15",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseDate(raw)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParseDate_OffsetCrossesDay(t *testing.T) {
	got, err := ParseDate("2023-01-15T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-16", FormatStorageDate(got))
}

func TestParseDate_Invalid(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "2023-13-01", "2023-02-30", "15/01/2023"} {
		_, err := ParseDate(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, raw)
	}
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "Sun Jan 15 2023", DisplayDate("2023-01-15"))
	assert.Equal(t, "Wed Mar 01 2023", DisplayDate("2023-03-01"))
	assert.Equal(t, "garbage", DisplayDate("garbage"))
}

func TestStorageRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2023-01-15")
	require.NoError(t, err)

	stored := FormatStorageDate(parsed)
	assert.Equal(t, "2023-01-15", stored)
	assert.Equal(t, "Sun Jan 15 2023", DisplayDate(stored))
}
