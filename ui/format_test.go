package ui

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 4, 0, 0, time.UTC)

	cases := []struct {
		dateFormat string
		timeFormat string
		want       string
	}{
		{"MM/DD/YYYY", "12h", "03/14/2026 3:04 PM"},
		{"DD/MM/YYYY", "12h", "14/03/2026 3:04 PM"},
		{"YYYY-MM-DD", "24h", "2026-03-14 15:04"},
		{"MM/DD/YYYY", "24h", "03/14/2026 15:04"},
		{"bogus", "bogus", "03/14/2026 3:04 PM"}, // unknown formats fall back
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatTimestamp(ts, tc.dateFormat, tc.timeFormat))
	}
}

func TestFormatTimestampMorning(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "03/14/2026 9:05 AM", FormatTimestamp(ts, "MM/DD/YYYY", "12h"))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0xE3, G: 0xF2, B: 0xFD, A: 0xff}, ParseHexColor("#E3F2FD"))
	assert.Equal(t, color.NRGBA{A: 0xff}, ParseHexColor("#000000"))

	// Bad values fall back to black.
	assert.Equal(t, color.Black, ParseHexColor("blue"))
	assert.Equal(t, color.Black, ParseHexColor("#zzzzzz"))
	assert.Equal(t, color.Black, ParseHexColor(""))
}
