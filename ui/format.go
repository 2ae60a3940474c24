package ui

import (
	"image/color"
	"strconv"
	"strings"
	"time"
)

// FormatDate renders the date part of a timestamp according to the
// user's date format setting.
func FormatDate(t time.Time, dateFormat string) string {
	switch dateFormat {
	case "DD/MM/YYYY":
		return t.Format("02/01/2006")
	case "YYYY-MM-DD":
		return t.Format("2006-01-02")
	default: // MM/DD/YYYY
		return t.Format("01/02/2006")
	}
}

// FormatTimestamp renders a message timestamp according to the user's
// date and time format settings.
func FormatTimestamp(t time.Time, dateFormat, timeFormat string) string {
	datePart := FormatDate(t, dateFormat)

	var timePart string
	if timeFormat == "24h" {
		timePart = t.Format("15:04")
	} else {
		timePart = t.Format("3:04 PM")
	}

	return datePart + " " + timePart
}

// SameDay reports whether two timestamps fall on the same calendar day.
// Date separators in the message list are drawn when it returns false.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseHexColor converts a "#RRGGBB" settings value into a color. An
// unparseable value falls back to black so a bad saved document never
// breaks rendering.
func ParseHexColor(s string) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}
