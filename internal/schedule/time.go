package schedule

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"
)

const millisPerHour = int64(time.Hour / time.Millisecond)

// HourIndex converts a wall-clock time to the integer hour index used by
// all scheduling arithmetic.
func HourIndex(t time.Time) int64 {
	ms := t.UnixMilli()
	idx := ms / millisPerHour
	if ms%millisPerHour != 0 && ms < 0 {
		idx-- // floor, not truncation, before the epoch
	}
	return idx
}

// Describe renders a number of hours as "5 hours" or "5 days and 16 hours".
func Describe(hours int64) string {
	if hours < 24 {
		return english.Plural(int(hours), "hour", "")
	}
	days, rest := hours/24, hours%24
	var b strings.Builder
	b.WriteString(english.Plural(int(days), "day", ""))
	if rest > 0 {
		b.WriteString(" and ")
		b.WriteString(english.Plural(int(rest), "hour", ""))
	}
	return b.String()
}
