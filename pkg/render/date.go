package render

import (
	"strconv"
	"time"
)

var months = [12]string{
	"Jan.", "Feb.", "Mar.", "Apr.", "May", "Jun.",
	"Jul.", "Aug.", "Sep.", "Oct.", "Nov.", "Dec.",
}

// FormatDate formats t's calendar date as "Mon D", e.g. "Oct. 19" or "May 3".
// The date is taken in t's own location.
func FormatDate(t time.Time) string {
	return months[t.Month()-1] + " " + strconv.Itoa(t.Day())
}
