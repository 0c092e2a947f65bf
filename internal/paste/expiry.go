package paste

import (
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerYear   = 365 * secondsPerDay
)

// FormatExpiry renders the remaining lifetime of a paste. Finer units are
// dropped once the lifetime is long: hours only below a week, minutes only
// below half a day.
func FormatExpiry(seconds int64) string {
	if seconds < 0 {
		return "This paste has been deleted!"
	}
	if seconds < secondsPerMinute {
		return "Will be deleted in less than a minute"
	}

	years := seconds / secondsPerYear
	days := (seconds % secondsPerYear) / secondsPerDay
	hours := (seconds % secondsPerDay) / secondsPerHour
	minutes := (seconds % secondsPerHour) / secondsPerMinute

	var b strings.Builder
	b.WriteString("Will be deleted in ")
	if years != 0 {
		writeUnit(&b, years, "year")
	}
	if days != 0 {
		writeUnit(&b, days, "day")
	}
	if hours != 0 && years == 0 && days < 7 {
		writeUnit(&b, hours, "hour")
	}
	if minutes != 0 && years == 0 && days == 0 && hours < 12 {
		writeUnit(&b, minutes, "minute")
	}
	return strings.TrimSuffix(b.String(), " ")
}

func writeUnit(b *strings.Builder, n int64, unit string) {
	b.WriteString(strconv.FormatInt(n, 10))
	b.WriteByte(' ')
	b.WriteString(unit)
	if n != 1 {
		b.WriteByte('s')
	}
	b.WriteByte(' ')
}

// ExpiryChoice is one entry of the expiry selector.
type ExpiryChoice struct {
	Label   string
	Seconds int64
}

// DefaultExpiry is the selector's initial value (30 days).
const DefaultExpiry int64 = 2592000

// ExpiryChoices lists the durations a new paste can be saved with.
var ExpiryChoices = []ExpiryChoice{
	{Label: "Delete in 5 minutes", Seconds: 300},
	{Label: "Delete in 1 hour", Seconds: 3600},
	{Label: "Delete in 1 day", Seconds: 86400},
	{Label: "Delete in 7 days", Seconds: 604800},
	{Label: "Delete in 30 days", Seconds: DefaultExpiry},
	{Label: "Delete in 1 year", Seconds: 31536000},
}

// ExpiryLabel returns the selector label for seconds, falling back to the
// formatted duration for values outside the choice list.
func ExpiryLabel(seconds int64) string {
	for _, c := range ExpiryChoices {
		if c.Seconds == seconds {
			return c.Label
		}
	}
	return strings.Replace(FormatExpiry(seconds), "Will be deleted", "Delete", 1)
}

// NextExpiry returns the choice following seconds, wrapping around. Unknown
// values restart at the first choice.
func NextExpiry(seconds int64) int64 {
	for i, c := range ExpiryChoices {
		if c.Seconds == seconds {
			return ExpiryChoices[(i+1)%len(ExpiryChoices)].Seconds
		}
	}
	return ExpiryChoices[0].Seconds
}

// ValidExpiry reports whether seconds is one of the selector choices.
func ValidExpiry(seconds int64) bool {
	for _, c := range ExpiryChoices {
		if c.Seconds == seconds {
			return true
		}
	}
	return false
}
