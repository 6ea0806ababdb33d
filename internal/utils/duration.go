package utils

import "fmt"

// Second-based thresholds for FormatDuration. The week/month boundary is
// roughly a quarter of a year; months are counted in 2628000s (30.4 days).
const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerWeek   = 604800
	weeksCutoff      = 7889231
	secondsPerMonth  = 2628000
)

type durationUnit struct {
	short string
	long  string
}

var (
	unitSecond = durationUnit{"s", " second(s)"}
	unitMinute = durationUnit{"m", " minute(s)"}
	unitHour   = durationUnit{"h", " hour(s)"}
	unitDay    = durationUnit{"d", " day(s)"}
	unitWeek   = durationUnit{"w", " week(s)"}
	unitMonth  = durationUnit{"M", " month(s)"}
)

// FormatDuration renders elapsed milliseconds in the largest fitting unit,
// rounding down. With short set the unit is a single letter ("5m"),
// otherwise it is spelled out ("5 minute(s)"). Negative values render as 0.
func FormatDuration(ms int64, short bool) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000

	var value int64
	var unit durationUnit
	switch {
	case secs < secondsPerMinute:
		value, unit = secs, unitSecond
	case secs < secondsPerHour:
		value, unit = secs/secondsPerMinute, unitMinute
	case secs < secondsPerDay:
		value, unit = secs/secondsPerHour, unitHour
	case secs < secondsPerWeek:
		value, unit = secs/secondsPerDay, unitDay
	case secs < weeksCutoff:
		value, unit = secs/secondsPerWeek, unitWeek
	default:
		value, unit = secs/secondsPerMonth, unitMonth
	}

	if short {
		return fmt.Sprintf("%d%s", value, unit.short)
	}
	return fmt.Sprintf("%d%s", value, unit.long)
}
