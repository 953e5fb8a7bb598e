package sweph

import (
	"time"

	"github.com/ncruces/julianday"
)

// JulianDay returns the Julian day of t on the UTC axis. It matches
// JulDay with GregCal for dates after 1582 and needs no loaded module.
func JulianDay(t time.Time) float64 {
	return julianday.Float(t.UTC())
}

// TimeOf converts a Julian day back to a UTC time, rounded to the
// microsecond, about the resolution a float64 Julian day carries.
func TimeOf(jd float64) time.Time {
	return julianday.FloatTime(jd).UTC().Round(time.Microsecond)
}

// DateTimeOf splits t, in UTC, into the fields UTCToJD takes.
func DateTimeOf(t time.Time) DateTime {
	t = t.UTC()
	return DateTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: float64(t.Second()) + float64(t.Nanosecond())/1e9,
	}
}

// Time converts d to a time.Time in UTC.
func (d DateTime) Time() time.Time {
	sec := int(d.Second)
	nsec := int((d.Second - float64(sec)) * 1e9)
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, sec, nsec, time.UTC)
}
