package sweph

import (
	"context"
	"time"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

// JulDay converts a calendar date and fractional hour to a Julian day.
func (s *SwissEph) JulDay(ctx context.Context, year, month, day int, hour float64, cal swisseph.Calendar) (float64, error) {
	c := s.begin("swe_julday")
	defer c.end()

	jd := c.f64(ctx,
		transcoder.I32(int32(year)), transcoder.I32(int32(month)), transcoder.I32(int32(day)),
		transcoder.F64(hour), transcoder.I32(int32(cal)))
	return jd, c.err
}

// RevJul converts a Julian day back to a calendar date.
func (s *SwissEph) RevJul(ctx context.Context, jd float64, cal swisseph.Calendar) (Date, error) {
	c := s.begin("swe_revjul")
	defer c.end()

	ymd := c.i32s(3)
	hour := c.f64s(1)
	c.invoke(ctx, transcoder.F64(jd), transcoder.I32(int32(cal)),
		transcoder.Ptr(ymd), transcoder.Ptr(ymd+4), transcoder.Ptr(ymd+8), transcoder.Ptr(hour))

	parts := c.readI32s(ymd, 3)
	h := c.readF64(hour)
	if c.err != nil {
		return Date{}, c.err
	}
	return Date{Year: int(parts[0]), Month: int(parts[1]), Day: int(parts[2]), Hour: h}, nil
}

// DateConversion validates a calendar date and converts it to a Julian
// day. An impossible date, such as 30 February, is a native error.
func (s *SwissEph) DateConversion(ctx context.Context, year, month, day int, hour float64, cal swisseph.Calendar) (float64, error) {
	c := s.begin("swe_date_conversion")
	defer c.end()

	calChar := byte('g')
	if cal == swisseph.JulCal {
		calChar = 'j'
	}
	tjd := c.f64s(1)
	rc := c.i32(ctx,
		transcoder.I32(int32(year)), transcoder.I32(int32(month)), transcoder.I32(int32(day)),
		transcoder.F64(hour), transcoder.I32(int32(calChar)), transcoder.Ptr(tjd))
	c.status(rc)
	return c.readF64(tjd), c.err
}

// UTCToJD converts a UTC instant to Julian days in both ET and UT1,
// accounting for leap seconds.
func (s *SwissEph) UTCToJD(ctx context.Context, t DateTime, cal swisseph.Calendar) (JDPair, error) {
	c := s.begin("swe_utc_to_jd")
	defer c.end()

	dret := c.f64s(2)
	serr := c.errBuf()
	rc := c.i32(ctx,
		transcoder.I32(int32(t.Year)), transcoder.I32(int32(t.Month)), transcoder.I32(int32(t.Day)),
		transcoder.I32(int32(t.Hour)), transcoder.I32(int32(t.Minute)), transcoder.F64(t.Second),
		transcoder.I32(int32(cal)), transcoder.Ptr(dret), transcoder.Ptr(serr))
	c.status(rc)

	v := c.readF64s(dret, 2)
	if c.err != nil {
		return JDPair{}, c.err
	}
	return JDPair{ET: v[0], UT: v[1]}, nil
}

// JDETToUTC converts an ephemeris-time Julian day to UTC.
func (s *SwissEph) JDETToUTC(ctx context.Context, jd float64, cal swisseph.Calendar) (DateTime, error) {
	return s.jdToUTC(ctx, "swe_jdet_to_utc", jd, cal)
}

// JDUT1ToUTC converts a UT1 Julian day to UTC.
func (s *SwissEph) JDUT1ToUTC(ctx context.Context, jd float64, cal swisseph.Calendar) (DateTime, error) {
	return s.jdToUTC(ctx, "swe_jdut1_to_utc", jd, cal)
}

func (s *SwissEph) jdToUTC(ctx context.Context, name string, jd float64, cal swisseph.Calendar) (DateTime, error) {
	c := s.begin(name)
	defer c.end()

	parts := c.i32s(5)
	sec := c.f64s(1)
	c.invoke(ctx, transcoder.F64(jd), transcoder.I32(int32(cal)),
		transcoder.Ptr(parts), transcoder.Ptr(parts+4), transcoder.Ptr(parts+8),
		transcoder.Ptr(parts+12), transcoder.Ptr(parts+16), transcoder.Ptr(sec))
	return c.readDateTime(parts, sec)
}

// UTCTimeZone converts local time at tz hours east of Greenwich to UTC.
// Pass -tz to convert UTC to local time.
func (s *SwissEph) UTCTimeZone(ctx context.Context, t DateTime, tz float64) (DateTime, error) {
	c := s.begin("swe_utc_time_zone")
	defer c.end()

	parts := c.i32s(5)
	sec := c.f64s(1)
	c.invoke(ctx,
		transcoder.I32(int32(t.Year)), transcoder.I32(int32(t.Month)), transcoder.I32(int32(t.Day)),
		transcoder.I32(int32(t.Hour)), transcoder.I32(int32(t.Minute)), transcoder.F64(t.Second),
		transcoder.F64(tz),
		transcoder.Ptr(parts), transcoder.Ptr(parts+4), transcoder.Ptr(parts+8),
		transcoder.Ptr(parts+12), transcoder.Ptr(parts+16), transcoder.Ptr(sec))
	return c.readDateTime(parts, sec)
}

func (c *call) readDateTime(parts, sec uint32) (DateTime, error) {
	v := c.readI32s(parts, 5)
	s := c.readF64(sec)
	if c.err != nil {
		return DateTime{}, c.err
	}
	return DateTime{
		Year:   int(v[0]),
		Month:  int(v[1]),
		Day:    int(v[2]),
		Hour:   int(v[3]),
		Minute: int(v[4]),
		Second: s,
	}, nil
}

// DayOfWeek returns the weekday of a Julian day.
func (s *SwissEph) DayOfWeek(ctx context.Context, jd float64) (time.Weekday, error) {
	c := s.begin("swe_day_of_week")
	defer c.end()

	// the library counts from Monday = 0
	d := c.i32(ctx, transcoder.F64(jd))
	if c.err != nil {
		return 0, c.err
	}
	return time.Weekday((d + 1) % 7), nil
}

// DeltaT returns ET - UT in days.
func (s *SwissEph) DeltaT(ctx context.Context, jd float64) (float64, error) {
	c := s.begin("swe_deltat")
	defer c.end()

	return c.f64(ctx, transcoder.F64(jd)), c.err
}

// TimeEqu returns the equation of time in days.
func (s *SwissEph) TimeEqu(ctx context.Context, jd float64) (float64, error) {
	c := s.begin("swe_time_equ")
	defer c.end()

	te := c.f64s(1)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jd), transcoder.Ptr(te), transcoder.Ptr(serr))
	c.status(rc)
	return c.readF64(te), c.err
}

// SidTime returns Greenwich apparent sidereal time in hours.
func (s *SwissEph) SidTime(ctx context.Context, jdUT float64) (float64, error) {
	c := s.begin("swe_sidtime")
	defer c.end()

	return c.f64(ctx, transcoder.F64(jdUT)), c.err
}

// SidTime0 returns sidereal time for a given obliquity and nutation.
func (s *SwissEph) SidTime0(ctx context.Context, jdUT, eps, nut float64) (float64, error) {
	c := s.begin("swe_sidtime0")
	defer c.end()

	return c.f64(ctx, transcoder.F64(jdUT), transcoder.F64(eps), transcoder.F64(nut)), c.err
}
