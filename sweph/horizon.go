package sweph

import (
	"context"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

// AzAlt converts ecliptic (Ecl2Hor) or equatorial (Equ2Hor) coordinates to
// azimuth and altitude. pressure in hPa, temperature in °C; pressure 0
// lets the library estimate it from the altitude.
func (s *SwissEph) AzAlt(ctx context.Context, jdUT float64, dir swisseph.CoordDirection, geo GeoPos, pressure, temperature, lon, lat float64) (*Horizontal, error) {
	c := s.begin("swe_azalt")
	defer c.end()

	geopos := c.put(geo.values()...)
	xin := c.put(lon, lat, 1)
	xaz := c.f64s(3)
	c.invoke(ctx, transcoder.F64(jdUT), transcoder.I32(int32(dir)), transcoder.Ptr(geopos),
		transcoder.F64(pressure), transcoder.F64(temperature), transcoder.Ptr(xin), transcoder.Ptr(xaz))

	v := c.readF64s(xaz, 3)
	if c.err != nil {
		return nil, c.err
	}
	return &Horizontal{Azimuth: v[0], TrueAltitude: v[1], ApparentAltitude: v[2]}, nil
}

// AzAltRev converts azimuth and true altitude back to ecliptic (Hor2Ecl)
// or equatorial (Hor2Equ) coordinates.
func (s *SwissEph) AzAltRev(ctx context.Context, jdUT float64, dir swisseph.CoordDirection, geo GeoPos, azimuth, altitude float64) (lon, lat float64, err error) {
	c := s.begin("swe_azalt_rev")
	defer c.end()

	geopos := c.put(geo.values()...)
	xin := c.put(azimuth, altitude)
	xout := c.f64s(3)
	c.invoke(ctx, transcoder.F64(jdUT), transcoder.I32(int32(dir)), transcoder.Ptr(geopos),
		transcoder.Ptr(xin), transcoder.Ptr(xout))

	v := c.readF64s(xout, 2)
	if c.err != nil {
		return 0, 0, c.err
	}
	return v[0], v[1], nil
}

// Refrac converts between true and apparent altitude.
func (s *SwissEph) Refrac(ctx context.Context, altitude, pressure, temperature float64, mode swisseph.RefracMode) (float64, error) {
	c := s.begin("swe_refrac")
	defer c.end()

	return c.f64(ctx, transcoder.F64(altitude), transcoder.F64(pressure), transcoder.F64(temperature),
		transcoder.I32(int32(mode))), c.err
}

// RefracExtended is Refrac for an observer above sea level, with the dip
// of the horizon and a lapse rate in K/m.
func (s *SwissEph) RefracExtended(ctx context.Context, altitude, geoAlt, pressure, temperature, lapseRate float64, mode swisseph.RefracMode) (*Refraction, error) {
	c := s.begin("swe_refrac_extended")
	defer c.end()

	dret := c.f64s(4)
	alt := c.f64(ctx, transcoder.F64(altitude), transcoder.F64(geoAlt), transcoder.F64(pressure),
		transcoder.F64(temperature), transcoder.F64(lapseRate), transcoder.I32(int32(mode)), transcoder.Ptr(dret))

	v := c.readF64s(dret, 4)
	if c.err != nil {
		return nil, c.err
	}
	return &Refraction{
		Altitude:         alt,
		TrueAltitude:     v[0],
		ApparentAltitude: v[1],
		Refraction:       v[2],
		Dip:              v[3],
	}, nil
}

// RiseTrans finds the next rise, set or meridian transit of a body or
// fixed star after jdUT. It returns nil for a circumpolar body that never
// rises or sets on that day.
func (s *SwissEph) RiseTrans(ctx context.Context, jdUT float64, body swisseph.Body, star string, epheFlags swisseph.CalcFlag, event swisseph.RiseFlag, geo GeoPos, pressure, temperature float64) (*RiseTransit, error) {
	c := s.begin("swe_rise_trans")
	defer c.end()

	sp := c.starArg(star)
	geopos := c.put(geo.values()...)
	tret := c.f64s(tretSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdUT), transcoder.I32(int32(body)), transcoder.Ptr(sp),
		transcoder.I32(int32(epheFlags)), transcoder.I32(int32(event)), transcoder.Ptr(geopos),
		transcoder.F64(pressure), transcoder.F64(temperature), transcoder.Ptr(tret), transcoder.Ptr(serr))
	return c.riseTransit(rc, tret, event)
}

// RiseTransTrueHor is RiseTrans against a local horizon at horizonHeight
// degrees.
func (s *SwissEph) RiseTransTrueHor(ctx context.Context, jdUT float64, body swisseph.Body, star string, epheFlags swisseph.CalcFlag, event swisseph.RiseFlag, geo GeoPos, pressure, temperature, horizonHeight float64) (*RiseTransit, error) {
	c := s.begin("swe_rise_trans_true_hor")
	defer c.end()

	sp := c.starArg(star)
	geopos := c.put(geo.values()...)
	tret := c.f64s(tretSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdUT), transcoder.I32(int32(body)), transcoder.Ptr(sp),
		transcoder.I32(int32(epheFlags)), transcoder.I32(int32(event)), transcoder.Ptr(geopos),
		transcoder.F64(pressure), transcoder.F64(temperature), transcoder.F64(horizonHeight),
		transcoder.Ptr(tret), transcoder.Ptr(serr))
	return c.riseTransit(rc, tret, event)
}

// starArg passes NULL for planets, which the rise exports expect.
func (c *call) starArg(star string) uint32 {
	if star == "" {
		return 0
	}
	return c.cbuf(star, swisseph.MaxStName)
}

// riseNever is returned when the body is circumpolar.
const riseNever = -2

func (c *call) riseTransit(rc int32, tret uint32, event swisseph.RiseFlag) (*RiseTransit, error) {
	if c.err == nil && rc == riseNever {
		c.noResult(rc)
		return nil, nil
	}
	c.status(rc)
	t := c.readF64(tret)
	if c.err != nil {
		return nil, c.err
	}
	return &RiseTransit{Time: t, Event: event}, nil
}
