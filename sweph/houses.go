package sweph

import (
	"context"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

// cusp arrays are indexed from 1; Gauquelin sectors need 37 slots
const (
	cuspSlots  = 37
	ascmcSlots = 10
)

// Houses computes house cusps and angles for a Julian day in UT.
func (s *SwissEph) Houses(ctx context.Context, jdUT, lat, lon float64, hsys swisseph.HouseSystem) (*Houses, error) {
	c := s.begin("swe_houses")
	defer c.end()

	cusps, ascmc := c.f64s(cuspSlots), c.f64s(ascmcSlots)
	rc := c.i32(ctx, transcoder.F64(jdUT), transcoder.F64(lat), transcoder.F64(lon),
		transcoder.I32(int32(hsys)), transcoder.Ptr(cusps), transcoder.Ptr(ascmc))
	c.status(rc)
	return c.houses(hsys, cusps, ascmc, 0, 0)
}

// HousesEx is Houses with calculation flags, e.g. FlagSidereal.
func (s *SwissEph) HousesEx(ctx context.Context, jdUT float64, flags swisseph.CalcFlag, lat, lon float64, hsys swisseph.HouseSystem) (*Houses, error) {
	c := s.begin("swe_houses_ex")
	defer c.end()

	cusps, ascmc := c.f64s(cuspSlots), c.f64s(ascmcSlots)
	rc := c.i32(ctx, transcoder.F64(jdUT), transcoder.I32(int32(flags)), transcoder.F64(lat), transcoder.F64(lon),
		transcoder.I32(int32(hsys)), transcoder.Ptr(cusps), transcoder.Ptr(ascmc))
	c.status(rc)
	return c.houses(hsys, cusps, ascmc, 0, 0)
}

// HousesEx2 is HousesEx that also returns the speeds of cusps and angles.
func (s *SwissEph) HousesEx2(ctx context.Context, jdUT float64, flags swisseph.CalcFlag, lat, lon float64, hsys swisseph.HouseSystem) (*Houses, error) {
	c := s.begin("swe_houses_ex2")
	defer c.end()

	cusps, ascmc := c.f64s(cuspSlots), c.f64s(ascmcSlots)
	cuspSpeed, ascmcSpeed := c.f64s(cuspSlots), c.f64s(ascmcSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdUT), transcoder.I32(int32(flags)), transcoder.F64(lat), transcoder.F64(lon),
		transcoder.I32(int32(hsys)), transcoder.Ptr(cusps), transcoder.Ptr(ascmc),
		transcoder.Ptr(cuspSpeed), transcoder.Ptr(ascmcSpeed), transcoder.Ptr(serr))
	c.status(rc)
	return c.houses(hsys, cusps, ascmc, cuspSpeed, ascmcSpeed)
}

// HousesARMC computes houses from sidereal time (ARMC, degrees), latitude
// and obliquity, without a date.
func (s *SwissEph) HousesARMC(ctx context.Context, armc, lat, eps float64, hsys swisseph.HouseSystem) (*Houses, error) {
	c := s.begin("swe_houses_armc")
	defer c.end()

	cusps, ascmc := c.f64s(cuspSlots), c.f64s(ascmcSlots)
	rc := c.i32(ctx, transcoder.F64(armc), transcoder.F64(lat), transcoder.F64(eps),
		transcoder.I32(int32(hsys)), transcoder.Ptr(cusps), transcoder.Ptr(ascmc))
	c.status(rc)
	return c.houses(hsys, cusps, ascmc, 0, 0)
}

// HousesARMCEx2 is HousesARMC with speeds.
func (s *SwissEph) HousesARMCEx2(ctx context.Context, armc, lat, eps float64, hsys swisseph.HouseSystem) (*Houses, error) {
	c := s.begin("swe_houses_armc_ex2")
	defer c.end()

	cusps, ascmc := c.f64s(cuspSlots), c.f64s(ascmcSlots)
	cuspSpeed, ascmcSpeed := c.f64s(cuspSlots), c.f64s(ascmcSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(armc), transcoder.F64(lat), transcoder.F64(eps),
		transcoder.I32(int32(hsys)), transcoder.Ptr(cusps), transcoder.Ptr(ascmc),
		transcoder.Ptr(cuspSpeed), transcoder.Ptr(ascmcSpeed), transcoder.Ptr(serr))
	c.status(rc)
	return c.houses(hsys, cusps, ascmc, cuspSpeed, ascmcSpeed)
}

func (c *call) houses(hsys swisseph.HouseSystem, cusps, ascmc, cuspSpeed, ascmcSpeed uint32) (*Houses, error) {
	n := hsys.Cusps()
	cv := c.readF64s(cusps, n+1)
	av := c.readF64s(ascmc, swisseph.NAscMC)
	if c.err != nil {
		return nil, c.err
	}
	h := &Houses{
		System: hsys,
		Cusps:  cv[1:],
		Points: ascmcOf(av),
	}

	if cuspSpeed != 0 {
		sv := c.readF64s(cuspSpeed, n+1)
		pv := c.readF64s(ascmcSpeed, swisseph.NAscMC)
		if c.err != nil {
			return nil, c.err
		}
		pts := ascmcOf(pv)
		h.CuspSpeeds = sv[1:]
		h.PointSpeeds = &pts
	}
	return h, nil
}

// HousePos returns the house position of a point with ecliptic longitude
// and latitude, as a value in [1, 13) or [1, 37) for Gauquelin sectors.
func (s *SwissEph) HousePos(ctx context.Context, armc, geoLat, eps float64, hsys swisseph.HouseSystem, lon, lat float64) (float64, error) {
	c := s.begin("swe_house_pos")
	defer c.end()

	xpin := c.put(lon, lat)
	serr := c.errBuf()
	pos := c.f64(ctx, transcoder.F64(armc), transcoder.F64(geoLat), transcoder.F64(eps),
		transcoder.I32(int32(hsys)), transcoder.Ptr(xpin), transcoder.Ptr(serr))
	// failure is signalled by a zero position plus a diagnostic
	if c.err == nil && pos == 0 && c.message() != "" {
		c.status(-1)
	}
	return pos, c.err
}
