package sweph

import (
	"context"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

const heliacalSlots = 50

// HeliacalUT finds the next heliacal event (first or last visibility,
// acronychal rising or setting) of a planet or star after jdStart.
func (s *SwissEph) HeliacalUT(ctx context.Context, jdStart float64, geo GeoPos, atm Atmosphere, obs Observer, object string, event swisseph.HeliacalEvent, flags swisseph.HeliacalFlag) (*HeliacalTimes, error) {
	c := s.begin("swe_heliacal_ut")
	defer c.end()

	dret := c.heliacal(ctx, jdStart, geo, atm, obs, object, event, flags)
	v := c.readF64s(dret, 3)
	if c.err != nil {
		return nil, c.err
	}
	return &HeliacalTimes{Start: v[0], Optimum: v[1], End: v[2]}, nil
}

// HeliacalPhenoUT returns the visibility details of a heliacal event at a
// given moment.
func (s *SwissEph) HeliacalPhenoUT(ctx context.Context, jdUT float64, geo GeoPos, atm Atmosphere, obs Observer, object string, event swisseph.HeliacalEvent, flags swisseph.HeliacalFlag) (*HeliacalPheno, error) {
	c := s.begin("swe_heliacal_pheno_ut")
	defer c.end()

	dret := c.heliacal(ctx, jdUT, geo, atm, obs, object, event, flags)
	v := c.readF64s(dret, 28)
	if c.err != nil {
		return nil, c.err
	}
	p := heliacalPhenoOf(v)
	return &p, nil
}

// visBelowHorizon is returned when the object is below the horizon.
const visBelowHorizon = -2

// VisLimitMag returns the limiting visual magnitude for seeing an object.
// It returns nil when the object is below the horizon.
func (s *SwissEph) VisLimitMag(ctx context.Context, jdUT float64, geo GeoPos, atm Atmosphere, obs Observer, object string, flags swisseph.HeliacalFlag) (*VisLimit, error) {
	c := s.begin("swe_vis_limit_mag")
	defer c.end()

	geopos := c.put(geo.values()...)
	datm := c.put(atm.values()...)
	dobs := c.put(obs.values()...)
	obj := c.cbuf(object, swisseph.MaxStName)
	dret := c.f64s(heliacalSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdUT), transcoder.Ptr(geopos), transcoder.Ptr(datm), transcoder.Ptr(dobs),
		transcoder.Ptr(obj), transcoder.I32(int32(flags)), transcoder.Ptr(dret), transcoder.Ptr(serr))
	if c.err == nil && rc == visBelowHorizon {
		c.noResult(rc)
		return nil, nil
	}
	c.status(rc)

	v := c.readF64s(dret, 8)
	if c.err != nil {
		return nil, c.err
	}
	return &VisLimit{
		Mode:            VisionMode(rc),
		LimitingMag:     v[0],
		ObjectAltitude:  v[1],
		ObjectAzimuth:   v[2],
		SunAltitude:     v[3],
		SunAzimuth:      v[4],
		MoonAltitude:    v[5],
		MoonAzimuth:     v[6],
		ObjectMagnitude: v[7],
	}, nil
}

// heliacal marshals the argument block shared by the heliacal exports and
// returns the output buffer.
func (c *call) heliacal(ctx context.Context, jd float64, geo GeoPos, atm Atmosphere, obs Observer, object string, event swisseph.HeliacalEvent, flags swisseph.HeliacalFlag) uint32 {
	geopos := c.put(geo.values()...)
	datm := c.put(atm.values()...)
	dobs := c.put(obs.values()...)
	obj := c.cbuf(object, swisseph.MaxStName)
	dret := c.f64s(heliacalSlots)
	serr := c.errBuf()

	rc := c.i32(ctx, transcoder.F64(jd), transcoder.Ptr(geopos), transcoder.Ptr(datm), transcoder.Ptr(dobs),
		transcoder.Ptr(obj), transcoder.I32(int32(event)), transcoder.I32(int32(flags)),
		transcoder.Ptr(dret), transcoder.Ptr(serr))
	c.status(rc)
	return dret
}
