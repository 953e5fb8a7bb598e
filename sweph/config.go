package sweph

import (
	"context"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

// SetEphePath sets the directories searched for ephemeris files, as seen
// from inside the guest.
func (s *SwissEph) SetEphePath(ctx context.Context, path string) error {
	c := s.begin("swe_set_ephe_path")
	defer c.end()

	c.invoke(ctx, transcoder.Ptr(c.cstring(path)))
	if c.err != nil {
		return c.err
	}
	s.ephePath = path
	return nil
}

// SetJPLFile selects a JPL ephemeris file for FlagJPLEph calculations.
func (s *SwissEph) SetJPLFile(ctx context.Context, name string) error {
	c := s.begin("swe_set_jpl_file")
	defer c.end()

	c.invoke(ctx, transcoder.Ptr(c.cstring(name)))
	return c.err
}

// Version returns the library's version string.
func (s *SwissEph) Version(ctx context.Context) (string, error) {
	c := s.begin("swe_version")
	defer c.end()

	buf := c.bytes(serrSize)
	c.ptr(ctx, transcoder.Ptr(buf))
	return c.readString(buf, serrSize), c.err
}

// SetTopo sets the observer position used with FlagTopoCtr.
func (s *SwissEph) SetTopo(ctx context.Context, geo GeoPos) error {
	c := s.begin("swe_set_topo")
	defer c.end()

	c.invoke(ctx, transcoder.F64(geo.Lon), transcoder.F64(geo.Lat), transcoder.F64(geo.Alt))
	return c.err
}

// SetSidMode selects the ayanamsa used with FlagSidereal. t0 and ayanT0
// only matter for SidmUser.
func (s *SwissEph) SetSidMode(ctx context.Context, mode swisseph.SidMode, t0, ayanT0 float64) error {
	c := s.begin("swe_set_sid_mode")
	defer c.end()

	c.invoke(ctx, transcoder.I32(int32(mode)), transcoder.F64(t0), transcoder.F64(ayanT0))
	return c.err
}

// TidAcc returns the tidal acceleration in use, in arcsec/cy².
func (s *SwissEph) TidAcc(ctx context.Context) (float64, error) {
	c := s.begin("swe_get_tid_acc")
	defer c.end()

	return c.f64(ctx), c.err
}

// SetTidAcc overrides the tidal acceleration.
func (s *SwissEph) SetTidAcc(ctx context.Context, acc float64) error {
	c := s.begin("swe_set_tid_acc")
	defer c.end()

	c.invoke(ctx, transcoder.F64(acc))
	return c.err
}

// SetLapseRate sets the atmospheric lapse rate used for refraction, in K/m.
func (s *SwissEph) SetLapseRate(ctx context.Context, rate float64) error {
	c := s.begin("swe_set_lapse_rate")
	defer c.end()

	c.invoke(ctx, transcoder.F64(rate))
	return c.err
}
