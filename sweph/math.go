package sweph

import (
	"context"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

// DegNorm normalizes an angle to [0, 360).
func (s *SwissEph) DegNorm(ctx context.Context, x float64) (float64, error) {
	return s.f64Func(ctx, "swe_degnorm", x)
}

// RadNorm normalizes an angle to [0, 2π).
func (s *SwissEph) RadNorm(ctx context.Context, x float64) (float64, error) {
	return s.f64Func(ctx, "swe_radnorm", x)
}

// RadMidp returns the midpoint of two angles in radians.
func (s *SwissEph) RadMidp(ctx context.Context, x1, x0 float64) (float64, error) {
	return s.f64Func(ctx, "swe_rad_midp", x1, x0)
}

// DegMidp returns the midpoint of two angles in degrees.
func (s *SwissEph) DegMidp(ctx context.Context, x1, x0 float64) (float64, error) {
	return s.f64Func(ctx, "swe_deg_midp", x1, x0)
}

// DifDegN returns p1 - p2 normalized to [0, 360).
func (s *SwissEph) DifDegN(ctx context.Context, p1, p2 float64) (float64, error) {
	return s.f64Func(ctx, "swe_difdegn", p1, p2)
}

// DifDeg2N returns p1 - p2 normalized to [-180, 180).
func (s *SwissEph) DifDeg2N(ctx context.Context, p1, p2 float64) (float64, error) {
	return s.f64Func(ctx, "swe_difdeg2n", p1, p2)
}

// DifRad2N returns p1 - p2 normalized to [-π, π).
func (s *SwissEph) DifRad2N(ctx context.Context, p1, p2 float64) (float64, error) {
	return s.f64Func(ctx, "swe_difrad2n", p1, p2)
}

func (s *SwissEph) f64Func(ctx context.Context, name string, args ...float64) (float64, error) {
	c := s.begin(name)
	defer c.end()

	params := make([]uint64, len(args))
	for i, a := range args {
		params[i] = transcoder.F64(a)
	}
	return c.f64(ctx, params...), c.err
}

// CsNorm normalizes centiseconds to [0, 360°).
func (s *SwissEph) CsNorm(ctx context.Context, p int32) (int32, error) {
	return s.i32Func(ctx, "swe_csnorm", p)
}

// DifCsN returns p1 - p2 in centiseconds normalized to [0, 360°).
func (s *SwissEph) DifCsN(ctx context.Context, p1, p2 int32) (int32, error) {
	return s.i32Func(ctx, "swe_difcsn", p1, p2)
}

// DifCs2N returns p1 - p2 in centiseconds normalized to [-180°, 180°).
func (s *SwissEph) DifCs2N(ctx context.Context, p1, p2 int32) (int32, error) {
	return s.i32Func(ctx, "swe_difcs2n", p1, p2)
}

// CsRoundSec rounds centiseconds to whole seconds, never up to 30°.
func (s *SwissEph) CsRoundSec(ctx context.Context, x int32) (int32, error) {
	return s.i32Func(ctx, "swe_csroundsec", x)
}

func (s *SwissEph) i32Func(ctx context.Context, name string, args ...int32) (int32, error) {
	c := s.begin(name)
	defer c.end()

	params := make([]uint64, len(args))
	for i, a := range args {
		params[i] = transcoder.I32(a)
	}
	return c.i32(ctx, params...), c.err
}

// D2L rounds a double to the nearest int32.
func (s *SwissEph) D2L(ctx context.Context, x float64) (int32, error) {
	c := s.begin("swe_d2l")
	defer c.end()

	return c.i32(ctx, transcoder.F64(x)), c.err
}

// SplitDeg breaks a decimal angle into degrees, minutes and seconds,
// optionally rounded and reduced to a zodiac sign or nakshatra.
func (s *SwissEph) SplitDeg(ctx context.Context, deg float64, flags swisseph.SplitFlag) (*SplitDegree, error) {
	c := s.begin("swe_split_deg")
	defer c.end()

	// ideg, imin, isec, isgn share one block; dsecfr gets its own
	ints := c.i32s(4)
	frac := c.f64s(1)
	c.invoke(ctx, transcoder.F64(deg), transcoder.I32(int32(flags)),
		transcoder.Ptr(ints), transcoder.Ptr(ints+4), transcoder.Ptr(ints+8),
		transcoder.Ptr(frac), transcoder.Ptr(ints+12))

	v := c.readI32s(ints, 4)
	f := c.readF64(frac)
	if c.err != nil {
		return nil, c.err
	}
	return &SplitDegree{
		Degrees:        int(v[0]),
		Minutes:        int(v[1]),
		Seconds:        int(v[2]),
		SecondFraction: f,
		Sign:           int(v[3]),
	}, nil
}

// formatted strings never exceed this, including the NUL
const fmtBufSize = 32

// CS2TimeStr formats centiseconds as a time of day, e.g. "12:30:15".
func (s *SwissEph) CS2TimeStr(ctx context.Context, cs int32, sep byte, suppressZeroSeconds bool) (string, error) {
	c := s.begin("swe_cs2timestr")
	defer c.end()

	buf := c.bytes(fmtBufSize)
	c.ptr(ctx, transcoder.I32(cs), transcoder.I32(int32(sep)), transcoder.I32(boolArg(suppressZeroSeconds)), transcoder.Ptr(buf))
	return c.readString(buf, fmtBufSize), c.err
}

// CS2LonLatStr formats centiseconds as a longitude or latitude, using plus
// and minus as the hemisphere letters, e.g. 'E' and 'W'.
func (s *SwissEph) CS2LonLatStr(ctx context.Context, cs int32, plus, minus byte) (string, error) {
	c := s.begin("swe_cs2lonlatstr")
	defer c.end()

	buf := c.bytes(fmtBufSize)
	c.ptr(ctx, transcoder.I32(cs), transcoder.I32(int32(plus)), transcoder.I32(int32(minus)), transcoder.Ptr(buf))
	return c.readString(buf, fmtBufSize), c.err
}

// CS2DegStr formats centiseconds as degrees within a sign, e.g. "15°30'00".
func (s *SwissEph) CS2DegStr(ctx context.Context, cs int32) (string, error) {
	c := s.begin("swe_cs2degstr")
	defer c.end()

	buf := c.bytes(fmtBufSize)
	c.ptr(ctx, transcoder.I32(cs), transcoder.Ptr(buf))
	return c.readString(buf, fmtBufSize), c.err
}

// Cotrans rotates polar coordinates (lon, lat, dist) by eps degrees.
// A negative eps converts ecliptic to equatorial.
func (s *SwissEph) Cotrans(ctx context.Context, in [3]float64, eps float64) ([3]float64, error) {
	var out [3]float64
	err := s.cotrans(ctx, "swe_cotrans", in[:], out[:], eps)
	return out, err
}

// CotransSp is Cotrans carrying speeds along.
func (s *SwissEph) CotransSp(ctx context.Context, in [6]float64, eps float64) ([6]float64, error) {
	var out [6]float64
	err := s.cotrans(ctx, "swe_cotrans_sp", in[:], out[:], eps)
	return out, err
}

func (s *SwissEph) cotrans(ctx context.Context, name string, in, out []float64, eps float64) error {
	c := s.begin(name)
	defer c.end()

	xpo := c.put(in...)
	xpn := c.f64s(len(out))
	c.invoke(ctx, transcoder.Ptr(xpo), transcoder.Ptr(xpn), transcoder.F64(eps))

	v := c.readF64s(xpn, len(out))
	if c.err != nil {
		return c.err
	}
	copy(out, v)
	return nil
}
