package sweph

import (
	"context"
	"strings"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

// Calc computes a body's position at a Julian day in ephemeris time.
func (s *SwissEph) Calc(ctx context.Context, jd float64, body swisseph.Body, flags swisseph.CalcFlag) (*Position, error) {
	return s.calc(ctx, "swe_calc", jd, body, flags)
}

// CalcUT computes a body's position at a Julian day in UT.
func (s *SwissEph) CalcUT(ctx context.Context, jdUT float64, body swisseph.Body, flags swisseph.CalcFlag) (*Position, error) {
	return s.calc(ctx, "swe_calc_ut", jdUT, body, flags)
}

func (s *SwissEph) calc(ctx context.Context, name string, jd float64, body swisseph.Body, flags swisseph.CalcFlag) (*Position, error) {
	c := s.begin(name)
	defer c.end()

	xx := c.f64s(6)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jd), transcoder.I32(int32(body)), transcoder.I32(int32(flags)),
		transcoder.Ptr(xx), transcoder.Ptr(serr))
	c.status(rc)
	c.warnings()

	v := c.readF64s(xx, 6)
	if c.err != nil {
		return nil, c.err
	}
	pos := positionOf(v, swisseph.CalcFlag(rc))
	return &pos, nil
}

// FixStar computes a fixed star's position in ephemeris time. star is a
// traditional name, a Bayer designation after a comma (",alTau") or a
// catalog line number. It returns nil when the catalog has no such star.
func (s *SwissEph) FixStar(ctx context.Context, star string, jd float64, flags swisseph.CalcFlag) (*StarPosition, error) {
	return s.fixstar(ctx, "swe_fixstar", star, jd, flags)
}

// FixStarUT is FixStar for a Julian day in UT.
func (s *SwissEph) FixStarUT(ctx context.Context, star string, jdUT float64, flags swisseph.CalcFlag) (*StarPosition, error) {
	return s.fixstar(ctx, "swe_fixstar_ut", star, jdUT, flags)
}

// FixStar2 is FixStar using the faster sorted catalog lookup.
func (s *SwissEph) FixStar2(ctx context.Context, star string, jd float64, flags swisseph.CalcFlag) (*StarPosition, error) {
	return s.fixstar(ctx, "swe_fixstar2", star, jd, flags)
}

// FixStar2UT is FixStar2 for a Julian day in UT.
func (s *SwissEph) FixStar2UT(ctx context.Context, star string, jdUT float64, flags swisseph.CalcFlag) (*StarPosition, error) {
	return s.fixstar(ctx, "swe_fixstar2_ut", star, jdUT, flags)
}

func (s *SwissEph) fixstar(ctx context.Context, name, star string, jd float64, flags swisseph.CalcFlag) (*StarPosition, error) {
	c := s.begin(name)
	defer c.end()

	sp := c.cbuf(star, swisseph.MaxStName)
	xx := c.f64s(6)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.Ptr(sp), transcoder.F64(jd), transcoder.I32(int32(flags)),
		transcoder.Ptr(xx), transcoder.Ptr(serr))
	if c.err == nil && rc < 0 && starNotFound(c.message()) {
		c.noResult(rc)
		return nil, nil
	}
	c.status(rc)
	c.warnings()

	resolved := c.readString(sp, swisseph.MaxStName)
	v := c.readF64s(xx, 6)
	if c.err != nil {
		return nil, c.err
	}
	return &StarPosition{Name: resolved, Position: positionOf(v, swisseph.CalcFlag(rc))}, nil
}

// FixStarMag returns a fixed star's visual magnitude, or nil when the
// catalog has no such star.
func (s *SwissEph) FixStarMag(ctx context.Context, star string) (*StarMagnitude, error) {
	return s.fixstarMag(ctx, "swe_fixstar_mag", star)
}

// FixStar2Mag is FixStarMag using the sorted catalog lookup.
func (s *SwissEph) FixStar2Mag(ctx context.Context, star string) (*StarMagnitude, error) {
	return s.fixstarMag(ctx, "swe_fixstar2_mag", star)
}

func (s *SwissEph) fixstarMag(ctx context.Context, name, star string) (*StarMagnitude, error) {
	c := s.begin(name)
	defer c.end()

	sp := c.cbuf(star, swisseph.MaxStName)
	mag := c.f64s(1)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.Ptr(sp), transcoder.Ptr(mag), transcoder.Ptr(serr))
	if c.err == nil && rc < 0 && starNotFound(c.message()) {
		c.noResult(rc)
		return nil, nil
	}
	c.status(rc)

	resolved := c.readString(sp, swisseph.MaxStName)
	m := c.readF64(mag)
	if c.err != nil {
		return nil, c.err
	}
	return &StarMagnitude{Name: resolved, Magnitude: m}, nil
}

// starNotFound tells a missing catalog entry apart from other failures,
// such as a missing catalog file, which share the same status.
func starNotFound(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.HasPrefix(msg, "star ") && strings.Contains(msg, "not found")
}

// PlanetName returns the library's name for a body.
func (s *SwissEph) PlanetName(ctx context.Context, body swisseph.Body) (string, error) {
	c := s.begin("swe_get_planet_name")
	defer c.end()

	buf := c.bytes(serrSize)
	c.ptr(ctx, transcoder.I32(int32(body)), transcoder.Ptr(buf))
	return c.readString(buf, serrSize), c.err
}

// NodAps computes nodes and apsides of a body in ephemeris time.
func (s *SwissEph) NodAps(ctx context.Context, jd float64, body swisseph.Body, flags swisseph.CalcFlag, method swisseph.NodeMethod) (*NodesApsides, error) {
	return s.nodAps(ctx, "swe_nod_aps", jd, body, flags, method)
}

// NodApsUT is NodAps for a Julian day in UT.
func (s *SwissEph) NodApsUT(ctx context.Context, jdUT float64, body swisseph.Body, flags swisseph.CalcFlag, method swisseph.NodeMethod) (*NodesApsides, error) {
	return s.nodAps(ctx, "swe_nod_aps_ut", jdUT, body, flags, method)
}

func (s *SwissEph) nodAps(ctx context.Context, name string, jd float64, body swisseph.Body, flags swisseph.CalcFlag, method swisseph.NodeMethod) (*NodesApsides, error) {
	c := s.begin(name)
	defer c.end()

	out := c.f64s(24)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jd), transcoder.I32(int32(body)), transcoder.I32(int32(flags)),
		transcoder.I32(int32(method)),
		transcoder.Ptr(out), transcoder.Ptr(out+48), transcoder.Ptr(out+96), transcoder.Ptr(out+144),
		transcoder.Ptr(serr))
	c.status(rc)
	c.warnings()

	v := c.readF64s(out, 24)
	if c.err != nil {
		return nil, c.err
	}
	applied := swisseph.CalcFlag(rc)
	return &NodesApsides{
		Ascending:  positionOf(v[0:6], applied),
		Descending: positionOf(v[6:12], applied),
		Perihelion: positionOf(v[12:18], applied),
		Aphelion:   positionOf(v[18:24], applied),
	}, nil
}

// OrbitalElements returns the osculating orbital elements of a body.
func (s *SwissEph) OrbitalElements(ctx context.Context, jd float64, body swisseph.Body, flags swisseph.CalcFlag) (*OrbitalElements, error) {
	c := s.begin("swe_get_orbital_elements")
	defer c.end()

	dret := c.f64s(50)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jd), transcoder.I32(int32(body)), transcoder.I32(int32(flags)),
		transcoder.Ptr(dret), transcoder.Ptr(serr))
	c.status(rc)

	v := c.readF64s(dret, 17)
	if c.err != nil {
		return nil, c.err
	}
	return &OrbitalElements{
		SemiMajorAxis:       v[0],
		Eccentricity:        v[1],
		Inclination:         v[2],
		AscendingNode:       v[3],
		ArgPerihelion:       v[4],
		LonPerihelion:       v[5],
		MeanAnomaly:         v[6],
		TrueAnomaly:         v[7],
		EccentricAnomaly:    v[8],
		MeanLongitude:       v[9],
		SiderealPeriodYears: v[10],
		MeanDailyMotion:     v[11],
		TropicalPeriodYears: v[12],
		SynodicPeriodDays:   v[13],
		PerihelionPassage:   v[14],
		PerihelionDistance:  v[15],
		AphelionDistance:    v[16],
	}, nil
}

// OrbitDistances returns the maximum, minimum and current distance of a
// body from the Sun or Earth, depending on flags.
func (s *SwissEph) OrbitDistances(ctx context.Context, jd float64, body swisseph.Body, flags swisseph.CalcFlag) (*OrbitDistances, error) {
	c := s.begin("swe_orbit_max_min_true_distance")
	defer c.end()

	d := c.f64s(3)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jd), transcoder.I32(int32(body)), transcoder.I32(int32(flags)),
		transcoder.Ptr(d), transcoder.Ptr(d+8), transcoder.Ptr(d+16), transcoder.Ptr(serr))
	c.status(rc)

	v := c.readF64s(d, 3)
	if c.err != nil {
		return nil, c.err
	}
	return &OrbitDistances{Max: v[0], Min: v[1], True: v[2]}, nil
}

// Pheno computes phase, elongation, disc diameter and magnitude of a body
// in ephemeris time.
func (s *SwissEph) Pheno(ctx context.Context, jd float64, body swisseph.Body, flags swisseph.CalcFlag) (*Phenomena, error) {
	return s.pheno(ctx, "swe_pheno", jd, body, flags)
}

// PhenoUT is Pheno for a Julian day in UT.
func (s *SwissEph) PhenoUT(ctx context.Context, jdUT float64, body swisseph.Body, flags swisseph.CalcFlag) (*Phenomena, error) {
	return s.pheno(ctx, "swe_pheno_ut", jdUT, body, flags)
}

func (s *SwissEph) pheno(ctx context.Context, name string, jd float64, body swisseph.Body, flags swisseph.CalcFlag) (*Phenomena, error) {
	c := s.begin(name)
	defer c.end()

	attr := c.f64s(20)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jd), transcoder.I32(int32(body)), transcoder.I32(int32(flags)),
		transcoder.Ptr(attr), transcoder.Ptr(serr))
	c.status(rc)
	c.warnings()

	v := c.readF64s(attr, 6)
	if c.err != nil {
		return nil, c.err
	}
	return &Phenomena{
		PhaseAngle:         v[0],
		Phase:              v[1],
		Elongation:         v[2],
		DiscDiameter:       v[3],
		Magnitude:          v[4],
		HorizontalParallax: v[5],
	}, nil
}

// Ayanamsa returns the ayanamsa of the current sidereal mode at a Julian
// day in ephemeris time.
func (s *SwissEph) Ayanamsa(ctx context.Context, jd float64) (float64, error) {
	c := s.begin("swe_get_ayanamsa")
	defer c.end()

	return c.f64(ctx, transcoder.F64(jd)), c.err
}

// AyanamsaUT is Ayanamsa for a Julian day in UT.
func (s *SwissEph) AyanamsaUT(ctx context.Context, jdUT float64) (float64, error) {
	c := s.begin("swe_get_ayanamsa_ut")
	defer c.end()

	return c.f64(ctx, transcoder.F64(jdUT)), c.err
}

// AyanamsaEx returns the ayanamsa computed with the given ephemeris and
// nutation flags.
func (s *SwissEph) AyanamsaEx(ctx context.Context, jd float64, flags swisseph.CalcFlag) (float64, error) {
	return s.ayanamsaEx(ctx, "swe_get_ayanamsa_ex", jd, flags)
}

// AyanamsaExUT is AyanamsaEx for a Julian day in UT.
func (s *SwissEph) AyanamsaExUT(ctx context.Context, jdUT float64, flags swisseph.CalcFlag) (float64, error) {
	return s.ayanamsaEx(ctx, "swe_get_ayanamsa_ex_ut", jdUT, flags)
}

func (s *SwissEph) ayanamsaEx(ctx context.Context, name string, jd float64, flags swisseph.CalcFlag) (float64, error) {
	c := s.begin(name)
	defer c.end()

	daya := c.f64s(1)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jd), transcoder.I32(int32(flags)), transcoder.Ptr(daya), transcoder.Ptr(serr))
	c.status(rc)
	c.warnings()
	return c.readF64(daya), c.err
}

// AyanamsaName returns the name of a sidereal mode.
func (s *SwissEph) AyanamsaName(ctx context.Context, mode swisseph.SidMode) (string, error) {
	c := s.begin("swe_get_ayanamsa_name")
	defer c.end()

	ptr := c.ptr(ctx, transcoder.I32(int32(mode)))
	if c.err != nil {
		return "", c.err
	}
	if ptr == 0 {
		return "", nil
	}
	return c.readString(ptr, serrSize), c.err
}
