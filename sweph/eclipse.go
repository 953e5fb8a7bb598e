package sweph

import (
	"context"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

// Eclipse exports return the eclipse type bits on success, 0 when there
// is no eclipse at the place or moment asked about, and -1 on error. The
// zero case is reported as a nil result.

const (
	geoposSlots = 10
	attrSlots   = 20
	tretSlots   = 10
)

// searchDirection packs the backward flag the way the search exports
// expect it, carrying EclOneTry along for occultations.
func searchDirection(flags swisseph.EclipseFlag, backward bool) int32 {
	dir := boolArg(backward)
	if flags.Has(swisseph.EclOneTry) {
		dir |= int32(swisseph.EclOneTry)
	}
	return dir
}

// SolEclipseWhere finds where a solar eclipse is central or maximal at a
// Julian day in UT.
func (s *SwissEph) SolEclipseWhere(ctx context.Context, jdUT float64, flags swisseph.CalcFlag) (*EclipsePath, error) {
	c := s.begin("swe_sol_eclipse_where")
	defer c.end()

	geopos, attr := c.f64s(geoposSlots), c.f64s(attrSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdUT), transcoder.I32(int32(flags)),
		transcoder.Ptr(geopos), transcoder.Ptr(attr), transcoder.Ptr(serr))
	return c.eclipsePath(rc, geopos, attr)
}

// LunOccultWhere finds where an occultation of a body or fixed star by the
// Moon is central or maximal. star is empty for planets.
func (s *SwissEph) LunOccultWhere(ctx context.Context, jdUT float64, body swisseph.Body, star string, flags swisseph.CalcFlag) (*EclipsePath, error) {
	c := s.begin("swe_lun_occult_where")
	defer c.end()

	sp := c.cbuf(star, swisseph.MaxStName)
	geopos, attr := c.f64s(geoposSlots), c.f64s(attrSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdUT), transcoder.I32(int32(body)), transcoder.Ptr(sp),
		transcoder.I32(int32(flags)), transcoder.Ptr(geopos), transcoder.Ptr(attr), transcoder.Ptr(serr))
	return c.eclipsePath(rc, geopos, attr)
}

func (c *call) eclipsePath(rc int32, geopos, attr uint32) (*EclipsePath, error) {
	c.status(rc)
	if c.err == nil && rc == 0 {
		c.noResult(rc)
		return nil, nil
	}
	g := c.readF64s(geopos, geoposSlots)
	a := c.readF64s(attr, attrSlots)
	if c.err != nil {
		return nil, c.err
	}
	p := &EclipsePath{
		Type: swisseph.EclipseFlag(rc),
		Lon:  g[0],
		Lat:  g[1],
		Attr: solarAttrOf(a),
	}
	copy(p.Limits[:], g[2:10])
	return p, nil
}

// SolEclipseHow computes a solar eclipse's attributes at one place and
// moment. It returns nil when no eclipse is visible there.
func (s *SwissEph) SolEclipseHow(ctx context.Context, jdUT float64, flags swisseph.CalcFlag, geo GeoPos) (*SolarEclipseLocal, error) {
	c := s.begin("swe_sol_eclipse_how")
	defer c.end()

	geopos := c.put(geo.values()...)
	attr := c.f64s(attrSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdUT), transcoder.I32(int32(flags)),
		transcoder.Ptr(geopos), transcoder.Ptr(attr), transcoder.Ptr(serr))
	c.status(rc)
	if c.err == nil && rc == 0 {
		c.noResult(rc)
		return nil, nil
	}
	a := c.readF64s(attr, attrSlots)
	if c.err != nil {
		return nil, c.err
	}
	return &SolarEclipseLocal{Type: swisseph.EclipseFlag(rc), Attr: solarAttrOf(a)}, nil
}

// SolEclipseWhenLoc searches for the next solar eclipse visible from geo.
func (s *SwissEph) SolEclipseWhenLoc(ctx context.Context, jdStart float64, flags swisseph.CalcFlag, geo GeoPos, backward bool) (*SolarEclipseSearch, error) {
	c := s.begin("swe_sol_eclipse_when_loc")
	defer c.end()

	geopos := c.put(geo.values()...)
	tret, attr := c.f64s(tretSlots), c.f64s(attrSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdStart), transcoder.I32(int32(flags)), transcoder.Ptr(geopos),
		transcoder.Ptr(tret), transcoder.Ptr(attr), transcoder.I32(boolArg(backward)), transcoder.Ptr(serr))
	return c.localSearch(rc, tret, attr)
}

// LunOccultWhenLoc searches for the next occultation of a body or star by
// the Moon visible from geo. Pass EclOneTry in eclFlags to test only the
// next conjunction.
func (s *SwissEph) LunOccultWhenLoc(ctx context.Context, jdStart float64, body swisseph.Body, star string, flags swisseph.CalcFlag, geo GeoPos, eclFlags swisseph.EclipseFlag, backward bool) (*SolarEclipseSearch, error) {
	c := s.begin("swe_lun_occult_when_loc")
	defer c.end()

	sp := c.cbuf(star, swisseph.MaxStName)
	geopos := c.put(geo.values()...)
	tret, attr := c.f64s(tretSlots), c.f64s(attrSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdStart), transcoder.I32(int32(body)), transcoder.Ptr(sp),
		transcoder.I32(int32(flags)), transcoder.Ptr(geopos), transcoder.Ptr(tret), transcoder.Ptr(attr),
		transcoder.I32(searchDirection(eclFlags, backward)), transcoder.Ptr(serr))
	return c.localSearch(rc, tret, attr)
}

func (c *call) localSearch(rc int32, tret, attr uint32) (*SolarEclipseSearch, error) {
	c.status(rc)
	if c.err == nil && rc == 0 {
		c.noResult(rc)
		return nil, nil
	}
	t := c.readF64s(tret, tretSlots)
	a := c.readF64s(attr, attrSlots)
	if c.err != nil {
		return nil, c.err
	}
	return &SolarEclipseSearch{
		Type: swisseph.EclipseFlag(rc),
		Times: LocalContacts{
			Maximum: t[0],
			First:   t[1],
			Second:  t[2],
			Third:   t[3],
			Fourth:  t[4],
			Rise:    t[5],
			Set:     t[6],
		},
		Attr: solarAttrOf(a),
	}, nil
}

// SolEclipseWhenGlob searches for the next solar eclipse anywhere on
// Earth. eclType restricts the search (EclTotal, EclAnnular, ...); 0
// accepts any type.
func (s *SwissEph) SolEclipseWhenGlob(ctx context.Context, jdStart float64, flags swisseph.CalcFlag, eclType swisseph.EclipseFlag, backward bool) (*GlobalEclipse, error) {
	c := s.begin("swe_sol_eclipse_when_glob")
	defer c.end()

	tret := c.f64s(tretSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdStart), transcoder.I32(int32(flags)), transcoder.I32(int32(eclType)),
		transcoder.Ptr(tret), transcoder.I32(boolArg(backward)), transcoder.Ptr(serr))
	return c.globalSearch(rc, tret)
}

// LunOccultWhenGlob searches for the next occultation of a body or star by
// the Moon anywhere on Earth.
func (s *SwissEph) LunOccultWhenGlob(ctx context.Context, jdStart float64, body swisseph.Body, star string, flags swisseph.CalcFlag, eclType swisseph.EclipseFlag, backward bool) (*GlobalEclipse, error) {
	c := s.begin("swe_lun_occult_when_glob")
	defer c.end()

	sp := c.cbuf(star, swisseph.MaxStName)
	tret := c.f64s(tretSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdStart), transcoder.I32(int32(body)), transcoder.Ptr(sp),
		transcoder.I32(int32(flags)), transcoder.I32(int32(eclType&^swisseph.EclOneTry)), transcoder.Ptr(tret),
		transcoder.I32(searchDirection(eclType, backward)), transcoder.Ptr(serr))
	return c.globalSearch(rc, tret)
}

func (c *call) globalSearch(rc int32, tret uint32) (*GlobalEclipse, error) {
	c.status(rc)
	if c.err == nil && rc == 0 {
		c.noResult(rc)
		return nil, nil
	}
	t := c.readF64s(tret, tretSlots)
	if c.err != nil {
		return nil, c.err
	}
	return &GlobalEclipse{
		Type: swisseph.EclipseFlag(rc),
		Times: GlobalEclipseTimes{
			Maximum:         t[0],
			LocalNoon:       t[1],
			Begin:           t[2],
			End:             t[3],
			TotalityBegin:   t[4],
			TotalityEnd:     t[5],
			CenterLineBegin: t[6],
			CenterLineEnd:   t[7],
			AnnularToTotal:  t[8],
			TotalToAnnular:  t[9],
		},
	}, nil
}

// LunEclipseHow computes a lunar eclipse's attributes at one place and
// moment. It returns nil when there is no eclipse.
func (s *SwissEph) LunEclipseHow(ctx context.Context, jdUT float64, flags swisseph.CalcFlag, geo GeoPos) (*LunarEclipseLocal, error) {
	c := s.begin("swe_lun_eclipse_how")
	defer c.end()

	geopos := c.put(geo.values()...)
	attr := c.f64s(attrSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdUT), transcoder.I32(int32(flags)),
		transcoder.Ptr(geopos), transcoder.Ptr(attr), transcoder.Ptr(serr))
	c.status(rc)
	if c.err == nil && rc == 0 {
		c.noResult(rc)
		return nil, nil
	}
	a := c.readF64s(attr, attrSlots)
	if c.err != nil {
		return nil, c.err
	}
	return &LunarEclipseLocal{Type: swisseph.EclipseFlag(rc), Attr: lunarAttrOf(a)}, nil
}

// LunEclipseWhen searches for the next lunar eclipse.
func (s *SwissEph) LunEclipseWhen(ctx context.Context, jdStart float64, flags swisseph.CalcFlag, eclType swisseph.EclipseFlag, backward bool) (*LunarEclipse, error) {
	c := s.begin("swe_lun_eclipse_when")
	defer c.end()

	tret := c.f64s(tretSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdStart), transcoder.I32(int32(flags)), transcoder.I32(int32(eclType)),
		transcoder.Ptr(tret), transcoder.I32(boolArg(backward)), transcoder.Ptr(serr))
	c.status(rc)
	if c.err == nil && rc == 0 {
		c.noResult(rc)
		return nil, nil
	}
	t := c.readF64s(tret, tretSlots)
	if c.err != nil {
		return nil, c.err
	}
	return &LunarEclipse{Type: swisseph.EclipseFlag(rc), Times: lunarTimesOf(t)}, nil
}

// LunEclipseWhenLoc searches for the next lunar eclipse visible from geo.
func (s *SwissEph) LunEclipseWhenLoc(ctx context.Context, jdStart float64, flags swisseph.CalcFlag, geo GeoPos, backward bool) (*LunarEclipseSearch, error) {
	c := s.begin("swe_lun_eclipse_when_loc")
	defer c.end()

	geopos := c.put(geo.values()...)
	tret, attr := c.f64s(tretSlots), c.f64s(attrSlots)
	serr := c.errBuf()
	rc := c.i32(ctx, transcoder.F64(jdStart), transcoder.I32(int32(flags)), transcoder.Ptr(geopos),
		transcoder.Ptr(tret), transcoder.Ptr(attr), transcoder.I32(boolArg(backward)), transcoder.Ptr(serr))
	c.status(rc)
	if c.err == nil && rc == 0 {
		c.noResult(rc)
		return nil, nil
	}
	t := c.readF64s(tret, tretSlots)
	a := c.readF64s(attr, attrSlots)
	if c.err != nil {
		return nil, c.err
	}
	return &LunarEclipseSearch{
		Type:     swisseph.EclipseFlag(rc),
		Times:    lunarTimesOf(t),
		MoonRise: t[8],
		MoonSet:  t[9],
		Attr:     lunarAttrOf(a),
	}, nil
}
