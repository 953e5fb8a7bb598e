package fakeswe

import (
	"fmt"
	"math"
	"strings"

	swisseph "github.com/wippyai/swisseph-wasm"
)

// The fake knows one event of each kind. Searches find it when it lies in
// the search direction; the at-a-moment exports report it within Window
// days of it.
const (
	// SolarEclipseJD is the maximum of the total solar eclipse of 1999-08-11.
	SolarEclipseJD = 2451401.9615
	// LunarEclipseJD is the maximum of the total lunar eclipse of 2000-01-21.
	LunarEclipseJD = 2451564.6972
	// OccultationJD is the maximum of the one occultation the fake knows.
	OccultationJD = 2451600.25
	Window        = 0.1

	// Attribute and path buffers are seq runs from these bases.
	SolarAttrBase  = 100
	LunarAttrBase  = 200
	OccultAttrBase = 300
	PathBase       = 10

	// HeliacalPhenoBase starts the seq run of swe_heliacal_pheno_ut.
	HeliacalPhenoBase = 1000
	// HeliacalDelay is how long after the start the heliacal event begins.
	HeliacalDelay = 30
	// LimitingMag is what swe_vis_limit_mag reports for any visible object.
	LimitingMag = 6.5
)

// eventTimes returns ten contact times spaced a hundredth of a day apart
// starting at the maximum.
func eventTimes(maxJD float64) []float64 {
	t := make([]float64, 10)
	for i := range t {
		t[i] = maxJD + float64(i)/100
	}
	return t
}

// ahead reports whether event lies in the search direction from jd.
func ahead(jd, event float64, backward int32) bool {
	if backward&1 != 0 {
		return event < jd
	}
	return event > jd
}

func near(jd, event float64) bool {
	return math.Abs(jd-event) <= Window
}

var eventHandlers = map[string]Handler{
	// (jd, ifl, geopos, attr, serr) -> type
	"swe_sol_eclipse_where": func(m *Module, a []uint64) []uint64 {
		if !near(f64(a[0]), SolarEclipseJD) {
			return retI32(0)
		}
		m.writeF64s(ptr(a[2]), seq(PathBase, 10)...)
		m.writeF64s(ptr(a[3]), seq(SolarAttrBase, 20)...)
		return retI32(int32(swisseph.EclTotal | swisseph.EclCentral))
	},
	"swe_sol_eclipse_how": func(m *Module, a []uint64) []uint64 {
		if !near(f64(a[0]), SolarEclipseJD) {
			return retI32(0)
		}
		m.writeF64s(ptr(a[3]), seq(SolarAttrBase, 20)...)
		return retI32(int32(swisseph.EclTotal | swisseph.EclVisible | swisseph.EclMaxVisible))
	},
	// (jd, ifl, geopos, tret, attr, backward, serr) -> type
	"swe_sol_eclipse_when_loc": func(m *Module, a []uint64) []uint64 {
		if !ahead(f64(a[0]), SolarEclipseJD, i32(a[5])) {
			return retI32(0)
		}
		m.writeF64s(ptr(a[3]), eventTimes(SolarEclipseJD)...)
		m.writeF64s(ptr(a[4]), seq(SolarAttrBase, 20)...)
		return retI32(int32(swisseph.EclTotal | swisseph.EclVisible))
	},
	// (jd, ifl, ifltype, tret, backward, serr) -> type
	"swe_sol_eclipse_when_glob": func(m *Module, a []uint64) []uint64 {
		if !matches(i32(a[2])) || !ahead(f64(a[0]), SolarEclipseJD, i32(a[4])) {
			return retI32(0)
		}
		m.writeF64s(ptr(a[3]), eventTimes(SolarEclipseJD)...)
		return retI32(int32(swisseph.EclTotal | swisseph.EclCentral))
	},

	"swe_lun_eclipse_how": func(m *Module, a []uint64) []uint64 {
		if !near(f64(a[0]), LunarEclipseJD) {
			return retI32(0)
		}
		m.writeF64s(ptr(a[3]), seq(LunarAttrBase, 20)...)
		return retI32(int32(swisseph.EclTotal))
	},
	"swe_lun_eclipse_when": func(m *Module, a []uint64) []uint64 {
		if !matches(i32(a[2])) || !ahead(f64(a[0]), LunarEclipseJD, i32(a[4])) {
			return retI32(0)
		}
		m.writeF64s(ptr(a[3]), eventTimes(LunarEclipseJD)...)
		return retI32(int32(swisseph.EclTotal))
	},
	"swe_lun_eclipse_when_loc": func(m *Module, a []uint64) []uint64 {
		if !ahead(f64(a[0]), LunarEclipseJD, i32(a[5])) {
			return retI32(0)
		}
		m.writeF64s(ptr(a[3]), eventTimes(LunarEclipseJD)...)
		m.writeF64s(ptr(a[4]), seq(LunarAttrBase, 20)...)
		return retI32(int32(swisseph.EclTotal | swisseph.EclVisible))
	},

	// (jd, ipl, star, ifl, geopos, attr, serr) -> type
	"swe_lun_occult_where": func(m *Module, a []uint64) []uint64 {
		if !m.occultTarget(ptr(a[2]), ptr(a[6])) {
			return retI32(-1)
		}
		if !near(f64(a[0]), OccultationJD) {
			return retI32(0)
		}
		m.writeF64s(ptr(a[4]), seq(PathBase, 10)...)
		m.writeF64s(ptr(a[5]), seq(OccultAttrBase, 20)...)
		return retI32(int32(swisseph.EclTotal | swisseph.EclCentral))
	},
	// (jd, ipl, star, ifl, geopos, tret, attr, backward, serr) -> type
	"swe_lun_occult_when_loc": func(m *Module, a []uint64) []uint64 {
		if !m.occultTarget(ptr(a[2]), ptr(a[8])) {
			return retI32(-1)
		}
		if !ahead(f64(a[0]), OccultationJD, i32(a[7])) {
			return retI32(0)
		}
		m.writeF64s(ptr(a[5]), eventTimes(OccultationJD)...)
		m.writeF64s(ptr(a[6]), seq(OccultAttrBase, 20)...)
		return retI32(int32(swisseph.EclTotal | swisseph.EclVisible))
	},
	// (jd, ipl, star, ifl, ifltype, tret, backward, serr) -> type
	"swe_lun_occult_when_glob": func(m *Module, a []uint64) []uint64 {
		if !m.occultTarget(ptr(a[2]), ptr(a[7])) {
			return retI32(-1)
		}
		if !matches(i32(a[4])) || !ahead(f64(a[0]), OccultationJD, i32(a[6])) {
			return retI32(0)
		}
		m.writeF64s(ptr(a[5]), eventTimes(OccultationJD)...)
		return retI32(int32(swisseph.EclTotal | swisseph.EclCentral))
	},

	// (jd, ipl, star, epheflag, rsmi, geopos, press, temp, horhgt, tret, serr) -> status
	"swe_rise_trans_true_hor": func(m *Module, a []uint64) []uint64 {
		geo := m.readF64s(ptr(a[5]), 3)
		if math.Abs(geo[1]) >= 80 {
			return retI32(-2)
		}
		m.writeF64s(ptr(a[9]), f64(a[0])+0.5+f64(a[8])/360)
		return retI32(0)
	},

	// (jd, geopos, datm, dobs, object, event, flags, dret, serr) -> status
	"swe_heliacal_ut": func(m *Module, a []uint64) []uint64 {
		if _, ok := m.heliacalObject(ptr(a[4]), ptr(a[8])); !ok {
			return retI32(-1)
		}
		jd := f64(a[0]) + HeliacalDelay
		m.writeF64s(ptr(a[7]), jd, jd+0.5, jd+1)
		return retI32(0)
	},
	"swe_heliacal_pheno_ut": func(m *Module, a []uint64) []uint64 {
		if _, ok := m.heliacalObject(ptr(a[4]), ptr(a[8])); !ok {
			return retI32(-1)
		}
		m.writeF64s(ptr(a[7]), seq(HeliacalPhenoBase, 50)...)
		return retI32(0)
	},
	// (jd, geopos, datm, dobs, object, flags, dret, serr) -> vision mode;
	// an object culminates at 90 - |lat - dec|
	"swe_vis_limit_mag": func(m *Module, a []uint64) []uint64 {
		obj, ok := m.heliacalObject(ptr(a[4]), ptr(a[7]))
		if !ok {
			return retI32(-1)
		}
		geo := m.readF64s(ptr(a[1]), 3)
		alt := 90 - math.Abs(geo[1]-obj.dec)
		if alt < 0 {
			m.writeString(ptr(a[7]), fmt.Sprintf("object %s is below horizon", obj.name))
			return retI32(-2)
		}
		m.writeF64s(ptr(a[6]), LimitingMag, alt, 180, -18, 0, -10, 90, obj.mag)
		return retI32(swisseph.ScotopicFlag)
	},
}

// matches accepts a search type filter that includes total eclipses, or
// no filter at all.
func matches(ifltype int32) bool {
	t := swisseph.EclipseFlag(ifltype) &^ swisseph.EclOneTry
	return t == 0 || t&swisseph.EclTotal != 0
}

// occultTarget checks the star argument of the occultation exports. A
// null or empty name means the body argument is used.
func (m *Module) occultTarget(sp, serr uint32) bool {
	name := m.readString(sp)
	if name == "" {
		return true
	}
	if _, ok := findStar(name); !ok {
		m.writeString(serr, fmt.Sprintf("star %s not found", name))
		return false
	}
	return true
}

// heliacalObject resolves a planet or star name. Planets sit on the
// equator.
func (m *Module) heliacalObject(op, serr uint32) (star, bool) {
	name := m.readString(op)
	for _, p := range planetNames {
		if strings.EqualFold(p, name) {
			return star{name: p}, true
		}
	}
	if s, ok := findStar(name); ok {
		return s, true
	}
	m.writeString(serr, fmt.Sprintf("could not find object %s", name))
	return star{}, false
}
