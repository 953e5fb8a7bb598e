package fakeswe

import (
	"fmt"

	swisseph "github.com/wippyai/swisseph-wasm"
)

// Outputs of the orbit exports are seq runs, each buffer starting at its
// own base, so a caller reading the wrong slot sees the wrong hundred.
const (
	NodeAscBase   = 100
	NodeDescBase  = 200
	PeriBase      = 300
	ApheBase      = 400
	ElementsBase  = 1
	PhenoBase     = 10
	DistanceMax   = 5.46
	DistanceMin   = 4.95
	DistanceTrue  = 5.2
	AyanamsaJ2000 = 23.857
)

var orbitHandlers = map[string]Handler{
	"swe_nod_aps":    nodAps,
	"swe_nod_aps_ut": nodAps,

	"swe_get_orbital_elements": func(m *Module, a []uint64) []uint64 {
		if !m.knownBody(swisseph.Body(i32(a[1])), ptr(a[4])) {
			return retI32(-1)
		}
		m.writeF64s(ptr(a[3]), seq(ElementsBase, 50)...)
		return retI32(0)
	},
	"swe_orbit_max_min_true_distance": func(m *Module, a []uint64) []uint64 {
		if !m.knownBody(swisseph.Body(i32(a[1])), ptr(a[6])) {
			return retI32(-1)
		}
		m.writeF64s(ptr(a[3]), DistanceMax)
		m.writeF64s(ptr(a[4]), DistanceMin)
		m.writeF64s(ptr(a[5]), DistanceTrue)
		return retI32(0)
	},

	"swe_pheno":    pheno,
	"swe_pheno_ut": pheno,

	"swe_get_ayanamsa_ex":    ayanamsaEx,
	"swe_get_ayanamsa_ex_ut": ayanamsaEx,
}

// knownBody writes the library's message for bodies the fake has no
// motion for.
func (m *Module) knownBody(body swisseph.Body, serr uint32) bool {
	if _, ok := meanMotion[body]; ok {
		return true
	}
	m.writeString(serr, fmt.Sprintf("illegal planet number %d.", body))
	return false
}

// nodAps answers (jd, ipl, iflag, method, xnasc, xndsc, xperi, xaphe, serr) -> iflag.
func nodAps(m *Module, a []uint64) []uint64 {
	if !m.knownBody(swisseph.Body(i32(a[1])), ptr(a[8])) {
		return retI32(-1)
	}
	m.writeF64s(ptr(a[4]), seq(NodeAscBase, 6)...)
	m.writeF64s(ptr(a[5]), seq(NodeDescBase, 6)...)
	m.writeF64s(ptr(a[6]), seq(PeriBase, 6)...)
	m.writeF64s(ptr(a[7]), seq(ApheBase, 6)...)
	return retI32(i32(a[2]))
}

// pheno answers (jd, ipl, iflag, attr, serr) -> iflag.
func pheno(m *Module, a []uint64) []uint64 {
	if !m.knownBody(swisseph.Body(i32(a[1])), ptr(a[4])) {
		return retI32(-1)
	}
	m.writeF64s(ptr(a[3]), seq(PhenoBase, 20)...)
	return retI32(i32(a[2]))
}

// ayanamsaEx answers (jd, iflag, daya, serr) -> iflag with a linear
// precession of 50.29" per year.
func ayanamsaEx(m *Module, a []uint64) []uint64 {
	jd := f64(a[0])
	m.writeF64s(ptr(a[2]), AyanamsaJ2000+(jd-j2000)/365.25*50.29/3600)
	return retI32(i32(a[1]))
}
