package fakeswe

import (
	"fmt"
	"math"
	"strings"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

// Version is what swe_version reports.
const Version = "2.10.03"

const j2000 = 2451545.0

// Obliquity is the constant obliquity the fake reports for EclNut.
const Obliquity = 23.4392911

var (
	f64 = transcoder.AsF64
	i32 = transcoder.AsI32
	ptr = transcoder.AsPtr
)

func retF64(v float64) []uint64 { return []uint64{transcoder.F64(v)} }
func retI32(v int32) []uint64   { return []uint64{transcoder.I32(v)} }
func retPtr(p uint32) []uint64  { return []uint64{transcoder.Ptr(p)} }

var handlerSets = []map[string]Handler{defaultHandlers, orbitHandlers, timeHandlers, eventHandlers}

var defaultHandlers = map[string]Handler{
	"malloc": func(m *Module, a []uint64) []uint64 {
		p, _ := m.heap.Malloc(ptr(a[0]))
		return retPtr(p)
	},
	"free": func(m *Module, a []uint64) []uint64 {
		m.heap.Free(ptr(a[0]))
		return nil
	},

	"swe_set_ephe_path": func(m *Module, a []uint64) []uint64 {
		m.ephePath = m.readString(ptr(a[0]))
		return nil
	},
	"swe_close": func(m *Module, _ []uint64) []uint64 {
		m.closeCalls++
		return nil
	},
	"swe_version": func(m *Module, a []uint64) []uint64 {
		m.writeString(ptr(a[0]), Version)
		return retPtr(ptr(a[0]))
	},
	"swe_get_tid_acc": func(*Module, []uint64) []uint64 {
		return retF64(-25.8)
	},

	"swe_julday": func(_ *Module, a []uint64) []uint64 {
		return retF64(julday(int(i32(a[0])), int(i32(a[1])), int(i32(a[2])), f64(a[3]), i32(a[4]) == int32(swisseph.GregCal)))
	},
	"swe_revjul": func(m *Module, a []uint64) []uint64 {
		y, mo, d, h := revjul(f64(a[0]), i32(a[1]) == int32(swisseph.GregCal))
		m.writeI32(ptr(a[2]), int32(y))
		m.writeI32(ptr(a[3]), int32(mo))
		m.writeI32(ptr(a[4]), int32(d))
		m.writeF64s(ptr(a[5]), h)
		return nil
	},
	"swe_date_conversion": func(m *Module, a []uint64) []uint64 {
		y, mo, d, h := int(i32(a[0])), int(i32(a[1])), int(i32(a[2])), f64(a[3])
		greg := byte(i32(a[4])) == 'g'
		jd := julday(y, mo, d, h, greg)
		m.writeF64s(ptr(a[5]), jd)
		ry, rm, rd, _ := revjul(jd, greg)
		if ry != y || rm != mo || rd != d {
			return retI32(-1)
		}
		return retI32(0)
	},
	"swe_day_of_week": func(_ *Module, a []uint64) []uint64 {
		return retI32(int32(int(math.Floor(f64(a[0])-2433282-1.5))%7+7) % 7)
	},

	"swe_calc":    calc,
	"swe_calc_ut": calc,

	"swe_fixstar":      fixstar,
	"swe_fixstar_ut":   fixstar,
	"swe_fixstar2":     fixstar,
	"swe_fixstar2_ut":  fixstar,
	"swe_fixstar_mag":  fixstarMag,
	"swe_fixstar2_mag": fixstarMag,

	"swe_get_planet_name": func(m *Module, a []uint64) []uint64 {
		name, ok := planetNames[swisseph.Body(i32(a[0]))]
		if !ok {
			name = fmt.Sprintf("%d: not implemented", i32(a[0]))
		}
		m.writeString(ptr(a[1]), name)
		return retPtr(ptr(a[1]))
	},
	"swe_get_ayanamsa_name": func(m *Module, a []uint64) []uint64 {
		name, ok := ayanamsaNames[swisseph.SidMode(i32(a[0]))]
		if !ok {
			return retPtr(0)
		}
		return retPtr(m.static(name))
	},

	"swe_houses": func(m *Module, a []uint64) []uint64 {
		return retI32(houses(m, f64(a[0]), f64(a[1]), f64(a[2]), swisseph.HouseSystem(i32(a[3])), ptr(a[4]), ptr(a[5]), 0, 0, 0))
	},
	"swe_houses_ex": func(m *Module, a []uint64) []uint64 {
		return retI32(houses(m, f64(a[0]), f64(a[2]), f64(a[3]), swisseph.HouseSystem(i32(a[4])), ptr(a[5]), ptr(a[6]), 0, 0, 0))
	},
	"swe_houses_ex2": func(m *Module, a []uint64) []uint64 {
		return retI32(houses(m, f64(a[0]), f64(a[2]), f64(a[3]), swisseph.HouseSystem(i32(a[4])), ptr(a[5]), ptr(a[6]), ptr(a[7]), ptr(a[8]), ptr(a[9])))
	},

	// equal houses from armc + 90, matching houses
	"swe_house_pos": func(m *Module, a []uint64) []uint64 {
		hsys := swisseph.HouseSystem(i32(a[3]))
		if (hsys == swisseph.HousePlacidus || hsys == swisseph.HouseKoch) && math.Abs(f64(a[1])) > 66.5 {
			m.writeString(ptr(a[5]), "within polar circle")
			return retF64(0)
		}
		xpin := m.readF64s(ptr(a[4]), 2)
		asc := degnorm(f64(a[0]) + 90)
		return retF64(1 + degnorm(xpin[0]-asc)/30)
	},

	"swe_rise_trans": func(m *Module, a []uint64) []uint64 {
		geo := m.readF64s(ptr(a[5]), 3)
		if math.Abs(geo[1]) >= 80 {
			return retI32(-2)
		}
		m.writeF64s(ptr(a[8]), f64(a[0])+0.5)
		return retI32(0)
	},

	"swe_degnorm": func(_ *Module, a []uint64) []uint64 {
		return retF64(degnorm(f64(a[0])))
	},
	"swe_radnorm": func(_ *Module, a []uint64) []uint64 {
		x := math.Mod(f64(a[0]), 2*math.Pi)
		if x < 0 {
			x += 2 * math.Pi
		}
		return retF64(x)
	},
	"swe_difdegn": func(_ *Module, a []uint64) []uint64 {
		return retF64(degnorm(f64(a[0]) - f64(a[1])))
	},
	"swe_difdeg2n": func(_ *Module, a []uint64) []uint64 {
		return retF64(difdeg2n(f64(a[0]), f64(a[1])))
	},
	"swe_deg_midp": func(_ *Module, a []uint64) []uint64 {
		return retF64(degnorm(f64(a[1]) + difdeg2n(f64(a[0]), f64(a[1]))/2))
	},
	"swe_csnorm": func(_ *Module, a []uint64) []uint64 {
		const full = 360 * 360000
		p := i32(a[0]) % full
		if p < 0 {
			p += full
		}
		return retI32(p)
	},
	"swe_d2l": func(_ *Module, a []uint64) []uint64 {
		return retI32(int32(math.Round(f64(a[0]))))
	},
	"swe_split_deg": func(m *Module, a []uint64) []uint64 {
		d, mi, s, fr, sgn := splitDeg(f64(a[0]), swisseph.SplitFlag(i32(a[1])))
		m.writeI32(ptr(a[2]), int32(d))
		m.writeI32(ptr(a[3]), int32(mi))
		m.writeI32(ptr(a[4]), int32(s))
		m.writeF64s(ptr(a[5]), fr)
		m.writeI32(ptr(a[6]), int32(sgn))
		return nil
	},
	"swe_cs2degstr": func(m *Module, a []uint64) []uint64 {
		cs := i32(a[0])
		cs %= 30 * 360000
		s := fmt.Sprintf("%2d°%02d'%02d", cs/360000, cs/6000%60, cs/100%60)
		m.writeString(ptr(a[1]), s)
		return retPtr(ptr(a[1]))
	},
	"swe_cotrans": func(m *Module, a []uint64) []uint64 {
		in := m.readF64s(ptr(a[0]), 3)
		lon, lat := cotrans(in[0], in[1], f64(a[2]))
		m.writeF64s(ptr(a[1]), lon, lat, in[2])
		return nil
	},
}

// seq returns n consecutive values from base, so every output slot of an
// export carries a value that identifies it.
func seq(base float64, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = base + float64(i)
	}
	return v
}

// julday is the Meeus conversion the library uses.
func julday(year, month, day int, hour float64, greg bool) float64 {
	u := float64(year)
	if month < 3 {
		u--
	}
	u0 := u + 4712
	u1 := float64(month) + 1
	if u1 < 4 {
		u1 += 12
	}
	jd := math.Floor(u0*365.25) + math.Floor(30.6*u1+0.000001) + float64(day) + hour/24 - 63.5
	if greg {
		u2 := math.Floor(math.Abs(u)/100) - math.Floor(math.Abs(u)/400)
		if u < 0 {
			u2 = -u2
		}
		jd = jd - u2 + 2
		if u < 0 && u/100 == math.Floor(u/100) && u/400 != math.Floor(u/400) {
			jd--
		}
	}
	return jd
}

func revjul(jd float64, greg bool) (year, month, day int, hour float64) {
	u0 := jd + 32082.5
	if greg {
		u1 := u0 + math.Floor(u0/36525) - math.Floor(u0/146100) - 38
		if jd >= 1830691.5 {
			u1++
		}
		u0 = u0 + math.Floor(u1/36525) - math.Floor(u1/146100) - 38
	}
	u2 := math.Floor(u0 + 123)
	u3 := math.Floor((u2 - 122.2) / 365.25)
	u4 := math.Floor((u2 - math.Floor(365.25*u3)) / 30.6001)
	month = int(u4 - 1)
	if month > 12 {
		month -= 12
	}
	day = int(u2 - math.Floor(365.25*u3) - math.Floor(30.6001*u4))
	year = int(u3 + math.Floor((u4-2)/12) - 4800)
	hour = (jd - math.Floor(jd+0.5) + 0.5) * 24
	return
}

func degnorm(x float64) float64 {
	y := math.Mod(x, 360)
	if y < 0 {
		y += 360
	}
	if y >= 360 {
		y -= 360
	}
	return y
}

func difdeg2n(p1, p2 float64) float64 {
	d := degnorm(p1 - p2)
	if d >= 180 {
		d -= 360
	}
	return d
}

// mean longitude at J2000 and daily motion
var meanMotion = map[swisseph.Body][2]float64{
	swisseph.Sun:      {280.460, 0.9856474},
	swisseph.Moon:     {218.316, 13.176396},
	swisseph.Mercury:  {252.251, 4.0923344},
	swisseph.Venus:    {181.980, 1.6021302},
	swisseph.Mars:     {355.433, 0.5240207},
	swisseph.Jupiter:  {34.351, 0.0830853},
	swisseph.Saturn:   {50.077, 0.0334442},
	swisseph.Uranus:   {314.055, 0.0117298},
	swisseph.Neptune:  {304.349, 0.0059810},
	swisseph.Pluto:    {238.929, 0.0039757},
	swisseph.MeanNode: {125.045, -0.0529538},
	swisseph.TrueNode: {125.045, -0.0529538},
	swisseph.MeanApog: {263.353, 0.1114041},
	swisseph.Chiron:   {207.0, 0.0196},
}

var planetNames = map[swisseph.Body]string{
	swisseph.Sun:      "Sun",
	swisseph.Moon:     "Moon",
	swisseph.Mercury:  "Mercury",
	swisseph.Venus:    "Venus",
	swisseph.Mars:     "Mars",
	swisseph.Jupiter:  "Jupiter",
	swisseph.Saturn:   "Saturn",
	swisseph.Uranus:   "Uranus",
	swisseph.Neptune:  "Neptune",
	swisseph.Pluto:    "Pluto",
	swisseph.MeanNode: "mean Node",
	swisseph.TrueNode: "true Node",
	swisseph.MeanApog: "mean Apogee",
	swisseph.Chiron:   "Chiron",
}

var ayanamsaNames = map[swisseph.SidMode]string{
	swisseph.SidmFaganBradley: "Fagan/Bradley",
	swisseph.SidmLahiri:       "Lahiri",
	swisseph.SidmDeluce:       "De Luce",
	swisseph.SidmRaman:        "Raman",
}

// calc answers the calc family: (jd, ipl, iflag, xx, serr) -> iflag.
func calc(m *Module, a []uint64) []uint64 {
	jd, ipl, iflag := f64(a[0]), swisseph.Body(i32(a[1])), swisseph.CalcFlag(i32(a[2]))
	if ipl == swisseph.EclNut {
		m.writeF64s(ptr(a[3]), Obliquity, Obliquity, 0, 0, 0, 0)
		return retI32(int32(iflag))
	}
	mm, ok := meanMotion[ipl]
	if !ok {
		m.writeString(ptr(a[4]), fmt.Sprintf("illegal planet number %d.", ipl))
		return retI32(-1)
	}
	lon := degnorm(mm[0] + mm[1]*(jd-j2000))
	var speed float64
	if iflag&swisseph.FlagSpeed != 0 {
		speed = mm[1]
	}
	m.writeF64s(ptr(a[3]), lon, 0, 1, speed, 0, 0)
	return retI32(int32(iflag))
}

type star struct {
	name  string
	bayer string
	lon   float64
	lat   float64
	mag   float64
	dec   float64
}

var stars = []star{
	{"Aldebaran", "alTau", 69.789, -5.467, 0.86, 16.509},
	{"Regulus", "alLeo", 149.829, 0.465, 1.40, 11.967},
	{"Spica", "alVir", 203.841, -2.054, 0.97, -11.161},
	{"Antares", "alSco", 249.756, -4.570, 1.09, -26.432},
}

// catalogMissing is the library's message when sefstars.txt is absent.
const catalogMissing = "SwissEph file 'sefstars.txt' not found in PATH '/sweph'"

func findStar(query string) (star, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return star{}, false
	}
	for _, s := range stars {
		if strings.HasPrefix(q, ",") {
			if strings.EqualFold(q[1:], s.bayer) {
				return s, true
			}
			continue
		}
		if strings.HasPrefix(strings.ToLower(s.name), strings.Split(q, ",")[0]) {
			return s, true
		}
	}
	return star{}, false
}

// fixstar answers (star, jd, iflag, xx, serr) -> iflag.
func fixstar(m *Module, a []uint64) []uint64 {
	if m.noCatalog {
		m.writeString(ptr(a[4]), catalogMissing)
		return retI32(-1)
	}
	sp := ptr(a[0])
	query := m.readString(sp)
	s, ok := findStar(query)
	if !ok {
		m.writeString(ptr(a[4]), fmt.Sprintf("star %s not found", query))
		return retI32(-1)
	}
	m.writeString(sp, s.name+","+s.bayer)
	// precession only
	lon := degnorm(s.lon + (f64(a[1])-j2000)/36525*1.3969713)
	m.writeF64s(ptr(a[3]), lon, s.lat, 1e7, 0, 0, 0)
	return retI32(i32(a[2]))
}

// fixstarMag answers (star, mag, serr) -> status.
func fixstarMag(m *Module, a []uint64) []uint64 {
	if m.noCatalog {
		m.writeString(ptr(a[2]), catalogMissing)
		return retI32(-1)
	}
	sp := ptr(a[0])
	query := m.readString(sp)
	s, ok := findStar(query)
	if !ok {
		m.writeString(ptr(a[2]), fmt.Sprintf("star %s not found", query))
		return retI32(-1)
	}
	m.writeString(sp, s.name+","+s.bayer)
	m.writeF64s(ptr(a[1]), s.mag)
	return retI32(0)
}

// houses writes equal houses from a simplified ascendant. Quadrant systems
// fail inside the polar circles and fall back to Porphyry, as the library
// does.
func houses(m *Module, jd, lat, lon float64, hsys swisseph.HouseSystem, cusps, ascmc, cuspSpeed, ascmcSpeed, serr uint32) int32 {
	armc := degnorm(280.46061837 + 360.98564736629*(jd-j2000) + lon)
	asc := degnorm(armc + 90)
	n := hsys.Cusps()

	cv := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		cv[i] = degnorm(asc + float64(i-1)*360/float64(n))
	}
	m.writeF64s(cusps, cv...)
	m.writeF64s(ascmc, asc, armc, armc, degnorm(asc+180), asc, 0, 0, 0, 0, 0)

	if cuspSpeed != 0 {
		sv := make([]float64, n+1)
		for i := 1; i <= n; i++ {
			sv[i] = 360.98564736629
		}
		m.writeF64s(cuspSpeed, sv...)
		m.writeF64s(ascmcSpeed, 360.98564736629, 360.98564736629, 360.98564736629, 0, 0, 0, 0, 0, 0, 0)
	}

	quadrant := hsys == swisseph.HousePlacidus || hsys == swisseph.HouseKoch
	if quadrant && math.Abs(lat) > 66.5 {
		m.writeString(serr, "within polar circle, switched to Porphyry")
		return -1
	}
	return 0
}

func splitDeg(deg float64, flags swisseph.SplitFlag) (d, mi, s int, frac float64, sign int) {
	sign = 1
	if deg < 0 {
		sign = -1
		deg = -deg
	}
	switch {
	case flags&swisseph.SplitDegRoundDeg != 0:
		deg += 0.5
	case flags&swisseph.SplitDegRoundMin != 0:
		deg += 0.5 / 60
	case flags&swisseph.SplitDegRoundSec != 0:
		deg += 0.5 / 3600
	}
	if flags&swisseph.SplitDegZodiacal != 0 {
		sign = int(deg / 30)
		if sign == 12 {
			sign = 0
		}
		deg = math.Mod(deg, 30)
	}
	d = int(deg)
	rest := (deg - float64(d)) * 60
	mi = int(rest)
	rest = (rest - float64(mi)) * 60
	s = int(rest)
	frac = rest - float64(s)
	switch {
	case flags&swisseph.SplitDegRoundDeg != 0:
		mi, s, frac = 0, 0, 0
	case flags&swisseph.SplitDegRoundMin != 0:
		s, frac = 0, 0
	case flags&swisseph.SplitDegRoundSec != 0:
		frac = 0
	}
	return
}

// cotrans rotates (lon, lat) about the x axis by eps degrees.
func cotrans(lon, lat, eps float64) (float64, float64) {
	rad := math.Pi / 180
	l, b, e := lon*rad, lat*rad, eps*rad
	x := math.Cos(b) * math.Cos(l)
	y := math.Cos(b) * math.Sin(l)
	z := math.Sin(b)
	y2 := y*math.Cos(e) + z*math.Sin(e)
	z2 := -y*math.Sin(e) + z*math.Cos(e)
	return degnorm(math.Atan2(y2, x) / rad), math.Asin(z2) / rad
}
