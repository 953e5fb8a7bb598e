package fakeswe

import (
	"fmt"
	"math"

	swisseph "github.com/wippyai/swisseph-wasm"
)

// DeltaT is the fixed ET - UT the fake applies, in days.
const DeltaT = 64.184 / 86400

var timeHandlers = map[string]Handler{
	// (y, m, d, h, min, sec, gregflag, dret, serr) -> status
	"swe_utc_to_jd": func(m *Module, a []uint64) []uint64 {
		y, mo, d := int(i32(a[0])), int(i32(a[1])), int(i32(a[2]))
		if mo < 1 || mo > 12 || d < 1 || d > 31 {
			m.writeString(ptr(a[8]), fmt.Sprintf("invalid date: year = %d, month = %d, day = %d", y, mo, d))
			return retI32(-1)
		}
		hour := float64(i32(a[3])) + float64(i32(a[4]))/60 + f64(a[5])/3600
		ut := julday(y, mo, d, hour, i32(a[6]) == int32(swisseph.GregCal))
		m.writeF64s(ptr(a[7]), ut+DeltaT, ut)
		return retI32(0)
	},
	"swe_jdet_to_utc": func(m *Module, a []uint64) []uint64 {
		m.writeUTC(f64(a[0])-DeltaT, i32(a[1]) == int32(swisseph.GregCal), a[2:8])
		return nil
	},
	"swe_jdut1_to_utc": func(m *Module, a []uint64) []uint64 {
		m.writeUTC(f64(a[0]), i32(a[1]) == int32(swisseph.GregCal), a[2:8])
		return nil
	},
	// (y, m, d, h, min, sec, tz, y', m', d', h', min', sec')
	"swe_utc_time_zone": func(m *Module, a []uint64) []uint64 {
		hour := float64(i32(a[3])) + float64(i32(a[4]))/60 + f64(a[5])/3600
		jd := julday(int(i32(a[0])), int(i32(a[1])), int(i32(a[2])), hour, true) - f64(a[6])/24
		m.writeUTC(jd, true, a[7:13])
		return nil
	},
	"swe_time_equ": func(m *Module, a []uint64) []uint64 {
		m.writeF64s(ptr(a[1]), timeEqu(f64(a[0])))
		return retI32(0)
	},

	// (jd, flag, geopos, press, temp, xin, xaz): azimuth from the
	// longitude, altitude from the latitude
	"swe_azalt": func(m *Module, a []uint64) []uint64 {
		xin := m.readF64s(ptr(a[5]), 2)
		alt := xin[1]
		m.writeF64s(ptr(a[6]), degnorm(xin[0]+180), alt, alt+refraction(alt))
		return nil
	},
	"swe_azalt_rev": func(m *Module, a []uint64) []uint64 {
		xin := m.readF64s(ptr(a[3]), 2)
		m.writeF64s(ptr(a[4]), degnorm(xin[0]-180), xin[1], 1)
		return nil
	},
	"swe_refrac": func(_ *Module, a []uint64) []uint64 {
		alt := f64(a[0])
		if swisseph.RefracMode(i32(a[3])) == swisseph.TrueToApp {
			return retF64(alt + refraction(alt))
		}
		return retF64(alt - bennett(alt))
	},
	// (alt, geoalt, press, temp, lapse, flag, dret) -> converted
	"swe_refrac_extended": func(m *Module, a []uint64) []uint64 {
		alt, geoalt := f64(a[0]), f64(a[1])
		dip := -0.0293 * math.Sqrt(math.Max(geoalt, 0))
		if swisseph.RefracMode(i32(a[5])) == swisseph.TrueToApp {
			r := refraction(alt)
			m.writeF64s(ptr(a[6]), alt, alt+r, r, dip)
			return retF64(alt + r)
		}
		r := bennett(alt)
		m.writeF64s(ptr(a[6]), alt-r, alt, r, dip)
		return retF64(alt - r)
	},

	// (cs, sep, suppress_zero, buf) -> buf
	"swe_cs2timestr": func(m *Module, a []uint64) []uint64 {
		cs, sep := i32(a[0]), byte(i32(a[1]))
		h, mi, s := cs/360000, cs/6000%60, cs/100%60
		str := fmt.Sprintf("%d%c%02d%c%02d", h, sep, mi, sep, s)
		if i32(a[2]) != 0 && s == 0 {
			str = fmt.Sprintf("%d%c%02d", h, sep, mi)
		}
		m.writeString(ptr(a[3]), str)
		return retPtr(ptr(a[3]))
	},
	// (cs, plus, minus, buf) -> buf
	"swe_cs2lonlatstr": func(m *Module, a []uint64) []uint64 {
		cs, hemi := i32(a[0]), byte(i32(a[1]))
		if cs < 0 {
			cs, hemi = -cs, byte(i32(a[2]))
		}
		str := fmt.Sprintf("%d%c%02d'%02d", cs/360000, hemi, cs/6000%60, cs/100%60)
		m.writeString(ptr(a[3]), str)
		return retPtr(ptr(a[3]))
	},
}

// writeUTC splits jd into the six out-pointers of the UTC exports.
func (m *Module) writeUTC(jd float64, greg bool, out []uint64) {
	y, mo, d, hour := revjul(jd, greg)
	secs := math.Round(hour*3600*1e6) / 1e6
	h := int(secs / 3600)
	secs -= float64(h) * 3600
	mi := int(secs / 60)
	secs -= float64(mi) * 60

	m.writeI32(ptr(out[0]), int32(y))
	m.writeI32(ptr(out[1]), int32(mo))
	m.writeI32(ptr(out[2]), int32(d))
	m.writeI32(ptr(out[3]), int32(h))
	m.writeI32(ptr(out[4]), int32(mi))
	m.writeF64s(ptr(out[5]), secs)
}

// timeEqu is the usual two-term approximation, in days.
func timeEqu(jd float64) float64 {
	n := math.Mod(jd-2451544.5, 365.25)
	b := 2 * math.Pi * (n - 81) / 364
	minutes := 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
	return minutes / 1440
}

// refraction is Saemundsson's formula for a true altitude, in degrees.
func refraction(alt float64) float64 {
	if alt < -2 {
		return 0
	}
	return 1.02 / math.Tan((alt+10.3/(alt+5.11))*math.Pi/180) / 60
}

// bennett is Bennett's formula for an apparent altitude, in degrees.
func bennett(alt float64) float64 {
	if alt < -2 {
		return 0
	}
	return 1 / math.Tan((alt+7.31/(alt+4.4))*math.Pi/180) / 60
}
