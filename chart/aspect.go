package chart

import (
	"math"
	"sort"
)

// AspectType is an angular relation and the orb it tolerates.
type AspectType struct {
	Name   string
	Symbol string
	Angle  float64
	Orb    float64
}

// MajorAspects are the aspects Compute looks for.
var MajorAspects = []AspectType{
	{Name: "Conjunction", Symbol: "☌", Angle: 0, Orb: 8},
	{Name: "Opposition", Symbol: "☍", Angle: 180, Orb: 8},
	{Name: "Trine", Symbol: "△", Angle: 120, Orb: 6},
	{Name: "Square", Symbol: "□", Angle: 90, Orb: 6},
	{Name: "Sextile", Symbol: "⚹", Angle: 60, Orb: 4},
	{Name: "Quincunx", Symbol: "⚻", Angle: 150, Orb: 3},
}

// Aspect is one aspect found between two planets.
type Aspect struct {
	First  string
	Second string
	Type   AspectType
	Actual float64 // separation in [0, 180]
	Orb    float64 // |Actual - Type.Angle|
	// Applying is set when the orb is shrinking at the planets' current
	// speeds.
	Applying bool
}

// separation is the shorter arc between two longitudes.
func separation(a, b float64) float64 {
	d := math.Abs(norm(a) - norm(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Aspects finds every aspect of types between each pair of planets,
// tightest first.
func Aspects(planets []Planet, types []AspectType) []Aspect {
	var out []Aspect
	for i := 0; i < len(planets); i++ {
		for j := i + 1; j < len(planets); j++ {
			p, q := planets[i], planets[j]
			sep := separation(p.Longitude, q.Longitude)
			for _, at := range types {
				orb := math.Abs(sep - at.Angle)
				if orb > at.Orb {
					continue
				}
				// look an hour ahead
				const dt = 1.0 / 24
				next := math.Abs(separation(p.Longitude+p.Speed*dt, q.Longitude+q.Speed*dt) - at.Angle)
				out = append(out, Aspect{
					First:    p.Name,
					Second:   q.Name,
					Type:     at,
					Actual:   sep,
					Orb:      orb,
					Applying: next < orb,
				})
			}
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Orb < out[b].Orb })
	return out
}
