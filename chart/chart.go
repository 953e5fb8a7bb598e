// Package chart composes a birth chart from the ephemeris: planet
// positions, houses, lunar nodes and aspects.
package chart

import (
	"context"
	"time"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/errors"
	"github.com/wippyai/swisseph-wasm/sweph"
)

// Ephemeris is the part of *sweph.SwissEph a chart needs.
type Ephemeris interface {
	JulDay(ctx context.Context, year, month, day int, hour float64, cal swisseph.Calendar) (float64, error)
	CalcUT(ctx context.Context, jdUT float64, body swisseph.Body, flags swisseph.CalcFlag) (*sweph.Position, error)
	Houses(ctx context.Context, jdUT, lat, lon float64, hsys swisseph.HouseSystem) (*sweph.Houses, error)
	HousePos(ctx context.Context, armc, geoLat, eps float64, hsys swisseph.HouseSystem, lon, lat float64) (float64, error)
	Version(ctx context.Context) (string, error)
}

// Input is a moment and place of birth.
type Input struct {
	Time        time.Time // local time; its location gives the UTC offset
	Latitude    float64
	Longitude   float64
	HouseSystem swisseph.HouseSystem // Placidus when zero
}

// Planet is a body's position in the chart.
type Planet struct {
	Body       swisseph.Body
	Name       string
	Symbol     string
	Longitude  float64
	Latitude   float64
	Distance   float64
	Speed      float64
	Retrograde bool
	Sign       Sign
	House      float64 // fractional house position, from 1 up to one past the cusp count (13, or 37 for Gauquelin)
}

// Point is a derived sensitive point such as a lunar node.
type Point struct {
	Name      string
	Symbol    string
	Longitude float64
	Sign      Sign
}

// Cusp is the start of one house.
type Cusp struct {
	House     int
	Longitude float64
	Sign      Sign
}

// Angles are the chart's four angles.
type Angles struct {
	Ascendant  float64
	Midheaven  float64
	Descendant float64
	ImumCoeli  float64
}

// Chart is a computed birth chart.
type Chart struct {
	Input     Input
	JulianDay float64 // UT
	// HouseSystem is the system the cusps were computed with. It is
	// PolarFallback when Input asked for a quadrant system the library
	// cannot draw at that latitude.
	HouseSystem swisseph.HouseSystem
	Planets     []Planet
	Points      []Point
	Cusps       []Cusp
	Angles      Angles
	Aspects     []Aspect
	Version     string
}

// Flags are the calculation flags used for every body.
const Flags = swisseph.FlagSwiEph | swisseph.FlagSpeed

// PolarFallback replaces Placidus and Koch houses inside the polar
// circles, where their cusps are undefined.
const PolarFallback = swisseph.HousePorphyrius

type body struct {
	id     swisseph.Body
	name   string
	symbol string
}

var planets = []body{
	{swisseph.Sun, "Sun", "☉"},
	{swisseph.Moon, "Moon", "☽"},
	{swisseph.Mercury, "Mercury", "☿"},
	{swisseph.Venus, "Venus", "♀"},
	{swisseph.Mars, "Mars", "♂"},
	{swisseph.Jupiter, "Jupiter", "♃"},
	{swisseph.Saturn, "Saturn", "♄"},
	{swisseph.Uranus, "Uranus", "♅"},
	{swisseph.Neptune, "Neptune", "♆"},
	{swisseph.Pluto, "Pluto", "♇"},
}

// Compute builds the chart for in.
func Compute(ctx context.Context, eph Ephemeris, in Input) (*Chart, error) {
	if in.Time.IsZero() {
		return nil, errors.InvalidInput(errors.PhaseEncode, "chart time is required")
	}
	if in.HouseSystem == 0 {
		in.HouseSystem = swisseph.HousePlacidus
	}

	ut := in.Time.UTC()
	hour := float64(ut.Hour()) + float64(ut.Minute())/60 + (float64(ut.Second())+float64(ut.Nanosecond())/1e9)/3600
	jd, err := eph.JulDay(ctx, ut.Year(), int(ut.Month()), ut.Day(), hour, swisseph.GregCal)
	if err != nil {
		return nil, err
	}

	ch := &Chart{Input: in, JulianDay: jd, HouseSystem: in.HouseSystem}

	houses, err := eph.Houses(ctx, jd, in.Latitude, in.Longitude, in.HouseSystem)
	if err != nil && quadrant(in.HouseSystem) && errors.IsNative(err) {
		ch.HouseSystem = PolarFallback
		houses, err = eph.Houses(ctx, jd, in.Latitude, in.Longitude, ch.HouseSystem)
	}
	if err != nil {
		return nil, err
	}
	for i, lon := range houses.Cusps {
		ch.Cusps = append(ch.Cusps, Cusp{House: i + 1, Longitude: lon, Sign: SignOf(lon)})
	}
	ch.Angles = Angles{
		Ascendant:  houses.Points.Asc,
		Midheaven:  houses.Points.MC,
		Descendant: norm(houses.Points.Asc + 180),
		ImumCoeli:  norm(houses.Points.MC + 180),
	}

	// true obliquity for house placement
	nut, err := eph.CalcUT(ctx, jd, swisseph.EclNut, 0)
	if err != nil {
		return nil, err
	}
	eps := nut.Longitude

	for _, b := range planets {
		pos, err := eph.CalcUT(ctx, jd, b.id, Flags)
		if err != nil {
			return nil, err
		}
		house, err := eph.HousePos(ctx, houses.Points.ARMC, in.Latitude, eps, ch.HouseSystem, pos.Longitude, pos.Latitude)
		if err != nil {
			return nil, err
		}
		ch.Planets = append(ch.Planets, Planet{
			Body:       b.id,
			Name:       b.name,
			Symbol:     b.symbol,
			Longitude:  pos.Longitude,
			Latitude:   pos.Latitude,
			Distance:   pos.Distance,
			Speed:      pos.SpeedLongitude,
			Retrograde: pos.SpeedLongitude < 0,
			Sign:       SignOf(pos.Longitude),
			House:      house,
		})
	}

	if ch.Points, err = points(ctx, eph, jd); err != nil {
		return nil, err
	}
	ch.Aspects = Aspects(ch.Planets, MajorAspects)

	if ch.Version, err = eph.Version(ctx); err != nil {
		return nil, err
	}
	return ch, nil
}

func quadrant(hsys swisseph.HouseSystem) bool {
	return hsys == swisseph.HousePlacidus || hsys == swisseph.HouseKoch
}

func points(ctx context.Context, eph Ephemeris, jd float64) ([]Point, error) {
	lon := func(b swisseph.Body) (float64, error) {
		pos, err := eph.CalcUT(ctx, jd, b, swisseph.FlagSwiEph)
		if err != nil {
			return 0, err
		}
		return pos.Longitude, nil
	}

	meanNode, err := lon(swisseph.MeanNode)
	if err != nil {
		return nil, err
	}
	trueNode, err := lon(swisseph.TrueNode)
	if err != nil {
		return nil, err
	}
	lilith, err := lon(swisseph.MeanApog)
	if err != nil {
		return nil, err
	}
	chiron, err := lon(swisseph.Chiron)
	if err != nil {
		return nil, err
	}

	point := func(name, symbol string, l float64) Point {
		l = norm(l)
		return Point{Name: name, Symbol: symbol, Longitude: l, Sign: SignOf(l)}
	}
	return []Point{
		point("Mean North Node", "☊", meanNode),
		point("True North Node", "☊", trueNode),
		point("Mean South Node", "☋", meanNode+180),
		point("Mean Lilith", "⚸", lilith),
		point("Chiron", "⚷", chiron),
	}, nil
}

// Planet returns the named planet.
func (c *Chart) Planet(name string) (Planet, bool) {
	for _, p := range c.Planets {
		if p.Name == name {
			return p, true
		}
	}
	return Planet{}, false
}
