package server

import (
	"github.com/wippyai/swisseph-wasm/chart"
	"github.com/wippyai/swisseph-wasm/sweph"
)

type Position struct {
	Body           string  `json:"body"`
	Longitude      float64 `json:"longitude"`
	Latitude       float64 `json:"latitude"`
	Distance       float64 `json:"distance"`            // AU
	SpeedLongitude float64 `json:"speed_longitude"`     // degrees per day
	SpeedLatitude  float64 `json:"speed_latitude"`      // degrees per day
	SpeedDistance  float64 `json:"speed_distance"`      // AU per day
	Flags          int32   `json:"flags"`               // flags actually applied
	Sign           string  `json:"sign,omitempty"`      // e.g. "24.53° Taurus"
	StarName       string  `json:"star_name,omitempty"` // resolved catalog name
}

func positionOf(body string, p sweph.Position) Position {
	return Position{
		Body:           body,
		Longitude:      p.Longitude,
		Latitude:       p.Latitude,
		Distance:       p.Distance,
		SpeedLongitude: p.SpeedLongitude,
		SpeedLatitude:  p.SpeedLatitude,
		SpeedDistance:  p.SpeedDistance,
		Flags:          int32(p.Flags),
		Sign:           chart.SignOf(p.Longitude).String(),
	}
}

type Houses struct {
	System    string    `json:"system"`
	Cusps     []float64 `json:"cusps"`
	Ascendant float64   `json:"ascendant"`
	Midheaven float64   `json:"midheaven"`
	ARMC      float64   `json:"armc"`
	Vertex    float64   `json:"vertex"`
}

type RiseTransit struct {
	Body  string  `json:"body"`
	Event string  `json:"event"`
	JD    float64 `json:"jd"`
	Time  string  `json:"time"` // RFC 3339, UTC
}

type ChartPlanet struct {
	Name       string  `json:"name"`
	Symbol     string  `json:"symbol"`
	Longitude  float64 `json:"longitude"`
	Latitude   float64 `json:"latitude"`
	Speed      float64 `json:"speed"`
	Retrograde bool    `json:"retrograde"`
	Sign       string  `json:"sign"`
	House      float64 `json:"house"`
}

type ChartPoint struct {
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
	Sign      string  `json:"sign"`
}

type ChartAspect struct {
	First    string  `json:"first"`
	Second   string  `json:"second"`
	Aspect   string  `json:"aspect"`
	Actual   float64 `json:"actual"`
	Orb      float64 `json:"orb"`
	Applying bool    `json:"applying"`
}

type Chart struct {
	JulianDay   float64       `json:"julian_day"`
	HouseSystem string        `json:"house_system"`
	Planets     []ChartPlanet `json:"planets"`
	Points      []ChartPoint  `json:"points"`
	Cusps       []float64     `json:"cusps"`
	Ascendant   float64       `json:"ascendant"`
	Midheaven   float64       `json:"midheaven"`
	Aspects     []ChartAspect `json:"aspects"`
	Version     string        `json:"version"`
}

func chartOf(ch *chart.Chart) Chart {
	out := Chart{
		JulianDay:   ch.JulianDay,
		HouseSystem: string(rune(ch.HouseSystem)),
		Ascendant:   ch.Angles.Ascendant,
		Midheaven:   ch.Angles.Midheaven,
		Version:     ch.Version,
	}
	for _, p := range ch.Planets {
		out.Planets = append(out.Planets, ChartPlanet{
			Name:       p.Name,
			Symbol:     p.Symbol,
			Longitude:  p.Longitude,
			Latitude:   p.Latitude,
			Speed:      p.Speed,
			Retrograde: p.Retrograde,
			Sign:       p.Sign.String(),
			House:      p.House,
		})
	}
	for _, p := range ch.Points {
		out.Points = append(out.Points, ChartPoint{Name: p.Name, Longitude: p.Longitude, Sign: p.Sign.String()})
	}
	for _, c := range ch.Cusps {
		out.Cusps = append(out.Cusps, c.Longitude)
	}
	for _, a := range ch.Aspects {
		out.Aspects = append(out.Aspects, ChartAspect{
			First:    a.First,
			Second:   a.Second,
			Aspect:   a.Type.Name,
			Actual:   a.Actual,
			Orb:      a.Orb,
			Applying: a.Applying,
		})
	}
	return out
}
