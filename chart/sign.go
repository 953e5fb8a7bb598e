package chart

import (
	"fmt"
	"math"
)

// Sign is a zodiac sign and the position within it.
type Sign struct {
	Index   int // 0 = Aries
	Name    string
	Symbol  string
	Element string
	Quality string
	Degree  float64 // [0, 30)
}

func (s Sign) String() string {
	return fmt.Sprintf("%.2f° %s", s.Degree, s.Name)
}

var signs = [12]Sign{
	{Name: "Aries", Symbol: "♈", Element: "Fire", Quality: "Cardinal"},
	{Name: "Taurus", Symbol: "♉", Element: "Earth", Quality: "Fixed"},
	{Name: "Gemini", Symbol: "♊", Element: "Air", Quality: "Mutable"},
	{Name: "Cancer", Symbol: "♋", Element: "Water", Quality: "Cardinal"},
	{Name: "Leo", Symbol: "♌", Element: "Fire", Quality: "Fixed"},
	{Name: "Virgo", Symbol: "♍", Element: "Earth", Quality: "Mutable"},
	{Name: "Libra", Symbol: "♎", Element: "Air", Quality: "Cardinal"},
	{Name: "Scorpio", Symbol: "♏", Element: "Water", Quality: "Fixed"},
	{Name: "Sagittarius", Symbol: "♐", Element: "Fire", Quality: "Mutable"},
	{Name: "Capricorn", Symbol: "♑", Element: "Earth", Quality: "Cardinal"},
	{Name: "Aquarius", Symbol: "♒", Element: "Air", Quality: "Fixed"},
	{Name: "Pisces", Symbol: "♓", Element: "Water", Quality: "Mutable"},
}

// SignOf returns the sign holding an ecliptic longitude.
func SignOf(lon float64) Sign {
	lon = norm(lon)
	i := int(lon / 30)
	if i > 11 {
		i = 11
	}
	s := signs[i]
	s.Index = i
	s.Degree = lon - float64(i)*30
	return s
}

func norm(x float64) float64 {
	x = math.Mod(x, 360)
	if x < 0 {
		x += 360
	}
	return x
}
