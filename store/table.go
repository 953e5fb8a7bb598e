package store

import (
	"context"
	"math"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/errors"
	"github.com/wippyai/swisseph-wasm/sweph"
)

// Calculator is the part of *sweph.SwissEph a table needs.
type Calculator interface {
	CalcUT(ctx context.Context, jdUT float64, body swisseph.Body, flags swisseph.CalcFlag) (*sweph.Position, error)
	PlanetName(ctx context.Context, body swisseph.Body) (string, error)
}

// Range is an inclusive span of Julian days in UT sampled every Step days.
type Range struct {
	From float64
	To   float64
	Step float64
}

// Steps returns the number of samples in r.
func (r Range) Steps() int {
	if r.Step <= 0 || r.To < r.From {
		return 0
	}
	// tolerate rounding so that To itself is included
	return int(math.Floor((r.To-r.From)/r.Step+1e-9)) + 1
}

// Generate computes rows for every body at every step of r.
func Generate(ctx context.Context, calc Calculator, r Range, bodies []swisseph.Body, flags swisseph.CalcFlag) ([]Row, error) {
	n := r.Steps()
	if n == 0 {
		return nil, errors.InvalidInput(errors.PhaseEncode, "empty or inverted range")
	}

	names := make([]string, len(bodies))
	for i, b := range bodies {
		name, err := calc.PlanetName(ctx, b)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}

	rows := make([]Row, 0, n*len(bodies))
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		jd := r.From + float64(i)*r.Step
		for j, b := range bodies {
			pos, err := calc.CalcUT(ctx, jd, b, flags)
			if err != nil {
				return nil, err
			}
			rows = append(rows, Row{
				Body:      b,
				Name:      names[j],
				JD:        jd,
				Longitude: pos.Longitude,
				Latitude:  pos.Latitude,
				Distance:  pos.Distance,
				Speed:     pos.SpeedLongitude,
			})
		}
	}
	return rows, nil
}
