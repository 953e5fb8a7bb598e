package sweph_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/engine"
	"github.com/wippyai/swisseph-wasm/errors"
	"github.com/wippyai/swisseph-wasm/internal/fakeswe"
	"github.com/wippyai/swisseph-wasm/sweph"
)

func open(t *testing.T) (*sweph.SwissEph, *fakeswe.Module) {
	t.Helper()
	native, err := fakeswe.New()
	require.NoError(t, err)
	swe, err := sweph.New(context.Background(), native)
	require.NoError(t, err)
	t.Cleanup(func() { _ = swe.Close(context.Background()) })
	return swe, native
}

// requireBalanced fails when a call left guest blocks behind.
func requireBalanced(t *testing.T, native *fakeswe.Module) {
	t.Helper()
	require.Zero(t, native.Heap().Live(), "leaked guest allocations")
	require.Zero(t, native.Heap().BadFrees(), "freed a block twice")
}

func TestSignatures(t *testing.T) {
	sigs, err := sweph.Signatures()
	require.NoError(t, err)

	byName := make(map[string]engine.Signature, len(sigs))
	for _, s := range sigs {
		byName[s.Name] = s
	}
	for _, name := range []string{"malloc", "free", "swe_calc_ut", "swe_houses", "swe_close", "swe_heliacal_ut"} {
		assert.Contains(t, byName, name)
	}
	assert.Len(t, byName["swe_calc_ut"].Params, 5)
	assert.Len(t, byName["swe_close"].Params, 0)
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("new sets the default search path", func(t *testing.T) {
		swe, native := open(t)
		assert.Equal(t, engine.DefaultGuestDir, native.EphePath())
		assert.Equal(t, engine.DefaultGuestDir, swe.EphePath())
		requireBalanced(t, native)
	})

	t.Run("custom search path", func(t *testing.T) {
		native, err := fakeswe.New()
		require.NoError(t, err)
		swe, err := sweph.New(ctx, native, sweph.WithEphePath("/data/ephe"))
		require.NoError(t, err)
		assert.Equal(t, "/data/ephe", native.EphePath())

		require.NoError(t, swe.SetEphePath(ctx, "/other"))
		assert.Equal(t, "/other", swe.EphePath())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		swe, native := open(t)
		require.NoError(t, swe.Close(ctx))
		require.NoError(t, swe.Close(ctx))

		assert.Equal(t, 1, native.CloseCalls())
		assert.True(t, native.Closed())
		assert.True(t, swe.Closed())
	})

	t.Run("calls after close fail", func(t *testing.T) {
		swe, native := open(t)
		require.NoError(t, swe.Close(ctx))

		_, err := swe.CalcUT(ctx, 2451545, swisseph.Sun, swisseph.FlagSwiEph)
		require.Error(t, err)
		assert.True(t, errors.IsClosed(err))
		assert.Zero(t, native.Calls("swe_calc_ut"))
	})

	t.Run("zero value is not initialized", func(t *testing.T) {
		var swe sweph.SwissEph
		_, err := swe.DegNorm(ctx, 10)
		require.Error(t, err)

		var e *errors.Error
		require.True(t, stderrors.As(err, &e))
		assert.Equal(t, errors.KindNotInitialized, e.Kind)
		assert.NoError(t, swe.Close(ctx))
	})

	t.Run("nil native", func(t *testing.T) {
		_, err := sweph.New(ctx, nil)
		require.Error(t, err)
	})

	t.Run("failing setup is reported", func(t *testing.T) {
		native, err := fakeswe.New()
		require.NoError(t, err)
		native.Trap("swe_set_ephe_path", stderrors.New("unreachable"))

		_, err = sweph.New(ctx, native)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configure ephemeris path")
	})
}

func TestDates(t *testing.T) {
	ctx := context.Background()
	swe, native := open(t)

	jd, err := swe.JulDay(ctx, 2000, 1, 1, 12, swisseph.GregCal)
	require.NoError(t, err)
	assert.Equal(t, 2451545.0, jd)

	jd, err = swe.JulDay(ctx, 2023, 6, 15, 12, swisseph.GregCal)
	require.NoError(t, err)
	assert.Greater(t, jd, 2460000.0)
	assert.Less(t, jd, 2461000.0)
	assert.InDelta(t, sweph.JulianDay(time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)), jd, 1e-9)

	date, err := swe.RevJul(ctx, jd, swisseph.GregCal)
	require.NoError(t, err)
	assert.Equal(t, sweph.Date{Year: 2023, Month: 6, Day: 15, Hour: 12}, date)

	day, err := swe.DayOfWeek(ctx, 2451545)
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, day)

	_, err = swe.DateConversion(ctx, 2023, 2, 30, 0, swisseph.GregCal)
	require.Error(t, err)
	assert.True(t, errors.IsNative(err))

	requireBalanced(t, native)
}

func TestTimeHelpers(t *testing.T) {
	at := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 2451545.0, sweph.JulianDay(at))
	assert.WithinDuration(t, at, sweph.TimeOf(2451545), time.Millisecond)

	dt := sweph.DateTimeOf(time.Date(2024, 3, 20, 3, 6, 30, 500_000_000, time.UTC))
	assert.Equal(t, sweph.DateTime{Year: 2024, Month: 3, Day: 20, Hour: 3, Minute: 6, Second: 30.5}, dt)
	assert.Equal(t, time.Date(2024, 3, 20, 3, 6, 30, 500_000_000, time.UTC), dt.Time())
}

func TestMath(t *testing.T) {
	ctx := context.Background()
	swe, native := open(t)

	for _, x := range []float64{-720, -1, 0, 359.999, 360, 725.5} {
		n, err := swe.DegNorm(ctx, x)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0.0)
		assert.Less(t, n, 360.0)

		again, err := swe.DegNorm(ctx, n)
		require.NoError(t, err)
		assert.Equal(t, n, again)
	}

	d, err := swe.DifDeg2N(ctx, 10, 350)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, d, 1e-12)

	mid, err := swe.DegMidp(ctx, 10, 350)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, mid, 1e-12)

	split, err := swe.SplitDeg(ctx, 45.5, swisseph.SplitDegZodiacal|swisseph.SplitDegRoundSec)
	require.NoError(t, err)
	assert.Equal(t, 1, split.Sign)
	assert.Equal(t, 15, split.Degrees)
	assert.Equal(t, 30, split.Minutes)
	assert.Equal(t, 0, split.Seconds)

	str, err := swe.CS2DegStr(ctx, 15*360000+30*6000)
	require.NoError(t, err)
	assert.Equal(t, "15°30'00", str)

	out, err := swe.Cotrans(ctx, [3]float64{90, 0, 1}, -23.4392911)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, out[0], 1e-9)
	assert.InDelta(t, 23.4392911, out[1], 1e-9)
	assert.Equal(t, 1.0, out[2])

	requireBalanced(t, native)
}

func TestCalc(t *testing.T) {
	ctx := context.Background()

	t.Run("position", func(t *testing.T) {
		swe, native := open(t)
		pos, err := swe.CalcUT(ctx, 2451545, swisseph.Sun, swisseph.FlagSwiEph|swisseph.FlagSpeed)
		require.NoError(t, err)
		require.NotNil(t, pos)
		assert.InDelta(t, 280.46, pos.Longitude, 0.01)
		assert.Greater(t, pos.SpeedLongitude, 0.9)
		assert.Equal(t, swisseph.FlagSwiEph|swisseph.FlagSpeed, pos.Flags)
		requireBalanced(t, native)
	})

	t.Run("illegal body carries the diagnostic", func(t *testing.T) {
		swe, native := open(t)
		_, err := swe.Calc(ctx, 2451545, 99, swisseph.FlagSwiEph)
		require.Error(t, err)

		var e *errors.Error
		require.True(t, stderrors.As(err, &e))
		assert.Equal(t, errors.KindNative, e.Kind)
		assert.Equal(t, "swe_calc", e.Func)
		assert.Equal(t, int32(-1), e.Code)
		assert.Contains(t, e.Detail, "illegal planet number 99")
		requireBalanced(t, native)
	})

	t.Run("repeated failures do not leak", func(t *testing.T) {
		swe, native := open(t)
		before := native.Heap().Mallocs()
		for i := 0; i < 100; i++ {
			_, err := swe.CalcUT(ctx, 2451545, 99, swisseph.FlagSwiEph)
			require.Error(t, err)
		}
		assert.Greater(t, native.Heap().Mallocs(), before)
		requireBalanced(t, native)
	})

	t.Run("trap frees scratch", func(t *testing.T) {
		swe, native := open(t)
		native.Trap("swe_calc_ut", stderrors.New("unreachable executed"))

		_, err := swe.CalcUT(ctx, 2451545, swisseph.Moon, swisseph.FlagSwiEph)
		require.Error(t, err)
		assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseCall, Kind: errors.KindTrap})
		requireBalanced(t, native)
	})

	t.Run("allocation failure midway frees earlier blocks", func(t *testing.T) {
		swe, native := open(t)
		native.Heap().FailAfter(1)

		_, err := swe.CalcUT(ctx, 2451545, swisseph.Moon, swisseph.FlagSwiEph)
		require.Error(t, err)
		assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindAllocation})
		assert.Zero(t, native.Calls("swe_calc_ut"))

		native.Heap().FailAfter(-1)
		requireBalanced(t, native)
	})

	t.Run("planet name", func(t *testing.T) {
		swe, native := open(t)
		name, err := swe.PlanetName(ctx, swisseph.Jupiter)
		require.NoError(t, err)
		assert.Equal(t, "Jupiter", name)
		requireBalanced(t, native)
	})
}

func TestFixStar(t *testing.T) {
	ctx := context.Background()
	swe, native := open(t)

	star, err := swe.FixStar2UT(ctx, "Aldebaran", 2451545, swisseph.FlagSwiEph)
	require.NoError(t, err)
	require.NotNil(t, star)
	assert.Equal(t, "Aldebaran,alTau", star.Name)
	assert.InDelta(t, 69.79, star.Longitude, 0.01)

	star, err = swe.FixStar(ctx, ",alVir", 2451545, swisseph.FlagSwiEph)
	require.NoError(t, err)
	require.NotNil(t, star)
	assert.Equal(t, "Spica,alVir", star.Name)

	star, err = swe.FixStarUT(ctx, "Nosuchstar", 2451545, swisseph.FlagSwiEph)
	require.NoError(t, err)
	assert.Nil(t, star)

	mag, err := swe.FixStarMag(ctx, "Regulus")
	require.NoError(t, err)
	require.NotNil(t, mag)
	assert.InDelta(t, 1.40, mag.Magnitude, 1e-9)

	mag, err = swe.FixStar2Mag(ctx, "Nosuchstar")
	require.NoError(t, err)
	assert.Nil(t, mag)

	_, err = swe.FixStar(ctx, string(make([]byte, swisseph.MaxStName)), 2451545, 0)
	require.Error(t, err)

	requireBalanced(t, native)
}

func TestHouses(t *testing.T) {
	ctx := context.Background()
	swe, native := open(t)

	h, err := swe.Houses(ctx, 2451545, 51.5, -0.12, swisseph.HousePlacidus)
	require.NoError(t, err)
	require.Len(t, h.Cusps, 12)
	assert.Equal(t, h.Points.Asc, h.Cusps[0])
	assert.Nil(t, h.CuspSpeeds)

	g, err := swe.HousesEx2(ctx, 2451545, swisseph.FlagSwiEph, 51.5, -0.12, swisseph.HouseGauquelin)
	require.NoError(t, err)
	assert.Len(t, g.Cusps, 36)
	assert.Len(t, g.CuspSpeeds, 36)
	require.NotNil(t, g.PointSpeeds)

	_, err = swe.HousesEx2(ctx, 2451545, 0, 78.2, 15.6, swisseph.HousePlacidus)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "polar circle")

	requireBalanced(t, native)
}

func TestNoResult(t *testing.T) {
	ctx := context.Background()
	swe, native := open(t)

	rise, err := swe.RiseTrans(ctx, 2451545, swisseph.Sun, "", swisseph.FlagSwiEph, swisseph.CalcRise,
		sweph.GeoPos{Lon: 15.6, Lat: 85}, 1013.25, 10)
	require.NoError(t, err)
	assert.Nil(t, rise)

	rise, err = swe.RiseTrans(ctx, 2451545, swisseph.Sun, "", swisseph.FlagSwiEph, swisseph.CalcRise,
		sweph.GeoPos{Lon: 13.4, Lat: 52.5}, 1013.25, 10)
	require.NoError(t, err)
	require.NotNil(t, rise)
	assert.Equal(t, 2451545.5, rise.Time)

	ecl, err := swe.SolEclipseWhenGlob(ctx, 2451545, swisseph.FlagSwiEph, 0, false)
	require.NoError(t, err)
	assert.Nil(t, ecl)

	requireBalanced(t, native)
}

func TestConfig(t *testing.T) {
	ctx := context.Background()
	swe, native := open(t)

	v, err := swe.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, fakeswe.Version, v)

	name, err := swe.AyanamsaName(ctx, swisseph.SidmLahiri)
	require.NoError(t, err)
	assert.Equal(t, "Lahiri", name)

	name, err = swe.AyanamsaName(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, name)

	acc, err := swe.TidAcc(ctx)
	require.NoError(t, err)
	assert.Equal(t, -25.8, acc)

	require.NoError(t, swe.SetTopo(ctx, sweph.GeoPos{Lon: 8.55, Lat: 47.37, Alt: 400}))
	require.NoError(t, swe.SetSidMode(ctx, swisseph.SidmLahiri, 0, 0))
	assert.Equal(t, 1, native.Calls("swe_set_topo"))

	requireBalanced(t, native)
}
