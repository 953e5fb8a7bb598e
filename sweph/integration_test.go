package sweph_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/sweph"
)

// openWasm loads the real module named by SWISSEPH_WASM. The ephemeris
// directory in SWISSEPH_EPHE is optional; without it the library uses the
// Moshier theory.
func openWasm(t *testing.T) *sweph.SwissEph {
	t.Helper()
	path := os.Getenv("SWISSEPH_WASM")
	if path == "" {
		t.Skip("SWISSEPH_WASM not set")
	}
	wasm, err := os.ReadFile(path)
	if err != nil {
		t.Skipf("module not readable: %v", err)
	}

	var opts []sweph.Option
	if dir := os.Getenv("SWISSEPH_EPHE"); dir != "" {
		opts = append(opts, sweph.WithEpheDir(dir))
	}
	ctx := context.Background()
	swe, err := sweph.Open(ctx, wasm, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = swe.Close(ctx) })
	return swe
}

func TestWasm_Version(t *testing.T) {
	swe := openWasm(t)
	v, err := swe.Version(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, v)
	assert.Equal(t, "/sweph", swe.EphePath())
}

func TestWasm_JulDay(t *testing.T) {
	swe := openWasm(t)
	jd, err := swe.JulDay(context.Background(), 2000, 1, 1, 12, swisseph.GregCal)
	require.NoError(t, err)
	assert.Equal(t, 2451545.0, jd)
}

func TestWasm_SunAtJ2000(t *testing.T) {
	swe := openWasm(t)
	ctx := context.Background()

	pos, err := swe.CalcUT(ctx, 2451545.0, swisseph.Sun, swisseph.FlagSwiEph|swisseph.FlagSpeed)
	require.NoError(t, err)
	assert.InDelta(t, 280.37, pos.Longitude, 0.05)
	assert.InDelta(t, 0.9856, pos.SpeedLongitude, 0.01)
	assert.InDelta(t, 0.983, pos.Distance, 0.001)
}

func TestWasm_IllegalBody(t *testing.T) {
	swe := openWasm(t)
	_, err := swe.CalcUT(context.Background(), 2451545.0, swisseph.Body(9999), swisseph.FlagSwiEph)
	require.Error(t, err)
}

func TestWasm_Houses(t *testing.T) {
	swe := openWasm(t)
	h, err := swe.Houses(context.Background(), 2451545.0, 51.5, 0, swisseph.HousePlacidus)
	require.NoError(t, err)
	require.Len(t, h.Cusps, 12)
	for _, c := range h.Cusps {
		assert.GreaterOrEqual(t, c, 0.0)
		assert.Less(t, c, 360.0)
	}
}
