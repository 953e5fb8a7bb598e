package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/internal/fakeswe"
	"github.com/wippyai/swisseph-wasm/sweph"
)

func TestRangeSteps(t *testing.T) {
	assert.Equal(t, 11, Range{From: 0, To: 10, Step: 1}.Steps())
	assert.Equal(t, 3, Range{From: 2451545, To: 2451545.2, Step: 0.1}.Steps())
	assert.Equal(t, 1, Range{From: 5, To: 5, Step: 1}.Steps())
	assert.Zero(t, Range{From: 5, To: 4, Step: 1}.Steps())
	assert.Zero(t, Range{From: 0, To: 4, Step: 0}.Steps())
}

func TestGenerateAndStore(t *testing.T) {
	ctx := context.Background()
	native, err := fakeswe.New()
	require.NoError(t, err)
	swe, err := sweph.New(ctx, native)
	require.NoError(t, err)
	defer swe.Close(ctx)

	bodies := []swisseph.Body{swisseph.Sun, swisseph.Moon}
	rows, err := Generate(ctx, swe, Range{From: 2451545, To: 2451550, Step: 1}, bodies, swisseph.FlagSwiEph|swisseph.FlagSpeed)
	require.NoError(t, err)
	require.Len(t, rows, 12)
	assert.Equal(t, "Sun", rows[0].Name)
	assert.Equal(t, "Moon", rows[1].Name)
	assert.Zero(t, native.Heap().Live())

	st, err := Open(filepath.Join(t.TempDir(), "positions.db"))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.WritePositions(ctx, rows))
	// writing the same instants again replaces them
	require.NoError(t, st.WritePositions(ctx, rows))

	sun, err := st.Positions(ctx, swisseph.Sun)
	require.NoError(t, err)
	require.Len(t, sun, 6)
	for i := 1; i < len(sun); i++ {
		assert.Greater(t, sun[i].JD, sun[i-1].JD)
	}
	assert.Equal(t, rows[0], sun[0])

	bs, err := st.Bodies(ctx)
	require.NoError(t, err)
	assert.Equal(t, bodies, bs)

	none, err := st.Positions(ctx, swisseph.Pluto)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGenerateErrors(t *testing.T) {
	ctx := context.Background()
	native, err := fakeswe.New()
	require.NoError(t, err)
	swe, err := sweph.New(ctx, native)
	require.NoError(t, err)
	defer swe.Close(ctx)

	_, err = Generate(ctx, swe, Range{From: 10, To: 0, Step: 1}, []swisseph.Body{swisseph.Sun}, 0)
	require.Error(t, err)

	_, err = Generate(ctx, swe, Range{From: 0, To: 1, Step: 1}, []swisseph.Body{99}, 0)
	require.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Generate(cancelled, swe, Range{From: 0, To: 1, Step: 1}, []swisseph.Body{swisseph.Sun}, 0)
	require.ErrorIs(t, err, context.Canceled)
}
