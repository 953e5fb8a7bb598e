package ephedata

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/wippyai/swisseph-wasm/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sepl_18.se1", "planets")
	writeFile(t, dir, "sefstars.txt", "Aldebaran,alTau,ICRS,...")
	writeFile(t, dir, "sepl_24.se1", "next century")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	inv, err := Inspect(dir)
	require.NoError(t, err)
	require.Len(t, inv.Entries, len(Manifest))

	pl, ok := inv.Lookup("sepl_18.se1")
	require.True(t, ok)
	assert.True(t, pl.Present)
	assert.Equal(t, int64(len("planets")), pl.Size)

	sum := blake2b.Sum256([]byte("planets"))
	assert.Equal(t, hex.EncodeToString(sum[:]), pl.Digest)

	assert.Equal(t, []string{"semo_18.se1", "seas_18.se1", "seleapsec.txt", "seorbel.txt", "seasnam.txt"}, inv.Missing())
	assert.Equal(t, []string{"seas_18.se1"}, inv.MissingRequired())
	assert.Equal(t, []string{"sepl_24.se1"}, inv.Extra)

	_, ok = inv.Lookup("nope.txt")
	assert.False(t, ok)
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sepl_18.se1", "planets")

	inv, err := Inspect(dir)
	require.NoError(t, err)

	sum := blake2b.Sum256([]byte("planets"))
	good := hex.EncodeToString(sum[:])

	assert.Empty(t, inv.Verify(map[string]string{"sepl_18.se1": good}))
	assert.Equal(t, []string{"semo_18.se1", "sepl_18.se1"}, inv.Verify(map[string]string{
		"sepl_18.se1": "00",
		"semo_18.se1": good,
	}))
}

func TestInspectErrors(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseData, Kind: errors.KindNotFound})

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = Inspect(file)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseData, Kind: errors.KindInvalidInput})
}
