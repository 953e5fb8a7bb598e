// Package ephedata describes the data files the ephemeris reads at run time
// and inspects a directory holding them.
package ephedata

import (
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/wippyai/swisseph-wasm/errors"
)

// File is one entry of the standard data set.
type File struct {
	Name        string
	Description string
	// Required files have no analytical fallback. Without the planet and
	// moon files the library falls back to the Moshier theory.
	Required bool
}

// Manifest lists the files of the standard distribution covering
// 1800-2399 AD.
var Manifest = []File{
	{Name: "sepl_18.se1", Description: "planets"},
	{Name: "semo_18.se1", Description: "moon"},
	{Name: "seas_18.se1", Description: "main asteroids", Required: true},
	{Name: "sefstars.txt", Description: "fixed star catalog", Required: true},
	{Name: "seleapsec.txt", Description: "leap seconds"},
	{Name: "seorbel.txt", Description: "fictitious bodies"},
	{Name: "seasnam.txt", Description: "asteroid names"},
}

// Entry is the state of one manifest file in a directory.
type Entry struct {
	File
	Present bool
	Size    int64
	Digest  string // hex BLAKE2b-256
}

// Inventory is the result of Inspect.
type Inventory struct {
	Dir     string
	Entries []Entry
	// Extra lists files in Dir that are not in the manifest, such as
	// ephemerides for other centuries.
	Extra []string
}

// Inspect checks dir against the manifest and digests every file found.
func Inspect(dir string) (*Inventory, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseData, errors.KindNotFound, err, "ephemeris directory")
	}
	if !info.IsDir() {
		return nil, errors.New(errors.PhaseData, errors.KindInvalidInput).
			Value(dir).
			Detail("%s is not a directory", dir).
			Build()
	}

	inv := &Inventory{Dir: dir, Entries: make([]Entry, 0, len(Manifest))}
	known := make(map[string]bool, len(Manifest))
	for _, f := range Manifest {
		known[f.Name] = true
		entry := Entry{File: f}

		path := filepath.Join(dir, f.Name)
		st, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "stat "+f.Name)
		case st.Mode().IsRegular():
			digest, err := Digest(path)
			if err != nil {
				return nil, err
			}
			entry.Present = true
			entry.Size = st.Size()
			entry.Digest = digest
		}
		inv.Entries = append(inv.Entries, entry)
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "list ephemeris directory")
	}
	for _, d := range dirents {
		if !d.IsDir() && !known[d.Name()] {
			inv.Extra = append(inv.Extra, d.Name())
		}
	}
	sort.Strings(inv.Extra)
	return inv, nil
}

// Missing returns the names of manifest files not found.
func (inv *Inventory) Missing() []string {
	var out []string
	for _, e := range inv.Entries {
		if !e.Present {
			out = append(out, e.Name)
		}
	}
	return out
}

// MissingRequired returns the missing files that have no fallback.
func (inv *Inventory) MissingRequired() []string {
	var out []string
	for _, e := range inv.Entries {
		if !e.Present && e.Required {
			out = append(out, e.Name)
		}
	}
	return out
}

// Lookup returns the entry for name.
func (inv *Inventory) Lookup(name string) (Entry, bool) {
	for _, e := range inv.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Verify compares digests against expected, keyed by file name, and
// returns the names that are missing or differ.
func (inv *Inventory) Verify(expected map[string]string) []string {
	var bad []string
	for name, want := range expected {
		e, ok := inv.Lookup(name)
		if !ok || !e.Present || e.Digest != want {
			bad = append(bad, name)
		}
	}
	sort.Strings(bad)
	return bad
}

// Digest returns the hex BLAKE2b-256 of a file.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(errors.PhaseData, errors.KindNotFound, err, "open "+filepath.Base(path))
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "digest")
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "read "+filepath.Base(path))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
