// Package swisseph hosts the Swiss Ephemeris WebAssembly build from Go.
//
// The ephemeris engine itself (planetary theories, nutation, house geometry,
// eclipse search) is precompiled into the module. This repository only
// marshals calls across the wasm boundary: it packs arguments, allocates
// scratch buffers in guest memory for out-parameters, invokes exports by
// name and copies results back into Go structs.
//
// # Architecture Overview
//
//	swisseph/       Root package: constant table, Memory and Allocator interfaces
//	├── sweph/      Marshaling façade, one method per swe_* export
//	├── engine/     wazero host: load, import wiring, export validation, calls
//	├── transcoder/ Scratch allocations and guest memory encoding
//	├── errors/     Structured error types
//	├── ephedata/   Ephemeris data-file inventory
//	├── chart/      Birth chart composition on top of sweph
//	├── config/     YAML configuration
//	├── server/     HTTP API
//	├── store/      SQLite export of position tables
//	├── internal/fakeswe/  In-memory stand-in for the module, used by tests
//	├── cmd/swe/    Command-line tool and interactive viewer
//	└── examples/   Library usage
//
// # Quick Start
//
//	wasm, _ := os.ReadFile("swisseph.wasm")
//
//	swe, err := sweph.Open(ctx, wasm, sweph.WithEpheDir("./ephe"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer swe.Close(ctx)
//
//	jd, _ := swe.JulDay(ctx, 2023, 6, 15, 12, swisseph.GregCal)
//	pos, err := swe.CalcUT(ctx, jd, swisseph.Sun, swisseph.FlagSwiEph|swisseph.FlagSpeed)
//
// # Flags
//
// Flag constants keep the native bit positions and combine with |:
//
//	flags := swisseph.FlagSidereal | swisseph.FlagSpeed
//	flags.Has(swisseph.FlagSpeed) // true
//
// # Thread Safety
//
// The native library keeps process-wide configuration (topocentric
// position, sidereal mode, tidal acceleration) in guest globals. A SwissEph
// value is NOT safe for concurrent use; serialize calls or open one
// instance per goroutine.
//
// # Module Requirements
//
// The module must be a standalone (WASI) build exporting malloc, free and
// the swe_* functions. Emscripten builds that depend on the JavaScript glue
// for their imports cannot be hosted.
package swisseph
