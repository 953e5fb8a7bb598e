// Package engine hosts the ephemeris module on wazero.
//
// New compiles the module, checks its exports against a signature table,
// wires the host imports a standalone build needs (WASI preview1 plus
// emscripten's invoke_* trampolines when present), mounts the ephemeris
// directory read-only inside the guest and runs _initialize.
//
//	e, err := engine.New(ctx, wasm, &engine.Config{
//		EpheDir:  "./ephe",
//		Exports:  sigs,
//	})
//	res, err := e.Call(ctx, "swe_julday", ...)
//
// Memory and Allocator expose the guest's linear memory and its
// malloc/free exports to the transcoder.
package engine
