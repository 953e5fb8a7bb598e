package engine

import (
	"context"
	"io"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/errors"
)

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum guest memory in pages (64KB each).
	// 0 means the wazero default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// EpheDir is the host directory mounted read-only at GuestDir.
	// Empty mounts nothing.
	EpheDir string

	// GuestDir is the mount point inside the guest. Defaults to DefaultGuestDir.
	GuestDir string

	// Stdout and Stderr receive the guest's WASI output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	// Exports are validated against the compiled module before it is
	// instantiated. Empty skips validation.
	Exports []Signature
}

// Engine owns one wazero runtime and one instance of the ephemeris module.
// It is NOT safe for concurrent use.
type Engine struct {
	runtime wazero.Runtime
	module  api.Module
	memory  *Memory
	alloc   *Allocator
	funcs   map[string]api.Function
	closed  bool
}

// New compiles, links and instantiates the module.
func New(ctx context.Context, wasm []byte, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if len(wasm) == 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "empty module")
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	r := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	e, err := instantiate(ctx, r, wasm, cfg)
	if err != nil {
		_ = r.Close(ctx)
		return nil, err
	}
	return e, nil
}

func instantiate(ctx context.Context, r wazero.Runtime, wasm []byte, cfg *Config) (*Engine, error) {
	compiled, err := r.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	if len(cfg.Exports) > 0 {
		if err := ValidateExports(compiled, cfg.Exports); err != nil {
			return nil, err
		}
	}

	if err := instantiateHost(ctx, r, compiled); err != nil {
		return nil, err
	}

	modCfg := wazero.NewModuleConfig().
		WithName("swisseph").
		WithStartFunctions().
		WithSysWalltime().
		WithSysNanotime()
	if cfg.Stdout != nil {
		modCfg = modCfg.WithStdout(cfg.Stdout)
	}
	if cfg.Stderr != nil {
		modCfg = modCfg.WithStderr(cfg.Stderr)
	}
	if cfg.EpheDir != "" {
		guest := cfg.GuestDir
		if guest == "" {
			guest = DefaultGuestDir
		}
		modCfg = modCfg.WithFSConfig(wazero.NewFSConfig().WithReadOnlyDirMount(cfg.EpheDir, guest))
	}

	mod, err := r.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	if init := mod.ExportedFunction(ExportInitialize); init != nil {
		if _, err := init.Call(ctx); err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInstantiation, err, "run "+ExportInitialize)
		}
	}

	mem := mod.Memory()
	if mem == nil {
		return nil, errors.NotInitialized(errors.PhaseLoad, ExportMemory)
	}

	e := &Engine{
		runtime: r,
		module:  mod,
		memory:  &Memory{mem: mem},
		alloc: &Allocator{
			mallocFn: mod.ExportedFunction(ExportMalloc),
			freeFn:   mod.ExportedFunction(ExportFree),
			stackBuf: make([]uint64, 1),
		},
		funcs: make(map[string]api.Function),
	}

	Logger().Debug("module instantiated",
		zap.Int("exports", len(compiled.ExportedFunctions())),
		zap.Uint32("memory_bytes", mem.Size()),
		zap.Bool("allocator", e.alloc.mallocFn != nil && e.alloc.freeFn != nil),
		zap.String("ephe_dir", cfg.EpheDir))
	return e, nil
}

// Call invokes an export by name with already encoded parameters.
func (e *Engine) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	if e.closed {
		return nil, errors.Closed("engine")
	}

	fn, ok := e.funcs[name]
	if !ok {
		fn = e.module.ExportedFunction(name)
		if fn == nil {
			return nil, errors.New(errors.PhaseCall, errors.KindMissingExport).
				Func(name).
				Detail("export not found").
				Build()
		}
		e.funcs[name] = fn
	}

	results, err := fn.Call(ctx, params...)
	if err != nil {
		return nil, errors.Trap(name, err)
	}
	return results, nil
}

// HasExport reports whether the module exports a function named name.
func (e *Engine) HasExport(name string) bool {
	if e.closed {
		return false
	}
	return e.module.ExportedFunction(name) != nil
}

// Exports lists the module's exported function names.
func (e *Engine) Exports() []string {
	if e.closed {
		return nil
	}
	return exportNames(e.module.ExportedFunctionDefinitions())
}

// Memory returns the guest's linear memory.
func (e *Engine) Memory() swisseph.Memory {
	return e.memory
}

// Allocator returns the guest heap allocator.
func (e *Engine) Allocator() swisseph.Allocator {
	return e.alloc
}

// Closed reports whether Close has run.
func (e *Engine) Closed() bool {
	return e.closed
}

// Close releases the runtime. Subsequent calls are no-ops.
func (e *Engine) Close(ctx context.Context) error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.funcs = nil
	e.module = nil
	err := e.runtime.Close(ctx)
	e.runtime = nil
	if err != nil {
		return errors.Wrap(errors.PhaseLifecycle, errors.KindInvalidData, err, "close runtime")
	}
	return nil
}
