package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/emscripten"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/swisseph-wasm/errors"
)

// instantiateHost wires the host modules a standalone ephemeris build
// imports: WASI preview1 for file access and clocks, and the emscripten
// env functions when the build was produced by emcc.
func instantiateHost(ctx context.Context, r wazero.Runtime, compiled wazero.CompiledModule) error {
	var envImports, unknown []string
	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		switch module {
		case moduleWASI:
		case moduleEnv:
			if isEmscriptenImport(name) {
				envImports = append(envImports, name)
			} else {
				unknown = append(unknown, module+"."+name)
			}
		default:
			unknown = append(unknown, module+"."+name)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return errors.New(errors.PhaseLink, errors.KindUnsupported).
			Value(unknown).
			Detail("module needs host imports that are not provided: %s", strings.Join(unknown, ", ")).
			Build()
	}

	builder := r.NewHostModuleBuilder(moduleWASI)
	wasi_snapshot_preview1.NewFunctionExporter().ExportFunctions(builder)
	if _, err := builder.Instantiate(ctx); err != nil {
		return errors.Wrap(errors.PhaseLink, errors.KindInstantiation, err, "instantiate "+moduleWASI)
	}

	if len(envImports) == 0 {
		return nil
	}

	exporter, err := emscripten.NewFunctionExporterForModule(compiled)
	if err != nil {
		return errors.Wrap(errors.PhaseLink, errors.KindUnsupported, err, "emscripten imports")
	}
	env := r.NewHostModuleBuilder(moduleEnv)
	exporter.ExportFunctions(env)
	if _, err := env.Instantiate(ctx); err != nil {
		return errors.Wrap(errors.PhaseLink, errors.KindInstantiation, err, "instantiate "+moduleEnv)
	}

	Logger().Debug("emscripten imports wired", zap.Strings("imports", envImports))
	return nil
}

// exportNames lists the module's exported functions, sorted.
func exportNames(defs map[string]api.FunctionDefinition) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
