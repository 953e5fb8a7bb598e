package engine

// Exports every hosted module is expected to provide besides the swe_*
// surface.
const (
	ExportMalloc     = "malloc"
	ExportFree       = "free"
	ExportMemory     = "memory"
	ExportInitialize = "_initialize"
)

// Host import namespaces.
const (
	moduleWASI = "wasi_snapshot_preview1"
	moduleEnv  = "env"
)

// Emscripten imports satisfied by wazero's emscripten exporter.
const (
	importNotifyMemoryGrowth = "emscripten_notify_memory_growth"
	prefixInvoke             = "invoke_"
)

// DefaultGuestDir is where the ephemeris directory is mounted inside the
// guest filesystem.
const DefaultGuestDir = "/sweph"

func isEmscriptenImport(name string) bool {
	if name == importNotifyMemoryGrowth {
		return true
	}
	return len(name) > len(prefixInvoke) && name[:len(prefixInvoke)] == prefixInvoke
}
