package sweph

import (
	"context"
	_ "embed"
	"io"
	"sync"

	"go.uber.org/zap"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/engine"
	"github.com/wippyai/swisseph-wasm/ephedata"
	"github.com/wippyai/swisseph-wasm/errors"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

//go:embed exports.wit
var exportsWIT string

var (
	signatures    []engine.Signature
	signaturesErr error
	signaturesOne sync.Once
)

// Signatures returns the parsed export table the façade calls into.
func Signatures() ([]engine.Signature, error) {
	signaturesOne.Do(func() {
		signatures, signaturesErr = engine.ParseSignatures(exportsWIT)
	})
	return signatures, signaturesErr
}

// Native is the loaded ephemeris module. *engine.Engine implements it.
type Native interface {
	Call(ctx context.Context, name string, params ...uint64) ([]uint64, error)
	Memory() swisseph.Memory
	Allocator() swisseph.Allocator
	Close(ctx context.Context) error
}

type state uint8

const (
	stateUninitialized state = iota
	stateReady
	stateClosed
)

// SwissEph is a handle to one loaded ephemeris module. The module keeps
// global configuration (topocentric position, sidereal mode, tidal
// acceleration), so a SwissEph is NOT safe for concurrent use.
type SwissEph struct {
	native   Native
	scratch  *transcoder.Scratch
	log      *zap.Logger
	ephePath string
	state    state
}

type options struct {
	epheDir          string
	ephePath         string
	memoryLimitPages uint32
	checkExports     bool
	logger           *zap.Logger
	stdout           io.Writer
	stderr           io.Writer
}

// Option configures Open and New.
type Option func(*options)

// WithEpheDir mounts a host directory holding the ephemeris data files at
// the guest's default search path.
func WithEpheDir(dir string) Option {
	return func(o *options) { o.epheDir = dir }
}

// WithEphePath overrides the search path passed to swe_set_ephe_path after
// load. The path is interpreted inside the guest.
func WithEphePath(path string) Option {
	return func(o *options) { o.ephePath = path }
}

// WithMemoryLimit caps guest memory in 64KB pages.
func WithMemoryLimit(pages uint32) Option {
	return func(o *options) { o.memoryLimitPages = pages }
}

// WithExportCheck toggles validation of the module's exports against the
// signature table. On by default.
func WithExportCheck(enabled bool) Option {
	return func(o *options) { o.checkExports = enabled }
}

// WithLogger sets the logger for this handle. Defaults to Logger().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithOutput routes the guest's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		ephePath:     engine.DefaultGuestDir,
		checkExports: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

// Open loads the module on wazero and returns a ready handle whose search
// path is already configured.
func Open(ctx context.Context, wasm []byte, opts ...Option) (*SwissEph, error) {
	o := newOptions(opts)

	cfg := &engine.Config{
		MemoryLimitPages: o.memoryLimitPages,
		EpheDir:          o.epheDir,
		Stdout:           o.stdout,
		Stderr:           o.stderr,
	}
	if o.checkExports {
		sigs, err := Signatures()
		if err != nil {
			return nil, err
		}
		cfg.Exports = sigs
	}

	if o.epheDir != "" {
		inv, err := ephedata.Inspect(o.epheDir)
		if err != nil {
			return nil, err
		}
		if missing := inv.Missing(); len(missing) > 0 {
			o.logger.Warn("ephemeris files missing, falling back to analytical theories where possible",
				zap.String("dir", o.epheDir),
				zap.Strings("files", missing))
		}
	}

	e, err := engine.New(ctx, wasm, cfg)
	if err != nil {
		return nil, err
	}

	swe, err := newHandle(ctx, e, o)
	if err != nil {
		_ = e.Close(ctx)
		return nil, err
	}
	return swe, nil
}

// New wraps an already loaded module and configures its search path.
func New(ctx context.Context, native Native, opts ...Option) (*SwissEph, error) {
	if native == nil {
		return nil, errors.NotInitialized(errors.PhaseLifecycle, "native module")
	}
	return newHandle(ctx, native, newOptions(opts))
}

func newHandle(ctx context.Context, native Native, o *options) (*SwissEph, error) {
	swe := &SwissEph{
		native:  native,
		scratch: transcoder.NewScratch(native.Memory(), native.Allocator()),
		log:     o.logger,
		state:   stateReady,
	}
	if err := swe.SetEphePath(ctx, o.ephePath); err != nil {
		return nil, errors.Wrap(errors.PhaseLifecycle, errors.KindInstantiation, err, "configure ephemeris path")
	}
	swe.log.Debug("ephemeris ready", zap.String("ephe_path", o.ephePath))
	return swe, nil
}

// EphePath returns the search path most recently configured.
func (s *SwissEph) EphePath() string {
	return s.ephePath
}

// Closed reports whether Close has been called.
func (s *SwissEph) Closed() bool {
	return s.state == stateClosed
}

// Close releases the library's global state and the module. Calling it
// again is a no-op.
func (s *SwissEph) Close(ctx context.Context) error {
	if s.state != stateReady {
		return nil
	}

	c := s.begin("swe_close")
	c.invoke(ctx)
	c.end()
	s.state = stateClosed

	closeErr := s.native.Close(ctx)
	if c.err != nil {
		s.log.Warn("swe_close failed", zap.Error(c.err))
		return c.err
	}
	return closeErr
}

func (s *SwissEph) check() error {
	switch s.state {
	case stateReady:
		return nil
	case stateClosed:
		return errors.Closed("ephemeris")
	default:
		return errors.NotInitialized(errors.PhaseCall, "ephemeris")
	}
}
