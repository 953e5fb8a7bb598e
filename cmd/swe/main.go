package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/chart"
	"github.com/wippyai/swisseph-wasm/config"
	"github.com/wippyai/swisseph-wasm/engine"
	"github.com/wippyai/swisseph-wasm/ephedata"
	"github.com/wippyai/swisseph-wasm/errors"
	"github.com/wippyai/swisseph-wasm/server"
	"github.com/wippyai/swisseph-wasm/store"
	"github.com/wippyai/swisseph-wasm/sweph"
)

type options struct {
	cfg       *config.Config
	date      time.Time
	bodies    []swisseph.Body
	tablePath string
	from, to  time.Time
	serveAddr string
	chart     bool
}

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to the ephemeris wasm module")
		epheDir     = flag.String("ephe", "", "Host directory holding ephemeris files")
		cfgFile     = flag.String("config", "", "YAML configuration file")
		dateStr     = flag.String("date", "", "UTC instant, 2006-01-02[T15:04[:05]] or RFC 3339 (default now)")
		bodiesStr   = flag.String("bodies", "", "Comma-separated bodies, e.g. sun,moon,mars")
		list        = flag.Bool("list", false, "List the export signature table and exit")
		check       = flag.Bool("check", false, "Inspect the ephemeris directory and exit")
		tablePath   = flag.String("table", "", "Write a position table to this SQLite file")
		fromStr     = flag.String("from", "", "Table start date")
		toStr       = flag.String("to", "", "Table end date")
		step        = flag.Float64("step", 0, "Table step in days")
		serveAddr   = flag.String("serve", "", "Serve the HTTP API on this address")
		chartMode   = flag.Bool("chart", false, "Print a birth chart for -date at -lat/-lon")
		lat         = flag.Float64("lat", 0, "Latitude for -chart")
		lon         = flag.Float64("lon", 0, "Longitude for -chart")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgFile != "" {
		var err error
		if cfg, err = config.Load(*cfgFile); err != nil {
			fatal(err)
		}
	}
	if *wasmFile != "" {
		cfg.Module.Wasm = *wasmFile
	}
	if *epheDir != "" {
		cfg.Module.EpheDir = *epheDir
	}
	if *bodiesStr != "" {
		cfg.Table.Bodies = strings.Split(*bodiesStr, ",")
	}
	if *step > 0 {
		cfg.Table.Step = *step
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	setFlag := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlag[f.Name] = true })
	if setFlag["lat"] {
		cfg.Chart.Latitude = *lat
	}
	if setFlag["lon"] {
		cfg.Chart.Longitude = *lon
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fatal(err)
	}
	defer log.Sync()
	engine.SetLogger(log.Named("engine"))
	sweph.SetLogger(log.Named("sweph"))

	if *list {
		if err := listSignatures(); err != nil {
			fatal(err)
		}
		return
	}
	if *check {
		if err := checkData(cfg.Module.EpheDir); err != nil {
			fatal(err)
		}
		return
	}

	if cfg.Module.Wasm == "" {
		fmt.Fprintln(os.Stderr, "Usage: swe -wasm <swisseph.wasm> [-ephe dir] [-date 2006-01-02T15:04] [-bodies sun,moon]")
		fmt.Fprintln(os.Stderr, "       swe -wasm <swisseph.wasm> -chart -date ... -lat 40.71 -lon -74.01")
		fmt.Fprintln(os.Stderr, "       swe -wasm <swisseph.wasm> -table out.db -from 2024-01-01 -to 2024-12-31 [-step 1]")
		fmt.Fprintln(os.Stderr, "       swe -wasm <swisseph.wasm> -serve :8080")
		fmt.Fprintln(os.Stderr, "       swe -wasm <swisseph.wasm> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       swe -list | -check -ephe dir")
		os.Exit(1)
	}

	opts := options{cfg: cfg, tablePath: *tablePath, serveAddr: *serveAddr, chart: *chartMode}
	if opts.date, err = parseDate(*dateStr, time.Now().UTC()); err != nil {
		fatal(err)
	}
	if opts.bodies, err = cfg.Bodies(); err != nil {
		fatal(err)
	}
	if opts.tablePath != "" {
		if opts.from, err = parseDate(*fromStr, opts.date); err != nil {
			fatal(err)
		}
		if opts.to, err = parseDate(*toStr, opts.from.AddDate(0, 0, 30)); err != nil {
			fatal(err)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fatal(fmt.Errorf("interactive mode needs a terminal"))
		}
		if err := runInteractive(opts); err != nil {
			fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, opts, log); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	log, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return log.WithOptions(zap.IncreaseLevel(lvl), zap.AddStacktrace(zapcore.FatalLevel)), nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDate reads s as UTC unless it carries an offset; empty s yields def.
func parseDate(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ParseFailed(fmt.Sprintf("date %q", s), nil)
}

func openEphemeris(ctx context.Context, cfg *config.Config, log *zap.Logger) (*sweph.SwissEph, error) {
	wasm, err := os.ReadFile(cfg.Module.Wasm)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}
	opts := []sweph.Option{
		sweph.WithLogger(log.Named("sweph")),
		sweph.WithMemoryLimit(cfg.Module.MemoryLimitPages),
	}
	if cfg.Module.EpheDir != "" {
		opts = append(opts, sweph.WithEpheDir(cfg.Module.EpheDir))
	}
	if cfg.Module.EphePath != "" {
		opts = append(opts, sweph.WithEphePath(cfg.Module.EphePath))
	}

	start := time.Now()
	swe, err := sweph.Open(ctx, wasm, opts...)
	if err != nil {
		return nil, err
	}
	log.Debug("module loaded", zap.Duration("took", time.Since(start)))
	return swe, nil
}

func run(ctx context.Context, opts options, log *zap.Logger) error {
	swe, err := openEphemeris(ctx, opts.cfg, log)
	if err != nil {
		return err
	}
	defer swe.Close(context.Background())

	switch {
	case opts.serveAddr != "":
		srv := server.New(swe, opts.cfg.Server.Mode, server.WithLogger(log.Named("http")))
		return srv.Run(ctx, opts.serveAddr)
	case opts.tablePath != "":
		return writeTable(ctx, swe, opts, log)
	case opts.chart:
		return printChart(ctx, swe, opts)
	default:
		return printPositions(ctx, swe, opts)
	}
}

func printPositions(ctx context.Context, swe *sweph.SwissEph, opts options) error {
	version, err := swe.Version(ctx)
	if err != nil {
		return err
	}
	jd := sweph.JulianDay(opts.date)
	fmt.Printf("Swiss Ephemeris %s\n", version)
	fmt.Printf("%s  JD %.6f UT\n\n", opts.date.Format(time.RFC3339), jd)

	rows, err := positions(ctx, swe, jd, opts.bodies)
	if err != nil {
		return err
	}
	for _, r := range rows {
		retro := ""
		if r.speed < 0 {
			retro = " R"
		}
		fmt.Printf("  %-12s %11.6f°  %-18s %+9.6f°/d%s\n", r.name, r.lon, r.sign, r.speed, retro)
	}
	return nil
}

type positionRow struct {
	name  string
	lon   float64
	lat   float64
	speed float64
	sign  string
}

func positions(ctx context.Context, swe *sweph.SwissEph, jd float64, bodies []swisseph.Body) ([]positionRow, error) {
	rows := make([]positionRow, 0, len(bodies))
	for _, b := range bodies {
		name, err := swe.PlanetName(ctx, b)
		if err != nil {
			return nil, err
		}
		pos, err := swe.CalcUT(ctx, jd, b, chart.Flags)
		if err != nil {
			return nil, err
		}
		rows = append(rows, positionRow{
			name:  name,
			lon:   pos.Longitude,
			lat:   pos.Latitude,
			speed: pos.SpeedLongitude,
			sign:  chart.SignOf(pos.Longitude).String(),
		})
	}
	return rows, nil
}

func printChart(ctx context.Context, swe *sweph.SwissEph, opts options) error {
	hsys, err := opts.cfg.HouseSystem()
	if err != nil {
		return err
	}
	ch, err := chart.Compute(ctx, swe, chart.Input{
		Time:        opts.date,
		Latitude:    opts.cfg.Chart.Latitude,
		Longitude:   opts.cfg.Chart.Longitude,
		HouseSystem: hsys,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Chart for %s at %.4f, %.4f (JD %.6f UT)\n\n", opts.date.Format(time.RFC3339),
		opts.cfg.Chart.Latitude, opts.cfg.Chart.Longitude, ch.JulianDay)

	fmt.Println("PLANETS")
	for _, p := range ch.Planets {
		fmt.Printf("  %s %-10s %-18s house %5.2f\n", p.Symbol, p.Name, p.Sign, p.House)
	}
	fmt.Println("\nPOINTS")
	for _, p := range ch.Points {
		fmt.Printf("  %s %-16s %s\n", p.Symbol, p.Name, p.Sign)
	}
	fmt.Printf("\nHOUSES (%c)\n", ch.HouseSystem)
	if ch.HouseSystem != ch.Input.HouseSystem {
		fmt.Printf("  %c is undefined at this latitude\n", ch.Input.HouseSystem)
	}
	for _, c := range ch.Cusps {
		fmt.Printf("  %2d %s\n", c.House, c.Sign)
	}
	fmt.Printf("\n  Asc %s   MC %s\n", chart.SignOf(ch.Angles.Ascendant), chart.SignOf(ch.Angles.Midheaven))

	fmt.Println("\nASPECTS")
	for _, a := range ch.Aspects {
		state := "separating"
		if a.Applying {
			state = "applying"
		}
		fmt.Printf("  %-8s %s %-8s %-11s orb %.2f° %s\n", a.First, a.Type.Symbol, a.Second, a.Type.Name, a.Orb, state)
	}
	fmt.Printf("\nSwiss Ephemeris %s\n", ch.Version)
	return nil
}

func writeTable(ctx context.Context, swe *sweph.SwissEph, opts options, log *zap.Logger) error {
	r := store.Range{
		From: sweph.JulianDay(opts.from),
		To:   sweph.JulianDay(opts.to),
		Step: opts.cfg.Table.Step,
	}
	rows, err := store.Generate(ctx, swe, r, opts.bodies, chart.Flags)
	if err != nil {
		return err
	}

	st, err := store.Open(opts.tablePath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.WritePositions(ctx, rows); err != nil {
		return err
	}
	log.Info("table written",
		zap.String("path", opts.tablePath),
		zap.Int("rows", len(rows)),
		zap.Int("steps", r.Steps()))
	return nil
}

func listSignatures() error {
	sigs, err := sweph.Signatures()
	if err != nil {
		return err
	}
	fmt.Printf("Exports: %d\n\n", len(sigs))
	for _, s := range sigs {
		fmt.Println("  " + formatSignature(s))
	}
	return nil
}

func checkData(dir string) error {
	if dir == "" {
		return fmt.Errorf("-check needs -ephe or module.ephe_dir")
	}
	inv, err := ephedata.Inspect(dir)
	if err != nil {
		return err
	}
	fmt.Printf("Ephemeris directory: %s\n\n", inv.Dir)
	for _, e := range inv.Entries {
		if !e.Present {
			fmt.Printf("  %-14s missing  %s\n", e.Name, e.Description)
			continue
		}
		fmt.Printf("  %-14s %9d  %s  %s\n", e.Name, e.Size, e.Digest[:16], e.Description)
	}
	for _, name := range inv.Extra {
		fmt.Printf("  %-14s (not in manifest)\n", name)
	}
	if missing := inv.MissingRequired(); len(missing) > 0 {
		return fmt.Errorf("required files missing: %s", strings.Join(missing, ", "))
	}
	return nil
}
