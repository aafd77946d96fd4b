package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/restfield/internal/bench"
	"github.com/san-kum/restfield/internal/config"
	"github.com/san-kum/restfield/internal/observability"
	"github.com/san-kum/restfield/internal/palette"
	"github.com/san-kum/restfield/internal/particle"
	"github.com/san-kum/restfield/internal/storage"
	"github.com/san-kum/restfield/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	dataDir string
	// Config file
	configFile string
	// Preset name
	preset string
	// Field overrides
	threshold  float64
	integrator string
	frameRate  int
	// Render overrides
	paletteName string
	theme       string
	noOverlay   bool
	hover       bool
	// Logging
	logFile  string
	logLevel string
	// Bench
	benchWidth  float64
	benchHeight float64
	dragFrames  int
	maxFrames   int
	csvOut      string
	plot        bool
	save        bool
	// config init
	force bool
)

// main registers commands and flags, launches the TUI when no subcommand is
// given, and exits 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "restfield",
		Short: "interactive particle field that pushes aside and springs back",
		RunE:  runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".restfield", "data directory for saved bench runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&threshold, "threshold", config.DefaultThreshold, "push radius in sub-pixels")
	pf.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator ("+strings.Join(particle.IntegratorNames(), "|")+")")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file (rotated)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the interactive field",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().StringVar(&paletteName, "palette", config.DefaultPalette, "particle palette ("+strings.Join(palette.Names(), "|")+")")
		c.Flags().StringVar(&theme, "theme", config.DefaultTheme, "overlay theme ("+strings.Join(viz.ThemeNames(), "|")+")")
		c.Flags().BoolVar(&noOverlay, "no-overlay", false, "start with the debug overlay hidden")
		c.Flags().BoolVar(&hover, "hover", false, "push particles on mouse motion without a button held")
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "sweep a pointer across a headless field and time how long it takes to rest",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().Float64Var(&benchWidth, "width", 160, "field width")
	benchCmd.Flags().Float64Var(&benchHeight, "height", 96, "field height")
	benchCmd.Flags().IntVar(&dragFrames, "drag", 60, "frames spent dragging")
	benchCmd.Flags().IntVar(&maxFrames, "frames", 2000, "frame limit")
	benchCmd.Flags().StringVar(&csvOut, "csv", "", "write per-frame stats to this CSV file")
	benchCmd.Flags().BoolVar(&plot, "plot", false, "plot moving particles per frame")
	benchCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved bench runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved bench run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	paletteCmd := &cobra.Command{
		Use:   "palette [name]",
		Short: "print palette swatches",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPalette,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the effective settings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(runCmd, benchCmd, runsCmd, plotCmd, presetsCmd, paletteCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig layers preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadOnto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Field.Threshold = threshold
	}
	if flags.Changed("integrator") {
		cfg.Field.Integrator = integrator
	}
	if flags.Changed("fps") {
		cfg.Engine.FPS = frameRate
	}
	if flags.Changed("palette") {
		cfg.Render.Palette = paletteName
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	if flags.Changed("no-overlay") {
		cfg.Render.Overlay = !noOverlay
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs only go to the file, if any.
	log := observability.New(cfg.Log, nil)
	defer log.Sync()

	opts, err := viz.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Hover = hover
	opts.Logger = log

	log.Info("starting",
		zap.String("integrator", cfg.Field.Integrator),
		zap.Float64("threshold", cfg.Field.Threshold),
		zap.Int("fps", cfg.Engine.FPS),
	)
	return viz.Run(opts)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := observability.New(cfg.Log, zapcore.Lock(os.Stderr))
	defer log.Sync()

	fc, err := cfg.FieldConfig()
	if err != nil {
		return err
	}
	opts := bench.DefaultOptions()
	opts.Layout = particle.Layout{Width: benchWidth, Height: benchHeight}
	opts.DragFrames = dragFrames
	opts.MaxFrames = maxFrames
	opts.FrameMS = 1000 / float64(cfg.Engine.FPS)

	report, err := bench.Run(cmd.Context(), fc, opts, log)
	if err != nil {
		return err
	}

	if plot {
		plotMoving(report.Moving())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tPARTICLES\tFRAMES\tDISPATCHED\tSETTLE\tTIME")
	settle := "never"
	if report.Settled {
		settle = fmt.Sprintf("%d", report.SettleFrames)
	}
	fmt.Fprintf(w, "%dx%d@%g\t%d\t%d\t%d\t%s\t%v\n",
		report.Grid.Cols, report.Grid.Rows, report.Grid.Cell,
		report.Particles, len(report.Frames), report.Dispatched, settle, report.Elapsed)
	if err := w.Flush(); err != nil {
		return err
	}

	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := report.WriteCSV(f); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Printf("wrote %d frames to %s\n", len(report.Frames), csvOut)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := storage.NewMetadata(report, opts)
		meta.Preset = preset
		meta.Integrator = cfg.Field.Integrator
		meta.Threshold = cfg.Field.Threshold
		id, err := st.Save(meta, report.Frames)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("saved run %s\n", id)
	}

	if !report.Settled {
		return fmt.Errorf("field did not rest within %d frames", maxFrames)
	}
	return nil
}

func plotMoving(series []float64) {
	if len(series) < 2 {
		return
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("moving particles per frame"),
	)
	fmt.Println(graph)
	fmt.Println()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tINTEGRATOR\tTHRESHOLD\tPARTICLES\tFRAMES\tSETTLE\tTIMESTAMP")
	for _, r := range runs {
		settle := "never"
		if r.Settled {
			settle = fmt.Sprintf("%d", r.SettleFrames)
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%d\t%d\t%s\t%s\n",
			r.ID, r.Integrator, r.Threshold, r.Particles, r.Frames, settle, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("integrator: %s  threshold: %g  particles: %d\n\n", meta.Integrator, meta.Threshold, meta.Particles)
	series := make([]float64, len(frames))
	for i, f := range frames {
		series[i] = float64(f.Moving)
	}
	plotMoving(series)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTHRESHOLD\tINTEGRATOR\tSTEP\tPALETTE")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%s\t%g\t%s\n",
			name, cfg.Field.Threshold, cfg.Field.Integrator, cfg.Physics.StepFactor, cfg.Render.Palette)
	}
	return w.Flush()
}

func showPalette(cmd *cobra.Command, args []string) error {
	names := palette.Names()
	if len(args) == 1 {
		known := false
		for _, n := range names {
			known = known || n == args[0]
		}
		if !known {
			return fmt.Errorf("unknown palette: %s (available: %v)", args[0], names)
		}
		names = args
	}

	for _, name := range names {
		g := palette.Named(name)
		var row strings.Builder
		for _, c := range g {
			row.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█"))
		}
		fmt.Printf("%-8s %s\n", name, row.String())
		if len(args) == 1 {
			fmt.Println(g.Swatch())
		}
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "restfield.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
