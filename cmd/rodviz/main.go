package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/rodviz/internal/config"
	"github.com/san-kum/rodviz/internal/ensemble"
	"github.com/san-kum/rodviz/internal/export"
	"github.com/san-kum/rodviz/internal/report"
	"github.com/san-kum/rodviz/internal/rod"
	"github.com/san-kum/rodviz/internal/storage"
	"github.com/san-kum/rodviz/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	logFile    string
	configFile string
	preset     string
	rodLength  int
	prices     string
	interval   time.Duration
	theme      string
	stepIndex  int
	unit       float64
	chartWidth int
	runs       int
	maxLength  int
	maxPrice   float64
	fractional bool
	seed       uint64
	revenue    bool
	outFile    string
	svgWidth   int
	svgHeight  int
	stroke     string

	logger  *slog.Logger
	logSink io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rodviz",
		Short: "rod cutting dynamic programming, step by step",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logSink != nil {
				logSink.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, false)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	inputFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "play back the trace for the given inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, true)
		},
	}
	inputFlags(tuiCmd)

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "print the step-by-step calculation table",
		RunE:  printTrace,
	}
	inputFlags(traceCmd)
	traceCmd.Flags().IntVar(&stepIndex, "step", -1, "mark this step in the table")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "print the final revenue table and optimal cuts",
		RunE:  solve,
	}
	inputFlags(solveCmd)
	solveCmd.Flags().IntVar(&chartWidth, "width", 60, "chart width")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "generate a trace and save it",
		RunE:  saveRun,
	}
	inputFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "reload a saved trace and print its result",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id|-]",
		Short: "export a trace to JSON ('-' generates one from the input flags)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	inputFlags(exportJSONCmd)
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to this file instead of stdout")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render the rod view of a step as SVG",
		RunE:  renderSVG,
	}
	inputFlags(svgCmd)
	svgCmd.Flags().IntVar(&stepIndex, "step", -1, "step to render (default: last)")
	svgCmd.Flags().Float64Var(&unit, "unit", 40, "pixels per unit of rod length")
	svgCmd.Flags().BoolVar(&revenue, "revenue", false, "plot the final r[i] curve instead of the rod")
	svgCmd.Flags().IntVar(&svgWidth, "width", 600, "revenue plot width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 300, "revenue plot height")
	svgCmd.Flags().StringVar(&stroke, "stroke", "#3b82f6", "revenue plot line colour")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved inputs and settings to a yaml config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	inputFlags(configInitCmd)
	configCmd.AddCommand(configInitCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLENGTH\tPRICES")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, p.RodLength, p.PricesInput())
			}
			return w.Flush()
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "cross-check traces against the reference solver on random inputs",
		RunE:  verifyRandom,
	}
	verifyCmd.Flags().IntVar(&runs, "runs", 200, "number of random inputs")
	verifyCmd.Flags().IntVar(&maxLength, "max-length", rod.MaxInteractiveLength, "largest rod length")
	verifyCmd.Flags().Float64Var(&maxPrice, "max-price", 50, "largest price")
	verifyCmd.Flags().BoolVar(&fractional, "fractional", false, "use fractional prices")
	verifyCmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "first random seed")

	rootCmd.AddCommand(tuiCmd, traceCmd, solveCmd, runCmd, listCmd, showCmd, exportJSONCmd, svgCmd, presetsCmd, verifyCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func inputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset inputs")
	cmd.Flags().IntVar(&rodLength, "length", config.DefaultRodLength, "rod length")
	cmd.Flags().StringVar(&prices, "prices", "", "space separated prices, one per piece length")
	cmd.Flags().DurationVar(&interval, "interval", config.DefaultInterval, "playback interval")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme")
}

func setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	var out io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out, logSink = f, f
	}

	logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig resolves inputs: preset, then config file, then any flag the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.LookupPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("length") {
		cfg.RodLength = rodLength
	}
	if flags.Changed("prices") {
		p, err := rod.ParsePrices(prices)
		if err != nil {
			return nil, err
		}
		cfg.Prices = p
	}
	if flags.Changed("interval") {
		cfg.Interval = interval
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.RodLength > rod.MaxInteractiveLength {
		logger.Warn("rod length above the recommended range", "length", cfg.RodLength, "max", rod.MaxInteractiveLength)
	}
	return cfg, nil
}

func generate(cmd *cobra.Command) (*config.Config, []rod.Step, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	trace, err := rod.Generate(cfg.Prices, cfg.RodLength)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("trace generated", "length", cfg.RodLength, "steps", len(trace))
	return cfg, trace, nil
}

func runTUI(cmd *cobra.Command, skipForm bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; only log when a file was given.
	tuiLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if logFile != "" {
		tuiLogger = logger
	}

	return viz.Run(viz.Options{Config: cfg, SkipForm: skipForm, Logger: tuiLogger})
}

func printTrace(cmd *cobra.Command, args []string) error {
	cfg, trace, err := generate(cmd)
	if err != nil {
		return err
	}
	fmt.Println(report.StepTable(cfg.Prices, trace, stepIndex))
	return nil
}

func solve(cmd *cobra.Command, args []string) error {
	cfg, trace, err := generate(cmd)
	if err != nil {
		return err
	}

	ref, err := rod.Solve(cfg.Prices, cfg.RodLength)
	if err != nil {
		return err
	}
	if got := rod.Final(trace); got.Revenue != ref.Revenue {
		return fmt.Errorf("traced revenue %v disagrees with reference %v", got.Revenue, ref.Revenue)
	}

	fmt.Println(report.ResultTable(trace))
	fmt.Println()
	fmt.Println(report.Summary(trace))
	if chart := report.RevenueChart(trace, chartWidth, 10); chart != "" {
		fmt.Println()
		fmt.Println(chart)
	}
	return nil
}

func saveRun(cmd *cobra.Command, args []string) error {
	cfg, trace, err := generate(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir).WithLogger(logger)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(cfg.Prices, trace)
	if err != nil {
		return err
	}

	res := rod.Final(trace)
	fmt.Printf("run saved: %s\n", runID)
	fmt.Printf("steps: %d, revenue: %s\n", len(trace), humanize.Ftoa(res.Revenue))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir).WithLogger(logger)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tLENGTH\tSTEPS\tREVENUE\tCUTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			run.ID,
			humanize.Time(run.Timestamp),
			run.RodLength,
			humanize.Comma(int64(run.Steps)),
			humanize.Ftoa(run.Revenue),
			joinPieces(run.Pieces),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir).WithLogger(logger)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("created: %s (%s)\n", meta.Timestamp.Format("2006-01-02 15:04:05"), humanize.Time(meta.Timestamp))
	fmt.Printf("prices: %s\n\n", rod.FormatPrices(meta.Prices))
	fmt.Println(report.ResultTable(trace))
	fmt.Println()
	fmt.Println(report.Summary(trace))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	if args[0] == "-" {
		cfg, trace, err := generate(cmd)
		if err != nil {
			return err
		}
		return writeJSON(cfg.Prices, trace)
	}

	runID := args[0]
	st := storage.New(dataDir).WithLogger(logger)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}

	return writeJSON(meta.Prices, trace)
}

func writeJSON(prices []float64, trace []rod.Step) error {
	if outFile == "" {
		return storage.ExportJSONStdout(prices, trace)
	}
	if err := storage.ExportJSON(outFile, prices, trace); err != nil {
		return err
	}
	logger.Info("trace exported", "path", outFile, "steps", len(trace))
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "rodviz.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("config written: %s\n", path)
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	_, trace, err := generate(cmd)
	if err != nil {
		return err
	}

	if revenue {
		out := export.RevenueToSVG(rod.Final(trace).R, svgWidth, svgHeight, stroke)
		if out == "" {
			return fmt.Errorf("revenue plot needs a rod of length 1 or more")
		}
		fmt.Println(out)
		return nil
	}

	idx := len(trace) - 1
	if cmd.Flags().Changed("step") {
		if stepIndex < 0 || stepIndex >= len(trace) {
			return fmt.Errorf("step %d out of range [0, %d]", stepIndex, len(trace)-1)
		}
		idx = stepIndex
	}

	fmt.Println(export.RodViewToSVG(trace[idx].Rod, unit))
	return nil
}

func verifyRandom(cmd *cobra.Command, args []string) error {
	cfg := ensemble.Config{
		Runs:       runs,
		MaxLength:  maxLength,
		MaxPrice:   maxPrice,
		Fractional: fractional,
		Seed:       seed,
	}

	start := time.Now()
	results, err := ensemble.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	var steps int
	for _, r := range results {
		steps += r.Steps
	}
	failures := ensemble.Failures(results)
	logger.Info("verify finished", "runs", len(results), "failures", len(failures), "elapsed", time.Since(start))

	fmt.Printf("checked %d inputs (%s steps) in %v, seed %d\n",
		len(results), humanize.Comma(int64(steps)), time.Since(start).Round(time.Millisecond), seed)

	if len(failures) == 0 {
		fmt.Println("all traces agree with the reference solver")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tLENGTH\tPRICES\tERROR")
	for _, f := range failures {
		fmt.Fprintf(w, "%d\t%d\t%s\t%v\n", f.Seed, f.Length, rod.FormatPrices(f.Prices), f.Err)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return fmt.Errorf("%d of %d inputs failed", len(failures), len(results))
}

func joinPieces(pieces []int) string {
	if len(pieces) == 0 {
		return "-"
	}
	parts := make([]string, len(pieces))
	for i, p := range pieces {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, "+")
}
