package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbits/internal/analysis"
	"github.com/san-kum/orbits/internal/config"
	"github.com/san-kum/orbits/internal/export"
	"github.com/san-kum/orbits/internal/gui"
	"github.com/san-kum/orbits/internal/metrics"
	"github.com/san-kum/orbits/internal/render"
	"github.com/san-kum/orbits/internal/sim"
	"github.com/san-kum/orbits/internal/storage"
	"github.com/san-kum/orbits/internal/trail"
	"github.com/san-kum/orbits/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	dataDir    string
	dt         float64
	frames     int
	trailCap   int
	configFile string
	// analyze
	bodyName string
	coord    string
	// export-svg
	outPath string
	svgSize int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbits",
		Short: "gravitational n-body playground",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live terminal view of the default scenario.
			return viz.Run(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbits", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headlessly and save the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "animate a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd, args)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	addScenarioFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [scenario]",
		Short: "animate a scenario in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd, args)
			if err != nil {
				return err
			}
			gui.Run(cfg)
			return nil
		},
	}
	addScenarioFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-body orbital radius over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate a body's orbital period",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&bodyName, "body", "", "body name (default: first non-primary)")
	analyzeCmd.Flags().StringVar(&coord, "coord", "x", "coordinate to analyze (x or y)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run's final frame with trails to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "", "output path (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%s (%d bodies)\n", name, len(cfg.Bodies))
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0, "seconds per frame (0 = scenario default)")
	cmd.Flags().IntVar(&frames, "frames", 0, "frame budget (0 = scenario default)")
	cmd.Flags().IntVar(&trailCap, "trail", 0, "trail capacity (0 = scenario default)")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
}

// loadScenario resolves the scenario: a yaml file when --config is
// given, otherwise the named preset (default scenario when no arg).
// Flags override whatever the scenario carries.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config

	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		name := "inner_planets"
		if len(args) > 0 {
			name = args[0]
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown scenario: %s (available: %v)", name, config.ListPresets())
		}
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = frames
	}
	if cmd.Flags().Changed("trail") {
		cfg.TrailCapacity = trailCap
	}

	return cfg, cfg.Validate()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simulator := sim.New(cfg.System(), cfg.TrailCapacity)
	simulator.AddMetric(metrics.NewEnergyDrift())
	simulator.AddMetric(metrics.NewMomentumDrift())

	fmt.Printf("running %s for %d frames (dt=%.0fs)...\n", cfg.Scenario, cfg.Frames, cfg.Dt)
	start := time.Now()

	result, err := simulator.Run(context.Background(), sim.Config{Dt: cfg.Dt, Frames: cfg.Frames})
	if err != nil {
		return err
	}

	bodies := make([]storage.BodyMetadata, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		bodies[i] = storage.BodyMetadata{Name: b.Name, Color: b.Color, Primary: b.Primary}
	}

	runID, err := st.Save(cfg.Scenario, cfg.G, cfg.Dt, bodies, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (%.1f simulated days)\n", result.FramesRun,
		float64(result.FramesRun)*cfg.Dt/86400)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tDT\tBODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0fs\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			len(run.Bodies),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nscenario: %s\nsamples: %d\n\n", meta.ID, meta.Scenario, len(states))

	for i, b := range meta.Bodies {
		radius := make([]float64, len(states))
		for k := range states {
			x := states[k][i*4]
			y := states[k][i*4+1]
			radius[k] = r2.Norm(r2.Vec{X: x, Y: y})
		}

		graph := asciigraph.Plot(radius,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s: distance from origin (m)", b.Name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data")
	}

	idx := -1
	if bodyName == "" {
		for i, b := range meta.Bodies {
			if !b.Primary {
				idx = i
				break
			}
		}
	} else {
		for i, b := range meta.Bodies {
			if b.Name == bodyName {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		if bodyName == "" {
			return fmt.Errorf("scenario has no non-primary body; pass --body")
		}
		return fmt.Errorf("no such body: %s", bodyName)
	}

	off := 0
	if coord == "y" {
		off = 1
	} else if coord != "x" {
		return fmt.Errorf("coord must be x or y, got %s", coord)
	}

	data := make([]float64, len(states))
	for k := range states {
		data[k] = states[k][idx*4+off]
	}

	fmt.Printf("orbital analysis: %s, body %s (%s)\n\n", meta.ID, meta.Bodies[idx].Name, coord)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	period := analysis.DominantPeriod(data, meta.Dt)
	if period == 0 {
		fmt.Println("no dominant period found")
		return nil
	}
	fmt.Printf("dominant period: %.3e s (%.1f days)\n", period, period/86400)

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for _, b := range meta.Bodies {
		header = append(header, b.Name+"_x", b.Name+"_y", b.Name+"_vx", b.Name+"_vy")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to render")
	}

	// Rebuild trails from the recorded trajectory, then assemble the
	// final frame by hand.
	trails := trail.NewSet(len(meta.Bodies), trail.DefaultCapacity)
	for _, row := range states {
		for i := range meta.Bodies {
			trails.Record(i, r2.Vec{X: row[i*4], Y: row[i*4+1]})
		}
	}

	var f render.Frame
	last := states[len(states)-1]
	extent := 0.0
	for i, b := range meta.Bodies {
		size := float64(render.MinorSize)
		if b.Primary {
			size = render.PrimarySize
		}
		pos := r2.Vec{X: last[i*4], Y: last[i*4+1]}
		f.Points = append(f.Points, render.Point{Pos: pos, Color: b.Color, Size: size})
		f.Segments = append(f.Segments, trails.Recorder(i).Segments(b.Color)...)

		for _, p := range trails.Recorder(i).Points() {
			extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		}
	}
	extent *= 1.1
	if extent == 0 {
		extent = 1
	}

	path := outPath
	if path == "" {
		path = meta.ID + ".svg"
	}

	if err := os.WriteFile(path, []byte(export.FrameToSVG(f, extent, svgSize)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
