package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/t-aulia/glidesim/internal/config"
	"github.com/t-aulia/glidesim/internal/sim"
	"github.com/t-aulia/glidesim/internal/storage"
	"github.com/t-aulia/glidesim/internal/sweep"
	"github.com/t-aulia/glidesim/internal/telemetry"
	"github.com/t-aulia/glidesim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	pull       float64
	dt         float64
	duration   float64
	seed       int64
	frameRate  int
	sweepN     int
	jsonOut    bool
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glidesim",
		Short: "elastic-launch airplane flight simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".glidesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "plane", "trainer", "plane design preset")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log invalid-operation diagnostics")

	flyCmd := &cobra.Command{
		Use:   "fly",
		Short: "launch and simulate one flight",
		RunE:  runFly,
	}
	flyCmd.Flags().Float64Var(&pull, "pull", 1.0, "pull fraction [0,1]")
	flyCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "physics timestep")
	flyCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "flight time cap")
	flyCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "tumble random seed")
	flyCmd.Flags().BoolVar(&jsonOut, "json", false, "write the result as JSON to stdout")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "launch across a range of pull fractions",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepN, "n", 10, "number of pull fractions")
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "physics timestep")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "flight time cap")
	sweepCmd.Flags().Int64Var(&seed, "seed", 42, "tumble random seed")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a flight in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&pull, "pull", 1.0, "pull fraction [0,1]")
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "physics timestep")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "tumble random seed")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list plane design presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMASS\tLIFT\tDRAG\tUNBALANCED")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%v\n", p.Name, p.Mass, p.Lift, p.Drag, p.Unbalanced)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(flyCmd, sweepCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the preset, optional config file and CLI flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("plane") || configFile == "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown plane preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Plane = p
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") || configFile == "" {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("pull") {
		cfg.Pull = pull
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRig(cfg *config.Config) *sim.Rig {
	rng := rand.New(rand.NewSource(cfg.Seed))
	rig := sim.NewRig(cfg.Plane.BodyConfig(), cfg.Plane.Coefficients(), cfg.Launcher, rng)
	if verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			rig.SetLogger(log)
		}
	}
	return rig
}

func runFly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rig := newRig(cfg)
	velocity, _ := rig.Fire(cfg.Pull, cfg.Launcher.MaxPullDistance)

	s := sim.New(rig.Body)
	for _, m := range telemetry.Defaults() {
		s.AddMetric(m)
	}

	runCfg := sim.Config{Dt: cfg.Dt, MaxDuration: cfg.Duration, Validate: true}

	if !jsonOut {
		fmt.Printf("launching %s at %.0f%% pull (v0 %.2f m/s)...\n",
			cfg.Plane.Name, cfg.Pull*100, velocity.Len())
	}
	start := time.Now()

	result, err := s.Run(context.Background(), velocity, runCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Plane.Name, cfg.Dt, cfg.Pull, cfg.Seed, result)
	if err != nil {
		return err
	}

	if jsonOut {
		return storage.ExportResultJSON(os.Stdout, cfg.Plane.Name, cfg.Dt, cfg.Pull, result)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d  landed: %v\n", result.StepsTaken, result.Landed)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	points, err := sweep.Run(context.Background(), cfg, sweepN)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PULL\tDISTANCE\tAIR_TIME\tLANDED")
	data := make([]float64, len(points))
	for i, p := range points {
		fmt.Fprintf(w, "%.0f%%\t%.2fm\t%.2fs\t%v\n", p.Pull*100, p.Distance, p.AirTime, p.Landed)
		data[i] = p.Distance
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("distance vs pull fraction"),
	))

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rig := newRig(cfg)
	m := viz.NewModel(rig, cfg.Pull, cfg.Launcher.MaxPullDistance, cfg.Dt, frameRate, cfg.Plane.Name)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLANE\tTIME\tPULL\tDISTANCE\tLANDED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\t%.2fm\t%v\n",
			run.ID,
			run.Plane,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Pull*100,
			run.Metrics["distance"],
			run.Landed,
		)
	}

	return w.Flush()
}

// frames.csv numeric column indices (time is column 0).
const (
	colAltitude = 8
	colSpeed    = 7
	colDistance = 9
)

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("plane: %s\n", meta.Plane)
	fmt.Printf("samples: %d\n\n", len(rows))

	for _, series := range []struct {
		col     int
		caption string
	}{
		{colAltitude, "altitude (m)"},
		{colSpeed, "speed (m/s)"},
		{colDistance, "distance (m)"},
	} {
		data := make([]float64, 0, len(rows))
		for _, row := range rows {
			if series.col < len(row) {
				data = append(data, row[series.col])
			}
		}
		if len(data) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		))
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, statuses, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, rows, statuses)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	rows, statuses, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "x", "y", "z", "vx", "vy", "vz", "speed", "altitude", "distance", "aoa", "status"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, row := range rows {
		record := make([]string, 0, len(row)+1)
		for _, val := range row {
			record = append(record, strconv.FormatFloat(val, 'f', 6, 64))
		}
		record = append(record, statuses[i])
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
