package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/towerlab/internal/config"
	"github.com/san-kum/towerlab/internal/export"
	"github.com/san-kum/towerlab/internal/metrics"
	"github.com/san-kum/towerlab/internal/storage"
	"github.com/san-kum/towerlab/internal/tower"
	"github.com/san-kum/towerlab/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	frames     int
	configFile string
	preset     string
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "towerlab",
		Short: "interactive hinged tower physics toy",
		RunE:  runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".towerlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the trace",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "sampling timestep")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	addConfigFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the interactive terminal view",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

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

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output path (default <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "output path (default <run_id>.json)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the cap trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output path (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in tower presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", 0, "number of frames (overrides config)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in preset")
}

// loadConfig resolves the tower config: preset, then config file, then
// flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Tower, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.Preset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("frames") {
		cfg.Frames = frames
	}

	return cfg, cfg.Validate()
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	session, err := tower.NewSession(cfg)
	if err != nil {
		return err
	}

	runner := tower.NewRunner(session)
	runner.AddMetric(metrics.NewTipSway())
	runner.AddMetric(metrics.NewEnergy())
	runner.AddMetric(metrics.NewJointTravel())

	fmt.Printf("simulating %d frames for %.1fs...\n", cfg.Frames, duration)
	start := time.Now()

	result, err := runner.Run(context.Background(), tower.RunConfig{Dt: dt, Duration: duration})
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, tower.RunConfig{Dt: dt, Duration: duration}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Samples))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	session, err := tower.NewSession(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(session), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
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
	fmt.Fprintln(w, "ID\tTIME\tFRAMES\tDURATION\tDT")
	for _, run := range runs {
		frames := 0
		if run.Config != nil {
			frames = run.Config.Frames
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%.4fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			frames,
			run.Duration,
			run.Dt,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	tipX := make([]float64, len(samples))
	tipY := make([]float64, len(samples))
	for i, s := range samples {
		tipX[i] = s.Tip.X
		tipY[i] = s.Tip.Y
	}
	fmt.Println(asciigraph.Plot(tipX, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("tip x")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(tipY, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("tip height")))
	fmt.Println()

	maxJoints := min(len(samples[0].Angles), 3)
	for j := 0; j < maxJoints; j++ {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = s.Angles[j]
		}
		caption := fmt.Sprintf("joint %d angle", j)
		fmt.Println(asciigraph.Plot(data, asciigraph.Height(6), asciigraph.Width(80), asciigraph.Caption(caption)))
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = runID + ".csv"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time", "tip_x", "tip_y", "tip_z"}
	if len(samples) > 0 {
		for i := range samples[0].Angles {
			header = append(header, fmt.Sprintf("joint%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			strconv.FormatFloat(s.Tip.X, 'f', 6, 64),
			strconv.FormatFloat(s.Tip.Y, 'f', 6, 64),
			strconv.FormatFloat(s.Tip.Z, 'f', 6, 64),
		}
		for _, a := range s.Angles {
			row = append(row, strconv.FormatFloat(a, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := outFile
	if path == "" {
		path = runID + ".json"
	}

	st := storage.New(dataDir)
	if err := st.ExportJSON(runID, path); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	svg := export.TipPathToSVG(samples, 800, 600, "#00ff88")
	if svg == "" {
		return fmt.Errorf("not enough data to draw")
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}
