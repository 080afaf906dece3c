package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/orbit"
	"github.com/san-kum/orbitlab/internal/sim"
	"github.com/san-kum/orbitlab/internal/storage"
	"github.com/san-kum/orbitlab/internal/vec"
	"github.com/san-kum/orbitlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	gravConst  float64
	fps        int
	// orbit command state vector
	mass float64
	posX float64
	posY float64
	velX float64
	velY float64
	// plot selection
	plotElements bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitlab",
		Short: "orbital flight lab: force ledgers, tick engine, two-body elements",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and store the track",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().Float64Var(&gravConst, "g", 0, "gravitational constant override")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "fly a scenario interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	liveCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "solve orbit elements for one state vector",
		RunE:  solveOrbit,
	}
	orbitCmd.Flags().Float64Var(&gravConst, "g", config.DefaultG, "gravitational constant")
	orbitCmd.Flags().Float64Var(&mass, "mass", 5.972e24, "central mass")
	orbitCmd.Flags().Float64Var(&posX, "x", 0, "relative position x")
	orbitCmd.Flags().Float64Var(&posY, "y", 0, "relative position y")
	orbitCmd.Flags().Float64Var(&velX, "vx", 0, "relative velocity x")
	orbitCmd.Flags().Float64Var(&velY, "vy", 0, "relative velocity y")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&plotElements, "elements", false, "plot semi-major axis instead of radius")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, liveCmd, orbitCmd, plotCmd, listCmd, presetsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves the scenario from --config, a preset name, or
// the default, then applies flag overrides.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	var cfg *config.Config
	name := "default"

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
		name = trimExt(filepath.Base(configFile))
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset %q (available: %v)", args[0], config.ListPresets())
		}
		name = args[0]
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("g") {
		cfg.G = gravConst
	}

	return cfg, name, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	world, tracked, central, err := sim.Build(cfg)
	if err != nil {
		return err
	}

	engine := sim.NewEngine(world, orbit.NewSolver(cfg.G))
	result, err := engine.Run(context.Background(), tracked, central, sim.Config{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
	})
	if err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Scenario: name,
		G:        cfg.G,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Tracked:  tracked.Name,
		Central:  central.Name,
	}

	fmt.Print(viz.SummaryView(meta, result))

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(meta, result)
	if err != nil {
		return err
	}

	points, err := store.LoadTrack(runID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.RadiusPlot(points))
	fmt.Printf("\nsaved run: %s\n", runID)

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	model, err := viz.NewLive(cfg, fps)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}

func solveOrbit(cmd *cobra.Command, args []string) error {
	solver := orbit.NewSolver(gravConst)

	el, err := solver.Solve(mass,
		vec.Vec2{X: posX, Y: posY},
		vec.Vec2{X: velX, Y: velY})
	if err != nil {
		// A degenerate state is an answer, not a failure.
		fmt.Printf("orbit reading unavailable: %v (class %s)\n", err, el.Class)
		return nil
	}

	fmt.Print(viz.ElementsView(el))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)

	points, err := store.LoadTrack(args[0])
	if err != nil {
		return err
	}

	if plotElements {
		fmt.Println(viz.ElementsPlot(points))
	} else {
		fmt.Println(viz.RadiusPlot(points))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)

	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTRACKED\tCENTRAL\tTICKS\tDEGENERATE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID, run.Scenario, run.Tracked, run.Central,
			run.StepsTaken, run.DegenerateTicks)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)

	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
