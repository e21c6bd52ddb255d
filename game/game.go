// Package game wires the per-frame pipeline: tracking, classification, mode
// machine, target solving and integration, plus the optional raylib viewer.
package game

import (
	"log/slog"
	"math/rand"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/memorytree/camera"
	"github.com/pthm-cable/memorytree/components"
	"github.com/pthm-cable/memorytree/config"
	"github.com/pthm-cable/memorytree/gesture"
	"github.com/pthm-cable/memorytree/mode"
	"github.com/pthm-cable/memorytree/renderer"
	"github.com/pthm-cable/memorytree/systems"
	"github.com/pthm-cable/memorytree/telemetry"
	"github.com/pthm-cable/memorytree/tracking"
	"github.com/pthm-cable/memorytree/ui"
)

// Options configures a game instance.
type Options struct {
	Seed      int64
	LogStats  bool   // Log window and perf stats via slog
	OutputDir string // CSV output directory (empty = disabled)
	Headless  bool   // No raylib resources
	Source    tracking.Source
	Chooser   mode.Chooser // Focus target selection (nil = seeded rng)
}

// Game holds the complete scene state. It is driven by one caller, one Step per frame;
// only IngestPhoto and OnModeChange may be called from other goroutines.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	registry   *systems.ParticleRegistry
	targets    *systems.TargetSystem
	integrator *systems.IntegratorSystem
	stages     *systems.SystemRegistry

	machine    *mode.Machine
	thresholds gesture.Thresholds
	source     tracking.Source
	orbit      *camera.Orbit

	// Photos waiting for the next tick boundary
	pendingMu sync.Mutex
	pending   []components.Photo

	observersMu sync.Mutex
	observers   []func(telemetry.ModeEvent)

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	// Frame state
	tick       int32
	time       float64
	dt         float64
	lastFrame  tracking.Frame
	lastResult gesture.Classification
	wasReady   bool

	// Viewer (nil when headless)
	manual   *tracking.Manual
	hand     viewerHand
	renderer *renderer.ParticleRenderer
	hud      *ui.HUD
	paused   bool
}

// New creates a scene from cfg, populated with the configured DECOR and DUST particles.
func New(cfg *config.Config, opts Options) (*Game, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	world := ecs.NewWorld()

	chooser := opts.Chooser
	if chooser == nil {
		chooser = rng
	}
	source := opts.Source
	if source == nil {
		source = tracking.NoHand{}
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		cfg:        cfg,
		world:      world,
		rng:        rng,
		registry:   systems.NewParticleRegistry(world, cfg, rng),
		targets:    systems.NewTargetSystem(world, systems.NewTargetSolver(cfg.Tree, cfg.Focus)),
		integrator: systems.NewIntegratorSystem(world, systems.NewIntegrator(systems.BlendFromConfig(cfg.Integrator))),
		stages:     systems.NewSystemRegistry(),
		machine:    mode.NewMachine(chooser),
		thresholds: gesture.Thresholds{
			Pinch:    cfg.Gesture.Pinch,
			Fist:     cfg.Gesture.Fist,
			Open:     cfg.Gesture.Open,
			UseDepth: cfg.Gesture.UseDepth,
		},
		source:    source,
		orbit:     camera.New(cfg.Camera),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT),
		output:    output,
		logStats:  opts.LogStats,
		dt:        cfg.Derived.DT,
		wasReady:  true,
	}

	g.registry.Populate(components.KindDecor, cfg.Scene.DecorCount)
	g.registry.Populate(components.KindDust, cfg.Scene.DustCount)

	slog.Info("scene initialized",
		"seed", opts.Seed,
		"decor", cfg.Scene.DecorCount,
		"dust", cfg.Scene.DustCount,
		"blend", cfg.Integrator.Blend,
		"alpha", cfg.Integrator.Alpha,
	)
	return g, nil
}

// NewGameWithOptions creates a scene from the global config. Outside headless mode it
// also sets up the viewer, which requires an open raylib window.
func NewGameWithOptions(opts Options) (*Game, error) {
	var manual *tracking.Manual
	if !opts.Headless && opts.Source == nil {
		manual = tracking.NewManual()
		opts.Source = manual
	}

	g, err := New(config.Cfg(), opts)
	if err != nil {
		return nil, err
	}
	if !opts.Headless {
		g.manual = manual
		g.renderer = renderer.NewParticleRenderer()
		g.hud = ui.NewHUD(g.stages)
	}
	return g, nil
}

// Tick returns the number of completed frames.
func (g *Game) Tick() int32 {
	return g.tick
}

// Time returns the scene clock in seconds.
func (g *Game) Time() float64 {
	return g.time
}

// State returns the current mode state.
func (g *Game) State() mode.State {
	return g.machine.State()
}

// Registry returns the particle registry.
func (g *Game) Registry() *systems.ParticleRegistry {
	return g.registry
}

// Camera returns the orbit camera.
func (g *Game) Camera() *camera.Orbit {
	return g.orbit
}

// LastClassification returns the classifier output of the most recent frame.
func (g *Game) LastClassification() gesture.Classification {
	return g.lastResult
}

// Unload closes output files.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
