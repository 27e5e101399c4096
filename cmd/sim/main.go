// cmd/sim/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftline/startrader/pkg/ai"
	"github.com/driftline/startrader/pkg/config"
	"github.com/driftline/startrader/pkg/control"
	"github.com/driftline/startrader/pkg/entity"
	"github.com/driftline/startrader/pkg/event"
	"github.com/driftline/startrader/pkg/logging"
	"github.com/driftline/startrader/pkg/physics"
	"github.com/driftline/startrader/pkg/render"
	"github.com/driftline/startrader/pkg/scene"
	"github.com/driftline/startrader/pkg/world"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	view := flag.String("view", "none", "Viewer: none, ascii, or tcell")
	ticks := flag.Int("ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	simConfig := loadConfig(ctx, logger, *configPath)

	w, err := world.FromConfig(simConfig)
	if err != nil {
		logger.Error(ctx, "Failed to build world", err)
		os.Exit(1)
	}

	bus := event.NewBus()
	subscribeLoggers(bus, logger)

	sc := scene.New(bus)
	player := spawnPlayer(sc, w, simConfig)
	spawnNPCs(sc, w, simConfig)

	controller := control.NewMovementController(sc, w)
	if ids := w.StationIDs(); len(ids) > 0 {
		controller.MovePlayerShipToStation(ids[0])
	}

	bus.Publish(&event.BaseEvent{EventType: event.SimulationStarted, Source: sc})
	runLoop(ctx, logger, sc, w, player, simConfig, *view, *ticks)
	bus.Publish(&event.BaseEvent{EventType: event.SimulationStopped, Source: sc})
	logStatus(ctx, logger, controller, sc)
}

// loadConfig loads the file if present, falls back to defaults, and
// layers environment overrides on top.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) *config.SimConfig {
	var simConfig *config.SimConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		simConfig = config.DefaultConfig()
	} else {
		simConfig, err = config.LoadConfig(path)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", path,
			)
			os.Exit(1)
		}
	}

	if err := config.ApplyEnvOverrides(simConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}
	return simConfig
}

func subscribeLoggers(bus *event.Bus, logger *logging.Logger) {
	ctx := context.Background()
	bus.Subscribe(event.MovementArrived, func(e event.Event) {
		if me, ok := e.(*event.MovementEvent); ok {
			logger.Info(ctx, "ship arrived", "actor_id", me.ActorID, "x", me.X, "y", me.Y)
		}
	})
	bus.Subscribe(event.GoalChanged, func(e event.Event) {
		if ge, ok := e.(*event.GoalEvent); ok {
			logger.Info(ctx, "npc goal changed",
				"actor_id", ge.ActorID,
				"previous", ge.PreviousGoal,
				"current", ge.CurrentGoal,
			)
		}
	})
	bus.Subscribe(event.ThreatDetected, func(e event.Event) {
		if te, ok := e.(*event.ThreatEvent); ok {
			logger.Warn(ctx, "npc under threat", "actor_id", te.ActorID, "level", te.Level)
		}
	})
}

func spawnPlayer(sc *scene.Scene, w *world.World, cfg *config.SimConfig) *entity.ShipActor {
	stats, ok := w.ShipStats("Shuttle")
	if !ok {
		stats = entity.ClassStats(entity.Shuttle)
	}
	// Spawn at the origin; the first move command sends the ship out.
	ship := entity.NewShipActorWithStats(
		entity.GenerateID(), "Player", entity.Shuttle, stats,
		physics.Vector2D{},
	)
	ship.SetArrivalEpsilon(cfg.ArrivalEpsilon)
	sc.AddActor(ship, control.PlayerTag)
	return ship
}

func spawnNPCs(sc *scene.Scene, w *world.World, cfg *config.SimConfig) {
	for _, nc := range cfg.NPCs {
		class := entity.ShipClassFromString(nc.ShipClass)
		stats, ok := w.ShipStats(nc.ShipClass)
		if !ok {
			stats = entity.ClassStats(class)
		}

		ship := entity.NewShipActorWithStats(
			entity.GenerateID(), nc.Name, class,
			stats,
			physics.Vector2D{X: nc.X, Y: nc.Y},
		)
		ship.SetArrivalEpsilon(cfg.ArrivalEpsilon)

		npc := entity.NewNPCActor(
			ship,
			ai.PersonalityByName(nc.Archetype),
			ai.SkillsByName(nc.Archetype),
			w,
		)
		npc.SetDecisionCooldown(cfg.DecisionCooldown)
		npc.SetThreatProfile(cfg.HostileTag, cfg.ThreatRadius)

		tag := "npc"
		if nc.Archetype == "pirate" {
			tag = cfg.HostileTag
		}
		sc.AddActor(npc, tag)
	}
}

func runLoop(ctx context.Context, logger *logging.Logger, sc *scene.Scene, w *world.World,
	player *entity.ShipActor, cfg *config.SimConfig, view string, maxTicks int,
) {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deltaTime := 1.0 / float64(cfg.TickRate)
	ticker := time.NewTicker(time.Duration(float64(time.Second) * deltaTime))
	defer ticker.Stop()

	var ascii *render.TerminalRenderer
	var live *render.TcellRenderer
	switch view {
	case "ascii":
		ascii = render.NewTerminalRenderer(100, 32, cfg.WorldSize/100)
	case "tcell":
		var err error
		live, err = render.NewTcellRenderer(cfg.WorldSize / 120)
		if err != nil {
			logger.Error(ctx, "Failed to initialize viewer, continuing headless", err)
		} else {
			defer live.Close()
		}
	}

	for tick := 0; maxTicks == 0 || tick < maxTicks; tick++ {
		select {
		case <-sigCtx.Done():
			logger.Info(ctx, "shutting down", "tick", sc.Tick())
			return
		case <-ticker.C:
		}

		sc.Update(deltaTime)
		sc.Sweep()

		switch {
		case live != nil:
			if live.PollQuit() {
				return
			}
			live.SetCenter(player.GetPosition2D())
			sc.RenderWith(live, func() { plotStations(live, w) })
		case ascii != nil:
			ascii.SetCenter(player.GetPosition2D())
			sc.RenderWith(ascii, func() { plotStations(ascii, w) })
			fmt.Print("\033[H\033[2J")
			fmt.Println(ascii.String())
		}
	}
}

type stationPlotter interface {
	PlotStation(pos physics.Vector2D)
}

func plotStations(r stationPlotter, w *world.World) {
	for _, id := range w.StationIDs() {
		if st, ok := w.Station(id); ok {
			r.PlotStation(st.Position)
		}
	}
}

func logStatus(ctx context.Context, logger *logging.Logger, controller *control.MovementController, sc *scene.Scene) {
	status := controller.PlayerShipMovementStatus()
	if status == nil {
		logger.Warn(ctx, "no player ship registered")
		return
	}
	logger.Info(ctx, "simulation finished",
		"tick", sc.Tick(),
		"player", status.Name,
		"moving", status.IsMoving,
		"progress", status.Progress,
		"x", status.CurrentPosition.X,
		"y", status.CurrentPosition.Y,
	)
}
