package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/component"
	"github.com/milk9111/brawler/prefabs"
	"github.com/milk9111/brawler/system"
)

// simulate runs a match without a window and logs what happened. Frames are
// never drawn, so no frame table is built.
func main() {
	matchName := flag.String("match", "match.yaml", "match spec in prefabs/")
	frames := flag.Int("frames", 60*common.TPS, "frames to simulate")
	debug := flag.Bool("debug", false, "log every combat event")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	match, err := prefabs.LoadMatch(*matchName)
	if err != nil {
		log.Fatal(err)
	}
	world, err := system.NewWorld(match, nil)
	if err != nil {
		log.Fatal(err)
	}

	counts := map[component.CombatEventType]int{}
	damage := [common.Players]int{}
	world.Events.Subscribe(func(evt component.CombatEvent) {
		counts[evt.Type]++
		if evt.Type == component.EventDamageApplied && evt.Player >= 0 && evt.Player < common.Players {
			damage[evt.Player] += evt.Damage
		}
	})

	for world.Frame() < *frames {
		world.Step()
		if _, over := world.Winner(); over {
			break
		}
	}

	for i := range common.Players {
		c := world.Player(i)
		slog.Info("player", "slot", i+1, "hp", c.Health.Current, "x", c.X(), "damage_taken", damage[i])
	}
	winner, over := world.Winner()
	slog.Info("round finished",
		"match", match.Spec.Name,
		"frames", world.Frame(),
		"over", over,
		"winner", winner+1,
		"hits", counts[component.EventHazardHit],
		"kos", counts[component.EventKO],
		"hazards_expired", counts[component.EventHazardExpired],
		"modifiers_expired", counts[component.EventModifierExpired],
		"script_disabled", world.Script.Disabled(),
	)
}
