// Profiling:
// go build ./profile/spawn
// go tool pprof -http=":8000" -nodefraction=0.001 ./spawn mem.pprof

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/depot"
	"github.com/pkg/profile"
)

func main() {
	mode := flag.String("mode", "mem", "profile to record: mem or cpu")
	rounds := flag.Int("rounds", 50, "number of fresh spaces to run")
	ticks := flag.Int("ticks", 2000, "ticks per round")
	flag.Parse()

	var kind func(*profile.Profile)
	switch *mode {
	case "mem":
		kind = profile.MemProfileAllocs
	case "cpu":
		kind = profile.CPUProfile
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(1)
	}

	p := profile.Start(kind, profile.ProfilePath("."), profile.NoShutdownHook)
	err := run(*rounds, *ticks)
	p.Stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run drives turrets that fire rings of short-lived bullets, which keeps the
// spawn pipeline, the behavior runner and deferred destruction busy
func run(rounds, ticks int) error {
	for round := range rounds {
		space, err := newSpace(uint64(round))
		if err != nil {
			return bark.AddTrace(err)
		}
		for range ticks {
			if err := space.Update(); err != nil {
				return bark.AddTrace(fmt.Errorf("round %d tick %d: %w", round, space.Tick(), err))
			}
		}
	}
	return nil
}

func newSpace(seed uint64) (*depot.Space, error) {
	space := depot.Factory.NewSpace("profile", seed)
	space.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := space.RegisterSpawnRule(depot.RandomSpeed{Min: 1, Max: 4}); err != nil {
		return nil, err
	}
	tree, err := depot.NewBehaviorTree(depot.Loop(depot.Sequence(
		depot.Wait(3),
		depot.SpawnNode(),
		depot.RotateDirection(0.2),
	)))
	if err != nil {
		return nil, err
	}
	if err := space.RegisterBehaviorTree("turret", tree); err != nil {
		return nil, err
	}

	bullet := depot.NewArchetype("Bullet", depot.TransformName, depot.VelocityName, depot.LifetimeName)
	if err := bullet.AddObject(depot.NewObjectArchetype("Basic").
		With(depot.LifetimeName, depot.Lifetime{Remaining: 40})); err != nil {
		return nil, err
	}
	turret := depot.NewArchetype("Turret", depot.TransformName, depot.VelocityName, depot.BehaviorName, depot.SpawnerName).
		WithBehaviorTree("turret")
	if err := turret.AddObject(depot.NewObjectArchetype("Default").
		With(depot.SpawnerName, depot.Spawner{Spawns: []depot.SpawnInfo{{
			PoolName:        "bullets",
			ObjectArchetype: "Basic",
			Rules: []string{
				depot.RingRule,
				depot.RandomSpeedRule,
				depot.MatchPositionRule,
				depot.MatchHeadingRule,
			},
			Layout: depot.SpawnLayout{LayerCopies: 2, Groups: 2, ObjectsPerGroup: 12},
		}}})); err != nil {
		return nil, err
	}
	for _, a := range []*depot.Archetype{bullet, turret} {
		if err := space.RegisterArchetype(a); err != nil {
			return nil, err
		}
	}

	if _, err := space.NewPool("bullets", "Bullet", 4096); err != nil {
		return nil, err
	}
	if _, err := space.NewPool("turrets", "Turret", 8); err != nil {
		return nil, err
	}
	if _, err := space.CreateObjects("turrets", "Default", 8); err != nil {
		return nil, err
	}
	return space, nil
}
