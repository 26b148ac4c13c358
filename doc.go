/*
Package depot provides the simulation core for pool-based games: fixed-capacity object pools
stored as parallel component arrays, archetypes that shape and fill them, a rule-driven spawn
pipeline and a resumable behavior tree interpreter, all driven by an ordered system scheduler.

Core Concepts:

  - Pool: A fixed-capacity set of objects. Index i is the same object in every component array.
  - Archetype: The component shape of a pool, plus named object archetypes holding default values.
  - Spawn: Reserve a burst of slots, stamp archetype defaults, then apply spawn rules in order.
  - Behavior tree: A flat, shared tree per pool with per-object execution state.
  - System: Per-tick logic subscribed to every pool that matches its pool type.

Basic Usage:

	space := depot.Factory.NewSpace("level", 42)

	bullets := depot.NewArchetype("Bullet", depot.TransformName, depot.VelocityName, depot.LifetimeName)
	bullets.AddObject(depot.NewObjectArchetype("Basic").
		With(depot.LifetimeName, depot.Lifetime{Remaining: 60}))
	space.RegisterArchetype(bullets)

	pool, _ := space.NewPool("bullets", "Bullet", 256)

	// Eight bullets in a ring, moving outward
	space.Spawn(depot.Object{}, depot.SpawnInfo{
		PoolName:        "bullets",
		ObjectArchetype: "Basic",
		Rules:           []string{depot.RingRule},
		Layout:          depot.SpawnLayout{ObjectsPerGroup: 8},
	})

	for range 60 {
		space.Update()
	}
	// pool.ActiveCount() == 0: every bullet expired

Destroying objects is a swap-remove: the last active object moves into the freed slot. While
the scheduler runs a tick every pool is locked and destruction is deferred until the tick ends.
*/
package depot
