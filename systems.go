package depot

// Built-in system names
const (
	SpawnerSystemName  = "Spawner"
	BehaviorSystemName = "Behavior"
	MovementSystemName = "Movement"
	LifetimeSystemName = "Lifetime"
)

var (
	_ System = &BehaviorSystem{}
	_ System = &MovementSystem{}
	_ System = &LifetimeSystem{}
	_ System = &SpawnerSystem{}
)

func builtinSystems() []System {
	return []System{
		NewSpawnerSystem(),
		NewBehaviorSystem(),
		NewMovementSystem(),
		NewLifetimeSystem(),
	}
}

// BehaviorSystem ticks the behavior tree of every object in pools carrying
// the Behavior component. Each pool's runner is built on first subscription
// from the tree its archetype names.
type BehaviorSystem struct {
	SystemBase
	runners map[*Pool]*BehaviorRunner
}

func NewBehaviorSystem() *BehaviorSystem {
	return &BehaviorSystem{
		SystemBase: NewSystemBase(BehaviorSystemName, And(BehaviorName)),
		runners:    make(map[*Pool]*BehaviorRunner),
	}
}

func (s *BehaviorSystem) Subscribe(space *Space, pool *Pool) bool {
	if _, ok := s.runners[pool]; ok {
		return true
	}
	if !s.poolType.Evaluate(pool, space) {
		return false
	}
	tree, ok := space.BehaviorTreeFor(pool)
	if !ok {
		space.logger.Warn("pool has no behavior tree",
			"pool", pool.Name(),
			"archetype", pool.Archetype(),
		)
		return false
	}
	s.runners[pool] = NewBehaviorRunner(space, pool, tree)
	return s.SystemBase.Subscribe(space, pool)
}

// Runner returns the runner attached to pool
func (s *BehaviorSystem) Runner(pool *Pool) (*BehaviorRunner, bool) {
	r, ok := s.runners[pool]
	return r, ok
}

func (s *BehaviorSystem) Update(space *Space) error {
	for _, pool := range s.pools {
		s.runners[pool].TickAll()
	}
	return nil
}

// MovementSystem adds each object's velocity to its position once per tick
type MovementSystem struct {
	SystemBase
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{
		SystemBase: NewSystemBase(MovementSystemName, And(TransformName, VelocityName)),
	}
}

func (s *MovementSystem) Update(space *Space) error {
	cursor := newCursor(s.poolType, space)
	for cursor.Next() {
		tf := TransformComponent.GetFromCursor(cursor)
		vel := VelocityComponent.GetFromCursor(cursor)
		tf.Position = tf.Position.Add(vel.Vec2)
	}
	return nil
}

// LifetimeSystem counts lifetimes down and queues expired objects for
// destruction at the end of the tick
type LifetimeSystem struct {
	SystemBase
}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{
		SystemBase: NewSystemBase(LifetimeSystemName, And(LifetimeName)),
	}
}

// Pools stay locked for the whole tick, so queued destroys never shift the
// indices the cursor walks
func (s *LifetimeSystem) Update(space *Space) error {
	for i, pool := range newCursor(s.poolType, space).Objects() {
		life := LifetimeComponent.GetFromPool(pool, i)
		life.Remaining--
		if life.Remaining > 0 {
			continue
		}
		if err := pool.EnqueueDestroyObject(i); err != nil {
			return err
		}
	}
	return nil
}

// SpawnerSystem fires every Spawner whose interval elapsed. Spawns that do
// not fit are dropped and logged; they never fail the tick.
type SpawnerSystem struct {
	SystemBase
}

func NewSpawnerSystem() *SpawnerSystem {
	return &SpawnerSystem{
		SystemBase: NewSystemBase(SpawnerSystemName, And(SpawnerName)),
	}
}

func (s *SpawnerSystem) Update(space *Space) error {
	for _, pool := range s.pools {
		spawners := SpawnerComponent.Slice(pool)
		// Spawns into this pool land past n and wait for the next tick
		n := pool.ActiveCount()
		for i := 0; i < n; i++ {
			sp := &spawners[i]
			if sp.Interval <= 0 {
				continue
			}
			sp.Elapsed++
			if sp.Elapsed < sp.Interval {
				continue
			}
			sp.Elapsed = 0
			source, _ := pool.Object(i)
			for _, info := range sp.Spawns {
				if _, err := space.Spawn(source, info); err != nil {
					space.logger.Warn("spawn dropped",
						"pool", pool.Name(),
						"object", i,
						"destination", info.PoolName,
						"err", err,
					)
				}
			}
		}
	}
	return nil
}
