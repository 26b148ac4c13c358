package depot

import (
	"fmt"
	"slices"
)

// SystemBase implements subscription for systems that embed it. A system
// only has to add Update.
type SystemBase struct {
	name     string
	poolType QueryNode
	pools    []*Pool
}

func NewSystemBase(name string, poolType QueryNode) SystemBase {
	return SystemBase{
		name:     name,
		poolType: poolType,
	}
}

func (b *SystemBase) Name() string {
	return b.name
}

func (b *SystemBase) PoolType() QueryNode {
	return b.poolType
}

func (b *SystemBase) Subscribe(space *Space, pool *Pool) bool {
	if !b.poolType.Evaluate(pool, space) {
		return false
	}
	if !slices.Contains(b.pools, pool) {
		b.pools = append(b.pools, pool)
	}
	return true
}

// Pools returns the subscribed pools in subscription order
func (b *SystemBase) Pools() []*Pool {
	return b.pools
}

// Scheduler runs systems once per tick in an explicit order
type Scheduler struct {
	systems *SimpleCache[System]
	order   []System
}

func newScheduler() *Scheduler {
	return &Scheduler{
		systems: newSimpleCache[System](0),
	}
}

// Register adds a system. Until SetOrder is called systems run in
// registration order.
func (s *Scheduler) Register(system System) error {
	if _, err := s.systems.Register(system.Name(), system); err != nil {
		return DuplicateNameError{Kind: "system", Name: system.Name()}
	}
	s.order = append(s.order, system)
	return nil
}

func (s *Scheduler) System(name string) (System, bool) {
	return s.systems.Lookup(name)
}

// SetOrder replaces the update order. Every name must be registered and
// appear once; registered systems left out do not run.
func (s *Scheduler) SetOrder(names ...string) error {
	order := make([]System, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return DuplicateNameError{Kind: "system in order", Name: name}
		}
		seen[name] = struct{}{}
		system, ok := s.systems.Lookup(name)
		if !ok {
			return SystemNotFoundError{System: name}
		}
		order = append(order, system)
	}
	s.order = order
	return nil
}

// Order returns the names of the systems that run, in order
func (s *Scheduler) Order() []string {
	names := make([]string, len(s.order))
	for i, system := range s.order {
		names[i] = system.Name()
	}
	return names
}

// Subscribe offers the pool to every registered system, ordered or not
func (s *Scheduler) Subscribe(space *Space, pool *Pool) []string {
	var subscribed []string
	for _, name := range s.systems.Keys() {
		system, _ := s.systems.Lookup(name)
		if system.Subscribe(space, pool) {
			subscribed = append(subscribed, name)
		}
	}
	return subscribed
}

// Update locks every pool, runs the ordered systems and unlocks, which
// applies destruction deferred during the tick
func (s *Scheduler) Update(space *Space) error {
	pools := space.Pools()
	for _, pool := range pools {
		pool.Lock()
	}
	defer func() {
		for _, pool := range pools {
			pool.Unlock()
		}
	}()

	for _, system := range s.order {
		if err := system.Update(space); err != nil {
			return fmt.Errorf("system %q failed: %w", system.Name(), err)
		}
	}
	return nil
}
