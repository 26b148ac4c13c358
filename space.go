package depot

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/TheBitDrifter/table"
)

// Space owns everything one simulation needs: registries, pools, systems and
// the random stream. It is the explicit context threaded through systems,
// rules and behavior nodes.
type Space struct {
	name   string
	logger *slog.Logger
	rand   RandomStream
	tick   uint64

	schema        table.Schema
	components    map[string]ComponentType
	componentBits map[string]uint32

	archetypes *ArchetypeRegistry
	trees      *SimpleCache[*BehaviorTree]
	rules      *SimpleCache[SpawnRule]
	scheduler  *Scheduler

	pools     map[string]*Pool
	poolOrder []*Pool
}

func newSpace(name string, stream RandomStream) *Space {
	space := &Space{
		name:          name,
		logger:        Config.Logger().With("space", name),
		rand:          stream,
		schema:        table.Factory.NewSchema(),
		components:    make(map[string]ComponentType),
		componentBits: make(map[string]uint32),
		archetypes:    newArchetypeRegistry(),
		trees:         newSimpleCache[*BehaviorTree](0),
		rules:         newSimpleCache[SpawnRule](0),
		scheduler:     newScheduler(),
		pools:         make(map[string]*Pool),
	}
	for _, ct := range builtinComponents() {
		// Fresh registries cannot collide
		_ = space.RegisterComponent(ct)
	}
	for _, rule := range builtinSpawnRules() {
		_ = space.RegisterSpawnRule(rule)
	}
	for _, system := range builtinSystems() {
		_ = space.RegisterSystem(system)
	}
	return space
}

func (s *Space) Name() string {
	return s.name
}

func (s *Space) Logger() *slog.Logger {
	return s.logger
}

func (s *Space) SetLogger(logger *slog.Logger) {
	s.logger = logger.With("space", s.name)
}

func (s *Space) Rand() RandomStream {
	return s.rand
}

// Tick returns the number of completed updates
func (s *Space) Tick() uint64 {
	return s.tick
}

func (s *Space) Archetypes() *ArchetypeRegistry {
	return s.archetypes
}

func (s *Space) Scheduler() *Scheduler {
	return s.scheduler
}

// RegisterComponent makes a component available to archetypes by name
func (s *Space) RegisterComponent(ct ComponentType) error {
	if _, exists := s.components[ct.Name()]; exists {
		return DuplicateNameError{Kind: "component", Name: ct.Name()}
	}
	s.schema.Register(ct.ElementType())
	s.components[ct.Name()] = ct
	s.componentBits[ct.Name()] = s.schema.RowIndexFor(ct.ElementType())
	return nil
}

func (s *Space) Component(name string) (ComponentType, bool) {
	ct, ok := s.components[name]
	return ct, ok
}

// Components returns the registered component names, sorted
func (s *Space) Components() []string {
	return slices.Sorted(maps.Keys(s.components))
}

// RegisterArchetype adds an archetype after checking its shape and every
// object default against the registered components
func (s *Space) RegisterArchetype(a *Archetype) error {
	for _, name := range a.components {
		if _, ok := s.components[name]; !ok {
			return ComponentNotFoundError{Component: name}
		}
	}
	for _, objName := range a.Objects() {
		obj := a.objects[objName]
		for component, value := range obj.defaults {
			ct := s.components[component]
			if !ct.Accepts(value) {
				return ComponentTypeError{Component: component, Want: ct.ElementType().Type().String(), Got: value}
			}
		}
	}
	return s.archetypes.Insert(a)
}

// RegisterBehaviorTree adds a named tree. Existing pools are offered to the
// systems again so pools created before their tree still get a runner.
func (s *Space) RegisterBehaviorTree(name string, tree *BehaviorTree) error {
	if _, err := s.trees.Register(name, tree); err != nil {
		return DuplicateNameError{Kind: "behavior tree", Name: name}
	}
	for _, pool := range s.poolOrder {
		s.scheduler.Subscribe(s, pool)
	}
	return nil
}

func (s *Space) BehaviorTree(name string) (*BehaviorTree, bool) {
	return s.trees.Lookup(name)
}

// BehaviorTreeFor resolves the tree a pool's archetype names
func (s *Space) BehaviorTreeFor(pool *Pool) (*BehaviorTree, bool) {
	a, ok := s.archetypes.Get(pool.Archetype())
	if !ok || a.BehaviorTree() == "" {
		return nil, false
	}
	return s.trees.Lookup(a.BehaviorTree())
}

func (s *Space) RegisterSpawnRule(rule SpawnRule) error {
	if _, err := s.rules.Register(rule.Name(), rule); err != nil {
		return DuplicateNameError{Kind: "spawn rule", Name: rule.Name()}
	}
	return nil
}

func (s *Space) SpawnRule(name string) (SpawnRule, bool) {
	return s.rules.Lookup(name)
}

// RegisterSystem registers a system and subscribes every existing pool to it
func (s *Space) RegisterSystem(system System) error {
	if err := s.scheduler.Register(system); err != nil {
		return err
	}
	for _, pool := range s.poolOrder {
		system.Subscribe(s, pool)
	}
	return nil
}

func (s *Space) System(name string) (System, bool) {
	return s.scheduler.System(name)
}

// SetSystemOrder sets the per-tick system order explicitly
func (s *Space) SetSystemOrder(names ...string) error {
	return s.scheduler.SetOrder(names...)
}

// NewPool builds an empty pool shaped by the named archetype and subscribes
// it to every system
func (s *Space) NewPool(name, archetypeName string, capacity int) (*Pool, error) {
	if _, exists := s.pools[name]; exists {
		return nil, DuplicateNameError{Kind: "pool", Name: name}
	}
	if capacity < 0 {
		return nil, fmt.Errorf("pool %q: negative capacity %d", name, capacity)
	}
	a, ok := s.archetypes.Get(archetypeName)
	if !ok {
		return nil, ArchetypeNotFoundError{Archetype: archetypeName}
	}

	types := make([]ComponentType, 0, len(a.components))
	signature, _ := maskFor(s, a.components)
	for _, component := range a.components {
		types = append(types, s.components[component])
	}

	pool := newPool(name, archetypeName, capacity, types, signature)
	s.pools[name] = pool
	s.poolOrder = append(s.poolOrder, pool)

	subscribed := s.scheduler.Subscribe(s, pool)
	s.logger.Debug("pool created",
		"pool", name,
		"archetype", archetypeName,
		"capacity", capacity,
		"systems", subscribed,
	)
	return pool, nil
}

func (s *Space) Pool(name string) (*Pool, bool) {
	p, ok := s.pools[name]
	return p, ok
}

// Pools returns every pool in creation order
func (s *Space) Pools() []*Pool {
	return s.poolOrder
}

// CreateObjects creates n objects in a pool, each stamped with the named
// object archetype
func (s *Space) CreateObjects(poolName, objectArchetype string, n int) (IndexRange, error) {
	if n < 0 {
		return IndexRange{}, ObjectCountError{Pool: poolName, Count: n}
	}
	if n == 0 {
		pool, ok := s.pools[poolName]
		if !ok {
			return IndexRange{}, PoolNotFoundError{Pool: poolName}
		}
		return pool.CreateObjects(0)
	}
	return s.Spawn(Object{}, SpawnInfo{
		PoolName:        poolName,
		ObjectArchetype: objectArchetype,
		Layout:          SpawnLayout{ObjectsPerGroup: n},
	})
}

// LoadScene builds the scene's pools in pool name order and creates their
// starting objects. Every pool is checked before any is built, so a scene
// that fails to load leaves the space untouched.
func (s *Space) LoadScene(scene Scene) error {
	keys := slices.Sorted(maps.Keys(scene.Pools))
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = scene.Pools[key].PoolName
		if names[i] == "" {
			names[i] = key
		}
		if err := s.checkPoolInfo(names[i], scene.Pools[key], names[:i]); err != nil {
			return fmt.Errorf("failed to load scene %q: %w", scene.Name, err)
		}
	}

	for i, key := range keys {
		info := scene.Pools[key]
		if _, err := s.NewPool(names[i], info.ArchetypeName, info.Capacity); err != nil {
			return fmt.Errorf("failed to load scene %q: %w", scene.Name, err)
		}
		for _, objName := range info.StartingObjectNames {
			if _, err := s.CreateObjects(names[i], objName, 1); err != nil {
				return fmt.Errorf("failed to load scene %q: %w", scene.Name, err)
			}
		}
	}
	return nil
}

// checkPoolInfo reports what NewPool and CreateObjects would reject for one
// scene pool. loaded holds the names of the scene's earlier pools.
func (s *Space) checkPoolInfo(name string, info PoolInfo, loaded []string) error {
	if _, exists := s.pools[name]; exists || slices.Contains(loaded, name) {
		return DuplicateNameError{Kind: "pool", Name: name}
	}
	if info.Capacity < 0 {
		return fmt.Errorf("pool %q: negative capacity %d", name, info.Capacity)
	}
	if _, ok := s.archetypes.Get(info.ArchetypeName); !ok {
		return ArchetypeNotFoundError{Archetype: info.ArchetypeName}
	}
	if len(info.StartingObjectNames) > info.Capacity {
		return PoolCapacityError{Pool: name, Requested: len(info.StartingObjectNames), Free: info.Capacity}
	}
	for _, objName := range info.StartingObjectNames {
		if _, ok := s.archetypes.Object(info.ArchetypeName, objName); !ok {
			return ArchetypeNotFoundError{Archetype: info.ArchetypeName, Object: objName}
		}
	}
	return nil
}

// Update runs one tick of every ordered system
func (s *Space) Update() error {
	if err := s.scheduler.Update(s); err != nil {
		return err
	}
	s.tick++
	return nil
}
