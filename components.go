package depot

// Built-in component names
const (
	TransformName = "Transform"
	VelocityName  = "Velocity"
	LifetimeName  = "Lifetime"
	BehaviorName  = "Behavior"
	SpawnerName   = "Spawner"
)

type Transform struct {
	Position Vec2
	// Rotation is the heading in radians
	Rotation float64
}

type Velocity struct {
	Vec2
}

// Lifetime counts down once per tick; the object is destroyed when it runs out
type Lifetime struct {
	Remaining int
}

// Behavior marks objects driven by their pool's behavior tree
type Behavior struct {
	Disabled bool
}

// Spawner fires its spawns every Interval ticks. The Spawns slice is shared
// by every object stamped from the same archetype and must not be mutated.
type Spawner struct {
	Spawns   []SpawnInfo
	Interval int
	Elapsed  int
}

var (
	TransformComponent = FactoryNewComponent[Transform](TransformName)
	VelocityComponent  = FactoryNewComponent[Velocity](VelocityName)
	LifetimeComponent  = FactoryNewComponent[Lifetime](LifetimeName)
	BehaviorComponent  = FactoryNewComponent[Behavior](BehaviorName)
	SpawnerComponent   = FactoryNewComponent[Spawner](SpawnerName)
)

func builtinComponents() []ComponentType {
	return []ComponentType{
		TransformComponent,
		VelocityComponent,
		LifetimeComponent,
		BehaviorComponent,
		SpawnerComponent,
	}
}
