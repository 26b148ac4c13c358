package depot

import "math"

// Built-in spawn rule names
const (
	RandomDirectionRule = "RandomDirection"
	RandomSpeedRule     = "RandomSpeed"
	InheritSpeedRule    = "InheritSpeed"
	InheritVelocityRule = "InheritVelocity"
	MatchPositionRule   = "MatchPosition"
	MatchHeadingRule    = "MatchHeading"
	RingRule            = "Ring"
	LayerSpeedRule      = "LayerSpeed"
)

var (
	_ SpawnRule = RandomDirection{}
	_ SpawnRule = RandomSpeed{}
	_ SpawnRule = InheritSpeed{}
	_ SpawnRule = InheritVelocity{}
	_ SpawnRule = MatchPosition{}
	_ SpawnRule = MatchHeading{}
	_ SpawnRule = Ring{}
	_ SpawnRule = LayerSpeed{}
)

// builtinSpawnRules are the rules every space starts with. Rules that need
// parameters are registered by the caller under their own label.
func builtinSpawnRules() []SpawnRule {
	return []SpawnRule{
		RandomDirection{},
		InheritSpeed{},
		InheritVelocity{},
		MatchPosition{},
		MatchHeading{},
		Ring{},
	}
}

func labelOr(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}

// RandomDirection sets every new velocity to a unit vector at a random angle.
// One angle is drawn per object, in index order.
type RandomDirection struct{}

func (RandomDirection) Name() string { return RandomDirectionRule }

func (RandomDirection) Apply(ctx *SpawnContext) {
	vel := VelocityComponent.Slice(ctx.Dest)
	if vel == nil {
		return
	}
	for i := ctx.Range.Start; i < ctx.Range.End; i++ {
		vel[i].Vec2 = FromAngle(ctx.Rand.Float(0, 2*math.Pi))
	}
}

// RandomSpeed scales each velocity to a random length in [Min, Max) and keeps
// its angle, so it must run after a rule that set a direction
type RandomSpeed struct {
	Label    string
	Min, Max float64
}

func (r RandomSpeed) Name() string { return labelOr(r.Label, RandomSpeedRule) }

func (r RandomSpeed) Apply(ctx *SpawnContext) {
	vel := VelocityComponent.Slice(ctx.Dest)
	if vel == nil {
		return
	}
	for i := ctx.Range.Start; i < ctx.Range.End; i++ {
		vel[i].Vec2 = vel[i].WithLen(ctx.Rand.Float(r.Min, r.Max))
	}
}

// InheritSpeed gives every new object the source object's speed
type InheritSpeed struct{}

func (InheritSpeed) Name() string { return InheritSpeedRule }

func (InheritSpeed) Apply(ctx *SpawnContext) {
	if !ctx.HasSource() {
		return
	}
	src := VelocityComponent.GetFromPool(ctx.Source, ctx.SourceIndex)
	vel := VelocityComponent.Slice(ctx.Dest)
	if src == nil || vel == nil {
		return
	}
	speed := src.Len()
	for i := ctx.Range.Start; i < ctx.Range.End; i++ {
		vel[i].Vec2 = vel[i].WithLen(speed)
	}
}

// InheritVelocity adds the source object's velocity to every new object
type InheritVelocity struct{}

func (InheritVelocity) Name() string { return InheritVelocityRule }

func (InheritVelocity) Apply(ctx *SpawnContext) {
	if !ctx.HasSource() {
		return
	}
	src := VelocityComponent.GetFromPool(ctx.Source, ctx.SourceIndex)
	vel := VelocityComponent.Slice(ctx.Dest)
	if src == nil || vel == nil {
		return
	}
	for i := ctx.Range.Start; i < ctx.Range.End; i++ {
		vel[i].Vec2 = vel[i].Add(src.Vec2)
	}
}

// MatchPosition places every new object at the source object's position
type MatchPosition struct{}

func (MatchPosition) Name() string { return MatchPositionRule }

func (MatchPosition) Apply(ctx *SpawnContext) {
	if !ctx.HasSource() {
		return
	}
	src := TransformComponent.GetFromPool(ctx.Source, ctx.SourceIndex)
	tf := TransformComponent.Slice(ctx.Dest)
	if src == nil || tf == nil {
		return
	}
	for i := ctx.Range.Start; i < ctx.Range.End; i++ {
		tf[i].Position = src.Position
	}
}

// MatchHeading rotates every new velocity and heading by the source object's
// heading, turning a formation authored facing +X to face where the source does
type MatchHeading struct{}

func (MatchHeading) Name() string { return MatchHeadingRule }

func (MatchHeading) Apply(ctx *SpawnContext) {
	if !ctx.HasSource() {
		return
	}
	src := TransformComponent.GetFromPool(ctx.Source, ctx.SourceIndex)
	if src == nil {
		return
	}
	heading := src.Rotation
	if vel := VelocityComponent.Slice(ctx.Dest); vel != nil {
		for i := ctx.Range.Start; i < ctx.Range.End; i++ {
			vel[i].Vec2 = vel[i].Rotate(heading)
		}
	}
	if tf := TransformComponent.Slice(ctx.Dest); tf != nil {
		for i := ctx.Range.Start; i < ctx.Range.End; i++ {
			tf[i].Rotation += heading
		}
	}
}

// Ring spreads each group's objects evenly around a circle. Successive groups
// are staggered by a fraction of the spacing. Existing speed is kept; objects
// without one get unit speed.
type Ring struct {
	Label string
	// Offset is the angle of the first object of the first group, in radians
	Offset float64
}

func (r Ring) Name() string { return labelOr(r.Label, RingRule) }

func (r Ring) Apply(ctx *SpawnContext) {
	vel := VelocityComponent.Slice(ctx.Dest)
	if vel == nil {
		return
	}
	layout := ctx.Layout.normalized()
	spacing := 2 * math.Pi / float64(layout.ObjectsPerGroup)
	stagger := spacing / float64(layout.Groups)
	for offset := 0; offset < ctx.Range.Len(); offset++ {
		_, group, obj := layout.Member(offset)
		i := ctx.Range.Start + offset
		speed := vel[i].Len()
		if speed == 0 {
			speed = 1
		}
		angle := r.Offset + float64(obj)*spacing + float64(group)*stagger
		vel[i].Vec2 = FromAngle(angle).Scale(speed)
	}
}

// LayerSpeed multiplies speed by 1 + layer*Step so layer copies of a
// formation fan out at increasing speeds
type LayerSpeed struct {
	Label string
	Step  float64
}

func (r LayerSpeed) Name() string { return labelOr(r.Label, LayerSpeedRule) }

func (r LayerSpeed) Apply(ctx *SpawnContext) {
	vel := VelocityComponent.Slice(ctx.Dest)
	if vel == nil {
		return
	}
	for offset := 0; offset < ctx.Range.Len(); offset++ {
		layer, _, _ := ctx.Layout.Member(offset)
		i := ctx.Range.Start + offset
		vel[i].Vec2 = vel[i].Scale(1 + float64(layer)*r.Step)
	}
}
