package depot

import (
	"fmt"
	"math"
)

// SpawnInfo describes one spawn: where new objects go, what they are stamped
// from and which rules shape them, in order
type SpawnInfo struct {
	PoolName        string      `json:"poolName"`
	ObjectArchetype string      `json:"archetypeName"`
	Rules           []string    `json:"spawnRules,omitempty"`
	Layout          SpawnLayout `json:"layout"`
}

// SpawnLayout is a structured burst of LayerCopies x Groups x ObjectsPerGroup
// objects, for example N rings of M objects. Zero fields count as one.
type SpawnLayout struct {
	LayerCopies     int `json:"numLayerCopies,omitempty"`
	Groups          int `json:"numGroups,omitempty"`
	ObjectsPerGroup int `json:"numObjectsPerGroup,omitempty"`
}

func (l SpawnLayout) normalized() SpawnLayout {
	return SpawnLayout{
		LayerCopies:     max(l.LayerCopies, 1),
		Groups:          max(l.Groups, 1),
		ObjectsPerGroup: max(l.ObjectsPerGroup, 1),
	}
}

// Count is the total number of objects in the burst. It saturates at
// math.MaxInt instead of overflowing.
func (l SpawnLayout) Count() int {
	n := l.normalized()
	count := 1
	for _, f := range [...]int{n.LayerCopies, n.Groups, n.ObjectsPerGroup} {
		if f > math.MaxInt/count {
			return math.MaxInt
		}
		count *= f
	}
	return count
}

// Offset returns the position of (layer, group, obj) inside the spawned range
func (l SpawnLayout) Offset(layer, group, obj int) int {
	n := l.normalized()
	return (layer*n.Groups+group)*n.ObjectsPerGroup + obj
}

// Member inverts Offset
func (l SpawnLayout) Member(offset int) (layer, group, obj int) {
	n := l.normalized()
	obj = offset % n.ObjectsPerGroup
	group = (offset / n.ObjectsPerGroup) % n.Groups
	layer = offset / (n.ObjectsPerGroup * n.Groups)
	return layer, group, obj
}

// SpawnContext is what a rule sees: the source object, the freshly stamped
// destination range and the burst layout
type SpawnContext struct {
	Space       *Space
	Source      *Pool
	SourceIndex int
	Dest        *Pool
	Range       IndexRange
	Layout      SpawnLayout
	Rand        RandomStream
}

// HasSource reports whether the spawn was triggered by an object
func (ctx *SpawnContext) HasSource() bool {
	return ctx.Source != nil && ctx.SourceIndex >= 0 && ctx.SourceIndex < ctx.Source.ActiveCount()
}

// Index returns the destination index of (layer, group, obj)
func (ctx *SpawnContext) Index(layer, group, obj int) int {
	return ctx.Range.Start + ctx.Layout.Offset(layer, group, obj)
}

// Spawn runs the spawn pipeline for source, which may be the zero Object for
// spawns not tied to an object. Nothing is created unless every name
// resolves and the destination has room for the whole burst.
func (s *Space) Spawn(source Object, info SpawnInfo) (IndexRange, error) {
	dest, ok := s.pools[info.PoolName]
	if !ok {
		return IndexRange{}, PoolNotFoundError{Pool: info.PoolName}
	}
	objArchetype, ok := s.archetypes.Object(dest.Archetype(), info.ObjectArchetype)
	if !ok {
		return IndexRange{}, ArchetypeNotFoundError{Archetype: dest.Archetype(), Object: info.ObjectArchetype}
	}
	rules := make([]SpawnRule, 0, len(info.Rules))
	for _, name := range info.Rules {
		rule, ok := s.rules.Lookup(name)
		if !ok {
			return IndexRange{}, SpawnRuleNotFoundError{Rule: name}
		}
		rules = append(rules, rule)
	}

	ctx := &SpawnContext{
		Space:       s,
		SourceIndex: -1,
		Dest:        dest,
		Layout:      info.Layout.normalized(),
		Rand:        s.rand,
	}
	if index, ok := source.Index(); ok {
		ctx.Source = source.pool
		ctx.SourceIndex = index
	}

	count := ctx.Layout.Count()
	if count > dest.Free() {
		return IndexRange{}, PoolCapacityError{Pool: dest.Name(), Requested: count, Free: dest.Free()}
	}
	r, err := dest.CreateObjects(count)
	if err != nil {
		return IndexRange{}, err
	}
	ctx.Range = r

	if err := objArchetype.ApplyRange(dest, r); err != nil {
		// The range is still the tail, so removing it moves nothing
		for i := r.End - 1; i >= r.Start; i-- {
			dest.destroy(i)
		}
		return IndexRange{}, fmt.Errorf("failed to stamp %q into pool %q: %w", info.ObjectArchetype, dest.Name(), err)
	}

	for _, rule := range rules {
		rule.Apply(ctx)
	}

	s.logger.Debug("spawned objects",
		"pool", dest.Name(),
		"archetype", info.ObjectArchetype,
		"count", r.Len(),
		"start", r.Start,
	)
	return r, nil
}
