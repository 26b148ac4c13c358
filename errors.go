package depot

import "fmt"

type LockedPoolError struct {
	Pool string
}

func (e LockedPoolError) Error() string {
	return fmt.Sprintf("pool %q is currently locked", e.Pool)
}

// PoolCapacityError reports a create request that would exceed capacity.
// Nothing is created when it is returned.
type PoolCapacityError struct {
	Pool      string
	Requested int
	Free      int
}

func (e PoolCapacityError) Error() string {
	return fmt.Sprintf("pool %q overflow: requested %d objects, %d free", e.Pool, e.Requested, e.Free)
}

// ObjectCountError reports a negative object count
type ObjectCountError struct {
	Pool  string
	Count int
}

func (e ObjectCountError) Error() string {
	return fmt.Sprintf("pool %q: invalid object count %d", e.Pool, e.Count)
}

type ObjectIndexError struct {
	Pool   string
	Index  int
	Active int
}

func (e ObjectIndexError) Error() string {
	return fmt.Sprintf("object index %d out of range for pool %q (active %d)", e.Index, e.Pool, e.Active)
}

type PoolNotFoundError struct {
	Pool string
}

func (e PoolNotFoundError) Error() string {
	return fmt.Sprintf("pool not found: %q", e.Pool)
}

type ComponentNotFoundError struct {
	Component string
	Pool      string
}

func (e ComponentNotFoundError) Error() string {
	if e.Pool == "" {
		return fmt.Sprintf("component not registered: %q", e.Component)
	}
	return fmt.Sprintf("component %q does not exist in pool %q", e.Component, e.Pool)
}

type ComponentTypeError struct {
	Component string
	Want      string
	Got       any
}

func (e ComponentTypeError) Error() string {
	return fmt.Sprintf("component %q holds %s, got %T", e.Component, e.Want, e.Got)
}

type ArchetypeNotFoundError struct {
	Archetype string
	Object    string
}

func (e ArchetypeNotFoundError) Error() string {
	if e.Object == "" {
		return fmt.Sprintf("archetype not found: %q", e.Archetype)
	}
	return fmt.Sprintf("object archetype %q not found in archetype %q", e.Object, e.Archetype)
}

type SpawnRuleNotFoundError struct {
	Rule string
}

func (e SpawnRuleNotFoundError) Error() string {
	return fmt.Sprintf("spawn rule not registered: %q", e.Rule)
}

type SystemNotFoundError struct {
	System string
}

func (e SystemNotFoundError) Error() string {
	return fmt.Sprintf("system not registered: %q", e.System)
}

type DuplicateNameError struct {
	Kind string
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}

type BehaviorTreeError struct {
	Node   int
	Reason string
}

func (e BehaviorTreeError) Error() string {
	return fmt.Sprintf("behavior tree node %d: %s", e.Node, e.Reason)
}

type SceneNotFoundError struct {
	Space string
	Scene string
}

func (e SceneNotFoundError) Error() string {
	return fmt.Sprintf("space %q references unknown scene %q", e.Space, e.Scene)
}
