package depot

import (
	"maps"
	"slices"
)

// Archetype is the shape of a pool: an immutable, named list of component
// names, plus the object archetypes that can be stamped into its pools
type Archetype struct {
	name         string
	components   []string
	behaviorTree string
	objects      map[string]*ObjectArchetype
}

// ObjectArchetype holds one default value per component. Stamping it into a
// slot is the only way object content gets initialized.
type ObjectArchetype struct {
	name     string
	defaults map[string]any
}

func NewArchetype(name string, components ...string) *Archetype {
	names := slices.Clone(components)
	slices.Sort(names)
	return &Archetype{
		name:       name,
		components: slices.Compact(names),
		objects:    make(map[string]*ObjectArchetype),
	}
}

// WithBehaviorTree names the behavior tree pools of this archetype run
func (a *Archetype) WithBehaviorTree(name string) *Archetype {
	a.behaviorTree = name
	return a
}

func (a *Archetype) Name() string {
	return a.name
}

func (a *Archetype) Components() []string {
	return slices.Clone(a.components)
}

func (a *Archetype) BehaviorTree() string {
	return a.behaviorTree
}

func (a *Archetype) Has(component string) bool {
	_, found := slices.BinarySearch(a.components, component)
	return found
}

// AddObject inserts an object archetype. Every default must belong to the shape.
func (a *Archetype) AddObject(obj *ObjectArchetype) error {
	if _, exists := a.objects[obj.name]; exists {
		return DuplicateNameError{Kind: "object archetype", Name: obj.name}
	}
	for component := range obj.defaults {
		if !a.Has(component) {
			return ComponentNotFoundError{Component: component, Pool: a.name}
		}
	}
	a.objects[obj.name] = obj
	return nil
}

func (a *Archetype) Object(name string) (*ObjectArchetype, bool) {
	obj, ok := a.objects[name]
	return obj, ok
}

// Objects returns the object archetype names in sorted order
func (a *Archetype) Objects() []string {
	return slices.Sorted(maps.Keys(a.objects))
}

// ExtractObject removes the object archetype and hands ownership to the caller
func (a *Archetype) ExtractObject(name string) (*ObjectArchetype, bool) {
	obj, ok := a.objects[name]
	if !ok {
		return nil, false
	}
	delete(a.objects, name)
	return obj, true
}

func (a *Archetype) RenameObject(from, to string) error {
	if _, exists := a.objects[to]; exists {
		return DuplicateNameError{Kind: "object archetype", Name: to}
	}
	obj, ok := a.ExtractObject(from)
	if !ok {
		return ArchetypeNotFoundError{Archetype: a.name, Object: from}
	}
	obj.name = to
	a.objects[to] = obj
	return nil
}

func (a *Archetype) DuplicateObject(from, to string) (*ObjectArchetype, error) {
	obj, ok := a.objects[from]
	if !ok {
		return nil, ArchetypeNotFoundError{Archetype: a.name, Object: from}
	}
	dup := obj.Clone(to)
	if err := a.AddObject(dup); err != nil {
		return nil, err
	}
	return dup, nil
}

func NewObjectArchetype(name string) *ObjectArchetype {
	return &ObjectArchetype{
		name:     name,
		defaults: make(map[string]any),
	}
}

// With sets the default value for a component
func (o *ObjectArchetype) With(component string, value any) *ObjectArchetype {
	o.defaults[component] = value
	return o
}

func (o *ObjectArchetype) Name() string {
	return o.name
}

func (o *ObjectArchetype) Default(component string) (any, bool) {
	v, ok := o.defaults[component]
	return v, ok
}

// Components returns the names of the components with defaults, sorted
func (o *ObjectArchetype) Components() []string {
	return slices.Sorted(maps.Keys(o.defaults))
}

// Clone copies the object archetype under a new name. Default values are
// copied by assignment.
func (o *ObjectArchetype) Clone(name string) *ObjectArchetype {
	return &ObjectArchetype{
		name:     name,
		defaults: maps.Clone(o.defaults),
	}
}

// Apply stamps every default into slot i of the pool
func (o *ObjectArchetype) Apply(pool *Pool, i int) error {
	if i < 0 || i >= pool.capacity {
		return ObjectIndexError{Pool: pool.name, Index: i, Active: pool.active}
	}
	for _, component := range o.Components() {
		arr, ok := pool.arrays[component]
		if !ok {
			return ComponentNotFoundError{Component: component, Pool: pool.name}
		}
		if err := arr.Set(i, o.defaults[component]); err != nil {
			return err
		}
	}
	return nil
}

// ApplyRange stamps the defaults into every slot of r
func (o *ObjectArchetype) ApplyRange(pool *Pool, r IndexRange) error {
	for i := r.Start; i < r.End; i++ {
		if err := o.Apply(pool, i); err != nil {
			return err
		}
	}
	return nil
}

// ArchetypeRegistry owns a space's archetypes, keyed by name
type ArchetypeRegistry struct {
	archetypes map[string]*Archetype
}

func newArchetypeRegistry() *ArchetypeRegistry {
	return &ArchetypeRegistry{archetypes: make(map[string]*Archetype)}
}

func (r *ArchetypeRegistry) Get(name string) (*Archetype, bool) {
	a, ok := r.archetypes[name]
	return a, ok
}

// Object resolves an object archetype inside a named archetype
func (r *ArchetypeRegistry) Object(archetype, object string) (*ObjectArchetype, bool) {
	a, ok := r.archetypes[archetype]
	if !ok {
		return nil, false
	}
	return a.Object(object)
}

func (r *ArchetypeRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.archetypes))
}

func (r *ArchetypeRegistry) Insert(a *Archetype) error {
	if _, exists := r.archetypes[a.name]; exists {
		return DuplicateNameError{Kind: "archetype", Name: a.name}
	}
	r.archetypes[a.name] = a
	return nil
}

func (r *ArchetypeRegistry) Extract(name string) (*Archetype, bool) {
	a, ok := r.archetypes[name]
	if !ok {
		return nil, false
	}
	delete(r.archetypes, name)
	return a, true
}

// Rename moves an archetype to a new key. Pools keep the name they were
// built with, so lookups through them fail until they are rebuilt.
func (r *ArchetypeRegistry) Rename(from, to string) error {
	if _, exists := r.archetypes[to]; exists {
		return DuplicateNameError{Kind: "archetype", Name: to}
	}
	a, ok := r.Extract(from)
	if !ok {
		return ArchetypeNotFoundError{Archetype: from}
	}
	a.name = to
	r.archetypes[to] = a
	return nil
}

func (r *ArchetypeRegistry) Duplicate(from, to string) (*Archetype, error) {
	a, ok := r.archetypes[from]
	if !ok {
		return nil, ArchetypeNotFoundError{Archetype: from}
	}
	dup := NewArchetype(to, a.components...).WithBehaviorTree(a.behaviorTree)
	for name, obj := range a.objects {
		dup.objects[name] = obj.Clone(name)
	}
	if err := r.Insert(dup); err != nil {
		return nil, err
	}
	return dup, nil
}
