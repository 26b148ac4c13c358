package depot

import (
	"github.com/TheBitDrifter/table"
)

var _ ComponentType = AccessibleComponent[int]{}

// ComponentType describes one registrable kind of component.
// Values are created with FactoryNewComponent.
type ComponentType interface {
	Name() string
	ElementType() table.ElementType
	// Accepts reports whether v can be stored in arrays of this component
	Accepts(v any) bool
	newArray(capacity int) ComponentArray
}

// AccessibleComponent is a named component of Go type T with typed access
// into any pool that carries it
type AccessibleComponent[T any] struct {
	name        string
	elementType table.ElementType
}

func (c AccessibleComponent[T]) Name() string {
	return c.name
}

func (c AccessibleComponent[T]) ElementType() table.ElementType {
	return c.elementType
}

func (c AccessibleComponent[T]) Accepts(v any) bool {
	_, ok := v.(T)
	return ok
}

func (c AccessibleComponent[T]) newArray(capacity int) ComponentArray {
	return newComponentArray[T](c.name, capacity)
}

// Check reports whether the pool carries this component
func (c AccessibleComponent[T]) Check(pool *Pool) bool {
	_, ok := c.array(pool)
	return ok
}

// Slice returns the pool's full backing array for this component, including
// free slots. Only indices below pool.ActiveCount() are live objects.
func (c AccessibleComponent[T]) Slice(pool *Pool) []T {
	arr, ok := c.array(pool)
	if !ok {
		return nil
	}
	return arr.slice()
}

// GetFromPool retrieves the component value for object index i, or nil when
// the pool does not carry the component
func (c AccessibleComponent[T]) GetFromPool(pool *Pool, i int) *T {
	arr, ok := c.array(pool)
	if !ok {
		return nil
	}
	return &arr.data[i]
}

// GetFromCursor retrieves the component value for the object at the cursor position
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	pool, index := cursor.CurrentObject()
	return c.GetFromPool(pool, index)
}

// GetFromObject retrieves the component value for an object handle, or nil if
// the handle is stale
func (c AccessibleComponent[T]) GetFromObject(obj Object) *T {
	index, ok := obj.Index()
	if !ok {
		return nil
	}
	return c.GetFromPool(obj.pool, index)
}

func (c AccessibleComponent[T]) array(pool *Pool) (*componentArray[T], bool) {
	if pool == nil {
		return nil, false
	}
	arr, ok := pool.arrays[c.name]
	if !ok {
		return nil, false
	}
	typed, ok := arr.(*componentArray[T])
	return typed, ok
}
