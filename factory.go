package depot

import "github.com/TheBitDrifter/table"

type factory struct{}

var Factory factory

// NewSpace creates a space seeded with seed and the built-in components,
// spawn rules and systems registered
func (f factory) NewSpace(name string, seed uint64) *Space {
	return newSpace(name, NewRandomStream(seed))
}

// NewSpaceWithStream creates a space drawing from a caller supplied stream
func (f factory) NewSpaceWithStream(name string, stream RandomStream) *Space {
	return newSpace(name, stream)
}

// NewDefaultSpace creates a space seeded with Config's default seed
func (f factory) NewDefaultSpace(name string) *Space {
	return newSpace(name, NewRandomStream(Config.defaultSeed))
}

func (f factory) NewQuery() Query {
	return newQuery()
}

func (f factory) NewCursor(query QueryNode, space *Space) *Cursor {
	return newCursor(query, space)
}

func FactoryNewComponent[T any](name string) AccessibleComponent[T] {
	return AccessibleComponent[T]{
		name:        name,
		elementType: table.FactoryNewElementType[T](),
	}
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return newSimpleCache[T](cap)
}

func newSimpleCache[T any](cap int) *SimpleCache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
