package depot

import "iter"

// ComponentArray is a type-erased, fixed-length dense array of one component.
// Every array of a pool has length equal to the pool's capacity.
type ComponentArray interface {
	Name() string
	Len() int
	Get(i int) any
	Set(i int, v any) error
	Reset(i int)
	Move(dst, src int)
	Swap(i, j int)
	// SwapRemove moves the value at last into i and resets last
	SwapRemove(i, last int)
}

// PoolObserver keeps per-object state that lives outside a pool in step with
// the pool's indices
type PoolObserver interface {
	ObjectsCreated(r IndexRange)
	// ObjectDestroyed is called after the object at moved was swapped into
	// removed. moved equals removed when the tail object itself was destroyed.
	ObjectDestroyed(removed, moved int)
}

// RandomStream is the per-space source of randomness
type RandomStream interface {
	// Float returns a uniform value in [min, max)
	Float(min, max float64) float64
}

type SpawnRule interface {
	Name() string
	Apply(ctx *SpawnContext)
}

type System interface {
	Name() string
	PoolType() QueryNode
	// Subscribe registers the pool when it matches PoolType and reports whether it did
	Subscribe(space *Space, pool *Pool) bool
	Update(space *Space) error
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(pool *Pool, space *Space) bool
}

type iCursor interface {
	Objects() iter.Seq2[int, *Pool]
	Next() bool
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	Register(string, T) (int, error)
	Keys() []string
}

// IndexRange is the half-open object index range [Start, End)
type IndexRange struct {
	Start int
	End   int
}

func (r IndexRange) Len() int {
	return r.End - r.Start
}

// ObjectID identifies an object for its whole lifetime, across swap-removals
type ObjectID uint64

// Cursor walks the active objects of every pool a query matches
type Cursor struct {
	// The query to filter pools
	query QueryNode

	// The space to iterate over
	space *Space

	// Current iteration state
	currentPool *Pool
	poolIndex   int
	objectIndex int
	remaining   int

	// Initialization state
	initialized  bool
	matchedPools []*Pool
}

type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}
