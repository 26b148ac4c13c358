package depot

import (
	"slices"

	"github.com/TheBitDrifter/mask"
)

// Pool is a fixed-capacity bag of same-length component arrays. Objects at
// [0, ActiveCount) are alive; index i is the same object in every array.
type Pool struct {
	name      string
	archetype string
	capacity  int
	active    int
	locked    bool

	arrays     map[string]ComponentArray
	components []string
	signature  mask.Mask

	ids     []ObjectID
	indexOf map[ObjectID]int
	nextID  ObjectID

	opQueue   opQueue
	observers []PoolObserver
}

func newPool(name, archetypeName string, capacity int, types []ComponentType, signature mask.Mask) *Pool {
	pool := &Pool{
		name:       name,
		archetype:  archetypeName,
		capacity:   capacity,
		arrays:     make(map[string]ComponentArray, len(types)),
		components: make([]string, 0, len(types)),
		signature:  signature,
		ids:        make([]ObjectID, capacity),
		indexOf:    make(map[ObjectID]int, capacity),
		nextID:     1,
		opQueue:    newOpQueue(),
	}
	for _, ct := range types {
		pool.arrays[ct.Name()] = ct.newArray(capacity)
		pool.components = append(pool.components, ct.Name())
	}
	slices.Sort(pool.components)
	return pool
}

func (p *Pool) Name() string {
	return p.name
}

// Archetype returns the name of the archetype the pool was built from
func (p *Pool) Archetype() string {
	return p.archetype
}

func (p *Pool) Capacity() int {
	return p.capacity
}

func (p *Pool) ActiveCount() int {
	return p.active
}

func (p *Pool) Free() int {
	return p.capacity - p.active
}

func (p *Pool) Mask() mask.Mask {
	return p.signature
}

// Components returns the sorted component names of the pool's shape
func (p *Pool) Components() []string {
	return slices.Clone(p.components)
}

func (p *Pool) Has(component string) bool {
	_, ok := p.arrays[component]
	return ok
}

func (p *Pool) Array(component string) (ComponentArray, bool) {
	arr, ok := p.arrays[component]
	return arr, ok
}

// Observe registers an observer for object creation and destruction
func (p *Pool) Observe(o PoolObserver) {
	p.observers = append(p.observers, o)
}

// CreateObjects reserves n slots at the end of the active range. Either all n
// objects are created or none are. A zero count yields an empty range.
func (p *Pool) CreateObjects(n int) (IndexRange, error) {
	if n < 0 {
		return IndexRange{}, ObjectCountError{Pool: p.name, Count: n}
	}
	if n > p.Free() {
		return IndexRange{}, PoolCapacityError{Pool: p.name, Requested: n, Free: p.Free()}
	}
	r := IndexRange{Start: p.active, End: p.active + n}
	if n == 0 {
		return r, nil
	}
	for i := r.Start; i < r.End; i++ {
		id := p.nextID
		p.nextID++
		p.ids[i] = id
		p.indexOf[id] = i
	}
	p.active += n
	for _, o := range p.observers {
		o.ObjectsCreated(r)
	}
	return r, nil
}

// DestroyObject swap-removes object i: the last active object moves into
// slot i in every array. It returns the removed index and the index of the
// object that now occupies it.
func (p *Pool) DestroyObject(i int) (removed, moved int, err error) {
	if p.locked {
		return -1, -1, LockedPoolError{Pool: p.name}
	}
	return p.destroy(i)
}

func (p *Pool) destroy(i int) (int, int, error) {
	if i < 0 || i >= p.active {
		return -1, -1, ObjectIndexError{Pool: p.name, Index: i, Active: p.active}
	}
	last := p.active - 1
	for _, arr := range p.arrays {
		arr.SwapRemove(i, last)
	}

	delete(p.indexOf, p.ids[i])
	if i != last {
		p.ids[i] = p.ids[last]
		p.indexOf[p.ids[i]] = i
	}
	p.ids[last] = 0
	p.active--

	for _, o := range p.observers {
		o.ObjectDestroyed(i, last)
	}
	return i, last, nil
}

// EnqueueDestroyObject destroys i now, or at Unlock when the pool is locked
func (p *Pool) EnqueueDestroyObject(i int) error {
	if !p.locked {
		_, _, err := p.destroy(i)
		return err
	}
	if i < 0 || i >= p.active {
		return ObjectIndexError{Pool: p.name, Index: i, Active: p.active}
	}
	p.opQueue.EnqueueDestroy(p.ids[i])
	return nil
}

// Clear destroys every active object
func (p *Pool) Clear() error {
	if p.locked {
		return LockedPoolError{Pool: p.name}
	}
	for p.active > 0 {
		if _, _, err := p.destroy(p.active - 1); err != nil {
			return err
		}
	}
	return nil
}

// ObjectID returns the stable ID of the object at index i
func (p *Pool) ObjectID(i int) (ObjectID, bool) {
	if i < 0 || i >= p.active {
		return 0, false
	}
	return p.ids[i], true
}

// IndexOf returns the current index of a live object
func (p *Pool) IndexOf(id ObjectID) (int, bool) {
	i, ok := p.indexOf[id]
	return i, ok
}

// Object returns a move-safe handle to the object at index i
func (p *Pool) Object(i int) (Object, bool) {
	id, ok := p.ObjectID(i)
	if !ok {
		return Object{}, false
	}
	return Object{pool: p, id: id}, true
}

func (p *Pool) Locked() bool {
	return p.locked
}

func (p *Pool) Lock() {
	p.locked = true
}

func (p *Pool) Unlock() {
	p.locked = false
	err := p.processOperationQueue()
	if err != nil {
		panic(err)
	}
}
