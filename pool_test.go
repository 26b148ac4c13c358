package depot

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"testing"
)

// Test component types
type Health struct {
	Current, Max int
}

type Tag struct {
	Value string
}

var (
	healthComp = FactoryNewComponent[Health]("Health")
	tagComp    = FactoryNewComponent[Tag]("Tag")
)

func newTestSpace(t testing.TB) *Space {
	t.Helper()
	space := Factory.NewSpace("test", 7)
	space.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, ct := range []ComponentType{healthComp, tagComp} {
		if err := space.RegisterComponent(ct); err != nil {
			t.Fatalf("Failed to register component %s: %v", ct.Name(), err)
		}
	}
	return space
}

// newShipPool builds a pool of Transform, Velocity and Health objects with a
// "Default" object archetype
func newShipPool(t testing.TB, space *Space, capacity int) *Pool {
	t.Helper()
	ship := NewArchetype("Ship", TransformName, VelocityName, "Health")
	err := ship.AddObject(NewObjectArchetype("Default").
		With("Health", Health{Current: 10, Max: 10}).
		With(VelocityName, Velocity{Vec2{X: 1}}))
	if err != nil {
		t.Fatalf("Failed to add object archetype: %v", err)
	}
	if err := space.RegisterArchetype(ship); err != nil {
		t.Fatalf("Failed to register archetype: %v", err)
	}
	pool, err := space.NewPool("ships", "Ship", capacity)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	return pool
}

// numberObjects sets Health.Current to each object's index
func numberObjects(pool *Pool) {
	health := healthComp.Slice(pool)
	for i := 0; i < pool.ActiveCount(); i++ {
		health[i].Current = i
	}
}

func currents(pool *Pool) []int {
	health := healthComp.Slice(pool)
	out := make([]int, pool.ActiveCount())
	for i := range out {
		out[i] = health[i].Current
	}
	return out
}

func TestCreateObjects(t *testing.T) {
	tests := []struct {
		name       string
		capacity   int
		batches    []int
		wantActive int
		wantErr    []any
	}{
		{"Single batch", 10, []int{3}, 3, []any{nil}},
		{"Fill exactly", 10, []int{4, 6}, 10, []any{nil, nil}},
		{"Overflow rejected whole", 10, []int{8, 3}, 8, []any{nil, &PoolCapacityError{}}},
		{"Zero count", 10, []int{2, 0}, 2, []any{nil, nil}},
		{"Zero count when full", 2, []int{2, 0}, 2, []any{nil, nil}},
		{"Negative count", 10, []int{-1}, 0, []any{&ObjectCountError{}}},
		{"Zero capacity", 0, []int{1}, 0, []any{&PoolCapacityError{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space := newTestSpace(t)
			pool := newShipPool(t, space, tt.capacity)

			for i, n := range tt.batches {
				before := pool.ActiveCount()
				r, err := pool.CreateObjects(n)
				if tt.wantErr[i] != nil {
					if !errors.As(err, tt.wantErr[i]) {
						t.Errorf("CreateObjects(%d) error = %v, want %T", n, err, tt.wantErr[i])
					}
					if pool.ActiveCount() != before {
						t.Errorf("Active count changed on failure: %d, want %d", pool.ActiveCount(), before)
					}
					continue
				}
				if err != nil {
					t.Fatalf("CreateObjects(%d) failed: %v", n, err)
				}
				if r.Start != before || r.Len() != n {
					t.Errorf("CreateObjects(%d) = %+v, want start %d len %d", n, r, before, n)
				}
			}

			if pool.ActiveCount() != tt.wantActive {
				t.Errorf("Active count = %d, want %d", pool.ActiveCount(), tt.wantActive)
			}
		})
	}
}

func TestDestroyObjectSwapRemove(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		destroy   int
		wantMoved int
		want      []int
	}{
		{"Middle", 5, 1, 4, []int{0, 4, 2, 3}},
		{"First", 5, 0, 4, []int{4, 1, 2, 3}},
		{"Last", 5, 4, 4, []int{0, 1, 2, 3}},
		{"Only", 1, 0, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space := newTestSpace(t)
			pool := newShipPool(t, space, 10)
			if _, err := pool.CreateObjects(tt.count); err != nil {
				t.Fatalf("Failed to create objects: %v", err)
			}
			numberObjects(pool)
			tf := TransformComponent.Slice(pool)
			for i := 0; i < tt.count; i++ {
				tf[i].Position = Vec2{X: float64(i)}
			}

			removed, moved, err := pool.DestroyObject(tt.destroy)
			if err != nil {
				t.Fatalf("DestroyObject(%d) failed: %v", tt.destroy, err)
			}
			if removed != tt.destroy || moved != tt.wantMoved {
				t.Errorf("DestroyObject(%d) = (%d, %d), want (%d, %d)", tt.destroy, removed, moved, tt.destroy, tt.wantMoved)
			}
			if pool.ActiveCount() != tt.count-1 {
				t.Errorf("Active count = %d, want %d", pool.ActiveCount(), tt.count-1)
			}
			if got := currents(pool); !slices.Equal(got, tt.want) {
				t.Errorf("Health after destroy = %v, want %v", got, tt.want)
			}
			// Every array moves in lockstep
			for i, want := range tt.want {
				if tf[i].Position.X != float64(want) {
					t.Errorf("Transform[%d].X = %v, want %v", i, tf[i].Position.X, want)
				}
			}
			// The vacated tail slot is back to the zero value
			if got := healthComp.Slice(pool)[tt.count-1]; got != (Health{}) {
				t.Errorf("Vacated slot holds %+v, want zero value", got)
			}
		})
	}
}

func TestDestroyObjectOutOfRange(t *testing.T) {
	space := newTestSpace(t)
	pool := newShipPool(t, space, 4)
	pool.CreateObjects(2)

	for _, i := range []int{-1, 2, 3, 10} {
		_, _, err := pool.DestroyObject(i)
		var idxErr ObjectIndexError
		if !errors.As(err, &idxErr) {
			t.Errorf("DestroyObject(%d) error = %v, want ObjectIndexError", i, err)
		}
	}
	if pool.ActiveCount() != 2 {
		t.Errorf("Active count = %d, want 2", pool.ActiveCount())
	}
}

// TestPoolInvariants runs a random create/destroy sequence and checks the
// count bounds and the ID index after every step
func TestPoolInvariants(t *testing.T) {
	space := newTestSpace(t)
	pool := newShipPool(t, space, 32)
	rng := rand.New(rand.NewPCG(1, 2))

	for step := 0; step < 2000; step++ {
		if rng.IntN(2) == 0 {
			pool.CreateObjects(1 + rng.IntN(6))
		} else if pool.ActiveCount() > 0 {
			if _, _, err := pool.DestroyObject(rng.IntN(pool.ActiveCount())); err != nil {
				t.Fatalf("Step %d: DestroyObject failed: %v", step, err)
			}
		}

		if pool.ActiveCount() < 0 || pool.ActiveCount() > pool.Capacity() {
			t.Fatalf("Step %d: active count %d outside [0, %d]", step, pool.ActiveCount(), pool.Capacity())
		}
		for i := 0; i < pool.ActiveCount(); i++ {
			id, ok := pool.ObjectID(i)
			if !ok {
				t.Fatalf("Step %d: no ID for active index %d", step, i)
			}
			if got, ok := pool.IndexOf(id); !ok || got != i {
				t.Fatalf("Step %d: IndexOf(%d) = %d, %v, want %d", step, id, got, ok, i)
			}
		}
	}
}

func TestDeferredDestroy(t *testing.T) {
	space := newTestSpace(t)
	pool := newShipPool(t, space, 10)
	pool.CreateObjects(5)
	numberObjects(pool)

	pool.Lock()
	for _, i := range []int{1, 3, 1} {
		if err := pool.EnqueueDestroyObject(i); err != nil {
			t.Fatalf("EnqueueDestroyObject(%d) failed: %v", i, err)
		}
	}
	if _, _, err := pool.DestroyObject(0); !errors.As(err, &LockedPoolError{}) {
		t.Errorf("DestroyObject while locked error = %v, want LockedPoolError", err)
	}
	if pool.ActiveCount() != 5 {
		t.Errorf("Active count while locked = %d, want 5", pool.ActiveCount())
	}
	pool.Unlock()

	if pool.ActiveCount() != 3 {
		t.Fatalf("Active count after unlock = %d, want 3", pool.ActiveCount())
	}
	got := currents(pool)
	slices.Sort(got)
	if !slices.Equal(got, []int{0, 2, 4}) {
		t.Errorf("Surviving objects = %v, want [0 2 4]", got)
	}
}

func TestObjectHandleFollowsMoves(t *testing.T) {
	space := newTestSpace(t)
	pool := newShipPool(t, space, 10)
	pool.CreateObjects(5)
	numberObjects(pool)

	tail, ok := pool.Object(4)
	if !ok {
		t.Fatal("No handle for index 4")
	}
	doomed, _ := pool.Object(1)

	if _, _, err := pool.DestroyObject(1); err != nil {
		t.Fatalf("DestroyObject failed: %v", err)
	}

	if index, ok := tail.Index(); !ok || index != 1 {
		t.Errorf("Tail handle index = %d, %v, want 1", index, ok)
	}
	if got := healthComp.GetFromObject(tail); got == nil || got.Current != 4 {
		t.Errorf("Tail handle health = %+v, want Current 4", got)
	}
	if doomed.Valid() {
		t.Error("Handle to destroyed object is still valid")
	}
	if healthComp.GetFromObject(doomed) != nil {
		t.Error("Stale handle resolved a component")
	}

	if err := tail.Destroy(); err != nil {
		t.Fatalf("Destroy through handle failed: %v", err)
	}
	if tail.Valid() || pool.ActiveCount() != 3 {
		t.Errorf("After handle destroy: valid %v, active %d; want false, 3", tail.Valid(), pool.ActiveCount())
	}
}

func TestPoolClear(t *testing.T) {
	space := newTestSpace(t)
	pool := newShipPool(t, space, 10)
	pool.CreateObjects(7)

	if err := pool.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if pool.ActiveCount() != 0 || pool.Free() != 10 {
		t.Errorf("After clear: active %d free %d, want 0 and 10", pool.ActiveCount(), pool.Free())
	}
	if _, err := pool.CreateObjects(10); err != nil {
		t.Errorf("Refill after clear failed: %v", err)
	}
}

func TestComponentArraySetType(t *testing.T) {
	space := newTestSpace(t)
	pool := newShipPool(t, space, 2)
	arr, ok := pool.Array("Health")
	if !ok {
		t.Fatal("Pool has no Health array")
	}
	if arr.Len() != 2 {
		t.Errorf("Array length = %d, want capacity 2", arr.Len())
	}
	if err := arr.Set(0, Health{Current: 3}); err != nil {
		t.Errorf("Set with matching type failed: %v", err)
	}
	var typeErr ComponentTypeError
	if err := arr.Set(1, Velocity{}); !errors.As(err, &typeErr) {
		t.Errorf("Set with wrong type error = %v, want ComponentTypeError", err)
	}
	if got := arr.Get(0).(Health); got.Current != 3 {
		t.Errorf("Get(0) = %+v, want Current 3", got)
	}
	if _, ok := pool.Array("Missing"); ok {
		t.Error("Lookup of missing component succeeded")
	}
}
