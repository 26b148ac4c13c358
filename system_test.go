package depot

import (
	"errors"
	"slices"
	"testing"
)

// recorder is a test system that logs every update
type recorder struct {
	SystemBase
	log     *[]string
	observe func(space *Space)
	fail    error
}

func newRecorder(name string, poolType QueryNode, log *[]string) *recorder {
	return &recorder{
		SystemBase: NewSystemBase(name, poolType),
		log:        log,
	}
}

func (r *recorder) Update(space *Space) error {
	*r.log = append(*r.log, r.name)
	if r.observe != nil {
		r.observe(space)
	}
	return r.fail
}

func TestDefaultSystemOrder(t *testing.T) {
	space := newTestSpace(t)
	want := []string{SpawnerSystemName, BehaviorSystemName, MovementSystemName, LifetimeSystemName}
	if got := space.Scheduler().Order(); !slices.Equal(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestSetSystemOrder(t *testing.T) {
	tests := []struct {
		name    string
		order   []string
		want    []string
		wantErr any
	}{
		{"Reversed", []string{"b", "a"}, []string{"b", "a"}, nil},
		{"Subset", []string{"a"}, []string{"a"}, nil},
		{"Empty", nil, nil, nil},
		{"Unknown", []string{"a", "c"}, nil, &SystemNotFoundError{}},
		{"Duplicate", []string{"a", "b", "a"}, nil, &DuplicateNameError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space := newTestSpace(t)
			var log []string
			space.RegisterSystem(newRecorder("a", And(), &log))
			space.RegisterSystem(newRecorder("b", And(), &log))

			err := space.SetSystemOrder(tt.order...)
			if tt.wantErr != nil {
				if !errors.As(err, tt.wantErr) {
					t.Fatalf("SetSystemOrder error = %v, want %T", err, tt.wantErr)
				}
				// A rejected order leaves the previous one in place
				want := []string{SpawnerSystemName, BehaviorSystemName, MovementSystemName, LifetimeSystemName, "a", "b"}
				if got := space.Scheduler().Order(); !slices.Equal(got, want) {
					t.Errorf("Order() after failure = %v, want %v", got, want)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetSystemOrder failed: %v", err)
			}

			if err := space.Update(); err != nil {
				t.Fatalf("Update failed: %v", err)
			}
			if !slices.Equal(log, tt.want) {
				t.Errorf("Update ran %v, want %v", log, tt.want)
			}
		})
	}
}

func TestRegisterSystemDuplicate(t *testing.T) {
	space := newTestSpace(t)
	var log []string
	var dupErr DuplicateNameError
	if err := space.RegisterSystem(newRecorder(MovementSystemName, And(), &log)); !errors.As(err, &dupErr) {
		t.Errorf("RegisterSystem duplicate error = %v, want DuplicateNameError", err)
	}
}

func TestSystemSubscription(t *testing.T) {
	space := newTestSpace(t)
	var log []string

	// Registered before the pools exist
	early := newRecorder("early", And("Health"), &log)
	space.RegisterSystem(early)

	newShipPool(t, space, 4)
	plain := NewArchetype("Plain", TransformName)
	space.RegisterArchetype(plain)
	space.NewPool("plain", "Plain", 4)

	// Registered after
	late := newRecorder("late", And(TransformName), &log)
	space.RegisterSystem(late)

	names := func(pools []*Pool) []string {
		out := make([]string, len(pools))
		for i, p := range pools {
			out[i] = p.Name()
		}
		return out
	}
	if got, want := names(early.Pools()), []string{"ships"}; !slices.Equal(got, want) {
		t.Errorf("early pools = %v, want %v", got, want)
	}
	if got, want := names(late.Pools()), []string{"ships", "plain"}; !slices.Equal(got, want) {
		t.Errorf("late pools = %v, want %v", got, want)
	}

	movement, _ := space.System(MovementSystemName)
	if got, want := names(movement.(*MovementSystem).Pools()), []string{"ships"}; !slices.Equal(got, want) {
		t.Errorf("Movement pools = %v, want %v", got, want)
	}
}

func TestSystemErrorStopsTick(t *testing.T) {
	space := newTestSpace(t)
	pool := newShipPool(t, space, 4)
	var log []string
	failing := newRecorder("failing", And(), &log)
	failing.fail = errors.New("boom")
	space.RegisterSystem(failing)
	space.RegisterSystem(newRecorder("after", And(), &log))

	err := space.Update()
	if err == nil {
		t.Fatal("Update succeeded, want error")
	}
	if !errors.Is(err, failing.fail) {
		t.Errorf("Update error = %v, want wrapped boom", err)
	}
	if slices.Contains(log, "after") {
		t.Error("System after the failure ran")
	}
	if space.Tick() != 0 {
		t.Errorf("Tick() = %d, want 0 after failed update", space.Tick())
	}
	if pool.Locked() {
		t.Error("Pool left locked after failed update")
	}
}

func TestMovementSystem(t *testing.T) {
	space := newTestSpace(t)
	pool := newShipPool(t, space, 4)
	if _, err := space.CreateObjects("ships", "Default", 2); err != nil {
		t.Fatalf("CreateObjects failed: %v", err)
	}
	VelocityComponent.GetFromPool(pool, 1).Vec2 = Vec2{X: -1, Y: 2}

	for range 3 {
		if err := space.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	want := []Vec2{{X: 3}, {X: -3, Y: 6}}
	for i, w := range want {
		if got := TransformComponent.GetFromPool(pool, i).Position; got != w {
			t.Errorf("Position[%d] = %+v, want %+v", i, got, w)
		}
	}
	if space.Tick() != 3 {
		t.Errorf("Tick() = %d, want 3", space.Tick())
	}
}

func TestLifetimeDestroysAtTickEnd(t *testing.T) {
	space := newTestSpace(t)
	bullet := NewArchetype("Bullet", TransformName, LifetimeName)
	bullet.AddObject(NewObjectArchetype("Short").With(LifetimeName, Lifetime{Remaining: 1}))
	bullet.AddObject(NewObjectArchetype("Long").With(LifetimeName, Lifetime{Remaining: 3}))
	space.RegisterArchetype(bullet)
	pool, _ := space.NewPool("bullets", "Bullet", 8)
	space.CreateObjects("bullets", "Short", 2)
	space.CreateObjects("bullets", "Long", 1)

	// Observe the pool after Lifetime ran but before the tick ended
	var log []string
	var seen []int
	watcher := newRecorder("watcher", And(LifetimeName), &log)
	watcher.observe = func(*Space) { seen = append(seen, pool.ActiveCount()) }
	space.RegisterSystem(watcher)
	if err := space.SetSystemOrder(LifetimeSystemName, "watcher"); err != nil {
		t.Fatalf("SetSystemOrder failed: %v", err)
	}

	want := []int{1, 1, 0, 0}
	for tick, w := range want {
		if err := space.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if pool.ActiveCount() != w {
			t.Errorf("Tick %d: active count = %d, want %d", tick+1, pool.ActiveCount(), w)
		}
	}
	if got := []int{3, 1, 1}; !slices.Equal(seen[:3], got) {
		t.Errorf("Active counts during ticks = %v, want %v", seen[:3], got)
	}
}

func TestSpawnerSystem(t *testing.T) {
	space := newTestSpace(t)
	bullet := NewArchetype("Bullet", TransformName, VelocityName, LifetimeName)
	bullet.AddObject(NewObjectArchetype("Basic").With(LifetimeName, Lifetime{Remaining: 100}))
	gun := NewArchetype("Gun", TransformName, SpawnerName)
	gun.AddObject(NewObjectArchetype("Burst").With(SpawnerName, Spawner{
		Interval: 2,
		Spawns: []SpawnInfo{{
			PoolName:        "bullets",
			ObjectArchetype: "Basic",
			Rules:           []string{RingRule},
			Layout:          SpawnLayout{ObjectsPerGroup: 4},
		}},
	}))
	for _, a := range []*Archetype{bullet, gun} {
		if err := space.RegisterArchetype(a); err != nil {
			t.Fatalf("Failed to register %s: %v", a.Name(), err)
		}
	}
	bullets, _ := space.NewPool("bullets", "Bullet", 10)
	space.NewPool("guns", "Gun", 1)
	space.CreateObjects("guns", "Burst", 1)

	// Fires on ticks 2 and 4; the third burst does not fit and is dropped
	want := []int{0, 4, 4, 8, 8, 8}
	for tick, w := range want {
		if err := space.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if bullets.ActiveCount() != w {
			t.Errorf("Tick %d: bullets = %d, want %d", tick+1, bullets.ActiveCount(), w)
		}
	}
}
