package depot

import "fmt"

var _ ComponentArray = &componentArray[int]{}

// componentArray is the only ComponentArray implementation. Its backing slice
// is allocated once at pool build time and never resized, so pointers handed
// out by AccessibleComponent stay valid for the pool's lifetime.
type componentArray[T any] struct {
	name string
	data []T
}

func newComponentArray[T any](name string, capacity int) *componentArray[T] {
	return &componentArray[T]{
		name: name,
		data: make([]T, capacity),
	}
}

func (a *componentArray[T]) Name() string {
	return a.name
}

func (a *componentArray[T]) Len() int {
	return len(a.data)
}

func (a *componentArray[T]) Get(i int) any {
	return a.data[i]
}

func (a *componentArray[T]) Set(i int, v any) error {
	typed, ok := v.(T)
	if !ok {
		return ComponentTypeError{
			Component: a.name,
			Want:      fmt.Sprintf("%T", *new(T)),
			Got:       v,
		}
	}
	a.data[i] = typed
	return nil
}

func (a *componentArray[T]) Reset(i int) {
	var zero T
	a.data[i] = zero
}

func (a *componentArray[T]) Move(dst, src int) {
	a.data[dst] = a.data[src]
}

func (a *componentArray[T]) Swap(i, j int) {
	a.data[i], a.data[j] = a.data[j], a.data[i]
}

func (a *componentArray[T]) SwapRemove(i, last int) {
	if i != last {
		a.data[i] = a.data[last]
	}
	a.Reset(last)
}

func (a *componentArray[T]) slice() []T {
	return a.data
}
