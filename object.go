package depot

// Object is a handle to one pool object that stays valid while the object is
// moved around by swap-removal. It goes stale once the object is destroyed.
type Object struct {
	pool *Pool
	id   ObjectID
}

func (o Object) Pool() *Pool {
	return o.pool
}

func (o Object) ID() ObjectID {
	return o.id
}

// Index resolves the object's current index
func (o Object) Index() (int, bool) {
	if o.pool == nil || o.id == 0 {
		return -1, false
	}
	return o.pool.IndexOf(o.id)
}

func (o Object) Valid() bool {
	_, ok := o.Index()
	return ok
}

// Destroy destroys the object, deferred when its pool is locked
func (o Object) Destroy() error {
	index, ok := o.Index()
	if !ok {
		if o.pool == nil {
			return ObjectIndexError{Index: -1}
		}
		return ObjectIndexError{Pool: o.pool.Name(), Index: -1, Active: o.pool.ActiveCount()}
	}
	return o.pool.EnqueueDestroyObject(index)
}
