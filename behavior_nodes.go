package depot

// enter starts evaluating a node for obj. Leaves run their action; composites
// and decorators pick where to go first.
func (r *BehaviorRunner) enter(index, obj int) Result {
	node := &r.tree.nodes[index]
	if node.Kind.IsLeaf() {
		return r.execute(node, obj)
	}
	return r.onBegin(node, obj)
}

// onBegin resolves childless nodes immediately instead of failing the tree
func (r *BehaviorRunner) onBegin(node *BehaviorNode, obj int) Result {
	hasChild := len(node.Children) > 0
	switch node.Kind {
	case KindSequence:
		if !hasChild {
			return success
		}
	case KindSelector:
		if !hasChild {
			return failure
		}
	case KindAlwaysSucceed:
		if !hasChild {
			return success
		}
	case KindInvert, KindAlwaysFail, KindLoop, KindLoopOnSuccess, KindLoopOnFailure:
		if !hasChild {
			return failure
		}
	case KindRepeat:
		r.state[node.state][obj] = 0
		if !hasChild {
			return failure
		}
		if node.Config.Iterations <= 0 {
			return success
		}
	}
	return transfer(node.Children[0])
}

// onChildFinish decides what a node does once the child in slot finished
// with status
func (r *BehaviorRunner) onChildFinish(node *BehaviorNode, status Status, slot, obj int) Result {
	switch node.Kind {
	case KindSequence:
		if status == StatusFailure {
			return failure
		}
		if next := slot + 1; next < len(node.Children) {
			return transfer(node.Children[next])
		}
		return success

	case KindSelector:
		if status == StatusSuccess {
			return success
		}
		if next := slot + 1; next < len(node.Children) {
			return transfer(node.Children[next])
		}
		return failure

	case KindInvert:
		return resolve(status == StatusFailure)

	case KindAlwaysFail:
		return failure

	case KindAlwaysSucceed:
		return success

	case KindLoop:
		return transfer(node.Children[0])

	case KindLoopOnSuccess:
		if status == StatusSuccess {
			return transfer(node.Children[0])
		}
		return success

	case KindLoopOnFailure:
		if status == StatusFailure {
			return transfer(node.Children[0])
		}
		return success

	case KindRepeat:
		if status == StatusFailure {
			return failure
		}
		iterations := &r.state[node.state][obj]
		*iterations++
		if *iterations >= node.Config.Iterations {
			return success
		}
		return transfer(node.Children[0])
	}
	// Leaves never have children
	return failure
}

func (r *BehaviorRunner) execute(node *BehaviorNode, obj int) Result {
	switch node.Kind {
	case KindDebug:
		r.space.logger.Info(node.Config.Message,
			"pool", r.pool.Name(),
			"object", obj,
			"tick", r.space.Tick(),
		)
		return success

	case KindRotateDirection:
		vel := VelocityComponent.GetFromPool(r.pool, obj)
		if vel == nil {
			return failure
		}
		vel.Vec2 = vel.Rotate(node.Config.Angle)
		if tf := TransformComponent.GetFromPool(r.pool, obj); tf != nil {
			tf.Rotation += node.Config.Angle
		}
		return success

	case KindWait:
		elapsed := &r.state[node.state][obj]
		*elapsed++
		if *elapsed > node.Config.Ticks {
			*elapsed = 0
			return success
		}
		return running

	case KindDestroy:
		// The runner holds the pool lock, so this only queues
		if err := r.pool.EnqueueDestroyObject(obj); err != nil {
			return failure
		}
		return success

	case KindSpawn:
		spawner := SpawnerComponent.GetFromPool(r.pool, obj)
		if spawner == nil {
			return failure
		}
		source, _ := r.pool.Object(obj)
		for _, info := range spawner.Spawns {
			if _, err := r.space.Spawn(source, info); err != nil {
				r.space.logger.Warn("behavior spawn failed",
					"pool", r.pool.Name(),
					"object", obj,
					"err", err,
				)
				return failure
			}
		}
		return success
	}
	return failure
}
