package extractor

// insert writes one match into the output tree, creating intermediate
// containers along the match's output path as needed. It is called once per
// match across all path expressions of a session and is idempotent for
// structurally identical matches: re-inserting the same match leaves the
// tree unchanged, and overlapping paths merge instead of duplicating.
//
// A zero-length output path is a no-op.
func (x *Extractor) insert(tree *Object, m match) error {
	if len(m.steps) == 0 {
		return nil
	}

	// Serialize the leaf up front so an encoder fault skips the whole
	// match without leaving half-built containers behind.
	var leaf any
	if !isNullValue(m.value) {
		encoded, err := x.leaves().Encode(m.value)
		if err != nil {
			return err
		}
		leaf = encoded
	}

	var cursor Node = tree
	for i, st := range m.steps {
		last := i == len(m.steps)-1

		switch step := st.(type) {
		case fieldStep:
			obj, ok := cursor.(*Object)
			if !ok {
				// A prior match claimed this position with a different
				// shape; leave it intact.
				return nil
			}
			if last {
				if existing, ok := obj.Get(step.name); ok && isContainer(existing) {
					// Never collapse an already-built substructure into a
					// leaf; scalars are overwritten, containers win.
					return nil
				}
				obj.Set(step.name, &Leaf{Value: leaf})
				return nil
			}
			next, ok := obj.Get(step.name)
			if !ok || !isContainer(next) {
				next = newContainer(m.steps[i+1])
				obj.Set(step.name, next)
			}
			cursor = next

		case indexStep:
			arr, ok := cursor.(*Array)
			if !ok {
				return nil
			}
			if last {
				if existing := arr.At(step.index); isContainer(existing) {
					return nil
				}
				if isNullValue(m.value) {
					// A selected-but-empty slot is distinct from a
					// never-selected one: it becomes an empty object
					// rather than a null placeholder.
					arr.set(step.index, NewObject())
					return nil
				}
				arr.set(step.index, &Leaf{Value: leaf})
				return nil
			}
			arr.grow(step.index)
			next := arr.At(step.index)
			if !isContainer(next) {
				next = newContainer(m.steps[i+1])
				arr.set(step.index, next)
			}
			cursor = next
		}
	}
	return nil
}

// newContainer creates the container kind implied by the next output step:
// an Array before an index step, an Object otherwise.
func newContainer(next outputStep) Node {
	if _, ok := next.(indexStep); ok {
		return NewArray()
	}
	return NewObject()
}

func isContainer(n Node) bool {
	switch n.(type) {
	case *Object, *Array:
		return true
	default:
		return false
	}
}
