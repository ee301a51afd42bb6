package extractor

import (
	"reflect"

	"github.com/treepick/treepick/pathexpr"
)

// outputStep is one resolved traversal step of a match: the address
// component at which a matched value must be written in the output tree.
type outputStep interface {
	stepKind() string
}

// fieldStep addresses an object field by its resolved external name.
type fieldStep struct {
	name string
}

func (s fieldStep) stepKind() string { return "field" }

// indexStep addresses a resolved, non-negative list position.
type indexStep struct {
	index int
}

func (s indexStep) stepKind() string { return "index" }

// match is one (output path, leaf value) pair produced by evaluation.
// The value is the raw source value; serialization happens at insert time.
type match struct {
	steps []outputStep
	value any
}

// session evaluates parsed paths against one source value.
type session struct {
	src      Source
	maxDepth int
}

// evaluate walks cv against segs starting at segment index i, appending
// every produced match to out. It never fails: missing fields, out-of-range
// indices, and adapter faults simply yield no match for that branch.
func (s *session) evaluate(cv any, segs []pathexpr.Segment, i int, steps []outputStep, depth int, out *[]match) {
	// A null current value terminates the branch, even if segments remain.
	if isNullValue(cv) {
		return
	}
	if i >= len(segs) {
		*out = append(*out, match{steps: cloneSteps(steps), value: cv})
		return
	}
	if s.maxDepth > 0 && depth > s.maxDepth {
		return
	}
	s.applySegment(cv, segs, i, steps, depth, out)
}

// applySegment dispatches on the segment kind at index i. Split out from
// evaluate so the recursive-descent search can apply a target segment at a
// node without re-running the null/base-case checks.
func (s *session) applySegment(cv any, segs []pathexpr.Segment, i int, steps []outputStep, depth int, out *[]match) {
	last := i == len(segs)-1

	switch seg := segs[i].(type) {
	case pathexpr.PropertySegment:
		if ext, val, ok := s.resolveField(cv, seg.Name); ok {
			s.evaluate(val, segs, i+1, pushStep(steps, fieldStep{name: ext}), depth+1, out)
		}

	case pathexpr.MultiFieldSegment:
		for _, name := range seg.Names {
			ext, val, ok := s.resolveField(cv, name)
			if !ok {
				continue
			}
			if last {
				// Terminal multi-field selects emit directly instead of
				// recursing into the base case.
				*out = append(*out, match{steps: pushStep(steps, fieldStep{name: ext}), value: val})
				continue
			}
			s.evaluate(val, segs, i+1, pushStep(steps, fieldStep{name: ext}), depth+1, out)
		}

	case pathexpr.WildcardSegment:
		switch {
		case s.src.IsList(cv):
			elems := s.src.ListElements(cv)
			if len(elems) == 0 && last {
				// Preserve an explicit empty array in the output.
				*out = append(*out, match{steps: cloneSteps(steps), value: cv})
				return
			}
			for idx, elem := range elems {
				if last {
					*out = append(*out, match{steps: pushStep(steps, indexStep{index: idx}), value: elem})
					continue
				}
				s.evaluate(elem, segs, i+1, pushStep(steps, indexStep{index: idx}), depth+1, out)
			}
		case s.src.IsObject(cv):
			for _, f := range s.src.Fields(cv) {
				if last {
					*out = append(*out, match{steps: pushStep(steps, fieldStep{name: f.Name}), value: f.Value})
					continue
				}
				s.evaluate(f.Value, segs, i+1, pushStep(steps, fieldStep{name: f.Name}), depth+1, out)
			}
		}

	case pathexpr.MultiIndexSegment:
		if !s.src.IsList(cv) {
			return
		}
		elems := s.src.ListElements(cv)
		for _, idx := range seg.Indices {
			r := idx
			if r < 0 {
				r += len(elems)
			}
			if r < 0 || r >= len(elems) {
				continue
			}
			s.evaluate(elems[r], segs, i+1, pushStep(steps, indexStep{index: r}), depth+1, out)
		}

	case pathexpr.SliceSegment:
		if !s.src.IsList(cv) {
			return
		}
		elems := s.src.ListElements(cv)
		start := resolveBound(seg.Start, 0, len(elems))
		end := resolveBound(seg.End, len(elems), len(elems))
		if start >= end {
			if last {
				// An empty range still selects an explicit empty list.
				*out = append(*out, match{steps: cloneSteps(steps), value: []any{}})
			}
			return
		}
		for r := start; r < end; r++ {
			s.evaluate(elems[r], segs, i+1, pushStep(steps, indexStep{index: r}), depth+1, out)
		}

	case pathexpr.RecursiveSegment:
		// A trailing recursive-descent marker has no target and matches
		// nothing.
		if i+1 >= len(segs) {
			return
		}
		s.search(cv, segs, i+1, steps, depth, out)
	}
}

// search implements recursive descent: it collects every occurrence of the
// target segment segs[ti] at every depth of the subtree rooted at cv,
// including occurrences nested below an already-matched node. Descent into
// children is unconditional and independent of whether the current node
// matched. Scalar values terminate the search.
func (s *session) search(cv any, segs []pathexpr.Segment, ti int, steps []outputStep, depth int, out *[]match) {
	if isNullValue(cv) {
		return
	}
	if s.maxDepth > 0 && depth > s.maxDepth {
		return
	}

	s.applySegment(cv, segs, ti, steps, depth, out)

	switch {
	case s.src.IsList(cv):
		for idx, elem := range s.src.ListElements(cv) {
			s.search(elem, segs, ti, pushStep(steps, indexStep{index: idx}), depth+1, out)
		}
	case s.src.IsObject(cv):
		for _, f := range s.src.Fields(cv) {
			s.search(f.Value, segs, ti, pushStep(steps, fieldStep{name: f.Name}), depth+1, out)
		}
	}
}

// resolveBound resolves an optional slice bound: nil takes the fallback,
// negative values count from the end, and the result is clamped to [0, n].
func resolveBound(bound *int, fallback, n int) int {
	v := fallback
	if bound != nil {
		v = *bound
		if v < 0 {
			v += n
		}
	}
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}

// resolveField wraps the adapter lookup so that a panicking adapter is
// treated as "field absent" rather than aborting the session.
func (s *session) resolveField(cv any, name string) (ext string, val any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ext, val, ok = "", nil, false
		}
	}()
	return s.src.ResolveField(cv, name)
}

// pushStep appends a step without sharing backing storage between sibling
// branches of the walk.
func pushStep(steps []outputStep, st outputStep) []outputStep {
	return append(steps[:len(steps):len(steps)], st)
}

func cloneSteps(steps []outputStep) []outputStep {
	if len(steps) == 0 {
		return nil
	}
	out := make([]outputStep, len(steps))
	copy(out, steps)
	return out
}

// isNullValue reports whether v is null for evaluation purposes: a nil
// interface or a nil pointer, map, or slice behind one.
func isNullValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
