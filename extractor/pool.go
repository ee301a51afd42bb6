package extractor

import "sync"

// Pool capacities (typical queries produce a handful of matches each).
const matchSliceCap = 32

var matchSlicePool = sync.Pool{
	New: func() any {
		s := make([]match, 0, matchSliceCap)
		return &s
	},
}

func getMatchSlice() *[]match {
	s := matchSlicePool.Get().(*[]match)
	*s = (*s)[:0]
	return s
}

func putMatchSlice(s *[]match) {
	if s == nil || cap(*s) > 256 {
		return
	}
	matchSlicePool.Put(s)
}
