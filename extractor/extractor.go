// Package extractor evaluates parsed path expressions against a source
// value and builds a single structure-preserving output tree.
//
// Every match keeps its ancestry: objects stay objects, arrays stay arrays,
// and matches from multiple path expressions merge into one coherent tree.
// Missing data is never an error; only malformed path expressions are.
//
// The zero-configuration entry point covers most uses:
//
//	tree, err := extractor.Extract(value, "$.user.name", "$..id")
//
// For custom source adapters, leaf encoding, or logging, configure an
// Extractor directly:
//
//	x := extractor.New()
//	x.Source = &extractor.ReflectSource{TagKey: "yaml"}
//	tree, err := x.Extract(value, paths)
package extractor

import (
	"github.com/treepick/treepick/pathexpr"
	"github.com/treepick/treepick/tperrors"
)

// DefaultMaxDepth is the default recursion bound for evaluation and
// recursive-descent search. It exists to bound cyclic source graphs, which
// the engine does not otherwise detect; any acyclic source of sane depth
// stays far below it.
const DefaultMaxDepth = 1000

// Extractor runs extraction sessions: it parses path expressions, evaluates
// them against a source value, and merges all matches into one output tree.
//
// The zero value is not usable; call New, which installs the default
// reflection source adapter and JSON leaf encoder.
type Extractor struct {
	// Source reads fields and elements off the source value.
	// Defaults to NewReflectSource().
	Source Source
	// Leaves serializes matched values into output-tree leaves.
	// Defaults to JSONLeafEncoder{}.
	Leaves LeafEncoder
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
	// MaxDepth bounds evaluation recursion. 0 means DefaultMaxDepth;
	// branches beyond the bound silently end with no match.
	MaxDepth int
}

// New creates a new Extractor with default settings.
func New() *Extractor {
	return &Extractor{
		Source: NewReflectSource(),
		Leaves: JSONLeafEncoder{},
	}
}

// Extract is a convenience wrapper around New().Extract for one-off calls.
func Extract(source any, paths ...string) (*Object, error) {
	return New().Extract(source, paths)
}

// Extract evaluates every path expression against source and returns the
// merged output tree.
//
// All expressions are parsed before any is evaluated: a single malformed
// expression fails the whole call with a *tperrors.MalformedPathError and
// no partial output. A nil source or an empty path list yields an empty
// object tree, not an error. Missing fields, out-of-range indices, and
// adapter faults never fail the call; they simply contribute no output.
func (x *Extractor) Extract(source any, paths []string) (*Object, error) {
	if x.Source == nil {
		return nil, &tperrors.ConfigError{Field: "Source", Message: "must not be nil"}
	}

	// Parse everything up front so a malformed expression can never leave
	// a partially merged tree behind.
	parsed := make([]*pathexpr.Path, 0, len(paths))
	for _, expr := range paths {
		p, err := pathexpr.Parse(expr)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
	}

	tree := NewObject()
	if isNullValue(source) || len(parsed) == 0 {
		return tree, nil
	}

	sess := &session{src: x.Source, maxDepth: x.maxDepth()}
	matches := getMatchSlice()
	defer putMatchSlice(matches)

	for _, p := range parsed {
		*matches = (*matches)[:0]
		sess.evaluate(source, p.Segments(), 0, nil, 0, matches)
		x.log().Debug("evaluated path", "expr", p.String(), "matches", len(*matches))

		for _, m := range *matches {
			if err := x.insert(tree, m); err != nil {
				// Leaf encoding faults degrade to "no match" for that
				// branch; they never abort the session.
				x.log().Warn("dropped unencodable match", "expr", p.String(), "error", err)
			}
		}
	}

	return tree, nil
}

func (x *Extractor) maxDepth() int {
	if x.MaxDepth > 0 {
		return x.MaxDepth
	}
	return DefaultMaxDepth
}

func (x *Extractor) leaves() LeafEncoder {
	if x.Leaves != nil {
		return x.Leaves
	}
	return JSONLeafEncoder{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (x *Extractor) log() Logger {
	if x.Logger != nil {
		return x.Logger
	}
	return NopLogger{}
}
