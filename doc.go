// Package treepick provides structure-preserving extraction of data from
// hierarchical Go values using compact JSONPath-like path expressions.
//
// Unlike flat-list JSONPath evaluators, every result keeps its ancestry:
// objects stay objects, arrays stay arrays, and results from multiple path
// expressions merge into one coherent output tree with the same nesting
// shape as the source.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - pathexpr: Parse path expressions into segment sequences
//   - extractor: Evaluate parsed paths against a source value and build the
//     merged output tree
//   - document: Load JSON or YAML documents into extractable values
//
// # Quick Start
//
// Extract fields from any Go value:
//
//	import "github.com/treepick/treepick/extractor"
//
//	type Address struct {
//		City string `json:"city"`
//		Zip  string `json:"zip"`
//	}
//	type User struct {
//		Name    string  `json:"name"`
//		Address Address `json:"address"`
//	}
//
//	tree, err := extractor.Extract(user, "$.name", "$.address.city")
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := json.Marshal(tree)
//	// {"name":"Ada","address":{"city":"London"}}
//
// Extract from a decoded document:
//
//	import "github.com/treepick/treepick/document"
//
//	doc, err := document.Load("payload.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tree, err := doc.Extract("$..items[0:3].id")
//
// # Path Expression Grammar
//
// Path expressions follow a compact JSONPath-like grammar:
//
//	$                    optional root marker
//	.name                field access (case-insensitive)
//	..name               recursive descent to name at any depth
//	[n], [n1,n2,...]     index or indices (negative = from end)
//	[a:b]                slice, either bound optional
//	[*]                  wildcard
//	['f1','f2']          multi-field select
//
// Bracket units chain directly onto a preceding unit (a[0][1]) without an
// intervening dot. See the pathexpr package documentation for the full
// grammar.
//
// # Error Handling
//
// Only malformed path expressions produce errors, surfaced as
// *tperrors.MalformedPathError and matching tperrors.ErrMalformedPath.
// Missing fields, out-of-range indices, and empty collections are never
// errors: they simply contribute nothing to the output tree. A nil source
// or an empty expression list yields an empty object tree.
//
// # Command-Line Interface
//
// In addition to the library packages, treepick provides a command-line
// interface:
//
//	# Select fields from a JSON or YAML document
//	treepick extract -p '$.items[*].name' -p '$..id' data.json
//
//	# Emit YAML instead of JSON
//	treepick extract -format yaml -p '$.spec' manifest.yaml
//
// Install the CLI:
//
//	go install github.com/treepick/treepick/cmd/treepick@latest
package treepick
