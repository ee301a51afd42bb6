// Package pathexpr parses compact JSONPath-like path expressions into
// ordered segment sequences for the treepick extraction engine.
//
// The grammar is deliberately small: it supports path navigation, wildcards,
// index and slice selection, multi-field selection, and recursive descent.
// It is not an RFC 9535 JSONPath implementation: filter expressions, filter
// functions, and unions of arbitrary expressions are not supported.
//
// Supported syntax:
//   - $ (optional root marker)
//   - .name (property access, matched case-insensitively at evaluation time)
//   - ..name (recursive descent: name at any depth)
//   - ['f1','f2'] or ["f1","f2"] (multi-field select, backslash escapes allowed)
//   - [0], [0,2,-1] (index select, negative counts from the end)
//   - [a:b] (slice, either bound optional, half-open after resolution)
//   - [*] (wildcard: all elements of a list or all fields of an object)
//
// Bracket units chain directly onto a preceding unit (a[0][1]) without an
// intervening dot. Parsing is purely syntactic: it does not validate that
// referenced fields exist.
package pathexpr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/treepick/treepick/tperrors"
)

// Path represents a parsed path expression.
type Path struct {
	raw      string
	segments []Segment
}

// String returns the original path expression.
func (p *Path) String() string {
	return p.raw
}

// Segments returns the ordered segment sequence of the expression.
// The returned slice is owned by the Path and must not be modified.
func (p *Path) Segments() []Segment {
	return p.segments
}

// Segment represents a single segment in a path expression.
type Segment interface {
	// segmentType returns a string identifying the segment type for debugging.
	segmentType() string
}

// PropertySegment selects a single field by name (.name or a bare name).
// The name is matched case-insensitively against the source's natural field
// names, with an exact-match fallback against explicit external names.
type PropertySegment struct {
	Name string
}

func (s PropertySegment) segmentType() string { return "property" }

// MultiFieldSegment selects several named fields at once (['a','b']).
// Names that do not resolve are silently skipped.
type MultiFieldSegment struct {
	Names []string
}

func (s MultiFieldSegment) segmentType() string { return "multifield" }

// WildcardSegment selects all elements of a list or all fields of an
// object ([*]).
type WildcardSegment struct{}

func (s WildcardSegment) segmentType() string { return "wildcard" }

// MultiIndexSegment selects specific list positions ([0,2,-1]).
// Negative indices count from the end; out-of-range indices are skipped.
type MultiIndexSegment struct {
	Indices []int
}

func (s MultiIndexSegment) segmentType() string { return "multiindex" }

// SliceSegment selects a contiguous list range ([a:b]). A nil bound is
// open: Start defaults to 0 and End to the list length. Bounds resolve
// with the same negative-index rule as MultiIndexSegment and are clamped
// into range; the resolved range is half-open.
type SliceSegment struct {
	Start *int
	End   *int
}

func (s SliceSegment) segmentType() string { return "slice" }

// RecursiveSegment is not a match by itself: it modifies evaluation of the
// next segment to search for it at any depth of the current subtree (..).
type RecursiveSegment struct{}

func (s RecursiveSegment) segmentType() string { return "recursive" }

// Parse parses a path expression string into a Path.
//
// Examples:
//
//	Parse("$.user.name")           // Navigate to a nested field
//	Parse("$.items[0:3]")          // First three list elements
//	Parse("$..id")                 // Every id field at any depth
//	Parse("$.rows[*]['a','b']")    // Fields a and b of every row
//
// Grammar violations return a *tperrors.MalformedPathError carrying the
// offending byte offset; the error matches tperrors.ErrMalformedPath.
func Parse(expr string) (*Path, error) {
	p := &parser{input: expr}

	segments, err := p.parse()
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, p.errorf(0, "empty path expression")
	}

	return &Path{
		raw:      expr,
		segments: segments,
	}, nil
}

// parser is the internal path expression parser.
type parser struct {
	input string
	pos   int
}

func (p *parser) parse() ([]Segment, error) {
	var segments []Segment

	// Optional leading root marker
	p.consume('$')

	for p.pos < len(p.input) {
		switch p.peek() {
		case '.':
			p.advance()
			// A second dot marks recursive descent for the next unit.
			if p.peek() == '.' {
				p.advance()
				segments = append(segments, RecursiveSegment{})
			}

		case '[':
			p.advance()
			seg, err := p.parseBracketSegment()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)

		default:
			// A property name is a maximal run not containing '.' or '['.
			name := p.parseName()
			if name != "" {
				segments = append(segments, PropertySegment{Name: name})
			}
		}
	}

	return segments, nil
}

// parseName consumes a maximal run of characters that are not '.' or '['.
func (p *parser) parseName() string {
	start := p.pos
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == '.' || ch == '[' {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

// parseBracketSegment parses the contents of a bracket unit. The opening
// '[' has already been consumed.
func (p *parser) parseBracketSegment() (Segment, error) {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		return nil, p.errorf(p.pos, "unterminated bracket")
	}

	ch := p.peek()

	// Wildcard: [*]
	if ch == '*' {
		p.advance()
		p.skipWhitespace()
		if !p.consume(']') {
			return nil, p.errorf(p.pos, "expected ']' after '*'")
		}
		return WildcardSegment{}, nil
	}

	// Multi-field select: ['a','b'] or ["a","b"]
	if ch == '\'' || ch == '"' {
		return p.parseMultiField()
	}

	// Numeric contents: index list or slice
	return p.parseNumericBracket()
}

// parseMultiField parses one or more comma-separated quoted field names.
func (p *parser) parseMultiField() (Segment, error) {
	var names []string

	for {
		quote := p.peek()
		if quote != '\'' && quote != '"' {
			return nil, p.errorf(p.pos, "expected quoted field name")
		}
		p.advance()

		name, err := p.parseQuotedString(quote)
		if err != nil {
			return nil, err
		}
		names = append(names, name)

		p.skipWhitespace()
		if p.consume(',') {
			p.skipWhitespace()
			continue
		}
		if p.consume(']') {
			return MultiFieldSegment{Names: names}, nil
		}
		return nil, p.errorf(p.pos, "expected ',' or ']' after quoted field name")
	}
}

// parseNumericBracket parses either a comma-separated index list or a
// slice with optional bounds.
func (p *parser) parseNumericBracket() (Segment, error) {
	first, err := p.parseOptionalInt()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()

	// A colon makes this a slice; the first token (possibly absent) is the
	// start bound.
	if p.consume(':') {
		p.skipWhitespace()
		end, err := p.parseOptionalInt()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		if !p.consume(']') {
			return nil, p.errorf(p.pos, "expected ']' after slice bounds")
		}
		return SliceSegment{Start: first, End: end}, nil
	}

	if first == nil {
		return nil, p.errorf(p.pos, "expected integer, ':', '*', or quoted field name in bracket")
	}

	indices := []int{*first}
	for {
		p.skipWhitespace()
		if p.consume(',') {
			p.skipWhitespace()
			next, err := p.parseOptionalInt()
			if err != nil {
				return nil, err
			}
			if next == nil {
				return nil, p.errorf(p.pos, "expected integer after ','")
			}
			indices = append(indices, *next)
			continue
		}
		if p.consume(']') {
			return MultiIndexSegment{Indices: indices}, nil
		}
		return nil, p.errorf(p.pos, "expected ',' or ']' after index")
	}
}

// parseOptionalInt parses a signed integer token, or returns nil when the
// cursor is not positioned at one. A bare '-' without digits is an error.
func (p *parser) parseOptionalInt() (*int, error) {
	start := p.pos
	if p.pos < len(p.input) && p.input[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.input) && unicode.IsDigit(rune(p.input[p.pos])) {
		p.pos++
	}

	tok := p.input[start:p.pos]
	if tok == "" {
		return nil, nil
	}
	if tok == "-" {
		return nil, p.errorf(start, "invalid integer %q", tok)
	}

	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, &tperrors.MalformedPathError{
			Expression: p.input,
			Offset:     start,
			Message:    fmt.Sprintf("invalid integer %q", tok),
			Cause:      err,
		}
	}
	return &n, nil
}

func (p *parser) parseQuotedString(quote byte) (string, error) {
	var result strings.Builder
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == quote {
			p.pos++
			return result.String(), nil
		}
		if ch == '\\' && p.pos+1 < len(p.input) {
			p.pos++
			escaped := p.input[p.pos]
			switch escaped {
			case 'n':
				result.WriteByte('\n')
			case 't':
				result.WriteByte('\t')
			case '\\':
				result.WriteByte('\\')
			case '\'':
				result.WriteByte('\'')
			case '"':
				result.WriteByte('"')
			default:
				result.WriteByte(escaped)
			}
			p.pos++
			continue
		}
		result.WriteByte(ch)
		p.pos++
	}
	return "", p.errorf(p.pos, "unterminated quoted string")
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) advance() {
	if p.pos < len(p.input) {
		p.pos++
	}
}

func (p *parser) consume(ch byte) bool {
	if p.peek() == ch {
		p.advance()
		return true
	}
	return false
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	return &tperrors.MalformedPathError{
		Expression: p.input,
		Offset:     offset,
		Message:    fmt.Sprintf(format, args...),
	}
}
