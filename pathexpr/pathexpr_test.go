package pathexpr

import (
	"errors"
	"reflect"
	"testing"

	"github.com/treepick/treepick/tperrors"
)

func intp(n int) *int { return &n }

// TestParse tests the path expression parser.
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    []Segment
	}{
		// Valid expressions
		{name: "simple property", input: "$.name", want: []Segment{PropertySegment{Name: "name"}}},
		{name: "nested properties", input: "$.user.name", want: []Segment{PropertySegment{Name: "user"}, PropertySegment{Name: "name"}}},
		{name: "no root marker", input: "user.name", want: []Segment{PropertySegment{Name: "user"}, PropertySegment{Name: "name"}}},
		{name: "name directly after root", input: "$user", want: []Segment{PropertySegment{Name: "user"}}},
		{name: "trailing dot ignored", input: "$.user.", want: []Segment{PropertySegment{Name: "user"}}},
		{name: "name with spaces and dashes", input: "$.first name.x-field", want: []Segment{PropertySegment{Name: "first name"}, PropertySegment{Name: "x-field"}}},
		{name: "single index", input: "$.items[0]", want: []Segment{PropertySegment{Name: "items"}, MultiIndexSegment{Indices: []int{0}}}},
		{name: "negative index", input: "$.items[-1]", want: []Segment{PropertySegment{Name: "items"}, MultiIndexSegment{Indices: []int{-1}}}},
		{name: "multi index", input: "$.items[0,2,-1]", want: []Segment{PropertySegment{Name: "items"}, MultiIndexSegment{Indices: []int{0, 2, -1}}}},
		{name: "multi index with spaces", input: "$.items[ 0 , 2 ]", want: []Segment{PropertySegment{Name: "items"}, MultiIndexSegment{Indices: []int{0, 2}}}},
		{name: "chained brackets", input: "$.grid[0][1]", want: []Segment{PropertySegment{Name: "grid"}, MultiIndexSegment{Indices: []int{0}}, MultiIndexSegment{Indices: []int{1}}}},
		{name: "full slice", input: "$.items[1:3]", want: []Segment{PropertySegment{Name: "items"}, SliceSegment{Start: intp(1), End: intp(3)}}},
		{name: "open start slice", input: "$.items[:2]", want: []Segment{PropertySegment{Name: "items"}, SliceSegment{End: intp(2)}}},
		{name: "open end slice", input: "$.items[2:]", want: []Segment{PropertySegment{Name: "items"}, SliceSegment{Start: intp(2)}}},
		{name: "fully open slice", input: "$.items[:]", want: []Segment{PropertySegment{Name: "items"}, SliceSegment{}}},
		{name: "negative slice bounds", input: "$.items[-3:-1]", want: []Segment{PropertySegment{Name: "items"}, SliceSegment{Start: intp(-3), End: intp(-1)}}},
		{name: "slice with spaces", input: "$.items[ 1 : 3 ]", want: []Segment{PropertySegment{Name: "items"}, SliceSegment{Start: intp(1), End: intp(3)}}},
		{name: "wildcard", input: "$.items[*]", want: []Segment{PropertySegment{Name: "items"}, WildcardSegment{}}},
		{name: "wildcard with spaces", input: "$.items[ * ]", want: []Segment{PropertySegment{Name: "items"}, WildcardSegment{}}},
		{name: "single quoted field", input: "$['a b']", want: []Segment{MultiFieldSegment{Names: []string{"a b"}}}},
		{name: "multi field", input: "$['a','b']", want: []Segment{MultiFieldSegment{Names: []string{"a", "b"}}}},
		{name: "multi field double quotes", input: `$["a","b"]`, want: []Segment{MultiFieldSegment{Names: []string{"a", "b"}}}},
		{name: "multi field with spaces", input: "$[ 'a' , 'b' ]", want: []Segment{MultiFieldSegment{Names: []string{"a", "b"}}}},
		{name: "escaped quote in field", input: `$['it\'s']`, want: []Segment{MultiFieldSegment{Names: []string{"it's"}}}},
		{name: "escaped backslash in field", input: `$['a\\b']`, want: []Segment{MultiFieldSegment{Names: []string{`a\b`}}}},
		{name: "recursive descent property", input: "$..name", want: []Segment{RecursiveSegment{}, PropertySegment{Name: "name"}}},
		{name: "recursive descent wildcard", input: "$..[*]", want: []Segment{RecursiveSegment{}, WildcardSegment{}}},
		{name: "consecutive recursive descent", input: "$..a..b", want: []Segment{RecursiveSegment{}, PropertySegment{Name: "a"}, RecursiveSegment{}, PropertySegment{Name: "b"}}},
		{name: "trailing recursive descent", input: "$.a..", want: []Segment{PropertySegment{Name: "a"}, RecursiveSegment{}}},
		{name: "mixed", input: "$.rows[*]['a','b']", want: []Segment{PropertySegment{Name: "rows"}, WildcardSegment{}, MultiFieldSegment{Names: []string{"a", "b"}}}},

		// Invalid expressions
		{name: "empty string", input: "", wantErr: true},
		{name: "root only", input: "$", wantErr: true},
		{name: "dot only", input: "$.", wantErr: true},
		{name: "unterminated bracket", input: "$.items[", wantErr: true},
		{name: "unterminated index", input: "$.items[0", wantErr: true},
		{name: "unterminated quote", input: "$.items['a", wantErr: true},
		{name: "empty bracket", input: "$.items[]", wantErr: true},
		{name: "bare minus", input: "$.items[-]", wantErr: true},
		{name: "non-integer index", input: "$.items[abc]", wantErr: true},
		{name: "float index", input: "$.items[1.5]", wantErr: true},
		{name: "trailing comma", input: "$.items[1,]", wantErr: true},
		{name: "leading comma", input: "$.items[,1]", wantErr: true},
		{name: "double colon", input: "$.items[1:2:3]", wantErr: true},
		{name: "mixed quoted and index", input: "$.items['a',1]", wantErr: true},
		{name: "garbage after index", input: "$.items[1x]", wantErr: true},
		{name: "garbage after wildcard", input: "$.items[*x]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := Parse(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got nil", tt.input)
				}
				if !errors.Is(err, tperrors.ErrMalformedPath) {
					t.Errorf("Parse(%q) error does not match ErrMalformedPath: %v", tt.input, err)
				}
				var pathErr *tperrors.MalformedPathError
				if !errors.As(err, &pathErr) {
					t.Errorf("Parse(%q) error is not a *MalformedPathError: %v", tt.input, err)
				} else if pathErr.Expression != tt.input {
					t.Errorf("Parse(%q) error carries Expression %q", tt.input, pathErr.Expression)
				}
				return
			}

			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(path.Segments(), tt.want) {
				t.Errorf("Parse(%q) segments = %#v, want %#v", tt.input, path.Segments(), tt.want)
			}
			if path.String() != tt.input {
				t.Errorf("Path.String() = %q, want %q", path.String(), tt.input)
			}
		})
	}
}

// TestParseErrorOffset checks that parse errors point at the offending offset.
func TestParseErrorOffset(t *testing.T) {
	tests := []struct {
		input      string
		wantOffset int
	}{
		{input: "$.items[abc]", wantOffset: 8},
		{input: "$.items['a", wantOffset: 10},
		{input: "$.items[1x]", wantOffset: 9},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			var pathErr *tperrors.MalformedPathError
			if !errors.As(err, &pathErr) {
				t.Fatalf("Parse(%q) = %v, want *MalformedPathError", tt.input, err)
			}
			if pathErr.Offset != tt.wantOffset {
				t.Errorf("Parse(%q) offset = %d, want %d", tt.input, pathErr.Offset, tt.wantOffset)
			}
		})
	}
}

// TestEscapedCharacters exercises backslash escapes inside quoted names.
func TestEscapedCharacters(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: `$['a\nb']`, want: "a\nb"},
		{input: `$['a\tb']`, want: "a\tb"},
		{input: `$["say \"hi\""]`, want: `say "hi"`},
		{input: `$['\x']`, want: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			path, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			seg, ok := path.Segments()[0].(MultiFieldSegment)
			if !ok {
				t.Fatalf("Parse(%q) segment = %#v, want MultiFieldSegment", tt.input, path.Segments()[0])
			}
			if seg.Names[0] != tt.want {
				t.Errorf("Parse(%q) name = %q, want %q", tt.input, seg.Names[0], tt.want)
			}
		})
	}
}
