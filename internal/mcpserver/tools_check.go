package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/treepick/treepick/pathexpr"
	"github.com/treepick/treepick/tperrors"
)

type checkPathsInput struct {
	Paths []string `json:"paths" jsonschema:"Path expressions to check against the grammar"`
}

type pathCheck struct {
	Expression string   `json:"expression"`
	Valid      bool     `json:"valid"`
	Segments   []string `json:"segments,omitempty"`
	Error      string   `json:"error,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}

type checkPathsOutput struct {
	Results []pathCheck `json:"results"`
	AllOK   bool        `json:"all_ok"`
}

func handleCheckPaths(_ context.Context, _ *mcp.CallToolRequest, input checkPathsInput) (*mcp.CallToolResult, checkPathsOutput, error) {
	if len(input.Paths) == 0 {
		return errResult(fmt.Errorf("at least one path expression must be provided")), checkPathsOutput{}, nil
	}

	output := checkPathsOutput{
		Results: make([]pathCheck, 0, len(input.Paths)),
		AllOK:   true,
	}
	for _, expr := range input.Paths {
		check := pathCheck{Expression: expr}
		p, err := pathexpr.Parse(expr)
		if err != nil {
			output.AllOK = false
			var pathErr *tperrors.MalformedPathError
			if errors.As(err, &pathErr) {
				check.Error = pathErr.Message
				check.Offset = pathErr.Offset
			} else {
				check.Error = err.Error()
			}
		} else {
			check.Valid = true
			for _, seg := range p.Segments() {
				check.Segments = append(check.Segments, describeSegment(seg))
			}
		}
		output.Results = append(output.Results, check)
	}

	return nil, output, nil
}

// describeSegment renders a segment as a short human-readable token.
func describeSegment(seg pathexpr.Segment) string {
	switch s := seg.(type) {
	case pathexpr.PropertySegment:
		return "property(" + s.Name + ")"
	case pathexpr.MultiFieldSegment:
		return "fields(" + strings.Join(s.Names, ",") + ")"
	case pathexpr.WildcardSegment:
		return "wildcard"
	case pathexpr.MultiIndexSegment:
		parts := make([]string, len(s.Indices))
		for i, idx := range s.Indices {
			parts[i] = fmt.Sprintf("%d", idx)
		}
		return "indices(" + strings.Join(parts, ",") + ")"
	case pathexpr.SliceSegment:
		var b strings.Builder
		b.WriteString("slice(")
		if s.Start != nil {
			fmt.Fprintf(&b, "%d", *s.Start)
		}
		b.WriteByte(':')
		if s.End != nil {
			fmt.Fprintf(&b, "%d", *s.End)
		}
		b.WriteByte(')')
		return b.String()
	case pathexpr.RecursiveSegment:
		return "recursive"
	default:
		return "unknown"
	}
}
