package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/treepick/treepick/extractor"
)

// maxInspectFields caps the number of top-level field names returned.
const maxInspectFields = 100

type inspectInput struct {
	Document documentInput `json:"document" jsonschema:"The document to inspect"`
}

type inspectOutput struct {
	Format       string   `json:"format"`
	SizeBytes    int64    `json:"size_bytes"`
	RootKind     string   `json:"root_kind"`
	Fields       []string `json:"fields,omitempty"`
	FieldCount   int      `json:"field_count,omitempty"`
	ElementCount int      `json:"element_count,omitempty"`
}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	output := inspectOutput{
		Format:    string(doc.SourceFormat),
		SizeBytes: doc.SourceSize,
	}

	src := extractor.NewReflectSource()
	switch {
	case doc.Data == nil:
		output.RootKind = "null"
	case src.IsObject(doc.Data):
		output.RootKind = "object"
		fields := src.Fields(doc.Data)
		output.FieldCount = len(fields)
		for i, f := range fields {
			if i >= maxInspectFields {
				break
			}
			output.Fields = append(output.Fields, f.Name)
		}
	case src.IsList(doc.Data):
		output.RootKind = "list"
		output.ElementCount = len(src.ListElements(doc.Data))
	default:
		output.RootKind = "scalar"
	}

	return nil, output, nil
}
