package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"

	"github.com/treepick/treepick/extractor"
)

type extractInput struct {
	Document documentInput `json:"document"         jsonschema:"The document to extract from"`
	Paths    []string      `json:"paths"            jsonschema:"Path expressions to evaluate, e.g. $.user.name or $..id"`
	Format   string        `json:"format,omitempty" jsonschema:"Output format: json (default) or yaml"`
}

type extractOutput struct {
	Result string `json:"result"`
	Format string `json:"format"`
	// Matched is the number of top-level fields in the result tree; 0
	// means nothing matched.
	Matched int `json:"matched"`
}

func handleExtract(_ context.Context, _ *mcp.CallToolRequest, input extractInput) (*mcp.CallToolResult, extractOutput, error) {
	if len(input.Paths) == 0 {
		return errResult(fmt.Errorf("at least one path expression must be provided")), extractOutput{}, nil
	}
	format := input.Format
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "yaml" {
		return errResult(fmt.Errorf("invalid format %q; valid values: json, yaml", input.Format)), extractOutput{}, nil
	}

	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	x := extractor.New()
	x.MaxDepth = cfg.MaxDepth
	tree, err := x.Extract(doc.Data, input.Paths)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	var rendered []byte
	if format == "json" {
		rendered, err = json.MarshalIndent(tree, "", "  ")
	} else {
		var plain any
		plain, err = tree.Interface()
		if err == nil {
			rendered, err = yaml.Marshal(plain)
		}
	}
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	return nil, extractOutput{
		Result:  string(rendered),
		Format:  format,
		Matched: tree.Len(),
	}, nil
}
