// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes treepick extraction as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/treepick/treepick"
)

const serverInstructions = `treepick MCP server — extracts structure-preserving subtrees from JSON and YAML documents using path expressions.

Path expression syntax: $.field, $.field.nested, $['a','b'], $[*], $[0,2], $[1:3], $..name (recursive descent). Field matching is case-insensitive against natural field names. Results from multiple expressions merge into one tree that mirrors the source structure.

Configuration: All defaults are configurable via TREEPICK_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- TREEPICK_MAX_INLINE_SIZE (default: 4 MiB) — size limit for inline content
- TREEPICK_MAX_FETCH_SIZE (default: 32 MiB) — size limit for URL-fetched documents
- TREEPICK_MAX_DEPTH (default: 1000) — recursion bound for extraction
- TREEPICK_CACHE_ENABLED (default: true) — disable document caching entirely
- TREEPICK_CACHE_FILE_TTL (default: 15m) — cache TTL for local files
- TREEPICK_CACHE_URL_TTL (default: 5m) — cache TTL for URL-fetched documents
- TREEPICK_ALLOW_PRIVATE_IPS (default: false) — allow URL loads from private/loopback addresses

Caching: Loaded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "treepick", Version: treepick.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract",
		Description: "Extract a structure-preserving subtree from a JSON or YAML document using path expressions. Takes one or more expressions ($.field.nested, $[*], $..name, ...) and returns a single merged tree that mirrors the source structure, containing only the matched values with their full ancestor chains. Field matching is case-insensitive. Missing fields and out-of-range indices are skipped silently; only malformed expressions fail.",
	}, handleExtract)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_paths",
		Description: "Check path expressions against the grammar without running an extraction. Returns the parsed segment kinds per expression, or the syntax error with its byte offset. Useful for validating expressions before using them in extract.",
	}, handleCheckPaths)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Inspect a JSON or YAML document without extracting: returns the detected format, size, root value kind, and the top-level field names or element count. Useful for discovering what path expressions to write.",
	}, handleInspect)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
