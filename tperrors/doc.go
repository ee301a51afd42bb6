// Package tperrors provides structured error types for the treepick library.
//
// Import path: github.com/treepick/treepick/tperrors
//
// This package enables programmatic error handling via [errors.Is] and
// [errors.As], allowing callers to distinguish between the two categories of
// errors the library produces.
//
// # Error Types
//
//   - [MalformedPathError]: a path expression violates the grammar
//   - [ConfigError]: invalid extractor configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrMalformedPath]: matches any [MalformedPathError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage Examples
//
// Check the error category with errors.Is():
//
//	tree, err := extractor.Extract(src, "$.items[")
//	if errors.Is(err, tperrors.ErrMalformedPath) {
//	    // Reject the query
//	}
//
// Extract error details with errors.As():
//
//	var pathErr *tperrors.MalformedPathError
//	if errors.As(err, &pathErr) {
//	    fmt.Printf("bad expression %q at offset %d\n", pathErr.Expression, pathErr.Offset)
//	}
//
// Note that missing data is never an error: fields that do not exist,
// indices out of range, and empty collections simply contribute no output.
package tperrors
