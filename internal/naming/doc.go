// Package naming provides shared case conversion utilities for treepick
// packages.
//
// This internal package contains the string transformations behind the
// ReflectSource naming conventions: ToSnakeCase, ToCamelCase, ToPascalCase,
// and ToTitleCase. They render Go struct field names as external field
// names when no struct tag supplies one.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
