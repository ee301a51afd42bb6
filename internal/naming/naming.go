package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, space) trigger capitalization of the
// next letter; an already-Pascal name passes through unchanged.
// Example: "user_profile" -> "UserProfile"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	titleCaser := cases.Title(language.Und, cases.NoLower)

	var result strings.Builder
	result.Grow(len(s))
	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || r == ' ' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteString(titleCaser.String(string(r)))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the leading acronym or letter lowercased.
// Example: "user_profile" -> "userProfile"
// Example: "URLPath" -> "urlPath"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}

	runes := []rune(pascal)
	// Lowercase the leading run of uppercase letters, keeping the last one
	// capitalized when it starts the next word ("URLPath" -> "urlPath").
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	if upper == 0 {
		return pascal
	}
	if upper < len(runes) && upper > 1 {
		upper--
	}
	for i := 0; i < upper; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// ToSnakeCase converts a string to snake_case, keeping acronym runs
// together. Existing separators (hyphen, dot, space) become underscores.
// Example: "UserProfile" -> "user_profile"
// Example: "APIClient" -> "api_client"
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var result strings.Builder
	result.Grow(len(s) + 4)

	for i, r := range runes {
		switch {
		case r == '-' || r == '.' || r == ' ' || r == '_':
			result.WriteByte('_')
		case unicode.IsUpper(r):
			if i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && !unicode.IsUpper(runes[i+1]) && unicode.IsLetter(runes[i+1]))) {
				result.WriteByte('_')
			}
			result.WriteRune(unicode.ToLower(r))
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToTitleCase converts the first letter to uppercase using Unicode-correct
// title casing.
// Example: "hello" -> "Hello"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	first := cases.Title(language.Und, cases.NoLower).String(string(runes[0]))
	return first + string(runes[1:])
}
