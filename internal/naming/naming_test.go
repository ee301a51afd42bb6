package naming

import "testing"

func TestToPascalCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"user_profile", "UserProfile"},
		{"api-client", "ApiClient"},
		{"already Pascal", "AlreadyPascal"},
		{"UserProfile", "UserProfile"},
		{"a.b.c", "ABC"},
	}
	for _, tt := range tests {
		if got := ToPascalCase(tt.in); got != tt.want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"user_profile", "userProfile"},
		{"UserProfile", "userProfile"},
		{"URLPath", "urlPath"},
		{"ID", "id"},
		{"Name", "name"},
	}
	for _, tt := range tests {
		if got := ToCamelCase(tt.in); got != tt.want {
			t.Errorf("ToCamelCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"UserProfile", "user_profile"},
		{"APIClient", "api_client"},
		{"already_snake", "already_snake"},
		{"some-name", "some_name"},
		{"HTTPStatusCode", "http_status_code"},
		{"ID", "id"},
	}
	for _, tt := range tests {
		if got := ToSnakeCase(tt.in); got != tt.want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"hello", "Hello"},
		{"Hello", "Hello"},
	}
	for _, tt := range tests {
		if got := ToTitleCase(tt.in); got != tt.want {
			t.Errorf("ToTitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
