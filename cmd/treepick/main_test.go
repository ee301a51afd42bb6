package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"extrat", "extract"},
		{"extractt", "extract"},
		{"xtract", "extract"},
		{"chek", "check"},
		{"cehck", "check"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"extraction-tool", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := suggestCommand(tt.input)
			if got != tt.expected {
				t.Errorf("suggestCommand(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "abc", 3},
		{"extract", "extract", 0},
		{"extrat", "extract", 1},
		{"check", "chek", 1},
		{"mcp", "map", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHandleExtract(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "doc.yaml")
	if err := os.WriteFile(docPath, []byte("user:\n  name: Ada\n  age: 36\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out.json")

	err := handleExtract([]string{"-p", "$.user.name", "-o", outPath, docPath})
	if err != nil {
		t.Fatalf("handleExtract: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, `"name": "Ada"`) {
		t.Errorf("output missing name: %s", got)
	}
	if strings.Contains(got, "age") {
		t.Errorf("output should not contain unselected field: %s", got)
	}
}

func TestHandleExtract_YAMLFormat(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(docPath, []byte(`{"items": ["a", "b"], "count": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out.yaml")

	err := handleExtract([]string{"-p", "$.items[0]", "-p", "$.count", "-format", "yaml", "-o", outPath, docPath})
	if err != nil {
		t.Fatalf("handleExtract: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "items:") {
		t.Errorf("unexpected yaml output: %s", data)
	}
	// Numbers stay numbers in YAML output, never quoted strings.
	if !strings.Contains(string(data), "count: 2") || strings.Contains(string(data), `"2"`) {
		t.Errorf("numeric value should render unquoted: %s", data)
	}
}

func TestHandleExtract_Errors(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(docPath, []byte(`{"a": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"no document", []string{"-p", "$.a"}},
		{"no paths", []string{docPath}},
		{"bad format", []string{"-p", "$.a", "-format", "xml", docPath}},
		{"malformed path", []string{"-p", "$.a[", docPath}},
		{"missing file", []string{"-p", "$.a", filepath.Join(dir, "nope.json")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := handleExtract(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHandleCheck(t *testing.T) {
	if err := handleCheck([]string{"$.a.b", "$..name", "$[1:3]"}); err != nil {
		t.Errorf("valid expressions: %v", err)
	}
	if err := handleCheck([]string{"$.a", "$.broken["}); err == nil {
		t.Error("expected error for malformed expression")
	}
	if err := handleCheck(nil); err == nil {
		t.Error("expected error for no arguments")
	}
}
