package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"http://example.com/doc.json", true},
		{"https://example.com/doc.yaml", true},
		{"ftp://example.com/doc.json", false},
		{"/tmp/doc.json", false},
		{"doc.json", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.path); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent/1.0" {
			t.Errorf("User-Agent = %q, want test-agent/1.0", got)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"a":1}`))
	}))
	defer srv.Close()

	data, contentType, err := Fetch(srv.Client(), srv.URL, "test-agent/1.0", 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("data = %s", data)
	}
	if got := NormalizeContentType(contentType); got != "application/json" {
		t.Errorf("content type = %q, want application/json", got)
	}
}

func TestFetchSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	if _, _, err := Fetch(srv.Client(), srv.URL, "", 100); err == nil {
		t.Error("expected size-limit error")
	}
	if _, _, err := Fetch(srv.Client(), srv.URL, "", 2048); err != nil {
		t.Errorf("within limit: %v", err)
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, _, err := Fetch(srv.Client(), srv.URL, "", 0); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestNormalizeContentType(t *testing.T) {
	tests := []struct{ in, want string }{
		{"application/json; charset=utf-8", "application/json"},
		{"Text/YAML", "text/yaml"},
		{" application/x-yaml ", "application/x-yaml"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeContentType(tt.in); got != tt.want {
			t.Errorf("NormalizeContentType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
