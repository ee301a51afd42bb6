// Package httputil provides shared HTTP fetch helpers for loading remote
// documents.
package httputil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultTimeout is the default HTTP client timeout for document fetches.
const DefaultTimeout = 30 // seconds

// IsURL determines if the given path is a URL (http:// or https://)
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Fetch retrieves the content at urlStr with the given client. The response
// body is limited to maxSize bytes; a larger body is an error, not a
// truncation. It returns the body and the Content-Type header.
func Fetch(client *http.Client, urlStr, userAgent string, maxSize int64) ([]byte, string, error) {
	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("httputil: failed to create request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("httputil: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("httputil: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var body io.Reader = resp.Body
	if maxSize > 0 {
		body = io.LimitReader(resp.Body, maxSize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("httputil: failed to read response body: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, "", fmt.Errorf("httputil: response exceeds %d byte limit", maxSize)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// NormalizeContentType strips parameters (charset etc.) and lowercases the
// media type so callers can switch on it directly.
func NormalizeContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
