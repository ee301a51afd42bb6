// Package document loads JSON and YAML documents from files, URLs, readers,
// and byte slices into plain Go values ready for extraction.
//
// The loaded value is the generic representation (map[string]any, []any, and
// scalars) that the default reflection source adapter traverses directly:
//
//	doc, err := document.Load("api.yaml")
//	if err != nil {
//	    return err
//	}
//	tree, err := doc.Extract("$.info.title", "$..description")
package document

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/treepick/treepick"
	"github.com/treepick/treepick/extractor"
	"github.com/treepick/treepick/internal/httputil"
)

// SourceFormat represents the format of a loaded document.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// DefaultMaxFetchSize caps remote document bodies at 32 MiB.
const DefaultMaxFetchSize = 32 << 20

// Document is a loaded document plus its source metadata.
type Document struct {
	// SourcePath is the file path or URL the document was loaded from.
	// Synthetic paths (LoadBytes.json etc.) mark in-memory sources.
	SourcePath string
	// SourceFormat is the detected format of the source
	SourceFormat SourceFormat
	// Data is the decoded document value
	Data any
	// SourceSize is the size of the raw source in bytes
	SourceSize int64
	// LoadTime is how long reading the raw source took
	LoadTime time.Duration
}

// Extract runs the given path expressions against the document with the
// default extractor configuration.
func (d *Document) Extract(paths ...string) (*extractor.Object, error) {
	return extractor.Extract(d.Data, paths...)
}

// Loader loads documents. The zero value is usable and equivalent to
// NewLoader().
type Loader struct {
	// HTTPClient is used for URL loads. If nil, a default client with a
	// 30 second timeout is used.
	HTTPClient *http.Client
	// UserAgent overrides the default User-Agent header for URL loads.
	UserAgent string
	// InsecureSkipVerify disables TLS certificate verification for URL
	// loads. Ignored when HTTPClient is provided.
	InsecureSkipVerify bool
	// MaxFetchSize caps remote document bodies in bytes.
	// 0 means DefaultMaxFetchSize; negative means unlimited.
	MaxFetchSize int64
	// Logger is the structured logger for debug output. If nil, logging
	// is disabled (default).
	Logger extractor.Logger
}

// NewLoader creates a Loader with default settings.
func NewLoader() *Loader {
	return &Loader{}
}

// Load loads a document from a file path or URL (http:// or https://).
// Format is detected from the path extension, the Content-Type header for
// URLs, and finally the content itself.
func (l *Loader) Load(path string) (*Document, error) {
	var (
		data   []byte
		format SourceFormat
		err    error
	)

	loadStart := time.Now()
	if httputil.IsURL(path) {
		var contentType string
		data, contentType, err = httputil.Fetch(l.client(), path, l.userAgent(), l.maxFetchSize())
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(path, contentType)
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("document: failed to read file: %w", err)
		}
		format = detectFormatFromPath(path)
	}
	loadTime := time.Since(loadStart)

	doc, err := l.decode(data, format)
	if err != nil {
		return nil, err
	}
	doc.SourcePath = path
	doc.LoadTime = loadTime
	l.log().Debug("loaded document", "path", path, "format", string(doc.SourceFormat), "bytes", doc.SourceSize)
	return doc, nil
}

// LoadBytes loads a document from a byte slice. Format is detected from the
// content.
func (l *Loader) LoadBytes(data []byte) (*Document, error) {
	doc, err := l.decode(data, SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	doc.SourcePath = "LoadBytes." + string(doc.SourceFormat)
	return doc, nil
}

// LoadReader loads a document from an io.Reader. Format is detected from
// the content.
func (l *Loader) LoadReader(r io.Reader) (*Document, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read data: %w", err)
	}
	doc, err := l.decode(data, SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	doc.SourcePath = "LoadReader." + string(doc.SourceFormat)
	doc.LoadTime = loadTime
	return doc, nil
}

// Load loads a document from a file path or URL with default settings.
func Load(path string) (*Document, error) {
	return NewLoader().Load(path)
}

// LoadBytes loads a document from a byte slice with default settings.
func LoadBytes(data []byte) (*Document, error) {
	return NewLoader().LoadBytes(data)
}

// decode unmarshals data according to format, falling back to content
// detection when the format is unknown.
func (l *Loader) decode(data []byte, format SourceFormat) (*Document, error) {
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	if format == SourceFormatUnknown {
		return nil, fmt.Errorf("document: empty or unrecognizable input")
	}

	var value any
	if format == SourceFormatJSON {
		// JSON fast-path: decode with encoding/json and keep numbers as
		// json.Number so large integers survive the round trip.
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("document: failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("document: failed to parse YAML: %w", err)
		}
	}

	return &Document{
		SourceFormat: format,
		Data:         value,
		SourceSize:   int64(len(data)),
	}, nil
}

func (l *Loader) client() *http.Client {
	if l.HTTPClient != nil {
		if l.InsecureSkipVerify {
			l.log().Warn("InsecureSkipVerify ignored when HTTPClient provided; configure TLS on your client's transport")
		}
		return l.HTTPClient
	}
	if l.InsecureSkipVerify {
		return &http.Client{
			Timeout: httputil.DefaultTimeout * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, //nolint:gosec // User explicitly requested insecure mode
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
	}
	return &http.Client{Timeout: httputil.DefaultTimeout * time.Second}
}

func (l *Loader) userAgent() string {
	if l.UserAgent != "" {
		return l.UserAgent
	}
	return treepick.UserAgent()
}

func (l *Loader) maxFetchSize() int64 {
	switch {
	case l.MaxFetchSize > 0:
		return l.MaxFetchSize
	case l.MaxFetchSize < 0:
		return 0
	default:
		return DefaultMaxFetchSize
	}
}

func (l *Loader) log() extractor.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return extractor.NopLogger{}
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content
// bytes. JSON documents start with '{' or '['; anything else is YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// detectFormatFromURL attempts to detect the format from a URL path and
// Content-Type header
func detectFormatFromURL(urlStr string, contentType string) SourceFormat {
	parsedURL, err := url.Parse(urlStr)
	if err == nil && parsedURL.Path != "" {
		if format := detectFormatFromPath(parsedURL.Path); format != SourceFormatUnknown {
			return format
		}
	}

	switch httputil.NormalizeContentType(contentType) {
	case "application/json":
		return SourceFormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}
