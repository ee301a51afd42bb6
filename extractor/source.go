package extractor

import (
	"encoding"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/treepick/treepick/internal/naming"
)

// Field is one (external name, value) pair of an object-like source value.
type Field struct {
	Name  string
	Value any
}

// Source supplies field lookup and ordered iteration over an opaque source
// value. It is the engine's only view of the source: implementations may
// use reflection, schema descriptors, or anything else that can enumerate
// fields and resolve names.
//
// IsList and IsObject must be mutually exclusive; a value that is neither
// is a scalar and terminates traversal.
type Source interface {
	// IsList reports whether value is list-like (ordered, indexable).
	IsList(value any) bool

	// IsObject reports whether value is object-like (named fields).
	IsObject(value any) bool

	// ListElements returns the elements of a list-like value in order.
	ListElements(value any) []any

	// ResolveField resolves requestedName against value's fields: primary
	// case-insensitive match against the natural field names, then exact
	// match against each field's explicit external name. It returns the
	// resolved external name and the field value. Implementations must not
	// panic; lookup faults are treated as absent.
	ResolveField(value any, requestedName string) (externalName string, fieldValue any, ok bool)

	// Fields returns all (external name, value) pairs of an object-like
	// value in a stable order, excluding indexer-style members.
	Fields(value any) []Field
}

// NamingConvention selects how untagged struct field names are rendered as
// external names by ReflectSource.
type NamingConvention string

const (
	// ConventionNone keeps the Go field name as-is. This is the default.
	ConventionNone NamingConvention = ""
	// ConventionSnake renders untagged fields in snake_case.
	ConventionSnake NamingConvention = "snake"
	// ConventionCamel renders untagged fields in camelCase.
	ConventionCamel NamingConvention = "camel"
	// ConventionPascal renders untagged fields in PascalCase.
	ConventionPascal NamingConvention = "pascal"
)

// ReflectSource is the default Source adapter: it reads arbitrary Go values
// through reflection. Structs expose their exported fields with
// encoding/json-compatible semantics (tag renames, "-" omission, embedded
// field promotion); maps with string keys expose their entries in sorted
// key order; slices and arrays are lists. Pointers and interfaces are
// followed transparently.
//
// Values implementing json.Marshaler or encoding.TextMarshaler (including
// time.Time) are scalars, as are []byte values.
type ReflectSource struct {
	// TagKey is the struct tag that carries external field names.
	// Defaults to "json" when empty.
	TagKey string
	// Convention renders external names for untagged struct fields.
	Convention NamingConvention
}

// NewReflectSource creates a ReflectSource with the default json tag key.
func NewReflectSource() *ReflectSource {
	return &ReflectSource{TagKey: "json"}
}

var (
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// IsList implements Source.
func (r *ReflectSource) IsList(value any) bool {
	rv := unwrap(reflect.ValueOf(value))
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Slice:
		// []byte is scalar text, not a list.
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	default:
		return false
	}
}

// IsObject implements Source.
func (r *ReflectSource) IsObject(value any) bool {
	rv := unwrap(reflect.ValueOf(value))
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return !isScalarStruct(rv.Type())
	default:
		return false
	}
}

// ListElements implements Source.
func (r *ReflectSource) ListElements(value any) []any {
	rv := unwrap(reflect.ValueOf(value))
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// ResolveField implements Source.
func (r *ReflectSource) ResolveField(value any, requestedName string) (string, any, bool) {
	rv := unwrap(reflect.ValueOf(value))
	if !rv.IsValid() {
		return "", nil, false
	}

	switch rv.Kind() {
	case reflect.Map:
		return r.resolveMapKey(rv, requestedName)
	case reflect.Struct:
		return r.resolveStructField(rv, requestedName)
	default:
		return "", nil, false
	}
}

// Fields implements Source.
func (r *ReflectSource) Fields(value any) []Field {
	rv := unwrap(reflect.ValueOf(value))
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := sortedMapKeys(rv)
		out := make([]Field, 0, len(keys))
		for _, k := range keys {
			out = append(out, Field{Name: k, Value: rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()})
		}
		return out

	case reflect.Struct:
		infos := r.structInfo(rv.Type())
		out := make([]Field, 0, len(infos))
		for _, fi := range infos {
			fv, err := rv.FieldByIndexErr(fi.index)
			if err != nil {
				continue
			}
			out = append(out, Field{Name: fi.external, Value: fv.Interface()})
		}
		return out

	default:
		return nil
	}
}

func (r *ReflectSource) resolveMapKey(rv reflect.Value, requestedName string) (string, any, bool) {
	keyType := rv.Type().Key()
	if keyType.Kind() != reflect.String {
		return "", nil, false
	}

	// Exact key match first, then the case-insensitive scan.
	kv := reflect.ValueOf(requestedName).Convert(keyType)
	if mv := rv.MapIndex(kv); mv.IsValid() {
		return requestedName, mv.Interface(), true
	}
	for _, k := range sortedMapKeys(rv) {
		if strings.EqualFold(k, requestedName) {
			return k, rv.MapIndex(reflect.ValueOf(k).Convert(keyType)).Interface(), true
		}
	}
	return "", nil, false
}

func (r *ReflectSource) resolveStructField(rv reflect.Value, requestedName string) (string, any, bool) {
	infos := r.structInfo(rv.Type())

	// Primary: case-insensitive match against the natural (Go) field name.
	for _, fi := range infos {
		if strings.EqualFold(fi.goName, requestedName) {
			fv, err := rv.FieldByIndexErr(fi.index)
			if err != nil {
				return "", nil, false
			}
			return fi.external, fv.Interface(), true
		}
	}
	// Fallback: exact match against the rendered external name, whether it
	// came from a tag or from the naming convention.
	for _, fi := range infos {
		if fi.external == requestedName {
			fv, err := rv.FieldByIndexErr(fi.index)
			if err != nil {
				return "", nil, false
			}
			return fi.external, fv.Interface(), true
		}
	}
	return "", nil, false
}

// fieldInfo describes one extractable struct field.
type fieldInfo struct {
	goName   string
	external string
	index    []int
}

// structInfoKey keys the per-type field cache by the naming configuration,
// so differently configured sources never share entries.
type structInfoKey struct {
	t          reflect.Type
	tagKey     string
	convention NamingConvention
}

var structInfoCache sync.Map // structInfoKey -> []fieldInfo

func (r *ReflectSource) tagKey() string {
	if r.TagKey == "" {
		return "json"
	}
	return r.TagKey
}

// structInfo computes (and caches) the extractable fields of a struct type
// with encoding/json-compatible semantics.
func (r *ReflectSource) structInfo(t reflect.Type) []fieldInfo {
	key := structInfoKey{t: t, tagKey: r.tagKey(), convention: r.Convention}
	if cached, ok := structInfoCache.Load(key); ok {
		return cached.([]fieldInfo)
	}

	var infos []fieldInfo
	seen := make(map[string]bool)
	var excluded [][]int

	for _, f := range reflect.VisibleFields(t) {
		if f.PkgPath != "" {
			// Unexported. An unexported embedded struct still promotes
			// its exported fields, which VisibleFields lists separately.
			continue
		}
		if underExcluded(excluded, f.Index) {
			continue
		}

		tag := f.Tag.Get(r.tagKey())
		if tag == "-" {
			continue
		}
		tagName, _, _ := strings.Cut(tag, ",")

		if f.Anonymous && tagName == "" {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				// Untagged embedded struct: its fields are promoted in
				// place, so the container itself is not a field.
				continue
			}
		}
		if f.Anonymous && tagName != "" {
			// A tagged embedded struct is a regular named field; its
			// promoted children must not appear alongside it.
			excluded = append(excluded, f.Index)
		}

		external := tagName
		if external == "" {
			external = r.applyConvention(f.Name)
		}
		if seen[external] {
			continue
		}
		seen[external] = true

		infos = append(infos, fieldInfo{
			goName:   f.Name,
			external: external,
			index:    f.Index,
		})
	}

	structInfoCache.Store(key, infos)
	return infos
}

func (r *ReflectSource) applyConvention(name string) string {
	switch r.Convention {
	case ConventionSnake:
		return naming.ToSnakeCase(name)
	case ConventionCamel:
		return naming.ToCamelCase(name)
	case ConventionPascal:
		return naming.ToPascalCase(name)
	default:
		return name
	}
}

// underExcluded reports whether index is nested under any excluded prefix.
func underExcluded(excluded [][]int, index []int) bool {
	for _, prefix := range excluded {
		if len(index) <= len(prefix) {
			continue
		}
		matched := true
		for i, p := range prefix {
			if index[i] != p {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// isScalarStruct reports whether a struct type serializes as a scalar
// (time.Time and friends) rather than as an object.
func isScalarStruct(t reflect.Type) bool {
	if t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		return true
	}
	pt := reflect.PointerTo(t)
	return pt.Implements(jsonMarshalerType) || pt.Implements(textMarshalerType)
}

// unwrap follows pointers and interfaces to the underlying value. The
// returned value is invalid when a nil is encountered along the way.
func unwrap(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func sortedMapKeys(rv reflect.Value) []string {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return keys
}
