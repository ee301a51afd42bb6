package extractor

import (
	"encoding/json"
	"testing"
)

func TestObjectInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", &Leaf{Value: 1})
	o.Set("a", &Leaf{Value: 2})
	o.Set("b", &Leaf{Value: 3}) // replaces in place, keeps position

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(data), `{"b":3,"a":2}`; got != want {
		t.Errorf("marshal = %s, want %s", got, want)
	}
	if got := o.Keys(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("Keys() = %v, want [b a]", got)
	}
}

func TestArrayNullPadding(t *testing.T) {
	a := NewArray()
	a.set(2, &Leaf{Value: "c"})

	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	if a.At(0) != nil || a.At(1) != nil {
		t.Error("padded slots should be nil placeholders")
	}
	if a.At(-1) != nil || a.At(5) != nil {
		t.Error("out-of-range At() should be nil")
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(data), `[null,null,"c"]`; got != want {
		t.Errorf("marshal = %s, want %s", got, want)
	}
}

func TestNestedMarshal(t *testing.T) {
	inner := NewObject()
	inner.Set("name", &Leaf{Value: "Ada"})
	arr := NewArray()
	arr.set(0, inner)
	arr.set(1, NewObject())
	root := NewObject()
	root.Set("users", arr)
	root.Set("raw", &Leaf{Value: json.RawMessage(`{"x":1}`)})
	root.Set("none", &Leaf{Value: nil})

	data, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"users":[{"name":"Ada"},{}],"raw":{"x":1},"none":null}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestLeafInterfaceNumbers(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"integer number", json.Number("1"), int64(1)},
		{"large integer number", json.Number("9007199254740993"), int64(9007199254740993)},
		{"float number", json.Number("1.5"), float64(1.5)},
		{"plain int passthrough", 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (&Leaf{Value: tt.value}).Interface()
			if err != nil {
				t.Fatalf("Interface: %v", err)
			}
			if got != tt.want {
				t.Errorf("Interface() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestObjectInterface(t *testing.T) {
	arr := NewArray()
	arr.set(1, &Leaf{Value: json.RawMessage(`[1,2]`)})
	root := NewObject()
	root.Set("xs", arr)

	got, err := root.Interface()
	if err != nil {
		t.Fatalf("Interface: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Interface returned %T, want map", got)
	}
	xs, ok := m["xs"].([]any)
	if !ok || len(xs) != 2 {
		t.Fatalf("xs = %#v, want 2-element slice", m["xs"])
	}
	if xs[0] != nil {
		t.Errorf("xs[0] = %#v, want nil placeholder", xs[0])
	}
	decoded, ok := xs[1].([]any)
	if !ok || len(decoded) != 2 {
		t.Errorf("xs[1] = %#v, want decoded [1 2]", xs[1])
	}
}
