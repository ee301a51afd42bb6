package extractor

import (
	"encoding/json"
	"fmt"
)

// LeafEncoder converts a raw matched value into an output-tree leaf value.
// Implementations must honor the same external naming policy as the Source
// adapter when a matched value is itself a nested structure selected
// wholesale (for example a whole sub-object matched by a wildcard).
type LeafEncoder interface {
	// Encode serializes rawValue. A nil rawValue maps to a nil leaf.
	Encode(rawValue any) (any, error)
}

// JSONLeafEncoder is the default LeafEncoder: scalars pass through
// unchanged and composite values are serialized to json.RawMessage via
// encoding/json, which applies the same tag-based naming policy as
// ReflectSource.
type JSONLeafEncoder struct{}

// Encode implements LeafEncoder.
func (JSONLeafEncoder) Encode(rawValue any) (any, error) {
	switch rawValue.(type) {
	case nil:
		return nil, nil
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number, json.RawMessage:
		return rawValue, nil
	}

	data, err := json.Marshal(rawValue)
	if err != nil {
		return nil, fmt.Errorf("encode leaf: %w", err)
	}
	return json.RawMessage(data), nil
}

// Ensure JSONLeafEncoder implements LeafEncoder at compile time.
var _ LeafEncoder = JSONLeafEncoder{}
