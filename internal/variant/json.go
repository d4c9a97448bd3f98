package variant

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders Null/Bool/Int/Real/String as JSON scalars, List as an
// array and Table as an object with sorted keys.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool, KindInt, KindReal, KindString:
		return json.Marshal(v.payload)
	case KindList:
		return json.Marshal(v.payload.([]Value))
	case KindTable:
		// encoding/json sorts map keys
		return json.Marshal(v.payload.(map[string]Value))
	default:
		return nil, fmt.Errorf("variant: invalid kind %d", v.kind)
	}
}
