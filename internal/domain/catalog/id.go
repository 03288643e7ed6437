package catalog

import (
	"encoding/json"
	"errors"
	"strconv"
)

var ErrInvalidID = errors.New("invalid product id")

// ID is the normalized string form of a product identifier. Two generations of
// the catalog coexist: the legacy store keyed products by a numeric timestamp id,
// the current one by a document id string. Every identifier is normalized to this
// type at the boundary so comparisons never rely on loose coercion.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}

// UnmarshalJSON accepts both identifier generations: a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n.String())
		return nil
	}

	return ErrInvalidID
}

// NormalizeID converts any identifier representation seen in persisted carts or
// API payloads to the canonical string form.
func NormalizeID(v any) ID {
	switch t := v.(type) {
	case ID:
		return t
	case string:
		return ID(t)
	case json.Number:
		return ID(t.String())
	case float64:
		// Legacy numeric ids are integral (Date.now() values); avoid the
		// exponent form float formatting would produce.
		return ID(strconv.FormatInt(int64(t), 10))
	case int:
		return ID(strconv.Itoa(t))
	case int64:
		return ID(strconv.FormatInt(t, 10))
	default:
		return ""
	}
}
