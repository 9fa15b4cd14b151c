package shoplist

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorrupt wraps any persisted value that cannot be turned back into a List.
var ErrCorrupt = errors.New("corrupt item data")

// Encode serializes l as a JSON array. An empty list encodes as [].
func Encode(l List) ([]byte, error) {
	if l == nil {
		l = List{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a persisted value. JSON null decodes to an empty list.
// Records breaking the item invariants reject the whole value.
func Decode(b []byte) (List, error) {
	var l List
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if l == nil {
		return List{}, nil
	}
	seen := make(map[string]struct{}, len(l))
	for i, it := range l {
		if it.ID == "" {
			return nil, fmt.Errorf("%w: item %d: missing id", ErrCorrupt, i)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: item %d: duplicate id %q", ErrCorrupt, i, it.ID)
		}
		seen[it.ID] = struct{}{}
		if _, err := validateName(it.Name); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrCorrupt, i, err)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d: %v", ErrCorrupt, i, ErrQuantityInvalid)
		}
		if int64(it.Quantity) > MaxQuantity {
			return nil, fmt.Errorf("%w: item %d: %v", ErrCorrupt, i, ErrQuantityTooLarge)
		}
		if !it.Category.Valid() {
			return nil, fmt.Errorf("%w: item %d: unknown category %q", ErrCorrupt, i, it.Category)
		}
	}
	return l, nil
}
