package cart

import (
	"encoding/json"
	"fmt"
)

// snapshotVersion tags the persisted cart format so the schema can evolve.
const snapshotVersion = 1

// snapshot is the persisted envelope for the cart item list.
type snapshot struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

// EncodeItems serializes items into the versioned storage envelope.
func EncodeItems(items []Item) ([]byte, error) {
	data, err := json.Marshal(snapshot{Version: snapshotVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return data, nil
}

// DecodeItems deserializes a persisted cart. It accepts the current versioned
// envelope and, for carts written before versioning existed, a bare item array.
func DecodeItems(data []byte) ([]Item, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err == nil && snap.Version > 0 {
		return snap.Items, nil
	}

	var legacy []Item
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return legacy, nil
}
