package battle

import "encoding/json"

// Marshal serializes a battle state to the opaque blob persisted by
// internal/store (§3's "Battle State blob").
func Marshal(state *State) ([]byte, error) {
	return json.Marshal(state)
}

// Unmarshal restores a battle state from a persisted blob.
func Unmarshal(data []byte) (*State, error) {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
