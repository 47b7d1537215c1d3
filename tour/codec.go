package tour

import (
	"encoding/json"
	"errors"
	"fmt"
)

type summary struct {
	TotalDistance *float64 `json:"total_distance"`
}

// MarshalJSON encodes the result as a flat list: the tour points followed by
// a {"total_distance": ...} record.
func (r Result) MarshalJSON() ([]byte, error) {
	items := make([]any, 0, len(r.Tour)+1)
	for _, p := range r.Tour {
		items = append(items, p)
	}

	distance := r.Distance
	items = append(items, summary{TotalDistance: &distance})

	return json.Marshal(items)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decode result list: %w", err)
	}
	if len(items) == 0 {
		return errors.New("decode result list: missing total_distance record")
	}

	var sum summary
	if err := json.Unmarshal(items[len(items)-1], &sum); err != nil {
		return fmt.Errorf("decode total_distance: %w", err)
	}
	if sum.TotalDistance == nil {
		return errors.New("decode result list: missing total_distance record")
	}

	tour := make([]Point, len(items)-1)
	for i, item := range items[:len(items)-1] {
		if err := json.Unmarshal(item, &tour[i]); err != nil {
			return fmt.Errorf("decode tour point %d: %w", i, err)
		}
	}

	r.Tour = tour
	r.Distance = *sum.TotalDistance

	return nil
}
