package node

import "fmt"

// Parameters is the per-record parameter bag supplied by the host.
type Parameters map[string]any

// Item is one output record, tagged with the input index that produced it.
type Item struct {
	JSON       any `json:"json"`
	PairedItem int `json:"pairedItem"`
}

// ExecuteOptions controls batch execution.
type ExecuteOptions struct {
	// ContinueOnFail turns per-record failures into {error: message} items.
	ContinueOnFail bool
}

// ItemError annotates a failure with the index of the input record.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// errorItem converts a failure into an inline error marker.
func errorItem(index int, err error) Item {
	return Item{JSON: map[string]any{"error": err.Error()}, PairedItem: index}
}
