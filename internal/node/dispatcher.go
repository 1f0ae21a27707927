package node

import (
	"context"
	"time"

	"payfunnels/internal/provider"

	"github.com/rs/zerolog/log"
)

// Dispatcher executes one action per input record against the remote API
type Dispatcher struct {
	api API
}

// NewDispatcher creates a dispatcher over api
func NewDispatcher(api API) *Dispatcher {
	return &Dispatcher{api: api}
}

// Execute processes inputs sequentially. Credentials are checked once before
// any call. In strict mode the first failure stops the batch; the items
// already produced are returned alongside an *ItemError.
func (d *Dispatcher) Execute(ctx context.Context, cred provider.Credentials, inputs []Parameters, opts ExecuteOptions) ([]Item, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(inputs))
	for i, params := range inputs {
		items, err := d.executeOne(ctx, cred, i, params)
		if err != nil {
			if opts.ContinueOnFail {
				log.Warn().
					Err(err).
					Int("item", i).
					Msg("action failed, continuing")
				out = append(out, errorItem(i, err))
				continue
			}
			log.Error().
				Err(err).
				Int("item", i).
				Msg("action failed")
			return out, &ItemError{Index: i, Err: err}
		}
		out = append(out, items...)
	}

	return out, nil
}

// executeOne parses and runs the action of a single record
func (d *Dispatcher) executeOne(ctx context.Context, cred provider.Credentials, index int, params Parameters) ([]Item, error) {
	action, err := ParseAction(params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := action.Call(ctx, d.api, cred)
	if err != nil {
		return nil, err
	}

	items := Normalize(index, body)
	log.Debug().
		Int("item", index).
		Str("resource", string(action.Resource())).
		Str("operation", string(action.Operation())).
		Int("results", len(items)).
		Dur("duration", time.Since(start)).
		Msg("action executed")

	return items, nil
}

// Normalize flattens a decoded response: each element of an array becomes
// its own item, anything else becomes a single item. All carry index.
func Normalize(index int, body any) []Item {
	if elems, ok := body.([]any); ok {
		items := make([]Item, 0, len(elems))
		for _, e := range elems {
			items = append(items, Item{JSON: e, PairedItem: index})
		}
		return items
	}
	return []Item{{JSON: body, PairedItem: index}}
}
