package t212

import (
	"context"
	"encoding/json"
)

// Instruments fetches the full tradable-instrument catalog.
//
// Rate limit: 1 request per 50 seconds. This endpoint is the reason the
// cache package exists; prefer cache.Store.Instruments over calling it
// directly.
func (c *Client) Instruments(ctx context.Context) ([]Instrument, json.RawMessage, error) {
	var out []Instrument
	raw, err := c.get(ctx, "/equity/metadata/instruments", &out)
	if err != nil {
		return nil, nil, err
	}
	return out, raw, nil
}

// Exchanges fetches all exchanges and their working schedules.
//
// Rate limit: 1 request per 30 seconds.
func (c *Client) Exchanges(ctx context.Context) ([]Exchange, json.RawMessage, error) {
	var out []Exchange
	raw, err := c.get(ctx, "/equity/metadata/exchanges", &out)
	if err != nil {
		return nil, nil, err
	}
	return out, raw, nil
}
