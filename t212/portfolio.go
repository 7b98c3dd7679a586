package t212

import (
	"context"
	"encoding/json"
)

// Positions fetches all open positions.
//
// Rate limit: 1 request per 5 seconds.
func (c *Client) Positions(ctx context.Context) ([]Position, json.RawMessage, error) {
	var out []Position
	raw, err := c.get(ctx, "/equity/portfolio", &out)
	if err != nil {
		return nil, nil, err
	}
	return out, raw, nil
}

// Position fetches a single open position by ticker.
//
// Rate limit: 1 request per second.
func (c *Client) Position(ctx context.Context, ticker string) (Position, error) {
	var out Position
	if _, err := c.get(ctx, "/equity/portfolio/"+ticker, &out); err != nil {
		return Position{}, err
	}
	return out, nil
}

// SearchPosition looks up a position by ticker via the POST search endpoint.
//
// Rate limit: 1 request per second.
func (c *Client) SearchPosition(ctx context.Context, ticker string) (Position, error) {
	var out Position
	req := map[string]string{"ticker": ticker}
	if _, err := c.post(ctx, "/equity/portfolio/ticker", req, &out); err != nil {
		return Position{}, err
	}
	return out, nil
}
