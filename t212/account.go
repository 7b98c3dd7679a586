package t212

import (
	"context"
	"encoding/json"
)

// Cash fetches the account cash balance.
//
// Rate limit (documented, not enforced here): 1 request per 2 seconds.
func (c *Client) Cash(ctx context.Context) (CashBalance, json.RawMessage, error) {
	var out CashBalance
	raw, err := c.get(ctx, "/equity/account/cash", &out)
	if err != nil {
		return CashBalance{}, nil, err
	}
	return out, raw, nil
}

// Info fetches the account ID and base currency.
//
// Rate limit: 1 request per 30 seconds.
func (c *Client) Info(ctx context.Context) (AccountInfo, json.RawMessage, error) {
	var out AccountInfo
	raw, err := c.get(ctx, "/equity/account/info", &out)
	if err != nil {
		return AccountInfo{}, nil, err
	}
	return out, raw, nil
}
