package t212

// CashBalance is the account cash summary from /equity/account/cash.
type CashBalance struct {
	Free     float64 `json:"free"`
	Total    float64 `json:"total"`
	PPL      float64 `json:"ppl"`
	Result   float64 `json:"result"`
	Cash     float64 `json:"cash"`
	Invested float64 `json:"invested"`
	Blocked  float64 `json:"blocked"`
}

// AccountInfo is the account metadata from /equity/account/info.
type AccountInfo struct {
	ID           int64  `json:"id"`
	CurrencyCode string `json:"currencyCode"`
}

// Position is one open holding. Ticker is the only link to an Instrument;
// the referenced instrument may be absent from the catalog.
type Position struct {
	Ticker          string  `json:"ticker"`
	Quantity        float64 `json:"quantity"`
	AveragePrice    float64 `json:"averagePrice"`
	CurrentPrice    float64 `json:"currentPrice"`
	PPL             float64 `json:"ppl"`
	FxPPL           float64 `json:"fxPpl"`
	InitialFillDate string  `json:"initialFillDate"`
	Frontend        string  `json:"frontend"`
}

// Value returns the market value of the position.
func (p Position) Value() float64 {
	return p.Quantity * p.CurrentPrice
}

// Instrument is one entry of the tradable-instrument catalog. Instruments
// are immutable snapshots; identity is the ticker.
type Instrument struct {
	Ticker           string  `json:"ticker"`
	Type             string  `json:"type"`
	ISIN             string  `json:"isin"`
	CurrencyCode     string  `json:"currencyCode"`
	Name             string  `json:"name"`
	ShortName        string  `json:"shortName"`
	Exchange         string  `json:"exchange"`
	MinTradeQuantity float64 `json:"minTradeQuantity"`
	MaxOpenQuantity  float64 `json:"maxOpenQuantity"`
	AddedOn          string  `json:"addedOn"`
}

// Exchange is one trading venue from /equity/metadata/exchanges.
type Exchange struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// IndexInstruments builds a ticker lookup table from a catalog snapshot.
func IndexInstruments(instruments []Instrument) map[string]Instrument {
	byTicker := make(map[string]Instrument, len(instruments))
	for _, inst := range instruments {
		byTicker[inst.Ticker] = inst
	}
	return byTicker
}
