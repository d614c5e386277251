package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. Only the fields this application consumes are mapped: symbol
// metadata, closing prices, and dividend events (present when the chart is
// queried with events=div).
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency         string  `json:"currency"`
				Symbol           string  `json:"symbol"`
				ExchangeName     string  `json:"exchangeName"`
				FullExchangeName string  `json:"fullExchangeName"`
				LongName         string  `json:"longName"`
				Shortname        string  `json:"shortName"`
				InstrumentType   string  `json:"instrumentType"`
				RegularPrice     float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp []int64 `json:"timestamp"`
			Events    struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// Quote is the parsed snapshot of one symbol: descriptive metadata plus the
// latest closing price.
type Quote struct {
	Symbol         string  `json:"symbol"`
	Currency       string  `json:"currency"`
	ExchangeName   string  `json:"exchangeName"`
	LongName       string  `json:"longName"`
	ShortName      string  `json:"shortName"`
	InstrumentType string  `json:"instrumentType"`
	Price          float64 `json:"price"`
	PriceDate      time.Time
}
