package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/mrivero/dividend-hunter-backend/internal/model"

	"github.com/shopspring/decimal"
)

// Client is the market data interface consumed by the service layer,
// implemented by FinanceClient and mocked in tests.
type Client interface {
	QueryQuote(symbol string) (Quote, error)
	QueryDividendHistory(symbol string) ([]model.DividendEvent, error)
}

// FinanceClient provides methods for fetching financial data from the Yahoo
// Finance chart API: latest quotes and trailing dividend payment histories.
type FinanceClient struct {
	httpClient *http.Client
	authToken  string
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP
// settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetAuthToken installs an optional bearer token sent with subsequent
// requests. The public chart endpoints work without one; premium data
// providers behind the same client interface require it.
func (c *FinanceClient) SetAuthToken(token string) {
	c.authToken = token
}

// QueryQuote fetches the last few days of daily data for a symbol and
// returns its descriptive metadata plus the most recent closing price.
//
// Parameters:
//   - symbol: Stock ticker symbol (e.g., "AAPL", "MSFT", "O")
//
// Returns an error if the HTTP request fails, the API reports an error, no
// results are returned, or no close price is available.
func (c *FinanceClient) QueryQuote(symbol string) (Quote, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d", symbol)
	response, err := c.queryYahoo(url)
	if err != nil {
		return Quote{}, err
	}
	if len(response.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return ParseQuote(response)
}

// QueryDividendHistory fetches the trailing year of dividend events for a
// symbol.
//
// The chart API reports dividends as an events map keyed by timestamp when
// queried with events=div. A symbol that pays no dividends yields an empty
// slice, not an error.
func (c *FinanceClient) QueryDividendHistory(symbol string) ([]model.DividendEvent, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1mo&range=1y&events=div", symbol)
	response, err := c.queryYahoo(url)
	if err != nil {
		return nil, err
	}
	if len(response.Chart.Result) == 0 {
		return nil, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return ParseDividends(response), nil
}

// ParseQuote extracts symbol metadata and the latest closing price from a
// raw chart response. When the close series is empty it falls back to the
// meta regular market price, which some thinly traded symbols only report.
func ParseQuote(response Response) (Quote, error) {
	result := response.Chart.Result[0]

	quote := Quote{
		Symbol:         result.Meta.Symbol,
		Currency:       result.Meta.Currency,
		ExchangeName:   result.Meta.ExchangeName,
		LongName:       result.Meta.LongName,
		ShortName:      result.Meta.Shortname,
		InstrumentType: result.Meta.InstrumentType,
	}

	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		if len(closes) != len(result.Timestamp) {
			return Quote{}, fmt.Errorf("mismatched data lengths")
		}
		// Walk back to the latest non-zero close; the current day can
		// report a zero placeholder before market open.
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] > 0 {
				quote.Price = closes[i]
				quote.PriceDate = time.Unix(result.Timestamp[i], 0).UTC()
				break
			}
		}
	}

	if quote.Price == 0 {
		if result.Meta.RegularPrice <= 0 {
			return Quote{}, fmt.Errorf("no price data returned for %s", result.Meta.Symbol)
		}
		quote.Price = result.Meta.RegularPrice
	}

	return quote, nil
}

// ParseDividends extracts dividend events from a raw chart response, sorted
// by payment date ascending.
//
// This is the validation boundary for the classifier: rows with a
// non-positive amount or a zero timestamp are dropped here so that
// downstream classification can assume well-formed events.
func ParseDividends(response Response) []model.DividendEvent {
	result := response.Chart.Result[0]

	events := make([]model.DividendEvent, 0, len(result.Events.Dividends))
	for _, div := range result.Events.Dividends {
		if div.Amount <= 0 || div.Date <= 0 {
			continue
		}
		events = append(events, model.DividendEvent{
			PaymentDate: time.Unix(div.Date, 0).UTC(),
			Amount:      decimal.NewFromFloat(div.Amount),
		})
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].PaymentDate.Before(events[j].PaymentDate)
	})
	return events
}

// queryYahoo is an internal helper that executes HTTP requests to Yahoo
// Finance, handling headers, JSON parsing and API-level errors.
func (c *FinanceClient) queryYahoo(url string) (Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
