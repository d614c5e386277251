package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrivero/dividend-hunter-backend/internal/model"
	"github.com/mrivero/dividend-hunter-backend/internal/yahoo"
)

// MockMarketClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockMarketClient struct {
	// MockQuote is the quote to return from QueryQuote
	MockQuote yahoo.Quote
	// MockDividends is the history to return from QueryDividendHistory
	MockDividends []model.DividendEvent
	// MockError is the error to return from query methods
	MockError error
	// ErrorSymbols lists symbols whose queries fail with MockError while
	// other symbols succeed
	ErrorSymbols map[string]bool
	// QueryCount tracks how many times a query method was called
	QueryCount int
}

// NewMockMarketClient creates a mock market data client with default test
// data: a $100 stock that has paid quarterly for the last year.
func NewMockMarketClient() *MockMarketClient {
	return &MockMarketClient{
		MockQuote: yahoo.Quote{
			Symbol:    "TEST",
			Currency:  "USD",
			LongName:  "Test Asset Inc.",
			ShortName: "Test Asset",
			Price:     100,
			PriceDate: time.Now().UTC(),
		},
		MockDividends: QuarterlyHistory("0.50", time.Now().UTC()),
	}
}

// QueryQuote returns the configured MockQuote and MockError.
func (m *MockMarketClient) QueryQuote(symbol string) (yahoo.Quote, error) {
	m.QueryCount++
	if m.failsFor(symbol) {
		return yahoo.Quote{}, m.MockError
	}
	quote := m.MockQuote
	quote.Symbol = symbol
	return quote, nil
}

// QueryDividendHistory returns the configured MockDividends and MockError.
func (m *MockMarketClient) QueryDividendHistory(symbol string) ([]model.DividendEvent, error) {
	m.QueryCount++
	if m.failsFor(symbol) {
		return nil, m.MockError
	}
	return m.MockDividends, nil
}

func (m *MockMarketClient) failsFor(symbol string) bool {
	if m.MockError == nil {
		return false
	}
	if len(m.ErrorSymbols) == 0 {
		return true
	}
	return m.ErrorSymbols[symbol]
}

// WithError configures the mock to return the specified error.
func (m *MockMarketClient) WithError(err error) *MockMarketClient {
	m.MockError = err
	return m
}

// WithErrorFor configures the mock to fail only for the given symbols.
func (m *MockMarketClient) WithErrorFor(err error, symbols ...string) *MockMarketClient {
	m.MockError = err
	m.ErrorSymbols = make(map[string]bool, len(symbols))
	for _, s := range symbols {
		m.ErrorSymbols[s] = true
	}
	return m
}

// QuarterlyHistory builds four quarterly dividend events of the given
// per-payment amount ending near asOf, spaced 91 days apart.
func QuarterlyHistory(amount string, asOf time.Time) []model.DividendEvent {
	per := decimal.RequireFromString(amount)
	events := make([]model.DividendEvent, 0, 4)
	for i := 3; i >= 0; i-- {
		events = append(events, model.DividendEvent{
			PaymentDate: asOf.AddDate(0, 0, -10-91*i),
			Amount:      per,
		})
	}
	return events
}

// MonthlyHistory builds twelve monthly dividend events of the given
// per-payment amount ending near asOf.
func MonthlyHistory(amount string, asOf time.Time) []model.DividendEvent {
	per := decimal.RequireFromString(amount)
	events := make([]model.DividendEvent, 0, 12)
	for i := 11; i >= 0; i-- {
		events = append(events, model.DividendEvent{
			PaymentDate: asOf.AddDate(0, -i, -10),
			Amount:      per,
		})
	}
	return events
}
