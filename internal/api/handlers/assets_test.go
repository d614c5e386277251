package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mrivero/dividend-hunter-backend/internal/api/handlers"
	"github.com/mrivero/dividend-hunter-backend/internal/api/request"
	"github.com/mrivero/dividend-hunter-backend/internal/model"
	"github.com/mrivero/dividend-hunter-backend/internal/testutil"
)

// TestAssetHandler_Lookup tests the POST /api/asset/lookup endpoint.
//
// WHY: Lookup is the entry point for adding assets; the frontend depends on
// a stored asset coming back with its classified cadence, and on a 400
// (not a 500) when the symbol is garbage.
func TestAssetHandler_Lookup(t *testing.T) {
	t.Run("POST /api/asset/lookup returns 200 with classified asset", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockMarketClient()
		mock.MockDividends = testutil.MonthlyHistory("0.25", time.Now().UTC())
		handler := handlers.NewAssetHandler(testutil.NewTestAssetService(t, db, mock))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/asset/lookup",
			request.LookupAssetRequest{Symbol: "o"}, nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Lookup(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		asset := testutil.DecodeJSON[model.Asset](t, w)
		if asset.Symbol != "O" {
			t.Errorf("Expected normalized symbol 'O', got '%s'", asset.Symbol)
		}
		if asset.Cadence != model.CadenceMonthly {
			t.Errorf("Expected monthly cadence, got '%s'", asset.Cadence)
		}
	})

	t.Run("POST /api/asset/lookup returns 400 for invalid symbol", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAssetHandler(
			testutil.NewTestAssetService(t, db, testutil.NewMockMarketClient()))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/asset/lookup",
			request.LookupAssetRequest{Symbol: "BAD SYM"}, nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Lookup(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("POST /api/asset/lookup rejects unknown JSON fields", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAssetHandler(
			testutil.NewTestAssetService(t, db, testutil.NewMockMarketClient()))

		req := httptest.NewRequest(http.MethodPost, "/api/asset/lookup",
			strings.NewReader(`{"symbol":"O","bogus":true}`))
		w := httptest.NewRecorder()

		// Execute
		handler.Lookup(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestAssetHandler_GetAllAssets tests the GET /api/asset listing endpoint.
//
// WHY: Filter parameters come in as raw query strings; bad values must be
// rejected with a 400 rather than silently matching nothing.
func TestAssetHandler_GetAllAssets(t *testing.T) {
	t.Run("GET /api/asset returns 200 with empty array", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAssetHandler(
			testutil.NewTestAssetService(t, db, testutil.NewMockMarketClient()))

		req := httptest.NewRequest(http.MethodGet, "/api/asset", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.GetAllAssets(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		contentType := w.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
		}

		var assets []model.Asset
		if err := json.NewDecoder(w.Body).Decode(&assets); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(assets) != 0 {
			t.Errorf("Expected empty array, got %d items", len(assets))
		}
	})

	t.Run("GET /api/asset applies frequency and month filters", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewAsset().WithSymbol("MAR").WithPaymentMonths(3, 6, 9, 12).Build(t, db)
		testutil.NewAsset().WithSymbol("MON").Monthly().Build(t, db)
		handler := handlers.NewAssetHandler(
			testutil.NewTestAssetService(t, db, testutil.NewMockMarketClient()))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/asset",
			map[string]string{"frequency": "quarterly", "month": "3"})
		w := httptest.NewRecorder()

		// Execute
		handler.GetAllAssets(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		assets := testutil.DecodeJSON[[]model.Asset](t, w)
		if len(assets) != 1 || assets[0].Symbol != "MAR" {
			t.Errorf("Expected only MAR, got %d assets", len(assets))
		}
	})

	t.Run("GET /api/asset rejects invalid filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAssetHandler(
			testutil.NewTestAssetService(t, db, testutil.NewMockMarketClient()))

		for name, params := range map[string]map[string]string{
			"bad frequency": {"frequency": "weekly"},
			"month zero":    {"month": "0"},
			"month 13":      {"month": "13"},
			"month text":    {"month": "march"},
		} {
			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/asset", params)
			w := httptest.NewRecorder()

			handler.GetAllAssets(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("%s: expected status 400, got %d", name, w.Code)
			}
		}
	})
}

// TestAssetHandler_GetDelete tests the single-asset GET and DELETE
// endpoints.
//
// WHY: Both resolve the {symbol} URL parameter and must map a missing row
// to 404 so the frontend can distinguish "not tracked yet" from a failure.
func TestAssetHandler_GetDelete(t *testing.T) {
	t.Run("GET /api/asset/{symbol} returns the stored asset", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewAsset().WithSymbol("KO").Build(t, db)
		handler := handlers.NewAssetHandler(
			testutil.NewTestAssetService(t, db, testutil.NewMockMarketClient()))

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/asset/KO",
			map[string]string{"symbol": "KO"})
		w := httptest.NewRecorder()

		// Execute
		handler.GetAsset(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		asset := testutil.DecodeJSON[model.Asset](t, w)
		if asset.Symbol != "KO" {
			t.Errorf("Expected symbol 'KO', got '%s'", asset.Symbol)
		}
	})

	t.Run("GET /api/asset/{symbol} returns 404 for unknown symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAssetHandler(
			testutil.NewTestAssetService(t, db, testutil.NewMockMarketClient()))

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/asset/NOPE",
			map[string]string{"symbol": "NOPE"})
		w := httptest.NewRecorder()

		handler.GetAsset(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("DELETE /api/asset/{symbol} returns 204 and removes the asset", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewAsset().WithSymbol("GONE").Build(t, db)
		handler := handlers.NewAssetHandler(
			testutil.NewTestAssetService(t, db, testutil.NewMockMarketClient()))

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/asset/GONE",
			map[string]string{"symbol": "GONE"})
		w := httptest.NewRecorder()

		// Execute
		handler.DeleteAsset(w, req)

		// Assert
		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d", w.Code)
		}

		// Second delete finds nothing
		req = testutil.NewRequestWithURLParams(http.MethodDelete, "/api/asset/GONE",
			map[string]string{"symbol": "GONE"})
		w = httptest.NewRecorder()
		handler.DeleteAsset(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404 on second delete, got %d", w.Code)
		}
	})
}

// TestAssetHandler_UpdatePlatforms tests the PUT /api/asset/{symbol}/platforms endpoint.
func TestAssetHandler_UpdatePlatforms(t *testing.T) {
	t.Run("replaces platforms and returns the asset", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewAsset().WithSymbol("KO").WithPlatforms("DEGIRO").Build(t, db)
		handler := handlers.NewAssetHandler(
			testutil.NewTestAssetService(t, db, testutil.NewMockMarketClient()))

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/asset/KO/platforms",
			request.UpdatePlatformsRequest{Platforms: []string{"Trading212", "XTB"}},
			map[string]string{"symbol": "KO"})
		w := httptest.NewRecorder()

		// Execute
		handler.UpdatePlatforms(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		asset := testutil.DecodeJSON[model.Asset](t, w)
		if len(asset.Platforms) != 2 || asset.Platforms[0] != "Trading212" {
			t.Errorf("Expected replaced platforms, got %v", asset.Platforms)
		}
	})

	t.Run("returns 404 for unknown symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAssetHandler(
			testutil.NewTestAssetService(t, db, testutil.NewMockMarketClient()))

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/asset/NOPE/platforms",
			request.UpdatePlatformsRequest{Platforms: []string{"DEGIRO"}},
			map[string]string{"symbol": "NOPE"})
		w := httptest.NewRecorder()

		handler.UpdatePlatforms(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
