package alpaca

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetAssets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/assets", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.Equal(t, "us_equity", r.URL.Query().Get("asset_class"))
		assert.Equal(t, "NASDAQ", r.URL.Query().Get("exchange"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[
			{
				"id": "f801f835-bfe6-4a9d-a6b1-ccbb84bfd75f",
				"class": "us_equity",
				"exchange": "NASDAQ",
				"symbol": "AAPL",
				"status": "active",
				"tradable": true,
				"marginable": true,
				"shortable": true,
				"easy_to_borrow": true
			},
			{
				"id": "69b15845-7c63-4586-b274-1cfdfe9df3d8",
				"class": "us_equity",
				"exchange": "NASDAQ",
				"symbol": "GOOG",
				"status": "active",
				"tradable": true,
				"marginable": true,
				"shortable": false,
				"easy_to_borrow": false
			}
		]`))
	}))
	defer server.Close()

	client := New(Options{
		LiveKeyID:   "k",
		LiveSecret:  "s",
		LiveBaseURL: server.URL,
	})

	assets, err := client.GetAssets(context.Background(), AssetFilter{
		Status:   "active",
		Class:    "us_equity",
		Exchange: "NASDAQ",
	})
	require.NoError(t, err)
	require.Len(t, assets, 2)

	assert.Equal(t, "AAPL", assets[0].Symbol)
	assert.True(t, assets[0].Tradable)
	assert.Equal(t, "GOOG", assets[1].Symbol)
	assert.False(t, assets[1].Shortable)
}

func TestClient_GetAssets_NoFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(Options{
		LiveKeyID:   "k",
		LiveSecret:  "s",
		LiveBaseURL: server.URL,
	})

	assets, err := client.GetAssets(context.Background(), AssetFilter{})
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestClient_GetAsset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/assets/AAPL", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"id": "f801f835-bfe6-4a9d-a6b1-ccbb84bfd75f",
			"class": "us_equity",
			"exchange": "NASDAQ",
			"symbol": "AAPL",
			"status": "active",
			"tradable": true
		}`))
	}))
	defer server.Close()

	client := New(Options{
		LiveKeyID:   "k",
		LiveSecret:  "s",
		LiveBaseURL: server.URL,
	})

	asset, err := client.GetAsset(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, asset)

	assert.Equal(t, "AAPL", asset.Symbol)
	assert.Equal(t, "NASDAQ", asset.Exchange)
	assert.Equal(t, "us_equity", asset.Class)
}

func TestClient_GetAsset_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":40410000,"message":"asset not found"}`))
	}))
	defer server.Close()

	client := New(Options{
		LiveKeyID:   "k",
		LiveSecret:  "s",
		LiveBaseURL: server.URL,
	})

	asset, err := client.GetAsset(context.Background(), "UNKNOWN_SYMBOL")
	require.Error(t, err)
	assert.Nil(t, asset)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "error should be *APIError")
	assert.True(t, apiErr.IsNotFound())
}

func TestClient_GetAsset_EmptySymbol(t *testing.T) {
	client := New(Options{LiveKeyID: "k", LiveSecret: "s"})

	asset, err := client.GetAsset(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, asset)
	assert.Contains(t, err.Error(), "symbol is required")
}
