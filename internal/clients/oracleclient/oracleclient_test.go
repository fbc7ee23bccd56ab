package oracleclient

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Morpher-io/uspd-website-sub000/internal/config"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

const okBody = `{
	"price": "200000000000",
	"decimals": 8,
	"dataTimestamp": 1717171717000,
	"requestTimestamp": 1717171717500,
	"assetPair": "0x4554485f55534400000000000000000000000000000000000000000000000000",
	"signature": "0xdeadbeef"
}`

func newTestOracle(t *testing.T, handler http.HandlerFunc) (*OracleClient, *atomic.Int32) {
	t.Helper()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewOracleClient(&config.OracleConfig{
		URL:           server.URL + "/api/v1/price/eth-usd",
		Timeout:       200 * time.Millisecond,
		MaxRetryTimes: 3,
		RetryInterval: time.Millisecond,
	})
	require.NoError(t, err)

	return client, &requests
}

func TestFetchPrice(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client, requests := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/price/eth-usd", r.URL.Path)
			_, _ = w.Write([]byte(okBody))
		})

		price, err := client.FetchPrice(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "200000000000", price.Price.Dec())
		assert.Equal(t, uint8(8), price.Decimals)
		assert.Equal(t, uint64(1717171717000), price.Timestamp)
		assert.Equal(t, byte('E'), price.AssetPairID[0])
		assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, price.Signature)
		assert.Equal(t, int32(1), requests.Load())
	})

	t.Run("retries on rate limit", func(t *testing.T) {
		var count atomic.Int32
		client, requests := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
			if count.Add(1) <= 2 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(okBody))
		})

		_, err := client.FetchPrice(t.Context())
		require.NoError(t, err)
		assert.Equal(t, int32(3), requests.Load())
	})

	t.Run("non success status is price unavailable", func(t *testing.T) {
		client, requests := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.FetchPrice(t.Context())
		require.ErrorIs(t, err, types.ErrPriceUnavailable)
		assert.Contains(t, err.Error(), "status 502")
		assert.Equal(t, int32(3), requests.Load())
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		client, requests := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.FetchPrice(t.Context())
		require.ErrorIs(t, err, types.ErrPriceUnavailable)
		assert.Equal(t, int32(1), requests.Load())
	})

	t.Run("timeout", func(t *testing.T) {
		client, _ := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		})

		_, err := client.FetchPrice(t.Context())
		require.ErrorIs(t, err, types.ErrPriceUnavailable)
	})

	t.Run("malformed price", func(t *testing.T) {
		client, _ := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"price":"2000.5","decimals":8,"dataTimestamp":1}`))
		})

		_, err := client.FetchPrice(t.Context())
		require.ErrorIs(t, err, types.ErrPriceUnavailable)
		assert.Contains(t, err.Error(), "malformed price response")
	})

	t.Run("zero price", func(t *testing.T) {
		client, _ := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"price":"0","decimals":8,"dataTimestamp":1}`))
		})

		_, err := client.FetchPrice(t.Context())
		require.ErrorIs(t, err, types.ErrPriceUnavailable)
	})
}
