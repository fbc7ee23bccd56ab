package oracleclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/Morpher-io/uspd-website-sub000/internal/clients/client"
	"github.com/Morpher-io/uspd-website-sub000/internal/config"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

type priceResponse struct {
	Price         string `json:"price"`
	Decimals      uint8  `json:"decimals"`
	DataTimestamp uint64 `json:"dataTimestamp"`
	AssetPair     string `json:"assetPair"`
	Signature     string `json:"signature"`
}

type OracleClient struct {
	httpClient *http.Client
	cfg        *config.OracleConfig
	baseURL    string
	path       string
}

func NewOracleClient(cfg *config.OracleConfig) (*OracleClient, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid oracle url: %w", err)
	}
	path := u.RequestURI()
	u.Path, u.RawPath, u.RawQuery = "", "", ""

	return &OracleClient{
		httpClient: &http.Client{},
		cfg:        cfg,
		baseURL:    u.String(),
		path:       path,
	}, nil
}

func (c *OracleClient) GetBaseURL() string {
	return c.baseURL
}

func (c *OracleClient) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *OracleClient) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *OracleClient) FetchPrice(ctx context.Context) (*types.PriceAttestation, error) {
	type empty struct{}

	callForPrice := func() (*priceResponse, error) {
		opts := &client.HttpClientOptions{Path: c.path}
		return client.SendRequest[empty, priceResponse](ctx, c, http.MethodGet, opts, nil)
	}

	resp, err := clientCallWithRetry(ctx, callForPrice, c.cfg)
	if err != nil {
		return nil, types.NewPriceUnavailableError(fmt.Errorf("failed to fetch price: %w", err))
	}

	attestation, err := resp.toAttestation()
	if err != nil {
		return nil, types.NewPriceUnavailableError(fmt.Errorf("malformed price response: %w", err))
	}

	return attestation, nil
}

func (r *priceResponse) toAttestation() (*types.PriceAttestation, error) {
	price, err := uint256.FromDecimal(r.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", r.Price, err)
	}
	if price.IsZero() {
		return nil, errors.New("price must be positive")
	}
	if r.DataTimestamp == 0 {
		return nil, errors.New("missing data timestamp")
	}

	var assetPair common.Hash
	if r.AssetPair != "" {
		raw, err := hexutil.Decode(r.AssetPair)
		if err != nil {
			return nil, fmt.Errorf("invalid asset pair: %w", err)
		}
		if len(raw) != common.HashLength {
			return nil, fmt.Errorf("asset pair must be %d bytes, got %d", common.HashLength, len(raw))
		}
		assetPair = common.BytesToHash(raw)
	}

	var signature []byte
	if r.Signature != "" {
		signature, err = hexutil.Decode(r.Signature)
		if err != nil {
			return nil, fmt.Errorf("invalid signature: %w", err)
		}
	}

	return &types.PriceAttestation{
		Price:       price,
		Decimals:    r.Decimals,
		Timestamp:   r.DataTimestamp,
		AssetPairID: assetPair,
		Signature:   signature,
	}, nil
}

func clientCallWithRetry[T any](
	ctx context.Context, call retry.RetryableFuncWithData[T], cfg *config.OracleConfig,
) (T, error) {
	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var httpErr *client.HttpError
			if errors.As(err, &httpErr) {
				// 4xx other than 429 will not change on retry
				return httpErr.IsRetryable()
			}
			return !errors.Is(err, context.Canceled)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to fetch price, retrying")
		}))
}
