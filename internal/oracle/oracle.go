// Package oracle provides best-effort market inputs for valuation: the SOL
// spot price and the liquidity pool balance. Every failure is absorbed by a
// static fallback.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"buxdao-core/internal/observability"
	"buxdao-core/internal/solana"
)

// Fallback values used when an upstream call fails.
const (
	FallbackSolPriceUSD         = 195.0
	FallbackPoolLamports uint64 = 32_380_991_533 // 32.380991533 SOL
)

// Defaults.
const (
	DefaultCoinGeckoURL = "https://api.coingecko.com"
	DefaultTimeout      = 10 * time.Second

	simplePricePath = "/api/v3/simple/price?ids=solana&vs_currencies=usd"
)

// Metric source labels.
const (
	SourceCoinGecko = "coingecko"
	SourcePool      = "pool_balance"
)

// Oracle fetches the SOL price from CoinGecko and the pool balance over RPC.
// It makes exactly one outbound call per method and never retries.
type Oracle struct {
	httpClient   *http.Client
	coinGeckoURL string
	rpc          solana.RPCClient
	poolWallet   string
	logger       logrus.FieldLogger
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithHTTPClient sets the HTTP client used for price requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Oracle) {
		o.httpClient = c
	}
}

// WithCoinGeckoURL overrides the CoinGecko base URL.
func WithCoinGeckoURL(url string) Option {
	return func(o *Oracle) {
		if url != "" {
			o.coinGeckoURL = strings.TrimRight(url, "/")
		}
	}
}

// New creates an oracle reading the balance of poolWallet through rpc.
func New(rpc solana.RPCClient, poolWallet string, logger logrus.FieldLogger, opts ...Option) *Oracle {
	o := &Oracle{
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		coinGeckoURL: DefaultCoinGeckoURL,
		rpc:          rpc,
		poolWallet:   poolWallet,
		logger:       logger.WithField("component", "oracle"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type simplePriceResponse struct {
	Solana struct {
		USD *float64 `json:"usd"`
	} `json:"solana"`
}

// SolPriceUSD returns the SOL spot price in USD, or FallbackSolPriceUSD.
func (o *Oracle) SolPriceUSD(ctx context.Context) float64 {
	start := time.Now()
	price, err := o.fetchSolPrice(ctx)
	observability.RecordOracleCall(SourceCoinGecko, time.Since(start).Seconds())

	if err != nil {
		o.logger.WithError(err).WithField("fallback", FallbackSolPriceUSD).Warn("sol price unavailable, using fallback")
		observability.RecordOracleFallback(SourceCoinGecko)
		return FallbackSolPriceUSD
	}
	return price
}

func (o *Oracle) fetchSolPrice(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.coinGeckoURL+simplePricePath, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("http status %d", resp.StatusCode)
	}

	var body simplePriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	if body.Solana.USD == nil {
		return 0, errors.New("price missing from response")
	}
	price := *body.Solana.USD
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("unusable price %v", price)
	}
	return price, nil
}

// LiquidityPoolLamports returns the pool wallet balance in lamports, or
// FallbackPoolLamports.
func (o *Oracle) LiquidityPoolLamports(ctx context.Context) uint64 {
	if o.rpc == nil {
		o.logger.Warn("no rpc client configured, using fallback pool balance")
		observability.RecordOracleFallback(SourcePool)
		return FallbackPoolLamports
	}

	start := time.Now()
	lamports, err := o.rpc.GetBalance(ctx, o.poolWallet)
	observability.RecordOracleCall(SourcePool, time.Since(start).Seconds())

	if err != nil {
		o.logger.WithError(err).WithFields(logrus.Fields{
			"wallet":   o.poolWallet,
			"fallback": FallbackPoolLamports,
		}).Warn("pool balance unavailable, using fallback")
		observability.RecordOracleFallback(SourcePool)
		return FallbackPoolLamports
	}
	return lamports
}
