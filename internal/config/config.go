// Package config loads server settings from flags, environment variables
// and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"buxdao-core/internal/discord"
	"buxdao-core/internal/solana"
)

// Well-known accounts.
const (
	DefaultPoolWallet    = "3WNHW6sr1sQdbRjovhPrxgEJdWASZ43egGWMMNrhgoRR"
	DefaultProjectWallet = "CatzBPyMJcQgnAZ9hCtSNzDTrLLsRxerJYwh5LMe87kY"
	DefaultEscrowWallet  = "1BWutmTvYPwDtmw9abTkS4Ssr8no61spGAvW1X6NDix"
)

// Config holds server settings.
type Config struct {
	HTTPAddr          string
	PostgresDSN       string
	UseMemory         bool
	SolanaRPCEndpoint string
	CoinGeckoURL      string
	MagicEdenURL      string
	PoolWallet        string
	ProjectWallet     string
	EscrowWallet      string
	SiteURL           string
	DiscordPublicKey  string
	CORSOrigins       []string
	LogLevel          string
	LogFormat         string
}

// ExcludedWallets returns the wallets never shown on leaderboards.
func (c *Config) ExcludedWallets() []string {
	return []string{c.ProjectWallet, c.EscrowWallet}
}

// Load reads .env (if present) and parses args. Flags default to the
// matching environment variable. Existing environment variables win over .env.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	cfg := &Config{}
	var corsOrigins string

	fs.StringVar(&cfg.HTTPAddr, "http-addr", envOr("HTTP_ADDR", ":3001"), "HTTP listen address")
	fs.StringVar(&cfg.PostgresDSN, "postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	fs.BoolVar(&cfg.UseMemory, "use-memory", false, "Use in-memory storage instead of PostgreSQL")
	fs.StringVar(&cfg.SolanaRPCEndpoint, "rpc-endpoint", envOr("SOLANA_RPC_ENDPOINT", "https://api.mainnet-beta.solana.com"), "Solana RPC HTTP endpoint")
	fs.StringVar(&cfg.CoinGeckoURL, "coingecko-url", envOr("COINGECKO_URL", "https://api.coingecko.com"), "CoinGecko API base URL")
	fs.StringVar(&cfg.MagicEdenURL, "magiceden-url", envOr("MAGICEDEN_URL", "https://api-mainnet.magiceden.dev"), "Magic Eden API base URL")
	fs.StringVar(&cfg.PoolWallet, "lp-wallet", envOr("LP_WALLET", DefaultPoolWallet), "Liquidity pool wallet")
	fs.StringVar(&cfg.ProjectWallet, "project-wallet", envOr("PROJECT_WALLET", DefaultProjectWallet), "Project treasury wallet")
	fs.StringVar(&cfg.EscrowWallet, "escrow-wallet", envOr("ESCROW_WALLET", DefaultEscrowWallet), "Marketplace escrow account")
	fs.StringVar(&cfg.SiteURL, "site-url", envOr("SITE_URL", "https://buxdao.com"), "Public site URL for logos and images")
	fs.StringVar(&cfg.DiscordPublicKey, "discord-public-key", os.Getenv("DISCORD_PUBLIC_KEY"), "Discord application public key (hex)")
	fs.StringVar(&corsOrigins, "cors-origins", envOr("CORS_ORIGINS", "http://localhost:5173,https://buxdao.com,https://www.buxdao.com"), "Comma-separated allowed CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", envOr("LOG_FORMAT", "text"), "Log format (text, json)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.CORSOrigins = splitList(corsOrigins)
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	return cfg, nil
}

// Validate checks required settings and account addresses.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("--http-addr is required")
	}
	if !c.UseMemory && c.PostgresDSN == "" {
		return errors.New("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}
	if c.SiteURL == "" {
		return errors.New("--site-url is required")
	}

	accounts := []struct {
		flag, value string
	}{
		{"--lp-wallet", c.PoolWallet},
		{"--project-wallet", c.ProjectWallet},
		{"--escrow-wallet", c.EscrowWallet},
	}
	for _, a := range accounts {
		if _, err := solana.DecodeAddress(a.value); err != nil {
			return fmt.Errorf("%s: %w", a.flag, err)
		}
	}

	// The treasury signs transactions, so it must be a keypair wallet. The
	// marketplace escrow is a program derived address and never on curve.
	if kind := solana.AccountKind(c.ProjectWallet); kind != solana.KindWallet {
		return fmt.Errorf("--project-wallet: expected a keypair wallet, got a %s", kind)
	}
	if kind := solana.AccountKind(c.EscrowWallet); kind != solana.KindPDA {
		return fmt.Errorf("--escrow-wallet: expected a program derived address, got a %s", kind)
	}

	if c.DiscordPublicKey != "" {
		if _, err := discord.ParsePublicKey(c.DiscordPublicKey); err != nil {
			return fmt.Errorf("--discord-public-key: %w", err)
		}
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("--log-format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
