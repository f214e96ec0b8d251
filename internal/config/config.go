package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	LedgerAddress         string
	SessionSecret         string
	IntakeDestination     string
	FreeShippingThreshold int64
	ShippingFee           int64
	InstallmentMonths     int
	BalanceCacheTTL       time.Duration
	EligibilityInterval   time.Duration
	RefreshPoolSize       int
	RefreshBatchSize      int
	RedeemSharedBalance   bool
	ShutdownTimeout       time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultSessionSecret       = "change-me-in-production"
	defaultFreeShipping        = 15000
	defaultShippingFee         = 2500
	defaultInstallmentMonths   = 12
	defaultBalanceCacheTTL     = 30 * time.Second
	defaultEligibilityInterval = 15 * time.Second
	defaultRefreshPoolSize     = 4
	defaultRefreshBatchSize    = 32
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		LedgerAddress:         getString(lookup, "LEDGER_SYSTEM_ADDRESS", ""),
		SessionSecret:         getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		IntakeDestination:     getString(lookup, "INTAKE_DESTINATION", ""),
		FreeShippingThreshold: getInt64(lookup, "FREE_SHIPPING_THRESHOLD", defaultFreeShipping),
		ShippingFee:           getInt64(lookup, "SHIPPING_FEE", defaultShippingFee),
		InstallmentMonths:     getInt(lookup, "INSTALLMENT_MONTHS", defaultInstallmentMonths),
		BalanceCacheTTL:       getDuration(lookup, "BALANCE_CACHE_TTL", defaultBalanceCacheTTL),
		EligibilityInterval:   getDuration(lookup, "ELIGIBILITY_POLL_INTERVAL", defaultEligibilityInterval),
		RefreshPoolSize:       getInt(lookup, "REFRESH_POOL_SIZE", defaultRefreshPoolSize),
		RefreshBatchSize:      getInt(lookup, "REFRESH_BATCH_SIZE", defaultRefreshBatchSize),
		RedeemSharedBalance:   getBool(lookup, "REDEEM_SHARED_BALANCE", false),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		eligibilityIntervalStr = cfg.EligibilityInterval.String()
		balanceTTLStr          = cfg.BalanceCacheTTL.String()
		shutdownTimeoutStr     = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.LedgerAddress, "r", cfg.LedgerAddress, "Coin ledger service base URL")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for verifying session tokens")
	fs.StringVar(&cfg.IntakeDestination, "intake-destination", cfg.IntakeDestination, "Default order intake destination")
	fs.Int64Var(&cfg.FreeShippingThreshold, "free-shipping", cfg.FreeShippingThreshold, "Free shipping threshold in cents")
	fs.Int64Var(&cfg.ShippingFee, "shipping-fee", cfg.ShippingFee, "Flat shipping fee in cents")
	fs.IntVar(&cfg.InstallmentMonths, "installments", cfg.InstallmentMonths, "Months for installment display")
	fs.IntVar(&cfg.RefreshPoolSize, "refresh-pool", cfg.RefreshPoolSize, "Number of concurrent eligibility workers")
	fs.IntVar(&cfg.RefreshBatchSize, "refresh-batch", cfg.RefreshBatchSize, "Maximum users per refresh batch")
	fs.StringVar(&eligibilityIntervalStr, "poll-interval", eligibilityIntervalStr, "Interval between eligibility polls")
	fs.StringVar(&balanceTTLStr, "balance-ttl", balanceTTLStr, "Balance snapshot cache TTL")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.BoolVar(&cfg.RedeemSharedBalance, "shared-balance", cfg.RedeemSharedBalance, "Redeem against a shared running balance instead of per-line caps")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.EligibilityInterval, err = time.ParseDuration(eligibilityIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.BalanceCacheTTL, err = time.ParseDuration(balanceTTLStr); err != nil {
		return nil, fmt.Errorf("invalid balance ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = string(content)
	}

	if cfg.FreeShippingThreshold < 0 {
		cfg.FreeShippingThreshold = defaultFreeShipping
	}

	if cfg.ShippingFee < 0 {
		cfg.ShippingFee = defaultShippingFee
	}

	if cfg.InstallmentMonths <= 0 {
		cfg.InstallmentMonths = defaultInstallmentMonths
	}

	if cfg.RefreshPoolSize <= 0 {
		cfg.RefreshPoolSize = defaultRefreshPoolSize
	}

	if cfg.RefreshBatchSize <= 0 {
		cfg.RefreshBatchSize = defaultRefreshBatchSize
	}

	if cfg.EligibilityInterval <= 0 {
		cfg.EligibilityInterval = defaultEligibilityInterval
	}

	if cfg.BalanceCacheTTL <= 0 {
		cfg.BalanceCacheTTL = defaultBalanceCacheTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.LedgerAddress == "" {
		return nil, fmt.Errorf("ledger service address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
