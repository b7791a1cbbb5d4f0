package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress    string
	DatabaseURI   string
	StorageDriver string

	ProviderBaseURL     string
	ProviderAPIKey      string
	ProviderTimeout     time.Duration
	ProviderCatalogFile string

	PaymentBaseURL   string
	PaymentSecretKey string

	JWTSecret    string
	AdminKeyHash string

	ReconcileInterval  time.Duration
	ReconcileBatch     int
	SubmitWorkers      int
	SubmitQueueSize    int
	InstantNetworks    []string
	PushEnabledDefault bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
	NotifyTopic  string

	LogLevel         string
	MetricsNamespace string
	ShutdownTimeout  time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultStorageDriver     = StorageDriverPostgres
	defaultJWTSecret         = "change-me-in-production"
	defaultProviderTimeout   = 25 * time.Second
	defaultReconcileInterval = 2 * time.Minute
	defaultReconcileBatch    = 100
	defaultSubmitWorkers     = 4
	defaultSubmitQueueSize   = 256
	defaultNotifyTopic       = "sms.outbound"
	defaultLogLevel          = "info"
	defaultMetricsNamespace  = "bundlemart"
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		StorageDriver:       getString(lookup, "STORAGE_DRIVER", defaultStorageDriver),
		ProviderBaseURL:     getString(lookup, "PROVIDER_BASE_URL", ""),
		ProviderAPIKey:      getString(lookup, "PROVIDER_API_KEY", ""),
		ProviderTimeout:     getDuration(lookup, "PROVIDER_TIMEOUT", defaultProviderTimeout),
		ProviderCatalogFile: getString(lookup, "PROVIDER_CATALOG_FILE", ""),
		PaymentBaseURL:      getString(lookup, "PAYMENT_BASE_URL", ""),
		PaymentSecretKey:    getString(lookup, "PAYMENT_SECRET_KEY", ""),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AdminKeyHash:        getString(lookup, "ADMIN_KEY_HASH", ""),
		ReconcileInterval:   getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:      getInt(lookup, "RECONCILE_BATCH_SIZE", defaultReconcileBatch),
		SubmitWorkers:       getInt(lookup, "SUBMIT_WORKERS", defaultSubmitWorkers),
		SubmitQueueSize:     getInt(lookup, "SUBMIT_QUEUE_SIZE", defaultSubmitQueueSize),
		InstantNetworks:     getList(lookup, "INSTANT_NETWORKS"),
		PushEnabledDefault:  getBool(lookup, "PUSH_ENABLED", true),
		RedisAddr:           getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:       getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:             getInt(lookup, "REDIS_DB", 0),
		KafkaBrokers:        getList(lookup, "KAFKA_BROKERS"),
		NotifyTopic:         getString(lookup, "NOTIFY_TOPIC", defaultNotifyTopic),
		LogLevel:            getString(lookup, "LOG_LEVEL", defaultLogLevel),
		MetricsNamespace:    getString(lookup, "METRICS_NAMESPACE", defaultMetricsNamespace),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("bundlemart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		providerTimeoutStr   = cfg.ProviderTimeout.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "Storage driver (postgres or memory)")
	fs.StringVar(&cfg.ProviderBaseURL, "p", cfg.ProviderBaseURL, "Data bundle provider base URL")
	fs.StringVar(&providerTimeoutStr, "provider-timeout", providerTimeoutStr, "Timeout for a single provider call")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between reconciliation sweeps")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Orders fetched per reconciliation page")
	fs.IntVar(&cfg.SubmitWorkers, "submit-workers", cfg.SubmitWorkers, "Number of concurrent submission workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ProviderTimeout, err = time.ParseDuration(providerTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid provider timeout: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = defaultProviderTimeout
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.SubmitWorkers <= 0 {
		cfg.SubmitWorkers = defaultSubmitWorkers
	}

	if cfg.SubmitQueueSize <= 0 {
		cfg.SubmitQueueSize = defaultSubmitQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided")
		}
	case StorageDriverMemory:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.ProviderBaseURL == "" {
		return nil, fmt.Errorf("provider base URL must be provided")
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

// getList splits a comma separated variable, dropping blanks.
func getList(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
