package client

import (
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Default configuration values
const (
	defaultBech32Prefix = "sei"
	defaultPollInterval = time.Second
	defaultLogLevel     = "info"
	defaultGas          = "200000"
)

// Config holds everything needed to build a Client.
type Config struct {
	// GRPCConfig configures the connection used for gRPC queries, account
	// lookups and transaction broadcasts.
	GRPCConfig GRPCConfig `yaml:"grpc_config"`
	// RpcURL is the cometbft RPC endpoint polled for new blocks (e.g., "http://localhost:26657")
	RpcURL string `yaml:"rpc_url"`
	// RestURL, when set, routes queries through the REST gateway instead of gRPC.
	RestURL string `yaml:"rest_url"`
	// ChainID is signed into every transaction.
	ChainID      string `yaml:"chain_id"`
	Bech32Prefix string `yaml:"bech32_prefix"`
	// Signer is optional. Without it every Tx action fails with a missing wallet error.
	Signer  *SignerConfig `yaml:"signer"`
	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logger  LoggerConfig  `yaml:"logger"`
}

// GRPCConfig configures the connection to a full node's gRPC endpoint.
type GRPCConfig struct {
	// HostPort for gRPC connections (e.g., "localhost:9090")
	HostPort string `yaml:"host_port"`
	// UseInsecureGRPCConn disables TLS for local development
	UseInsecureGRPCConn bool `yaml:"insecure"`
}

type SignerConfig struct {
	PrivateKeyHex string `yaml:"private_key_hex"`
	// Gas is the gas limit used by the CLI when no fee is given.
	Gas string `yaml:"gas"`
}

type StoreConfig struct {
	// PollInterval is how often the block watcher checks the chain height.
	PollInterval time.Duration `yaml:"poll_interval"`
}

type MetricsConfig struct {
	// Enabled wraps the query transport with Prometheus request metrics.
	Enabled bool `yaml:"enabled"`
	// Addr serves the metrics over HTTP when set (e.g., ":9090").
	Addr string `yaml:"addr"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig reads the YAML file at path, fills in defaults and validates
// the result.
func LoadConfig(path string) (Config, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("LoadConfig: error reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(bz, &cfg); err != nil {
		return Config{}, fmt.Errorf("LoadConfig: error parsing %s: %w", path, err)
	}

	cfg.hydrateDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("LoadConfig: %w", err)
	}
	return cfg, nil
}

// Validate ensures all configuration values are valid and compatible
func (c Config) Validate() error {
	if err := c.GRPCConfig.Validate(); err != nil {
		return err
	}
	if !isValidURL(c.RpcURL) {
		return errInvalidNodeURL
	}
	if c.RestURL != "" && !isValidURL(c.RestURL) {
		return errInvalidRestURL
	}
	if c.Metrics.Addr != "" && !isValidListenAddr(c.Metrics.Addr) {
		return errInvalidMetricsAddr
	}
	if c.Store.PollInterval < 0 {
		return errInvalidPollInterval
	}
	if _, err := zerolog.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("%w: %w", errInvalidLogLevel, err)
	}
	if c.Signer != nil {
		if c.ChainID == "" {
			return errMissingChainID
		}
		if err := c.Signer.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate ensures the gRPC configuration is valid
func (c GRPCConfig) Validate() error {
	if !isValidHostPort(c.HostPort) {
		return errInvalidGrpcHostPort
	}
	return nil
}

func (c SignerConfig) Validate() error {
	if c.PrivateKeyHex == "" {
		return errMissingPrivateKey
	}
	if _, err := hex.DecodeString(c.PrivateKeyHex); err != nil {
		return fmt.Errorf("%w: %w", errInvalidPrivateKey, err)
	}
	return nil
}

// hydrateDefaults fills in any missing configuration with sensible defaults
func (c *Config) hydrateDefaults() {
	if c.Bech32Prefix == "" {
		c.Bech32Prefix = defaultBech32Prefix
	}
	if c.Store.PollInterval == 0 {
		c.Store.PollInterval = defaultPollInterval
	}
	if c.Logger.Level == "" {
		c.Logger.Level = defaultLogLevel
	}
	if c.Signer != nil && c.Signer.Gas == "" {
		c.Signer.Gas = defaultGas
	}
}

// isValidURL validates that a string can be parsed as a complete URL
func isValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	if u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// isValidListenAddr accepts host:port with an optional host, e.g. ":9090".
func isValidListenAddr(addr string) bool {
	_, port, err := net.SplitHostPort(addr)
	return err == nil && port != ""
}

// isValidHostPort validates that a string represents a valid host:port combination
func isValidHostPort(hostPort string) bool {
	host, port, err := net.SplitHostPort(hostPort)

	if err != nil {
		return false
	}

	if host == "" || port == "" {
		return false
	}

	return true
}
