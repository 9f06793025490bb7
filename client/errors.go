package client

import "errors"

var (
	errInvalidNodeURL      = errors.New("invalid node URL")
	errInvalidRestURL      = errors.New("invalid REST URL")
	errInvalidGrpcHostPort = errors.New("invalid grpc host port")
	errInvalidMetricsAddr  = errors.New("invalid metrics listen address")
	errInvalidPollInterval = errors.New("poll interval cannot be negative")
	errInvalidLogLevel     = errors.New("invalid log level")
	errMissingChainID      = errors.New("chain ID is required to sign transactions")
	errMissingPrivateKey   = errors.New("signer private key is required")
	errInvalidPrivateKey   = errors.New("signer private key must be hex encoded")
)
