package client

import (
	"net"
	"net/http"

	"github.com/pokt-network/poktroll/pkg/polylog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServeMetrics exposes the Prometheus default registry on addr. The
// returned listener stops the server when closed.
func ServeMetrics(logger polylog.Logger, addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error().Err(err).Msg("failed to listen on address for metrics")
		return nil, err
	}

	go func() {
		logger.Info().Str("endpoint", ln.Addr().String()).Msg("serving metrics")
		if err := http.Serve(ln, promhttp.Handler()); err != nil {
			logger.Debug().Err(err).Msg("metrics server stopped")
		}
	}()

	return ln, nil
}
