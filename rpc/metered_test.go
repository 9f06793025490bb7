package rpc

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMeteredTransport(t *testing.T) {
	fail := false
	next := TransportFunc(func(context.Context, string, []byte) ([]byte, error) {
		if fail {
			return nil, errors.New("unavailable")
		}
		return []byte("ok"), nil
	})
	metered := NewMeteredTransport(next)

	bz, err := metered.Request(context.Background(), "/metered.test.Query/Params", nil)
	require.NoError(t, err)
	require.Equal(t, []byte("ok"), bz)

	fail = true
	_, err = metered.Request(context.Background(), "/metered.test.Query/Params", nil)
	require.EqualError(t, err, "unavailable")

	require.Equal(t, float64(1), testutil.ToFloat64(requestsTotal.WithLabelValues("metered.test.Query", "Params", statusOK)))
	require.Equal(t, float64(1), testutil.ToFloat64(requestsTotal.WithLabelValues("metered.test.Query", "Params", statusError)))
}
