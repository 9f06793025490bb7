package client

import (
	"crypto/tls"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// connectGRPC creates a new gRPC connection.
//
// TLS is enabled by default, unless overridden by the `grpc_config.insecure` field.
// Module queries force their own codec per call, so the default codec stays
// in place for the cosmos-sdk account and tx service clients.
func connectGRPC(hostPort string, useInsecure bool) (*grpc.ClientConn, error) {
	creds := credentials.NewTLS(&tls.Config{})
	if useInsecure {
		creds = insecure.NewCredentials()
	}

	return grpc.NewClient(
		hostPort,
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(maxRecvMsgSize)),
	)
}

// maxRecvMsgSize allows large paginated responses such as full proposal lists.
const maxRecvMsgSize = 32 << 20
