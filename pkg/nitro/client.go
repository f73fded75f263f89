// Package nitro is the transport collaborator: a client for fetching
// transaction traces from an Arbitrum Nitro node over JSON-RPC.
package nitro

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/0xsequence/ethkit/ethrpc"
	"github.com/sirupsen/logrus"
)

// headerTransport adds custom headers to requests and respects context
// cancellation.
type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	if req.Context().Err() != nil {
		return nil, req.Context().Err()
	}

	return t.base.RoundTrip(req)
}

// Client talks to a single Nitro node.
type Client struct {
	config *Config
	log    logrus.FieldLogger
	rpc    *ethrpc.Provider
}

// NewClient creates a Client for the configured endpoint.
func NewClient(log logrus.FieldLogger, config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid node configuration: %w", err)
	}

	httpClient := &http.Client{
		// No fixed timeout, the request context controls the lifecycle.
		Transport: &headerTransport{
			headers: config.Headers,
			base: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}

	rpc, err := ethrpc.NewProvider(config.Endpoint, ethrpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create RPC provider for %s: %w", config.Endpoint, err)
	}

	return &Client{
		config: config,
		log:    log.WithFields(logrus.Fields{"component": "nitro", "endpoint": config.Endpoint}),
		rpc:    rpc,
	}, nil
}

// NormalizeTxHash ensures a transaction hash carries the 0x prefix.
func NormalizeTxHash(txHash string) string {
	if len(txHash) >= 2 && txHash[0:2] == "0x" {
		return txHash
	}

	return "0x" + txHash
}
