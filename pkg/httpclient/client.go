// Package httpclient builds the outbound HTTP clients shared by the
// extractor and the streaming proxy.
package httpclient

import (
	"crypto/tls"
	"net/http"
	"time"
)

// New creates an HTTP client with secure transport defaults. A zero timeout
// leaves the request lifetime to the caller's context, which long media
// transfers need.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          50,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: time.Second,
		},
	}
}
