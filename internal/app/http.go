package app

import (
	"net"
	"net/http"
	"time"
)

// newHubHTTPClient returns the HTTP client shared by every hub, viewer and
// asset request. The transport keeps a warm pool towards the handful of hub
// hosts; timeouts are kept reasonable to avoid hangs mid-batch.
func newHubHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   16, // sequential batch; a small warm pool suffices
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}
