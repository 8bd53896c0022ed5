package util

import (
	"net/http"
	"net/url"
	"time"
)

// Proxy holds explicit proxy URLs for outbound AI calls. Empty fields fall
// back to HTTP_PROXY / HTTPS_PROXY / NO_PROXY from the environment.
type Proxy struct {
	HTTP  string
	HTTPS string
}

// ProxyFunc returns the proxy selector for p.
func (p Proxy) ProxyFunc() func(*http.Request) (*url.URL, error) {
	if p.HTTP == "" && p.HTTPS == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && p.HTTPS != "" {
			return url.Parse(p.HTTPS)
		}
		if p.HTTP != "" {
			return url.Parse(p.HTTP)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// NewHTTPClient builds an HTTP client with the given timeout routed through p.
func NewHTTPClient(timeout time.Duration, p Proxy) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: p.ProxyFunc(),
		},
	}
}
