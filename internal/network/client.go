// Package network builds the outbound HTTP clients used to reach AI providers.
package network

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// DefaultTimeout bounds one provider round trip.
const DefaultTimeout = 60 * time.Second

// NewHTTPClient returns a client that routes through proxyURL when set.
// Supported schemes are http, https, socks5 and socks5h.
func NewHTTPClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}
	if strings.TrimSpace(proxyURL) == "" {
		return client, nil
	}
	transport, err := newTransportWithProxy(proxyURL)
	if err != nil {
		return nil, err
	}
	client.Transport = transport
	return client, nil
}

// ValidateProxyURL reports whether proxyURL can be used by NewHTTPClient.
func ValidateProxyURL(proxyURL string) error {
	if strings.TrimSpace(proxyURL) == "" {
		return nil
	}
	_, err := newTransportWithProxy(proxyURL)
	return err
}

// newTransportWithProxy dials SOCKS proxies through x/net/proxy and hands
// HTTP proxies to the standard transport.
func newTransportWithProxy(proxyURL string) (*http.Transport, error) {
	parsed, err := url.Parse(strings.TrimSpace(proxyURL))
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("proxy url %q has no host", proxyURL)
	}

	switch parsed.Scheme {
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if parsed.User != nil {
			auth = &proxy.Auth{User: parsed.User.Username()}
			if password, ok := parsed.User.Password(); ok {
				auth.Password = password
			}
		}
		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 dialer: %w", err)
		}
		transport := &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				if cd, ok := dialer.(proxy.ContextDialer); ok {
					return cd.DialContext(ctx, network, addr)
				}
				return dialer.Dial(network, addr)
			},
		}
		return transport, nil
	case "http", "https":
		return &http.Transport{Proxy: http.ProxyURL(parsed)}, nil
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", parsed.Scheme)
	}
}
