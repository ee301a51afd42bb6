package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	safeDialTimeout    = 10 * time.Second
	safeRequestTimeout = 30 * time.Second
	safeMaxRedirects   = 10
)

// isBlockedIP reports whether an address must never be fetched from:
// private ranges, loopback, link-local, and the unspecified address.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// resolveAllowedIPs resolves host and rejects it if any resolved address
// is blocked. Checking every address closes the DNS-rebinding angle where
// one record is public and another is internal.
func resolveAllowedIPs(ctx context.Context, host string) ([]net.IPAddr, error) {
	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	for _, ipAddr := range ips {
		if isBlockedIP(ipAddr.IP) {
			return nil, fmt.Errorf("blocked request to private/loopback IP: %s (%s)", host, ipAddr.IP)
		}
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("no IP addresses found for host: %s", host)
	}
	return ips, nil
}

// newSafeHTTPClient builds the client used for url document inputs. Tool
// callers hand us arbitrary URLs, so the dialer refuses internal
// addresses and every redirect hop is re-resolved and re-checked.
func newSafeHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: safeDialTimeout}

	return &http.Client{
		Timeout: safeRequestTimeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				ips, err := resolveAllowedIPs(ctx, host)
				if err != nil {
					return nil, err
				}
				return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= safeMaxRedirects {
				return fmt.Errorf("stopped after %d redirects", safeMaxRedirects)
			}
			_, err := resolveAllowedIPs(req.Context(), req.URL.Hostname())
			return err
		},
	}
}
