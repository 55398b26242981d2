// ABOUTME: Optional SSH+SOCKS5 proxy support for reaching the Share service
// ABOUTME: Builds a DialContext from the SHARE_ALL_PROXY environment variable

package share

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	proxy "github.com/cloudfoundry/socks5-proxy"
)

// proxyDialContextFromEnv returns a dial function tunneling through an
// SSH+SOCKS5 proxy when SHARE_ALL_PROXY is set, or nil to dial directly.
// Supported format: ssh+socks5://user@host:port?private-key=/path/to/key
func proxyDialContextFromEnv() func(ctx context.Context, network, address string) (net.Conn, error) {
	allProxy := os.Getenv("SHARE_ALL_PROXY")
	if allProxy == "" {
		return nil
	}
	allProxy = strings.TrimPrefix(allProxy, "ssh+")

	proxyURL, err := url.Parse(allProxy)
	if err != nil {
		slog.Error("Failed to parse SHARE_ALL_PROXY URL", "error", err)
		return nil
	}

	params, err := url.ParseQuery(proxyURL.RawQuery)
	if err != nil {
		slog.Error("Failed to parse SHARE_ALL_PROXY query params", "error", err)
		return nil
	}

	username := ""
	if proxyURL.User != nil {
		username = proxyURL.User.Username()
	}

	keyPath := params.Get("private-key")
	if keyPath == "" {
		slog.Error("SHARE_ALL_PROXY missing required 'private-key' query param")
		return nil
	}

	sshKey, err := os.ReadFile(keyPath)
	if err != nil {
		slog.Error("Failed to read SSH private key", "path", keyPath, "error", err)
		return nil
	}

	socks5Proxy := proxy.NewSocks5Proxy(proxy.NewHostKey(), log.Default(), 1*time.Minute)

	// The SSH tunnel is established lazily on first dial and reused after
	var (
		dialer proxy.DialFunc
		mu     sync.RWMutex
	)

	return func(ctx context.Context, network, address string) (net.Conn, error) {
		mu.RLock()
		haveDialer := dialer != nil
		mu.RUnlock()

		if haveDialer {
			return dialer(network, address)
		}

		mu.Lock()
		defer mu.Unlock()
		if dialer == nil {
			proxyDialer, err := socks5Proxy.Dialer(username, string(sshKey), proxyURL.Host)
			if err != nil {
				return nil, fmt.Errorf("error creating SOCKS5 dialer: %w", err)
			}
			dialer = proxyDialer
		}
		return dialer(network, address)
	}
}
