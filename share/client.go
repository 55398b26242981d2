// ABOUTME: Dexcom Share API client for glucose readings
// ABOUTME: Handles login, session token caching, and bounded fetch retries

package share

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/loopnlearn/dexshare/models"
)

// Known Share service endpoints.
const (
	USServerURL    = "https://share2.dexcom.com"
	NonUSServerURL = "https://shareous1.dexcom.com"
)

const (
	loginPath = "/ShareWebServices/Services/General/LoginPublisherAccountByName"
	fetchPath = "/ShareWebServices/Services/Publisher/ReadPublisherLatestGlucoseValues"

	// applicationID identifies this client to the Share service.
	applicationID = "d89443d2-327c-4a6f-89e5-496bbb0317db"

	// userAgent matches the vendor's mobile app; the service rejects
	// unrecognized agents.
	userAgent = "Dexcom Share/3.0.2.11 CFNetwork/711.2.23 Darwin/14.0.0"

	// fetchWindowMinutes bounds every fetch to the last 24 hours.
	fetchWindowMinutes = 1440

	// defaultMaxRetries is the number of re-login+fetch cycles attempted
	// after the first fetch returns an error object instead of data.
	defaultMaxRetries = 2
)

// Client talks to the Share web service. A single Client may be used from
// concurrent goroutines: the cached token is mutex-guarded and concurrent
// logins collapse into one request via singleflight.
type Client struct {
	serverURL   string
	accountName string
	password    string
	maxRetries  int
	client      *http.Client

	token      string
	tokenMu    sync.RWMutex
	loginGroup singleflight.Group
}

// NewClient creates a Share client for the given server base URL and
// credentials. The URL may omit a scheme; https is assumed. Returns a
// FetchError if the URL cannot be parsed.
func NewClient(serverURL, accountName, password string) (*Client, error) {
	if !strings.Contains(serverURL, "://") {
		serverURL = "https://" + serverURL
	}
	parsed, err := url.Parse(serverURL)
	if err != nil || parsed.Host == "" {
		return nil, &FetchError{Reason: fmt.Sprintf("invalid server URL %q", serverURL), Err: err}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if dialContext := proxyDialContextFromEnv(); dialContext != nil {
		transport.DialContext = dialContext
	}

	return &Client{
		serverURL:   strings.TrimSuffix(serverURL, "/"),
		accountName: accountName,
		password:    password,
		maxRetries:  defaultMaxRetries,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}, nil
}

// SetHTTPClient allows overriding the HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client *http.Client) {
	c.client = client
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.client.Timeout = d
}

// SetMaxRetries overrides the number of re-login retries per fetch.
func (c *Client) SetMaxRetries(n int) {
	if n >= 0 {
		c.maxRetries = n
	}
}

// FetchLast returns the most recent n readings from the last 24 hours,
// newest first, in the order the service reports them.
//
// When the response body is a JSON object instead of the expected array,
// the session token has most likely expired: the token is invalidated and
// the whole login+fetch cycle is retried, at most maxRetries times. A
// malformed record, a login rejection, or a transport failure is terminal
// and returned immediately.
func (c *Client) FetchLast(ctx context.Context, n int) ([]models.Reading, error) {
	remaining := c.maxRetries
	for {
		token, err := c.ensureToken(ctx)
		if err != nil {
			return nil, err
		}

		query := url.Values{}
		query.Set("sessionId", token)
		query.Set("minutes", fmt.Sprintf("%d", fetchWindowMinutes))
		query.Set("maxCount", fmt.Sprintf("%d", n))
		fetchURL := c.serverURL + fetchPath + "?" + query.Encode()

		body, err := c.post(ctx, fetchURL, nil)
		if err != nil {
			return nil, err
		}

		readings, err := decodeReadings(body)
		if err != nil {
			var dataErr *DataError
			if errors.As(err, &dataErr) && dataErr.ShapeMismatch && remaining > 0 {
				slog.Warn("Fetch response was not an array, re-authenticating",
					"remaining", remaining)
				c.invalidate()
				remaining--
				continue
			}
			return nil, err
		}

		return readings, nil
	}
}

// ensureToken returns the cached session token, logging in first if none
// is cached. Concurrent callers share a single login request.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.tokenMu.RLock()
	token := c.token
	c.tokenMu.RUnlock()
	if token != "" {
		return token, nil
	}

	v, err, _ := c.loginGroup.Do("login", func() (interface{}, error) {
		// Another caller may have logged in while we waited
		c.tokenMu.RLock()
		cached := c.token
		c.tokenMu.RUnlock()
		if cached != "" {
			return cached, nil
		}

		fresh, err := c.login(ctx)
		if err != nil {
			return nil, err
		}

		c.tokenMu.Lock()
		c.token = fresh
		c.tokenMu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// invalidate clears the cached token unconditionally. The next fetch will
// log in again.
func (c *Client) invalidate() {
	c.tokenMu.Lock()
	c.token = ""
	c.tokenMu.Unlock()
}

// login authenticates with the Share service and returns a session token.
// The service signals success and failure through the body shape rather
// than the status code: a JSON-encoded string is the token, a JSON object
// carries an error code.
func (c *Client) login(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"accountName":   c.accountName,
		"password":      c.password,
		"applicationId": applicationID,
	})
	if err != nil {
		return "", &FetchError{Reason: "failed to encode login request", Err: err}
	}

	body, err := c.post(ctx, c.serverURL+loginPath, payload)
	if err != nil {
		return "", err
	}

	// An empty token would read as "not cached" and re-login forever
	var token string
	if err := json.Unmarshal([]byte(body), &token); err == nil && token != "" {
		slog.Debug("Share login succeeded", "server", c.serverURL)
		return token, nil
	}

	code := "unknown"
	var failure struct {
		Code string `json:"Code"`
	}
	if err := json.Unmarshal([]byte(body), &failure); err == nil && failure.Code != "" {
		code = failure.Code
	}
	return "", &LoginError{Code: code}
}

// post issues a POST and returns the raw response body. The body is
// interpreted by the caller regardless of status code, matching the
// service's shape-based error signaling.
func (c *Client) post(ctx context.Context, requestURL string, payload []byte) (string, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, reader)
	if err != nil {
		return "", &FetchError{Reason: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &HTTPError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &HTTPError{Err: err}
	}
	return string(body), nil
}
