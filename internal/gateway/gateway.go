// Package gateway talks to the spreadsheet-backed script endpoint, either
// through a relay that injects the shared secret server-side or directly
// with a client-held key. It knows nothing about domain collections: every
// request is an {action, data} envelope and every reply is {ok, data, error}.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned before any network attempt when the
// endpoint URL (or, in direct mode, the API key) is missing.
var ErrNotConfigured = errors.New("gateway not configured")

// ProtocolError means the relay answered with something that is not JSON,
// typically an HTML error page from an outage or misconfigured upstream.
// It is distinct from RemoteError: the domain backend never produced a reply.
type ProtocolError struct {
	Snippet string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("non-JSON response from relay: %q", e.Snippet)
}

// RemoteError is a structured failure from the backend ({ok:false}).
// Unsupported marks the specific "this backend has no such action" shape
// that the sync engine uses to fall back to per-collection fetches.
type RemoteError struct {
	Message     string
	Unsupported bool
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return "remote error"
	}
	return e.Message
}

// IsUnsupportedAction reports whether err is a RemoteError tagged as an
// unsupported-action failure.
func IsUnsupportedAction(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Unsupported
}

// Caller is the single-call abstraction the engine depends on.
type Caller interface {
	// Call sends {action, data} and returns the reply's data field.
	Call(ctx context.Context, action string, data any) (json.RawMessage, error)
	// Configured reports whether required endpoint/credential settings
	// are present, without touching the network.
	Configured() bool
}

// Client posts envelopes to a single HTTP endpoint. With an empty APIKey it
// targets a relay that injects the secret itself; with a key set it targets
// the script endpoint directly (local development mode).
type Client struct {
	URL    string
	APIKey string
	direct bool
	HTTP   *http.Client
}

// NewRelay returns a Client that trusts a relay to hold the secret.
func NewRelay(url string) *Client {
	return &Client{
		URL:  url,
		HTTP: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewDirect returns a Client that embeds the API key in every payload and
// talks to the script endpoint without an intermediary.
func NewDirect(url, apiKey string) *Client {
	return &Client{
		URL:    url,
		APIKey: apiKey,
		direct: true,
		HTTP:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured implements Caller.
func (c *Client) Configured() bool {
	if c.URL == "" {
		return false
	}
	if c.direct && c.APIKey == "" {
		return false
	}
	return true
}

type envelope struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
	APIKey string `json:"apiKey,omitempty"`
}

type reply struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// The legacy backend signals a missing bulk endpoint with one of two
// message shapes; they are translated to the tagged Unsupported variant
// here so nothing upstream string-matches error text.
var unsupportedMarkers = []string{
	"Unknown table: data",
	"Invalid action format",
}

// Call implements Caller.
func (c *Client) Call(ctx context.Context, action string, data any) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if data == nil {
		data = map[string]any{}
	}

	body, err := json.Marshal(envelope{Action: action, Data: data, APIKey: c.APIKey})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", action, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var r reply
	if err := json.Unmarshal(respBody, &r); err != nil {
		return nil, &ProtocolError{Snippet: snippet(respBody)}
	}

	if !r.OK {
		return nil, &RemoteError{
			Message:     r.Error,
			Unsupported: isUnsupportedMessage(r.Error),
		}
	}

	return r.Data, nil
}

func isUnsupportedMessage(msg string) bool {
	for _, m := range unsupportedMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
