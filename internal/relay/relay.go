// Package relay implements the HTTP intermediary between clients and the
// spreadsheet script endpoint. It accepts the {action, data} envelope on
// POST /, injects the shared secret server-side (so browsers and CLIs never
// hold it), forwards the payload following redirects, and passes the reply
// back verbatim. An HTML reply from upstream — the script host's outage
// page — is reported as 502 rather than forwarded.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// Config holds the relay's settings, normally sourced from flags/env.
type Config struct {
	ListenAddr  string
	UpstreamURL string // the script endpoint
	SecretKey   string // injected into every forwarded payload
}

// Server is the relay HTTP server.
type Server struct {
	config   Config
	http     *http.Server
	upstream *http.Client
}

// NewServer creates a relay server with the given config.
func NewServer(cfg Config) *Server {
	s := &Server{
		config: cfg,
		// The script host answers slowly; give it more room than the
		// client-side gateway timeout so errors surface there first.
		upstream: &http.Client{Timeout: 45 * time.Second},
	}
	s.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Start begins listening for HTTP requests (non-blocking).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("relay server", "err", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleForward)
	return mux
}

type forwardEnvelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type upstreamPayload struct {
	APIKey string          `json:"apiKey"`
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	setCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		writeFailure(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.config.UpstreamURL == "" || s.config.SecretKey == "" {
		writeFailure(w, http.StatusInternalServerError, "relay missing upstream URL or secret key")
		return
	}

	var env forwardEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeFailure(w, http.StatusOK, "invalid JSON")
		return
	}
	if env.Data == nil {
		env.Data = json.RawMessage(`{}`)
	}

	body, err := json.Marshal(upstreamPayload{
		APIKey: s.config.SecretKey,
		Action: env.Action,
		Data:   env.Data,
	})
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "marshal payload")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, s.config.UpstreamURL, bytes.NewReader(body))
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "create upstream request")
		return
	}
	// The script host wants text/plain; anything else triggers an extra
	// CORS round trip on its side. Redirects are followed by default,
	// which its POST handling relies on.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := s.upstream.Do(req)
	if err != nil {
		slog.Error("upstream call failed", "action", env.Action, "err", err)
		writeFailure(w, http.StatusBadGateway, "upstream unreachable: "+err.Error())
		return
	}
	defer resp.Body.Close()

	result, err := io.ReadAll(resp.Body)
	if err != nil {
		writeFailure(w, http.StatusBadGateway, "read upstream response")
		return
	}

	// An HTML page here means the script host errored or timed out
	// before the domain logic ran.
	if strings.HasPrefix(strings.TrimSpace(string(result)), "<") {
		slog.Error("upstream returned HTML", "action", env.Action)
		writeFailure(w, http.StatusBadGateway, "upstream returned HTML instead of JSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result)
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": msg}); err != nil {
		slog.Error("write relay error response", "err", err)
	}
}
