package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRelay(t *testing.T, upstream http.HandlerFunc) *httptest.Server {
	t.Helper()
	up := httptest.NewServer(upstream)
	t.Cleanup(up.Close)

	s := NewServer(Config{UpstreamURL: up.URL, SecretKey: "shhh"})
	srv := httptest.NewServer(s.routes())
	t.Cleanup(srv.Close)
	return srv
}

func postEnvelope(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestForwardInjectsSecret(t *testing.T) {
	var gotPayload map[string]any
	var gotContentType string
	srv := newTestRelay(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"ok":true,"data":"pong"}`))
	})

	resp := postEnvelope(t, srv.URL, `{"action":"ping","data":{}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var reply map[string]any
	json.NewDecoder(resp.Body).Decode(&reply)
	if reply["ok"] != true || reply["data"] != "pong" {
		t.Errorf("reply = %v", reply)
	}

	if gotPayload["apiKey"] != "shhh" {
		t.Errorf("apiKey = %v, want injected secret", gotPayload["apiKey"])
	}
	if gotPayload["action"] != "ping" {
		t.Errorf("action = %v", gotPayload["action"])
	}
	if !strings.HasPrefix(gotContentType, "text/plain") {
		t.Errorf("upstream content type = %q, want text/plain", gotContentType)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestRelay(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream reached on GET")
	})

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
	var reply map[string]any
	json.NewDecoder(resp.Body).Decode(&reply)
	if reply["ok"] != false {
		t.Errorf("reply = %v, want ok:false", reply)
	}
}

func TestOptionsPreflight(t *testing.T) {
	srv := newTestRelay(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream reached on OPTIONS")
	})

	req, _ := http.NewRequest(http.MethodOptions, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS origin = %q, want *", got)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	srv := newTestRelay(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream reached with invalid body")
	})

	resp := postEnvelope(t, srv.URL, `{broken`)
	// Malformed envelopes come back as a domain-level failure, not an
	// HTTP error; clients parse the body either way.
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var reply map[string]any
	json.NewDecoder(resp.Body).Decode(&reply)
	if reply["ok"] != false {
		t.Errorf("reply = %v, want ok:false", reply)
	}
}

func TestUpstreamHTMLBecomes502(t *testing.T) {
	srv := newTestRelay(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>Deadline exceeded</body></html>"))
	})

	resp := postEnvelope(t, srv.URL, `{"action":"students.list","data":{}}`)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	var reply map[string]any
	json.NewDecoder(resp.Body).Decode(&reply)
	if reply["ok"] != false {
		t.Errorf("reply = %v, want ok:false", reply)
	}
}

func TestMissingConfig(t *testing.T) {
	s := NewServer(Config{})
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp := postEnvelope(t, srv.URL, `{"action":"ping","data":{}}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestUpstreamReplyPassedVerbatim(t *testing.T) {
	srv := newTestRelay(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error":"Unknown table: data"}`))
	})

	resp := postEnvelope(t, srv.URL, `{"action":"data.syncAll","data":{}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var reply map[string]any
	json.NewDecoder(resp.Body).Decode(&reply)
	if reply["error"] != "Unknown table: data" {
		t.Errorf("error = %v, want upstream message untouched", reply["error"])
	}
}
