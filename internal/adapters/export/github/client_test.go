package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"car-collection/internal/ports/export"
)

func newTestPublisher(t *testing.T, baseURL string) *Publisher {
	t.Helper()

	p, err := NewPublisher(Config{
		BaseURL: baseURL,
		Token:   "ghp_test",
		Repo:    "ana/car-backups",
		Branch:  "main",
	})
	if err != nil {
		t.Fatalf("NewPublisher error: %v", err)
	}
	return p
}

func TestPublisher_Publish_CreatesNewFile(t *testing.T) {
	var put putContentsRequest
	putDone := false

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/ana/car-backups/contents/cars/civic-2020.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer ghp_test" {
			t.Errorf("unexpected auth header %q", got)
		}

		switch r.Method {
		case http.MethodGet:
			// Archivo inexistente: la API contesta 404 => create.
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			putDone = true
			_ = json.NewDecoder(r.Body).Decode(&put)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"content":{"sha":"new-sha"}}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	p := newTestPublisher(t, srv.URL)
	payload := []byte(`{"external_code":"civic-2020"}`)
	if err := p.Publish(context.Background(), "civic-2020", payload, "export civic-2020"); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if !putDone {
		t.Fatalf("expected PUT to contents API")
	}
	if put.SHA != "" {
		t.Fatalf("create must not send sha, got %q", put.SHA)
	}
	if put.Message != "export civic-2020" || put.Branch != "main" {
		t.Fatalf("unexpected commit fields: %#v", put)
	}
	decoded, err := base64.StdEncoding.DecodeString(put.Content)
	if err != nil || string(decoded) != string(payload) {
		t.Fatalf("content not base64 of payload: %q (%v)", put.Content, err)
	}
}

func TestPublisher_Publish_UpdatesExistingFile(t *testing.T) {
	var put putContentsRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if got := r.URL.Query().Get("ref"); got != "main" {
				t.Errorf("expected ref=main, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"sha":"existing-sha"}`))
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&put)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"content":{"sha":"updated-sha"}}`))
		}
	}))
	defer srv.Close()

	p := newTestPublisher(t, srv.URL)
	if err := p.Publish(context.Background(), "civic-2020", []byte(`{}`), "export civic-2020"); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if put.SHA != "existing-sha" {
		t.Fatalf("update must send the current sha, got %q", put.SHA)
	}
}

func TestPublisher_Publish_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestPublisher(t, srv.URL)
	err := p.Publish(context.Background(), "civic-2020", []byte(`{}`), "export civic-2020")
	if !errors.Is(err, export.ErrUpstream) {
		t.Fatalf("expected export.ErrUpstream, got %v", err)
	}
}

func TestPublisher_Publish_PutFailureAfterProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
	}))
	defer srv.Close()

	p := newTestPublisher(t, srv.URL)
	err := p.Publish(context.Background(), "civic-2020", []byte(`{}`), "export civic-2020")
	if !errors.Is(err, export.ErrUpstream) {
		t.Fatalf("expected export.ErrUpstream, got %v", err)
	}
}

func TestNewPublisher_Validation(t *testing.T) {
	if _, err := NewPublisher(Config{Token: "", Repo: "ana/repo"}); err == nil {
		t.Fatalf("expected error for empty token")
	}
	if _, err := NewPublisher(Config{Token: "tok", Repo: "sin-owner"}); err == nil {
		t.Fatalf("expected error for repo without owner/name")
	}
}

func TestPublisher_Publish_EmptyCode(t *testing.T) {
	p := newTestPublisher(t, "http://127.0.0.1:0")
	if err := p.Publish(context.Background(), "  ", []byte(`{}`), "export"); !errors.Is(err, export.ErrUpstream) {
		t.Fatalf("expected export.ErrUpstream for empty code, got %v", err)
	}
}
