package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoginStoresSessionAndAttachesBearerToken(t *testing.T) {
	var seenAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token":        "tok-123",
			"account_type": "donor",
			"account":      map[string]interface{}{"donor_id": 4, "donor_name": "Karim"},
		})
	})
	mux.HandleFunc("/api/v1/divisions", func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []Division{}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)

	session, err := c.Login(context.Background(), "karim@example.com", "secret", "donor")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.Token != "tok-123" || session.AccountType != "donor" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if c.Session() == nil {
		t.Fatalf("expected session to be stored")
	}

	if _, err := c.Divisions(context.Background()); err != nil {
		t.Fatalf("Divisions failed: %v", err)
	}
	if seenAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer token on request, got %q", seenAuth)
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(server.URL)
	c.session = &Session{Token: "stale"}

	_, err := c.Divisions(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if c.Session() != nil {
		t.Fatalf("expected session to be cleared after a 401")
	}
}

func TestErrorResponsesBecomeReadableMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Select at least one month"})
	}))
	defer server.Close()

	_, err := New(server.URL).Divisions(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Select at least one month" {
		t.Fatalf("expected backend message to pass through, got %q", apiErr.Message)
	}
}

func TestErrorResponseWithoutBodyFallsBackToGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(server.URL).Divisions(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Record not found" {
		t.Fatalf("expected generic message, got %q", apiErr.Message)
	}
}

func TestNetworkFailureBecomesConnectivityMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := New(server.URL).Divisions(context.Background())
	if err == nil {
		t.Fatalf("expected an error against a closed server")
	}
	if got := err.Error(); !strings.HasPrefix(got, "no response from server") {
		t.Fatalf("expected connectivity message, got %q", got)
	}
}
