package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestWithCORS verifies the permissive headers the Electron renderer needs.
func TestWithCORS(t *testing.T) {
	called := false
	wrapped := withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if !called {
		t.Fatal("wrapped handler not called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, handler response not passed through", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("allow origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

// TestWithCORSPreflight verifies OPTIONS requests short-circuit.
func TestWithCORSPreflight(t *testing.T) {
	wrapped := withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight reached the wrapped handler")
	}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/notes", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("preflight response missing allowed methods")
	}
}
