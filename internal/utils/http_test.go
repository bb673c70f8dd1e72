// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/fia-offline-sync/models"
)

func TestWriteJSON_Records(t *testing.T) {
	w := httptest.NewRecorder()
	data := []models.Record{
		{ID: "t1", Payload: json.RawMessage(`{"id":"t1","amount":500}`)},
		{ID: "t2", Payload: json.RawMessage(`{"id":"t2","amount":7}`)},
	}

	n, err := WriteJSON(w, data, http.StatusOK)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero bytes written")
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
	}
	if want := `[{"id":"t1","amount":500},{"id":"t2","amount":7}]`; w.Body.String() != want {
		t.Errorf("expected body %s, got %s", want, w.Body.String())
	}
}

func TestWriteJSON_CustomStatusCode(t *testing.T) {
	w := httptest.NewRecorder()

	if _, err := WriteJSON(w, models.BatchResponse{Store: models.StoreAudits, Affected: 2}, http.StatusCreated); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if want := `{"store":"audits","affected":2}`; w.Body.String() != want {
		t.Errorf("expected body %s, got %s", want, w.Body.String())
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteJSON_NilData(t *testing.T) {
	w := httptest.NewRecorder()

	if _, err := WriteJSON(w, nil, http.StatusOK); err != nil {
		t.Fatalf("expected no error for nil data, got: %v", err)
	}
	if w.Body.String() != "null" {
		t.Errorf("expected body 'null', got '%s'", w.Body.String())
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, "record not found", http.StatusNotFound)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if want := `{"error":"record not found"}`; w.Body.String() != want {
		t.Errorf("expected body %s, got %s", want, w.Body.String())
	}
}
