package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"status": "ok"}, "rid-1")

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected json content type, got %q", got)
	}

	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !envelope.Success || envelope.Error != nil {
		t.Fatalf("expected success envelope, got %+v", envelope)
	}
	if envelope.RequestID != "rid-1" {
		t.Fatalf("expected request id echoed, got %q", envelope.RequestID)
	}
}

func TestFailEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, 404, "not_found", "pilot not found", "rid-2")

	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Success || envelope.Error == nil {
		t.Fatalf("expected error envelope, got %+v", envelope)
	}
	if envelope.Error.Code != "not_found" || envelope.Error.Message != "pilot not found" {
		t.Fatalf("unexpected error payload %+v", envelope.Error)
	}
}

func TestWriteJSONRefusesUnencodablePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, 200, Envelope{Success: true, Data: make(chan int)})

	if rec.Code != 500 {
		t.Fatalf("expected 500 on encode failure, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body on encode failure, got %q", rec.Body.String())
	}
}
