package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorDefaultEnvelopeWhenProblemNotRequested(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-test-1")
	rr := httptest.NewRecorder()

	Error(rr, req, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)

	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected application/json, got %q", got)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %+v", body["success"])
	}
	if _, ok := body["meta"]; !ok {
		t.Fatalf("expected meta field in envelope: %+v", body)
	}
}

func TestErrorProblemDetailsWhenRequested(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/example/path", nil)
	req.Header.Set("Accept", "application/problem+json")
	req.Header.Set("X-Request-Id", "req-test-2")
	rr := httptest.NewRecorder()

	Error(rr, req, http.StatusUnauthorized, "UNAUTHORIZED", "missing session", nil)

	if got := rr.Header().Get("Content-Type"); got != "application/problem+json" {
		t.Fatalf("expected application/problem+json, got %q", got)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode problem details: %v", err)
	}
	if body["type"] != "urn:problem:mecaflow:unauthorized" {
		t.Fatalf("unexpected problem type: %+v", body["type"])
	}
	if body["title"] != "Unauthorized" {
		t.Fatalf("unexpected title: %+v", body["title"])
	}
	if body["status"] != float64(http.StatusUnauthorized) {
		t.Fatalf("unexpected status: %+v", body["status"])
	}
	if body["request_id"] != "req-test-2" {
		t.Fatalf("unexpected request_id: %+v", body["request_id"])
	}
	if body["instance"] != "/example/path" {
		t.Fatalf("unexpected instance: %+v", body["instance"])
	}
}

func TestErrorContentNegotiationVariants(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		wantCT string
	}{
		{name: "jsonThenProblem", accept: "application/json, application/problem+json", wantCT: "application/problem+json"},
		{name: "problemWithQualityZero", accept: "application/problem+json;q=0", wantCT: "application/json"},
		{name: "missingAccept", accept: "", wantCT: "application/json"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.accept != "" {
				req.Header.Set("Accept", tc.accept)
			}
			rr := httptest.NewRecorder()
			Error(rr, req, http.StatusBadRequest, "BAD_REQUEST", "bad input", nil)
			if got := rr.Header().Get("Content-Type"); got != tc.wantCT {
				t.Fatalf("expected %q, got %q", tc.wantCT, got)
			}
		})
	}
}

func TestJSONEnvelopeCarriesData(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-test-3")
	rr := httptest.NewRecorder()

	JSON(rr, req, http.StatusOK, map[string]string{"greeting": "hola"})

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true, got %+v", body["success"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["greeting"] != "hola" {
		t.Fatalf("unexpected data: %+v", body["data"])
	}
}
