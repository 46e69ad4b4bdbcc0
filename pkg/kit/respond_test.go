package kit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type payload struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func decodeReq(t *testing.T, body string) (payload, error) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	var p payload
	err := DecodeJSON(w, req, &p)
	return p, err
}

func TestDecodeJSON_OK(t *testing.T) {
	p, err := decodeReq(t, `{"name":"a","n":2}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Name != "a" || p.N != 2 {
		t.Fatalf("payload=%+v", p)
	}
}

func TestDecodeJSON_UnknownField(t *testing.T) {
	if _, err := decodeReq(t, `{"name":"a","bogus":true}`); err == nil {
		t.Fatalf("unknown field accepted")
	}
}

func TestDecodeJSON_TrailingData(t *testing.T) {
	if _, err := decodeReq(t, `{"name":"a"}{"name":"b"}`); err == nil {
		t.Fatalf("trailing data accepted")
	}
}

func TestDecodeJSON_Garbage(t *testing.T) {
	if _, err := decodeReq(t, `not json`); err == nil {
		t.Fatalf("garbage accepted")
	}
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusTeapot, "nope", map[string]any{"k": "v"})

	if w.Code != http.StatusTeapot {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}

	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Error != "nope" {
		t.Fatalf("resp=%+v", er)
	}
}
