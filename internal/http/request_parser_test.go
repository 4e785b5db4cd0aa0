package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestBodyParserForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("id=txn_1&note=hello"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := p.Get("id"); got != "txn_1" {
		t.Fatalf("id got %q", got)
	}
	if got := p.Get("missing"); got != "" {
		t.Fatalf("missing key got %q", got)
	}
}

func TestRequestBodyParserJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/x", strings.NewReader(`{"id":"txn_2","n":7}`))
	req.Header.Set("Content-Type", "application/json")

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := p.Get("id"); got != "txn_2" {
		t.Fatalf("id got %q", got)
	}
	if got := p.Get("n"); got != "7" {
		t.Fatalf("numeric value got %q", got)
	}
}

func TestRequestBodyParserJSONScalars(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"f":1.5,"b":true,"o":{"x":1}}`))
	req.Header.Set("Content-Type", "application/json")

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := p.Get("f"); got != "1.5" {
		t.Fatalf("float got %q", got)
	}
	if got := p.Get("b"); got != "true" {
		t.Fatalf("bool got %q", got)
	}
	// Non-scalar values have no string form.
	if got := p.Get("o"); got != "" {
		t.Fatalf("object got %q", got)
	}
}

func TestRequestBodyParserEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(""))

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := p.Get("id"); got != "" {
		t.Fatalf("empty body got %q", got)
	}
}

func TestRequestBodyParserMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"id":`))

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRequestBodyParserSanitizes(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("id=%00txn_3%20"))
	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := p.Get("id"); got != "txn_3" {
		t.Fatalf("got %q, want control chars stripped and trimmed", got)
	}
}

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if resp := RequirePOST(req); resp == nil {
		t.Fatalf("GET should be rejected by RequirePOST")
	}
	if resp := RequireMethod(req, http.MethodGet); resp != nil {
		t.Fatalf("GET should pass RequireMethod(GET)")
	}

	del := httptest.NewRequest(http.MethodDelete, "/x", nil)
	if resp := RequireDeleteOrPOST(del); resp != nil {
		t.Fatalf("DELETE should pass RequireDeleteOrPOST")
	}
}
