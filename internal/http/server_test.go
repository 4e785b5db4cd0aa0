package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/core"
	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/store"
)

// memBlob is an in-memory persistence fake.
type memBlob struct {
	data    []byte
	present bool
}

func (m *memBlob) Load(ctx context.Context) ([]byte, bool, error) { return m.data, m.present, nil }
func (m *memBlob) Save(ctx context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	m.present = true
	return nil
}

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st := store.New(&memBlob{}, nil)
	srv := NewServer(":0", st)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, st
}

func addTxn(t *testing.T, st *store.Store, description string, cents int64, category string) core.Transaction {
	t.Helper()
	txn, err := st.Add(context.Background(), description, cents, time.Now().Format(core.DateLayout), category)
	if err != nil {
		t.Fatalf("add %s: %v", description, err)
	}
	return txn
}

func TestIndexAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Finance Tracker", "#home", "#add", "#view", "#summary"} {
		if !strings.Contains(body, want) {
			t.Fatalf("index body missing %q", want)
		}
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestIndexUnknownPath(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCreateTransactionValidationAndSuccess(t *testing.T) {
	srv, st := newTestServer(t)
	today := time.Now().Format(core.DateLayout)

	// Wrong method
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/transactions", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// All fields missing: every violation reported at once
	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	for _, want := range []string{"Description is required", "Amount must be a non-zero number", "Date is required", "Category is required"} {
		if !strings.Contains(rr.Body.String(), want) {
			t.Fatalf("422 body missing %q: %s", want, rr.Body.String())
		}
	}

	// Future date rejected
	rr = httptest.NewRecorder()
	tomorrow := time.Now().AddDate(0, 0, 1).Format(core.DateLayout)
	req = httptest.NewRequest(http.MethodPost, "/transactions",
		strings.NewReader("description=Lunch&amount=-15&date="+tomorrow+"&category=Food"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity || !strings.Contains(rr.Body.String(), "Date cannot be in the future") {
		t.Fatalf("future date not rejected: %d %s", rr.Code, rr.Body.String())
	}

	// Success
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/transactions",
		strings.NewReader("description=Salary&amount=5000&date="+today+"&category=Salary"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	trigger := rr.Header().Get("HX-Trigger")
	for _, want := range []string{"transactions:changed", "summary:refresh", "form:reset", "show-notification"} {
		if !strings.Contains(trigger, want) {
			t.Fatalf("HX-Trigger missing %q: %s", want, trigger)
		}
	}
	if !strings.Contains(trigger, "Income of KES 5,000.00 added successfully!") {
		t.Fatalf("success notification wrong: %s", trigger)
	}
	if st.Len() != 1 {
		t.Fatalf("store len=%d", st.Len())
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv, st := newTestServer(t)
	txn := addTxn(t, st, "Salary", 500000, "Salary")

	// Unknown id
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions/delete", strings.NewReader("id=txn_missing"))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	// Missing id
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/transactions/delete", strings.NewReader(""))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	// Form-encoded delete
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/transactions/delete", strings.NewReader("id="+txn.ID))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if st.Len() != 0 {
		t.Fatalf("transaction not removed")
	}
	trigger := rr.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "transactions:changed") || !strings.Contains(trigger, "Transaction deleted successfully!") {
		t.Fatalf("HX-Trigger wrong: %s", trigger)
	}

	// JSON body via DELETE is also accepted
	txn2 := addTxn(t, st, "Rent", -120000, "Rent")
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/transactions/delete", strings.NewReader(`{"id":"`+txn2.ID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if st.Len() != 0 {
		t.Fatalf("transaction not removed via JSON body")
	}
}

func TestTransactionListFiltering(t *testing.T) {
	srv, st := newTestServer(t)
	addTxn(t, st, "Monthly salary", 500000, "Salary")
	addTxn(t, st, "Rent payment", -120000, "Rent")
	addTxn(t, st, "Groceries", -4500, "Food")

	get := func(url string) string {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", url, rr.Code)
		}
		return rr.Body.String()
	}

	all := get("/ui/transactions")
	for _, want := range []string{"Monthly salary", "Rent payment", "Groceries"} {
		if !strings.Contains(all, want) {
			t.Fatalf("list missing %q", want)
		}
	}

	// Search matches description or category, case-insensitive
	searched := get("/ui/transactions?q=RENT")
	if !strings.Contains(searched, "Rent payment") || strings.Contains(searched, "Groceries") {
		t.Fatalf("search filter wrong: %s", searched)
	}

	// Category filter is an exact match
	filtered := get("/ui/transactions?category=Food")
	if !strings.Contains(filtered, "Groceries") || strings.Contains(filtered, "Rent payment") {
		t.Fatalf("category filter wrong: %s", filtered)
	}

	// No matches renders the filtered empty state
	empty := get("/ui/transactions?q=zzz")
	if !strings.Contains(empty, "No transactions match your search.") {
		t.Fatalf("empty state wrong: %s", empty)
	}
}

func TestTransactionListEmptyState(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui/transactions", nil))
	if !strings.Contains(rr.Body.String(), "No transactions yet") {
		t.Fatalf("expected empty state, got: %s", rr.Body.String())
	}
}

func TestSummary(t *testing.T) {
	srv, st := newTestServer(t)
	addTxn(t, st, "Salary", 500000, "Salary")
	addTxn(t, st, "Rent", -120000, "Rent")

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui/summary", nil))
	if rr.Code != 200 {
		t.Fatalf("summary status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"KES 5,000.00", "KES 1,200.00", "KES 3,800.00", "Rent"} {
		if !strings.Contains(body, want) {
			t.Fatalf("summary missing %q: %s", want, body)
		}
	}
}

func TestSummaryCachedPerRevision(t *testing.T) {
	srv, st := newTestServer(t)
	addTxn(t, st, "Salary", 500000, "Salary")

	get := func() string {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui/summary", nil))
		return rr.Body.String()
	}

	first := get()
	if srv.summaryCache.Size() != 1 {
		t.Fatalf("summary not cached")
	}
	if second := get(); second != first {
		t.Fatalf("cached summary differs")
	}

	// A mutation bumps the revision and the stale entry is bypassed.
	addTxn(t, st, "Rent", -120000, "Rent")
	third := get()
	if !strings.Contains(third, "KES 3,800.00") {
		t.Fatalf("summary not refreshed after mutation: %s", third)
	}
}

func TestSummaryEmpty(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui/summary", nil))
	if !strings.Contains(rr.Body.String(), "No transactions yet") {
		t.Fatalf("expected no-data message: %s", rr.Body.String())
	}
}

func TestExportCSV(t *testing.T) {
	srv, st := newTestServer(t)

	// Empty list refuses the export
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/export/csv", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty export, got %d", rr.Code)
	}

	addTxn(t, st, "Salary", 500000, "Salary")

	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/export/csv", nil))
	if rr.Code != 200 {
		t.Fatalf("export status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "transactions_") || !strings.Contains(cd, ".csv") {
		t.Fatalf("content disposition %q", cd)
	}
	body := rr.Body.String()
	if !strings.HasPrefix(body, `"Description","Amount","Date","Category","Type"`) {
		t.Fatalf("csv header wrong: %s", body)
	}
	if !strings.Contains(body, `"Salary","5000.00"`) {
		t.Fatalf("csv row missing: %s", body)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy", "Referrer-Policy"} {
		if rr.Header().Get(h) == "" {
			t.Fatalf("missing security header %s", h)
		}
	}
}

func TestRateLimitMutatingRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	var last int
	for i := 0; i < 70; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(""))
		req.RemoteAddr = "203.0.113.7:1234"
		srv.Handler.ServeHTTP(rr, req)
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", last)
	}
}
