package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finboard/internal/aggregate"
	"finboard/internal/core"
	"finboard/internal/memory"
)

// failingBackend errors on every read; writes succeed against nothing.
type failingBackend struct{}

func (failingBackend) ListTransactions(ctx context.Context, userID string) ([]aggregate.Record, error) {
	return nil, context.DeadlineExceeded
}
func (failingBackend) RecentTransactions(ctx context.Context, userID string, limit int) ([]aggregate.Record, error) {
	return nil, context.DeadlineExceeded
}
func (failingBackend) CreateTransaction(ctx context.Context, userID string, tx core.Transaction) (string, error) {
	return "", context.DeadlineExceeded
}
func (failingBackend) DeleteTransaction(ctx context.Context, userID, id string) error {
	return context.DeadlineExceeded
}
func (failingBackend) ReadSettings(ctx context.Context, userID string) (core.Settings, error) {
	return core.Settings{}, context.DeadlineExceeded
}
func (failingBackend) WriteSpendingGoal(ctx context.Context, userID string, goal core.Money) error {
	return context.DeadlineExceeded
}

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	srv := NewServer(":0", store, time.Minute)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, store
}

func seedStore(store *memory.Store) {
	store.Seed("default", []aggregate.Record{
		{ID: "1", Date: "2024-01-05", Amount: "300.00", Type: "income"},
		{ID: "2", Date: "2024-01-12", Amount: "100.00", Type: "expense", Category: "Food"},
		{ID: "3", Date: "2024-02-03", Amount: "200.00", Type: "expense", Category: "Transport"},
	})
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		if rr := doRequest(srv, http.MethodGet, path, ""); rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestDashboard(t *testing.T) {
	srv, store := newTestServer(t)
	seedStore(store)

	rr := doRequest(srv, http.MethodGet, "/api/dashboard", "")
	if rr.Code != 200 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Monthly) != 2 || resp.Monthly[0].Month != "Jan" {
		t.Fatalf("unexpected monthly series: %+v", resp.Monthly)
	}
	if resp.Monthly[0].Income != "300.00" || resp.Monthly[0].Expense != "100.00" {
		t.Fatalf("unexpected January amounts: %+v", resp.Monthly[0])
	}
	if len(resp.Categories) != 2 || resp.Categories[0].Name != "Food" || resp.Categories[0].Color == "" {
		t.Fatalf("unexpected categories: %+v", resp.Categories)
	}
	if resp.Summary.TransactionCount != 3 || resp.Summary.TotalExpense != "300.00" {
		t.Fatalf("unexpected summary: %+v", resp.Summary)
	}
	if resp.Version == 0 {
		t.Fatal("snapshot version missing")
	}
}

func TestDashboardEmptyUserIsValid(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/api/dashboard?user=nobody", "")
	if rr.Code != 200 {
		t.Fatalf("empty data must be 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	// Empty arrays, not nulls.
	if !strings.Contains(body, `"monthly":[]`) || !strings.Contains(body, `"categories":[]`) {
		t.Fatalf("expected empty arrays, got %s", body)
	}
	if !strings.Contains(body, `"transaction_count":0`) {
		t.Fatalf("expected zero count, got %s", body)
	}
}

func TestDashboardFetchFailure(t *testing.T) {
	srv := NewServer(":0", failingBackend{}, time.Minute)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	rr := doRequest(srv, http.MethodGet, "/api/dashboard", "")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("fetch failure must be 502, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "error") {
		t.Fatalf("expected JSON error body, got %s", rr.Body.String())
	}
}

func TestDashboardSnapshotCached(t *testing.T) {
	srv, store := newTestServer(t)
	seedStore(store)

	first := doRequest(srv, http.MethodGet, "/api/dashboard", "")
	second := doRequest(srv, http.MethodGet, "/api/dashboard", "")
	if first.Code != 200 || second.Code != 200 {
		t.Fatalf("status %d / %d", first.Code, second.Code)
	}
	var a, b dashboardResponse
	_ = json.Unmarshal(first.Body.Bytes(), &a)
	_ = json.Unmarshal(second.Body.Bytes(), &b)
	if a.Version != b.Version {
		t.Fatalf("cached reads should share a snapshot: %d vs %d", a.Version, b.Version)
	}
}

func TestListTransactions(t *testing.T) {
	srv, store := newTestServer(t)
	seedStore(store)

	rr := doRequest(srv, http.MethodGet, "/api/transactions?limit=2", "")
	if rr.Code != 200 {
		t.Fatalf("status=%d", rr.Code)
	}
	var rows []transactionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].ID != "3" || rows[1].ID != "2" {
		t.Fatalf("expected newest first, got %+v", rows)
	}
}

func TestCreateTransaction(t *testing.T) {
	srv, store := newTestServer(t)

	rr := doRequest(srv, http.MethodPost, "/api/transactions",
		`{"description":"Groceries","amount":"45.50","date":"2024-03-15","category":"Food","type":"expense"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["id"] == "" {
		t.Fatal("expected created id")
	}

	rows, _ := store.ListTransactions(context.Background(), "default")
	if len(rows) != 1 || rows[0].Amount != "45.50" {
		t.Fatalf("row not stored: %+v", rows)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"invalid amount", `{"amount":"abc","date":"2024-03-15","type":"expense","category":"Food"}`, 422},
		{"zero amount", `{"amount":"0","date":"2024-03-15","type":"expense","category":"Food"}`, 422},
		{"unknown type", `{"amount":"10","date":"2024-03-15","type":"transfer","category":"Food"}`, 422},
		{"bad date", `{"amount":"10","date":"15/03/2024","type":"expense","category":"Food"}`, 422},
		{"expense without category", `{"amount":"10","date":"2024-03-15","type":"expense"}`, 422},
		{"not json", `description=x&amount=10`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(srv, http.MethodPost, "/api/transactions", tc.body)
			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestCreateInvalidatesSnapshot(t *testing.T) {
	srv, store := newTestServer(t)
	seedStore(store)

	before := doRequest(srv, http.MethodGet, "/api/dashboard", "")
	doRequest(srv, http.MethodPost, "/api/transactions",
		`{"description":"Coffee","amount":"3.00","date":"2024-02-10","category":"Food","type":"expense"}`)
	after := doRequest(srv, http.MethodGet, "/api/dashboard", "")

	var a, b dashboardResponse
	_ = json.Unmarshal(before.Body.Bytes(), &a)
	_ = json.Unmarshal(after.Body.Bytes(), &b)
	if b.Version <= a.Version {
		t.Fatalf("write should invalidate the cached snapshot: %d then %d", a.Version, b.Version)
	}
	if b.Summary.TransactionCount != a.Summary.TransactionCount+1 {
		t.Fatalf("new row missing from refreshed view: %+v", b.Summary)
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv, store := newTestServer(t)
	seedStore(store)

	rr := doRequest(srv, http.MethodDelete, "/api/transactions/2", "")
	if rr.Code != 200 {
		t.Fatalf("status=%d", rr.Code)
	}
	rows, _ := store.ListTransactions(context.Background(), "default")
	for _, row := range rows {
		if row.ID == "2" {
			t.Fatal("row still present after delete")
		}
	}

	if rr := doRequest(srv, http.MethodGet, "/api/transactions/2", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET on item path, got %d", rr.Code)
	}
}

func TestSpendingGoal(t *testing.T) {
	srv, store := newTestServer(t)

	rr := doRequest(srv, http.MethodPut, "/api/settings/spending-goal", `{"spending_goal":"200.00"}`)
	if rr.Code != 200 {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	cfg, _ := store.ReadSettings(context.Background(), "default")
	if cfg.SpendingGoal.Cents != 20000 {
		t.Fatalf("goal = %d", cfg.SpendingGoal.Cents)
	}

	if rr := doRequest(srv, http.MethodPut, "/api/settings/spending-goal", `{"spending_goal":"-5"}`); rr.Code != 422 {
		t.Fatalf("negative goal should be 422, got %d", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	cases := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/dashboard"},
		{http.MethodDelete, "/api/transactions"},
		{http.MethodGet, "/api/settings/spending-goal"},
	}
	for _, tc := range cases {
		if rr := doRequest(srv, tc.method, tc.path, ""); rr.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s expected 405, got %d", tc.method, tc.path, rr.Code)
		}
	}
}
