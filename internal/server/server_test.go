package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/googol23/ExpenseTracker/internal/ledger"
	"github.com/googol23/ExpenseTracker/internal/models"
	"github.com/googol23/ExpenseTracker/internal/observability"
	"github.com/googol23/ExpenseTracker/internal/storage/sqlite"
)

// setupTestServer creates a test server over a fresh SQLite database.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "server-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := New(ledger.New(store), observability.New(), "")
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d, want 200", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode %s response: %v", url, err)
	}
}

func addTestMember(t *testing.T, ts *httptest.Server, name string) {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/members", map[string]string{"name": name})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add member %s status = %d, want 201", name, resp.StatusCode)
	}
}

func fetchBalances(t *testing.T, ts *httptest.Server) map[string]models.Balance {
	t.Helper()
	var balances []models.Balance
	getJSON(t, ts.URL+"/api/balances", &balances)
	byName := make(map[string]models.Balance, len(balances))
	for _, b := range balances {
		byName[b.Name] = b
	}
	return byName
}

func TestMemberAndBalanceFlow(t *testing.T) {
	ts := setupTestServer(t)

	addTestMember(t, ts, "Alice")
	addTestMember(t, ts, "Bob")

	resp := postJSON(t, ts.URL+"/api/expenses", map[string]any{
		"description": "Lunch",
		"amount":      30.0,
		"paid_by":     "Alice",
		"shares":      nil,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense status = %d, want 201", resp.StatusCode)
	}

	balances := fetchBalances(t, ts)
	if math.Abs(balances["Alice"].NetBalance-15.0) > 0.01 {
		t.Errorf("Alice net = %v, want +15.0", balances["Alice"].NetBalance)
	}
	if math.Abs(balances["Bob"].NetBalance+15.0) > 0.01 {
		t.Errorf("Bob net = %v, want -15.0", balances["Bob"].NetBalance)
	}

	var transfers []models.Transfer
	getJSON(t, ts.URL+"/api/settlements", &transfers)
	if len(transfers) != 1 {
		t.Fatalf("got %d settlements, want 1: %v", len(transfers), transfers)
	}
	if transfers[0].From != "Bob" || transfers[0].To != "Alice" || math.Abs(transfers[0].Amount-15.0) > 0.01 {
		t.Errorf("settlement = %+v, want Bob pays Alice 15.0", transfers[0])
	}
}

func TestCreateExpenseWithManualShares(t *testing.T) {
	ts := setupTestServer(t)

	addTestMember(t, ts, "Alice")
	addTestMember(t, ts, "Bob")

	resp := postJSON(t, ts.URL+"/api/expenses", map[string]any{
		"description": "Dinner",
		"amount":      100.0,
		"paid_by":     "Bob",
		"shares":      map[string]float64{"Alice": 40.0, "Bob": 60.0},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense status = %d, want 201", resp.StatusCode)
	}

	balances := fetchBalances(t, ts)
	if math.Abs(balances["Bob"].NetBalance-40.0) > 0.01 {
		t.Errorf("Bob net = %v, want +40.0", balances["Bob"].NetBalance)
	}
	if math.Abs(balances["Alice"].NetBalance+40.0) > 0.01 {
		t.Errorf("Alice net = %v, want -40.0", balances["Alice"].NetBalance)
	}
}

func TestCreateExpenseWithSubsetShares(t *testing.T) {
	ts := setupTestServer(t)

	addTestMember(t, ts, "Alice")
	addTestMember(t, ts, "Bob")
	addTestMember(t, ts, "Charlie")

	resp := postJSON(t, ts.URL+"/api/expenses", map[string]any{
		"description": "Movie tickets",
		"amount":      30.0,
		"paid_by":     "Bob",
		"shares":      []string{"Alice", "Bob"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense status = %d, want 201", resp.StatusCode)
	}

	balances := fetchBalances(t, ts)
	if balances["Charlie"].TotalOwed != 0 {
		t.Errorf("Charlie owed = %v, want 0 (not a participant)", balances["Charlie"].TotalOwed)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	ts := setupTestServer(t)
	addTestMember(t, ts, "Alice")
	addTestMember(t, ts, "Bob")

	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "missing required fields",
			body: map[string]any{"amount": 10.0},
		},
		{
			name: "non-positive amount",
			body: map[string]any{"description": "Bad", "amount": -5.0, "paid_by": "Alice"},
		},
		{
			name: "mismatched manual shares",
			body: map[string]any{
				"description": "Bad math",
				"amount":      100.0,
				"paid_by":     "Alice",
				"shares":      map[string]float64{"Alice": 40.0, "Bob": 50.0},
			},
		},
		{
			name: "unknown payer",
			body: map[string]any{"description": "Ghost", "amount": 10.0, "paid_by": "Mallory"},
		},
		{
			name: "invalid shares shape",
			body: map[string]any{"description": "Odd", "amount": 10.0, "paid_by": "Alice", "shares": 42},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/expenses", tt.body)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected a human-readable error message")
			}
		})
	}

	// None of the rejected requests may have persisted anything.
	var expenses []models.Expense
	getJSON(t, ts.URL+"/api/expenses", &expenses)
	if len(expenses) != 0 {
		t.Errorf("got %d expenses after rejected requests, want 0", len(expenses))
	}
}

func TestAddMemberValidation(t *testing.T) {
	ts := setupTestServer(t)

	resp := postJSON(t, ts.URL+"/api/members", map[string]string{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing name status = %d, want 400", resp.StatusCode)
	}
}

func TestDuplicateMemberKeepsSingleRecord(t *testing.T) {
	ts := setupTestServer(t)

	addTestMember(t, ts, "Alice")
	// The duplicate is accepted as a no-op, not an error.
	addTestMember(t, ts, "Alice")

	var names []string
	getJSON(t, ts.URL+"/api/members", &names)
	if len(names) != 1 || names[0] != "Alice" {
		t.Errorf("members = %v, want exactly [Alice]", names)
	}
}

func TestListExpensesIncludesSplits(t *testing.T) {
	ts := setupTestServer(t)

	addTestMember(t, ts, "Alice")
	addTestMember(t, ts, "Bob")

	resp := postJSON(t, ts.URL+"/api/expenses", map[string]any{
		"description": "Groceries",
		"amount":      50.0,
		"paid_by":     "Alice",
	})
	resp.Body.Close()

	var expenses []models.Expense
	getJSON(t, ts.URL+"/api/expenses", &expenses)
	if len(expenses) != 1 {
		t.Fatalf("got %d expenses, want 1", len(expenses))
	}
	e := expenses[0]
	if e.Description != "Groceries" || e.PaidBy != "Alice" {
		t.Errorf("expense = %+v, want Groceries paid by Alice", e)
	}
	if len(e.Splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(e.Splits))
	}
	for _, split := range e.Splits {
		if math.Abs(split.Share-25.0) > 0.01 {
			t.Errorf("%s share = %v, want 25.0", split.Member, split.Share)
		}
	}
}

func TestSettlementsEmptyWhenSettled(t *testing.T) {
	ts := setupTestServer(t)

	// No members at all.
	var transfers []models.Transfer
	getJSON(t, ts.URL+"/api/settlements", &transfers)
	if len(transfers) != 0 {
		t.Errorf("got %d settlements on empty pool, want 0", len(transfers))
	}

	// Members but no expenses.
	addTestMember(t, ts, "Alice")
	addTestMember(t, ts, "Bob")
	getJSON(t, ts.URL+"/api/settlements", &transfers)
	if len(transfers) != 0 {
		t.Errorf("got %d settlements with all-zero balances, want 0", len(transfers))
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	var body map[string]string
	getJSON(t, ts.URL+"/healthz", &body)
	if body["status"] != "ok" {
		t.Errorf("health status = %q, want ok", body["status"])
	}
}
