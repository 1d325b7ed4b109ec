package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gestion-frais/expense-ledger/internal/core/service"
	"github.com/gestion-frais/expense-ledger/internal/core/view"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/chart"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/export"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/store/local"
)

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := local.Open(context.Background(), &memKV{data: map[string][]byte{}})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	e := NewRouter(Deps{
		Service:   service.NewExpenseService(store, zerolog.Nop()),
		Projector: view.NewProjector("en", ""),
		Renderer:  chart.NewPNGRenderer(),
		Exporter:  export.NewPDFExporter(),
		Logger:    zerolog.Nop(),
		Registry:  prometheus.NewRegistry(),
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestRouter_ExpenseLifecycle(t *testing.T) {
	srv := newTestServer(t)
	api := srv.URL + "/api/expenses"

	resp, created := do(t, http.MethodPost, api,
		`{"employeeName":"Awa","workDate":"2024-03-14","category":"Transport","amountWithdrawn":10000,"justification":4000}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}
	id, ok := created["id"].(float64)
	if !ok {
		t.Fatalf("id should be numeric, got %#v", created["id"])
	}
	itemURL := api + "/" + jsonInt(id)

	resp, body := do(t, http.MethodPut, itemURL,
		`{"employeeName":"Awa","workDate":"2024-03-14","category":"Transport","amountWithdrawn":10000,"justification":12000}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("over-justified update: status %d", resp.StatusCode)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "justification") {
		t.Errorf("error envelope = %v", body)
	}

	resp, updated := do(t, http.MethodPut, itemURL,
		`{"employeeName":"Awa","workDate":"2024-03-14","category":"Transport","amountWithdrawn":10000,"justification":10000}`)
	if resp.StatusCode != http.StatusOK || updated["balance"] != float64(0) {
		t.Fatalf("update: status %d body %v", resp.StatusCode, updated)
	}

	resp, deleted := do(t, http.MethodDelete, itemURL, "")
	if resp.StatusCode != http.StatusOK || deleted["success"] != true {
		t.Fatalf("delete: status %d body %v", resp.StatusCode, deleted)
	}

	resp, body = do(t, http.MethodDelete, itemURL, "")
	if resp.StatusCode != http.StatusNotFound || body["error"] != "expense not found" {
		t.Fatalf("second delete: status %d body %v", resp.StatusCode, body)
	}
}

func TestRouter_MalformedBodyIs400(t *testing.T) {
	srv := newTestServer(t)
	resp, body := do(t, http.MethodPost, srv.URL+"/api/expenses", `{"employeeName":`)
	if resp.StatusCode != http.StatusBadRequest || body["error"] == nil {
		t.Fatalf("status %d body %v", resp.StatusCode, body)
	}
}

func TestRouter_ReportsAndProbes(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/api/expenses",
		`{"employeeName":"Awa","workDate":"2024-03-14","category":"Transport","amountWithdrawn":1500,"justification":0}`)

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/api/summaries", http.StatusOK, "application/json"},
		{"/api/employees", http.StatusOK, "application/json"},
		{"/api/charts?mode=category", http.StatusOK, "application/json"},
		{"/api/charts/image?type=bar", http.StatusOK, "image/png"},
		{"/api/charts/image?type=pie", http.StatusBadRequest, "application/json"},
		{"/api/dashboard", http.StatusOK, "application/json"},
		{"/api/reports/expenses.pdf", http.StatusOK, "application/pdf"},
		{"/health", http.StatusOK, "application/json"},
		{"/health/ready", http.StatusOK, "application/json"},
		{"/metrics", http.StatusOK, "text/plain"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tc.path)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tc.contentType) {
				t.Errorf("content type = %q, want %s", ct, tc.contentType)
			}
		})
	}
}

func jsonInt(f float64) string {
	b, _ := json.Marshal(int64(f))
	return string(b)
}
