package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

type stubExpenseService struct {
	listFn      func(ctx context.Context, query string) ([]domain.ExpenseRecord, error)
	createFn    func(ctx context.Context, d domain.Draft) (domain.ExpenseRecord, error)
	updateFn    func(ctx context.Context, id domain.ExpenseID, d domain.Draft) (domain.ExpenseRecord, error)
	deleteFn    func(ctx context.Context, id domain.ExpenseID) error
	summariesFn func(ctx context.Context, query string) ([]domain.EmployeeSummary, error)
	employeesFn func(ctx context.Context) ([]string, error)
	chartFn     func(ctx context.Context, employee, mode string) (domain.ChartData, error)
}

func (s *stubExpenseService) List(ctx context.Context, q string) ([]domain.ExpenseRecord, error) {
	return s.listFn(ctx, q)
}
func (s *stubExpenseService) Create(ctx context.Context, d domain.Draft) (domain.ExpenseRecord, error) {
	return s.createFn(ctx, d)
}
func (s *stubExpenseService) Update(ctx context.Context, id domain.ExpenseID, d domain.Draft) (domain.ExpenseRecord, error) {
	return s.updateFn(ctx, id, d)
}
func (s *stubExpenseService) Delete(ctx context.Context, id domain.ExpenseID) error {
	return s.deleteFn(ctx, id)
}
func (s *stubExpenseService) Summaries(ctx context.Context, q string) ([]domain.EmployeeSummary, error) {
	return s.summariesFn(ctx, q)
}
func (s *stubExpenseService) Employees(ctx context.Context) ([]string, error) {
	return s.employeesFn(ctx)
}
func (s *stubExpenseService) Chart(ctx context.Context, employee, mode string) (domain.ChartData, error) {
	return s.chartFn(ctx, employee, mode)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

const validBody = `{"employeeName":"Awa","workDate":"2024-03-14","destination":"Thiès","category":"Transport","amountWithdrawn":10000,"justification":4000}`

func TestExpenseHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubExpenseService{
		createFn: func(_ context.Context, d domain.Draft) (domain.ExpenseRecord, error) {
			if d.EmployeeName != "Awa" || d.WorkDate.String() != "2024-03-14" || !d.AmountWithdrawn.Equal(decimal.NewFromInt(10000)) {
				t.Fatalf("unexpected draft: %+v", d)
			}
			return d.WithID("1710406800000"), nil
		},
	}
	h := NewExpenseHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/expenses", validBody), rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(1710406800000) {
		t.Errorf("id should be a JSON number, got %#v", resp["id"])
	}
	if resp["balance"] != float64(6000) {
		t.Errorf("balance = %#v, want 6000", resp["balance"])
	}
}

func TestExpenseHandler_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing employee", `{"workDate":"2024-03-14","category":"Transport","amountWithdrawn":1,"justification":0}`, "employeeName is required"},
		{"bad date", `{"employeeName":"Awa","workDate":"14/03/2024","category":"Transport","amountWithdrawn":1,"justification":0}`, "workDate must be a date"},
		{"negative amount", `{"employeeName":"Awa","workDate":"2024-03-14","category":"Transport","amountWithdrawn":-5,"justification":0}`, "amountWithdrawn must be at least 0"},
		{"over-justified", `{"employeeName":"Awa","workDate":"2024-03-14","category":"Transport","amountWithdrawn":100,"justification":150}`, "justification must not exceed amountWithdrawn"},
		{"missing amount", `{"employeeName":"Awa","workDate":"2024-03-14","category":"Transport","justification":0}`, "amountWithdrawn is required"},
		{"blank name", `{"employeeName":"   ","workDate":"2024-03-14","category":"Transport","amountWithdrawn":1,"justification":0}`, "employee name is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			h := NewExpenseHandler(&stubExpenseService{
				createFn: func(context.Context, domain.Draft) (domain.ExpenseRecord, error) {
					t.Fatal("service must not be called")
					return domain.ExpenseRecord{}, nil
				},
			})

			c := e.NewContext(jsonRequest(http.MethodPost, "/api/expenses", tc.body), httptest.NewRecorder())
			err := h.Create(c)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestExpenseHandler_Create_MalformedJSON(t *testing.T) {
	e := newTestEcho()
	h := NewExpenseHandler(&stubExpenseService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/expenses", `{"employeeName":`), httptest.NewRecorder())
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestExpenseHandler_Create_AcceptsStringAmounts(t *testing.T) {
	e := newTestEcho()
	h := NewExpenseHandler(&stubExpenseService{
		createFn: func(_ context.Context, d domain.Draft) (domain.ExpenseRecord, error) {
			if d.AmountWithdrawn.String() != "1500.5" {
				t.Fatalf("amount = %s", d.AmountWithdrawn)
			}
			return d.WithID("1"), nil
		},
	})

	body := `{"employeeName":"Awa","workDate":"2024-03-14","category":"Transport","amountWithdrawn":"1500.50","justification":"0"}`
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(jsonRequest(http.MethodPost, "/api/expenses", body), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestExpenseHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewExpenseHandler(&stubExpenseService{
		updateFn: func(_ context.Context, id domain.ExpenseID, _ domain.Draft) (domain.ExpenseRecord, error) {
			if id != "42" {
				t.Fatalf("id = %q", id)
			}
			return domain.ExpenseRecord{}, domain.ErrExpenseNotFound
		},
	})

	c := e.NewContext(jsonRequest(http.MethodPut, "/api/expenses/42", validBody), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Update(c); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}

func TestExpenseHandler_Delete(t *testing.T) {
	e := newTestEcho()
	var deleted domain.ExpenseID
	h := NewExpenseHandler(&stubExpenseService{
		deleteFn: func(_ context.Context, id domain.ExpenseID) error {
			deleted = id
			return nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/expenses/7", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "7" {
		t.Errorf("deleted %q", deleted)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"success":true}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestExpenseHandler_List_PassesQuery(t *testing.T) {
	e := newTestEcho()
	h := NewExpenseHandler(&stubExpenseService{
		listFn: func(_ context.Context, q string) ([]domain.ExpenseRecord, error) {
			if q != "awa" {
				t.Fatalf("query = %q", q)
			}
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/expenses?q=awa", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty list should encode as [], got %s", rec.Body.String())
	}
}
