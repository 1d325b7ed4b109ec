package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestion-frais/expense-ledger/internal/api/metrics"
	"github.com/gestion-frais/expense-ledger/internal/core/domain"
	"github.com/gestion-frais/expense-ledger/internal/core/ports"
)

// ExpenseHandler handles the CRUD endpoints under /api/expenses.
type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// List handles GET /api/expenses.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        q    query     string  false  "Case-insensitive search over every field"
// @Success      200  {array}   expenseResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseResponses(records))
}

// Create handles POST /api/expenses.
//
// @Summary      Record a new expense advance
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body      expenseRequest  true  "Expense"
// @Success      201   {object}  expenseResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	draft, err := bindDraft(c)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("create", resultOf(err)).Inc()
		return err
	}

	rec, err := h.service.Create(c.Request().Context(), draft)
	metrics.MutationsTotal.WithLabelValues("create", resultOf(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toExpenseResponse(rec))
}

// Update handles PUT /api/expenses/:id.
//
// @Summary      Replace an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Expense id"
// @Param        body  body      expenseRequest  true  "Expense"
// @Success      200   {object}  expenseResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	draft, err := bindDraft(c)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("update", resultOf(err)).Inc()
		return err
	}

	rec, err := h.service.Update(c.Request().Context(), domain.ExpenseID(c.Param("id")), draft)
	metrics.MutationsTotal.WithLabelValues("update", resultOf(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseResponse(rec))
}

// Delete handles DELETE /api/expenses/:id.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Param        id   path      string  true  "Expense id"
// @Success      200  {object}  deleteResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	err := h.service.Delete(c.Request().Context(), domain.ExpenseID(c.Param("id")))
	metrics.MutationsTotal.WithLabelValues("delete", resultOf(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}

// bindDraft decodes and validates the request body. Tag validation failures
// are reported as ErrValidation so they share the 422 path with the domain
// rules.
func bindDraft(c echo.Context) (domain.Draft, error) {
	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return domain.Draft{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			for _, f := range ve.Fields {
				metrics.ValidationRejectionsTotal.WithLabelValues(f).Inc()
			}
		}
		return domain.Draft{}, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	draft, err := toDraft(req)
	if err != nil {
		metrics.ValidationRejectionsTotal.WithLabelValues("workDate").Inc()
		return domain.Draft{}, err
	}
	if err := draft.Validate(); err != nil {
		metrics.ValidationRejectionsTotal.WithLabelValues("record").Inc()
		return domain.Draft{}, err
	}
	return draft, nil
}

func resultOf(err error) string {
	var he *echo.HTTPError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation), errors.As(err, &he):
		return "invalid"
	case errors.Is(err, domain.ErrExpenseNotFound):
		return "not_found"
	default:
		return "error"
	}
}
