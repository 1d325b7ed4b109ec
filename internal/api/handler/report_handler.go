package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestion-frais/expense-ledger/internal/core/ledger"
	"github.com/gestion-frais/expense-ledger/internal/core/ports"
	"github.com/gestion-frais/expense-ledger/internal/core/view"
)

const reportTitle = "Frais de mission"

// ReportHandler serves the read-only aggregate views: summaries, charts and
// exports.
type ReportHandler struct {
	service   ports.ExpenseService
	projector *view.Projector
	renderer  ports.ChartRenderer
	exporter  ports.TableExporter
}

func NewReportHandler(service ports.ExpenseService, projector *view.Projector, renderer ports.ChartRenderer, exporter ports.TableExporter) *ReportHandler {
	return &ReportHandler{
		service:   service,
		projector: projector,
		renderer:  renderer,
		exporter:  exporter,
	}
}

// Summaries handles GET /api/summaries.
//
// @Summary      Per-employee totals
// @Tags         reports
// @Produce      json
// @Param        q    query     string  false  "Employee name filter"
// @Success      200  {array}   summaryResponse
// @Router       /api/summaries [get]
func (h *ReportHandler) Summaries(c echo.Context) error {
	summaries, err := h.service.Summaries(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponses(summaries))
}

// Employees handles GET /api/employees.
//
// @Summary      Distinct employee names
// @Tags         reports
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/employees [get]
func (h *ReportHandler) Employees(c echo.Context) error {
	names, err := h.service.Employees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, names)
}

// Chart handles GET /api/charts.
//
// @Summary      Chart data
// @Tags         reports
// @Produce      json
// @Param        employee  query     string  false  "Employee name or \"all\""
// @Param        mode      query     string  false  "summary or category"
// @Success      200       {object}  chartResponse
// @Router       /api/charts [get]
func (h *ReportHandler) Chart(c echo.Context) error {
	data, err := h.service.Chart(c.Request().Context(), c.QueryParam("employee"), c.QueryParam("mode"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChartResponse(data))
}

// ChartImage handles GET /api/charts/image.
//
// @Summary      Chart as PNG
// @Tags         reports
// @Produce      png
// @Param        employee  query  string  false  "Employee name or \"all\""
// @Param        mode      query  string  false  "summary or category"
// @Param        type      query  string  false  "bar or line"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Router       /api/charts/image [get]
func (h *ReportHandler) ChartImage(c echo.Context) error {
	employee := c.QueryParam("employee")
	data, err := h.service.Chart(c.Request().Context(), employee, c.QueryParam("mode"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, ledger.ChartTitle(employee), c.QueryParam("type"), data); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// Dashboard handles GET /api/dashboard: everything the ledger screen shows,
// already formatted.
//
// @Summary      Projected ledger screen
// @Tags         reports
// @Produce      json
// @Param        q         query     string  false  "Search query"
// @Param        employee  query     string  false  "Chart employee filter"
// @Param        mode      query     string  false  "Chart mode"
// @Success      200       {object}  dashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	in := ports.DashboardInput{
		Query:          c.QueryParam("q"),
		EmployeeFilter: c.QueryParam("employee"),
		ChartMode:      string(ledger.ParseChartMode(c.QueryParam("mode"))),
	}
	if in.EmployeeFilter == "" {
		in.EmployeeFilter = ledger.AllEmployees
	}

	records, err := h.service.List(ctx, in.Query)
	if err != nil {
		return err
	}
	summaries, err := h.service.Summaries(ctx, in.Query)
	if err != nil {
		return err
	}
	employees, err := h.service.Employees(ctx)
	if err != nil {
		return err
	}
	chart, err := h.service.Chart(ctx, in.EmployeeFilter, in.ChartMode)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Details:        h.projector.Details(records),
		Summaries:      h.projector.Summaries(summaries),
		Employees:      employees,
		EmployeeFilter: in.EmployeeFilter,
		ChartMode:      in.ChartMode,
		Chart:          toChartResponse(chart),
	})
}

// ExpensesPDF handles GET /api/reports/expenses.pdf.
//
// @Summary      Export detail and summary tables to PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        q  query  string  false  "Search query"
// @Success      200
// @Router       /api/reports/expenses.pdf [get]
func (h *ReportHandler) ExpensesPDF(c echo.Context) error {
	ctx := c.Request().Context()
	q := c.QueryParam("q")

	records, err := h.service.List(ctx, q)
	if err != nil {
		return err
	}
	summaries, err := h.service.Summaries(ctx, q)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = h.exporter.Export(&buf, reportTitle,
		view.DetailTable(h.projector.Details(records)),
		view.SummaryTable(h.projector.Summaries(summaries)),
	)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="expenses.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
