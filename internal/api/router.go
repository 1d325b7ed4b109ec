package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gestion-frais/expense-ledger/docs"
	"github.com/gestion-frais/expense-ledger/internal/api/handler"
	"github.com/gestion-frais/expense-ledger/internal/api/middleware"
	"github.com/gestion-frais/expense-ledger/internal/core/ports"
	"github.com/gestion-frais/expense-ledger/internal/core/view"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Service   ports.ExpenseService
	Projector *view.Projector
	Renderer  ports.ChartRenderer
	Exporter  ports.TableExporter
	Readiness map[string]ports.Pinger
	Logger    zerolog.Logger
	// Registry receives the HTTP metrics; nil means the default registry,
	// which also holds the domain metrics.
	Registry *prometheus.Registry
	// CORSOrigins allows browser front ends served from another origin.
	CORSOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	if len(d.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: d.CORSOrigins}))
	}

	// --- Expense routes ---
	expenses := handler.NewExpenseHandler(d.Service)
	reports := handler.NewReportHandler(d.Service, d.Projector, d.Renderer, d.Exporter)

	g := e.Group("/api")
	g.GET("/expenses", expenses.List)
	g.POST("/expenses", expenses.Create)
	g.PUT("/expenses/:id", expenses.Update)
	g.DELETE("/expenses/:id", expenses.Delete)

	g.GET("/summaries", reports.Summaries)
	g.GET("/employees", reports.Employees)
	g.GET("/charts", reports.Chart)
	g.GET("/charts/image", reports.ChartImage)
	g.GET("/dashboard", reports.Dashboard)
	g.GET("/reports/expenses.pdf", reports.ExpensesPDF)

	// --- Health probes ---
	health := handler.NewHealthHandler(d.Readiness)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
