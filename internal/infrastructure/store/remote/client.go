// Package remote implements the record store as a client of the /api/expenses
// CRUD API. Identifiers are assigned by the server. The client never caches:
// every List goes back to the server.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

const (
	expensesPath   = "/api/expenses"
	defaultTimeout = 10 * time.Second
)

// Client is a ports.RecordStore backed by the remote API.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Client for the API rooted at baseURL
// (e.g. http://localhost:3000).
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// draftPayload is the request body of POST and PUT. Amounts go out as JSON
// numbers, the format the API binds.
type draftPayload struct {
	EmployeeName    string      `json:"employeeName"`
	WorkDate        string      `json:"workDate"`
	Destination     string      `json:"destination"`
	Category        string      `json:"category"`
	AmountWithdrawn json.Number `json:"amountWithdrawn"`
	Justification   json.Number `json:"justification"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toPayload(d domain.Draft) draftPayload {
	return draftPayload{
		EmployeeName:    d.EmployeeName,
		WorkDate:        d.WorkDate.String(),
		Destination:     d.Destination,
		Category:        d.Category,
		AmountWithdrawn: json.Number(d.AmountWithdrawn.String()),
		Justification:   json.Number(d.Justification.String()),
	}
}

func (c *Client) List(ctx context.Context) ([]domain.ExpenseRecord, error) {
	var out []domain.ExpenseRecord
	if err := c.do(ctx, http.MethodGet, expensesPath, nil, &out); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	if out == nil {
		out = []domain.ExpenseRecord{}
	}
	return out, nil
}

// Insert validates locally first so that an invalid draft never reaches the
// network.
func (c *Client) Insert(ctx context.Context, draft domain.Draft) (domain.ExpenseRecord, error) {
	draft, err := domain.Prepare(draft)
	if err != nil {
		return domain.ExpenseRecord{}, err
	}
	var out domain.ExpenseRecord
	if err := c.do(ctx, http.MethodPost, expensesPath, toPayload(draft), &out); err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("create expense: %w", err)
	}
	return out, nil
}

func (c *Client) Replace(ctx context.Context, id domain.ExpenseID, draft domain.Draft) (domain.ExpenseRecord, error) {
	draft, err := domain.Prepare(draft)
	if err != nil {
		return domain.ExpenseRecord{}, err
	}
	var out domain.ExpenseRecord
	if err := c.do(ctx, http.MethodPut, itemPath(id), toPayload(draft), &out); err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("update expense %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) Remove(ctx context.Context, id domain.ExpenseID) error {
	var out deleteResponse
	if err := c.do(ctx, http.MethodDelete, itemPath(id), nil, &out); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	if !out.Success {
		return fmt.Errorf("delete expense %s: %w: server did not confirm", id, domain.ErrTransport)
	}
	return nil
}

func itemPath(id domain.ExpenseID) string {
	return expensesPath + "/" + url.PathEscape(id.String())
}

// do performs one request/response exchange and classifies the outcome:
// 404 is ErrExpenseNotFound, 400/422 is ErrValidation, anything else that is
// not 2xx (and every network failure) is ErrTransport.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("expense api request failed")
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("expense api call")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", domain.ErrTransport, err)
		}
		return nil
	}

	msg := readError(resp.Body)
	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.ErrExpenseNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrTransport, resp.StatusCode, msg)
	}
}

func readError(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return err.Error()
	}
	var e errorResponse
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(raw))
}

// IsTransport reports whether err is a remote API failure, as opposed to a
// validation or not-found outcome.
func IsTransport(err error) bool {
	return errors.Is(err, domain.ErrTransport)
}
