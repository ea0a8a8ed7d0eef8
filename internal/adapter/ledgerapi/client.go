// Package ledgerapi implements the HTTP collaborators of the engine: the
// ledger's write endpoint and its history query endpoint.
package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerview/internal/domain"
	"github.com/iho/ledgerview/internal/infrastructure/metrics"
)

const idempotencyKeyHeader = "X-Idempotency-Key"

// Client talks to the ledger API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics

	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// Config for Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// MaxRetries bounds retries of the idempotent history GET. Writes are
	// never retried here; the caller decides whether to resubmit.
	MaxRetries int
}

// New creates a new Client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}

	return &Client{
		baseURL:         cfg.BaseURL,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		logger:          cfg.Logger,
		metrics:         cfg.Metrics,
		maxRetries:      cfg.MaxRetries,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
	}
}

// History fetches the authoritative transaction history for an account and
// translates it into canonical records. Transient failures are retried with
// exponential backoff; the GET is idempotent.
func (c *Client) History(ctx context.Context, accountID string) ([]domain.TransactionRecord, error) {
	start := time.Now()

	rows, err := c.fetchHistory(ctx, accountID)

	if c.metrics != nil {
		c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
		c.metrics.HistoryFetches.WithLabelValues(resultLabel(err)).Inc()
	}

	if err != nil {
		return nil, err
	}

	records := make([]domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		rec := row.toDomain()
		if rec.ID == "" {
			c.logger.WarnContext(ctx, "history row without id skipped",
				slog.Int("status_code", row.StatusCode))
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func (c *Client) fetchHistory(ctx context.Context, accountID string) ([]historyRecord, error) {
	endpoint := fmt.Sprintf("%s/api/ledger/history?accountId=%s", c.baseURL, url.QueryEscape(accountID))

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = c.maxInterval

	var rows []historyRecord

	retryCount := 0
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			retryCount++
			if retryCount > c.maxRetries {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
				return backoff.Permanent(fmt.Errorf("decode history response: %w", err))
			}
			return nil
		case resp.StatusCode >= 500:
			err := fmt.Errorf("history endpoint returned %d", resp.StatusCode)
			retryCount++
			if retryCount > c.maxRetries {
				return backoff.Permanent(err)
			}
			return err
		default:
			return backoff.Permanent(c.responseError(resp, "history fetch rejected"))
		}
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}

	return rows, nil
}

// SubmitTransfer posts a transfer to the write endpoint with the caller's
// idempotency key. Acceptance is any 2xx; the ledger answers 202 and settles
// asynchronously. Failures wrap domain.ErrSubmission and must not produce
// any local record.
func (c *Client) SubmitTransfer(ctx context.Context, idempotencyKey, fromID, toID string, amount decimal.Decimal) error {
	start := time.Now()
	err := c.submitTransfer(ctx, idempotencyKey, fromID, toID, amount)

	if c.metrics != nil {
		c.metrics.SubmissionDuration.Observe(time.Since(start).Seconds())
		c.metrics.Submissions.WithLabelValues(resultLabel(err)).Inc()
	}

	return err
}

func (c *Client) submitTransfer(ctx context.Context, idempotencyKey, fromID, toID string, amount decimal.Decimal) error {
	body, err := json.Marshal(transferRequest{
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSubmission, err)
	}

	endpoint := c.baseURL + "/api/ledger/transfer"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSubmission, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyKeyHeader, idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSubmission, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %w", domain.ErrSubmission, c.responseError(resp, "write rejected"))
	}

	io.Copy(io.Discard, resp.Body)

	return nil
}

// responseError extracts the ledger's error body, falling back to the status.
func (c *Client) responseError(resp *http.Response, msg string) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.text() != "" {
		return fmt.Errorf("%s: %s (status %d)", msg, body.text(), resp.StatusCode)
	}

	return fmt.Errorf("%s: status %d", msg, resp.StatusCode)
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
