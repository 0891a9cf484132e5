// Package sheets delivers finished orders to the spreadsheet-backed
// Apps Script endpoint.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dillkhus/order-api/internal/enum"
	"github.com/dillkhus/order-api/internal/order"
)

// Placeholder is the unconfigured endpoint sentinel some deployments ship
// with. Submitting against it fails immediately instead of hitting the wire.
const Placeholder = "YOUR_GOOGLE_SCRIPT_URL"

// ErrNotConfigured means the endpoint URL is unset or still the placeholder.
var ErrNotConfigured = errors.New("sheets: endpoint URL is not configured")

// TransportError is a network or HTTP failure that survived every retry.
type TransportError struct {
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sheets: submission failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerRejection means the endpoint read the order and explicitly refused
// it. Never retried; the server already made up its mind.
type ServerRejection struct {
	Message string
}

func (e *ServerRejection) Error() string {
	return fmt.Sprintf("sheets: server rejected order: %s", e.Message)
}

// statusResponse is the readable body the json transport contract expects.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Client POSTs order payloads to one configured endpoint using one of the
// two transport contracts (see enum.TransportOpaque / enum.TransportJSON).
type Client struct {
	url        string
	mode       string
	policy     RetryPolicy
	httpClient *http.Client

	// sleep waits between attempts; swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a submission client. mode selects the transport
// contract; httpClient may be nil to use a default with a sane timeout.
func NewClient(url, mode string, policy RetryPolicy, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		url:        url,
		mode:       mode,
		policy:     policy,
		httpClient: httpClient,
		sleep:      sleepContext,
	}
}

// Send delivers the payload, retrying transport failures on the client's
// retry schedule. Opaque mode treats any completed round trip as success;
// json mode requires {"status":"success"} and turns anything else into a
// ServerRejection, which is not retried.
func (c *Client) Send(ctx context.Context, payload order.SubmissionPayload) error {
	if c.url == "" || c.url == Placeholder {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sheets: marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.policy.Delay(attempt-1)); err != nil {
				return &TransportError{Attempts: attempt - 1, Err: err}
			}
		}

		err := c.post(ctx, body)
		if err == nil {
			return nil
		}
		var rejection *ServerRejection
		if errors.As(err, &rejection) {
			return err
		}
		lastErr = err
	}
	return &TransportError{Attempts: c.policy.MaxAttempts, Err: lastErr}
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post order: %w", err)
	}
	defer resp.Body.Close()

	if c.mode == enum.TransportOpaque {
		// The no-cors deployment gives back an opaque response; reaching
		// the endpoint at all is the success signal.
		return nil
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if status.Status != "success" {
		msg := status.Message
		if msg == "" {
			msg = "failed to process order"
		}
		return &ServerRejection{Message: msg}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
