// Package orderapi implements the OrderSubmitter port over the fulfillment
// backend's HTTP API. Every attempt for one checkout carries the same
// Idempotency-Key header, so retries and duplicate deliveries collapse into
// at most one backend order.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"checkout/internal/core/ports"
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 250 * time.Millisecond
)

// Client submits orders to the fulfillment backend.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	maxAttempts    int
	initialBackoff time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithMaxAttempts overrides how many times a submission is tried before
// giving up. The count includes the first attempt.
func WithMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithInitialBackoff overrides the delay before the first retry. The delay
// doubles after every failed attempt.
func WithInitialBackoff(backoff time.Duration) Option {
	return func(c *Client) {
		if backoff > 0 {
			c.initialBackoff = backoff
		}
	}
}

// NewClient creates a submitter for the backend at baseURL. The timeout
// bounds each individual attempt, not the whole retry sequence.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	client := &Client{
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: timeout},
		maxAttempts:    defaultMaxAttempts,
		initialBackoff: defaultInitialBackoff,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type submissionPayload struct {
	Token       string             `json:"token"`
	Contact     contactPayload     `json:"contact"`
	Fulfillment fulfillmentPayload `json:"fulfillment"`
	Payment     paymentPayload     `json:"payment"`
	Items       []itemPayload      `json:"items"`
	Subtotal    string             `json:"subtotal"`
}

type contactPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type fulfillmentPayload struct {
	Type          string          `json:"type"`
	Address       *addressPayload `json:"address,omitempty"`
	BranchID      string          `json:"branch_id,omitempty"`
	ScheduledAt   string          `json:"scheduled_at,omitempty"`
	EstimatedTime string          `json:"estimated_time"`
}

type addressPayload struct {
	Street    string `json:"street"`
	Building  string `json:"building"`
	Area      string `json:"area"`
	City      string `json:"city"`
	Floor     string `json:"floor,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type paymentPayload struct {
	Method  string `json:"method"`
	Summary string `json:"summary"`
}

type itemPayload struct {
	ProductID string `json:"product_id"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

type submissionResult struct {
	OrderNumber string `json:"order_number"`
	Duplicate   bool   `json:"duplicate"`
}

// Submit sends the order to the backend, retrying transient failures with
// exponential backoff. Client errors (HTTP 4xx other than 409) are not
// retried; a 409 means the backend already accepted this token and is
// treated as success.
func (c *Client) Submit(ctx context.Context, request ports.SubmissionRequest) (ports.SubmissionResponse, error) {
	payload, err := buildPayload(request)
	if err != nil {
		return ports.SubmissionResponse{}, fmt.Errorf("%w: %w", ports.ErrSubmissionFailed, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.SubmissionResponse{}, fmt.Errorf("%w: %w", ports.ErrSubmissionFailed, err)
	}

	backoff := c.initialBackoff
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ports.SubmissionResponse{}, fmt.Errorf("%w: %w", ports.ErrSubmissionFailed, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		response, retryable, attemptErr := c.attempt(ctx, request.Token.String(), body)
		if attemptErr == nil {
			return response, nil
		}
		lastErr = attemptErr
		if !retryable {
			break
		}
	}

	return ports.SubmissionResponse{}, fmt.Errorf("%w: %w", ports.ErrSubmissionFailed, lastErr)
}

// attempt performs one HTTP round trip. The second return reports whether
// the failure is worth retrying.
func (c *Client) attempt(ctx context.Context, token string, body []byte) (ports.SubmissionResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return ports.SubmissionResponse{}, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.SubmissionResponse{}, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var result submissionResult
		if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
			return ports.SubmissionResponse{}, false, decodeErr
		}
		return ports.SubmissionResponse{OrderNumber: result.OrderNumber, Duplicate: result.Duplicate}, false, nil

	case resp.StatusCode == http.StatusConflict:
		// The backend already holds an order for this token.
		var result submissionResult
		if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
			return ports.SubmissionResponse{}, false, decodeErr
		}
		return ports.SubmissionResponse{OrderNumber: result.OrderNumber, Duplicate: true}, false, nil

	case resp.StatusCode >= http.StatusInternalServerError:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ports.SubmissionResponse{}, true, fmt.Errorf("backend returned %s", resp.Status)

	default:
		payload, _ := io.ReadAll(resp.Body)
		return ports.SubmissionResponse{}, false, fmt.Errorf("backend rejected submission with %s: %s",
			resp.Status, string(payload))
	}
}

func buildPayload(request ports.SubmissionRequest) (submissionPayload, error) {
	subtotal, err := request.Snapshot.Subtotal()
	if err != nil {
		return submissionPayload{}, err
	}

	payload := submissionPayload{
		Token: request.Token.String(),
		Contact: contactPayload{
			Name:  request.Contact.Name(),
			Phone: request.Contact.Phone(),
			Email: request.Contact.Email(),
		},
		Fulfillment: fulfillmentPayload{
			Type:          request.Fulfillment.Type().String(),
			EstimatedTime: request.Fulfillment.EstimatedTime(),
		},
		Payment: paymentPayload{
			Method:  request.Payment.Method().String(),
			Summary: request.Payment.Summary(),
		},
	}

	if address, ok := request.Fulfillment.Address(); ok {
		payload.Fulfillment.Address = &addressPayload{
			Street:    address.Street(),
			Building:  address.Building(),
			Area:      address.Area(),
			City:      address.City(),
			Floor:     address.Floor(),
			Apartment: address.Apartment(),
			Notes:     address.Notes(),
		}
	}
	if branch, ok := request.Fulfillment.Branch(); ok {
		payload.Fulfillment.BranchID = branch.ID().String()
	}
	if at, ok := request.Fulfillment.TimeSelection().ScheduledAt(); ok {
		payload.Fulfillment.ScheduledAt = at.Format(time.RFC3339)
	}

	items := make([]itemPayload, 0, len(request.Snapshot.Items()))
	for _, item := range request.Snapshot.Items() {
		items = append(items, itemPayload{
			ProductID: item.ProductID.String(),
			UnitPrice: item.UnitPrice.String(),
			Quantity:  item.Quantity,
			Note:      item.Note,
		})
	}
	payload.Items = items
	payload.Subtotal = subtotal.String()

	return payload, nil
}
