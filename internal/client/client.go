// Package client is the REST client of the payments API used by the admin
// tooling: it fetches the flat payment rows, resolves the acting user and
// issues verify/reject mutations, all with a bearer token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edusys/school-payments/internal/models"
)

// Client talks to the school payments API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient initializes a client for the given server and bearer token
func NewClient(baseURL, token string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// Me resolves the acting user. Callers must resolve it before any verify or
// reject call; a failure here aborts the whole operation.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListPayments fetches the flat payment rows, optionally filtered by status.
func (c *Client) ListPayments(ctx context.Context, status string) ([]models.PaymentRow, error) {
	path := "/payments"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var rows []models.PaymentRow
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// VerifyPayment marks one installment verified on behalf of verifierID.
func (c *Client) VerifyPayment(ctx context.Context, installmentID, verifierID int64) error {
	body := map[string]int64{"verifiedBy": verifierID}
	path := fmt.Sprintf("/payments/%d/verify", installmentID)
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// RejectPayment returns one installment to pending with the given reason.
func (c *Client) RejectPayment(ctx context.Context, installmentID int64, reason string, verifierID int64) error {
	body := map[string]interface{}{"reason": reason, "verifiedBy": verifierID}
	path := fmt.Sprintf("/payments/%d/reject", installmentID)
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// ProofURL fetches the proof-of-payment reference for one installment.
func (c *Client) ProofURL(ctx context.Context, installmentID int64) (string, error) {
	var resp struct {
		ProofURL string `json:"proofUrl"`
	}
	path := fmt.Sprintf("/payments/%d/proof", installmentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.ProofURL, nil
}

// do sends one request. Any non-2xx status is a uniform failure; the
// optional message field of the error body is carried into the error for
// the user, nothing else is parsed.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	c.log.Debugf("%s %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Message != "" {
			return fmt.Errorf("%s %s: %s (HTTP %d)", method, path, errBody.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
