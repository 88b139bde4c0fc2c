package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultResendURL = "https://api.resend.com"

// ResendClient sends email through the Resend HTTP API.
type ResendClient struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// NewResendClient creates a Resend email client. from is the sender
// address, e.g. "Finire <noreply@finire.app>".
func NewResendClient(apiKey, from string) *ResendClient {
	return &ResendClient{
		apiKey:  apiKey,
		from:    from,
		baseURL: defaultResendURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers one email. A non-2xx API response is returned as a
// *DeliveryError; network or encoding failures are returned as-is.
func (c *ResendClient) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(resendRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &DeliveryError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return nil
}
