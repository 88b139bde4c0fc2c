package notify

import (
	"context"
	"fmt"
)

// Notifier delivers one reminder message to one recipient address. For the
// email channel the address is an email; for Telegram it is a chat ID.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// DeliveryError means the transport was reached but reported non-success
// for this recipient (e.g. a non-2xx API response). Any other error from
// Send means the transport call itself failed.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery rejected with status %d: %s", e.StatusCode, e.Body)
}
