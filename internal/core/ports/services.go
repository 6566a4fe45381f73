package ports

import (
	"context"
	"errors"
	"time"
)

// ErrQueueClosed is returned when status events arrive after the event
// pipeline has shut down.
var ErrQueueClosed = errors.New("event queue closed")

// ImageUploader hosts an image and returns its public URL. Failures reported
// by the host come back as *domain.UploadError.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// OrderStatusEventInput is the DTO passed from the transport layer to the
// order event pipeline.
type OrderStatusEventInput struct {
	OrderID   string
	Status    string
	Timestamp time.Time
	Source    string
	Notes     string
}

// OrderEventService applies status change events to orders.
type OrderEventService interface {
	Process(ctx context.Context, event OrderStatusEventInput) error
}
