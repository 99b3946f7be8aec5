package client

import (
	"context"
	"time"

	"venue-market/internal/booking/models"

	"go.uber.org/zap"
)

// BookingClient files booking requests with the booking service.
type BookingClient struct {
	upstream
}

func NewBookingClient(baseURL string, timeout time.Duration, logger *zap.Logger) *BookingClient {
	return &BookingClient{upstream: newUpstream("booking", baseURL, timeout, logger)}
}

func (c *BookingClient) CreateBooking(ctx context.Context, req models.Request) (*models.Confirmation, error) {
	return post[models.Confirmation](ctx, c.upstream, "/bookings", req)
}
