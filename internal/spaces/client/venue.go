package client

import (
	"context"
	"time"

	"venue-market/internal/spaces/models"

	"go.uber.org/zap"
)

// VenueClient creates listings on the venue service.
type VenueClient struct {
	upstream
}

func NewVenueClient(baseURL string, timeout time.Duration, logger *zap.Logger) *VenueClient {
	return &VenueClient{upstream: newUpstream("venue", baseURL, timeout, logger)}
}

// CreateVenue posts the payload to /venues.
func (c *VenueClient) CreateVenue(ctx context.Context, payload models.Payload) (*models.Created, error) {
	return post[models.Created](ctx, c.upstream, "/venues", payload)
}
