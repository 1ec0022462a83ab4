package client

import (
	"context"
	"fmt"

	"servicehub/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
	credential CredentialFunc
}

func NewBookingClient(httpClient *HttpClient, credential CredentialFunc) *BookingClient {
	if credential == nil {
		credential = Anonymous
	}
	return &BookingClient{httpClient: httpClient, credential: credential}
}

func (c *BookingClient) ListForCustomer(ctx context.Context, customerID int64) ([]model.Booking, error) {
	return c.list(ctx, fmt.Sprintf("/api/bookings/customer/%d", customerID))
}

func (c *BookingClient) ListForProvider(ctx context.Context, providerID int64) ([]model.Booking, error) {
	return c.list(ctx, fmt.Sprintf("/api/bookings/provider/%d", providerID))
}

func (c *BookingClient) Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	resp, err := c.httpClient.POST(ctx, "/api/bookings", req, c.credential())
	if err != nil {
		return nil, err
	}
	var out model.Booking
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetStatus returns nil without error when the backend answers with an
// empty body.
func (c *BookingClient) SetStatus(ctx context.Context, bookingID int64, status model.BookingStatus) (*model.Booking, error) {
	path := fmt.Sprintf("/api/bookings/%d/status", bookingID)
	resp, err := c.httpClient.PUT(ctx, path, model.StatusUpdate{Status: status}, c.credential())
	if err != nil {
		return nil, err
	}
	if len(resp.Body) == 0 {
		return nil, nil
	}
	var out model.Booking
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BookingClient) list(ctx context.Context, path string) ([]model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, path, c.credential())
	if err != nil {
		return nil, err
	}
	out := []model.Booking{}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}
