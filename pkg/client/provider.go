package client

import (
	"context"
	"fmt"

	"servicehub/pkg/model"
)

type ProviderClient struct {
	httpClient *HttpClient
	credential CredentialFunc
}

func NewProviderClient(httpClient *HttpClient, credential CredentialFunc) *ProviderClient {
	if credential == nil {
		credential = Anonymous
	}
	return &ProviderClient{httpClient: httpClient, credential: credential}
}

func (c *ProviderClient) List(ctx context.Context) ([]model.ServiceProvider, error) {
	return c.list(ctx, "/api/providers")
}

func (c *ProviderClient) Featured(ctx context.Context) ([]model.ServiceProvider, error) {
	return c.list(ctx, "/api/providers/featured")
}

func (c *ProviderClient) Get(ctx context.Context, id int64) (*model.ServiceProvider, error) {
	resp, err := c.httpClient.GET(ctx, fmt.Sprintf("/api/providers/%d", id), c.credential())
	if err != nil {
		return nil, err
	}
	var out model.ServiceProvider
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ProviderClient) Update(ctx context.Context, id int64, patch model.ProfileUpdate) (*model.ServiceProvider, error) {
	resp, err := c.httpClient.PUT(ctx, fmt.Sprintf("/api/providers/%d", id), patch, c.credential())
	if err != nil {
		return nil, err
	}
	var out model.ServiceProvider
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ProviderClient) list(ctx context.Context, path string) ([]model.ServiceProvider, error) {
	resp, err := c.httpClient.GET(ctx, path, c.credential())
	if err != nil {
		return nil, err
	}
	out := []model.ServiceProvider{}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}
