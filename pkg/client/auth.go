package client

import (
	"context"

	"servicehub/pkg/model"
)

type AuthClient struct {
	httpClient *HttpClient
}

func NewAuthClient(httpClient *HttpClient) *AuthClient {
	return &AuthClient{httpClient: httpClient}
}

func (c *AuthClient) Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error) {
	resp, err := c.httpClient.POST(ctx, "/api/auth/login", creds, "")
	if err != nil {
		return nil, err
	}
	var out model.AuthResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthClient) Register(ctx context.Context, data model.RegisterData) (*model.AuthResponse, error) {
	resp, err := c.httpClient.POST(ctx, "/api/auth/register", data, "")
	if err != nil {
		return nil, err
	}
	var out model.AuthResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile resolves a token to the identity it belongs to.
func (c *AuthClient) Profile(ctx context.Context, token string) (*model.User, error) {
	resp, err := c.httpClient.GET(ctx, "/api/auth/profile", token)
	if err != nil {
		return nil, err
	}
	var out model.User
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
