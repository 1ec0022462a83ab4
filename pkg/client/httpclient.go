package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "servicehub/pkg/errors"
)

// CredentialFunc returns the bearer token to attach to the next request, or
// "" for an anonymous call. It is consulted on every request so a token
// change is picked up without touching shared client state.
type CredentialFunc func() string

func Anonymous() string { return "" }

type HttpClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHttpClient(baseURL string, timeout time.Duration) *HttpClient {
	return &HttpClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *Response) ToString() string {
	return fmt.Sprintf("%s %s -> %d %s", r.Request.Method, r.Request.URL.Path, r.StatusCode, string(r.Body))
}

func (c *HttpClient) GET(ctx context.Context, path string, token string) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, nil, token)
}

func (c *HttpClient) POST(ctx context.Context, path string, body any, token string) (*Response, error) {
	return c.request(ctx, http.MethodPost, path, body, token)
}

func (c *HttpClient) PUT(ctx context.Context, path string, body any, token string) (*Response, error) {
	return c.request(ctx, http.MethodPut, path, body, token)
}

func (c *HttpClient) request(ctx context.Context, method, path string, body any, token string) (*Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Internal("failed to marshal request body", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, apperrors.Internal("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, apperrors.Transport("service is unreachable, please try again later", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Transport("failed to read response from service", err)
	}

	out := &Response{
		Response: resp,
		Body:     respBody,
	}
	if err := CheckResponse(out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckResponse maps a non-2xx answer onto the error taxonomy, keeping the
// backend's own message.
func CheckResponse(resp *Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := GetErrorMessage(resp)
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if msg == "" {
			msg = "your session is no longer valid, please log in again"
		}
		return apperrors.Auth(msg, nil)
	case resp.StatusCode == http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return apperrors.New(apperrors.CodeNotFound, msg, http.StatusNotFound)
	case resp.StatusCode == http.StatusConflict:
		if msg == "" {
			msg = "the request conflicts with the current state"
		}
		return apperrors.New(apperrors.CodeInvalidTransition, msg, http.StatusConflict)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		if msg == "" {
			msg = "the request was rejected"
		}
		return apperrors.Validation(msg, nil)
	case resp.StatusCode >= 500:
		if msg == "" {
			msg = fmt.Sprintf("service error (%d)", resp.StatusCode)
		}
		return apperrors.Transport(msg, nil)
	default:
		if msg == "" {
			msg = fmt.Sprintf("unexpected response (%d)", resp.StatusCode)
		}
		return apperrors.Transport(msg, nil)
	}
}

func GetErrorMessage(resp *Response) string {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := resp.DecodeJSON(&errResp); err != nil {
		return strings.TrimSpace(string(resp.Body))
	}

	if errResp.Message != "" {
		return errResp.Message
	}
	if errResp.Error != "" {
		return errResp.Error
	}
	return errResp.Code
}

// decode unmarshals a response body. Bodies wrapped as {"data": ...} are
// unwrapped first.
func decode(resp *Response, target any) error {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	body := resp.Body
	if len(bytes.TrimSpace(body)) > 0 && bytes.TrimSpace(body)[0] == '{' {
		if err := json.Unmarshal(body, &wrapper); err == nil && len(wrapper.Data) > 0 {
			body = wrapper.Data
		}
	}
	if err := json.Unmarshal(body, target); err != nil {
		return apperrors.Transport("service returned an unreadable response", fmt.Errorf("could not decode %s: %w", resp.ToString(), err))
	}
	return nil
}
