package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/dashboard/pkg/models/api"
)

// APIError is a failed envelope, or a non-JSON error response, from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Client talks to the dashboard HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Login(ctx context.Context, username, password string) (api.Token, error) {
	var token api.Token
	err := c.doJSON(ctx, http.MethodPost, "/api/auth", api.LoginRequest{Username: username, Password: password}, &token)
	if err != nil {
		return api.Token{}, err
	}
	c.token = token.Token
	return token, nil
}

func (c *Client) ListReports(ctx context.Context) ([]api.Report, error) {
	var reports []api.Report
	if err := c.doJSON(ctx, http.MethodGet, "/api/powerbi", nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) CreateReport(ctx context.Context, req api.ReportRequest) ([]api.Report, error) {
	var reports []api.Report
	if err := c.doJSON(ctx, http.MethodPost, "/api/powerbi", req, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) UpdateReport(ctx context.Context, id string, req api.ReportRequest) ([]api.Report, error) {
	var reports []api.Report
	if err := c.doJSON(ctx, http.MethodPut, "/api/powerbi/"+id, req, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) DeleteReport(ctx context.Context, id string) ([]api.Report, error) {
	var reports []api.Report
	if err := c.doJSON(ctx, http.MethodDelete, "/api/powerbi/"+id, nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) GetConfig(ctx context.Context) (api.ConfigRecord, error) {
	var record api.ConfigRecord
	if err := c.doJSON(ctx, http.MethodGet, "/api/config", nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// UploadLogo sends content as the multipart "logo" field.
func (c *Client) UploadLogo(ctx context.Context, filename string, content io.Reader) (api.ConfigRecord, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("logo", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return nil, fmt.Errorf("copy logo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, "/api/config/0/logo", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var record api.ConfigRecord
	if err := c.do(req, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) DeleteLogo(ctx context.Context) (api.ConfigRecord, error) {
	var record api.ConfigRecord
	if err := c.doJSON(ctx, http.MethodDelete, "/api/config/0/logo", nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// AssetURL is where the server exposes an uploaded asset.
func (c *Client) AssetURL(name string) string {
	return c.baseURL + "/uploads/" + name
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		var msg string
		if err := json.Unmarshal(env.Data, &msg); err != nil || msg == "" {
			msg = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
