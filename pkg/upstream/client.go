// Package upstream talks to the legacy marketplace backend. Every call goes
// through one client with a single configurable base URL and request timeout;
// responses are normalized out of the backend's {status, message, data}
// envelope before any caller sees them.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sarangart/agrizen-gateway/pkg/config"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/metrics"
)

const responseBodyLimit int64 = 4 << 20

// Client issues requests against the legacy backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.HTTPMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics records every backend call on the gateway's upstream counters.
func WithMetrics(m *metrics.HTTPMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithBaseURL overrides the configured base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the backend client from configuration.
func NewClient(cfg config.UpstreamConfig, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}

	client := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// BaseURL reports the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ImageURL resolves a stored image filename against the backend uploads path.
func (c *Client) ImageURL(pathPrefix, filename string) string {
	if filename == "" {
		return ""
	}
	return c.baseURL + "/" + pathPrefix + filename
}

// Ping checks backend reachability; any HTTP response counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+EndpointMarketplace, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping upstream: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, responseBodyLimit))
	return nil
}

// Get fetches an envelope-wrapped resource.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, "", nil, out, false)
}

// GetBare fetches an endpoint that returns its payload without the envelope
// (the notification list does this).
func (c *Client) GetBare(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, "", nil, out, true)
}

// PostForm submits an urlencoded form (the login/register tag protocol).
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, endpoint, nil, "application/x-www-form-urlencoded", body, out, false)
}

// PostJSON submits a JSON payload.
func (c *Client) PostJSON(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := encodeJSON(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, endpoint, nil, "application/json", body, out, false)
}

// PutJSON submits a JSON update.
func (c *Client) PutJSON(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := encodeJSON(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, endpoint, nil, "application/json", body, out, false)
}

// FileUpload carries one multipart file part.
type FileUpload struct {
	FieldName string
	FileName  string
	Content   io.Reader
}

// PostMultipart submits a multipart form, optionally with a file part.
func (c *Client) PostMultipart(ctx context.Context, endpoint string, fields map[string]string, file *FileUpload, out any) error {
	contentType, body, err := encodeMultipart(fields, file)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, endpoint, nil, contentType, body, out, false)
}

// PutMultipart submits a multipart update through the backend's
// _method=PUT override on a POST.
func (c *Client) PutMultipart(ctx context.Context, endpoint string, fields map[string]string, file *FileUpload, out any) error {
	contentType, body, err := encodeMultipart(fields, file)
	if err != nil {
		return err
	}
	query := url.Values{"_method": []string{"PUT"}}
	return c.do(ctx, http.MethodPost, endpoint, query, contentType, body, out, false)
}

// Delete removes a resource identified by the query parameters.
func (c *Client) Delete(ctx context.Context, endpoint string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, endpoint, query, "", nil, nil, false)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, contentType string, body io.Reader, out any, bare bool) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, endpoint, query, contentType, body, out, bare)
	c.metrics.ObserveUpstreamCall(endpoint, err, time.Since(start))
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, query url.Values, contentType string, body io.Reader, out any, bare bool) error {
	target := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upstream request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reach marketplace backend")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read upstream response")
	}

	if bare {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return decodeFailure(resp.StatusCode, err)
		}
		return nil
	}

	return decodeEnvelope(resp.StatusCode, raw, out)
}

func encodeJSON(payload any) (io.Reader, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode upstream payload")
	}
	return buf, nil
}

func encodeMultipart(fields map[string]string, file *FileUpload) (string, io.Reader, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write multipart field")
		}
	}
	if file != nil && file.Content != nil {
		part, err := writer.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create multipart file")
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "copy multipart file")
		}
	}
	if err := writer.Close(); err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalize multipart body")
	}

	return writer.FormDataContentType(), buf, nil
}
