package productos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"Inventario/pkg/kit"
)

const (
	opList   = "list"
	opCreate = "create"
	opUpdate = "update"
	opRemove = "remove"

	resourcePath = "/productos"
)

var (
	ErrUnavailable = errors.New("product api unavailable")
	ErrBadStatus   = errors.New("product api bad status")
	ErrBadPayload  = errors.New("product api bad payload")
)

// Client performs one attempt per call: no retry, no backoff.
type Client struct {
	BaseURL string
	Client  *http.Client
	Metrics *kit.UpstreamMetrics
}

// NewClient builds a client for baseURL. timeout 0 leaves calls bounded only
// by the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	resp, err := c.do(ctx, opList, http.MethodGet, resourcePath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out []Product
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if out == nil {
		out = []Product{}
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, p Payload) error {
	return c.send(ctx, opCreate, http.MethodPost, resourcePath, p)
}

func (c *Client) Update(ctx context.Context, id int, p Payload) error {
	return c.send(ctx, opUpdate, http.MethodPut, itemPath(id), p)
}

func (c *Client) Remove(ctx context.Context, id int) error {
	return c.send(ctx, opRemove, http.MethodDelete, itemPath(id), nil)
}

func itemPath(id int) string {
	return resourcePath + "/" + strconv.Itoa(id)
}

func (c *Client) send(ctx context.Context, op, method, path string, body any) error {
	resp, err := c.do(ctx, op, method, path, body)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// do returns the response only for 2xx statuses; the caller owns its body.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", op, err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		c.Metrics.ObserveCall(op, 0, time.Since(start))
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	c.Metrics.ObserveCall(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s %s status=%d", ErrBadStatus, method, path, resp.StatusCode)
	}
	return resp, nil
}
