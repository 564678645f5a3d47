// Package api is the REST client for the school management backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPageSize is the page size requested when listing.
const DefaultPageSize = 100

// maxPages bounds pagination against a backend that never reports a last page.
const maxPages = 1000

// Error is a non-2xx response from the backend.
type Error struct {
	Status    int
	Message   string // from the response's "message" field, may be empty
	RequestID string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// ErrorMessage returns the backend's message carried by err, if any.
func ErrorMessage(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// Options configures a Client.
type Options struct {
	BaseURL  string
	Token    string
	PageSize int
	// Timeout is applied to the default HTTP client. Zero means none.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the backend over JSON/HTTP.
type Client struct {
	baseURL    *url.URL
	token      string
	pageSize   int
	httpClient *http.Client
}

// New creates a Client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("api: base URL is required")
	}
	u, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: base URL %q must be http or https", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Client{
		baseURL:    u,
		token:      opts.Token,
		pageSize:   pageSize,
		httpClient: hc,
	}, nil
}

// envelope is the backend's list/item wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta *pageMeta       `json:"meta,omitempty"`
}

type pageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

type errorBody struct {
	Message string `json:"message"`
}

// listAll walks every page of a list endpoint.
func listAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var all []T
	for page := 1; page <= maxPages; page++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", fmt.Sprint(page))
		q.Set("per_page", fmt.Sprint(c.pageSize))

		var env envelope
		if err := c.do(ctx, http.MethodGet, path, q, nil, &env); err != nil {
			return nil, err
		}

		var items []T
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &items); err != nil {
				return nil, fmt.Errorf("decoding %s page %d: %w", path, page, err)
			}
		}
		all = append(all, items...)

		if env.Meta == nil || env.Meta.CurrentPage >= env.Meta.LastPage || len(items) == 0 {
			return all, nil
		}
	}
	return nil, fmt.Errorf("api: %s exceeded %d pages", path, maxPages)
}

// decodeItem accepts either a bare object or one wrapped in "data".
func decodeItem(raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		raw = env.Data
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	slog.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, RequestID: requestID}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			apiErr.Message = eb.Message
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if env, ok := out.(*envelope); ok {
		if err := json.Unmarshal(raw, env); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
		return nil
	}
	if err := decodeItem(raw, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
