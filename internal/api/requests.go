package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

const requestsPath = "attendance-requests"

type decisionBody struct {
	Note string `json:"note,omitempty"`
}

// ListRequests returns every reopen/delete request filed for an entity.
func (c *Client) ListRequests(ctx context.Context, entity model.EntityRef) ([]model.Request, error) {
	q := url.Values{}
	q.Set("entity_type", string(entity.Type))
	q.Set("entity_id", fmt.Sprint(entity.ID))
	return listAll[model.Request](ctx, c, requestsPath, q)
}

// GetRequest fetches a single request.
func (c *Client) GetRequest(ctx context.Context, id int) (model.Request, error) {
	var r model.Request
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", requestsPath, id), nil, nil, &r); err != nil {
		return model.Request{}, err
	}
	return r, nil
}

// CreateRequest files a new request.
func (c *Client) CreateRequest(ctx context.Context, in model.RequestInput) (model.Request, error) {
	var r model.Request
	if err := c.do(ctx, http.MethodPost, requestsPath, nil, in, &r); err != nil {
		return model.Request{}, err
	}
	return r, nil
}

// DecideRequest approves or rejects a request.
func (c *Client) DecideRequest(ctx context.Context, id int, d model.Decision, note string) (model.Request, error) {
	var r model.Request
	path := fmt.Sprintf("%s/%d/%s", requestsPath, id, d)
	if err := c.do(ctx, http.MethodPost, path, nil, decisionBody{Note: note}, &r); err != nil {
		return model.Request{}, err
	}
	return r, nil
}
