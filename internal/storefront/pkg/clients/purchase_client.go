package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"storefront_api/internal/storefront/business/errs"
	"storefront_api/internal/storefront/business/models/dto/request"
	"storefront_api/internal/storefront/business/models/dto/response"
	"storefront_api/internal/storefront/business/services"
)

// PurchaseClient covers the authenticated purchase header resource.
type PurchaseClient struct {
	BaseClient
}

func NewPurchaseClient(apiURL string, writer io.Writer, auth services.AuthEngine, limiter *rate.Limiter) *PurchaseClient {
	return &PurchaseClient{
		BaseClient: *NewBaseClient(apiURL, writer, "[ PurchaseClient ]", auth, limiter),
	}
}

func (c *PurchaseClient) Create(ctx context.Context, req *request.PurchaseRequest) (*response.PurchaseResponse, error) {
	if c.auth == nil {
		return nil, errs.ErrNoSession
	}
	var purchase response.PurchaseResponse
	err := c.Do(ctx, http.MethodPost, "/purchase", req, &purchase)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (c *PurchaseClient) Get(ctx context.Context, id int) (*response.PurchaseResponse, error) {
	if c.auth == nil {
		return nil, errs.ErrNoSession
	}
	var purchase response.PurchaseResponse
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/purchase/%d", id), nil, &purchase)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// List fetches every purchase; used by the administrative views.
func (c *PurchaseClient) List(ctx context.Context) ([]response.PurchaseResponse, error) {
	if c.auth == nil {
		return nil, errs.ErrNoSession
	}
	var purchases []response.PurchaseResponse
	err := c.Do(ctx, http.MethodGet, "/purchase", nil, &purchases)
	return purchases, err
}

func (c *PurchaseClient) ListByUser(ctx context.Context, userID int) ([]response.PurchaseResponse, error) {
	if c.auth == nil {
		return nil, errs.ErrNoSession
	}
	var purchases []response.PurchaseResponse
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/purchase?user_id=%d", userID), nil, &purchases)
	return purchases, err
}

// UpdateStatus is the single-step administrative PATCH.
func (c *PurchaseClient) UpdateStatus(ctx context.Context, id int, status string) (*response.PurchaseResponse, error) {
	if c.auth == nil {
		return nil, errs.ErrNoSession
	}
	var purchase response.PurchaseResponse
	err := c.Do(ctx, http.MethodPatch, fmt.Sprintf("/purchase/%d", id), &request.StatusUpdateRequest{Status: status}, &purchase)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}
