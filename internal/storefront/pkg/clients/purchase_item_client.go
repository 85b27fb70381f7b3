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

// PurchaseItemClient covers the authenticated purchase line item resource.
type PurchaseItemClient struct {
	BaseClient
}

func NewPurchaseItemClient(apiURL string, writer io.Writer, auth services.AuthEngine, limiter *rate.Limiter) *PurchaseItemClient {
	return &PurchaseItemClient{
		BaseClient: *NewBaseClient(apiURL, writer, "[ PurchaseItemClient ]", auth, limiter),
	}
}

func (c *PurchaseItemClient) Create(ctx context.Context, req *request.PurchaseItemRequest) (*response.PurchaseItemResponse, error) {
	if c.auth == nil {
		return nil, errs.ErrNoSession
	}
	var item response.PurchaseItemResponse
	err := c.Do(ctx, http.MethodPost, "/purchase_item", req, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *PurchaseItemClient) ListByPurchase(ctx context.Context, purchaseID int) ([]response.PurchaseItemResponse, error) {
	if c.auth == nil {
		return nil, errs.ErrNoSession
	}
	var items []response.PurchaseItemResponse
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/purchase_item?purchase_id=%d", purchaseID), nil, &items)
	return items, err
}
