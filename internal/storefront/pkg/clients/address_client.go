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

// AddressClient covers the authenticated shipping address resource.
type AddressClient struct {
	BaseClient
}

func NewAddressClient(apiURL string, writer io.Writer, auth services.AuthEngine, limiter *rate.Limiter) *AddressClient {
	return &AddressClient{
		BaseClient: *NewBaseClient(apiURL, writer, "[ AddressClient ]", auth, limiter),
	}
}

func (c *AddressClient) Create(ctx context.Context, req *request.AddressRequest) (*response.AddressResponse, error) {
	if c.auth == nil {
		return nil, errs.ErrNoSession
	}
	var address response.AddressResponse
	err := c.Do(ctx, http.MethodPost, "/address", req, &address)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (c *AddressClient) Get(ctx context.Context, id int) (*response.AddressResponse, error) {
	if c.auth == nil {
		return nil, errs.ErrNoSession
	}
	var address response.AddressResponse
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/address/%d", id), nil, &address)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (c *AddressClient) ListByUser(ctx context.Context, userID int) ([]response.AddressResponse, error) {
	if c.auth == nil {
		return nil, errs.ErrNoSession
	}
	var addresses []response.AddressResponse
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/address?user_id=%d", userID), nil, &addresses)
	return addresses, err
}
