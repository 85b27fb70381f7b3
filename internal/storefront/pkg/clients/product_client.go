package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"storefront_api/internal/storefront/business/models/dto/request"
	"storefront_api/internal/storefront/business/models/dto/response"
)

// ProductClient covers the unauthenticated product resource: the catalog
// listing the sync engine pulls and the admin create/update/delete writes.
type ProductClient struct {
	BaseClient
}

func NewProductClient(apiURL string, writer io.Writer, limiter *rate.Limiter) *ProductClient {
	return &ProductClient{
		BaseClient: *NewBaseClient(apiURL, writer, "[ ProductClient ]", nil, limiter),
	}
}

func (c *ProductClient) List(ctx context.Context) ([]response.ProductResponse, error) {
	var products []response.ProductResponse
	err := c.Do(ctx, http.MethodGet, "/product", nil, &products)
	return products, err
}

func (c *ProductClient) Get(ctx context.Context, id int) (*response.ProductResponse, error) {
	var product response.ProductResponse
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/product/%d", id), nil, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create posts the multipart form. Image binaries only ever reach the
// remote storage through this call.
func (c *ProductClient) Create(ctx context.Context, form *request.ProductCreateForm) (*response.ProductResponse, error) {
	var product response.ProductResponse
	err := c.Do(ctx, http.MethodPost, "/product", form, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductClient) Update(ctx context.Context, id int, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	var product response.ProductResponse
	err := c.Do(ctx, http.MethodPatch, fmt.Sprintf("/product/%d", id), req, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductClient) Delete(ctx context.Context, id int) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/product/%d", id), nil, nil)
}
