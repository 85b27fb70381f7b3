package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"storefront_api/internal/storefront/business/errs"
	"storefront_api/internal/storefront/business/services"
	"storefront_api/metrics"
	"storefront_api/pkg/logger"
	"storefront_api/pkg/middleware"
)

// bodyRenderer lets a request type produce its own body and content type.
// ProductCreateForm uses it to render multipart; everything else is JSON.
type bodyRenderer interface {
	CreateRequestBody() (*bytes.Buffer, string, error)
}

type BaseClient struct {
	ApiURL string
	log    logger.Logger
	client *http.Client
	auth   services.AuthEngine
	do     middleware.RequestFunc
}

func NewBaseClient(apiURL string, writer io.Writer, logPrefix string, auth services.AuthEngine, limiter *rate.Limiter) *BaseClient {
	c := &BaseClient{
		ApiURL: apiURL,
		log:    logger.NewLogger(writer, logPrefix),
		client: &http.Client{Timeout: 30 * time.Second},
		auth:   auth,
	}
	c.do = middleware.Chain(c.doRequest, middleware.RateLimit(limiter), middleware.Logging(c.log))
	return c
}

func (c *BaseClient) doRequest(ctx context.Context, method, endpoint string, requestBody, response interface{}) error {
	var body *bytes.Buffer
	contentType := "application/json"

	switch rb := requestBody.(type) {
	case nil:
		body = &bytes.Buffer{}
	case bodyRenderer:
		rendered, ct, err := rb.CreateRequestBody()
		if err != nil {
			return fmt.Errorf("failed to render request body: %w", err)
		}
		body, contentType = rendered, ct
	default:
		bodyBytes, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", c.ApiURL, endpoint), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.auth != nil {
		c.auth.SetApiKey(req)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordRequest(method, endpoint, 0, time.Since(start))
		select {
		case <-ctx.Done():
			return &errs.NetworkError{Op: method + " " + endpoint, Err: ctx.Err()}
		default:
			return &errs.NetworkError{Op: method + " " + endpoint, Err: err}
		}
	}
	defer resp.Body.Close()
	metrics.RecordRequest(method, endpoint, resp.StatusCode, time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &errs.RemoteError{Op: method + " " + endpoint, Status: resp.StatusCode, Body: string(respBody)}
	}

	if response != nil {
		if err := json.Unmarshal(respBody, response); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// Do issues one request through the middleware chain.
func (c *BaseClient) Do(ctx context.Context, method, endpoint string, requestBody, response interface{}) error {
	return c.do(ctx, method, endpoint, requestBody, response)
}
