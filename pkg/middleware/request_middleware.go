package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"storefront_api/pkg/logger"
)

// Logging logs every invocation with its outcome.
func Logging(log logger.Logger) Middleware {
	return func(next RequestFunc) RequestFunc {
		return func(ctx context.Context, method, endpoint string, requestBody, response interface{}) error {
			err := next(ctx, method, endpoint, requestBody, response)
			if err != nil {
				log.Log("%s %s failed: %v", method, endpoint, err)
			} else {
				log.Log("%s %s ok", method, endpoint)
			}
			return err
		}
	}
}

// RateLimit blocks until the limiter grants a slot. A nil limiter
// disables limiting.
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(next RequestFunc) RequestFunc {
		return func(ctx context.Context, method, endpoint string, requestBody, response interface{}) error {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
			}
			return next(ctx, method, endpoint, requestBody, response)
		}
	}
}
