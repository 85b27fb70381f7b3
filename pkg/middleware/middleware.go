package middleware

import "context"

// RequestFunc is the shape of one remote API invocation as the clients
// issue it.
type RequestFunc func(ctx context.Context, method, endpoint string, requestBody, response interface{}) error

// Middleware wraps a RequestFunc with cross-cutting behavior.
type Middleware func(next RequestFunc) RequestFunc

// Chain applies middlewares so the first listed runs outermost.
func Chain(base RequestFunc, mws ...Middleware) RequestFunc {
	wrapped := base
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	return wrapped
}
