// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restclient

import (
	"context"

	"github.com/gogama/restclient/request"
)

// A Middleware transforms an outgoing call before it is sent.
//
// Intercept receives the call's HTTP method, absolute URL and options,
// and returns the values to use instead. It may modify the options in
// place; they are a private copy belonging to the call. Returning an
// error ends the call with that error.
//
// Middleware runs sequentially on the goroutine that made the call, in
// registration order. Implementations must be safe for concurrent use,
// since concurrent calls run the chain concurrently.
type Middleware interface {
	Intercept(ctx context.Context, method, url string, o *request.Options) (string, string, *request.Options, error)
}

// The MiddlewareFunc type is an adapter to allow the use of ordinary
// functions as middleware. If f is a function with the appropriate
// signature, MiddlewareFunc(f) is a Middleware that calls f.
type MiddlewareFunc func(ctx context.Context, method, url string, o *request.Options) (string, string, *request.Options, error)

// Intercept calls f(ctx, method, url, o).
func (f MiddlewareFunc) Intercept(ctx context.Context, method, url string, o *request.Options) (string, string, *request.Options, error) {
	return f(ctx, method, url, o)
}

// Use appends m to the client's middleware chain. It applies to every
// call dispatched after Use returns.
//
// Use returns ErrInvalidMiddleware, and leaves the chain unchanged, if
// m is nil or a nil MiddlewareFunc.
func (c *Client) Use(m Middleware) error {
	if m == nil {
		return ErrInvalidMiddleware
	}
	if f, ok := m.(MiddlewareFunc); ok && f == nil {
		return ErrInvalidMiddleware
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware = append(c.middleware, m)
	return nil
}

// Middleware returns a copy of the client's middleware chain in
// registration order.
func (c *Client) Middleware() []Middleware {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Middleware(nil), c.middleware...)
}

// SetHeader returns a middleware that sets a header field on every
// call, overriding defaults and call options for that key.
func SetHeader(key, value string) Middleware {
	return MiddlewareFunc(func(_ context.Context, method, url string, o *request.Options) (string, string, *request.Options, error) {
		o.Apply(request.Header(key, value))
		return method, url, o, nil
	})
}

func runMiddleware(ctx context.Context, chain []Middleware, method, url string, o *request.Options) (string, string, *request.Options, error) {
	var err error
	for _, m := range chain {
		method, url, o, err = m.Intercept(ctx, method, url, o)
		if err != nil {
			return "", "", nil, err
		}
		if o == nil {
			return "", "", nil, ErrNilOptions
		}
	}
	return method, url, o, nil
}
