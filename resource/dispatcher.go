// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resource

import (
	"context"

	"github.com/gogama/restclient/request"
)

// A Dispatcher turns an HTTP method, an absolute URL and call options
// into a REST call and returns its result.
//
// Implementations of Dispatcher must be safe for concurrent use by
// multiple goroutines.
type Dispatcher interface {
	Dispatch(ctx context.Context, method, url string, opts ...request.Option) (*request.Result, error)
}

// The DispatcherFunc type is an adapter to allow the use of ordinary
// functions as dispatchers. If f is a function with the appropriate
// signature, DispatcherFunc(f) is a Dispatcher that calls f.
type DispatcherFunc func(ctx context.Context, method, url string, opts ...request.Option) (*request.Result, error)

// Dispatch calls f(ctx, method, url, opts...).
func (f DispatcherFunc) Dispatch(ctx context.Context, method, url string, opts ...request.Option) (*request.Result, error) {
	return f(ctx, method, url, opts...)
}
