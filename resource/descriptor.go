// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resource

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogama/restclient/request"
)

const nilDispatcherMsg = "restclient/resource: nil dispatcher"

// DefaultMethod is the HTTP method used by Descriptor.Call.
const DefaultMethod = "GET"

// A Descriptor is an immutable, not yet dispatched REST resource path.
//
// The zero value is a root descriptor with no dispatcher and no base
// URL. It can be navigated, and its Path and URL inspected, but
// invoking it panics. Use New to bind a Dispatcher.
type Descriptor struct {
	dispatcher Dispatcher
	base       string
	path       string // segments joined by "/", no leading slash
}

// New returns the root descriptor for base, bound to d. The root path
// is "/".
//
// Parameter base may be empty, in which case URL returns the bare path.
func New(d Dispatcher, base string) Descriptor {
	return Descriptor{
		dispatcher: d,
		base:       strings.TrimRight(base, "/"),
	}
}

// At returns a new descriptor with key appended as one path segment.
// The receiver is unchanged.
//
// Strings are used verbatim, integers in base 10, and any other value
// is formatted with the %v verb.
func (d Descriptor) At(key interface{}) Descriptor {
	seg := segment(key)
	if d.path == "" {
		d.path = seg
	} else {
		d.path = d.path + "/" + seg
	}
	return d
}

// Join is shorthand for calling At once for each key, in order.
func (d Descriptor) Join(keys ...interface{}) Descriptor {
	for _, key := range keys {
		d = d.At(key)
	}
	return d
}

// Path returns the accumulated path, "/s1/s2/.../sn", or "/" for the
// root descriptor.
func (d Descriptor) Path() string {
	return "/" + d.path
}

// URL returns the base URL followed by Path.
func (d Descriptor) URL() string {
	return d.base + d.Path()
}

// String returns URL.
func (d Descriptor) String() string {
	return d.URL()
}

// Call invokes the descriptor with DefaultMethod. It is the equivalent
// of calling the resource as a function.
func (d Descriptor) Call(ctx context.Context, opts ...request.Option) (*request.Result, error) {
	return d.Do(ctx, DefaultMethod, opts...)
}

// Do dispatches exactly one call with the given HTTP method, the
// descriptor's URL and opts, and returns the dispatcher's result as is.
//
// The method is upper-cased. An empty method means DefaultMethod.
func (d Descriptor) Do(ctx context.Context, method string, opts ...request.Option) (*request.Result, error) {
	if d.dispatcher == nil {
		panic(nilDispatcherMsg)
	}
	if method == "" {
		method = DefaultMethod
	}
	return d.dispatcher.Dispatch(ctx, strings.ToUpper(method), d.URL(), opts...)
}

// Get dispatches a GET.
func (d Descriptor) Get(ctx context.Context, opts ...request.Option) (*request.Result, error) {
	return d.Do(ctx, "GET", opts...)
}

// Head dispatches a HEAD.
func (d Descriptor) Head(ctx context.Context, opts ...request.Option) (*request.Result, error) {
	return d.Do(ctx, "HEAD", opts...)
}

// Delete dispatches a DELETE.
func (d Descriptor) Delete(ctx context.Context, opts ...request.Option) (*request.Result, error) {
	return d.Do(ctx, "DELETE", opts...)
}

// Options dispatches an OPTIONS.
func (d Descriptor) Options(ctx context.Context, opts ...request.Option) (*request.Result, error) {
	return d.Do(ctx, "OPTIONS", opts...)
}

// Post dispatches a POST. If body is non-nil it is sent as the JSON
// payload, as if request.JSON(body) were the first option.
func (d Descriptor) Post(ctx context.Context, body interface{}, opts ...request.Option) (*request.Result, error) {
	return d.Do(ctx, "POST", withBody(body, opts)...)
}

// Put dispatches a PUT. Parameter body is handled as in Post.
func (d Descriptor) Put(ctx context.Context, body interface{}, opts ...request.Option) (*request.Result, error) {
	return d.Do(ctx, "PUT", withBody(body, opts)...)
}

// Patch dispatches a PATCH. Parameter body is handled as in Post.
func (d Descriptor) Patch(ctx context.Context, body interface{}, opts ...request.Option) (*request.Result, error) {
	return d.Do(ctx, "PATCH", withBody(body, opts)...)
}

func withBody(body interface{}, opts []request.Option) []request.Option {
	if body == nil {
		return opts
	}
	all := make([]request.Option, 0, 1+len(opts))
	all = append(all, request.JSON(body))
	return append(all, opts...)
}

func segment(key interface{}) string {
	switch k := key.(type) {
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(key)
	}
}
