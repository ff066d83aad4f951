// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "restclient/request: nil context"

	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// A Session implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
//
// A Session sends the HTTP requests built by the client. Every call
// uses the client's own session unless the call carries a session
// override (see WithSession).
type Session interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// Session.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// Options describes how a single REST call is made.
//
// A client holds one Options value as its defaults. Each call clones
// the defaults and applies the call's own Option values to the clone,
// so nothing a call (or a middleware) does to its Options is visible to
// the defaults or to any other call.
type Options struct {
	// Header contains the request header fields to send. Header
	// options merge key by key into this map.
	Header http.Header

	// Params contains query string parameters. They are added to any
	// query already present in the request URL.
	Params urlpkg.Values

	// JSON is the request payload to encode as JSON. If JSON is
	// non-nil it takes precedence over Data.
	JSON interface{}

	// Data is a raw request body. It may be url.Values (sent as a form)
	// or any type accepted by BodyBytes.
	Data interface{}

	// Session, if non-nil, sends this call instead of the client's own
	// session. The client's session is left untouched.
	Session Session

	// Parse controls whether the response body is decoded as JSON. If
	// Parse is false the raw response is returned with its body unread
	// and the caller owns closing it.
	Parse bool

	// Close requests that the response body be read and the response
	// closed before the call returns. A closed response is returned
	// without JSON decoding.
	Close bool

	// Into, if non-nil, is a pointer the JSON response is decoded into
	// instead of into Result.Value.
	Into interface{}
}

// An Option modifies Options.
type Option func(*Options)

// NewOptions returns Options with default values (Parse true, Close
// false) and opts applied in order.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Header: make(http.Header),
		Params: make(urlpkg.Values),
		Parse:  true,
	}
	o.Apply(opts...)
	return o
}

// Apply applies opts to o in order. Nil options are skipped.
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
}

// Clone returns a copy of o. The Header and Params maps are deep
// copied; the JSON, Data, Session and Into values are shared.
func (o *Options) Clone() *Options {
	o2 := new(Options)
	*o2 = *o
	o2.Header = o.Header.Clone()
	if o2.Header == nil {
		o2.Header = make(http.Header)
	}
	o2.Params = cloneValues(o.Params)
	return o2
}

// Header sets a single header field, replacing any existing values for
// that key.
func Header(key, value string) Option {
	return func(o *Options) {
		o.header().Set(key, value)
	}
}

// Headers merges h into the header, key by key. Keys present in h
// replace the existing values for that key; other keys are kept.
func Headers(h http.Header) Option {
	return func(o *Options) {
		dst := o.header()
		for k, vs := range h {
			dst[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
		}
	}
}

// Param sets a single query parameter, replacing any existing values
// for that key.
func Param(key, value string) Option {
	return func(o *Options) {
		o.params().Set(key, value)
	}
}

// Params merges v into the query parameters, key by key.
func Params(v urlpkg.Values) Option {
	return func(o *Options) {
		dst := o.params()
		for k, vs := range v {
			dst[k] = append([]string(nil), vs...)
		}
	}
}

// JSON sets the payload to be sent as a JSON request body.
func JSON(v interface{}) Option {
	return func(o *Options) {
		o.JSON = v
	}
}

// Data sets a raw request body. See Options.Data.
func Data(v interface{}) Option {
	return func(o *Options) {
		o.Data = v
	}
}

// WithSession sends the call through s instead of the client's own
// session.
func WithSession(s Session) Option {
	return func(o *Options) {
		o.Session = s
	}
}

// Parse controls JSON decoding of the response. See Options.Parse.
func Parse(parse bool) Option {
	return func(o *Options) {
		o.Parse = parse
	}
}

// Close controls eager closing of the response. See Options.Close.
func Close(close bool) Option {
	return func(o *Options) {
		o.Close = close
	}
}

// Into decodes the JSON response into the value pointed to by ptr.
func Into(ptr interface{}) Option {
	return func(o *Options) {
		o.Into = ptr
	}
}

// NewRequest builds the HTTP request described by o for the given
// method and absolute URL. The context of the new request is set to
// ctx, which may not be nil.
//
// An empty method means GET. The method must be a valid HTTP token and
// every header field must be valid, or an error is returned.
func (o *Options) NewRequest(ctx context.Context, method, url string) (*http.Request, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("restclient/request: invalid method %q", method)
	}
	for k, vs := range o.Header {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, fmt.Errorf("restclient/request: invalid header name %q", k)
		}
		for _, v := range vs {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, fmt.Errorf("restclient/request: invalid value for header %q", k)
			}
		}
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	if len(o.Params) > 0 {
		q := u.Query()
		for k, vs := range o.Params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	b, contentType, err := o.body()
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if len(b) > 0 {
		body = bytes.NewReader(b)
	}
	r, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	r.Header = o.Header.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if contentType != "" && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r, nil
}

func (o *Options) body() ([]byte, string, error) {
	if o.JSON != nil {
		b, err := json.Marshal(o.JSON)
		if err != nil {
			return nil, "", err
		}
		return b, contentTypeJSON, nil
	}
	if form, ok := o.Data.(urlpkg.Values); ok {
		return []byte(form.Encode()), contentTypeForm, nil
	}
	b, err := BodyBytes(o.Data)
	return b, "", err
}

func (o *Options) header() http.Header {
	if o.Header == nil {
		o.Header = make(http.Header)
	}
	return o.Header
}

func (o *Options) params() urlpkg.Values {
	if o.Params == nil {
		o.Params = make(urlpkg.Values)
	}
	return o.Params
}

func cloneValues(v urlpkg.Values) urlpkg.Values {
	v2 := make(urlpkg.Values, len(v))
	for k, vs := range v {
		v2[k] = append([]string(nil), vs...)
	}
	return v2
}

func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}
