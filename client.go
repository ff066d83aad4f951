// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gogama/restclient/request"
	"github.com/gogama/restclient/resource"
	"github.com/gogama/restclient/transient"
	"github.com/sirupsen/logrus"
)

// A Client is a REST API client. Create one with New.
//
// A Client owns a base URL, an immutable snapshot of default call
// options (see package request), an ordered middleware chain, and a
// session which sends the HTTP requests. The session is created lazily
// by Startup, which must be called before the first request.
//
// Navigate the API from the root descriptor returned by API:
//
//	client := restclient.New("https://api.github.com",
//		request.Header("User-Agent", "my-app/1.0"))
//	if err := client.Startup(ctx); err != nil {
//		...
//	}
//	r, err := client.API().At("users").At("klen").Get(ctx)
//
// Client is safe for concurrent use by multiple goroutines. Every call
// works on its own copy of the default options, so neither the call
// options nor anything a middleware does to them is visible to other
// calls.
type Client struct {
	// NewSession creates the client-wide session when Startup is first
	// called.
	//
	// If NewSession is nil, DefaultSession is used.
	NewSession func(ctx context.Context) (request.Session, error)

	// Logger receives one entry per call: debug level for completed
	// calls, warn level for transport failures.
	//
	// If Logger is nil, log output is discarded.
	Logger logrus.FieldLogger

	base     string
	defaults *request.Options

	mu         sync.Mutex
	session    request.Session
	middleware []Middleware
}

// New returns a client for the REST API rooted at baseURL.
//
// The defaults are applied to a fresh request.Options value (Parse
// true, Close false) which becomes the client's read-only defaults
// snapshot. New creates no network resources.
func New(baseURL string, defaults ...request.Option) *Client {
	return &Client{
		base:     baseURL,
		defaults: request.NewOptions(defaults...),
	}
}

// BaseURL returns the base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.base
}

// Defaults returns a copy of the client's default options. Changing the
// copy has no effect on the client.
func (c *Client) Defaults() *request.Options {
	return c.defaults.Clone()
}

// API returns the root resource descriptor, bound to c.Dispatch.
func (c *Client) API() resource.Descriptor {
	return resource.New(c, c.base)
}

// Startup creates the client-wide session. It must be called before
// any request is dispatched.
//
// Startup is idempotent: once it has succeeded, later calls return nil
// immediately and the session is not replaced. If the session factory
// fails, the client stays uninitialized and Startup may be retried.
func (c *Client) Startup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return nil
	}

	factory := c.NewSession
	if factory == nil {
		factory = DefaultSession
	}
	s, err := factory(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		return errors.New(nilSessionMsg)
	}
	c.session = s
	return nil
}

// Session returns the client-wide session, or nil if Startup has not
// yet succeeded.
func (c *Client) Session() request.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Close invokes CloseIdleConnections on the client-wide session if it
// has such a method. The client remains usable afterward.
func (c *Client) Close() {
	if ic, ok := c.Session().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// Dispatch makes one REST call and returns the result.
//
// The steps are, in order:
//
// 1. The call options are applied to a fresh clone of the client's
// defaults, so header and query parameter options merge key by key
// and the defaults are never changed.
//
// 2. Each registered middleware is run, in registration order, and may
// rewrite the method, the URL and the options. A middleware error ends
// the call.
//
// 3. The request is sent through the call's session override if the
// options carry one, or else through the client-wide session.
//
// 4. A transport error is returned unmodified. A response whose status
// code is not 2XX is read, closed, and returned as an *APIError.
//
// 5. Otherwise, if Parse is false, the raw response is returned with
// its body unread. If Close is true, the body is read, the response is
// closed, and the result is returned without decoding. Otherwise the
// body is read, closed, and decoded as JSON into the Into target or
// Result.Value.
//
// Dispatch returns ErrNotStarted if Startup has not yet succeeded.
func (c *Client) Dispatch(ctx context.Context, method, url string, opts ...request.Option) (*request.Result, error) {
	session, chain := c.snapshot()
	if session == nil {
		return nil, ErrNotStarted
	}

	o := c.defaults.Clone()
	o.Apply(opts...)

	method, url, o, err := runMiddleware(ctx, chain, method, url, o)
	if err != nil {
		return nil, err
	}
	if o.Session != nil {
		session = o.Session
	}

	r := &request.Result{
		Method: method,
		URL:    url,
		Start:  time.Now(),
	}
	r.Request, err = o.NewRequest(ctx, method, url)
	if err != nil {
		return nil, err
	}
	r.Method = r.Request.Method

	log := c.logger().WithFields(logrus.Fields{
		"method": r.Method,
		"url":    url,
	})

	r.Response, err = session.Do(r.Request)
	if err != nil {
		log.WithError(err).
			WithField("error_class", transient.Categorize(err).String()).
			WithField("duration", time.Since(r.Start)).
			Warn("restclient: request failed")
		return nil, err
	}

	log = log.WithField("status", r.Response.StatusCode)

	if !success(r.Response.StatusCode) {
		body, readErr := readAndClose(r.Response.Body)
		if readErr != nil {
			log = log.WithField("read_error", readErr.Error())
		}
		log.WithField("duration", time.Since(r.Start)).Debug("restclient: error response")
		return nil, &APIError{
			Method:   r.Method,
			URL:      url,
			Response: r.Response,
			Body:     body,
		}
	}

	if !o.Parse {
		r.End = time.Now()
		log.WithField("duration", r.Duration()).Debug("restclient: raw response")
		return r, nil
	}

	r.Body, err = readAndClose(r.Response.Body)
	r.End = time.Now()
	if err != nil {
		log.WithError(err).Warn("restclient: failed to read response body")
		return nil, err
	}
	if r.Body == nil {
		r.Body = []byte{}
	}
	if !o.Close {
		if o.Into != nil {
			err = request.DecodeJSON(r.Body, o.Into)
		} else {
			err = request.DecodeJSON(r.Body, &r.Value)
		}
		if err != nil {
			return nil, fmt.Errorf("restclient: decode %s %s: %w", r.Method, url, err)
		}
	}

	log.WithField("duration", r.Duration()).Debug("restclient: response")
	return r, nil
}

func (c *Client) snapshot() (request.Session, []Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session, c.middleware[:len(c.middleware):len(c.middleware)]
}

func (c *Client) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return discardLogger
	}
	return c.Logger
}

func success(statusCode int) bool {
	return statusCode >= 200 && statusCode <= 299
}

func readAndClose(body io.ReadCloser) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(body)
	closeErr := body.Close()
	if err != nil {
		return b, err
	}
	return b, closeErr
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}()
