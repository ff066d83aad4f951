// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restclient

import (
	"errors"
	"fmt"
	"net/http"
)

const nilSessionMsg = "restclient: session factory returned nil session"

var (
	// ErrNotStarted is returned by Client.Dispatch when Startup has not
	// yet succeeded.
	ErrNotStarted = errors.New("restclient: client not started")

	// ErrInvalidMiddleware is returned by Client.Use when the
	// middleware can not be registered.
	ErrInvalidMiddleware = errors.New("restclient: invalid middleware")

	// ErrNilOptions is returned by Client.Dispatch when a middleware
	// returns nil options.
	ErrNilOptions = errors.New("restclient: middleware returned nil options")
)

// An APIError is returned when the REST API answers with a status code
// outside the 2XX range.
//
// The response body has already been read into Body and closed, so the
// Response is safe to inspect but not to read from.
type APIError struct {
	// Method is the HTTP method of the failed call.
	Method string
	// URL is the URL of the failed call.
	URL string
	// Response is the HTTP response received.
	Response *http.Response
	// Body is the response body.
	Body []byte
}

func (err *APIError) Error() string {
	return fmt.Sprintf("restclient: %s %s: %s", err.Method, err.URL, err.status())
}

// StatusCode returns the HTTP status code of the response.
func (err *APIError) StatusCode() int {
	if err.Response == nil {
		return 0
	}
	return err.Response.StatusCode
}

func (err *APIError) status() string {
	if err.Response == nil {
		return "no response"
	}
	if err.Response.Status != "" {
		return err.Response.Status
	}
	code := err.Response.StatusCode
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}

// AsAPIError finds the first *APIError in err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Error is AsAPIError, exposed on the client for convenience.
func (c *Client) Error(err error) (*APIError, bool) {
	return AsAPIError(err)
}
