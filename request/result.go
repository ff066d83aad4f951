// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

const noBodyMsg = "restclient/request: no buffered body to decode"

// A Result represents the outcome of a single REST call.
//
// What a Result carries depends on the call's Parse and Close options:
//
// • Parse false: Response is the raw response, its body has not been
// read, and Body and Value are nil. The caller must close the body.
//
// • Close true: Body holds the complete response body and the response
// body has already been closed. Value is nil.
//
// • Otherwise: Body holds the complete response body, the response body
// has been closed, and Value holds the decoded JSON (unless the call
// decoded into an Into target, in which case Value is nil).
type Result struct {
	// Method is the HTTP method actually sent, after any middleware
	// rewrote it.
	Method string

	// URL is the URL actually sent, after any middleware rewrote it.
	URL string

	// Request is the HTTP request that was sent.
	Request *http.Request

	// Response is the HTTP response received. It is never nil in a
	// Result returned without error.
	Response *http.Response

	// Body is the buffered response body, or nil if the body was left
	// unread (Parse false).
	Body []byte

	// Value is the decoded JSON response body. An empty body decodes
	// to nil.
	Value interface{}

	// Start is the time the call started.
	Start time.Time

	// End is the time the call ended.
	End time.Time
}

// StatusCode returns the status code of the HTTP response. If there is
// no HTTP response, 0 is returned.
func (r *Result) StatusCode() int {
	if r.Response == nil {
		return 0
	}

	return r.Response.StatusCode
}

// Header returns the HTTP response headers. If there is no HTTP
// response, the nil header is returned.
func (r *Result) Header() http.Header {
	if r.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return r.Response.Header
}

// Duration returns End minus Start, or zero if the call has not ended.
func (r *Result) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}

	return r.End.Sub(r.Start)
}

// Decode decodes the buffered body as JSON into v.
//
// Decode is useful for calls made with Close true, which buffer the
// body but skip decoding. It returns an error if the body was never
// buffered.
func (r *Result) Decode(v interface{}) error {
	if r.Body == nil {
		return errors.New(noBodyMsg)
	}

	return DecodeJSON(r.Body, v)
}

// DecodeJSON decodes b into v. An empty (or all whitespace) body is not
// an error and leaves v untouched.
func DecodeJSON(b []byte, v interface{}) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}

	return json.Unmarshal(b, v)
}
