// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restclient

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gogama/restclient/request"
	"golang.org/x/net/http2"
)

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the client's session implements IdleCloser, Client.Close forwards
// to it. The GoLang standard http.Client implements IdleCloser.
type IdleCloser interface {
	CloseIdleConnections()
}

var (
	_ request.Session = (*http.Client)(nil)
	_ IdleCloser      = (*http.Client)(nil)
)

// DefaultSession is the session factory used when Client.NewSession is
// nil. It returns NewHTTPSession(0).
func DefaultSession(_ context.Context) (request.Session, error) {
	return NewHTTPSession(0)
}

// NewHTTPSession returns a standard http.Client with its own transport
// (no state shared with http.DefaultTransport) configured for HTTP/2.
//
// Parameter timeout is the http.Client's overall request timeout. Zero
// means no timeout.
func NewHTTPSession(timeout time.Duration) (*http.Client, error) {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if err := http2.ConfigureTransport(t); err != nil {
		return nil, err
	}
	return &http.Client{
		Transport: t,
		Timeout:   timeout,
	}, nil
}
