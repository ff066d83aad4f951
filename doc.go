// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package restclient provides a REST API client whose calls are built by
navigating resource paths rather than by formatting URLs.

Create a Client with the API's base URL and any default options, start
it, then navigate from its root descriptor:

	client := restclient.New("https://api.github.com",
		request.Header("User-Agent", "my-app/1.0"))
	if err := client.Startup(ctx); err != nil {
		...
	}
	r, err := client.API().At("users").At("klen").Get(ctx)
	...
	fmt.Println(r.Value) // decoded JSON
	...
	issues := client.API().Join("repos", "klen", "aiorest-client", "issues")
	r, err = issues.Post(ctx, map[string]string{"title": "t", "body": "b"})

Call options from package request control each call: query parameters
(request.Param), header fields (request.Header), the JSON or raw body,
a one-off session (request.WithSession), and what happens to the
response (request.Parse, request.Close, request.Into). Per-call options
are layered on a copy of the client's defaults; header fields merge key
by key.

To rewrite outgoing calls, register middleware. Middleware runs before
every call, in registration order:

	err := client.Use(restclient.MiddlewareFunc(
		func(ctx context.Context, method, url string, o *request.Options) (string, string, *request.Options, error) {
			o.Header.Set("X-Request-Id", newRequestID())
			return method, url, o, nil
		}))

A response with a non-2XX status code is returned as an *APIError,
which carries the response and its body. Transport errors are returned
unmodified.

For control over how requests are sent, supply a session factory. Any
type with an http.Client-style Do method is a session:

	client.NewSession = func(ctx context.Context) (request.Session, error) {
		return &http.Client{Timeout: 10 * time.Second}, nil
	}

Clients may also be built from a YAML file with LoadConfig.
*/
package restclient
