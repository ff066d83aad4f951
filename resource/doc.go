// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package resource provides Descriptor, an immutable builder for REST
resource paths.

A Descriptor accumulates path segments as it is navigated and sends a
request only when one of its verb methods is invoked:

	issues := client.API().Join("repos", "klen", "aiorest-client", "issues")
	r, err := issues.Post(ctx, map[string]string{"title": "t", "body": "b"})
	...
	r, err = client.API().At("users").At("klen").Get(ctx)
	...

Navigation never changes the receiver. Every call to At or Join returns
a new Descriptor, so a partially built path can be shared freely:

	users := client.API().At("users")
	alice := users.At("alice")
	bob := users.At("bob") // users is still "/users"

A Descriptor hands the HTTP method, its URL and the call options to a
Dispatcher. The restclient.Client is the usual Dispatcher, but any
function can act as one via DispatcherFunc, which is handy in tests.
*/
package resource
