// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Options (describes how a single
REST call should be made) and Result (describes the outcome of a call).

Options are built from functional Option values. A client keeps one
Options value as its defaults template, and every call works on a clone
of that template with the call's own options applied on top:

	o := request.NewOptions(request.Header("User-Agent", "my-app/1.0"))
	call := o.Clone()
	call.Apply(request.Param("page", "2"), request.JSON(payload))
	r, err := call.NewRequest(ctx, "POST", "https://api.example.com/things")
	...

Header and query parameter options merge key by key, so a per-call
header never wipes out the default headers it does not name.

The second core type is Result. A Result holds the HTTP response and,
depending on the Parse and Close options, the buffered response body and
the decoded JSON value.
*/
package request
