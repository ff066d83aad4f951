// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport errors returned while making
// REST calls as transient or non-transient. The client uses it to label
// its log entries; callers may use it to decide whether a failed call
// is worth repeating.
//
// Package transient depends only on the standard library packages
// "context", "errors" and "syscall".
package transient
