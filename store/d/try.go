// Copyright 2016 Attic Labs, Inc. All rights reserved.
// Licensed under the Apache License, version 2.0:
// http://www.apache.org/licenses/LICENSE-2.0

// Package d holds invariant-checking helpers used at construction time.
// Nothing on the per-lookup hot path may call into this package: a
// corrupt index degrades to a miss, it never panics.
package d

import "fmt"

// PanicIfError panics with err if it is non-nil.
func PanicIfError(err error) error {
	if err != nil {
		panic(err)
	}
	return err
}

// PanicIfTrue panics if b is true.
func PanicIfTrue(b bool) {
	if b {
		panic("expected condition to be false")
	}
}

// PanicIfFalse panics if b is false.
func PanicIfFalse(b bool) {
	if !b {
		panic("expected condition to be true")
	}
}

type wrappedError struct {
	msg   string
	cause error
}

func (w wrappedError) Error() string { return w.msg }
func (w wrappedError) Cause() error  { return w.cause }

// Wrap wraps err with its own stringified form as the message, so that
// Cause() can recover the original error. Wrapping nil returns nil.
// Wrapping an already-wrapped error returns it unchanged.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(wrappedError); ok {
		return err
	}
	return wrappedError{fmt.Sprintf("%v", err), err}
}

// Unwrap returns the original error passed to Wrap, or err itself if it
// was never wrapped.
func Unwrap(err error) error {
	if w, ok := err.(wrappedError); ok {
		return w.cause
	}
	return err
}
