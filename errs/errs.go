// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs defines the tagged error kinds shared by every layer of
// the solver: mesh, boundary conditions, the differential-equation
// model, the differentiator, the operators and Parareal.
package errs

import (
	"github.com/cpmech/gosl/chk"
)

// Kind tags an error with the condition that triggered it, so callers can
// branch on failure class without string-matching messages.
type Kind string

// error kinds raised by construction-time validation or by solve-time failures
const (
	ShapeMismatch            Kind = "ShapeMismatch"
	InvalidParameter         Kind = "InvalidParameter"
	InsufficientStencilWidth Kind = "InsufficientStencilWidth"
	BoundarySpecMissing      Kind = "BoundarySpecMissing"
	SymbolOutOfScope         Kind = "SymbolOutOfScope"
	LhsCombination           Kind = "LhsCombination"
	Divergence               Kind = "Divergence"
	DidNotConverge           Kind = "DidNotConverge"
)

// Error wraps a Kind around a message built by chk.Err, gofem's own
// error-construction helper, rather than formatting the message itself.
type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string { return string(e.kind) + ": " + e.err.Error() }

// Unwrap exposes the underlying chk.Err-built error to errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Kind reports the tag this error was raised with.
func (e *Error) Kind() string { return string(e.kind) }

// New builds a tagged error on top of gofem's chk.Err(fmt, args...) idiom.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, err: chk.Err(format, args...)}
}

// As reports whether err is a tagged Error of the given kind.
func As(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.kind == kind
}

// Panic mirrors gofem's chk.Panic for unrecoverable construction-time
// mistakes in driver code; library packages never call this.
func Panic(format string, args ...interface{}) {
	chk.Panic(format, args...)
}
