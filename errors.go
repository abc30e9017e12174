/*
 * errors.go, part of watcon.
 *
 * Copyright 2026 The watcon authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package watcon

import "fmt"

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else. The decoration slice
// should contain the functions in the calling stack, plus, for each function,
// any relevant extra information. If passed an empty string, Decorate just
// returns the current value without adding anything.
type Error interface {
	Error() string
	Decorate(string) []string
}

// Kind distinguishes the failure classes of the library. SpatialIndexEmpty is
// deliberately absent: querying an empty index answers "no match", not an error.
type Kind int

const (
	//KindOther is any failure not covered by the specific kinds below.
	KindOther Kind = iota
	//KindConfiguration marks a misconfiguration: unknown network type, a
	//feature requested without the reference data it needs, etc.
	KindConfiguration
	//KindGeometryDegenerate marks a division by zero in a metric or angle:
	//zero or one node, zero-length vectors.
	KindGeometryDegenerate
	//KindDataMissing marks an expected atom role that is absent, e.g. no
	//protein atoms when a water-protein network was requested.
	KindDataMissing
)

// CError is the concrete error type of the watcon packages.
type CError struct {
	msg  string
	kind Kind
	deco []string
}

func (err *CError) Error() string { return err.msg }

// Decorate adds new information to the error.
func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Kind returns the failure class of the error.
func (err *CError) Kind() Kind { return err.kind }

// NewError builds a CError of the given kind with a formatted message.
func NewError(kind Kind, format string, args ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, args...), kind: kind}
}

// KindOf returns the Kind of err, or KindOther if err is not a *CError.
func KindOf(err error) Kind {
	if cerr, ok := err.(*CError); ok {
		return cerr.Kind()
	}
	return KindOther
}

// IsConfiguration returns whether err is a configuration error.
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }

// IsDegenerate returns whether err marks degenerate geometry (a division by
// zero in a metric or angle computation).
func IsDegenerate(err error) bool { return KindOf(err) == KindGeometryDegenerate }

// IsDataMissing returns whether err marks an absent atom role.
func IsDataMissing(err error) bool { return KindOf(err) == KindDataMissing }

// EDecorate decorates err with the name of the caller if err implements the
// Error interface of this package, and returns it unchanged otherwise.
func EDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if derr, ok := err.(Error); ok {
		derr.Decorate(caller)
		return derr
	}
	return err
}
