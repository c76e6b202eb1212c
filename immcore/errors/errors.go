/*
   Copyright 2025 Justin Hughey

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package errors provides the error taxonomy shared by the immutables record
// core.
//
// Every failure surfaced by the record, model and registry packages is one
// of the types defined here. The types are intentionally simple value
// carriers with stable message formats so that they are:
//
//   - easy to construct from the call sites that detect a violation,
//   - easy to recognize via the standard library's errors.As,
//   - and easy for users to understand when surfaced in logs or diagnostics.
//
// # Error Types
//
//   - ParseError
//     Returned when parsing a string into an enum-like type (such as
//     record.Kind) fails.
//
//   - UnknownFieldError
//     Returned when a State or Populator operation references a field its
//     type does not know. Always synchronous, never retried.
//
//   - UnassignedFieldError
//     Returned when a value is read from a field that was never set on a
//     state. Distinguishes "never set" from "explicitly set to nil"; the
//     latter succeeds and yields nil.
//
//   - ValidationError
//     Returned when one or more field validations rejected a value. Carries
//     the full list of rejection messages, not just the first, so a caller
//     can report every problem at once.
//
//   - AlreadyDefinedError
//     Returned when a lazy type is defined a second time. The first
//     definition wins; the entry is never redefined.
//
//   - NotDefinedError
//     Returned when a type-like operation is invoked on a lazy type before
//     it has been defined.
//
//   - FactoryError
//     Returned when a type cache's construction factory fails. Wraps the
//     factory's error (recoverable via errors.Unwrap / errors.Is) and names
//     the cache key, which remains unpublished and eligible for retry.
//
// # Usage
//
// Callers branch on error kind with errors.As:
//
//	_, err := state.Field(f).Get()
//	var unassigned *errors.UnassignedFieldError
//	if stderrors.As(err, &unassigned) {
//	    // field was never set on this state
//	}
package errors

import "strings"

// ParseError is returned when parsing a string into a strongly typed
// enum-like value fails.
//
// Type identifies the logical type being parsed (for example, "Kind") and
// Value contains the exact string that could not be interpreted. Callers MAY
// pattern-match on Type to provide type-specific guidance.
//
// The error message format is:
//
//	"immutables: invalid {Type} value: {Value}"
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Kind").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return "immutables: invalid " + e.Type + " value: " + e.Value
}

// UnknownFieldError is returned when a state or populator operation
// references a field that the underlying record type does not know.
//
// Type is the display form of the record type, Field is the display name of
// the offending field. A type only knows the exact field identities it was
// constructed with; a field with an equal-looking name and kind but a
// different identity is still unknown.
//
// The error message format is:
//
//	"immutables: type {Type} does not know field {Field}"
type UnknownFieldError struct {
	// Type is the display form of the record type that rejected the field.
	Type string

	// Field is the display name of the field that was not recognized.
	Field string
}

// Error implements the error interface for UnknownFieldError.
func (e *UnknownFieldError) Error() string {
	return "immutables: type " + e.Type + " does not know field " + e.Field
}

// UnassignedFieldError is returned when a value is read from a field that
// has never been assigned on the state in question.
//
// An explicit nil assignment is still an assignment: reading such a field
// succeeds and yields nil. Only fields that were never set at all produce
// this error.
//
// The error message format is:
//
//	"immutables: field {Field} has not been assigned a value"
type UnassignedFieldError struct {
	// Field is the display name of the unassigned field.
	Field string
}

// Error implements the error interface for UnassignedFieldError.
func (e *UnassignedFieldError) Error() string {
	return "immutables: field " + e.Field + " has not been assigned a value"
}

// ValidationError is returned when one or more validations attached to a
// field rejected a candidate value.
//
// Field is the display name of the validated field and Messages contains
// every rejection message produced by the field's validations, in
// registration order. All validations are evaluated before the error is
// built, so callers can report all problems at once rather than fixing them
// one rejection at a time.
//
// The error message format is:
//
//	"immutables: invalid value for field {Field}: {msg1}; {msg2}; ..."
type ValidationError struct {
	// Field is the display name of the field whose value was rejected.
	Field string

	// Messages holds every rejection message, in the order the validations
	// were registered on the type. It is never empty.
	Messages []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return "immutables: invalid value for field " + e.Field + ": " +
		strings.Join(e.Messages, "; ")
}

// AlreadyDefinedError is returned when Define is called on a lazy type that
// has already been defined. The first definition is permanent; losers of a
// definition race receive this error and MUST adopt the established type.
//
// The error message format is:
//
//	"immutables: lazy type already defined"
type AlreadyDefinedError struct{}

// Error implements the error interface for AlreadyDefinedError.
func (e *AlreadyDefinedError) Error() string {
	return "immutables: lazy type already defined"
}

// NotDefinedError is returned when a type-like operation is invoked on a
// lazy type before its one-time definition has completed.
//
// Op names the operation that was attempted (for example, "Knows" or
// "State") to aid diagnostics; it MAY be empty.
//
// The error message format is:
//
//	"immutables: lazy type not yet defined"
//	"immutables: lazy type not yet defined ({Op})"
type NotDefinedError struct {
	// Op optionally names the operation that required a defined type.
	Op string
}

// Error implements the error interface for NotDefinedError.
func (e *NotDefinedError) Error() string {
	if e.Op != "" {
		return "immutables: lazy type not yet defined (" + e.Op + ")"
	}
	return "immutables: lazy type not yet defined"
}

// FactoryError is returned by the type cache when the caller-supplied
// construction factory fails. The named key remains unpublished, so a later
// GetOrCreate call with the same key will invoke its factory again.
//
// The wrapped factory error is available via errors.Unwrap and participates
// in errors.Is / errors.As chains.
//
// The error message format is:
//
//	"immutables: type factory for key {Key} failed: {Err}"
type FactoryError struct {
	// Key is the cache key whose factory failed.
	Key string

	// Err is the error returned by the factory.
	Err error
}

// Error implements the error interface for FactoryError.
func (e *FactoryError) Error() string {
	return "immutables: type factory for key " + e.Key + " failed: " + e.Err.Error()
}

// Unwrap returns the underlying factory error.
func (e *FactoryError) Unwrap() error {
	return e.Err
}
