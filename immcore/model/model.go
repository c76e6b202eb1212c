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

// Package model defines the contracts that immutables domain types implement
// to ensure consistent validation, serialization, logging, and identity
// behavior across the record core.
//
// Value-semantics types (such as record.Kind) SHOULD implement the full
// Model interface. Identity-carrying types (record.Field, record.Type,
// record.State) implement the constituent contracts piecewise: they are
// Loggable, Identifiable, and ZeroCheckable, but deliberately NOT
// Serializable, because their equality is defined by process-local identity
// tokens that cannot survive a serialization round-trip.
//
// All types implementing these contracts are immutable after construction
// and therefore safe for concurrent reads without synchronization. Methods
// defined by the contracts MUST NOT mutate the receiver and MUST NOT have
// side effects.
//
// Types implementing Model can be used with the generic helper functions in
// this package, such as ValidateAll, FilterZero, MustValidate, ToJSON and
// ToYAML. These helpers rely on the Model contract and fail at compile time
// when applied to types that do not implement it.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all fundamental contracts for
// immutables value-semantics domain types. Any type implementing Model gains
// automatic support for validation, JSON and YAML round-trips, safe logging,
// type identification, and zero-value detection.
//
// Implementations MUST satisfy all embedded interfaces. Model instances are
// treated as immutable values: concurrent reads are safe, and no contract
// method mutates the receiver.
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that validate their own state.
//
// Validate MUST verify every invariant the type documents and return nil if
// and only if the instance is fully valid. When validation fails, the
// returned error MUST describe what is invalid specifically enough for a
// caller to diagnose and fix the problem; generic messages such as
// "validation failed" are discouraged.
//
// Validate MUST be fast, deterministic, and idempotent. It MUST NOT mutate
// the receiver, MUST NOT have side effects, and MUST NOT depend on external
// mutable state. Callers SHOULD invoke Validate at trust boundaries:
// immediately after unmarshaling, after constructing instances from user
// input, and before handing data to other components.
type Validatable interface {
	// Validate checks that the instance satisfies all invariants. It returns
	// nil if the instance is valid, or a descriptive error explaining what
	// is wrong if validation fails.
	Validate() error
}

// Serializable defines the contract for types that round-trip through JSON
// and YAML.
//
// Implementations MUST call Validate before marshaling so that only valid
// instances are serialized, and MUST validate after unmarshaling so that
// malformed input is rejected at the boundary. A value serialized to either
// format and deserialized again MUST be semantically equal to the original.
//
// Marshal methods are safe for concurrent use on immutable receivers.
// Unmarshal methods mutate the receiver and require exclusive access.
//
// Identity-carrying record types do not implement Serializable: an identity
// token is allocated once per instance and has no meaningful external
// representation, so a deserialized copy could never compare equal to its
// source. That exclusion is a design decision, not an omission.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that provide safe string
// representations for logging and debugging.
//
// Redacted returns a representation suitable for production logging. It
// MUST hide caller data that the type cannot prove to be safe; in this
// module, record states never include assigned field values in their
// redacted form, because those values are arbitrary caller data. Redacted
// MUST be fast and allocation-conscious.
//
// String returns a human-readable representation that MAY include more
// detail and is intended for development, debugging, and test output. Use
// Redacted, never String, for production logs.
type Loggable interface {
	// Redacted returns a safe representation for production logging. It MUST
	// NOT expose arbitrary caller-supplied values.
	Redacted() string

	// String returns a human-readable representation of the instance. It MAY
	// include data that Redacted hides.
	String() string
}

// Identifiable defines the contract for types that name themselves for
// diagnostics.
//
// TypeName MUST return a constant, CamelCase name without a package prefix
// (for example, "Kind", "Field", "State"). The name identifies the type,
// not the instance, and MUST NOT vary with field values. TypeName SHOULD
// return a string constant and MUST NOT allocate.
type Identifiable interface {
	// TypeName returns the canonical name of this model type.
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// are in a zero or empty state, enabling optional-value detection and
// zero-value guard clauses.
//
// IsZero MUST return true if and only if the instance carries no meaningful
// data: an unissued identity, an unset enum, an empty declaration. IsZero
// MUST be fast, deterministic, and free of side effects.
type ZeroCheckable interface {
	// IsZero reports whether this instance is in a zero or empty state.
	IsZero() bool
}

// Comparable defines the contract for types that can be compared for
// equality.
//
// Equal MUST be reflexive, symmetric, transitive, and consistent. For the
// identity-carrying record types, Equal compares identity tokens only; two
// structurally identical but independently constructed instances are NOT
// equal, and that behavior is part of their documented contract rather than
// a violation of this one.
type Comparable[T any] interface {
	// Equal reports whether this instance is equal to another instance of
	// the same type.
	Equal(other T) bool
}

