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

// Package record implements runtime-declared record types: identity-carrying
// fields, composable immutable type schemas, per-field validation, and
// persistent copy-on-write state instances.
//
// The core concepts:
//
//   - Field[T]: a typed, named slot whose equality is determined solely by
//     an identity token allocated at declaration time. Two fields declared
//     independently with identical names and kinds are distinct; a field
//     renamed via WithName remains the same field.
//   - Validation[T]: a pure per-field rule producing an optional rejection
//     message, attached to a Type.
//   - Type: an immutable set of fields plus validations. Adding a field or
//     validation yields a new Type with a new identity; structural equality
//     is deliberately not type equality.
//   - State: a persistent, type-checked mapping from field to value. Every
//     write validates the candidate value and returns a new State sharing
//     all unchanged entries; the original is never mutated.
//   - Populator: a batch accumulator that stages validated values and
//     materializes one State.
//
// Types and states are immutable after construction and safe for concurrent
// reads without synchronization. The once-only declaration machinery lives
// in the registry package.
package record

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jthughey/immutables/immcore/model"
)

// Identity is the opaque token that determines equality for fields, types,
// and states. A token is issued once, at construction time, and carries no
// semantic content: it exists exclusively so that "same" can be
// distinguished from "equal-looking".
//
// The zero Identity is never issued and marks zero-value fields, types, and
// states.
type Identity uint64

// identities issues monotonically increasing identity tokens. Issue order is
// also the deterministic iteration order for Type.Fields.
var identities atomic.Uint64

func nextIdentity() Identity {
	return Identity(identities.Add(1))
}

// Ref is the untyped view of a field, as stored by types and states and as
// used on the dynamic access path (iterating a type's fields without knowing
// their value types).
//
// Every Field[T] is a Ref, and only Field implements Ref: the assignability
// method is unexported so the implementation set stays closed. Ref equality
// MUST be judged with SameField, never with ==: two Ref values with
// different display names can still be the same field.
type Ref interface {
	// Name returns the field's display name.
	Name() string

	// Kind returns the field's declared value kind.
	Kind() Kind

	// ID returns the field's identity token.
	ID() Identity

	// Renamed returns a delegating view of this field carrying the given
	// display name. The returned Ref is the same field for every type and
	// state purpose: it shares this field's identity token.
	Renamed(name string) Ref

	// accepts reports whether a non-nil candidate value is assignable to
	// the field's declared Go type. Explicit null is handled before
	// assignability and never reaches this method.
	accepts(value any) bool
}

// SameField reports whether two field references denote the same field,
// comparing identity tokens only. Display names and kinds never participate.
//
// Zero-value or nil references are never the same field as anything,
// including each other.
func SameField(a, b Ref) bool {
	if a == nil || b == nil {
		return false
	}
	if a.ID() == 0 || b.ID() == 0 {
		return false
	}
	return a.ID() == b.ID()
}

// fieldCore holds the once-allocated, shared portion of a field. Delegating
// views created by WithName share the core and therefore the identity.
type fieldCore struct {
	id   Identity
	kind Kind
}

// Field is an identity-carrying descriptor of one named, typed slot.
//
// A Field is created once at declaration time and is immutable thereafter.
// Equality and hashing delegate entirely to the identity token: for all
// fields f1 and f2 created independently, f1 and f2 are distinct even when
// their names and kinds coincide, while a delegate created from f1 via
// WithName is equal to f1 under any display name.
//
// This type implements the model.Loggable, model.Identifiable, and
// model.ZeroCheckable contracts. It deliberately does not implement
// model.Serializable; identity tokens have no external representation.
//
// The zero value of Field carries no identity, is not usable as a slot, and
// reports IsZero() == true.
type Field[T any] struct {
	core *fieldCore
	name string
}

// Of declares a new field of value type T with a randomly generated unique
// display name. The declared kind is derived from T via KindOf. Of never
// fails.
func Of[T any]() Field[T] {
	return Named[T](uuid.NewString())
}

// Named declares a new field of value type T with the given display name.
// The name is documentation only; it never participates in equality.
func Named[T any](name string) Field[T] {
	return Field[T]{
		core: &fieldCore{id: nextIdentity(), kind: KindOf[T]()},
		name: name,
	}
}

// String declares a new anonymous string field.
func String() Field[string] {
	return Of[string]()
}

// Int declares a new anonymous int field.
func Int() Field[int] {
	return Of[int]()
}

// Bool declares a new anonymous bool field.
func Bool() Field[bool] {
	return Of[bool]()
}

// Date declares a new anonymous time.Time field.
func Date() Field[time.Time] {
	return Of[time.Time]()
}

// Compile-time assertions for the contracts Field satisfies.
var _ Ref = Field[string]{}
var _ model.Loggable = Field[string]{}
var _ model.Identifiable = Field[string]{}
var _ model.ZeroCheckable = Field[string]{}
var _ model.Comparable[Field[string]] = Field[string]{}

// Name returns the field's display name.
//
// For fields declared with Of, the name is a generated unique token; for
// fields declared with Named or renamed with WithName, it is the
// caller-chosen name. Names are for documentation and diagnostics only.
func (f Field[T]) Name() string {
	return f.name
}

// Kind returns the field's declared value kind. See KindOf for the
// classification rules.
func (f Field[T]) Kind() Kind {
	if f.core == nil {
		return KindUnknown
	}
	return f.core.kind
}

// ID returns the field's identity token, or the zero Identity for a
// zero-value field.
func (f Field[T]) ID() Identity {
	if f.core == nil {
		return 0
	}
	return f.core.id
}

// WithName returns a delegating field that shares this field's identity but
// carries the given display name. The delegate is the same field under a
// different name: every type that knows the original knows the delegate and
// vice versa, and the two compare equal.
//
// WithName on a zero-value field returns another zero-value field.
func (f Field[T]) WithName(name string) Field[T] {
	if f.core == nil {
		return Field[T]{}
	}
	return Field[T]{core: f.core, name: name}
}

// Renamed implements the Ref contract; it is the untyped form of WithName.
func (f Field[T]) Renamed(name string) Ref {
	return f.WithName(name)
}

// Ref returns the untyped view of this field for use on the dynamic access
// path.
func (f Field[T]) Ref() Ref {
	return f
}

// accepts implements the Ref contract with a comma-ok assertion against T.
func (f Field[T]) accepts(value any) bool {
	_, ok := value.(T)
	return ok
}

// Equal reports whether this field and other are the same field, comparing
// identity tokens only. Display names and declared kinds never participate.
// Zero-value fields are never equal to anything, including each other.
func (f Field[T]) Equal(other Field[T]) bool {
	return SameField(f, other)
}

// IsZero reports whether this field is the zero value (declared by no one,
// carrying no identity).
//
// This method implements the model.ZeroCheckable contract.
func (f Field[T]) IsZero() bool {
	return f.core == nil
}

// String returns a human-readable representation of the field including its
// display name, kind, and identity token.
//
// This method implements the fmt.Stringer interface and the model.Loggable
// contract.
func (f Field[T]) String() string {
	if f.core == nil {
		return "Field{}"
	}
	return fmt.Sprintf("Field{name:%s, kind:%s, id:%d}", f.name, f.core.kind, uint64(f.core.id))
}

// Redacted returns a redacted form of the field suitable for logging.
//
// This method implements the model.Loggable contract. A field holds no
// values, and display names are caller-chosen identifiers, so the redacted
// form equals String().
func (f Field[T]) Redacted() string {
	return f.String()
}

// TypeName returns the name of this type for error messages, logging, and
// debugging.
//
// This method implements the model.Identifiable contract. It always returns
// "Field".
func (f Field[T]) TypeName() string {
	return "Field"
}

// Get reads this field's value from the given state through the typed path.
//
// It fails with an UnknownFieldError if the state's type does not know this
// field, and with an UnassignedFieldError if the field was never set on the
// state. A field explicitly assigned nil reads as the zero value of T; use
// the state accessor's IsNull to distinguish an explicit nil from a zero
// value.
func (f Field[T]) Get(s *State) (T, error) {
	var zero T
	v, err := s.Field(f).Get()
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}

// Set writes a value for this field through the typed path, returning the
// new state produced by the write. The receiver state is unaffected.
//
// It fails with an UnknownFieldError if the state's type does not know this
// field, and with a ValidationError carrying all collected messages if any
// of the field's validations reject the value.
func (f Field[T]) Set(s *State, v T) (*State, error) {
	return s.Field(f).Set(v)
}

// Consume invokes fn with this field's current value in the given state only
// if the field has been assigned; otherwise it is a no-op. An explicit nil
// assignment invokes fn with the zero value of T.
//
// It fails with an UnknownFieldError if the state's type does not know this
// field.
func (f Field[T]) Consume(s *State, fn func(T)) error {
	return s.Field(f).Consume(func(v any) {
		if v == nil {
			var zero T
			fn(zero)
			return
		}
		fn(v.(T))
	})
}

// Stage validates and stages a value for this field on the given populator.
// It is the typed form of Populator.Set and obeys the same contract.
func (f Field[T]) Stage(p *Populator, v T) error {
	return p.Set(f, v)
}
