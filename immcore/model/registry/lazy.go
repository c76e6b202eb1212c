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

// Package registry provides the once-only declaration machinery for record
// types: the lazy, thread-safe binding of a declaration site to a concrete
// record.Type, and the process-wide cache that guarantees one canonical
// Type per declaration key.
//
// Both components follow the same publication discipline: an exclusive
// critical section guards the decision to publish, while the published
// value itself is immutable and visible to all readers without locking.
// Readers never block; only concurrent first-writers contend, and
// contention resolves as "first successful publisher wins, losers discard
// their work and adopt the winner's value".
//
// The registry is explicit and injectable by design: there is no ambient
// process-global state in this package.
package registry

import (
	"sync"
	"sync/atomic"

	"github.com/jthughey/immutables/immcore/errors"
	"github.com/jthughey/immutables/immcore/model/record"
)

// Definition accumulates the declarations for one lazy type: fields
// (optionally renamed to their declaration-site-local names), merged
// sub-types, and validations. It is the explicit, declarative replacement
// for scanning a declaration site's members.
//
// The zero value is an empty definition. Builder methods return the
// receiver for chaining. A Definition is not safe for concurrent use; it is
// consumed by a single LazyType.Define call.
//
//	def := registry.NewDefinition().
//	    Field("name", name).
//	    Field("legs", legs).
//	    Merge(taxonomy).
//	    Validate(nameUpper)
type Definition struct {
	fields []record.Ref
	rules  []record.Rule
}

// NewDefinition returns an empty Definition.
func NewDefinition() *Definition {
	return &Definition{}
}

// Field declares f under the given declaration-site-local display name. The
// rename preserves f's identity: the defined type knows f itself, and f's
// values are read and written through the renamed view interchangeably.
// Zero-value references are ignored.
func (d *Definition) Field(name string, f record.Ref) *Definition {
	if f == nil || f.ID() == 0 {
		return d
	}
	d.fields = append(d.fields, f.Renamed(name))
	return d
}

// Add declares f under its declared display name. Zero-value references are
// ignored.
func (d *Definition) Add(f record.Ref) *Definition {
	if f == nil || f.ID() == 0 {
		return d
	}
	d.fields = append(d.fields, f)
	return d
}

// Merge declares every field and validation of t, merging the sub-type's
// schema into this definition. Duplicate fields collapse by identity when
// the type is built. Nil or zero types are ignored.
func (d *Definition) Merge(t *record.Type) *Definition {
	if t.IsZero() {
		return d
	}
	d.fields = append(d.fields, t.Fields()...)
	d.rules = append(d.rules, t.Validations()...)
	return d
}

// Validate declares a validation. Nil rules are ignored.
func (d *Definition) Validate(r record.Rule) *Definition {
	if r == nil {
		return d
	}
	d.rules = append(d.rules, r)
	return d
}

// build constructs the concrete type for this definition.
func (d *Definition) build() *record.Type {
	if d == nil {
		return record.NewType()
	}
	return record.NewTypeWith(d.fields, d.rules)
}

// LazyType wraps a not-yet-defined record.Type for one declaration site.
//
// A LazyType transitions from undefined to defined exactly once, under
// mutual exclusion; any second definition attempt fails with an
// AlreadyDefinedError. Read operations fail with a NotDefinedError until
// the definition completes, then delegate transparently to the resolved
// Type, lock-free.
//
// Separating "allocate the wrapper" from "populate its schema" lets a
// declaration site reference itself during construction: the wrapper can be
// handed out before the fields it will carry exist.
//
// The zero value is an undefined LazyType, ready for use.
type LazyType struct {
	mu       sync.Mutex
	resolved atomic.Pointer[record.Type]
}

// NewLazyType returns an undefined LazyType.
func NewLazyType() *LazyType {
	return &LazyType{}
}

// Define builds the concrete Type from def and publishes it, completing
// this LazyType's single undefined-to-defined transition.
//
// It fails with an AlreadyDefinedError if the LazyType is already defined;
// the established definition is never replaced. A nil def defines the
// empty schema.
func (l *LazyType) Define(def *Definition) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved.Load() != nil {
		return &errors.AlreadyDefinedError{}
	}
	l.resolved.Store(def.build())
	return nil
}

// DefineFields is a convenience form of Define for collaborators that
// already hold flat field and validation lists, per the declaration
// contract: it is equivalent to defining a Definition with each field added
// under its declared name and each rule appended.
func (l *LazyType) DefineFields(fields []record.Ref, rules ...record.Rule) error {
	def := NewDefinition()
	for _, f := range fields {
		def.Add(f)
	}
	for _, r := range rules {
		def.Validate(r)
	}
	return l.Define(def)
}

// Defined reports whether the one-time definition has completed.
func (l *LazyType) Defined() bool {
	return l.resolved.Load() != nil
}

// Resolved returns the defined Type, or a NotDefinedError if Define has not
// completed. The read is lock-free.
func (l *LazyType) Resolved() (*record.Type, error) {
	t := l.resolved.Load()
	if t == nil {
		return nil, &errors.NotDefinedError{}
	}
	return t, nil
}

func (l *LazyType) resolvedOr(op string) (*record.Type, error) {
	t := l.resolved.Load()
	if t == nil {
		return nil, &errors.NotDefinedError{Op: op}
	}
	return t, nil
}

// Knows forwards to the defined Type's Knows. It fails with a
// NotDefinedError before definition.
func (l *LazyType) Knows(f record.Ref) (bool, error) {
	t, err := l.resolvedOr("Knows")
	if err != nil {
		return false, err
	}
	return t.Knows(f), nil
}

// Fields forwards to the defined Type's Fields. It fails with a
// NotDefinedError before definition.
func (l *LazyType) Fields() ([]record.Ref, error) {
	t, err := l.resolvedOr("Fields")
	if err != nil {
		return nil, err
	}
	return t.Fields(), nil
}

// Validations forwards to the defined Type's Validations. It fails with a
// NotDefinedError before definition.
func (l *LazyType) Validations() ([]record.Rule, error) {
	t, err := l.resolvedOr("Validations")
	if err != nil {
		return nil, err
	}
	return t.Validations(), nil
}

// Validator forwards to the defined Type's Validator. It fails with a
// NotDefinedError before definition.
func (l *LazyType) Validator(f record.Ref) (record.Validator, error) {
	t, err := l.resolvedOr("Validator")
	if err != nil {
		return nil, err
	}
	return t.Validator(f), nil
}

// AddField forwards to the defined Type's AddField, returning the derived
// concrete Type. The LazyType itself is unaffected; lazily defined schemas
// compose the same way concrete ones do, by producing new types. It fails
// with a NotDefinedError before definition.
func (l *LazyType) AddField(f record.Ref) (*record.Type, error) {
	t, err := l.resolvedOr("AddField")
	if err != nil {
		return nil, err
	}
	return t.AddField(f), nil
}

// AddValidation forwards to the defined Type's AddValidation, returning the
// derived concrete Type. It fails with a NotDefinedError before definition.
func (l *LazyType) AddValidation(r record.Rule) (*record.Type, error) {
	t, err := l.resolvedOr("AddValidation")
	if err != nil {
		return nil, err
	}
	return t.AddValidation(r), nil
}

// State forwards to the defined Type's State, returning a fresh, fully
// unassigned State. It fails with a NotDefinedError before definition.
func (l *LazyType) State() (*record.State, error) {
	t, err := l.resolvedOr("State")
	if err != nil {
		return nil, err
	}
	return t.State(), nil
}

// Populator forwards to the defined Type's Populator. It fails with a
// NotDefinedError before definition.
func (l *LazyType) Populator() (*record.Populator, error) {
	t, err := l.resolvedOr("Populator")
	if err != nil {
		return nil, err
	}
	return t.Populator(), nil
}
