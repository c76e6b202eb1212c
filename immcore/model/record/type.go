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

package record

import (
	"fmt"
	"sort"

	"github.com/jthughey/immutables/immcore/errors"
	"github.com/jthughey/immutables/immcore/model"
)

// Type is an immutable structural schema: a set of fields (unique by field
// identity) plus a list of validations grouped by the field they reference.
//
// A Type's field set and validation list are fixed once constructed; adding
// a field or validation always returns a new Type carrying a fresh identity
// token, and the original is unaffected. Composition is associative and
// order-independent on field identity: adding the same field twice is
// idempotent, and the resulting Type always knows exactly the union of the
// contributing fields.
//
// Identity, not structure, determines equality: two independently built
// Types with identical fields are distinct types. This mirrors the field
// contract and is deliberate.
//
// This type implements the model.Loggable, model.Identifiable, and
// model.ZeroCheckable contracts. It does not implement model.Serializable;
// identity tokens have no external representation.
type Type struct {
	id          Identity
	fields      map[Identity]Ref
	validations map[Identity][]Rule
	ruleCount   int
}

// Compile-time assertions for the contracts Type satisfies.
var _ model.Loggable = (*Type)(nil)
var _ model.Identifiable = (*Type)(nil)
var _ model.ZeroCheckable = (*Type)(nil)
var _ model.Comparable[*Type] = (*Type)(nil)

// NewType constructs a Type knowing the given fields and carrying no
// validations. Duplicate fields (by identity) collapse to one entry;
// zero-value references are ignored. NewType with no arguments declares the
// empty schema.
func NewType(fields ...Ref) *Type {
	t := &Type{
		id:          nextIdentity(),
		fields:      make(map[Identity]Ref, len(fields)),
		validations: make(map[Identity][]Rule),
	}
	for _, f := range fields {
		if f == nil || f.ID() == 0 {
			continue
		}
		t.fields[f.ID()] = f
	}
	return t
}

// NewTypeWith constructs a Type knowing the given fields and carrying the
// given validations, without the identity churn of chaining AddValidation.
// Duplicate fields collapse as in NewType; nil rules and rules referencing
// zero-value fields are ignored.
func NewTypeWith(fields []Ref, rules []Rule) *Type {
	t := NewType(fields...)
	for _, r := range rules {
		if r == nil || r.FieldRef() == nil || r.FieldRef().ID() == 0 {
			continue
		}
		id := r.FieldRef().ID()
		t.validations[id] = append(t.validations[id], r)
		t.ruleCount++
	}
	return t
}

// newDerivedType clones the receiver's schema into a Type with a fresh
// identity. The clone shares no mutable storage with the original.
func (t *Type) newDerivedType() *Type {
	derived := &Type{
		id:          nextIdentity(),
		fields:      make(map[Identity]Ref, len(t.fields)+1),
		validations: make(map[Identity][]Rule, len(t.validations)),
		ruleCount:   t.ruleCount,
	}
	for id, f := range t.fields {
		derived.fields[id] = f
	}
	for id, rules := range t.validations {
		group := make([]Rule, len(rules))
		copy(group, rules)
		derived.validations[id] = group
	}
	return derived
}

// AddField returns a new Type knowing the union of this Type's fields and
// f. The receiver is unaffected, and the returned Type carries a fresh
// identity even when f was already known. States built from the receiver
// remain valid; they simply do not recognize the new field until rebuilt
// against the returned Type.
//
// Adding a zero-value reference returns a derived Type with an unchanged
// field set.
func (t *Type) AddField(f Ref) *Type {
	derived := t.newDerivedType()
	if f != nil && f.ID() != 0 {
		derived.fields[f.ID()] = f
	}
	return derived
}

// AddValidation returns a new Type carrying this Type's validations plus r,
// grouped under the field r references. The receiver is unaffected.
//
// A validation may be registered for a field the Type does not know; it
// simply never runs, because states reject unknown fields before
// validating.
func (t *Type) AddValidation(r Rule) *Type {
	derived := t.newDerivedType()
	if r != nil && r.FieldRef() != nil && r.FieldRef().ID() != 0 {
		id := r.FieldRef().ID()
		derived.validations[id] = append(derived.validations[id], r)
		derived.ruleCount++
	}
	return derived
}

// Knows reports whether this Type's field set contains f, by identity.
// Display names never participate: a renamed delegate of a known field is
// known.
func (t *Type) Knows(f Ref) bool {
	if f == nil || f.ID() == 0 {
		return false
	}
	_, ok := t.fields[f.ID()]
	return ok
}

// Fields returns the fields this Type knows, ordered by identity issue
// order for deterministic iteration. The returned slice is a fresh
// allocation.
func (t *Type) Fields() []Ref {
	ids := make([]Identity, 0, len(t.fields))
	for id := range t.fields {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fields := make([]Ref, 0, len(ids))
	for _, id := range ids {
		fields = append(fields, t.fields[id])
	}
	return fields
}

// Validations returns every validation registered on this Type, grouped by
// field (in field identity order) and in registration order within each
// group. The returned slice is a fresh allocation.
func (t *Type) Validations() []Rule {
	ids := make([]Identity, 0, len(t.validations))
	for id := range t.validations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rules := make([]Rule, 0, t.ruleCount)
	for _, id := range ids {
		rules = append(rules, t.validations[id]...)
	}
	return rules
}

// Validator is a callable that checks one candidate value against every
// validation registered for a particular field. It returns nil when the
// field has no validations or all of them accept the value, and a
// ValidationError carrying every collected rejection message otherwise.
type Validator func(value any) error

// Validator returns the validator for f on this Type.
//
// A candidate that is not assignable to f's declared Go type is rejected
// with a kind-mismatch ValidationError whether or not f carries
// validations, so a state can never hold a value the typed read path cannot
// return. Assignable candidates are then checked against all of f's
// validations; failure aggregates every produced message rather than
// stopping at the first. An explicit nil value bypasses the checks
// entirely: rules guard values, and nil is the recorded absence of one.
func (t *Type) Validator(f Ref) Validator {
	var rules []Rule
	var name string
	if f != nil {
		rules = t.validations[f.ID()]
		name = f.Name()
	}

	return func(value any) error {
		if value == nil {
			return nil
		}
		if f != nil && !f.accepts(value) {
			return &errors.ValidationError{
				Field:    name,
				Messages: []string{mismatchMessage(value, f.Kind())},
			}
		}
		var msgs []string
		for _, r := range rules {
			if msg, rejected := r.message(value); rejected {
				msgs = append(msgs, msg)
			}
		}
		if len(msgs) > 0 {
			return &errors.ValidationError{Field: name, Messages: msgs}
		}
		return nil
	}
}

// State constructs a fresh State for this Type with every known field
// unassigned.
func (t *Type) State() *State {
	return newState(t, nil)
}

// Populator constructs a batch accumulator bound to this Type. See
// Populator for the staging contract.
func (t *Type) Populator() *Populator {
	return &Populator{typ: t, staged: make(map[Identity]any)}
}

// ID returns this Type's identity token, or the zero Identity for a nil or
// zero-value Type.
func (t *Type) ID() Identity {
	if t == nil {
		return 0
	}
	return t.id
}

// Equal reports whether this Type and other are the same type, comparing
// identity tokens only. Two independently built Types with identical field
// sets are not equal.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return false
	}
	if t.id == 0 || other.id == 0 {
		return false
	}
	return t.id == other.id
}

// IsZero reports whether this Type is nil or carries no identity.
//
// This method implements the model.ZeroCheckable contract.
func (t *Type) IsZero() bool {
	return t == nil || t.id == 0
}

// ref returns the compact display form used in error messages.
func (t *Type) ref() string {
	return fmt.Sprintf("Type(%d)", uint64(t.ID()))
}

// String returns a human-readable representation of the Type including its
// identity token and the sizes of its field set and validation list.
//
// This method implements the fmt.Stringer interface and the model.Loggable
// contract.
func (t *Type) String() string {
	if t.IsZero() {
		return "Type{}"
	}
	return fmt.Sprintf("Type{id:%d, fields:%d, validations:%d}", uint64(t.id), len(t.fields), t.ruleCount)
}

// Redacted returns a redacted form of the Type suitable for logging.
//
// This method implements the model.Loggable contract. A Type holds no
// caller values, so the redacted form equals String().
func (t *Type) Redacted() string {
	return t.String()
}

// TypeName returns the name of this type for error messages, logging, and
// debugging.
//
// This method implements the model.Identifiable contract. It always returns
// "Type".
func (t *Type) TypeName() string {
	return "Type"
}
