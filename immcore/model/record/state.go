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

	"dirpx.dev/rxmerr"
	"github.com/jthughey/immutables/immcore/errors"
	"github.com/jthughey/immutables/immcore/model"
)

// slot is one field entry in a state: either an assigned value (possibly an
// explicit nil) or the distinguished unassigned marker.
type slot struct {
	value    any
	assigned bool
}

// State is one immutable record instance conforming to exactly one Type.
//
// A State maps every field its Type knows to either an assigned value
// (including an explicit nil) or an unassigned marker; the key set always
// equals the Type's field set at construction time. A State never exposes
// or accepts a field its Type does not know.
//
// Mutation never occurs in place. Every value-setting operation validates
// the candidate value and returns a new State sharing the Type and all
// unchanged entries, differing only in the changed entry. The predecessor
// remains valid and usable.
//
// Identity, not content, determines equality: each State carries an
// identity token allocated at construction, so value-equal but
// independently constructed States are distinct. A State is a token for
// "this particular edit history", not a canonical value.
//
// States are immutable after construction and safe for concurrent reads
// without synchronization.
//
// This type implements the model.Loggable, model.Identifiable, and
// model.ZeroCheckable contracts. It does not implement model.Serializable;
// identity tokens have no external representation.
type State struct {
	id     Identity
	typ    *Type
	values map[Identity]slot
}

// Compile-time assertions for the contracts State satisfies.
var _ model.Loggable = (*State)(nil)
var _ model.Identifiable = (*State)(nil)
var _ model.ZeroCheckable = (*State)(nil)
var _ model.Comparable[*State] = (*State)(nil)

// newState builds a State for t in which every staged field is assigned its
// staged value and every other known field is unassigned. The staged map is
// read, never retained.
func newState(t *Type, staged map[Identity]any) *State {
	values := make(map[Identity]slot, len(t.fields))
	for id := range t.fields {
		if v, ok := staged[id]; ok {
			values[id] = slot{value: v, assigned: true}
		} else {
			values[id] = slot{}
		}
	}
	return &State{id: nextIdentity(), typ: t, values: values}
}

// Field returns the accessor view bound to f on this State. The accessor
// itself never fails; operations on it surface an UnknownFieldError when
// the State's Type does not know f.
func (s *State) Field(f Ref) Accessor {
	return Accessor{state: s, field: f, known: s.Knows(f)}
}

// Knows reports whether this State's Type knows f. See Type.Knows.
func (s *State) Knows(f Ref) bool {
	return s.typ.Knows(f)
}

// Type returns the Type this State conforms to.
func (s *State) Type() *Type {
	return s.typ
}

// Populator returns a fresh batch accumulator bound to this State's Type.
// It is a convenience equivalent to s.Type().Populator(); the receiver's
// values do not seed the populator.
func (s *State) Populator() *Populator {
	return s.typ.Populator()
}

// ID returns this State's identity token, or the zero Identity for a nil or
// zero-value State.
func (s *State) ID() Identity {
	if s == nil {
		return 0
	}
	return s.id
}

// Equal reports whether this State and other are the same state, comparing
// identity tokens only. Two States with identical types and values but
// separate construction histories are not equal.
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return false
	}
	if s.id == 0 || other.id == 0 {
		return false
	}
	return s.id == other.id
}

// IsZero reports whether this State is nil or carries no identity.
//
// This method implements the model.ZeroCheckable contract.
func (s *State) IsZero() bool {
	return s == nil || s.id == 0
}

// assignedCount returns how many known fields currently hold assigned
// values.
func (s *State) assignedCount() int {
	n := 0
	for _, sl := range s.values {
		if sl.assigned {
			n++
		}
	}
	return n
}

// String returns a human-readable representation of the State including its
// identity token, its Type, and how many fields are assigned. Field values
// are never included; they are arbitrary caller data.
//
// This method implements the fmt.Stringer interface and the model.Loggable
// contract.
func (s *State) String() string {
	if s.IsZero() {
		return "State{}"
	}
	return fmt.Sprintf("State{id:%d, type:%s, assigned:%d/%d}",
		uint64(s.id), s.typ.ref(), s.assignedCount(), len(s.values))
}

// Redacted returns a redacted form of the State suitable for logging.
//
// This method implements the model.Loggable contract. String already
// excludes field values, so the redacted form equals String().
func (s *State) Redacted() string {
	return s.String()
}

// TypeName returns the name of this type for error messages, logging, and
// debugging.
//
// This method implements the model.Identifiable contract. It always returns
// "State".
func (s *State) TypeName() string {
	return "State"
}

// set produces the successor State with f assigned to value. Ownership and
// validation have already been checked by the caller.
func (s *State) set(f Ref, value any) *State {
	values := make(map[Identity]slot, len(s.values))
	for id, sl := range s.values {
		values[id] = sl
	}
	values[f.ID()] = slot{value: value, assigned: true}
	return &State{id: nextIdentity(), typ: s.typ, values: values}
}

// Accessor is a view of one field on one State, supporting reads, validated
// copy-on-write writes, and assignment inspection.
//
// An Accessor is a value; it holds no mutable state of its own and is safe
// to copy and to use concurrently.
type Accessor struct {
	state *State
	field Ref
	known bool
}

// Get returns the field's current value.
//
// It fails with an UnknownFieldError if the State's Type does not know the
// field, and with an UnassignedFieldError if the field has never been set
// on this State. A field explicitly assigned nil reads as nil without
// error; use IsNull to distinguish that case from a zero value.
func (a Accessor) Get() (any, error) {
	if !a.known {
		return nil, a.unknownErr()
	}
	sl := a.state.values[a.field.ID()]
	if !sl.assigned {
		return nil, &errors.UnassignedFieldError{Field: a.field.Name()}
	}
	return sl.value, nil
}

// Set writes a value for the field, returning the new State produced by the
// write. The State the accessor was created from is unaffected; reading it
// after the call yields the pre-write value or still-unassigned.
//
// Set first fails with an UnknownFieldError if the State's Type does not
// know the field; it then runs every validation registered for the field
// and fails with a ValidationError carrying all collected messages if any
// of them reject the value. On success the returned State is identical to
// the original except for this field, and carries a freshly allocated
// identity.
//
// Setting nil records an explicit null: the field reads as assigned and
// null, distinct from never-set.
func (a Accessor) Set(value any) (*State, error) {
	if !a.known {
		return nil, a.unknownErr()
	}
	if err := a.state.typ.Validator(a.field)(value); err != nil {
		return nil, err
	}
	return a.state.set(a.field, value), nil
}

// IsAssigned reports whether the field has been set on this State. An
// explicit nil assignment counts as assigned. Unknown fields report false.
func (a Accessor) IsAssigned() bool {
	if !a.known {
		return false
	}
	return a.state.values[a.field.ID()].assigned
}

// IsNull reports whether the field holds an explicitly assigned nil.
// Unassigned and unknown fields report false: null is a recorded value,
// not the absence of one.
func (a Accessor) IsNull() bool {
	if !a.known {
		return false
	}
	sl := a.state.values[a.field.ID()]
	return sl.assigned && sl.value == nil
}

// IsEmpty reports whether the field is unassigned or holds an explicit
// null; it is exactly !IsAssigned() || IsNull().
func (a Accessor) IsEmpty() bool {
	return !a.IsAssigned() || a.IsNull()
}

// Consume invokes fn with the field's current value only if the field has
// been assigned; otherwise it is a no-op. An explicit null invokes fn with
// nil.
//
// It fails with an UnknownFieldError if the State's Type does not know the
// field.
func (a Accessor) Consume(fn func(any)) error {
	if !a.known {
		return a.unknownErr()
	}
	sl := a.state.values[a.field.ID()]
	if sl.assigned && fn != nil {
		fn(sl.value)
	}
	return nil
}

func (a Accessor) unknownErr() error {
	name := "<zero>"
	if a.field != nil {
		name = a.field.Name()
	}
	return &errors.UnknownFieldError{Type: a.state.typ.ref(), Field: name}
}

// Populator is a batch accumulator bound to one Type. Repeated Set calls
// validate and stage values under the same contract as Accessor.Set; a
// final Done call materializes one State in which every staged field is
// assigned and every other known field is unassigned.
//
// Unknown fields fail at Set time, not at Done. A Populator may be reused
// after Done; each Done snapshots the staged values into an independent
// State.
//
// A Populator is not safe for concurrent use.
type Populator struct {
	typ    *Type
	staged map[Identity]any
}

// Set validates and stages a value for f.
//
// It fails immediately with an UnknownFieldError if the Populator's Type
// does not know f, and with a ValidationError carrying all collected
// messages if any of f's validations reject the value. Staging the same
// field again overwrites the previously staged value.
func (p *Populator) Set(f Ref, value any) error {
	if !p.typ.Knows(f) {
		name := "<zero>"
		if f != nil {
			name = f.Name()
		}
		return &errors.UnknownFieldError{Type: p.typ.ref(), Field: name}
	}
	if err := p.typ.Validator(f)(value); err != nil {
		return err
	}
	p.staged[f.ID()] = value
	return nil
}

// SetAll validates and stages every entry of values, collecting every
// failure rather than stopping at the first. The returned error aggregates
// all individual Set failures; entries that validated successfully remain
// staged even when others failed.
//
// Map keys are distinct Ref values, so two renamed views of the same field
// are separate entries that stage the same identity. Both are validated,
// but map iteration order decides which staged value survives; callers
// MUST NOT rely on a particular winner across aliased refs.
func (p *Populator) SetAll(values map[Ref]any) error {
	c := rxmerr.NewCollector()
	for f, v := range values {
		if err := p.Set(f, v); err != nil {
			c.Append(err)
		}
	}
	return c.Err()
}

// Done materializes one State from the staged values. Every field the Type
// knows is present in the result: staged fields carry their staged values,
// all others are unassigned.
func (p *Populator) Done() *State {
	return newState(p.typ, p.staged)
}
