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

import "fmt"

// Rule is the untyped view of a validation, as stored by types.
//
// Rules are created exclusively through On; the evaluation method is
// unexported so the set of rule implementations stays closed and the
// validation contract (pure, non-throwing, message-or-nothing) cannot be
// subverted from outside the package.
type Rule interface {
	// FieldRef returns the field this rule is attached to.
	FieldRef() Ref

	// message evaluates the rule against an untyped candidate value. It
	// returns the rejection message and true when the value is rejected, or
	// "" and false when it is accepted.
	message(value any) (string, bool)
}

// Validation is a pure per-field rule producing an optional rejection
// message.
//
// A Validation is bound to exactly one field and is stateless: the rule
// function MUST be side-effect-free, MUST be deterministic, and MUST
// communicate rejection only through its return value, never by panicking.
// Multiple validations may target the same field; a type evaluates all of
// them on every write and aggregates every rejection message before
// failing.
type Validation[T any] struct {
	field Field[T]
	fn    func(T) error
}

// On binds a pure rule function to a field.
//
// The function receives a candidate value and returns nil to accept it or a
// non-nil error whose message describes the rejection. A nil fn accepts
// every value.
//
//	nameUpper := record.On(name, func(v string) error {
//	    if v != strings.ToUpper(v) {
//	        return errors.New("name must be upper case")
//	    }
//	    return nil
//	})
func On[T any](field Field[T], fn func(T) error) Validation[T] {
	return Validation[T]{field: field, fn: fn}
}

// Compile-time assertion that Validation implements Rule.
var _ Rule = Validation[string]{}

// Field returns the field this validation is attached to.
func (v Validation[T]) Field() Field[T] {
	return v.field
}

// FieldRef implements the Rule contract.
func (v Validation[T]) FieldRef() Ref {
	return v.field
}

// Validate evaluates the rule against a candidate value, returning nil when
// the value is accepted or an error carrying the rejection message when it
// is not.
func (v Validation[T]) Validate(value T) error {
	if v.fn == nil {
		return nil
	}
	return v.fn(value)
}

// message implements the Rule contract. Values that do not assert to T are
// rejected with a kind-mismatch message, keeping the error taxonomy closed
// on the dynamic access path.
func (v Validation[T]) message(value any) (string, bool) {
	t, ok := value.(T)
	if !ok {
		return mismatchMessage(value, v.field.Kind()), true
	}
	if err := v.Validate(t); err != nil {
		return err.Error(), true
	}
	return "", false
}

// mismatchMessage is the shared rejection text for candidates that do not
// assert to a field's Go type.
func mismatchMessage(value any, kind Kind) string {
	return fmt.Sprintf("value of type %T is not assignable to a %s field", value, kind)
}
