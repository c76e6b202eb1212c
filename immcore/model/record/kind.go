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
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/jthughey/immutables/immcore/errors"
	"github.com/jthughey/immutables/immcore/model"
	"gopkg.in/yaml.v3"
)

// Kind describes the declared value kind of a field, classifying the Go type
// a field was declared with into a coarse, serializable category.
//
// This type implements the model.Model interface, providing validation,
// serialization to JSON and YAML, safe logging, type identification, and
// zero-value detection. The zero value of Kind (KindUnknown) is valid and
// represents "kind not declared", for fields whose declaration did not carry
// a recognizable category.
//
// Kind is documentation and diagnostics metadata: field equality never
// consults it, and the typed Field[T] API enforces value types at compile
// time regardless of Kind. The dynamic (untyped) state access path reports
// kind mismatches through validation errors.
//
// JSON and YAML serialization uses string representations ("string", "int",
// etc.) rather than numeric values for readability and forward
// compatibility.
type Kind uint8

const (
	// KindUnknown represents an undeclared or unclassified value kind.
	//
	// This is the zero value for Kind. It is valid and appears on fields
	// whose declarations carry no recognizable category.
	KindUnknown Kind = iota

	// KindString represents a string-valued field.
	KindString

	// KindInt represents an integer-valued field. All signed and unsigned
	// Go integer widths classify as KindInt.
	KindInt

	// KindBool represents a boolean-valued field.
	KindBool

	// KindDate represents a time.Time-valued field.
	KindDate

	// KindAny represents a field declared with a Go type outside the
	// recognized categories. Such fields are fully functional; their
	// declared type is simply not summarized by a finer Kind.
	KindAny
)

// ParseKind parses a string into a validated Kind value.
//
// The input is normalized by trimming whitespace and lowercasing before
// matching against the known kind names: "unknown", "string", "int",
// "bool", "date", or "any". Unrecognized input yields KindUnknown and a
// ParseError.
//
//	kind, err := record.ParseKind("  STRING  ")
//	// kind = record.KindString, err = nil
func ParseKind(s string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	switch normalized {
	case "unknown":
		return KindUnknown, nil
	case "string":
		return KindString, nil
	case "int", "integer":
		return KindInt, nil
	case "bool", "boolean":
		return KindBool, nil
	case "date":
		return KindDate, nil
	case "any":
		return KindAny, nil
	default:
		return KindUnknown, &errors.ParseError{Type: "Kind", Value: s}
	}
}

// KindOf derives the Kind for the Go type T.
//
// Strings classify as KindString, all signed and unsigned integer widths as
// KindInt, booleans as KindBool, and time.Time as KindDate. Every other
// type classifies as KindAny.
func KindOf[T any]() Kind {
	t := reflect.TypeFor[T]()
	if t == reflect.TypeFor[time.Time]() {
		return KindDate
	}
	switch t.Kind() {
	case reflect.String:
		return KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Bool:
		return KindBool
	default:
		return KindAny
	}
}

// Compile-time assertion that Kind implements model.Model.
var _ model.Model = (*Kind)(nil)

// String returns the Kind value as a human-readable lowercase name:
// "unknown", "string", "int", "bool", "date", or "any".
//
// This method implements the fmt.Stringer interface and the model.Loggable
// contract.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindAny:
		return "any"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Redacted returns a redacted form of the Kind suitable for logging.
//
// This method implements the model.Loggable contract. Kind classifications
// carry no sensitive information, so the redacted form is identical to
// String().
func (k Kind) Redacted() string {
	return k.String()
}

// TypeName returns the name of this type for error messages, logging, and
// debugging.
//
// This method implements the model.Identifiable contract. It always returns
// "Kind".
func (k Kind) TypeName() string {
	return "Kind"
}

// IsZero reports whether this Kind is the zero value (KindUnknown).
//
// This method implements the model.ZeroCheckable contract.
func (k Kind) IsZero() bool {
	return k == KindUnknown
}

// Equal reports whether this Kind is equal to another Kind value, comparing
// the underlying numeric values directly.
func (k Kind) Equal(other Kind) bool {
	return k == other
}

// Validate checks whether this Kind is one of the defined constants.
//
// This method implements the model.Validatable contract. Values outside the
// known range fail validation, preventing corrupted kinds from propagating
// through serialization or diagnostics.
func (k Kind) Validate() error {
	switch k {
	case KindUnknown, KindString, KindInt, KindBool, KindDate, KindAny:
		return nil
	default:
		return fmt.Errorf("Kind value %d is not a known kind (valid range: 0-%d)", uint8(k), uint8(KindAny))
	}
}

// MarshalJSON serializes this Kind to JSON as its string name.
//
// The Kind is validated before marshaling; invalid values refuse to
// marshal.
func (k Kind) MarshalJSON() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", k.TypeName(), err)
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON deserializes a Kind from a JSON string containing one of the
// valid kind names. Normalization follows ParseKind. On failure the receiver
// is not modified.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot unmarshal JSON into %s: %w", k.TypeName(), err)
	}

	parsed, err := ParseKind(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", k.TypeName(), err)
	}

	*k = parsed
	return nil
}

// MarshalYAML serializes this Kind to YAML as its string name.
//
// The Kind is validated before marshaling; invalid values refuse to
// marshal.
func (k Kind) MarshalYAML() (interface{}, error) {
	if err := k.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", k.TypeName(), err)
	}
	return k.String(), nil
}

// UnmarshalYAML deserializes a Kind from a YAML string containing one of the
// valid kind names. Normalization follows ParseKind. On failure the receiver
// is not modified.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return fmt.Errorf("cannot unmarshal YAML into %s: %w", k.TypeName(), err)
	}

	parsed, err := ParseKind(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", k.TypeName(), err)
	}

	*k = parsed
	return nil
}
