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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns all validation errors
// encountered, aggregated into a single error via rxmerr.Collector.
//
// Each model's Validate method is invoked in order. Failures are wrapped
// with the model's position and type name so callers can identify exactly
// which instances failed and why. The whole slice is always processed, even
// when early elements fail, ensuring complete error reporting.
//
// Empty slices are valid and return nil.
//
//	models := []model.Model{first, second, third}
//	if err := model.ValidateAll(models); err != nil {
//	    // err names each failing position and type
//	}
func ValidateAll[T Model](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// FilterZero returns a new slice containing only the models whose IsZero
// method reports false.
//
// The returned slice is always a new allocation and never shares backing
// storage with the input. A nil or empty input yields an empty, non-nil
// slice. FilterZero does not validate models; it only drops zero values.
func FilterZero[T Model](models []T) []T {
	result := make([]T, 0, len(models))

	for _, m := range models {
		if !m.IsZero() {
			result = append(result, m)
		}
	}

	return result
}

// MustValidate validates a model and panics if validation fails. It is
// intended for test setup and package initialization, where an invalid model
// is a programming error rather than a recoverable condition. It MUST NOT be
// used on request paths or in long-running services.
//
// On success the model is returned unchanged, allowing inline use.
func MustValidate[T Model](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// SafeString returns a string representation of a model that is safe for
// logging by default.
//
// When unsafe is false, the model's Redacted method is used, protecting
// caller data from exposure in logs. When unsafe is true, the model's
// String method is used and MAY include data Redacted hides; callers MUST
// only pass true in controlled debugging scenarios.
func SafeString[T Model](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON converts a model to JSON bytes after validating it.
//
// If validation fails, no marshaling is attempted and the validation error
// is returned wrapped with the model's type name. Otherwise the model's own
// MarshalJSON implementation is used.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML converts a model to YAML bytes after validating it.
//
// If validation fails, no marshaling is attempted and the validation error
// is returned wrapped with the model's type name. Otherwise the model's own
// MarshalYAML implementation is used.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON decodes JSON bytes into a model and validates the result.
//
// If decoding or validation fails, an error is returned and the receiver
// MUST NOT be used. Validation after decoding ensures external input cannot
// introduce values that violate the model's invariants.
func FromJSON[T Model](data []byte, m *T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON into %s: %w", (*m).TypeName(), err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", (*m).TypeName(), err)
	}
	return nil
}

// FromYAML decodes YAML bytes into a model and validates the result.
//
// If decoding or validation fails, an error is returned and the receiver
// MUST NOT be used.
func FromYAML[T Model](data []byte, m *T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML into %s: %w", (*m).TypeName(), err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", (*m).TypeName(), err)
	}
	return nil
}
