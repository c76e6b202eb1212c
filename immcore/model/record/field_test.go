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

package record_test

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/jthughey/immutables/immcore/errors"
	"github.com/jthughey/immutables/immcore/model/record"
)

func TestNamed(t *testing.T) {
	f := record.Named[string]("email")

	if got := f.Name(); got != "email" {
		t.Errorf("Name() = %q, want %q", got, "email")
	}
	if got := f.Kind(); !got.Equal(record.KindString) {
		t.Errorf("Kind() = %v, want %v", got, record.KindString)
	}
	if f.ID() == 0 {
		t.Error("ID() = 0, want a non-zero identity")
	}
	if f.IsZero() {
		t.Error("IsZero() = true, want false")
	}
}

func TestOf_GeneratesUniqueNames(t *testing.T) {
	f1 := record.Of[int]()
	f2 := record.Of[int]()

	if f1.Name() == "" {
		t.Error("Name() = empty, want a generated name")
	}
	if f1.Name() == f2.Name() {
		t.Errorf("two generated names collided: %q", f1.Name())
	}
}

func TestField_Constructors(t *testing.T) {
	tests := []struct {
		name string
		got  record.Kind
		want record.Kind
	}{
		{
			name: "string",
			got:  record.String().Kind(),
			want: record.KindString,
		},
		{
			name: "int",
			got:  record.Int().Kind(),
			want: record.KindInt,
		},
		{
			name: "bool",
			got:  record.Bool().Kind(),
			want: record.KindBool,
		},
		{
			name: "date",
			got:  record.Date().Kind(),
			want: record.KindDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equal(tt.want) {
				t.Errorf("Kind() = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestField_Equal(t *testing.T) {
	base := record.Named[string]("name")
	twin := record.Named[string]("name")
	renamed := base.WithName("displayName")

	tests := []struct {
		name string
		f1   record.Field[string]
		f2   record.Field[string]
		want bool
	}{
		{
			name: "field_equals_itself",
			f1:   base,
			f2:   base,
			want: true,
		},
		{
			name: "same_name_same_kind_still_distinct",
			f1:   base,
			f2:   twin,
			want: false,
		},
		{
			name: "renamed_delegate_is_same_field",
			f1:   base,
			f2:   renamed,
			want: true,
		},
		{
			name: "zero_values_never_equal",
			f1:   record.Field[string]{},
			f2:   record.Field[string]{},
			want: false,
		},
		{
			name: "zero_vs_declared",
			f1:   record.Field[string]{},
			f2:   base,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.f1.Equal(tt.f2)
			if got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			// Equality is symmetric on the identity token.
			if back := tt.f2.Equal(tt.f1); back != tt.want {
				t.Errorf("Equal() reversed = %v, want %v", back, tt.want)
			}
		})
	}
}

func TestSameField(t *testing.T) {
	base := record.Named[int]("count")
	other := record.Named[int]("count")

	tests := []struct {
		name string
		a    record.Ref
		b    record.Ref
		want bool
	}{
		{
			name: "same_field",
			a:    base,
			b:    base,
			want: true,
		},
		{
			name: "delegate_same_field",
			a:    base,
			b:    base.Renamed("total"),
			want: true,
		},
		{
			name: "distinct_fields",
			a:    base,
			b:    other,
			want: false,
		},
		{
			name: "nil_refs",
			a:    nil,
			b:    nil,
			want: false,
		},
		{
			name: "nil_vs_field",
			a:    nil,
			b:    base,
			want: false,
		},
		{
			name: "zero_refs",
			a:    record.Field[int]{},
			b:    record.Field[int]{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := record.SameField(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("SameField() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestField_WithName(t *testing.T) {
	base := record.Named[string]("firstName")
	renamed := base.WithName("givenName")

	if got := renamed.Name(); got != "givenName" {
		t.Errorf("Name() = %q, want %q", got, "givenName")
	}
	if got := base.Name(); got != "firstName" {
		t.Errorf("original Name() = %q, want %q (rename must not mutate)", got, "firstName")
	}
	if renamed.ID() != base.ID() {
		t.Errorf("ID() = %d, want %d (delegate must share identity)", renamed.ID(), base.ID())
	}
	if !renamed.Kind().Equal(base.Kind()) {
		t.Errorf("Kind() = %v, want %v", renamed.Kind(), base.Kind())
	}

	t.Run("zero_field", func(t *testing.T) {
		zero := record.Field[string]{}.WithName("anything")
		if !zero.IsZero() {
			t.Error("WithName() on zero field produced a non-zero field")
		}
	})
}

func TestField_IsZero(t *testing.T) {
	tests := []struct {
		name  string
		field record.Field[string]
		want  bool
	}{
		{
			name:  "zero_value",
			field: record.Field[string]{},
			want:  true,
		},
		{
			name:  "declared",
			field: record.Named[string]("city"),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.field.IsZero()
			if got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestField_String(t *testing.T) {
	f := record.Named[string]("email")
	got := f.String()

	if !strings.Contains(got, "email") {
		t.Errorf("String() = %q, want it to contain the display name", got)
	}
	if !strings.Contains(got, "string") {
		t.Errorf("String() = %q, want it to contain the kind", got)
	}

	t.Run("zero_field", func(t *testing.T) {
		zero := record.Field[string]{}
		if got := zero.String(); got != "Field{}" {
			t.Errorf("String() = %q, want %q", got, "Field{}")
		}
	})
}

func TestField_Redacted(t *testing.T) {
	f := record.Named[string]("email")
	if got, want := f.Redacted(), f.String(); got != want {
		t.Errorf("Redacted() = %q, want %q", got, want)
	}
}

func TestField_TypeName(t *testing.T) {
	f := record.Named[bool]("active")
	if got, want := f.TypeName(), "Field"; got != want {
		t.Errorf("TypeName() = %q, want %q", got, want)
	}
}

func TestField_GetSet(t *testing.T) {
	name := record.Named[string]("name")
	age := record.Named[int]("age")
	typ := record.NewType(name, age)
	state := typ.State()

	next, err := name.Set(state, "Ada")
	if err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := name.Get(next)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "Ada" {
		t.Errorf("Get() = %q, want %q", got, "Ada")
	}

	t.Run("predecessor_unaffected", func(t *testing.T) {
		if _, err := name.Get(state); err == nil {
			t.Error("Get() on predecessor succeeded, want UnassignedFieldError")
		}
	})

	t.Run("unassigned_field", func(t *testing.T) {
		_, err := age.Get(next)
		var unassigned *errors.UnassignedFieldError
		if !stderrors.As(err, &unassigned) {
			t.Errorf("Get() error = %v, want *errors.UnassignedFieldError", err)
		}
	})

	t.Run("unknown_field", func(t *testing.T) {
		stranger := record.Named[string]("stranger")
		_, err := stranger.Get(next)
		var unknown *errors.UnknownFieldError
		if !stderrors.As(err, &unknown) {
			t.Errorf("Get() error = %v, want *errors.UnknownFieldError", err)
		}
	})

	t.Run("renamed_delegate_reads_same_slot", func(t *testing.T) {
		alias := name.WithName("fullName")
		got, err := alias.Get(next)
		if err != nil {
			t.Fatalf("Get() via delegate failed: %v", err)
		}
		if got != "Ada" {
			t.Errorf("Get() via delegate = %q, want %q", got, "Ada")
		}
	})
}

func TestField_Get_DateZeroValue(t *testing.T) {
	when := record.Date()
	typ := record.NewType(when)
	state := typ.State()

	stamp := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
	next, err := when.Set(state, stamp)
	if err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := when.Get(next)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !got.Equal(stamp) {
		t.Errorf("Get() = %v, want %v", got, stamp)
	}
}

func TestField_Consume(t *testing.T) {
	name := record.Named[string]("name")
	typ := record.NewType(name)
	state := typ.State()

	t.Run("unassigned_is_noop", func(t *testing.T) {
		called := false
		if err := name.Consume(state, func(string) { called = true }); err != nil {
			t.Fatalf("Consume() failed: %v", err)
		}
		if called {
			t.Error("Consume() invoked fn for an unassigned field")
		}
	})

	t.Run("assigned_invokes_fn", func(t *testing.T) {
		next, err := name.Set(state, "Grace")
		if err != nil {
			t.Fatalf("Set() failed: %v", err)
		}

		var got string
		called := false
		if err := name.Consume(next, func(v string) { got, called = v, true }); err != nil {
			t.Fatalf("Consume() failed: %v", err)
		}
		if !called {
			t.Fatal("Consume() did not invoke fn for an assigned field")
		}
		if got != "Grace" {
			t.Errorf("Consume() delivered %q, want %q", got, "Grace")
		}
	})

	t.Run("unknown_field", func(t *testing.T) {
		stranger := record.Named[string]("stranger")
		err := stranger.Consume(state, func(string) {})
		var unknown *errors.UnknownFieldError
		if !stderrors.As(err, &unknown) {
			t.Errorf("Consume() error = %v, want *errors.UnknownFieldError", err)
		}
	})
}

func TestField_Stage(t *testing.T) {
	name := record.Named[string]("name")
	typ := record.NewType(name)
	pop := typ.Populator()

	if err := name.Stage(pop, "Edsger"); err != nil {
		t.Fatalf("Stage() failed: %v", err)
	}

	state := pop.Done()
	got, err := name.Get(state)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "Edsger" {
		t.Errorf("Get() = %q, want %q", got, "Edsger")
	}
}
