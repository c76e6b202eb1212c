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

// Instance bundles a Type with one of its States for easier API
// consumption, so a function can accept a single value instead of a
// type/state pair:
//
//	func Save(contact record.Instance) error
//
// Instance adds no semantics of its own.
type Instance struct {
	Type  *Type
	State *State
}

// NewInstance returns an Instance of t with a fresh, fully unassigned
// State.
func NewInstance(t *Type) Instance {
	return Instance{Type: t, State: t.State()}
}

// With returns an Instance of the same Type carrying s. The State must
// have been produced by this Instance's Type for the pairing to be
// meaningful; With does not check.
func (i Instance) With(s *State) Instance {
	return Instance{Type: i.Type, State: s}
}
