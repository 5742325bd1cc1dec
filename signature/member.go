/*
   Copyright 2025 The DIRPX Authors.

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

package signature

// MemberKind is the kind of member a descriptor refers to.
type MemberKind uint8

const (
	// Field is a data field (possibly const or readonly).
	Field MemberKind = iota
	// Property is a getter and/or setter pair.
	Property
	// Method is a callable member, static or instance.
	Method
	// Constructor creates a new instance of the declaring type.
	Constructor
)

// String returns a human-readable representation of the MemberKind.
func (k MemberKind) String() string {
	switch k {
	case Field:
		return "field"
	case Property:
		return "property"
	case Method:
		return "method"
	case Constructor:
		return "constructor"
	default:
		return "unknown"
	}
}

// IsAccessor reports whether members of this kind are served by accessors.
func (k MemberKind) IsAccessor() bool {
	return k == Field || k == Property
}

// Accessibility is the declared visibility of a member. Values are ordered
// from least to most visible, so they can be compared with < and >=.
type Accessibility uint8

const (
	NotApplicable Accessibility = iota
	Private
	ProtectedAndInternal
	Protected
	Internal
	ProtectedOrInternal
	Public
)

// String returns a human-readable representation of the Accessibility.
func (a Accessibility) String() string {
	switch a {
	case NotApplicable:
		return "not-applicable"
	case Private:
		return "private"
	case ProtectedAndInternal:
		return "private-protected"
	case Protected:
		return "protected"
	case Internal:
		return "internal"
	case ProtectedOrInternal:
		return "protected-internal"
	case Public:
		return "public"
	default:
		return "unknown"
	}
}

// RefKind describes how a parameter is passed.
type RefKind uint8

const (
	// ByValue is an ordinary parameter.
	ByValue RefKind = iota
	// In is a read-only reference; it is called like a value parameter.
	In
	// Ref is a mutable reference.
	Ref
	// Out is an output reference.
	Out
)

// Param is a single method or constructor parameter.
type Param struct {
	Type TypeRef
	Ref  RefKind
}

// Params wraps plain types as by-value parameters.
func Params(types ...TypeRef) []Param {
	if len(types) == 0 {
		return nil
	}
	out := make([]Param, len(types))
	for i, t := range types {
		out[i] = Param{Type: t}
	}
	return out
}

// Member describes a field, property, method or constructor.
type Member struct {
	// Declaring is the type that declares the member, with its generic
	// instantiation if any.
	Declaring TypeRef
	Kind      MemberKind
	// Name is the member name. Ignored for constructors.
	Name string
	// Params are the declared parameters of a method or constructor.
	Params []Param
	// TypeArgs are a generic method's own type arguments.
	TypeArgs []TypeRef
	Static   bool
	// Access is the declared accessibility. Its zero value is
	// NotApplicable, which ranks below every floor but NotApplicable, so a
	// literal Member without Access is never registrable or found. FieldOf,
	// PropertyOf, MethodOf and ConstructorOf set Public.
	Access   Accessibility

	// HasGetter and HasSetter apply to properties.
	HasGetter bool
	HasSetter bool
	// Const and ReadOnly apply to fields.
	Const    bool
	ReadOnly bool

	// ReducedFrom is the static definition of an extension method invoked
	// with instance syntax. When set, it is the identity that renders.
	ReducedFrom *Member
}

// Identity returns the member whose signature represents m.
func (m Member) Identity() Member {
	for m.ReducedFrom != nil {
		m = *m.ReducedFrom
	}
	return m
}

// Settable reports whether an accessor for m gets a setter.
func (m Member) Settable() bool {
	switch m.Kind {
	case Field:
		return !m.Const && !m.ReadOnly
	case Property:
		return m.HasSetter
	default:
		return false
	}
}

// FieldOf describes a public instance field.
func FieldOf(decl TypeRef, name string) Member {
	return Member{Declaring: decl, Kind: Field, Name: name, Access: Public}
}

// PropertyOf describes a public instance property with getter and setter.
func PropertyOf(decl TypeRef, name string) Member {
	return Member{Declaring: decl, Kind: Property, Name: name, Access: Public, HasGetter: true, HasSetter: true}
}

// MethodOf describes a public instance method with by-value parameters.
func MethodOf(decl TypeRef, name string, params ...TypeRef) Member {
	return Member{Declaring: decl, Kind: Method, Name: name, Params: Params(params...), Access: Public}
}

// ConstructorOf describes a public constructor with by-value parameters.
func ConstructorOf(decl TypeRef, params ...TypeRef) Member {
	return Member{Declaring: decl, Kind: Constructor, Params: Params(params...), Access: Public}
}
