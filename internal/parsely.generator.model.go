package internal

import (
	"go/token"
)

// TypeShape classifies a derived type declaration
type TypeShape string

// Type shapes
const (
	ShapeRecord    TypeShape = "record"    // struct with fields
	ShapeUnit      TypeShape = "unit"      // struct without fields
	ShapeNewtype   TypeShape = "newtype"   // defined type over another parseable type
	ShapeEnum      TypeShape = "enum"      // defined basic type with typed constants
	ShapeInterface TypeShape = "interface" // interface implemented by variant types
)

// VariantKind classifies one alternative of a sum type
type VariantKind string

// Variant kinds
const (
	VariantUnit    VariantKind = "unit"    // matches a literal
	VariantPayload VariantKind = "payload" // delegates to one payload type
)

// Affixes are the literal before/after a value
type Affixes struct {
	Before string
	After  string
}

// IsZero returns true if neither affix is set
func (a Affixes) IsZero() bool {
	return a.Before == "" && a.After == ""
}

// TypeRef is a field or payload type as written in source, with the
// parser expression the emitter uses for it.
type TypeRef struct {
	Expr    string // type expression, e.g. "uint32" or "parsely.List[Item, parsely.Nil]"
	Parser  string // parser expression, e.g. "parsely.Of[uint32]()"
	Imports []string
}

// FieldSpec is one record field
type FieldSpec struct {
	Name     string
	Type     TypeRef
	Affixes  Affixes
	Position token.Position
}

// VariantSpec is one alternative of an enum or interface sum
type VariantSpec struct {
	Name     string // constant or variant type name
	Kind     VariantKind
	Literal  string  // unit variants
	Payload  TypeRef // payload variants
	Field    string  // struct payload field name; empty for defined-type variants
	Affixes  Affixes
	Position token.Position
}

// TypeSpec describes one derived type
type TypeSpec struct {
	Name       string
	Shape      TypeShape
	Affixes    Affixes
	Separator  string        // records
	Literal    string        // unit types
	Underlying TypeRef       // newtypes
	Fields     []FieldSpec   // records
	Variants   []VariantSpec // enums and interfaces
	Position   token.Position
}

// ImportSpec is an import the generated file needs
type ImportSpec struct {
	Name string // explicit alias, may be empty
	Path string
}

// PackageSpec is everything the emitter needs for one package
type PackageSpec struct {
	Name       string
	Dir        string
	ParselyRef string // identifier the package uses for the parsely import
	Types      []TypeSpec
	Imports    []ImportSpec
}
