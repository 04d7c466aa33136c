package parsely

import (
	"iter"
	"slices"
)

// Separator supplies the literal a list policy places between or after items.
type Separator interface {
	Literal() string
}

// Built-in separators
type (
	Space      struct{}
	NewLine    struct{}
	Comma      struct{}
	CommaSpace struct{}
	BlankLine  struct{}
	Dash       struct{}
)

func (Space) Literal() string      { return SeparatorSpace }
func (NewLine) Literal() string    { return SeparatorNewLine }
func (Comma) Literal() string      { return SeparatorComma }
func (CommaSpace) Literal() string { return SeparatorCommaSpace }
func (BlankLine) Literal() string  { return SeparatorBlankLine }
func (Dash) Literal() string       { return SeparatorDash }

// PolicyKind names how list items are delimited
type PolicyKind string

// Policy kinds
const (
	PolicyContiguous PolicyKind = "contiguous"
	PolicySeparated  PolicyKind = "separated"
	PolicyTerminated PolicyKind = "terminated"
)

// Policy is a phantom type selecting a list's surface syntax.
type Policy interface {
	Kind() PolicyKind
	Separator() string
}

// Nil places nothing between items: item+.
type Nil struct{}

// SepBy places S between items: item (S item)*. No leading or trailing S.
type SepBy[S Separator] struct{}

// TermWith follows every item with S, including the last: (item S)+.
type TermWith[S Separator] struct{}

func (Nil) Kind() PolicyKind      { return PolicyContiguous }
func (Nil) Separator() string     { return "" }
func (SepBy[S]) Kind() PolicyKind { return PolicySeparated }

func (SepBy[S]) Separator() string {
	var s S
	return s.Literal()
}

func (TermWith[S]) Kind() PolicyKind { return PolicyTerminated }

func (TermWith[S]) Separator() string {
	var s S
	return s.Literal()
}

// List is an ordered collection of at least one T, parsed under policy P.
type List[T any, P Policy] struct {
	items []T
}

// NewList returns a list holding items
func NewList[T any, P Policy](items ...T) List[T, P] {
	return List[T, P]{items: items}
}

// Parser implements Parseable using Of[T] for the items.
func (List[T, P]) Parser() Parser[List[T, P]] {
	return ListOf[T, P](Of[T]())
}

// ListOf builds the parser of List[T, P] from an explicit item parser.
// Every policy requires at least one item.
func ListOf[T any, P Policy](item Parser[T]) Parser[List[T, P]] {
	var policy P
	var items Parser[[]T]
	switch policy.Kind() {
	case PolicySeparated:
		items = SepBy1(item, Literal(policy.Separator()))
	case PolicyTerminated:
		items = EndBy1(item, Literal(policy.Separator()))
	default:
		items = Many1(item)
	}
	return Map(items, func(v []T) List[T, P] { return List[T, P]{items: v} })
}

// Items returns the underlying slice
func (l List[T, P]) Items() []T {
	return l.items
}

// Len returns the number of items
func (l List[T, P]) Len() int {
	return len(l.items)
}

// At returns the item at index i
func (l List[T, P]) At(i int) T {
	return l.items[i]
}

// All iterates over index and item
func (l List[T, P]) All() iter.Seq2[int, T] {
	return slices.All(l.items)
}

// Values iterates over the items
func (l List[T, P]) Values() iter.Seq[T] {
	return slices.Values(l.items)
}

// Push appends an item
func (l *List[T, P]) Push(v T) {
	l.items = append(l.items, v)
}

// Truncate keeps the first n items
func (l *List[T, P]) Truncate(n int) {
	if n < len(l.items) {
		l.items = l.items[:n]
	}
}
