// Package parsely is a declarative parsing framework.
//
// Any type can implement Parseable to obtain a composable parser for itself.
// Parsers are plain functions over an immutable Cursor, built from
// primitives (integers, characters, literals), containers (List with a
// separator policy), and builders for records (Record, Unit) and sum types
// (Sum). The parsegen tool derives these Parser methods from annotated type
// declarations; hand-written parsers use the same building blocks.
//
// Basic usage:
//
//	type Move struct {
//		Count uint32
//		From  uint32
//		To    uint32
//	}
//
//	func (Move) Parser() parsely.Parser[Move] {
//		return parsely.Record(parsely.RecordConfig{Separator: " "},
//			parsely.Field(func(m *Move, v uint32) { m.Count = v }, parsely.Of[uint32](), parsely.Affixes{Before: "move "}),
//			parsely.Field(func(m *Move, v uint32) { m.From = v }, parsely.Of[uint32](), parsely.Affixes{Before: "from "}),
//			parsely.Field(func(m *Move, v uint32) { m.To = v }, parsely.Of[uint32](), parsely.Affixes{Before: "to "}),
//		)
//	}
//
//	moves, err := parsely.ParseStr[parsely.List[Move, parsely.TermWith[parsely.NewLine]]](input)
//
// The entry points require the whole input to be consumed, apart from
// trailing whitespace.
package parsely

import (
	"reflect"

	"go.uber.org/zap"
)

// Parser parses a T at the cursor. On success it returns the value and the
// advanced cursor with a nil failure.
type Parser[T any] func(in Cursor) (T, Cursor, *Failure)

// Parseable is implemented by types that know how to parse themselves.
// The method is called on the zero value.
type Parseable[T any] interface {
	Parser() Parser[T]
}

// Of returns the parser for T: its Parser method when T is Parseable,
// the integer primitives for built-in integer types, and Rest for string.
// Types without a parser yield one that always fails.
func Of[T any]() Parser[T] {
	var zero T
	var p any
	switch v := any(zero).(type) {
	case Parseable[T]:
		return v.Parser()
	case uint:
		p = Uint[uint]()
	case uint8:
		p = Uint[uint8]()
	case uint16:
		p = Uint[uint16]()
	case uint32:
		p = Uint[uint32]()
	case uint64:
		p = Uint[uint64]()
	case int:
		p = Int[int]()
	case int8:
		p = Int[int8]()
	case int16:
		p = Int[int16]()
	case int32:
		p = Int[int32]()
	case int64:
		p = Int[int64]()
	case string:
		p = Rest()
	default:
		return noParser[T]()
	}
	return p.(Parser[T])
}

func noParser[T any]() Parser[T] {
	expected := ExpectNoParser + reflect.TypeFor[T]().String()
	return func(in Cursor) (T, Cursor, *Failure) {
		var zero T
		return zero, in, Fail(in, expected)
	}
}

// ParseStr parses the entire input as T. Built-in scalars have no Parser
// method; use Run(Of[uint32](), input) for them.
func ParseStr[T Parseable[T]](input string, opts ...Option) (T, error) {
	var zero T
	return Run(zero.Parser(), input, opts...)
}

// Run drives p against the entire input. After p succeeds, trailing
// whitespace is skipped and the input must be exhausted; leftover content
// is reported as a trailing-input error, distinct from a grammar mismatch.
func Run[T any](p Parser[T], input string, opts ...Option) (T, error) {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParseStart, zap.Int(LogFieldInputLength, len(input)))

	v, rest, f := p(newCursor(input, logger))
	if f == nil {
		if cfg.skipTrailingSpace {
			_, rest, _ = Spaces()(rest)
		}
		if !rest.AtEnd() {
			f = &Failure{
				Position: rest.Position(),
				Expected: []string{ExpectEOF},
				Kind:     FailureTrailing,
				Found:    rest.excerpt(),
			}
		}
	}
	if f != nil {
		logger.Debug(LogMsgParseFailed,
			zap.String(LogFieldKind, string(f.Kind)),
			zap.Int(LogFieldLine, f.Position.Line),
			zap.Int(LogFieldColumn, f.Position.Column),
			zap.String(LogFieldExpected, f.ExpectedString()))
		var zero T
		return zero, NewFailureError(f)
	}
	logger.Debug(LogMsgParseEnd, zap.Int(LogFieldOffset, rest.Offset()))
	return v, nil
}
