package parsely

import (
	"sync"

	"go.uber.org/zap"
)

// Affixes are literals consumed and discarded around a parsed value.
// Empty affixes are skipped.
type Affixes struct {
	Before string
	After  string
}

// IsZero returns true if neither affix is set
func (a Affixes) IsZero() bool {
	return a.Before == "" && a.After == ""
}

// Map transforms the result of p.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in Cursor) (B, Cursor, *Failure) {
		a, next, fail := p(in)
		if fail != nil {
			var zero B
			return zero, in, fail
		}
		return f(a), next, nil
	}
}

// Then runs a then b and keeps b's result.
func Then[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return func(in Cursor) (B, Cursor, *Failure) {
		var zero B
		_, next, f := a(in)
		if f != nil {
			return zero, in, f
		}
		v, next, f := b(next)
		if f != nil {
			return zero, in, f
		}
		return v, next, nil
	}
}

// Skip runs a then b and keeps a's result.
func Skip[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return func(in Cursor) (A, Cursor, *Failure) {
		var zero A
		v, next, f := a(in)
		if f != nil {
			return zero, in, f
		}
		_, next, f = b(next)
		if f != nil {
			return zero, in, f
		}
		return v, next, nil
	}
}

// Between parses open, p, close and keeps p's result.
func Between[O, T, C any](open Parser[O], p Parser[T], close Parser[C]) Parser[T] {
	return Skip(Then(open, p), close)
}

// Affix wraps p with the literal affixes.
func Affix[T any](p Parser[T], affixes Affixes) Parser[T] {
	if affixes.Before != "" {
		p = Then(Literal(affixes.Before), p)
	}
	if affixes.After != "" {
		p = Skip(p, Literal(affixes.After))
	}
	return p
}

// Choice tries each alternative in order from the same position and commits
// to the first success. When all fail, the failure that got furthest into the
// input is returned. Declaration order decides between overlapping
// alternatives.
func Choice[T any](name string, alternatives ...Parser[T]) Parser[T] {
	return func(in Cursor) (T, Cursor, *Failure) {
		var best *Failure
		for i, alt := range alternatives {
			v, next, f := alt(in)
			if f == nil {
				return v, next, nil
			}
			in.logger().Debug(LogMsgBacktrack,
				zap.String(LogFieldChoice, name),
				zap.Int(LogFieldAlternative, i),
				zap.Int(LogFieldOffset, f.Position.Offset))
			best = furthest(best, f)
		}
		var zero T
		if best == nil {
			return zero, in, Fail(in)
		}
		return zero, in, best.rewound(in)
	}
}

// Lazy defers building a parser until first use, so grammars can refer to
// themselves recursively.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	get := sync.OnceValue(build)
	return func(in Cursor) (T, Cursor, *Failure) {
		return get()(in)
	}
}

// Many0 parses p zero or more times.
func Many0[T any](p Parser[T]) Parser[[]T] {
	return func(in Cursor) ([]T, Cursor, *Failure) {
		items, next, f := repeat(nil, in, p)
		if f != nil {
			return nil, in, f
		}
		return items, next, nil
	}
}

// Many1 parses p one or more times with nothing in between.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(in Cursor) ([]T, Cursor, *Failure) {
		first, next, f := p(in)
		if f != nil {
			return nil, in, f
		}
		items, next, f := repeat([]T{first}, next, p)
		if f != nil {
			return nil, in, f
		}
		return items, next, nil
	}
}

// SepBy0 parses zero or more p separated by sep.
func SepBy0[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	sep1 := SepBy1(p, sep)
	return func(in Cursor) ([]T, Cursor, *Failure) {
		items, next, f := sep1(in)
		if f != nil {
			if f.consumedFrom(in) {
				return nil, in, f
			}
			return []T{}, in, nil
		}
		return items, next, nil
	}
}

// SepBy1 parses one or more p separated by sep. A separator not followed
// by an item is a failure.
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Many1Then(p, Then(sep, p))
}

// EndBy1 parses one or more p, each followed by end, including the last.
func EndBy1[T, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return Many1(Skip(p, end))
}

// Many1Then parses first once and then rest as many times as it matches.
func Many1Then[T any](first, rest Parser[T]) Parser[[]T] {
	return func(in Cursor) ([]T, Cursor, *Failure) {
		v, next, f := first(in)
		if f != nil {
			return nil, in, f
		}
		items, next, f := repeat([]T{v}, next, rest)
		if f != nil {
			return nil, in, f
		}
		return items, next, nil
	}
}

// repeat applies p until it fails. A failure that consumed input is
// returned; one that consumed nothing ends the repetition.
func repeat[T any](items []T, in Cursor, p Parser[T]) ([]T, Cursor, *Failure) {
	for {
		v, next, f := p(in)
		if f != nil {
			if f.consumedFrom(in) {
				return nil, in, f
			}
			if items == nil {
				items = []T{}
			}
			return items, in, nil
		}
		if next.off == in.off {
			// zero-width success would loop forever
			return append(items, v), next, nil
		}
		items = append(items, v)
		in = next
	}
}
