package parsely

import (
	"fmt"
	"reflect"
	"strconv"
	"unicode"

	"golang.org/x/exp/constraints"
)

// Char is a single character. Its parser accepts any letter or digit;
// use Token for an exact character.
type Char rune

// Parser implements Parseable.
func (Char) Parser() Parser[Char] {
	return Map(Satisfy(isAlphaNum, ExpectAlphaNum), func(r rune) Char { return Char(r) })
}

// String returns the character as a string
func (c Char) String() string {
	return string(rune(c))
}

func isAlphaNum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Literal matches s exactly. On mismatch nothing is consumed.
func Literal(s string) Parser[string] {
	expected := strconv.Quote(s)
	return func(in Cursor) (string, Cursor, *Failure) {
		if !in.HasPrefix(s) {
			return "", in, Fail(in, expected)
		}
		return s, in.Advance(len(s)), nil
	}
}

// Satisfy matches one rune for which pred holds.
func Satisfy(pred func(rune) bool, expected string) Parser[rune] {
	return func(in Cursor) (rune, Cursor, *Failure) {
		r, next, ok := in.Next()
		if !ok || !pred(r) {
			return 0, in, Fail(in, expected)
		}
		return r, next, nil
	}
}

// Token matches exactly the rune r.
func Token(r rune) Parser[rune] {
	return Satisfy(func(c rune) bool { return c == r }, strconv.QuoteRune(r))
}

// AnyChar matches any single rune.
func AnyChar() Parser[rune] {
	return Satisfy(func(rune) bool { return true }, ExpectAnyChar)
}

// Rest consumes one or more characters up to the end of input.
func Rest() Parser[string] {
	return func(in Cursor) (string, Cursor, *Failure) {
		if in.AtEnd() {
			return "", in, Fail(in, ExpectAnyChar)
		}
		rest := in.Remaining()
		return rest, in.Advance(len(rest)), nil
	}
}

// Spaces skips zero or more whitespace characters. It never fails.
func Spaces() Parser[string] {
	return func(in Cursor) (string, Cursor, *Failure) {
		rest := in.Remaining()
		n := 0
		for i, r := range rest {
			if !unicode.IsSpace(r) {
				break
			}
			n = i + len(string(r))
		}
		return rest[:n], in.Advance(n), nil
	}
}

// EOF succeeds only at the end of input.
func EOF() Parser[struct{}] {
	return func(in Cursor) (struct{}, Cursor, *Failure) {
		if !in.AtEnd() {
			return struct{}{}, in, Fail(in, ExpectEOF)
		}
		return struct{}{}, in, nil
	}
}

// Digits matches one or more ASCII decimal digits.
func Digits() Parser[string] {
	return func(in Cursor) (string, Cursor, *Failure) {
		rest := in.Remaining()
		n := 0
		for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
			n++
		}
		if n == 0 {
			return "", in, Fail(in, ExpectDigit)
		}
		return rest[:n], in.Advance(n), nil
	}
}

// Uint parses one or more decimal digits into T. A value that does not fit
// T is a conversion failure, which ordered choice can still recover from.
func Uint[T constraints.Unsigned]() Parser[T] {
	inRange := fmt.Sprintf(ExpectInRangeFmt, reflect.TypeFor[T]())
	digits := Digits()
	return func(in Cursor) (T, Cursor, *Failure) {
		s, next, f := digits(in)
		if f != nil {
			return 0, in, f
		}
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil || uint64(T(v)) != v {
			return 0, in, conversionFailure(in, inRange, conversionCause(err, s))
		}
		return T(v), next, nil
	}
}

// Int parses an optional '-' immediately followed by decimal digits into T.
func Int[T constraints.Signed]() Parser[T] {
	inRange := fmt.Sprintf(ExpectInRangeFmt, reflect.TypeFor[T]())
	digits := Digits()
	return func(in Cursor) (T, Cursor, *Failure) {
		start := in
		if in.HasPrefix("-") {
			in = in.Advance(1)
		}
		_, next, f := digits(in)
		if f != nil {
			if in.Offset() == start.Offset() {
				f.Expected = append(f.Expected, ExpectMinus)
			}
			return 0, start, f
		}
		text := start.Remaining()[:next.Offset()-start.Offset()]
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil || int64(T(v)) != v {
			return 0, start, conversionFailure(start, inRange, conversionCause(err, text))
		}
		return T(v), next, nil
	}
}

// conversionCause returns err, or a range error when the value parsed as
// 64 bits but does not fit the target width.
func conversionCause(err error, text string) error {
	if err != nil {
		return err
	}
	return &strconv.NumError{Func: "Parse", Num: text, Err: strconv.ErrRange}
}
