package parsely

import (
	"strings"

	"github.com/samber/lo"
)

// FailureKind classifies why a parse failed
type FailureKind string

// Failure kinds
const (
	// FailureMismatch: expected literal or pattern not found, including empty sequences.
	FailureMismatch FailureKind = "mismatch"
	// FailureConversion: digits were present but could not be converted to the target type.
	FailureConversion FailureKind = "conversion"
	// FailureTrailing: the value parsed but non-whitespace input remains.
	FailureTrailing FailureKind = "trailing"
)

// Failure describes a failed parse attempt: where it happened and what was
// expected there. Combinators keep the furthest failure they have seen.
type Failure struct {
	Position Position
	Expected []string
	Kind     FailureKind
	Cause    error
	Found    string

	// origin is the offset where the attempt owning this failure began.
	origin int
}

// Error renders the failure for diagnostics.
func (f *Failure) Error() string {
	var sb strings.Builder
	switch f.Kind {
	case FailureConversion:
		sb.WriteString(ErrMsgConversionFailed)
	case FailureTrailing:
		sb.WriteString(ErrMsgTrailingInput)
	default:
		sb.WriteString(ErrMsgParseFailed)
	}
	sb.WriteString(" at ")
	sb.WriteString(f.Position.String())
	if len(f.Expected) > 0 {
		sb.WriteString(": expected ")
		sb.WriteString(f.ExpectedString())
	}
	if f.Found != "" {
		sb.WriteString(", found ")
		sb.WriteString(f.Found)
	}
	if f.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(f.Cause.Error())
	}
	return sb.String()
}

// ExpectedString joins the expectations into one description.
func (f *Failure) ExpectedString() string {
	return strings.Join(f.Expected, expectedJoin)
}

// Unwrap exposes the cause, if any.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// Fail builds a mismatch failure at the cursor.
func Fail(at Cursor, expected ...string) *Failure {
	return &Failure{
		Position: at.Position(),
		Expected: expected,
		Kind:     FailureMismatch,
		Found:    at.excerpt(),
		origin:   at.off,
	}
}

func conversionFailure(at Cursor, expected string, cause error) *Failure {
	return &Failure{
		Position: at.Position(),
		Expected: []string{expected},
		Kind:     FailureConversion,
		Cause:    cause,
		Found:    at.excerpt(),
		origin:   at.off,
	}
}

// consumedFrom reports whether the failing attempt had consumed input past
// start. Repetitions stop quietly only on failures that consumed nothing.
func (f *Failure) consumedFrom(start Cursor) bool {
	return f.Kind == FailureConversion || f.origin > start.off
}

// rewound returns a copy of f owned by an attempt that began at c, so that
// callers see it as consuming nothing.
func (f *Failure) rewound(c Cursor) *Failure {
	r := *f
	r.origin = c.off
	return &r
}

// furthest keeps the failure that got further into the input. Failures at
// the same offset merge their expectations.
func furthest(a, b *Failure) *Failure {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Position.Offset > a.Position.Offset:
		return b
	case a.Position.Offset > b.Position.Offset:
		return a
	}
	merged := *a
	merged.Expected = lo.Uniq(append(append([]string{}, a.Expected...), b.Expected...))
	if a.Kind == FailureMismatch && b.Kind != FailureMismatch {
		merged.Kind = b.Kind
		merged.Cause = b.Cause
	}
	return &merged
}
