package parsely

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// NewFailureError converts a parse failure into the structured error returned
// by the entry points. Position, expectations and kind are attached as metadata.
func NewFailureError(f *Failure) error {
	var err *cuserr.CustomError
	switch f.Kind {
	case FailureConversion:
		if f.Cause != nil {
			err = cuserr.WrapStdError(f.Cause, ErrCodeConversion, f.Error())
		} else {
			err = cuserr.NewValidationError(ErrCodeConversion, f.Error())
		}
	case FailureTrailing:
		err = cuserr.NewValidationError(ErrCodeTrailing, f.Error())
	default:
		err = cuserr.NewValidationError(ErrCodeParse, f.Error())
	}
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(f.Position.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(f.Position.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(f.Position.Offset)).
		WithMetadata(MetaKeyExpected, f.ExpectedString()).
		WithMetadata(MetaKeyFound, f.Found).
		WithMetadata(MetaKeyKind, string(f.Kind))
}

// KindOf returns the failure kind recorded on an error returned by Run or ParseStr.
func KindOf(err error) (FailureKind, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return "", false
	}
	kind, ok := customErr.GetMetadata(MetaKeyKind)
	if !ok {
		return "", false
	}
	return FailureKind(kind), true
}

// PositionOf returns the failure position recorded on an error returned by Run or ParseStr.
func PositionOf(err error) (Position, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return Position{}, false
	}
	var pos Position
	for key, dst := range map[string]*int{
		MetaKeyLine:   &pos.Line,
		MetaKeyColumn: &pos.Column,
		MetaKeyOffset: &pos.Offset,
	} {
		raw, ok := customErr.GetMetadata(key)
		if !ok {
			return Position{}, false
		}
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return Position{}, false
		}
		*dst = n
	}
	return pos, true
}

// IsTrailingInput reports whether err is a trailing-input error.
func IsTrailingInput(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == FailureTrailing
}
