package internal

import (
	"errors"
	"go/token"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// NewAnnotationError creates an error for a malformed or invalid annotation
func NewAnnotationError(msg string, pos token.Position, keyword string) error {
	err := cuserr.NewValidationError(ErrCodeAnnotation, msg).
		WithMetadata(MetaKeyCategory, CategoryAnnotation)
	if keyword != "" {
		err = err.WithMetadata(MetaKeyKeyword, keyword)
	}
	return withPosition(err, pos)
}

// NewGenerateError creates an error for a type the generator cannot derive
func NewGenerateError(msg string, pos token.Position, item string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeGenerate, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeGenerate, msg)
	}
	err = err.WithMetadata(MetaKeyCategory, CategoryGenerate)
	if item != "" {
		err = err.WithMetadata(MetaKeyItem, item)
	}
	return withPosition(err, pos)
}

// NewConfigError creates an error for generator configuration problems
func NewConfigError(msg string, path string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	return err.
		WithMetadata(MetaKeyCategory, CategoryConfig).
		WithMetadata(MetaKeyPath, path)
}

func withPosition(err *cuserr.CustomError, pos token.Position) error {
	if pos.Filename != "" {
		err = err.WithMetadata(MetaKeyFile, pos.Filename)
	}
	if pos.Line > 0 {
		err = err.
			WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
			WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column))
	}
	return err
}

// CategoryOf returns the category recorded on a generator error
func CategoryOf(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	category, _ := customErr.GetMetadata(MetaKeyCategory)
	return category
}

// IsAnnotationError reports whether err came from reading an annotation
func IsAnnotationError(err error) bool {
	return CategoryOf(err) == CategoryAnnotation
}

// Location renders the file:line:column of a generator error, or "" if unknown
func Location(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	file, _ := customErr.GetMetadata(MetaKeyFile)
	line, ok := customErr.GetMetadata(MetaKeyLine)
	if !ok {
		return file
	}
	column, _ := customErr.GetMetadata(MetaKeyColumn)
	return file + ":" + line + ":" + column
}

// IsDeclarationError reports whether err points at a problem in the scanned
// source (an annotation or an underivable type) rather than at I/O.
func IsDeclarationError(err error) bool {
	switch CategoryOf(err) {
	case CategoryAnnotation:
		return true
	case CategoryGenerate:
		var customErr *cuserr.CustomError
		return errors.As(err, &customErr) && errors.Unwrap(customErr) == nil
	}
	return false
}
