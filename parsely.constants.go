package parsely

// Default literals
const (
	// DefaultSeparator is placed between consecutive record fields unless overridden.
	DefaultSeparator = " "
)

// Separator literals for the built-in Separator types
const (
	SeparatorSpace      = " "
	SeparatorNewLine    = "\n"
	SeparatorComma      = ","
	SeparatorCommaSpace = ", "
	SeparatorBlankLine  = "\n\n"
	SeparatorDash       = "-"
)

// Expectation descriptions reported in failures
const (
	ExpectDigit      = "digit"
	ExpectMinus      = "\"-\""
	ExpectAlphaNum   = "letter or digit"
	ExpectAnyChar    = "any character"
	ExpectEOF        = "end of input"
	ExpectNoParser   = "parser for type "
	ExpectInRangeFmt = "integer in range of %s"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	ErrMsgParseFailed      = "input does not match grammar"
	ErrMsgConversionFailed = "numeric conversion failed"
	ErrMsgTrailingInput    = "unexpected trailing input"
)

// Error code constants for categorization
const (
	ErrCodeParse      = "PARSELY_PARSE"
	ErrCodeConversion = "PARSELY_CONVERSION"
	ErrCodeTrailing   = "PARSELY_TRAILING"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyLine     = "line"
	MetaKeyColumn   = "column"
	MetaKeyOffset   = "offset"
	MetaKeyExpected = "expected"
	MetaKeyKind     = "kind"
	MetaKeyFound    = "found"
)

// Log message constants
const (
	LogMsgParseStart  = "starting parse"
	LogMsgParseEnd    = "parse complete"
	LogMsgParseFailed = "parse failed"
	LogMsgBacktrack   = "alternative failed, backtracking"
)

// Log field names
const (
	LogFieldInputLength = "input_length"
	LogFieldOffset      = "offset"
	LogFieldLine        = "line"
	LogFieldColumn      = "column"
	LogFieldChoice      = "choice"
	LogFieldAlternative = "alternative"
	LogFieldExpected    = "expected"
	LogFieldKind        = "kind"
)

// expectedJoin separates expectations in rendered messages.
const expectedJoin = " or "

// maxFoundRunes limits the input excerpt attached to errors.
const maxFoundRunes = 16
