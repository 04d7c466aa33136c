package internal

// Directive prefixes recognized in line comments
const (
	DirectivePrefix  = "//parsely:"
	DirectiveDerive  = "derive"
	DirectiveVariant = "variant"
	DirectivePayload = "("
)

// Annotation keywords
const (
	KeywordBefore = "before"
	KeywordAfter  = "after"
	KeywordSepBy  = "sep_by"
	KeywordString = "string"
)

// Character constants
const (
	CharEquals      = '='
	CharComma       = ','
	CharOpenParen   = '('
	CharCloseParen  = ')'
	CharDoubleQuote = '"'
	CharBackquote   = '`'
	CharBackslash   = '\\'
	CharNewline     = '\n'
	CharSpace       = ' '
	CharTab         = '\t'
	CharCarriageRet = '\r'
	CharUnderscore  = '_'
)

// Generator defaults
const (
	DefaultOutputSuffix = "_parsely.go"
	DefaultImportPath   = "github.com/itsatony/go-parsely"
	DefaultImportName   = "parsely"
	DefaultJobs         = 4
	DefaultConfigFile   = ".parsegen.yaml"
	DefaultSeparator    = " "
	GeneratedHeader     = "// Code generated by parsegen. DO NOT EDIT."
	GoFileSuffix        = ".go"
	GoTestFileSuffix    = "_test.go"
)

// Built-in type names that resolve through parsely.Of
var builtinScalars = map[string]bool{
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"byte": true, "rune": true, "string": true,
}

// Error message constants for annotations
const (
	ErrMsgAnnotationSyntax      = "malformed annotation"
	ErrMsgUnknownKeyword        = "unknown keyword"
	ErrMsgDuplicateKeyword      = "duplicate keyword"
	ErrMsgDuplicateAnnotation   = "more than one annotation on the same item"
	ErrMsgKeywordNotApplicable  = "keyword not applicable here"
	ErrMsgUnterminatedLiteral   = "unterminated string literal"
	ErrMsgInvalidLiteral        = "invalid string literal"
	ErrMsgExpectedKeyword       = "expected keyword"
	ErrMsgExpectedEquals        = "expected '='"
	ErrMsgExpectedLiteral       = "expected string literal"
	ErrMsgExpectedCommaOrParen  = "expected ',' or ')'"
	ErrMsgTrailingAfterPayload  = "unexpected text after annotation"
	ErrMsgUnknownDirective      = "unknown parsely directive"
	ErrMsgVariantTargetMissing  = "variant directive needs an interface name"
	ErrMsgVariantTargetUnknown  = "variant refers to a type that is not a derived interface"
	ErrMsgVariantTooManyFields  = "variants must have at most one field"
	ErrMsgVariantNamedUnsupport = "variant type is not supported"
	ErrMsgUnsupportedType       = "type shape not supported"
	ErrMsgUnsupportedFieldType  = "field type not supported"
	ErrMsgGenericType           = "generic types are not supported"
	ErrMsgEmptySum              = "sum type has no variants"
	ErrMsgAnnotationOrphan      = "annotation on an item that is not derived"
	ErrMsgReadDirFailed         = "failed to read package directory"
	ErrMsgParseSourceFailed     = "failed to parse Go source"
	ErrMsgFormatFailed          = "failed to format generated code"
	ErrMsgRenderFailed          = "failed to render generated code"
	ErrMsgWriteFailed           = "failed to write generated file"
	ErrMsgMixedPackages         = "directory contains more than one package"
	ErrMsgConfigRead            = "failed to read generator config"
	ErrMsgConfigParse           = "failed to parse generator config"
	ErrMsgConfigInvalid         = "invalid generator config"
)

// Error codes
const (
	ErrCodeAnnotation = "PARSELY_ANNOTATION"
	ErrCodeGenerate   = "PARSELY_GENERATE"
	ErrCodeConfig     = "PARSELY_CONFIG"
)

// Error categories, stored as metadata for classification
const (
	CategoryAnnotation = "annotation"
	CategoryGenerate   = "generate"
	CategoryConfig     = "config"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyFile     = "file"
	MetaKeyLine     = "line"
	MetaKeyColumn   = "column"
	MetaKeyItem     = "item"
	MetaKeyKeyword  = "keyword"
	MetaKeyContext  = "context"
	MetaKeyCategory = "category"
	MetaKeyPath     = "path"
	MetaKeyType     = "type"
)

// Log message constants
const (
	LogMsgGeneratorCreated = "generator created"
	LogMsgScanStart        = "scanning package"
	LogMsgScanEnd          = "package scanned"
	LogMsgTypeDerived      = "type derived"
	LogMsgFileSkipped      = "file skipped"
	LogMsgRenderStart      = "rendering package"
	LogMsgFileWritten      = "generated file written"
	LogMsgNothingToDo      = "no derived types in package"
	LogMsgAnnotationRead   = "annotation read"
	LogMsgConfigLoaded     = "generator config loaded"
	LogMsgConfigDefault    = "generator config not found, using defaults"
)

// Log field names
const (
	LogFieldDir      = "dir"
	LogFieldPackage  = "package"
	LogFieldFile     = "file"
	LogFieldType     = "type"
	LogFieldShape    = "shape"
	LogFieldTypes    = "type_count"
	LogFieldKeywords = "keyword_count"
	LogFieldOutput   = "output"
	LogFieldBytes    = "bytes"
	LogFieldJobs     = "jobs"
	LogFieldPath     = "path"
)
