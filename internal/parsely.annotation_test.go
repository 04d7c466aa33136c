package internal

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAnnotationReader_Read(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		context  AnnotationContext
		expected []AnnotationEntry
	}{
		{
			name:    "single entry",
			payload: `(string = "Z")`,
			context: ContextVariant,
			expected: []AnnotationEntry{
				{Keyword: KeywordString, Value: "Z"},
			},
		},
		{
			name:    "container entries in order",
			payload: `(before = "{ ", after = " }", sep_by = ", ")`,
			context: ContextContainer,
			expected: []AnnotationEntry{
				{Keyword: KeywordBefore, Value: "{ "},
				{Keyword: KeywordAfter, Value: " }"},
				{Keyword: KeywordSepBy, Value: ", "},
			},
		},
		{
			name:    "no spaces",
			payload: `(before="c: ")`,
			context: ContextField,
			expected: []AnnotationEntry{
				{Keyword: KeywordBefore, Value: "c: "},
			},
		},
		{
			name:    "escapes",
			payload: `(sep_by = "\n", after = "\"")`,
			context: ContextContainer,
			expected: []AnnotationEntry{
				{Keyword: KeywordSepBy, Value: "\n"},
				{Keyword: KeywordAfter, Value: `"`},
			},
		},
		{
			name:    "raw string",
			payload: "(before = `\\d`)",
			context: ContextField,
			expected: []AnnotationEntry{
				{Keyword: KeywordBefore, Value: `\d`},
			},
		},
		{
			name:    "trailing comma",
			payload: `(after = ";",)`,
			context: ContextField,
			expected: []AnnotationEntry{
				{Keyword: KeywordAfter, Value: ";"},
			},
		},
		{
			name:     "empty",
			payload:  `()`,
			context:  ContextContainer,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann, err := ReadAnnotation(tt.payload, tt.context, token.Position{}, zap.NewNop())
			require.NoError(t, err)
			require.Len(t, ann.Entries, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want.Keyword, ann.Entries[i].Keyword)
				assert.Equal(t, want.Value, ann.Entries[i].Value)
			}
			assert.Equal(t, tt.context, ann.Context)
		})
	}
}

func TestAnnotationReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		context AnnotationContext
		msg     string
		keyword string
	}{
		{name: "unknown keyword", payload: `(prefix = "x")`, context: ContextField, msg: ErrMsgUnknownKeyword, keyword: "prefix"},
		{name: "keyword of other context", payload: `(sep_by = ",")`, context: ContextField, msg: ErrMsgUnknownKeyword, keyword: KeywordSepBy},
		{name: "duplicate keyword", payload: `(before = "a", before = "b")`, context: ContextField, msg: ErrMsgDuplicateKeyword, keyword: KeywordBefore},
		{name: "missing paren", payload: `before = "a"`, context: ContextField, msg: ErrMsgAnnotationSyntax},
		{name: "unclosed", payload: `(before = "a"`, context: ContextField, msg: ErrMsgExpectedCommaOrParen},
		{name: "missing equals", payload: `(before "a")`, context: ContextField, msg: ErrMsgExpectedEquals, keyword: KeywordBefore},
		{name: "bare value", payload: `(before = a)`, context: ContextField, msg: ErrMsgExpectedLiteral, keyword: KeywordBefore},
		{name: "unterminated literal", payload: `(before = "a)`, context: ContextField, msg: ErrMsgUnterminatedLiteral, keyword: KeywordBefore},
		{name: "invalid escape", payload: `(before = "\q")`, context: ContextField, msg: ErrMsgInvalidLiteral, keyword: KeywordBefore},
		{name: "missing comma", payload: `(before = "a" after = "b")`, context: ContextField, msg: ErrMsgExpectedCommaOrParen},
		{name: "text after payload", payload: `(before = "a") extra`, context: ContextField, msg: ErrMsgTrailingAfterPayload},
		{name: "number keyword", payload: `(1 = "a")`, context: ContextField, msg: ErrMsgExpectedKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAnnotation(tt.payload, tt.context, token.Position{Filename: "x.go", Line: 3, Column: 11}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.True(t, IsAnnotationError(err))
			if tt.keyword != "" {
				assert.Equal(t, tt.keyword, metadata(t, err, MetaKeyKeyword))
			}
		})
	}
}

func TestAnnotationReader_Positions(t *testing.T) {
	base := token.Position{Filename: "move.go", Offset: 40, Line: 4, Column: 13}
	_, err := ReadAnnotation(`(before = "a", bogus = "b")`, ContextField, base, nil)
	require.Error(t, err)

	// "bogus" starts 15 bytes into the payload
	assert.Equal(t, "move.go:4:28", Location(err))
}

func TestAnnotation_Accessors(t *testing.T) {
	ann, err := ReadAnnotation(`(before = "<", after = "")`, ContextField, token.Position{}, nil)
	require.NoError(t, err)

	v, ok := ann.Get(KeywordBefore)
	assert.True(t, ok)
	assert.Equal(t, "<", v)

	// present but empty is distinct from absent
	v, ok = ann.Get(KeywordAfter)
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = ann.Entry(KeywordString)
	assert.False(t, ok)

	var none *Annotation
	assert.Empty(t, none.Lookup(KeywordBefore))
	_, ok = none.Entry(KeywordBefore)
	assert.False(t, ok)
}
