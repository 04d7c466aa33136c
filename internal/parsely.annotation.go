package internal

import (
	"go/token"
	"strconv"

	"go.uber.org/zap"
)

// AnnotationContext is the kind of item an annotation is attached to.
// Each context accepts its own keyword set.
type AnnotationContext string

// Annotation contexts
const (
	ContextContainer AnnotationContext = "container"
	ContextField     AnnotationContext = "field"
	ContextVariant   AnnotationContext = "variant"
)

// contextKeywords lists the keywords each context accepts
var contextKeywords = map[AnnotationContext][]string{
	ContextContainer: {KeywordBefore, KeywordAfter, KeywordSepBy, KeywordString},
	ContextField:     {KeywordBefore, KeywordAfter},
	ContextVariant:   {KeywordString, KeywordBefore, KeywordAfter},
}

// AnnotationEntry is one keyword = "literal" pair
type AnnotationEntry struct {
	Keyword  string
	Value    string
	Position token.Position
}

// Annotation is the validated content of one //parsely:(...) payload,
// in source order.
type Annotation struct {
	Context  AnnotationContext
	Entries  []AnnotationEntry
	Position token.Position
}

// Get returns the literal for keyword
func (a *Annotation) Get(keyword string) (string, bool) {
	if a == nil {
		return "", false
	}
	for _, e := range a.Entries {
		if e.Keyword == keyword {
			return e.Value, true
		}
	}
	return "", false
}

// Lookup returns the literal for keyword or "" when absent
func (a *Annotation) Lookup(keyword string) string {
	v, _ := a.Get(keyword)
	return v
}

// Entry returns the entry for keyword
func (a *Annotation) Entry(keyword string) (AnnotationEntry, bool) {
	if a == nil {
		return AnnotationEntry{}, false
	}
	for _, e := range a.Entries {
		if e.Keyword == keyword {
			return e, true
		}
	}
	return AnnotationEntry{}, false
}

// AnnotationReader reads a parenthesized, comma-separated list of
// keyword = "literal" pairs.
type AnnotationReader struct {
	source  string
	context AnnotationContext
	base    token.Position // Position of the first payload character
	pos     int            // Current byte position
	logger  *zap.Logger
}

// NewAnnotationReader creates a reader for payload located at base
func NewAnnotationReader(payload string, context AnnotationContext, base token.Position, logger *zap.Logger) *AnnotationReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnotationReader{
		source:  payload,
		context: context,
		base:    base,
		logger:  logger,
	}
}

// ReadAnnotation reads and validates one payload
func ReadAnnotation(payload string, context AnnotationContext, base token.Position, logger *zap.Logger) (*Annotation, error) {
	return NewAnnotationReader(payload, context, base, logger).Read()
}

// Read parses the payload. Unknown and duplicate keywords are rejected.
func (r *AnnotationReader) Read() (*Annotation, error) {
	ann := &Annotation{Context: r.context, Position: r.currentPosition()}

	r.skipWhitespace()
	if r.peek() != CharOpenParen {
		return nil, r.newError(ErrMsgAnnotationSyntax, "")
	}
	r.advance()

	seen := make(map[string]bool)
	for {
		r.skipWhitespace()
		if r.isAtEnd() {
			return nil, r.newError(ErrMsgExpectedCommaOrParen, "")
		}
		if r.peek() == CharCloseParen {
			r.advance()
			break
		}

		entry, err := r.scanEntry()
		if err != nil {
			return nil, err
		}
		if !r.accepts(entry.Keyword) {
			return nil, NewAnnotationError(ErrMsgUnknownKeyword, entry.Position, entry.Keyword)
		}
		if seen[entry.Keyword] {
			return nil, NewAnnotationError(ErrMsgDuplicateKeyword, entry.Position, entry.Keyword)
		}
		seen[entry.Keyword] = true
		ann.Entries = append(ann.Entries, entry)

		r.skipWhitespace()
		switch r.peek() {
		case CharComma:
			r.advance()
		case CharCloseParen:
		default:
			return nil, r.newError(ErrMsgExpectedCommaOrParen, "")
		}
	}

	r.skipWhitespace()
	if !r.isAtEnd() {
		return nil, r.newError(ErrMsgTrailingAfterPayload, "")
	}

	r.logger.Debug(LogMsgAnnotationRead,
		zap.String(MetaKeyContext, string(r.context)),
		zap.Int(LogFieldKeywords, len(ann.Entries)))
	return ann, nil
}

// scanEntry scans keyword = "literal"
func (r *AnnotationReader) scanEntry() (AnnotationEntry, error) {
	pos := r.currentPosition()
	keyword, err := r.scanKeyword()
	if err != nil {
		return AnnotationEntry{}, err
	}

	r.skipWhitespace()
	if r.peek() != CharEquals {
		return AnnotationEntry{}, r.newError(ErrMsgExpectedEquals, keyword)
	}
	r.advance()
	r.skipWhitespace()

	value, err := r.scanLiteral(keyword)
	if err != nil {
		return AnnotationEntry{}, err
	}
	return AnnotationEntry{Keyword: keyword, Value: value, Position: pos}, nil
}

// scanKeyword scans an identifier
func (r *AnnotationReader) scanKeyword() (string, error) {
	start := r.pos

	// First character must be letter or underscore
	if r.isAtEnd() || !(isLetter(r.peek()) || r.peek() == CharUnderscore) {
		return "", r.newError(ErrMsgExpectedKeyword, "")
	}
	r.advance()

	for !r.isAtEnd() {
		ch := r.peek()
		if isLetter(ch) || isDigit(ch) || ch == CharUnderscore {
			r.advance()
		} else {
			break
		}
	}
	return r.source[start:r.pos], nil
}

// scanLiteral scans a Go string literal, interpreted or raw
func (r *AnnotationReader) scanLiteral(keyword string) (string, error) {
	start := r.pos
	quote := r.peek()
	if quote != CharDoubleQuote && quote != CharBackquote {
		return "", r.newError(ErrMsgExpectedLiteral, keyword)
	}
	r.advance() // consume opening quote

	for !r.isAtEnd() {
		ch := r.peek()
		if ch == CharBackslash && quote == CharDoubleQuote && r.pos+1 < len(r.source) {
			r.advance() // skip backslash
			r.advance()
			continue
		}
		r.advance()
		if ch == quote {
			value, err := strconv.Unquote(r.source[start:r.pos])
			if err != nil {
				return "", NewAnnotationError(ErrMsgInvalidLiteral, r.positionAt(start), keyword)
			}
			return value, nil
		}
	}
	return "", NewAnnotationError(ErrMsgUnterminatedLiteral, r.positionAt(start), keyword)
}

func (r *AnnotationReader) accepts(keyword string) bool {
	for _, k := range contextKeywords[r.context] {
		if k == keyword {
			return true
		}
	}
	return false
}

// Helper methods

func (r *AnnotationReader) currentPosition() token.Position {
	return r.positionAt(r.pos)
}

// positionAt maps a payload offset to a source position. Payloads are read
// from a single comment line.
func (r *AnnotationReader) positionAt(offset int) token.Position {
	pos := r.base
	pos.Offset += offset
	pos.Column += offset
	return pos
}

func (r *AnnotationReader) isAtEnd() bool {
	return r.pos >= len(r.source)
}

func (r *AnnotationReader) peek() byte {
	if r.isAtEnd() {
		return 0
	}
	return r.source[r.pos]
}

func (r *AnnotationReader) advance() byte {
	if r.isAtEnd() {
		return 0
	}
	ch := r.source[r.pos]
	r.pos++
	return ch
}

func (r *AnnotationReader) skipWhitespace() {
	for !r.isAtEnd() {
		ch := r.peek()
		if ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet {
			r.advance()
		} else {
			break
		}
	}
}

func (r *AnnotationReader) newError(msg string, keyword string) error {
	return NewAnnotationError(msg, r.currentPosition(), keyword)
}

// Character classification helpers

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
