package parsely

import (
	"errors"
	"strconv"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewFailureError_Metadata(t *testing.T) {
	f := Fail(NewCursor("ab\ncd").Advance(4), `"x"`, `"y"`)
	err := NewFailureError(f)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))

	tests := []struct {
		key  string
		want string
	}{
		{MetaKeyLine, "2"},
		{MetaKeyColumn, "2"},
		{MetaKeyOffset, "4"},
		{MetaKeyExpected, `"x" or "y"`},
		{MetaKeyFound, `"d"`},
		{MetaKeyKind, string(FailureMismatch)},
	}
	for _, tt := range tests {
		got, ok := customErr.GetMetadata(tt.key)
		assert.True(t, ok, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}
}

func TestNewFailureError_Kinds(t *testing.T) {
	_, err := Run(Uint[uint8](), "300")
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, FailureConversion, kind)
	assert.True(t, errors.Is(err, strconv.ErrRange))

	_, err = Run(Uint[uint8](), "3 x")
	assert.True(t, IsTrailingInput(err))

	_, err = Run(Uint[uint8](), "x")
	kind, _ = KindOf(err)
	assert.Equal(t, FailureMismatch, kind)
	assert.False(t, IsTrailingInput(err))
}

func TestKindOf_ForeignError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
	_, ok = PositionOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsTrailingInput(nil))
}

func TestFailure_Error(t *testing.T) {
	f := Fail(NewCursor("zzz"), `"a"`)
	assert.Equal(t, `input does not match grammar at line 1, column 1: expected "a", found "zzz"`, f.Error())

	f = Fail(NewCursor(""), ExpectDigit)
	assert.Contains(t, f.Error(), "found end of input")
}

func TestFurthest(t *testing.T) {
	in := NewCursor("abcdef")
	near := Fail(in.Advance(1), "near")
	far := Fail(in.Advance(3), "far")

	assert.Same(t, far, furthest(near, far))
	assert.Same(t, far, furthest(far, near))
	assert.Same(t, near, furthest(nil, near))
	assert.Same(t, near, furthest(near, nil))

	conv := conversionFailure(in.Advance(1), "range", strconv.ErrRange)
	merged := furthest(near, conv)
	assert.Equal(t, FailureConversion, merged.Kind)
	assert.Equal(t, []string{"near", "range"}, merged.Expected)
}

func TestRun_LogsBacktracking(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	p := Choice("greeting", Literal("hi"), Literal("hello"))
	v, err := Run(p, "hello", WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	assert.Equal(t, 1, logs.FilterMessage(LogMsgParseStart).Len())
	assert.Equal(t, 1, logs.FilterMessage(LogMsgParseEnd).Len())
	backtracks := logs.FilterMessage(LogMsgBacktrack).All()
	require.Len(t, backtracks, 1)
	assert.Equal(t, "greeting", backtracks[0].ContextMap()[LogFieldChoice])
}
