package parsely

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoice_DeclarationOrderDecides(t *testing.T) {
	short := Choice("short-first", Literal("ab"), Literal("abc"))
	long := Choice("long-first", Literal("abc"), Literal("ab"))

	v, rest, f := short(NewCursor("abc"))
	require.Nil(t, f)
	assert.Equal(t, "ab", v)
	assert.Equal(t, "c", rest.Remaining())

	v, rest, f = long(NewCursor("abc"))
	require.Nil(t, f)
	assert.Equal(t, "abc", v)
	assert.True(t, rest.AtEnd())

	// with the whole input required, only one order accepts "abc"
	_, err := Run(short, "abc")
	assert.True(t, IsTrailingInput(err))
	_, err = Run(long, "abc")
	assert.NoError(t, err)
}

func TestChoice_ReportsFurthestFailure(t *testing.T) {
	p := Choice("pair",
		Then(Literal("a"), Literal("b")),
		Then(Literal("a"), Then(Literal("x"), Literal("y"))),
		Literal("q"),
	)
	_, rest, f := p(NewCursor("axz"))
	require.NotNil(t, f)
	assert.Equal(t, 0, rest.Offset())
	assert.Equal(t, 2, f.Position.Offset)
	assert.Equal(t, []string{`"y"`}, f.Expected)
}

func TestChoice_MergesExpectationsAtSameOffset(t *testing.T) {
	p := Choice("abc", Literal("a"), Literal("b"), Literal("a"))
	_, _, f := p(NewCursor("z"))
	require.NotNil(t, f)
	assert.Equal(t, []string{`"a"`, `"b"`}, f.Expected)
	assert.Equal(t, `"a" or "b"`, f.ExpectedString())
}

func TestChoice_RecoversFromOverflow(t *testing.T) {
	p := Choice("number",
		Map(Uint[uint8](), func(v uint8) int64 { return int64(v) }),
		Map(Uint[uint64](), func(v uint64) int64 { return int64(v) }),
	)
	v, _, f := p(NewCursor("1000"))
	require.Nil(t, f)
	assert.Equal(t, int64(1000), v)
}

func TestChoice_AttemptDoesNotCommitRepetition(t *testing.T) {
	// the choice consumed "a" before failing, yet the repetition still
	// stops quietly because the choice restores its start position
	word := Choice("word", Then(Literal("a"), Literal("b")))
	items, rest, f := Many0(word)(NewCursor("ababac"))
	require.Nil(t, f)
	assert.Len(t, items, 2)
	assert.Equal(t, "ac", rest.Remaining())
}

func TestRepeat_ConsumingFailureFails(t *testing.T) {
	pair := Then(Literal("a"), Literal("b"))
	_, rest, f := Many0(pair)(NewCursor("abac"))
	require.NotNil(t, f)
	assert.Equal(t, 0, rest.Offset())
	assert.Equal(t, 3, f.Position.Offset)
}

func TestMany0_Empty(t *testing.T) {
	items, rest, f := Many0(Literal("x"))(NewCursor("yyy"))
	require.Nil(t, f)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, 0, rest.Offset())
}

func TestMany0_ZeroWidthTerminates(t *testing.T) {
	items, _, f := Many0(Spaces())(NewCursor("abc"))
	require.Nil(t, f)
	assert.Len(t, items, 1)
}

func TestSepBy0(t *testing.T) {
	p := SepBy0(Uint[uint32](), Literal(","))

	items, _, f := p(NewCursor(""))
	require.Nil(t, f)
	assert.Empty(t, items)

	items, _, f = p(NewCursor("1,2"))
	require.Nil(t, f)
	assert.Equal(t, []uint32{1, 2}, items)

	_, _, f = p(NewCursor("1,"))
	assert.NotNil(t, f)
}

func TestAffix(t *testing.T) {
	p := Affix(Uint[uint32](), Affixes{Before: "<", After: ">"})

	v, rest, f := p(NewCursor("<42>!"))
	require.Nil(t, f)
	assert.Equal(t, uint32(42), v)
	assert.Equal(t, "!", rest.Remaining())

	_, rest, f = p(NewCursor("<42"))
	require.NotNil(t, f)
	assert.Equal(t, 0, rest.Offset())
	assert.Equal(t, []string{`">"`}, f.Expected)

	assert.True(t, Affixes{}.IsZero())
	assert.False(t, Affixes{After: ";"}.IsZero())
}

type nested struct {
	children []nested
}

func TestLazy_Recursion(t *testing.T) {
	var tree Parser[nested]
	tree = Lazy(func() Parser[nested] {
		return Map(Between(Token('('), Many0(tree), Token(')')), func(c []nested) nested {
			return nested{children: c}
		})
	})

	v, err := Run(tree, "(()(()))")
	require.NoError(t, err)
	require.Len(t, v.children, 2)
	assert.Empty(t, v.children[0].children)
	assert.Len(t, v.children[1].children, 1)

	_, err = Run(tree, "(()")
	assert.Error(t, err)
}

func TestMapThenSkip(t *testing.T) {
	double := Map(Uint[uint32](), func(v uint32) uint32 { return v * 2 })
	v, _, f := double(NewCursor("21"))
	require.Nil(t, f)
	assert.Equal(t, uint32(42), v)

	signed := Then(Token('+'), Uint[uint32]())
	v, _, f = signed(NewCursor("+5"))
	require.Nil(t, f)
	assert.Equal(t, uint32(5), v)

	stmt := Skip(Uint[uint32](), Token(';'))
	v, rest, f := stmt(NewCursor("9;"))
	require.Nil(t, f)
	assert.Equal(t, uint32(9), v)
	assert.True(t, rest.AtEnd())
}
