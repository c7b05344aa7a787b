package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtouch/pkg/blocks"
	"github.com/yaklabco/mdtouch/pkg/parser/gfm"
)

const testMd = "# H1 title\n\nbrabra\n\nfugafuga\nhegahega\n\n- hogehoge\n- ikaika\n   - fugafuga`tako`gyogyo\n\nafter        "

func splitter() blocks.Splitter {
	return gfm.New().SplitBlocks
}

func fixture(t *testing.T) (*blocks.Generator, blocks.List) {
	t.Helper()

	gen := blocks.NewGenerator()
	list := gen.ToBlocks(splitter()(testMd))

	require.Equal(t, "brabra", list[3].Src)

	return gen, list
}

func TestGenerator(t *testing.T) {
	t.Parallel()

	gen := blocks.NewGenerator()
	assert.Equal(t, 0, gen.Last())
	assert.Equal(t, 1, gen.Next())
	assert.Equal(t, 2, gen.Next())
	assert.Equal(t, 2, gen.Last())

	gen.Reset()
	assert.Equal(t, 1, gen.Next())

	var zero blocks.Generator
	assert.Equal(t, 1, zero.Next(), "zero value generator starts at 1")
}

func TestToBlocks(t *testing.T) {
	t.Parallel()

	gen, list := fixture(t)

	for i, b := range list {
		assert.Equal(t, i+1, b.ID)
	}
	assert.Equal(t, testMd, list.Join())
	assert.Equal(t, len(list), gen.Last())
}

func TestUpdate_AppendOneBlockToTail(t *testing.T) {
	t.Parallel()

	gen, list := fixture(t)
	lastID := list.MaxID()

	actual := gen.AppendTail(splitter(), list, "newBlock")

	require.Len(t, actual, len(list)+3)
	assert.False(t, actual.Equal(list))
	for i, b := range list {
		assert.Equal(t, b, actual[i])
	}

	tail := actual[len(actual)-3:]
	assert.Equal(t, "\n", tail[0].Src)
	assert.Equal(t, "\n", tail[1].Src)
	assert.Equal(t, "newBlock", tail[2].Src)
	for _, b := range tail {
		assert.Greater(t, b.ID, lastID)
	}

	assert.Equal(t, testMd+"\n\nnewBlock", actual.Join())
}

func TestUpdate_ReplaceOneBlock(t *testing.T) {
	t.Parallel()

	gen, list := fixture(t)
	brabra := list[3]

	actual := gen.Update(splitter(), list, brabra.ID, "hogehoge")

	require.Len(t, actual, len(list))
	for i, b := range list {
		if b.ID != brabra.ID {
			assert.Equal(t, b, actual[i])
		}
	}
	assert.Equal(t, blocks.Block{ID: brabra.ID, Src: "hogehoge"}, actual[3])

	assert.Equal(t, "brabra", list[3].Src, "input list must not change")
}

func TestUpdate_ReplaceWithSeveralBlocks(t *testing.T) {
	t.Parallel()

	gen, list := fixture(t)
	brabra := list[3]
	lastID := list.MaxID()

	actual := gen.Update(splitter(), list, brabra.ID, "hogehoge\n\nikaika")

	require.Len(t, actual, len(list)+3)
	for i := 0; i <= 2; i++ {
		assert.Equal(t, list[i], actual[i])
	}
	for i := 4; i < len(list); i++ {
		assert.Equal(t, list[i], actual[i+3])
	}

	inserted := actual[3:7]
	assert.Equal(t, []string{"hogehoge", "\n", "\n", "ikaika"}, sources(inserted))
	for _, b := range inserted {
		assert.Greater(t, b.ID, lastID)
	}
	assert.Equal(t, -1, actual.IndexOf(brabra.ID))
}

func TestUpdate_DeleteOnEmpty(t *testing.T) {
	t.Parallel()

	gen, list := fixture(t)
	brabra := list[3]

	actual := gen.Update(splitter(), list, brabra.ID, "")

	require.Len(t, actual, len(list)-1)
	for i := 0; i <= 2; i++ {
		assert.Equal(t, list[i], actual[i])
	}
	for i := 4; i < len(list); i++ {
		assert.Equal(t, list[i], actual[i-1])
	}
}

func TestUpdate_MissingIDIsNoop(t *testing.T) {
	t.Parallel()

	gen, list := fixture(t)

	assert.True(t, gen.Update(splitter(), list, 999, "anything").Equal(list))
	assert.True(t, gen.Update(splitter(), list, 999, "a\n\nb").Equal(list))
	assert.True(t, gen.Update(splitter(), list, 999, "").Equal(list))
}

func TestUpdate_SentinelPanics(t *testing.T) {
	t.Parallel()

	gen, list := fixture(t)

	assert.Panics(t, func() { gen.Update(splitter(), list, blocks.NoID, "x") })
}

func TestAppendTail_LengthMatchesSplit(t *testing.T) {
	t.Parallel()

	gen, list := fixture(t)
	split := splitter()

	for _, text := range []string{"X", "a\n\nb", "# h\n- item\n\ntext"} {
		actual := gen.AppendTail(split, list, text)
		assert.Len(t, actual, len(list)+2+len(split(text)), "%q", text)
	}
}

func TestAppendTail_EmptyList(t *testing.T) {
	t.Parallel()

	gen := blocks.NewGenerator()

	actual := gen.AppendTail(splitter(), nil, "first")

	assert.Equal(t, []string{"\n", "\n", "first"}, sources(actual))
	assert.Equal(t, []int{1, 2, 3}, actual.IDs())
}

func TestList_Find(t *testing.T) {
	t.Parallel()

	_, list := fixture(t)

	b, ok := list.Find(4)
	assert.True(t, ok)
	assert.Equal(t, "brabra", b.Src)

	b, ok = list.Find(1000)
	assert.False(t, ok)
	assert.True(t, b.IsNone())
}

func TestList_JoinEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", blocks.List(nil).Join())
}

func TestBlock_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `#3 "a\n"`, blocks.Block{ID: 3, Src: "a\n"}.String())
}

func sources(list blocks.List) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Src
	}
	return out
}
