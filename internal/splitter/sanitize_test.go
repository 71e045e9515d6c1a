package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamerReplacesIllegalCharacters(t *testing.T) {
	n := NewNamer(3)
	assert.Equal(t, "01 - A B Part One", n.Name(0, `A/B: Part One`))
	assert.Equal(t, "02 - What Why", n.Name(1, `What? "Why"`))
	assert.Equal(t, "03 - a b c d", n.Name(2, "a\\b<c>d"))
}

func TestNamerStripsControlCharacters(t *testing.T) {
	n := NewNamer(1)
	assert.Equal(t, "01 - a b", n.Name(0, "a\x00\tb"))
}

func TestNamerCollapsesWhitespace(t *testing.T) {
	n := NewNamer(1)
	assert.Equal(t, "01 - a b c", n.Name(0, "  a   b\t c  "))
}

func TestNamerEmptyLabelFallback(t *testing.T) {
	n := NewNamer(12)
	assert.Equal(t, "01 - Track 1", n.Name(0, ""))
	assert.Equal(t, "03 - Track 3", n.Name(2, `???///`))
}

func TestNamerUnicodePassesThrough(t *testing.T) {
	n := NewNamer(2)
	assert.Equal(t, "01 - 東京事変 - 群青日和", n.Name(0, "東京事変 - 群青日和"))
	assert.Equal(t, "02 - Motörhead", n.Name(1, "Motörhead"))
}

func TestNamerIndexWidth(t *testing.T) {
	small := NewNamer(3)
	assert.True(t, strings.HasPrefix(small.Name(0, "x"), "01 - "))

	large := NewNamer(120)
	assert.True(t, strings.HasPrefix(large.Name(0, "x"), "001 - "))
	assert.True(t, strings.HasPrefix(large.Name(99, "x"), "100 - "))
}

func TestNamerTruncatesWithoutSplittingGraphemes(t *testing.T) {
	n := NewNamer(1)
	// 99 ASCII chars then a two-codepoint flag emoji; the flag must survive
	// or be dropped whole, never halved.
	label := strings.Repeat("a", 99) + "\U0001F1EB\U0001F1F7" + strings.Repeat("b", 20)
	name := n.Name(0, label)

	trimmed := strings.TrimPrefix(name, "01 - ")
	assert.LessOrEqual(t, len([]rune(trimmed)), 101)
	assert.NotContains(t, trimmed, "b")
	assert.True(t, strings.HasSuffix(trimmed, "\U0001F1EB\U0001F1F7"))
}

func TestNamerCollisionSuffix(t *testing.T) {
	n := NewNamer(3)
	first := n.Name(0, "Same")
	second := n.Name(0, "Same")
	third := n.Name(0, "Same")
	assert.Equal(t, "01 - Same", first)
	assert.Equal(t, "01 - Same (2)", second)
	assert.Equal(t, "01 - Same (3)", third)
}

func TestNamerDistinctLabelsSameSanitized(t *testing.T) {
	// Different raw labels landing on the same sanitized text still yield
	// distinct names via the index prefix.
	n := NewNamer(2)
	a := n.Name(0, "A/B")
	b := n.Name(1, "A:B")
	assert.NotEqual(t, a, b)
}

func TestNamerDeterministic(t *testing.T) {
	a := NewNamer(5).Name(3, " Mixed / Label ")
	b := NewNamer(5).Name(3, " Mixed / Label ")
	assert.Equal(t, a, b)
}
