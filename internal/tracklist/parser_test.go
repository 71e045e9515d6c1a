package tracklist

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# dj set rip",
		"",
		"0:00:00 - Opening",
		"0:01:30 | Second Track",
		"3:00 : Third",
		"1:02:03 - Deep Cut",
	}, "\n")

	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, time.Duration(0), entries[0].Offset)
	assert.Equal(t, "Opening", entries[0].Label)
	assert.Equal(t, 3, entries[0].Line)

	assert.Equal(t, 90*time.Second, entries[1].Offset)
	assert.Equal(t, "Second Track", entries[1].Label)

	assert.Equal(t, 3*time.Minute, entries[2].Offset)
	assert.Equal(t, "Third", entries[2].Label)

	assert.Equal(t, time.Hour+2*time.Minute+3*time.Second, entries[3].Offset)
	assert.Equal(t, "Deep Cut", entries[3].Label)
}

func TestParseColonSeparator(t *testing.T) {
	// The colon after the last numeric group belongs to the label separator,
	// not the time token.
	entries, err := Parse(strings.NewReader("1:02:Intro"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, time.Minute+2*time.Second, entries[0].Offset)
	assert.Equal(t, "Intro", entries[0].Label)
}

func TestParseLabelStartingWithDigits(t *testing.T) {
	entries, err := Parse(strings.NewReader("0:30 - 99 Problems"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 30*time.Second, entries[0].Offset)
	assert.Equal(t, "99 Problems", entries[0].Label)
}

func TestParseDashVariants(t *testing.T) {
	input := "0:10 – En Dash\n0:20 — Em Dash\n"
	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "En Dash", entries[0].Label)
	assert.Equal(t, "Em Dash", entries[1].Label)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"no timestamp", "Intro - 0:00"},
		{"single group", "90 - Track"},
		{"four groups", "1:02:03:04 - Track"},
		{"minutes out of range", "1:60:00 - Track"},
		{"seconds out of range", "0:61 - Track"},
		{"one digit seconds", "1:5 - Track"},
		{"three digit minutes", "100:00 - Track"},
		{"missing separator", "0:00 Track"},
		{"bare timestamp", "12:34"},
		{"empty file", "# only a comment\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseErrorNamesLine(t *testing.T) {
	_, err := Parse(strings.NewReader("0:00 - ok\nbroken line\n"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, "broken line", parseErr.Text)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseDuplicateOffset(t *testing.T) {
	_, err := Parse(strings.NewReader("0:01:30 - A\n0:01:30 - B\n"))
	var orderErr *OrderError
	require.ErrorAs(t, err, &orderErr)
	assert.Equal(t, 1, orderErr.FirstLine)
	assert.Equal(t, 2, orderErr.SecondLine)
	assert.Contains(t, err.Error(), "share the offset")
}

func TestParseOutOfOrder(t *testing.T) {
	_, err := Parse(strings.NewReader("0:03:00 - A\n0:01:00 - B\n"))
	var orderErr *OrderError
	require.ErrorAs(t, err, &orderErr)
	assert.Equal(t, 1, orderErr.FirstLine)
	assert.Equal(t, 2, orderErr.SecondLine)
}

func TestParseRoundTrip(t *testing.T) {
	input := "0:00:00 - A\n0:01:30 - B\n1:03:00 - C\n"
	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(FormatOffset(e.Offset))
		b.WriteString(" - ")
		b.WriteString(e.Label)
		b.WriteString("\n")
	}

	again, err := Parse(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, again, len(entries))
	for i := range entries {
		assert.Equal(t, entries[i].Offset, again[i].Offset)
		assert.Equal(t, entries[i].Label, again[i].Label)
	}
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatOffset(0))
	assert.Equal(t, "0:01:30", FormatOffset(90*time.Second))
	assert.Equal(t, "2:05:07", FormatOffset(2*time.Hour+5*time.Minute+7*time.Second))
}
