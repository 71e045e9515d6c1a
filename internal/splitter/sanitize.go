package splitter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Characters that common filesystems reject, plus control characters.
var illegalChars = regexp.MustCompile(`[/\\:*?"<>|]|\p{Cc}`)

// maxLabelGraphemes bounds the label part of an output name.
const maxLabelGraphemes = 100

// Namer produces the filesystem-safe, collision-free, lexically ordered name
// fragments for one run. It is deterministic and never fails; unicode outside
// the illegal set passes through unchanged.
type Namer struct {
	width int
	seen  map[string]struct{}
}

// NewNamer sizes the index prefix for count tracks. The prefix is at least
// two digits wide so directory listings sort correctly for the common case.
func NewNamer(count int) *Namer {
	width := len(strconv.Itoa(count))
	if width < 2 {
		width = 2
	}
	return &Namer{
		width: width,
		seen:  make(map[string]struct{}),
	}
}

// Name builds the output name (without extension) for the 0-based index and
// raw label.
func (n *Namer) Name(index int, rawLabel string) string {
	label := norm.NFC.String(strings.TrimSpace(rawLabel))
	label = illegalChars.ReplaceAllString(label, " ")
	label = strings.Join(strings.Fields(label), " ")
	label = strings.Trim(label, ". ")
	if label == "" {
		label = "Track " + strconv.Itoa(index+1)
	}
	label = truncateGraphemes(label, maxLabelGraphemes)

	name := fmt.Sprintf("%0*d - %s", n.width, index+1, label)
	base := name
	for suffix := 2; ; suffix++ {
		if _, taken := n.seen[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s (%d)", base, suffix)
	}
	n.seen[name] = struct{}{}
	return name
}

// truncateGraphemes cuts s to at most max grapheme clusters, never splitting
// a multi-code-point cluster.
func truncateGraphemes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	g := uniseg.NewGraphemes(s)
	end := 0
	for count := 0; g.Next(); {
		count++
		if count > max {
			break
		}
		_, end = g.Positions()
	}
	return strings.TrimRight(s[:end], " .")
}
