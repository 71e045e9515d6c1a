package tracklist

import (
	"fmt"
	"time"
)

// Entry is one timestamp/label pair read from a tracklist file. Offset is
// measured from the start of the source; Line is the 1-based source line,
// kept for diagnostics.
type Entry struct {
	Offset time.Duration
	Label  string
	Line   int
}

// FormatOffset renders an offset in the canonical H:MM:SS form accepted by
// the parser.
func FormatOffset(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
