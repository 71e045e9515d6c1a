package tracklist

import (
	"fmt"
	"time"
)

// ParseError reports a malformed tracklist line. Line 0 means the problem
// concerns the whole file rather than one line.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("tracklist: %s", e.Reason)
	}
	return fmt.Sprintf("tracklist: line %d %q: %s", e.Line, e.Text, e.Reason)
}

// OrderError reports two entries whose offsets are duplicated or out of
// order. A tracklist written out of order is treated as an authoring mistake,
// never silently reordered.
type OrderError struct {
	FirstLine    int
	SecondLine   int
	FirstOffset  time.Duration
	SecondOffset time.Duration
}

func (e *OrderError) Error() string {
	if e.FirstOffset == e.SecondOffset {
		return fmt.Sprintf("tracklist: lines %d and %d share the offset %s",
			e.FirstLine, e.SecondLine, FormatOffset(e.FirstOffset))
	}
	return fmt.Sprintf("tracklist: line %d (%s) is not after line %d (%s); entries must be in ascending order",
		e.SecondLine, FormatOffset(e.SecondOffset), e.FirstLine, FormatOffset(e.FirstOffset))
}
