package splitter

import (
	"errors"
	"fmt"
	"time"

	"github.com/MimeLyc/yt-audio-splitter/internal/tracklist"
)

// RangeError reports a tracklist entry whose offset lies at or beyond the
// end of the source, which would make its segment empty or negative.
type RangeError struct {
	Entry          tracklist.Entry
	SourceDuration time.Duration
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("entry %q (line %d) starts at %s, at or beyond the source end %s",
		e.Entry.Label, e.Entry.Line,
		tracklist.FormatOffset(e.Entry.Offset), tracklist.FormatOffset(e.SourceDuration))
}

// Plan turns validated entries plus the decoded source duration into a
// gap-free sequence of segments: each entry runs until the next entry's
// offset, the last until the source end. Content before the first offset is
// dropped. Plan performs no I/O.
func Plan(entries []tracklist.Entry, sourceDuration time.Duration) ([]Segment, error) {
	if len(entries) == 0 {
		return nil, errors.New("no entries to plan")
	}
	last := entries[len(entries)-1]
	if last.Offset >= sourceDuration {
		return nil, &RangeError{Entry: last, SourceDuration: sourceDuration}
	}

	namer := NewNamer(len(entries))
	segments := make([]Segment, len(entries))
	for i, entry := range entries {
		end := sourceDuration
		if i < len(entries)-1 {
			end = entries[i+1].Offset
		}
		segments[i] = Segment{
			Index: i,
			Start: entry.Offset,
			End:   end,
			Name:  namer.Name(i, entry.Label),
		}
	}
	return segments, nil
}
