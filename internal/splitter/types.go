package splitter

import (
	"time"
)

// OutputExt is the extension of every encoded output file.
const OutputExt = ".mp3"

// Segment is one half-open interval [Start, End) of the source, destined for
// one output file. Index equals the entry's rank in the tracklist and never
// changes.
type Segment struct {
	Index int
	Start time.Duration
	End   time.Duration
	Name  string // filename without extension
}

func (s Segment) Duration() time.Duration {
	return s.End - s.Start
}

// ExportResult is the terminal outcome for one segment: either Path is set
// or Err is.
type ExportResult struct {
	Segment Segment
	Path    string
	Err     error
}

func (r ExportResult) OK() bool {
	return r.Err == nil
}

// BatchReport collects per-segment outcomes in segment-index order, plus the
// outcome of the optional original-audio write.
type BatchReport struct {
	Results      []ExportResult
	OriginalPath string
	OriginalErr  error
}

func (b *BatchReport) Succeeded() int {
	n := 0
	for _, r := range b.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

func (b *BatchReport) Failed() int {
	return len(b.Results) - b.Succeeded()
}

func (b *BatchReport) AllFailed() bool {
	return len(b.Results) > 0 && b.Succeeded() == 0
}
