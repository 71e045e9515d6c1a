package splitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/MimeLyc/yt-audio-splitter/internal/config"
	"github.com/MimeLyc/yt-audio-splitter/internal/media"
	"github.com/MimeLyc/yt-audio-splitter/pkg/log"
)

// Encoder is the single encode capability the exporter needs. Any backend
// that turns a PCM slice into an audio file at destPath satisfies it,
// including a fake in tests.
type Encoder interface {
	EncodeMP3(ctx context.Context, pcm []byte, kbps int, destPath string) error
}

// errSkipped marks segments whose export was never dispatched because the
// run was cancelled.
var errSkipped = errors.New("skipped: run cancelled")

const originalName = "original"

// Exporter fans the planned segments out over a bounded worker pool. The
// decoded clip is shared read-only; every worker writes to its own result
// slot and its own output path.
type Exporter struct {
	enc     Encoder
	cfg     config.Config
	workers int
}

func NewExporter(enc Encoder, cfg config.Config) *Exporter {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Exporter{
		enc:     enc,
		cfg:     cfg,
		workers: workers,
	}
}

// Export encodes every segment from the already-decoded clip into the output
// directory. The source is never re-fetched or re-decoded here; acquisition
// cost stays constant no matter how many segments are requested. One
// segment's failure is recorded in its result and does not stop the others.
// Cancellation stops dispatch of further segments; in-flight encodes finish
// or discard their temp files, and completed segments stay on disk.
func (e *Exporter) Export(ctx context.Context, clip *media.Clip, segments []Segment) (*BatchReport, error) {
	if err := os.MkdirAll(e.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir %s: %w", e.cfg.OutputDir, err)
	}

	report := &BatchReport{Results: make([]ExportResult, len(segments))}
	for i, seg := range segments {
		report.Results[i] = ExportResult{Segment: seg, Err: errSkipped}
	}

	if e.cfg.KeepOriginal {
		e.exportOriginal(ctx, clip, report)
	}

	g := new(errgroup.Group)
	g.SetLimit(e.workers)

	total := len(segments)
	for _, seg := range segments {
		if ctx.Err() != nil {
			log.Warn("Cancelled; %d of %d segments not dispatched", total-seg.Index, total)
			break
		}
		g.Go(func() error {
			report.Results[seg.Index] = e.exportOne(ctx, clip, seg, total)
			return nil
		})
	}
	_ = g.Wait()

	return report, nil
}

func (e *Exporter) exportOne(ctx context.Context, clip *media.Clip, seg Segment, total int) ExportResult {
	dest := filepath.Join(e.cfg.OutputDir, seg.Name+OutputExt)
	pcm := clip.Slice(seg.Start, seg.End)

	log.Info("Exporting %d/%d: %s (%s)", seg.Index+1, total, seg.Name, seg.Duration())
	if err := e.enc.EncodeMP3(ctx, pcm, e.cfg.QualityKbps, dest); err != nil {
		log.Error("Failed to export %q: %v", seg.Name, err)
		return ExportResult{Segment: seg, Err: err}
	}
	return ExportResult{Segment: seg, Path: dest}
}

// exportOriginal writes the complete decoded source once, outside the
// per-segment loop. Its failure never affects segment outcomes.
func (e *Exporter) exportOriginal(ctx context.Context, clip *media.Clip, report *BatchReport) {
	dest := filepath.Join(e.cfg.OutputDir, originalName+OutputExt)
	log.Info("Keeping original audio as %s", dest)
	if err := e.enc.EncodeMP3(ctx, clip.PCM(), e.cfg.QualityKbps, dest); err != nil {
		log.Error("Failed to keep original audio: %v", err)
		report.OriginalErr = err
		return
	}
	report.OriginalPath = dest
}
