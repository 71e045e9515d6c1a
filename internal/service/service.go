package service

import (
	"context"
	"time"

	"github.com/MimeLyc/yt-audio-splitter/internal/config"
	"github.com/MimeLyc/yt-audio-splitter/internal/history"
	"github.com/MimeLyc/yt-audio-splitter/internal/media"
	"github.com/MimeLyc/yt-audio-splitter/internal/source"
	"github.com/MimeLyc/yt-audio-splitter/internal/splitter"
	"github.com/MimeLyc/yt-audio-splitter/internal/tracklist"
	"github.com/MimeLyc/yt-audio-splitter/pkg/log"
)

// Fetcher is the acquisition capability the service needs; the YouTube
// source satisfies it, as does a fake in tests.
type Fetcher interface {
	FetchAndDecode(ctx context.Context, url string) (*source.Audio, error)
	Cleanup()
}

type SplitService struct {
	cfg     config.Config
	fetcher Fetcher
	enc     splitter.Encoder
}

func New(cfg config.Config) *SplitService {
	ff := media.NewFfmpeg()
	return &SplitService{
		cfg:     cfg,
		fetcher: source.NewYouTube(ff, cfg.QualityKbps),
		enc:     ff,
	}
}

// NewWithCollaborators wires explicit collaborators, e.g. fakes for tests.
func NewWithCollaborators(cfg config.Config, fetcher Fetcher, enc splitter.Encoder) *SplitService {
	return &SplitService{
		cfg:     cfg,
		fetcher: fetcher,
		enc:     enc,
	}
}

// Run executes one split end to end: the tracklist is parsed and validated
// before any network activity, the source is fetched and decoded exactly
// once, then every planned segment is exported. The returned report is
// non-nil whenever planning succeeded, even under partial export failure.
func (s *SplitService) Run(ctx context.Context, url, tracklistPath string) (*splitter.BatchReport, error) {
	entries, err := tracklist.ParseFile(tracklistPath)
	if err != nil {
		return nil, err
	}
	log.Info("Parsed %d tracks from %s", len(entries), tracklistPath)
	for _, e := range entries {
		log.Debug("  %s - %s", tracklist.FormatOffset(e.Offset), e.Label)
	}

	store := s.openHistory()
	if store != nil {
		defer store.Close()
		if n, err := store.CountRuns(ctx, url); err == nil && n > 0 {
			log.Info("This URL was split %d time(s) before", n)
		}
	}

	audio, err := s.fetcher.FetchAndDecode(ctx, url)
	if err != nil {
		return nil, err
	}
	defer s.fetcher.Cleanup()

	segments, err := splitter.Plan(entries, audio.Clip.Duration())
	if err != nil {
		return nil, err
	}
	log.Info("Planned %d segments over %s", len(segments), audio.Clip.Duration().Round(time.Second))

	report, err := splitter.NewExporter(s.enc, s.cfg).Export(ctx, audio.Clip, segments)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if _, err := store.RecordRun(ctx, history.Run{
			URL:         url,
			Title:       audio.Title,
			OutputDir:   s.cfg.OutputDir,
			QualityKbps: s.cfg.QualityKbps,
			Report:      report,
		}); err != nil {
			log.Warn("Failed to record run history: %v", err)
		}
	}

	return report, nil
}

// openHistory returns the run history store, or nil when history is disabled
// or unavailable. History never fails a run.
func (s *SplitService) openHistory() *history.Store {
	if s.cfg.HistoryDB == "" {
		return nil
	}
	store, err := history.Open(s.cfg.HistoryDB)
	if err != nil {
		log.Warn("Run history unavailable: %v", err)
		return nil
	}
	return store
}
