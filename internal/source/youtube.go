package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"
	"golang.org/x/sync/singleflight"

	"github.com/MimeLyc/yt-audio-splitter/internal/media"
	"github.com/MimeLyc/yt-audio-splitter/pkg/file"
	"github.com/MimeLyc/yt-audio-splitter/pkg/log"
)

// DownloadError reports that the source could not be fetched or decoded; no
// segment can be produced without it.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to acquire source %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Decoder is what the source needs from the media layer.
type Decoder interface {
	Decode(ctx context.Context, path string) (*media.Clip, error)
	Probe(ctx context.Context, path string) (time.Duration, error)
}

// Audio is one acquired source: the decoded clip plus the downloaded file it
// came from.
type Audio struct {
	Clip  *media.Clip
	Title string
	Path  string
}

// YouTube downloads a video's audio with yt-dlp and decodes it into memory.
// Acquisition happens exactly once per URL regardless of caller count; the
// cost stays constant in the number of requested segments.
type YouTube struct {
	decoder Decoder
	quality int
	baseDir string

	group singleflight.Group

	mu       sync.Mutex
	workDirs []string
}

func NewYouTube(decoder Decoder, qualityKbps int) *YouTube {
	return &YouTube{
		decoder: decoder,
		quality: qualityKbps,
		baseDir: os.TempDir(),
	}
}

// FetchAndDecode returns the decoded audio for url, downloading and decoding
// at most once.
func (y *YouTube) FetchAndDecode(ctx context.Context, url string) (*Audio, error) {
	v, err, _ := y.group.Do(url, func() (any, error) {
		return y.fetch(ctx, url)
	})
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	return v.(*Audio), nil
}

func (y *YouTube) fetch(ctx context.Context, url string) (*Audio, error) {
	workDir := filepath.Join(y.baseDir, "yt-audio-splitter-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, err
	}
	y.mu.Lock()
	y.workDirs = append(y.workDirs, workDir)
	y.mu.Unlock()

	log.Info("Downloading audio from %s (mp3 %dkbps)", url, y.quality)

	var title string
	dl := ytdlp.New().
		NoPlaylist().
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality(strconv.Itoa(y.quality) + "K").
		Output(filepath.Join(workDir, "source.%(ext)s"))
	dl.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
		if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" {
			title = *update.Info.Title
		}
		if update.TotalBytes > 0 {
			log.Debug("Download progress: %s of %s",
				humanize.Bytes(uint64(update.DownloadedBytes)),
				humanize.Bytes(uint64(update.TotalBytes)))
		}
	})

	if _, err := dl.Run(ctx, url); err != nil {
		return nil, err
	}

	audioPath, err := y.findDownloaded(workDir)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(audioPath); err == nil {
		log.Info("Downloaded %s (%s)", filepath.Base(audioPath), humanize.Bytes(uint64(info.Size())))
	}
	if title != "" {
		log.Info("Video title: %s", title)
	}

	if d, err := y.decoder.Probe(ctx, audioPath); err == nil {
		log.Info("Source duration: %s", d.Round(time.Second))
	}

	log.Info("Decoding source; this may take a moment for long sets")
	clip, err := y.decoder.Decode(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	log.Info("Decoded %s of PCM (%s)", humanize.Bytes(uint64(clip.Size())), clip.Duration().Round(time.Second))

	return &Audio{
		Clip:  clip,
		Title: title,
		Path:  audioPath,
	}, nil
}

func (y *YouTube) findDownloaded(workDir string) (string, error) {
	files, err := file.FindByExt(workDir, ".mp3")
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", errors.New("yt-dlp finished but produced no mp3 file")
	}
	return files[0], nil
}

// Cleanup removes every temp work dir created by this source. Safe to call
// multiple times.
func (y *YouTube) Cleanup() {
	y.mu.Lock()
	dirs := y.workDirs
	y.workDirs = nil
	y.mu.Unlock()

	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn("Failed to remove temp dir %s: %v", dir, err)
		}
	}
}
