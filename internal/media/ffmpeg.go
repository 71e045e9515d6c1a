package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/MimeLyc/yt-audio-splitter/pkg/file"
	"github.com/MimeLyc/yt-audio-splitter/pkg/log"
)

type ffmpeg struct {
	ffmpegCmd  string
	ffprobeCmd string
	sampleRate int
	channels   int
}

func NewFfmpeg() ffmpeg {
	return ffmpeg{
		ffmpegCmd:  "ffmpeg",
		ffprobeCmd: "ffprobe",
		sampleRate: DefaultSampleRate,
		channels:   DefaultChannels,
	}
}

// Probe reads the container duration of an encoded audio file.
func (ff ffmpeg) Probe(ctx context.Context, path string) (time.Duration, error) {
	cmdPath, err := exec.LookPath(ff.ffprobeCmd)
	if err != nil {
		return 0, err
	}
	cmd := exec.CommandContext(ctx, cmdPath, ff.probeArgs(path)...)

	output, err := cmd.Output()
	if err != nil {
		log.Error("Failed to run ffprobe: %v", err)
		return 0, err
	}

	var probeResult struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &probeResult); err != nil {
		log.Error("Failed to parse ffprobe output: %v", err)
		return 0, err
	}

	seconds, err := strconv.ParseFloat(probeResult.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe duration %q: %w", probeResult.Format.Duration, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// Decode loads an encoded audio file fully into memory as raw PCM. This is
// the expensive step and runs once per source file.
func (ff ffmpeg) Decode(ctx context.Context, path string) (*Clip, error) {
	cmdPath, err := exec.LookPath(ff.ffmpegCmd)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, cmdPath, ff.decodeArgs(path)...)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode of %s: %w: %s", path, err, stderr.String())
	}
	return NewClip(ff.sampleRate, ff.channels, out.Bytes()), nil
}

// EncodeMP3 writes a PCM buffer as an mp3 at the given bitrate. The encode
// goes to a temp file in the target directory first and is renamed into
// place once complete, so a cancelled or failed encode never leaves a
// half-written file at destPath.
func (ff ffmpeg) EncodeMP3(ctx context.Context, pcm []byte, kbps int, destPath string) error {
	cmdPath, err := exec.LookPath(ff.ffmpegCmd)
	if err != nil {
		return &EncodeError{Dest: destPath, Err: err}
	}

	tmpPath := file.ReplaceExt(destPath, ".partial.mp3")
	cmd := exec.CommandContext(ctx, cmdPath, ff.encodeArgs(kbps, tmpPath)...)
	cmd.Stdin = bytes.NewReader(pcm)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(tmpPath)
		return &EncodeError{Dest: destPath, Err: fmt.Errorf("%w: %s", err, stderr.String())}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return &EncodeError{Dest: destPath, Err: err}
	}
	return nil
}

func (ff ffmpeg) probeArgs(path string) []string {
	return []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	}
}

func (ff ffmpeg) decodeArgs(path string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(ff.sampleRate),
		"-ac", strconv.Itoa(ff.channels),
		"pipe:1",
	}
}

func (ff ffmpeg) encodeArgs(kbps int, targetPath string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-f", "s16le",
		"-ar", strconv.Itoa(ff.sampleRate),
		"-ac", strconv.Itoa(ff.channels),
		"-i", "pipe:0",
		"-codec:a", "libmp3lame",
		"-b:a", strconv.Itoa(kbps) + "k",
		"-f", "mp3",
		targetPath,
	}
}
