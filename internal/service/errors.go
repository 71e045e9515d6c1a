package service

import (
	"errors"

	"github.com/MimeLyc/yt-audio-splitter/internal/config"
	"github.com/MimeLyc/yt-audio-splitter/internal/media"
	"github.com/MimeLyc/yt-audio-splitter/internal/source"
	"github.com/MimeLyc/yt-audio-splitter/internal/splitter"
	"github.com/MimeLyc/yt-audio-splitter/internal/tracklist"
)

type ErrorType int

const (
	ErrUnknown ErrorType = iota
	ErrConfig
	ErrParse
	ErrOrder
	ErrRange
	ErrDownload
	ErrEncode
)

func (t ErrorType) String() string {
	switch t {
	case ErrConfig:
		return "Config"
	case ErrParse:
		return "Parse"
	case ErrOrder:
		return "Order"
	case ErrRange:
		return "Range"
	case ErrDownload:
		return "Download"
	case ErrEncode:
		return "Encode"
	default:
		return "Unknown"
	}
}

// Classify places any error raised during a run into the taxonomy.
func Classify(err error) ErrorType {
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return ErrConfig
	}
	var parseErr *tracklist.ParseError
	if errors.As(err, &parseErr) {
		return ErrParse
	}
	var orderErr *tracklist.OrderError
	if errors.As(err, &orderErr) {
		return ErrOrder
	}
	var rangeErr *splitter.RangeError
	if errors.As(err, &rangeErr) {
		return ErrRange
	}
	var dlErr *source.DownloadError
	if errors.As(err, &dlErr) {
		return ErrDownload
	}
	var encErr *media.EncodeError
	if errors.As(err, &encErr) {
		return ErrEncode
	}
	return ErrUnknown
}

// Advice returns error handling advice for the user.
func Advice(t ErrorType) string {
	switch t {
	case ErrConfig:
		return "Check the flag values, SPLITTER_* environment variables and splitter.toml"
	case ErrParse:
		return "Check the named tracklist line; entries look like \"0:03:45 - Title\" and comments start with #"
	case ErrOrder:
		return "Tracklist entries must be in strictly ascending offset order; fix the named lines instead of relying on re-sorting"
	case ErrRange:
		return "The named entry starts at or after the end of the audio; check the timestamps against the video length"
	case ErrDownload:
		return "Check the URL and network connectivity, and that yt-dlp and ffmpeg are installed and up to date"
	case ErrEncode:
		return "Check that ffmpeg is installed with libmp3lame and that the output directory is writable"
	default:
		return "Review the detailed error information above"
	}
}

// Process exit codes. They distinguish "nothing ran" from "everything ran,
// some failed" from "everything failed".
const (
	ExitOK         = 0
	ExitValidation = 1
	ExitDownload   = 2
	ExitPartial    = 3
	ExitAllFailed  = 4
)

// ExitCode maps a finished run to its process exit code.
func ExitCode(report *splitter.BatchReport, err error) int {
	if err != nil {
		if Classify(err) == ErrDownload {
			return ExitDownload
		}
		return ExitValidation
	}
	if report == nil || len(report.Results) == 0 {
		return ExitValidation
	}
	if report.Failed() == 0 {
		return ExitOK
	}
	if report.AllFailed() {
		return ExitAllFailed
	}
	return ExitPartial
}
