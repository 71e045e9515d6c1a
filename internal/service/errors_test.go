package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MimeLyc/yt-audio-splitter/internal/config"
	"github.com/MimeLyc/yt-audio-splitter/internal/media"
	"github.com/MimeLyc/yt-audio-splitter/internal/source"
	"github.com/MimeLyc/yt-audio-splitter/internal/splitter"
	"github.com/MimeLyc/yt-audio-splitter/internal/tracklist"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorType
	}{
		{
			name: "config",
			err:  &config.ConfigError{Field: "quality", Reason: "unsupported"},
			want: ErrConfig,
		},
		{
			name: "parse",
			err:  &tracklist.ParseError{Line: 3, Text: "garbage", Reason: "no timestamp"},
			want: ErrParse,
		},
		{
			name: "order",
			err:  &tracklist.OrderError{FirstLine: 1, SecondLine: 2},
			want: ErrOrder,
		},
		{
			name: "range",
			err:  &splitter.RangeError{Entry: tracklist.Entry{Offset: time.Hour}, SourceDuration: time.Minute},
			want: ErrRange,
		},
		{
			name: "download",
			err:  &source.DownloadError{URL: "u", Err: errors.New("403")},
			want: ErrDownload,
		},
		{
			name: "encode",
			err:  &media.EncodeError{Dest: "x.mp3", Err: errors.New("boom")},
			want: ErrEncode,
		},
		{
			name: "wrapped download",
			err:  fmt.Errorf("run failed: %w", &source.DownloadError{URL: "u", Err: errors.New("timeout")}),
			want: ErrDownload,
		},
		{
			name: "unknown",
			err:  errors.New("something else"),
			want: ErrUnknown,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestAdviceCoversEveryType(t *testing.T) {
	for _, typ := range []ErrorType{ErrUnknown, ErrConfig, ErrParse, ErrOrder, ErrRange, ErrDownload, ErrEncode} {
		assert.NotEmpty(t, Advice(typ), "advice for %s", typ)
	}
}

func reportWith(failures ...int) *splitter.BatchReport {
	failed := make(map[int]bool, len(failures))
	for _, i := range failures {
		failed[i] = true
	}
	report := &splitter.BatchReport{}
	for i := 0; i < 3; i++ {
		r := splitter.ExportResult{Segment: splitter.Segment{Index: i}}
		if failed[i] {
			r.Err = errors.New("failed")
		} else {
			r.Path = fmt.Sprintf("out/%02d.mp3", i+1)
		}
		report.Results = append(report.Results, r)
	}
	return report
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(reportWith(), nil))
	assert.Equal(t, ExitPartial, ExitCode(reportWith(1), nil))
	assert.Equal(t, ExitAllFailed, ExitCode(reportWith(0, 1, 2), nil))

	assert.Equal(t, ExitValidation, ExitCode(nil, &tracklist.ParseError{Line: 1}))
	assert.Equal(t, ExitValidation, ExitCode(nil, &splitter.RangeError{}))
	assert.Equal(t, ExitValidation, ExitCode(nil, errors.New("unknown")))
	assert.Equal(t, ExitDownload, ExitCode(nil, &source.DownloadError{URL: "u", Err: errors.New("dns")}))

	// A nil or empty report without an error means nothing was exported.
	assert.Equal(t, ExitValidation, ExitCode(nil, nil))
	assert.Equal(t, ExitValidation, ExitCode(&splitter.BatchReport{}, nil))
}
