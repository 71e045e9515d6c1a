package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"github.com/MimeLyc/yt-audio-splitter/internal/config"
	"github.com/MimeLyc/yt-audio-splitter/internal/service"
	"github.com/MimeLyc/yt-audio-splitter/pkg/log"
)

type Args struct {
	URL          string `arg:"positional,required" help:"YouTube video URL"`
	Tracklist    string `arg:"positional,required" help:".txt file with timestamps and track names"`
	OutputDir    string `arg:"-o,--output-dir" help:"output directory for tracks (default: output)"`
	Quality      int    `arg:"-q,--quality" help:"MP3 quality in kbps: 128, 192, 256 or 320 (default: 320)"`
	KeepOriginal bool   `arg:"-k,--keep-original" help:"also write the complete source audio as original.mp3"`
}

func (Args) Description() string {
	return "Downloads audio from a YouTube video and splits it into tracks along a tracklist."
}

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	var args Args
	arg.MustParse(&args)

	cfg, err := config.New(config.Overrides{
		OutputDir:    args.OutputDir,
		Quality:      args.Quality,
		KeepOriginal: args.KeepOriginal,
	})
	if err != nil {
		return fail(err)
	}

	level := log.ParseLevel(cfg.LogLevel)
	log.InitLogger(level)
	if logFile := os.Getenv("SPLITTER_LOG_FILE"); logFile != "" {
		fileLogger, err := log.NewFileLogger(logFile, level)
		if err != nil {
			log.Warn("Failed to open log file %s: %v", logFile, err)
		} else {
			defer fileLogger.Close()
			log.UseLogger(fileLogger.Logger)
		}
	}

	// Ctrl-C stops dispatch of further segments; finished ones stay on disk.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := service.New(cfg).Run(ctx, args.URL, args.Tracklist)
	if err != nil {
		return fail(err)
	}

	fmt.Print(service.RenderSummary(report))
	return service.ExitCode(report, nil)
}

func fail(err error) int {
	kind := service.Classify(err)
	log.Error("%v", err)
	log.Error("%s", service.Advice(kind))
	return service.ExitCode(nil, err)
}
