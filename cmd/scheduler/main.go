package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"voice-scheduler-go/internal/config"
	"voice-scheduler-go/internal/extractor"
	"voice-scheduler-go/internal/gcalendar"
	"voice-scheduler-go/internal/interactive"
	"voice-scheduler-go/internal/llm"
	"voice-scheduler-go/internal/logger"
	"voice-scheduler-go/internal/manifest"
	"voice-scheduler-go/internal/pipeline"
	"voice-scheduler-go/internal/transcription"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "voice-scheduler-go").Info("starting")

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx := context.Background()

	var provider transcription.Provider
	if cfg.MockTranscribe {
		log.Info("mock transcription mode ON")
		provider = transcription.Mock{}
	} else {
		provider = transcription.NewClient(cfg.TranscribeURL, cfg.HTTPTimeout)
	}

	var client llm.Client
	if cfg.MockLLM {
		log.Info("mock LLM mode ON")
		client = llm.Mock{}
	} else {
		client = llm.NewGateway(cfg.LLMGatewayURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.HTTPTimeout)
	}
	ext := extractor.New(client)

	var completer *interactive.Completer
	if cfg.Interactive {
		var enhancer llm.Client
		if cfg.EnhanceReplies {
			enhancer = client
		}
		completer = interactive.NewCompleter(&interactive.ConsolePrompter{}, enhancer)
	}

	var sink gcalendar.Sink
	if cfg.CalendarWrite {
		gs, err := gcalendar.NewGoogleSink(ctx, cfg.CredentialsFile, cfg.TokenFile, cfg.CalendarID)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize calendar sink")
		}
		sink = gs
	}

	jobs, err := collectJobs(cfg)
	if err != nil {
		log.WithError(err).Fatal("no audio references to process")
	}

	p := pipeline.New(cfg, provider, ext, completer, sink)

	// Each audio reference is an independent, fully sequential run; one
	// failure never aborts the rest of the batch.
	for _, job := range jobs {
		fmt.Printf("\nProcessing file: %s\n%s\n", job.Label, strings.Repeat("=", 30))
		res, err := p.Run(ctx, job.AudioRef)
		if err != nil {
			log.WithError(err).WithField("audio_ref", job.AudioRef).Warn("pipeline run failed")
			continue
		}
		fmt.Println("\n" + res.Summary)
		if res.EventLink != "" {
			fmt.Printf("Event created: %s\n", res.EventLink)
		}
	}

	if sink != nil && cfg.ListUpcomingMax > 0 {
		printUpcoming(ctx, sink, cfg.ListUpcomingMax, log)
	}
}

func collectJobs(cfg *config.Config) ([]manifest.Job, error) {
	if args := os.Args[1:]; len(args) > 0 {
		jobs := make([]manifest.Job, 0, len(args))
		for _, a := range args {
			jobs = append(jobs, manifest.Job{Label: a, AudioRef: a})
		}
		return jobs, nil
	}
	if cfg.ManifestPath != "" {
		return manifest.Load(cfg.ManifestPath)
	}
	return nil, fmt.Errorf("pass audio references as arguments or set MANIFEST_PATH")
}

func printUpcoming(ctx context.Context, sink gcalendar.Sink, max int64, log *logger.Logger) {
	events, err := sink.ListUpcoming(ctx, max)
	if err != nil {
		log.WithError(err).Warn("could not list upcoming events")
		return
	}
	fmt.Printf("\nUpcoming events (%d):\n", len(events))
	for _, ev := range events {
		fmt.Printf("- %s  %s\n", ev.Start, ev.Summary)
	}
}
