// Package pipeline runs the background transcription flow for a job:
// fetch metadata, extract audio, transcribe, record the outcome.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"tubescribe/internal/download"
	"tubescribe/internal/store"
	"tubescribe/internal/transcribe"
	"tubescribe/pkg/models"
)

// Params carries everything a pipeline run needs.
type Params struct {
	JobID  string
	URL    string
	Format string
	Method string
	Model  string
}

// Transcriber dispatches an audio file to one or more backends.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, method string, opts transcribe.Options) *models.TranscriptionResult
}

// Orchestrator owns the job lifecycle from submission to a terminal state.
// Every stage checks the root context so server shutdown stops in-flight
// jobs at the next stage boundary.
type Orchestrator struct {
	store       store.Store
	downloader  download.Downloader
	transcriber Transcriber
	logger      *slog.Logger
	root        context.Context
}

func NewOrchestrator(ctx context.Context, s store.Store, d download.Downloader, t Transcriber, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:       s,
		downloader:  d,
		transcriber: t,
		logger:      logger,
		root:        ctx,
	}
}

// Start schedules the pipeline in the background and returns immediately.
// The job must already exist in the store.
func (o *Orchestrator) Start(params Params) {
	go o.run(params)
}

func (o *Orchestrator) run(params Params) {
	logger := o.logger.With("job_id", params.JobID, "url", params.URL)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline panic", "panic", r)
			o.store.Update(params.JobID, store.WithError(fmt.Sprintf("internal error: %v", r)))
		}
	}()

	ctx := o.root

	// Stage 1: video metadata. Absence fails the job before any download.
	o.store.Update(params.JobID, store.WithStatus(models.StatusFetchingInfo))
	meta, err := o.downloader.FetchMetadata(ctx, params.URL)
	if err != nil {
		logger.Error("metadata fetch failed", "error", err)
		o.store.Update(params.JobID, store.WithError("could not fetch video info"))
		return
	}
	logger.Info("video info fetched",
		"title", meta.Title,
		"duration_s", meta.Duration,
		"uploader", meta.Uploader,
		"view_count", meta.ViewCount)

	if o.cancelled(ctx, params.JobID, logger) {
		return
	}

	// Stage 2: audio extraction.
	o.store.Update(params.JobID, store.WithStatus(
		fmt.Sprintf("%s (%s)", models.StatusExtractingAudio, params.Format)))
	audioPath, err := o.downloader.ExtractAudio(ctx, params.URL, params.Format)
	if err != nil {
		logger.Error("audio extraction failed", "error", err)
		o.store.Update(params.JobID, store.WithError("audio extraction failed"))
		return
	}
	defer func() {
		if rmErr := os.Remove(audioPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn("audio cleanup failed", "path", audioPath, "error", rmErr)
		}
	}()
	logger.Info("audio extracted", "path", audioPath)

	if o.cancelled(ctx, params.JobID, logger) {
		return
	}

	// Stage 3: transcription. The coordinator never returns nil; backend
	// failures are carried inside the result.
	o.store.Update(params.JobID, store.WithStatus(
		fmt.Sprintf("%s (%s)", models.StatusTranscribing, params.Method)))
	res := o.transcriber.Transcribe(ctx, audioPath, params.Method, transcribe.Options{Model: params.Model})

	if !res.OK() {
		logger.Error("transcription failed", "method", params.Method, "error", res.FailureMessage())
		o.store.Update(params.JobID, store.WithError(res.FailureMessage()))
		return
	}

	o.store.Update(params.JobID, store.WithResult(res))
	logger.Info("job completed", "method", params.Method)
}

func (o *Orchestrator) cancelled(ctx context.Context, jobID string, logger *slog.Logger) bool {
	if ctx.Err() == nil {
		return false
	}
	logger.Warn("pipeline cancelled", "error", ctx.Err())
	o.store.Update(jobID, store.WithError("job cancelled during shutdown"))
	return true
}
