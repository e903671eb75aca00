// Package worker implements the asynchronous processing pipeline: it takes
// queued tasks, extracts document text, generates the summary and quiz
// through the AI backend and records the outcome on the study row.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/estudai/estudai-api/internal/document"
	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/generation"
	"github.com/estudai/estudai-api/internal/queue"
	"github.com/estudai/estudai-api/internal/storage"
	"github.com/estudai/estudai-api/internal/store"
)

// fallbackPrefixLen bounds the text sent to the model when chunking
// produces nothing usable.
const fallbackPrefixLen = 8000

// Extractor turns raw document bytes into plain text.
// *document.Loader is the production implementation.
type Extractor interface {
	Extract(filename string, data []byte) (string, error)
}

// Processor runs the pipeline for one task at a time. Every failure mode
// ends with the study in the failed state carrying a diagnostic, so no
// study is ever stuck in processing once its task has been consumed.
type Processor struct {
	studies   store.StudyStore
	files     storage.Storage
	extractor Extractor
	generator generation.Generator
	logger    *slog.Logger
}

// NewProcessor creates a Processor with the given collaborators.
// If logger is nil, a default logger will be used.
func NewProcessor(
	studies store.StudyStore,
	files storage.Storage,
	extractor Extractor,
	generator generation.Generator,
	logger *slog.Logger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		studies:   studies,
		files:     files,
		extractor: extractor,
		generator: generator,
		logger:    logger.With(slog.String("component", "worker_processor")),
	}
}

// Process handles one task end to end. Pipeline errors mark the study as
// failed and are returned for logging; the task itself is never requeued.
func (p *Processor) Process(ctx context.Context, task queue.Task) error {
	log := p.logger.With(slog.Int64("estudo_id", task.EstudoID))
	log.Info("processing task", slog.String("filename", task.Filename))

	segment, err := p.prepareText(ctx, task)
	if err != nil {
		return p.fail(ctx, task.EstudoID, err)
	}

	summary, err := p.generator.Summarize(ctx, segment)
	if err != nil {
		return p.fail(ctx, task.EstudoID, fmt.Errorf("summary generation failed: %w", err))
	}

	questions, err := p.generator.GenerateQuiz(ctx, segment)
	if err != nil {
		return p.fail(ctx, task.EstudoID, fmt.Errorf("quiz generation failed: %w", err))
	}

	batch := make([]*domain.Question, len(questions))
	for i := range questions {
		questions[i].StudyID = task.EstudoID
		batch[i] = &questions[i]
	}

	if err := p.studies.Complete(ctx, task.EstudoID, summary, batch); err != nil {
		return p.fail(ctx, task.EstudoID, fmt.Errorf("failed to persist results: %w", err))
	}

	log.Info("task completed")
	return nil
}

// prepareText loads the stored file, extracts its text and selects the
// segment sent to the model. Processing covers the first chunk; when the
// chunker yields nothing despite non-empty text, a bounded prefix is used
// instead.
func (p *Processor) prepareText(ctx context.Context, task queue.Task) (string, error) {
	data, err := p.files.Load(ctx, task.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to load document: %w", err)
	}

	text, err := p.extractor.Extract(task.Filename, data)
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	if text == "" {
		return "", errors.New("document contains no extractable text")
	}

	chunks := document.SplitText(text, document.DefaultChunkSize, document.DefaultChunkOverlap)
	if len(chunks) > 0 {
		return chunks[0], nil
	}

	runes := []rune(text)
	if len(runes) > fallbackPrefixLen {
		runes = runes[:fallbackPrefixLen]
	}
	return string(runes), nil
}

// fail records the diagnostic on the study row and returns the pipeline
// error. A failure to record is logged but does not mask the original
// error.
func (p *Processor) fail(ctx context.Context, studyID int64, cause error) error {
	if err := p.studies.Fail(ctx, studyID, cause.Error()); err != nil {
		p.logger.Error("failed to mark study as failed",
			slog.Int64("estudo_id", studyID),
			slog.String("error", err.Error()))
	}
	return cause
}
