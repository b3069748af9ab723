package tasks

import (
	"context"
	"fmt"

	"setlift/internal/models"
	"setlift/internal/services"
	"setlift/internal/shared"
)

// Resolver turns a reference string into a platform video ID and public metadata.
type Resolver interface {
	Resolve(ctx context.Context, reference string) (*services.VideoMetadata, string)
}

// Engine sequences the extraction and enrichment pipeline.
//
// Tracklist positional order is preserved end to end: enrichment results
// are merged by index, never by matching.
type Engine struct {
	resolver  Resolver
	generator services.Generator
	enrich    *EnrichEngine
}

// NewEngine creates a pipeline engine with the provided collaborators.
func NewEngine(resolver Resolver, generator services.Generator, enrich *EnrichEngine) *Engine {
	return &Engine{
		resolver:  resolver,
		generator: generator,
		enrich:    enrich,
	}
}

// Extract produces an enriched set record from a reference URL.
//
// Stages: resolve public video metadata (advisory, best effort), build the
// retrieval-grounded prompt, invoke the generative model, parse and
// normalize its output, then enrich the tracklist from the catalog.
// Generation and parse failures propagate as typed errors; resolution and
// enrichment failures degrade gracefully and never fail the pipeline.
func (e *Engine) Extract(ctx context.Context, progress chan<- ProgressUpdate, reference string) (*models.SetRecord, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("%w: extraction service not initialized", shared.ErrServiceUnavailable)
	}

	sendProgress(progress, resolvingUpdate())

	var meta *services.VideoMetadata
	var searchURL string
	if e.resolver != nil {
		meta, _ = e.resolver.Resolve(ctx, reference)
	}
	if meta != nil {
		sendProgress(progress, resolvedUpdate(meta))
		searchURL = TracklistSearchURL(meta.Author, meta.Title)
	}

	prompt := ExtractionPrompt(reference, meta, searchURL)

	sendProgress(progress, generatingUpdate())

	raw, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	sendProgress(progress, parsingUpdate())

	record, err := ParseResponse(raw)
	if err != nil {
		return nil, err
	}

	if record.YoutubeURL == "" {
		if _, ok := services.ExtractVideoID(reference); ok {
			record.YoutubeURL = reference
			record.Source.URL = reference
		}
	}

	e.enrichRecord(ctx, progress, record)
	return record, nil
}

// ExtractText produces an enriched set record from pasted free text
// (a copied tracklist or set description).
func (e *Engine) ExtractText(ctx context.Context, progress chan<- ProgressUpdate, text, referenceURL string) (*models.SetRecord, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("%w: extraction service not initialized", shared.ErrServiceUnavailable)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: no text provided", shared.ErrInvalidInput)
	}

	sendProgress(progress, generatingUpdate())

	raw, err := e.generator.Generate(ctx, FreeTextPrompt(text, referenceURL))
	if err != nil {
		return nil, err
	}

	sendProgress(progress, parsingUpdate())

	record, err := ParseResponse(raw)
	if err != nil {
		return nil, err
	}

	if record.YoutubeURL == "" && referenceURL != "" {
		record.YoutubeURL = referenceURL
		record.Source.URL = referenceURL
	}

	e.enrichRecord(ctx, progress, record)
	return record, nil
}

// WithoutEnrichment returns a copy of the engine that skips the catalog
// enrichment stage entirely.
func (e *Engine) WithoutEnrichment() *Engine {
	return &Engine{resolver: e.resolver, generator: e.generator}
}

// EnrichRecord runs the catalog enrichment pass over an existing record.
// Usable independently of extraction, for records produced elsewhere.
func (e *Engine) EnrichRecord(ctx context.Context, progress chan<- ProgressUpdate, record *models.SetRecord) {
	e.enrichRecord(ctx, progress, record)
}

func (e *Engine) enrichRecord(ctx context.Context, progress chan<- ProgressUpdate, record *models.SetRecord) {
	if e.enrich == nil || len(record.Tracklist) == 0 {
		return
	}
	enrichments := e.enrich.Enrich(ctx, progress, record.Tracklist)
	MergeEnrichment(record, enrichments)
}
