package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"setlift/internal/formatter"
	"setlift/internal/models"
	"setlift/internal/shared"
	"setlift/internal/tasks"
)

// Extract runs the full extraction pipeline and writes the resulting record.
func (r *Runner) Extract(ctx context.Context, cmd *cli.Command) error {
	reference := cmd.StringArg("reference")
	textPath := cmd.String("from-text")

	if reference == "" && textPath == "" {
		return fmt.Errorf("%w: provide a reference URL or --from-text", shared.ErrMissingArgument)
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
		close(done)
	}()

	engine := r.engine
	if cmd.Bool("no-enrich") {
		engine = engine.WithoutEnrichment()
	}

	var record *models.SetRecord
	var err error
	if textPath != "" {
		var text []byte
		if text, err = os.ReadFile(textPath); err == nil {
			record, err = engine.ExtractText(ctx, progress, string(text), reference)
		}
	} else {
		record, err = engine.Extract(ctx, progress, reference)
	}
	close(progress)
	<-done

	if err != nil {
		return r.remediate(err)
	}

	record.ID = shared.GenerateID()
	return r.writeRecord(record, cmd.String("format"), cmd.String("output"), cmd.Bool("pretty"))
}

// Enrich re-runs catalog enrichment over a record loaded from JSON.
func (r *Runner) Enrich(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: record path required", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}

	var record models.SetRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
		close(done)
	}()

	r.engine.EnrichRecord(ctx, progress, &record)
	close(progress)
	<-done

	record.Recount()
	return r.writeRecord(&record, "json", cmd.String("output"), cmd.Bool("pretty"))
}

// remediate attaches a user-facing hint to pipeline failures.
func (r *Runner) remediate(err error) error {
	switch {
	case errors.Is(err, shared.ErrRateLimited):
		r.writePlain("The extraction service is rate limited. Wait a few minutes and retry.\n")
	case errors.Is(err, shared.ErrNoInformation):
		r.writePlain("No set information was found for this reference. Try pasting the tracklist with --from-text.\n")
	case errors.Is(err, shared.ErrMissingCredentials):
		r.writePlain("Gemini API key not configured. Add credentials.gemini.api_key to config.toml.\n")
	case errors.Is(err, shared.ErrReauthRequired):
		r.writePlain("Spotify session expired. Run 'setlift auth login' to reauthorize.\n")
	}
	return err
}

// writeRecord renders a record in the requested format to a file or stdout.
func (r *Runner) writeRecord(record *models.SetRecord, format, outputPath string, pretty bool) error {
	var data []byte
	var err error

	switch format {
	case "", "json":
		if outputPath == "" {
			return r.writeJSON(record, pretty)
		}
		data, err = shared.MarshalJSON(record, pretty)
	case "csv":
		data, err = formatter.ExportToCSV(record)
	case "markdown", "md":
		data, err = formatter.ExportToMarkdown(record)
	case "text":
		data, err = formatter.ExportToText(record)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	if err != nil {
		return err
	}

	if outputPath == "" {
		return r.writePlain("%s", data)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return r.writePlain("✓ Wrote %s\n", outputPath)
}
