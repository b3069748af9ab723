package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"setlift/internal/shared"
	"setlift/internal/ui"
)

// View launches the interactive terminal UI for set extraction.
func (r *Runner) View(ctx context.Context, cmd *cli.Command) error {
	reference := cmd.StringArg("reference")
	if reference == "" {
		return fmt.Errorf("%w: reference URL required", shared.ErrMissingArgument)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/setlift-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, reference)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
