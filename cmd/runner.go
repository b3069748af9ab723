package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"setlift/internal/auth"
	"setlift/internal/services"
	"setlift/internal/shared"
	"setlift/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	manager *auth.TokenManager
	spotify *services.SpotifyService
	gemini  *services.GeminiService
	youtube *services.YouTubeService
	logger  *log.Logger
	output  io.Writer
	engine  *tasks.Engine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Manager *auth.TokenManager
	Spotify *services.SpotifyService
	Gemini  *services.GeminiService
	YouTube *services.YouTubeService
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	// Interface conversions guard against typed-nil pointers.
	var enrich *tasks.EnrichEngine
	if opts.Spotify != nil && opts.Manager != nil {
		enrich = tasks.NewEnrichEngine(opts.Spotify, opts.Manager)
	}
	var resolver tasks.Resolver
	if opts.YouTube != nil {
		resolver = opts.YouTube
	}
	var generator services.Generator
	if opts.Gemini != nil {
		generator = opts.Gemini
	}

	return &Runner{
		config:  opts.Config,
		manager: opts.Manager,
		spotify: opts.Spotify,
		gemini:  opts.Gemini,
		youtube: opts.YouTube,
		logger:  opts.Logger,
		output:  opts.Output,
		engine:  tasks.NewEngine(resolver, generator, enrich),
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, extractCommand, enrichCommand, viewCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
