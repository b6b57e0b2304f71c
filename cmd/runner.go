package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Flammans/artanova/internal/catalog"
	"github.com/Flammans/artanova/internal/collections"
	"github.com/Flammans/artanova/internal/repositories"
	"github.com/Flammans/artanova/internal/services"
	"github.com/Flammans/artanova/internal/session"
	"github.com/Flammans/artanova/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	client      *services.Client
	session     *session.Store
	engine      *catalog.Engine
	collections *collections.Manager
	artworks    *repositories.ArtworkRepository
	db          *sql.DB
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Client   *services.Client
	Session  *session.Store
	Artworks *repositories.ArtworkRepository
	DB       *sql.DB
	Logger   *log.Logger
	Output   io.Writer
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

	engine := catalog.NewEngine(opts.Client, opts.Logger)
	manager := collections.NewManager(opts.Client, opts.Session, opts.Logger)

	return &Runner{
		config:      opts.Config,
		client:      opts.Client,
		session:     opts.Session,
		engine:      engine,
		collections: manager,
		artworks:    opts.Artworks,
		db:          opts.DB,
		logger:      opts.Logger,
		output:      opts.Output,
	}
}

// SetLogger swaps the runner's logger, e.g. to a file logger for TUI runs.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, exploreCommand, collectionsCommand, cacheCommand, tuiCommand,
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
