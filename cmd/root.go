// Package cmd implements the CLI command structure for checklist.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/checklist"
	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/logging"
	"github.com/nibzard/checklist-go/internal/store"
	"github.com/nibzard/checklist-go/internal/ui"
	"github.com/nibzard/checklist-go/internal/utils"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the checklist CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checklist", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No subcommand opens the interactive checklist.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "list", "ls":
		return listCommand(cfg, remainingArgs)
	case "toggle":
		return toggleCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// session is an opened store with an initialized checklist view.
type session struct {
	backend store.Backend
	view    *checklist.View
	report  checklist.LoadReport
	logger  *log.Logger
}

// openSession validates cfg, opens the configured store and initializes a
// view that logs to the logger newLogger builds from cfg.
func openSession(cfg *config.Config, newLogger func(logging.Options) *log.Logger) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := newLogger(logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller))

	backend, err := store.Open(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	logger.Debug("store opened", "backend", cfg.StoreBackend, "path", backend.Path())

	view := checklist.NewView(backend, checklist.WithLogger(logger))
	report := view.Initialize()
	return &session{
		backend: backend,
		view:    view,
		report:  report,
		logger:  logger,
	}, nil
}

func stderrLogger(opts logging.Options) *log.Logger {
	return logging.New(os.Stderr, opts)
}

func discardLogger(opts logging.Options) *log.Logger {
	return logging.New(io.Discard, opts)
}

func (s *session) Close() error {
	return s.backend.Close()
}

// tuiCommand launches the interactive checklist. Logs go to a per-run file
// so they do not draw over the screen.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("checklist tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY (use 'checklist list' for plain output)")
	}

	newLogger := discardLogger
	runLog, err := logging.NewRunLogger(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	} else {
		defer runLog.Close()
		newLogger = runLog.Logger
	}

	s, err := openSession(cfg, newLogger)
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Info("checklist started", "source", s.report.Source, "store", cfg.StoreBackend)
	err = ui.RunTUI(ctx, cfg, s.view, ui.WithLogger(s.logger))
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("tui exited", "err", err)
		return err
	}
	s.logger.Info("checklist closed", "progress", s.view.State().Progress)
	return err
}

// listCommand prints the rows and progress.
func listCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("checklist list", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print state as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := openSession(cfg, stderrLogger)
	if err != nil {
		return err
	}
	defer s.Close()

	return printState(cfg, s.view.State(), *asJSON)
}

// toggleCommand flips each given 0-based row index in order and prints the
// resulting state. Indices may be separate arguments or comma-separated.
func toggleCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("checklist toggle", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print state as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	indices, err := parseIndices(fs.Args())
	if err != nil {
		return err
	}
	if len(indices) == 0 {
		return fmt.Errorf("toggle requires at least one row index")
	}

	s, err := openSession(cfg, stderrLogger)
	if err != nil {
		return err
	}
	defer s.Close()

	// Reject bad indices before touching anything.
	n := len(s.view.State().Rows)
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: %d (have %d rows)", checklist.ErrInvalidIndex, idx, n)
		}
	}

	var saveErr error
	for _, idx := range indices {
		result, err := s.view.Toggle(idx)
		if err != nil {
			return err
		}
		if !result.Persisted() && saveErr == nil {
			saveErr = result.Err
		}
	}

	if err := printState(cfg, s.view.State(), *asJSON); err != nil {
		return err
	}
	return saveErr
}

func parseIndices(args []string) ([]int, error) {
	var indices []int
	for _, arg := range args {
		for _, part := range utils.SplitAndTrim(arg, ",") {
			idx, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid row index %q", part)
			}
			indices = append(indices, idx)
		}
	}
	return indices, nil
}

type stateJSON struct {
	Title    string          `json:"title"`
	Rows     []checklist.Row `json:"rows"`
	Progress float64         `json:"progress"`
	Percent  string          `json:"percent"`
}

func printState(cfg *config.Config, state checklist.State, asJSON bool) error {
	if !asJSON {
		return ui.WriteChecklist(os.Stdout, cfg.Title, state)
	}
	rows := state.Rows
	if rows == nil {
		rows = []checklist.Row{}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stateJSON{
		Title:    cfg.Title,
		Rows:     rows,
		Progress: state.Progress,
		Percent:  checklist.FormatPercent(state.Progress),
	})
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("checklist config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	if len(cws.Files) == 0 {
		fmt.Println("# No config files found")
	}
	for _, f := range cws.Files {
		fmt.Printf("# Loaded %s\n", f)
	}
	for _, e := range cws.Entries() {
		fmt.Printf("%-15s = %-40q # %s\n", e.Key, e.Value, e.Source)
	}
	return nil
}

// tailCommand tails the latest log file.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("checklist tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(ctx, os.Stdout, logPath, *n, *follow)
}

func versionCommand() error {
	fmt.Printf("checklist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Checklist - a persistent progress checklist for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  checklist [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui               Open the interactive checklist (default command)")
	fmt.Fprintln(w, "  list              Print rows and progress")
	fmt.Fprintln(w, "  toggle <index>... Toggle rows by 0-based index and print the result")
	fmt.Fprintln(w, "  doctor            Check config, store and stored state")
	fmt.Fprintln(w, "  config            Show effective config and value sources")
	fmt.Fprintln(w, "  tail              Tail the latest log file")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List/Toggle Options:")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print state as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options:")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
