package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gitreplace/internal/config"
	"gitreplace/internal/eventbus"
	"gitreplace/internal/fsio"
	"gitreplace/internal/git"
	"gitreplace/internal/references"
	"gitreplace/internal/replace"
	"gitreplace/internal/ui"
	"gitreplace/internal/workflow"
)

type options struct {
	configPath string
	regex      bool
	logPath    string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "gitreplace [dir]",
		Short:        "Search and replace across the files of a git repository",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			return run(cmd.Context(), dir, opts, cmd.Flags().Changed("regex"))
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: <dir>/"+config.ProjectFileName+", then the user config)")
	cmd.Flags().BoolVar(&opts.regex, "regex", false, "treat search patterns as extended regular expressions")
	cmd.Flags().StringVar(&opts.logPath, "log", "", "diagnostic log file")
	return cmd
}

func run(parent context.Context, targetDir string, opts options, regexSet bool) error {
	// If no directory specified, use current directory
	if targetDir == "" {
		var err error
		targetDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	cfg, from, err := config.Resolve(config.NewConfigService(), opts.configPath, absDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if regexSet {
		cfg.Search.Regex = opts.regex
	}

	// Set up logging
	logPath := opts.logPath
	if logPath == "" {
		logPath = cfg.Log.File
	}
	if logPath != "" && !filepath.IsAbs(logPath) {
		logPath = filepath.Join(absDir, logPath)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// the terminal belongs to the UI, so logs go nowhere
		log.SetOutput(io.Discard)
		logPath = ""
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	if from != "" {
		log.Printf("Loaded config from %s", from)
	}

	// Create context for graceful shutdown
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New()
	files := fsio.NewOsStore(absDir)
	grep := git.NewGrepService(git.ExecRunner{}, absDir,
		git.WithBinary(cfg.Search.GitBinary),
		git.WithMaxResults(cfg.Search.MaxResults),
	)

	uiModel := ui.NewModel(ctx, bus, files, grep, ui.Options{Cwd: absDir, LogFile: logPath})
	defer uiModel.Close()

	searchReplace := workflow.New(uiModel, bus, grep, replace.NewEngine(files), workflow.Config{
		Regex:      cfg.Search.Regex,
		MaxResults: cfg.Search.MaxResults,
		SplitRatio: cfg.Panel.SplitRatio,
	})
	searchReplace.Register()
	defer searchReplace.Unregister()

	refs := references.New(uiModel, bus, files, references.Config{
		MaxResults: cfg.References.MaxResults,
		SplitRatio: cfg.References.SplitRatio,
	})
	refs.Register()
	defer refs.Unregister()

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	log.Printf("Starting UI in %s (regex=%v)", absDir, cfg.Search.Regex)
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}
