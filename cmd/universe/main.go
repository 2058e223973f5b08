package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/leterax/go-universe/internal/app"
	"github.com/leterax/go-universe/internal/config"
	"github.com/leterax/go-universe/pkg/render"
	"github.com/leterax/go-universe/pkg/universe"
	"github.com/spf13/cobra"
)

//go:embed sample.json
var sampleResults []byte

var (
	configPath  string
	resultsPath string
	width       int
	height      int
	title       string
	logLevel    string
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	cmd := &cobra.Command{
		Use:   "universe",
		Short: "Fly through search results as a 3D universe",
		Long: `universe - Search result universe viewer

Every result is a body on a spiral; more relevant results are bigger and
spin faster.

Controls:
  Left drag    - Rotate
  Right drag   - Pan
  Scroll       - Dolly
  Arrow keys   - Fly to the nearest result in that direction
  Q/E          - Turn left/right
  R            - Reset camera
  F or |       - Toggle fullscreen
  /            - Search, Enter to submit, Esc to cancel
  Click        - Open result
  Esc          - Quit`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	cmd.Flags().StringVar(&resultsPath, "results", "", "Path to a JSON array of search results (built-in sample if empty)")
	cmd.Flags().IntVar(&width, "width", 0, "Window width, overrides the config")
	cmd.Flags().IntVar(&height, "height", 0, "Window height, overrides the config")
	cmd.Flags().StringVar(&title, "title", "", "Window title, overrides the config")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("width") {
		cfg.Window.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Window.Height = height
	}
	if cmd.Flags().Changed("title") {
		cfg.Window.Title = title
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	results, err := loadResults(resultsPath)
	if err != nil {
		return err
	}
	logger.Info("loaded results", "count", len(results), "source", resultsSource(resultsPath))

	renderer, err := render.NewRenderer(render.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
		FOV:    cfg.Window.FOV,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	viewer, err := app.New(renderer, app.Options{
		Corpus:     results,
		Navigation: cfg.Navigation,
		Opener:     universe.SystemOpener{},
		Title:      cfg.Window.Title,
		Logger:     logger,
	})
	if err != nil {
		renderer.Cleanup()
		return err
	}
	defer viewer.Close()

	renderer.Run(viewer.Frame)
	return nil
}

func loadResults(path string) ([]universe.Result, error) {
	if path == "" {
		return universe.DecodeResults(bytes.NewReader(sampleResults))
	}
	return universe.LoadResults(path)
}

func resultsSource(path string) string {
	if path == "" {
		return "sample"
	}
	return path
}
