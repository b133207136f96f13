package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/go-drift/autobind/cmd/autobind/internal/config"
	"github.com/go-drift/autobind/cmd/autobind/internal/script"
	"github.com/go-drift/autobind/pkg/errors"
	"github.com/go-drift/autobind/pkg/rendering"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Replay a scenario against the login showcase",
		Long: `Replay a scenario file against the login showcase and print one trace
line per view refresh.

A scenario is a YAML list of steps:

  steps:
    - type: {email: a@b.com}   # user input into a field
    - set: {password: x}       # direct model write
    - frame: 1                 # run N frames
    - tap: login               # tap the login button
    - advance: 2s              # move the clock, then run one frame

Settings are read from autobind.yaml in the project root, if present.

Flags:
  --png FILE   Write the final screen to FILE as a PNG image`,
		Usage: "autobind run <scenario.yaml> [--png FILE]",
		Run:   runRun,
	})
}

type runOptions struct {
	png string
}

func runRun(args []string) error {
	files, opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return fmt.Errorf("exactly one scenario file is required\n\nUsage: autobind run <scenario.yaml> [--png FILE]")
	}
	path := files[0]

	root, err := config.FindProjectRoot(filepath.Dir(path))
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return &errors.BindError{Op: "cmd.run", Kind: errors.KindConfig, Err: err}
	}

	noColor := color.NoColor
	color.NoColor = !useColor(cfg.Color, stdout)
	defer func() { color.NoColor = noColor }()
	previous := errors.SetHandler(&errors.LogHandler{Verbose: cfg.Verbose})
	defer errors.SetHandler(previous)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := script.Parse(filepath.Base(path), data)
	if err != nil {
		return err
	}

	if sc.Name != "" {
		fmt.Fprintf(stdout, "%s %s (%s)\n", color.New(color.Bold).Sprint(cfg.AppName), sc.Name, path)
	}
	session := newSession(stdout, cfg.FrameInterval)
	if err := session.replay(sc); err != nil {
		return err
	}

	if opts.png != "" {
		if err := writeSnapshot(opts.png, session.screen.Describe()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", opts.png)
	}
	return nil
}

func parseRunArgs(args []string) ([]string, runOptions, error) {
	opts := runOptions{}
	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--png":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("--png requires a file path")
			}
			opts.png = args[i+1]
			i++
		case strings.HasPrefix(arg, "--png="):
			opts.png = strings.TrimPrefix(arg, "--png=")
		case strings.HasPrefix(arg, "-"):
			return nil, opts, fmt.Errorf("unknown flag %q", arg)
		default:
			filtered = append(filtered, arg)
		}
	}
	return filtered, opts, nil
}

// useColor resolves the trace.color setting. "auto" colours only terminals.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeSnapshot(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	img := rendering.Snapshot(lines, rendering.Options{})
	if err := rendering.WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
