package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/lltc4j-export/config"
	"github.com/masmgr/lltc4j-export/internal/output"
)

// ErrUsage is returned when the command is invoked with positional arguments.
var ErrUsage = errors.New("unexpected arguments")

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:            "lltc4j-export",
		Usage:           "Export validated bugfix commits of the LLTC4J dataset from a SmartSHARK database",
		Version:         "1.0.0",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, ndjson)",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.StringSliceFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "Glob pattern restricting the exported projects (can be specified multiple times)",
			},
			&cli.BoolFlag{
				Name:  "all-vcs",
				Usage: "Visit every git VCS system instead of only the first one",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Diagnostic log level (debug, info, warn, error, off)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Diagnostic log format (console, json)",
				Value: "console",
			},
		},
		Action: exportAction,
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "ndjson", "jsonl":
		return output.FormatNDJSON
	default:
		return output.FormatText
	}
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.Bool("all-vcs") {
		cfg.VCSSystemLimit = 0
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Run executes the CLI application and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	app := App()
	app.Writer = stdout
	app.ErrWriter = stderr

	err := app.Run(args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 1
	default:
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}
