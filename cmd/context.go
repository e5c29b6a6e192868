package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/lltc4j-export/config"
	"github.com/masmgr/lltc4j-export/internal/logger"
	"github.com/masmgr/lltc4j-export/internal/output"
	"github.com/masmgr/lltc4j-export/internal/smartshark"
)

// openDatabase connects to the configured SmartSHARK database.
// Tests replace it to run the command against a MockSource.
var openDatabase = func(ctx context.Context, cfg *config.Config, log logger.Logger) (smartshark.Database, error) {
	db := cfg.Database
	return smartshark.Open(ctx, smartshark.Options{
		Credentials: smartshark.Credentials{
			User:                   db.User,
			Password:               db.Password,
			Hostname:               db.Hostname,
			Port:                   db.Port,
			AuthenticationDatabase: db.AuthenticationDatabase,
			SSLEnabled:             db.SSLEnabled,
		},
		Database:               db.Name,
		ServerSelectionTimeout: time.Duration(db.ServerSelectionTimeoutSeconds) * time.Second,
		Logger:                 log,
	})
}

// CommandContext holds the state shared by the export run.
type CommandContext struct {
	Config   *config.Config
	Projects []string
	Logger   logger.Logger
	Output   output.OutputOptions
}

// NewCommandContext creates a context from CLI flags.
// It loads the configuration, sets up logging and resolves the project list.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	log := logger.New(logger.Options{
		Level:     c.String("log-level"),
		Format:    c.String("log-format"),
		Component: "export",
		Writer:    c.App.ErrWriter,
	})

	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	projects, err := cfg.SelectProjects(c.StringSlice("project"))
	if err != nil {
		return nil, fmt.Errorf("invalid project filter: %w", err)
	}

	return &CommandContext{
		Config:   cfg,
		Projects: projects,
		Logger:   log,
		Output: output.OutputOptions{
			Format:     getOutputFormat(c.String("format")),
			OutputPath: c.String("output"),
		},
	}, nil
}
