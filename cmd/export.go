package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/lltc4j-export/internal/bugfix"
	"github.com/masmgr/lltc4j-export/internal/export"
	"github.com/masmgr/lltc4j-export/internal/output"
)

func exportAction(c *cli.Context) (err error) {
	// Positional arguments are rejected before anything touches the database.
	if c.NArg() > 0 {
		fmt.Fprintf(c.App.Writer, "usage: %s\n", c.App.Name)
		return ErrUsage
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c.Context, ctx.Config, ctx.Logger)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	if err := db.Verify(c.Context, ctx.Config.SentinelProject); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, color.GreenString("Connected to database"))

	out, file, err := output.OpenOutputWriter(ctx.Output.OutputPath, c.App.Writer)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	if file != nil {
		defer closeOutput(file, &err)
	}

	exporter := export.NewExporter(db, output.NewExportWriter(ctx.Output.Format, out), export.Options{
		Projects:       ctx.Projects,
		RepositoryType: ctx.Config.RepositoryType,
		VCSSystemLimit: ctx.Config.VCSSystemLimit,
		Detector:       bugfix.NewDetector(ctx.Config.Bugfix.Labels, ctx.Config.Bugfix.RequiredParents),
		Logger:         ctx.Logger,
	})

	stats, err := exporter.Run(c.Context)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	ctx.Logger.Info().
		Int("projects", stats.Projects).
		Int("vcsSystems", stats.VCSSystems).
		Int("commitsScanned", stats.CommitsScanned).
		Int("commitsExported", stats.CommitsExported).
		Int("fileActions", stats.FileActions).
		Int("hunks", stats.Hunks).
		Msg("export finished")
	return nil
}

// closeOutput closes the output file, reporting its error unless the export
// already failed.
func closeOutput(f io.Closer, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close output: %w", cerr)
	}
}
