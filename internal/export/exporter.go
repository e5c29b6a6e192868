// Package export selects validated bugfix commits from a SmartSHARK source
// and streams them, with their file actions and hunks, to an export writer.
package export

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"

	"github.com/masmgr/lltc4j-export/internal/bugfix"
	"github.com/masmgr/lltc4j-export/internal/output"
	"github.com/masmgr/lltc4j-export/internal/smartshark"
)

// Options configures an Exporter.
type Options struct {
	Projects       []string
	RepositoryType string
	VCSSystemLimit int64 // 0 visits every matching VCS system
	Detector       *bugfix.Detector
	Logger         zerolog.Logger
}

// Stats summarises one export run.
type Stats struct {
	Projects        int
	VCSSystems      int
	CommitsScanned  int
	CommitsExported int
	FileActions     int
	Hunks           int
}

// Exporter runs the project → VCS system → commit → file action → hunk pass.
type Exporter struct {
	src  smartshark.Source
	out  output.ExportWriter
	opts Options
}

// NewExporter creates an Exporter reading from src and writing to out.
func NewExporter(src smartshark.Source, out output.ExportWriter, opts Options) *Exporter {
	if opts.Detector == nil {
		opts.Detector = bugfix.NewDetector(nil, 1)
	}
	if opts.RepositoryType == "" {
		opts.RepositoryType = "git"
	}
	return &Exporter{src: src, out: out, opts: opts}
}

// Run exports every qualifying commit. The writer is flushed before Run
// returns, also on error, so output produced so far is not lost.
func (e *Exporter) Run(ctx context.Context) (stats Stats, err error) {
	defer func() {
		if ferr := e.out.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("failed to flush output: %w", ferr)
		}
	}()

	if err := e.out.WriteHeader(); err != nil {
		return stats, fmt.Errorf("failed to write header: %w", err)
	}

	projectIDs, err := e.src.ProjectIDs(ctx, e.opts.Projects)
	if err != nil {
		return stats, err
	}
	stats.Projects = len(projectIDs)
	e.opts.Logger.Debug().Int("requested", len(e.opts.Projects)).Int("found", len(projectIDs)).Msg("projects resolved")

	systems, err := e.src.GitVCSSystems(ctx, projectIDs, e.opts.RepositoryType, e.opts.VCSSystemLimit)
	if err != nil {
		return stats, err
	}

	for _, vcs := range systems {
		if err := e.exportVCSSystem(ctx, vcs, &stats); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func (e *Exporter) exportVCSSystem(ctx context.Context, vcs smartshark.VCSSystem, stats *Stats) error {
	stats.VCSSystems++
	e.opts.Logger.Info().Str("url", vcs.URL).Msg("processing vcs system")

	if err := e.out.WriteVCSSystem(vcs); err != nil {
		return fmt.Errorf("failed to write vcs system: %w", err)
	}

	return e.src.ForEachCommit(ctx, vcs.ID, func(c smartshark.Commit) error {
		stats.CommitsScanned++
		if !e.opts.Detector.Qualifies(c) {
			return nil
		}
		stats.CommitsExported++

		if !plumbing.IsHash(c.RevisionHash) || !plumbing.IsHash(c.ParentHash()) {
			e.opts.Logger.Warn().
				Str("commit", c.RevisionHash).
				Str("parent", c.ParentHash()).
				Msg("malformed revision hash")
		}

		if err := e.out.WriteCommit(vcs, c); err != nil {
			return fmt.Errorf("failed to write commit %s: %w", c.RevisionHash, err)
		}
		return e.exportFileActions(ctx, c, stats)
	})
}

func (e *Exporter) exportFileActions(ctx context.Context, c smartshark.Commit, stats *Stats) error {
	actions, err := e.src.FileActions(ctx, c.ID)
	if err != nil {
		return err
	}

	for _, fa := range actions {
		stats.FileActions++
		if err := e.out.WriteFileAction(fa); err != nil {
			return fmt.Errorf("failed to write file action: %w", err)
		}

		hunks, err := e.src.Hunks(ctx, fa.ID)
		if err != nil {
			return err
		}
		for _, h := range hunks {
			stats.Hunks++
			if err := e.out.WriteHunk(h); err != nil {
				return fmt.Errorf("failed to write hunk: %w", err)
			}
		}
	}
	return nil
}
