package output

import (
	"io"

	"github.com/masmgr/lltc4j-export/internal/smartshark"
)

// Compile-time interface conformance checks.
var (
	_ ExportWriter = (*TextExportWriter)(nil)
	_ ExportWriter = (*NDJSONExportWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatText   OutputFormat = "text"
	FormatNDJSON OutputFormat = "ndjson"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
}

// ExportWriter receives the exported records in pipeline order: the header,
// then for each VCS system its qualifying commits, each followed by its file
// actions and their hunks.
type ExportWriter interface {
	WriteHeader() error
	WriteVCSSystem(vcs smartshark.VCSSystem) error
	WriteCommit(vcs smartshark.VCSSystem, commit smartshark.Commit) error
	WriteFileAction(fa smartshark.FileAction) error
	WriteHunk(h smartshark.Hunk) error
	Flush() error
}

// NewExportWriter creates an export writer for the specified format.
func NewExportWriter(format OutputFormat, w io.Writer) ExportWriter {
	switch format {
	case FormatNDJSON:
		return NewNDJSONExportWriter(w)
	default:
		return NewTextExportWriter(w)
	}
}
