package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/masmgr/lltc4j-export/internal/smartshark"
)

// NDJSONExportWriter writes one JSON object per record (one per line).
type NDJSONExportWriter struct {
	out *bufio.Writer
}

// NDJSONVCSSystem marks the start of a VCS system's records.
type NDJSONVCSSystem struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// NDJSONCommit is a qualifying commit.
type NDJSONCommit struct {
	Type       string `json:"type"`
	VCSURL     string `json:"vcsUrl"`
	CommitHash string `json:"commitHash"`
	ParentHash string `json:"parentHash"`
}

// NDJSONFileAction is a file action of the preceding commit.
type NDJSONFileAction struct {
	Type         string          `json:"type"`
	Induces      json.RawMessage `json:"induces"`
	LinesAdded   int             `json:"linesAdded"`
	LinesDeleted int             `json:"linesDeleted"`
}

// NDJSONHunk is a hunk of the preceding file action.
type NDJSONHunk struct {
	Type          string          `json:"type"`
	Content       string          `json:"content"`
	NewStart      int             `json:"newStart"`
	NewLines      int             `json:"newLines"`
	OldStart      int             `json:"oldStart"`
	OldLines      int             `json:"oldLines"`
	LinesVerified json.RawMessage `json:"linesVerified"`
}

// NewNDJSONExportWriter creates an NDJSON export writer on w.
func NewNDJSONExportWriter(w io.Writer) *NDJSONExportWriter {
	return &NDJSONExportWriter{out: bufio.NewWriter(w)}
}

// WriteHeader is a no-op: every NDJSON line describes itself.
func (w *NDJSONExportWriter) WriteHeader() error {
	return nil
}

func (w *NDJSONExportWriter) WriteVCSSystem(vcs smartshark.VCSSystem) error {
	return writeNDJSONLine(w.out, NDJSONVCSSystem{Type: "vcs", URL: vcs.URL})
}

func (w *NDJSONExportWriter) WriteCommit(vcs smartshark.VCSSystem, commit smartshark.Commit) error {
	return writeNDJSONLine(w.out, NDJSONCommit{
		Type:       "commit",
		VCSURL:     vcs.URL,
		CommitHash: commit.RevisionHash,
		ParentHash: commit.ParentHash(),
	})
}

func (w *NDJSONExportWriter) WriteFileAction(fa smartshark.FileAction) error {
	induces, err := formatDocuments(fa.Induces)
	if err != nil {
		return err
	}
	return writeNDJSONLine(w.out, NDJSONFileAction{
		Type:         "fileAction",
		Induces:      json.RawMessage(induces),
		LinesAdded:   fa.LinesAdded,
		LinesDeleted: fa.LinesDeleted,
	})
}

func (w *NDJSONExportWriter) WriteHunk(h smartshark.Hunk) error {
	verified, err := formatDocument(h.LinesVerified)
	if err != nil {
		return err
	}
	return writeNDJSONLine(w.out, NDJSONHunk{
		Type:          "hunk",
		Content:       h.Content,
		NewStart:      h.NewStart,
		NewLines:      h.NewLines,
		OldStart:      h.OldStart,
		OldLines:      h.OldLines,
		LinesVerified: json.RawMessage(verified),
	})
}

// Flush writes any buffered data to the underlying writer.
func (w *NDJSONExportWriter) Flush() error {
	return w.out.Flush()
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
