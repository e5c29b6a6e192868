package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/masmgr/lltc4j-export/internal/smartshark"
)

// TextExportWriter writes the CSV header and commit rows, interleaved with
// free-text blocks describing each file action and hunk. The result is line
// oriented but not valid CSV once file actions are present.
type TextExportWriter struct {
	out *bufio.Writer
	csv *csv.Writer
}

// NewTextExportWriter creates a text export writer on w.
func NewTextExportWriter(w io.Writer) *TextExportWriter {
	out := bufio.NewWriter(w)
	return &TextExportWriter{out: out, csv: csv.NewWriter(out)}
}

// WriteHeader writes the CSV column line.
func (w *TextExportWriter) WriteHeader() error {
	return w.writeRow(CSVHeader)
}

// WriteVCSSystem writes the progress line of a VCS system.
func (w *TextExportWriter) WriteVCSSystem(vcs smartshark.VCSSystem) error {
	_, err := fmt.Fprintf(w.out, "Processing %s\n", vcs.URL)
	return err
}

// WriteCommit writes the CSV row of a qualifying commit.
func (w *TextExportWriter) WriteCommit(vcs smartshark.VCSSystem, commit smartshark.Commit) error {
	return w.writeRow([]string{vcs.URL, commit.RevisionHash, commit.ParentHash()})
}

// WriteFileAction writes the labelling payload and line counts of a file action.
func (w *TextExportWriter) WriteFileAction(fa smartshark.FileAction) error {
	induces, err := formatDocuments(fa.Induces)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w.out, "FileAction: %s\nLine added: %d\nLine deleted: %d\n",
		induces, fa.LinesAdded, fa.LinesDeleted)
	return err
}

// WriteHunk writes the diff content, positions and verified lines of a hunk.
// "Verified" is directly followed by its value, without a separator.
func (w *TextExportWriter) WriteHunk(h smartshark.Hunk) error {
	verified, err := formatDocument(h.LinesVerified)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w.out, "Content:\n%s\nNew start: %d\nNew lines: %d\nOld start: %d\nOld lines: %d\nVerified%s\n",
		h.Content, h.NewStart, h.NewLines, h.OldStart, h.OldLines, verified)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *TextExportWriter) Flush() error {
	return w.out.Flush()
}

func (w *TextExportWriter) writeRow(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return err
	}
	// Keep CSV rows ordered with the free-text lines sharing the buffer.
	w.csv.Flush()
	return w.csv.Error()
}
