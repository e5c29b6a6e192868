package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// CSVHeader is the column list of the commit rows.
var CSVHeader = []string{"vcs_url", "commit_hash", "parent_hash"}

// OpenOutputWriter returns stdout for an empty path, or a created file. The
// returned file is nil for stdout and must be closed by the caller otherwise.
func OpenOutputWriter(outputPath string, stdout io.Writer) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

// formatDocument renders a BSON document as relaxed extended JSON.
func formatDocument(doc bson.D) (string, error) {
	if doc == nil {
		return "{}", nil
	}
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return string(data), nil
}

// formatDocuments renders a list of BSON documents as a JSON array.
func formatDocuments(docs []bson.D) (string, error) {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		part, err := formatDocument(d)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}
