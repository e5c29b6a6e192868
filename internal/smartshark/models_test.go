package smartshark

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCommit_ParentHash(t *testing.T) {
	tests := []struct {
		name     string
		parents  []string
		expected string
	}{
		{name: "Root commit", parents: nil, expected: ""},
		{name: "Single parent", parents: []string{"aaa"}, expected: "aaa"},
		{name: "Merge commit", parents: []string{"aaa", "bbb"}, expected: "aaa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Commit{Parents: tt.parents}
			if got := c.ParentHash(); got != tt.expected {
				t.Errorf("ParentHash() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

// The field names must follow the documents written by the SmartSHARK plugins.
func TestCommit_DecodesSmartSHARKDocument(t *testing.T) {
	vcsID := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "vcs_system_id", Value: vcsID},
		{Key: "revision_hash", Value: "0123456789abcdef0123456789abcdef01234567"},
		{Key: "parents", Value: bson.A{"fedcba9876543210fedcba9876543210fedcba98"}},
		{Key: "labels", Value: bson.D{{Key: "validated_bugfix", Value: true}, {Key: "adjustedszz_bugfix", Value: false}}},
		{Key: "message", Value: "ignored field"},
	})
	if err != nil {
		t.Fatalf("failed to marshal document: %v", err)
	}

	var c Commit
	if err := bson.Unmarshal(raw, &c); err != nil {
		t.Fatalf("failed to decode commit: %v", err)
	}

	if c.VCSSystemID != vcsID {
		t.Errorf("VCSSystemID = %v, expected %v", c.VCSSystemID, vcsID)
	}
	if len(c.Parents) != 1 {
		t.Errorf("expected 1 parent, got %d", len(c.Parents))
	}
	if v, ok := c.Labels["validated_bugfix"].(bool); !ok || !v {
		t.Errorf("labels.validated_bugfix = %v, expected true", c.Labels["validated_bugfix"])
	}
}

func TestCommit_DecodesUnlabelledDocument(t *testing.T) {
	raw, err := bson.Marshal(bson.D{
		{Key: "revision_hash", Value: "abc"},
		{Key: "parents", Value: bson.A{}},
	})
	if err != nil {
		t.Fatalf("failed to marshal document: %v", err)
	}

	var c Commit
	if err := bson.Unmarshal(raw, &c); err != nil {
		t.Fatalf("failed to decode commit: %v", err)
	}
	if c.Labels != nil {
		t.Errorf("expected nil labels, got %v", c.Labels)
	}
}

func TestHunk_DecodesSmartSHARKDocument(t *testing.T) {
	faID := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.D{
		{Key: "file_action_id", Value: faID},
		{Key: "content", Value: "-a\n+b\n"},
		{Key: "new_start", Value: int32(10)},
		{Key: "new_lines", Value: int32(1)},
		{Key: "old_start", Value: int32(10)},
		{Key: "old_lines", Value: int32(1)},
		{Key: "lines_verified", Value: bson.D{{Key: "bugfix", Value: bson.A{int32(0)}}}},
	})
	if err != nil {
		t.Fatalf("failed to marshal document: %v", err)
	}

	var h Hunk
	if err := bson.Unmarshal(raw, &h); err != nil {
		t.Fatalf("failed to decode hunk: %v", err)
	}
	if h.FileActionID != faID {
		t.Errorf("FileActionID = %v, expected %v", h.FileActionID, faID)
	}
	if h.NewStart != 10 || h.NewLines != 1 || h.OldStart != 10 || h.OldLines != 1 {
		t.Errorf("unexpected positions: %+v", h)
	}
	if len(h.LinesVerified) != 1 || h.LinesVerified[0].Key != "bugfix" {
		t.Errorf("lines_verified missing bugfix key: %v", h.LinesVerified)
	}
}
