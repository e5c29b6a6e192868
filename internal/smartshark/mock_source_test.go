package smartshark

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMockSource_Queries(t *testing.T) {
	ctx := context.Background()
	m := NewMockSource()

	giraph := m.AddProject("giraph")
	gora := m.AddProject("gora")
	m.AddProject("linux")

	svn := m.AddVCSSystem(giraph.ID, "https://svn.example.org/giraph", "svn")
	first := m.AddVCSSystem(giraph.ID, "https://github.com/apache/giraph", "git")
	second := m.AddVCSSystem(gora.ID, "https://github.com/apache/gora", "git")

	commit := m.AddCommit(Commit{VCSSystemID: first.ID, RevisionHash: "c1"})
	m.AddCommit(Commit{VCSSystemID: second.ID, RevisionHash: "c2"})
	fa := m.AddFileAction(FileAction{CommitID: commit.ID, LinesAdded: 3})
	m.AddHunk(Hunk{FileActionID: fa.ID, Content: "+x"})

	t.Run("ProjectIDs matches exact names", func(t *testing.T) {
		ids, err := m.ProjectIDs(ctx, []string{"giraph", "gora", "Giraph"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ids) != 2 {
			t.Fatalf("expected 2 ids, got %d", len(ids))
		}
	})

	t.Run("GitVCSSystems filters type and honours limit", func(t *testing.T) {
		systems, err := m.GitVCSSystems(ctx, []primitive.ObjectID{giraph.ID, gora.ID}, "git", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(systems) != 1 || systems[0].ID != first.ID {
			t.Fatalf("expected only %s, got %+v", first.URL, systems)
		}

		all, _ := m.GitVCSSystems(ctx, []primitive.ObjectID{giraph.ID, gora.ID}, "git", 0)
		if len(all) != 2 {
			t.Errorf("expected 2 git systems without limit, got %d", len(all))
		}
		for _, v := range all {
			if v.ID == svn.ID {
				t.Errorf("svn system returned for git query")
			}
		}
	})

	t.Run("GitVCSSystems with no projects", func(t *testing.T) {
		systems, err := m.GitVCSSystems(ctx, nil, "git", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(systems) != 0 {
			t.Errorf("expected no systems, got %d", len(systems))
		}
	})

	t.Run("ForEachCommit scopes to the system", func(t *testing.T) {
		var hashes []string
		err := m.ForEachCommit(ctx, first.ID, func(c Commit) error {
			hashes = append(hashes, c.RevisionHash)
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hashes) != 1 || hashes[0] != "c1" {
			t.Errorf("expected [c1], got %v", hashes)
		}
	})

	t.Run("ForEachCommit stops on callback error", func(t *testing.T) {
		stop := errors.New("stop")
		if err := m.ForEachCommit(ctx, first.ID, func(Commit) error { return stop }); err != stop {
			t.Errorf("expected %v, got %v", stop, err)
		}
	})

	t.Run("FileActions and Hunks", func(t *testing.T) {
		actions, err := m.FileActions(ctx, commit.ID)
		if err != nil || len(actions) != 1 {
			t.Fatalf("expected 1 file action, got %d (%v)", len(actions), err)
		}
		hunks, err := m.Hunks(ctx, actions[0].ID)
		if err != nil || len(hunks) != 1 {
			t.Fatalf("expected 1 hunk, got %d (%v)", len(hunks), err)
		}
	})

	if m.Queries["GitVCSSystems"] != 3 {
		t.Errorf("expected 3 GitVCSSystems queries, got %d", m.Queries["GitVCSSystems"])
	}
}

func TestMockSource_ReturnsError(t *testing.T) {
	expectedErr := errors.New("test error")
	m := NewMockSource()
	m.Error = expectedErr

	if _, err := m.ProjectIDs(context.Background(), []string{"giraph"}); err != expectedErr {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestMockSource_Verify(t *testing.T) {
	ctx := context.Background()
	m := NewMockSource()

	if err := m.Verify(ctx, "giraph"); !errors.Is(err, ErrConnectivity) {
		t.Fatalf("expected ErrConnectivity, got %v", err)
	}

	m.AddProject("giraph")
	if err := m.Verify(ctx, "giraph"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Error = errors.New("network down")
	if err := m.Verify(ctx, "giraph"); !errors.Is(err, ErrConnectivity) {
		t.Fatalf("expected ErrConnectivity for a failing lookup, got %v", err)
	}
}
