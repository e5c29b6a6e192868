package smartshark

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockSource is a test double for MongoSource.
// It answers the Source queries from in-memory records, in insertion order,
// without needing a running database.
type MockSource struct {
	Projects          []Project
	VCSSystems        []VCSSystem
	Commits           []Commit
	FileActionRecords []FileAction
	HunkRecords       []Hunk
	Error             error

	// Queries counts calls per method name.
	Queries map[string]int
	// LastProjectNames is the names argument of the latest ProjectIDs call.
	LastProjectNames []string
}

// NewMockSource creates an empty MockSource.
func NewMockSource() *MockSource {
	return &MockSource{Queries: make(map[string]int)}
}

// AddProject appends a project with a fresh id and returns it.
func (m *MockSource) AddProject(name string) Project {
	p := Project{ID: primitive.NewObjectID(), Name: name}
	m.Projects = append(m.Projects, p)
	return p
}

// AddVCSSystem appends a VCS system of the project and returns it.
func (m *MockSource) AddVCSSystem(projectID primitive.ObjectID, url, repoType string) VCSSystem {
	v := VCSSystem{ID: primitive.NewObjectID(), ProjectID: projectID, URL: url, RepositoryType: repoType}
	m.VCSSystems = append(m.VCSSystems, v)
	return v
}

// AddCommit appends a commit to the VCS system and returns it.
func (m *MockSource) AddCommit(c Commit) Commit {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.Commits = append(m.Commits, c)
	return c
}

// AddFileAction appends a file action and returns it.
func (m *MockSource) AddFileAction(fa FileAction) FileAction {
	if fa.ID.IsZero() {
		fa.ID = primitive.NewObjectID()
	}
	m.FileActionRecords = append(m.FileActionRecords, fa)
	return fa
}

// AddHunk appends a hunk and returns it.
func (m *MockSource) AddHunk(h Hunk) Hunk {
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	m.HunkRecords = append(m.HunkRecords, h)
	return h
}

func (m *MockSource) record(name string) error {
	if m.Queries == nil {
		m.Queries = make(map[string]int)
	}
	m.Queries[name]++
	return m.Error
}

// Verify fails with ErrConnectivity unless the sentinel project was added.
func (m *MockSource) Verify(_ context.Context, sentinel string) error {
	if err := m.record("Verify"); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	for _, p := range m.Projects {
		if p.Name == sentinel {
			return nil
		}
	}
	return fmt.Errorf("%w: sentinel project %q not found", ErrConnectivity, sentinel)
}

// Close is a no-op.
func (m *MockSource) Close(context.Context) error {
	return nil
}

// ProjectIDs returns the ids of projects whose name is in names.
func (m *MockSource) ProjectIDs(_ context.Context, names []string) ([]primitive.ObjectID, error) {
	if err := m.record("ProjectIDs"); err != nil {
		return nil, err
	}
	m.LastProjectNames = names
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}
	var ids []primitive.ObjectID
	for _, p := range m.Projects {
		if _, ok := wanted[p.Name]; ok {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// GitVCSSystems returns matching VCS systems in insertion order.
func (m *MockSource) GitVCSSystems(_ context.Context, projectIDs []primitive.ObjectID, repoType string, limit int64) ([]VCSSystem, error) {
	if err := m.record("GitVCSSystems"); err != nil {
		return nil, err
	}
	wanted := make(map[primitive.ObjectID]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		wanted[id] = struct{}{}
	}
	var systems []VCSSystem
	for _, v := range m.VCSSystems {
		if _, ok := wanted[v.ProjectID]; !ok || v.RepositoryType != repoType {
			continue
		}
		systems = append(systems, v)
		if limit > 0 && int64(len(systems)) >= limit {
			break
		}
	}
	return systems, nil
}

// ForEachCommit calls fn for every commit of the VCS system.
func (m *MockSource) ForEachCommit(_ context.Context, vcsSystemID primitive.ObjectID, fn func(Commit) error) error {
	if err := m.record("ForEachCommit"); err != nil {
		return err
	}
	for _, c := range m.Commits {
		if c.VCSSystemID != vcsSystemID {
			continue
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// FileActions returns the file actions of a commit.
func (m *MockSource) FileActions(_ context.Context, commitID primitive.ObjectID) ([]FileAction, error) {
	if err := m.record("FileActions"); err != nil {
		return nil, err
	}
	var actions []FileAction
	for _, fa := range m.FileActionRecords {
		if fa.CommitID == commitID {
			actions = append(actions, fa)
		}
	}
	return actions, nil
}

// Hunks returns the hunks of a file action.
func (m *MockSource) Hunks(_ context.Context, fileActionID primitive.ObjectID) ([]Hunk, error) {
	if err := m.record("Hunks"); err != nil {
		return nil, err
	}
	var hunks []Hunk
	for _, h := range m.HunkRecords {
		if h.FileActionID == fileActionID {
			hunks = append(hunks, h)
		}
	}
	return hunks, nil
}
