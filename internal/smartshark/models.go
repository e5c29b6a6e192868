package smartshark

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names used by the SmartSHARK mining tools.
const (
	ProjectCollection    = "project"
	VCSSystemCollection  = "vcs_system"
	CommitCollection     = "commit"
	FileActionCollection = "file_action"
	HunkCollection       = "hunk"
)

// Project is a mined open-source project.
type Project struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// VCSSystem is a version-control repository attached to a project.
type VCSSystem struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID      primitive.ObjectID `bson:"project_id"`
	URL            string             `bson:"url"`
	RepositoryType string             `bson:"repository_type"`
}

// Commit is a single commit of a VCS system.
type Commit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	VCSSystemID  primitive.ObjectID `bson:"vcs_system_id"`
	RevisionHash string             `bson:"revision_hash"`
	Parents      []string           `bson:"parents"`
	Labels       bson.M             `bson:"labels,omitempty"` // nil when the commit was never labelled
}

// ParentHash returns the first parent hash, or "" for a root commit.
func (c Commit) ParentHash() string {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

// FileAction is the change record of one file within a commit.
type FileAction struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CommitID     primitive.ObjectID `bson:"commit_id"`
	Induces      []bson.D           `bson:"induces"`
	LinesAdded   int                `bson:"lines_added"`
	LinesDeleted int                `bson:"lines_deleted"`
}

// Hunk is a contiguous block of a file action's diff.
type Hunk struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FileActionID  primitive.ObjectID `bson:"file_action_id"`
	Content       string             `bson:"content"`
	NewStart      int                `bson:"new_start"`
	NewLines      int                `bson:"new_lines"`
	OldStart      int                `bson:"old_start"`
	OldLines      int                `bson:"old_lines"`
	LinesVerified bson.D             `bson:"lines_verified"`
}
