package smartshark

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Source defines read access to the SmartSHARK collections.
// This abstraction allows the exporter to run against a mock in tests.
type Source interface {
	// ProjectIDs resolves project names to ids by exact match.
	ProjectIDs(ctx context.Context, names []string) ([]primitive.ObjectID, error)

	// GitVCSSystems returns VCS systems of the given projects whose repository
	// type matches repoType, at most limit of them (0 means no limit).
	GitVCSSystems(ctx context.Context, projectIDs []primitive.ObjectID, repoType string, limit int64) ([]VCSSystem, error)

	// ForEachCommit calls fn for every commit of the VCS system.
	// Iteration stops at the first error returned by fn.
	ForEachCommit(ctx context.Context, vcsSystemID primitive.ObjectID, fn func(Commit) error) error

	// FileActions returns the file actions of a commit.
	FileActions(ctx context.Context, commitID primitive.ObjectID) ([]FileAction, error)

	// Hunks returns the hunks of a file action.
	Hunks(ctx context.Context, fileActionID primitive.ObjectID) ([]Hunk, error)
}

// Database is a Source backed by a connection that must be verified before
// use and closed afterwards.
type Database interface {
	Source
	Verify(ctx context.Context, sentinel string) error
	Close(ctx context.Context) error
}

// Compile-time interface conformance checks.
var (
	_ Database = (*MongoSource)(nil)
	_ Database = (*MockSource)(nil)
)
