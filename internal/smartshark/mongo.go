package smartshark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrConnectivity is returned when the database cannot be reached or does not
// hold the expected dataset.
var ErrConnectivity = errors.New("connection to database failed, please check your credentials and that mongod is running")

// Options configures a MongoSource.
type Options struct {
	Credentials            Credentials
	Database               string
	ServerSelectionTimeout time.Duration
	Logger                 zerolog.Logger
}

// MongoSource reads SmartSHARK records from MongoDB.
type MongoSource struct {
	client *mongo.Client
	db     *mongo.Database
	log    zerolog.Logger
}

// Open connects to MongoDB. The driver connects lazily, so reachability is
// only known after the first query; call Verify to check it.
func Open(ctx context.Context, opts Options) (*MongoSource, error) {
	clientOpts := options.Client().ApplyURI(BuildURI(opts.Credentials))
	if opts.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(opts.ServerSelectionTimeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	opts.Logger.Debug().
		Str("host", opts.Credentials.Hostname).
		Int("port", opts.Credentials.Port).
		Str("database", opts.Database).
		Msg("mongo client created")

	return &MongoSource{
		client: client,
		db:     client.Database(opts.Database),
		log:    opts.Logger,
	}, nil
}

// Close disconnects the underlying client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Verify checks that the sentinel project exists, which proves both that the
// server answers and that the expected dataset is loaded.
func (s *MongoSource) Verify(ctx context.Context, sentinel string) error {
	var p Project
	err := s.db.Collection(ProjectCollection).FindOne(ctx, bson.D{{Key: "name", Value: sentinel}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: sentinel project %q not found", ErrConnectivity, sentinel)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	return nil
}

// ProjectIDs resolves project names to ids by exact match.
func (s *MongoSource) ProjectIDs(ctx context.Context, names []string) ([]primitive.ObjectID, error) {
	filter := bson.D{{Key: "name", Value: inFilter(names)}}
	findOpts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: "name", Value: 1}})

	var projects []Project
	if err := s.findAll(ctx, ProjectCollection, filter, &projects, findOpts); err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// GitVCSSystems returns VCS systems of the given projects with the requested
// repository type. Ordering is the server's natural order.
func (s *MongoSource) GitVCSSystems(ctx context.Context, projectIDs []primitive.ObjectID, repoType string, limit int64) ([]VCSSystem, error) {
	filter := bson.D{
		{Key: "project_id", Value: inFilter(projectIDs)},
		{Key: "repository_type", Value: repoType},
	}
	findOpts := options.Find()
	if limit > 0 {
		findOpts.SetLimit(limit)
	}

	var systems []VCSSystem
	if err := s.findAll(ctx, VCSSystemCollection, filter, &systems, findOpts); err != nil {
		return nil, fmt.Errorf("failed to query vcs systems: %w", err)
	}
	return systems, nil
}

// ForEachCommit streams the commits of a VCS system. Only the fields needed
// for qualification and output are fetched.
func (s *MongoSource) ForEachCommit(ctx context.Context, vcsSystemID primitive.ObjectID, fn func(Commit) error) error {
	filter := bson.D{{Key: "vcs_system_id", Value: vcsSystemID}}
	findOpts := options.Find().SetProjection(bson.D{
		{Key: "vcs_system_id", Value: 1},
		{Key: "revision_hash", Value: 1},
		{Key: "parents", Value: 1},
		{Key: "labels", Value: 1},
	})

	cur, err := s.db.Collection(CommitCollection).Find(ctx, filter, findOpts)
	if err != nil {
		return fmt.Errorf("failed to query commits: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var c Commit
		if err := cur.Decode(&c); err != nil {
			return fmt.Errorf("failed to decode commit: %w", err)
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("commit cursor: %w", err)
	}
	return nil
}

// FileActions returns the file actions of a commit.
func (s *MongoSource) FileActions(ctx context.Context, commitID primitive.ObjectID) ([]FileAction, error) {
	var actions []FileAction
	filter := bson.D{{Key: "commit_id", Value: commitID}}
	if err := s.findAll(ctx, FileActionCollection, filter, &actions); err != nil {
		return nil, fmt.Errorf("failed to query file actions of %s: %w", commitID.Hex(), err)
	}
	return actions, nil
}

// Hunks returns the hunks of a file action.
func (s *MongoSource) Hunks(ctx context.Context, fileActionID primitive.ObjectID) ([]Hunk, error) {
	var hunks []Hunk
	filter := bson.D{{Key: "file_action_id", Value: fileActionID}}
	if err := s.findAll(ctx, HunkCollection, filter, &hunks); err != nil {
		return nil, fmt.Errorf("failed to query hunks of %s: %w", fileActionID.Hex(), err)
	}
	return hunks, nil
}

func (s *MongoSource) findAll(ctx context.Context, collection string, filter any, results any, opts ...*options.FindOptions) error {
	cur, err := s.db.Collection(collection).Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	return cur.All(ctx, results)
}

// inFilter builds an $in operator. A nil slice would encode as null, which
// the server rejects, so it is sent as an empty array.
func inFilter[T any](values []T) bson.D {
	if values == nil {
		values = []T{}
	}
	return bson.D{{Key: "$in", Value: values}}
}
