package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/theprob/frontpage/internal/models"
)

// RunDocument is one archived pipeline run. The archive exists for history
// and debugging; the artifact file stays the only input to the next run.
type RunDocument struct {
	RunID       string          `bson:"run_id" json:"run_id"`
	GeneratedAt time.Time       `bson:"generated_at" json:"generated_at"`
	Hero        *models.Market  `bson:"hero" json:"hero"`
	Movers      []models.Market `bson:"movers" json:"movers"`
	Ticker      []models.Market `bson:"ticker" json:"ticker"`
	CatalogSize int             `bson:"catalog_size" json:"catalog_size"`
}

// Archive stores past selection runs in MongoDB.
type Archive struct {
	client *mongo.Client
	runs   *mongo.Collection
}

// NewArchive connects to MongoDB and prepares the runs collection.
func NewArchive(ctx context.Context, uri, dbName string) (*Archive, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	runs := client.Database(dbName).Collection("runs")

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "run_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "generated_at", Value: -1}}},
	}
	if _, err := runs.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn().Err(err).Msg("Failed to create run indexes")
	}

	log.Info().Str("db", dbName).Msg("Connected to run archive")
	return &Archive{client: client, runs: runs}, nil
}

// Close closes the database connection.
func (a *Archive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

// SaveRun archives one selection result.
func (a *Archive) SaveRun(ctx context.Context, result *models.SelectionResult) error {
	doc := RunDocument{
		RunID:       uuid.NewString(),
		GeneratedAt: result.GeneratedAt,
		Hero:        result.Hero,
		Movers:      result.Movers,
		Ticker:      result.Ticker,
		CatalogSize: len(result.Catalog),
	}
	_, err := a.runs.InsertOne(ctx, doc)
	return err
}

// RecentRuns returns the newest archived runs, most recent first.
func (a *Archive) RecentRuns(ctx context.Context, limit int) ([]RunDocument, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := a.runs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []RunDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
