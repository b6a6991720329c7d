package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

// ErrPondNotFound is returned when no pond carries the requested id.
var ErrPondNotFound = errors.New("pond not found")

const (
	pondsCollection      = "ponds"
	populationCollection = "population_events"
	feedCollection       = "feed_events"
	harvestCollection    = "harvest_events"
	expenseCollection    = "expense_events"
	sampleCollection     = "biomass_samples"
	reportCollection     = "pond_reports"
)

// Repository defines pond and event storage.
type Repository interface {
	GetPond(ctx context.Context, id string) (models.Pond, error)
	ListPonds(ctx context.Context) ([]models.Pond, error)
	SavePond(ctx context.Context, pond models.Pond) error
	LoadSnapshot(ctx context.Context, pondID string) (models.Snapshot, error)
	RecordPopulation(ctx context.Context, event models.PopulationEvent) error
	RecordFeed(ctx context.Context, event models.FeedEvent) error
	RecordHarvest(ctx context.Context, event models.HarvestEvent) error
	RecordExpense(ctx context.Context, event models.ExpenseEvent) error
	RecordSample(ctx context.Context, sample models.BiomassSample) error
	SavePondReport(ctx context.Context, report models.PondReport) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, db: client.Database(dbName)}, nil
}

// GetPond loads one pond.
func (r *MongoDBRepository) GetPond(ctx context.Context, id string) (models.Pond, error) {
	var pond models.Pond
	err := r.db.Collection(pondsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&pond)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Pond{}, fmt.Errorf("pond %s: %w", id, ErrPondNotFound)
	}
	if err != nil {
		return models.Pond{}, fmt.Errorf("failed to load pond %s: %w", id, err)
	}
	return pond, nil
}

// ListPonds returns every pond ordered by id.
func (r *MongoDBRepository) ListPonds(ctx context.Context) ([]models.Pond, error) {
	cur, err := r.db.Collection(pondsCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list ponds: %w", err)
	}

	var ponds []models.Pond
	if err := cur.All(ctx, &ponds); err != nil {
		return nil, fmt.Errorf("failed to decode ponds: %w", err)
	}
	return ponds, nil
}

// SavePond inserts or replaces a pond.
func (r *MongoDBRepository) SavePond(ctx context.Context, pond models.Pond) error {
	_, err := r.db.Collection(pondsCollection).ReplaceOne(ctx, bson.M{"_id": pond.ID}, pond, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save pond %s: %w", pond.ID, err)
	}
	return nil
}

// LoadSnapshot reads a pond with all of its events. Stock movements live in
// the sheets ledger and are left empty here.
func (r *MongoDBRepository) LoadSnapshot(ctx context.Context, pondID string) (models.Snapshot, error) {
	pond, err := r.GetPond(ctx, pondID)
	if err != nil {
		return models.Snapshot{}, err
	}

	snap := models.Snapshot{Pond: pond}
	if snap.Population, err = findByPond[models.PopulationEvent](ctx, r.db.Collection(populationCollection), pondID); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Feed, err = findByPond[models.FeedEvent](ctx, r.db.Collection(feedCollection), pondID); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Harvests, err = findByPond[models.HarvestEvent](ctx, r.db.Collection(harvestCollection), pondID); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Expenses, err = findByPond[models.ExpenseEvent](ctx, r.db.Collection(expenseCollection), pondID); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Samples, err = findByPond[models.BiomassSample](ctx, r.db.Collection(sampleCollection), pondID); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// RecordPopulation stores the event and moves the pond to its resulting total.
func (r *MongoDBRepository) RecordPopulation(ctx context.Context, event models.PopulationEvent) error {
	set := bson.M{"population": event.Total}
	if event.IsStocking() {
		set["stocked_at"] = event.Date
		set["status"] = "stocked"
	} else if event.Total == 0 {
		set["status"] = "empty"
	}

	res, err := r.db.Collection(pondsCollection).UpdateOne(ctx, bson.M{"_id": event.PondID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update pond %s population: %w", event.PondID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("pond %s: %w", event.PondID, ErrPondNotFound)
	}

	return r.insert(ctx, populationCollection, event)
}

// RecordFeed stores a feeding.
func (r *MongoDBRepository) RecordFeed(ctx context.Context, event models.FeedEvent) error {
	return r.insert(ctx, feedCollection, event)
}

// RecordHarvest stores a harvest. Population changes are recorded separately.
func (r *MongoDBRepository) RecordHarvest(ctx context.Context, event models.HarvestEvent) error {
	return r.insert(ctx, harvestCollection, event)
}

// RecordExpense stores an expense.
func (r *MongoDBRepository) RecordExpense(ctx context.Context, event models.ExpenseEvent) error {
	return r.insert(ctx, expenseCollection, event)
}

// RecordSample stores a biomass sample.
func (r *MongoDBRepository) RecordSample(ctx context.Context, sample models.BiomassSample) error {
	return r.insert(ctx, sampleCollection, sample)
}

// SavePondReport saves a weekly pond report.
func (r *MongoDBRepository) SavePondReport(ctx context.Context, report models.PondReport) error {
	return r.insert(ctx, reportCollection, report)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) insert(ctx context.Context, collection string, doc any) error {
	if _, err := r.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return nil
}

func findByPond[T any](ctx context.Context, coll *mongo.Collection, pondID string) ([]T, error) {
	cur, err := coll.Find(ctx, bson.M{"pond_id": pondID})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}
