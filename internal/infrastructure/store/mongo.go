package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stylelens/backend/internal/domain"
)

// Collection names
const (
	usersCollection        = "users"
	interactionsCollection = "interactions"
)

// DB wraps a connected MongoDB client and its database
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewConnection connects to MongoDB and verifies the connection with a ping
func NewConnection(ctx context.Context, uri, database string) (*DB, error) {
	clientOptions := options.Client().ApplyURI(uri)
	clientOptions.SetMaxPoolSize(10)
	clientOptions.SetMaxConnIdleTime(30 * time.Second)
	clientOptions.SetTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &DB{
		client:   client,
		database: client.Database(database),
	}, nil
}

// Close disconnects the client
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// Database returns the configured database handle
func (db *DB) Database() *mongo.Database {
	return db.database
}

// profileDocument is the stored shape of a user profile
type profileDocument struct {
	UserID       string    `bson:"_id"`
	Interests    []string  `bson:"interests"`
	FashionStyle string    `bson:"fashion_style,omitempty"`
	Gender       string    `bson:"gender,omitempty"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// MongoProfileStore reads and writes preferences in the users collection
type MongoProfileStore struct {
	collection *mongo.Collection
}

// NewMongoProfileStore creates a profile store on the users collection
func NewMongoProfileStore(db *DB) *MongoProfileStore {
	return &MongoProfileStore{collection: db.Database().Collection(usersCollection)}
}

// GetPreference loads the preference stored for userID
func (r *MongoProfileStore) GetPreference(ctx context.Context, userID string) (*domain.UserPreference, error) {
	var doc profileDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &domain.UserPreference{
		Interests:    doc.Interests,
		FashionStyle: doc.FashionStyle,
		Gender:       doc.Gender,
	}, nil
}

// SavePreference upserts the preference for userID
func (r *MongoProfileStore) SavePreference(ctx context.Context, userID string, pref domain.UserPreference) error {
	interests := pref.Interests
	if interests == nil {
		interests = []string{}
	}

	filter := bson.M{"_id": userID}
	update := bson.M{
		"$set": bson.M{
			"interests":     interests,
			"fashion_style": pref.FashionStyle,
			"gender":        pref.Gender,
			"updated_at":    time.Now().UTC(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// MongoInteractionStore persists tracked interactions
type MongoInteractionStore struct {
	collection *mongo.Collection
}

// NewMongoInteractionStore creates an interaction store on the interactions collection
func NewMongoInteractionStore(db *DB) *MongoInteractionStore {
	return &MongoInteractionStore{collection: db.Database().Collection(interactionsCollection)}
}

// EnsureIndexes creates the indexes used by trending aggregation
func (r *MongoInteractionStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create interaction indexes: %w", err)
	}
	return nil
}

// Record inserts one interaction
func (r *MongoInteractionStore) Record(ctx context.Context, interaction domain.Interaction) error {
	if _, err := r.collection.InsertOne(ctx, interaction); err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	return nil
}

// CountByProduct aggregates interaction counts grouped by product id
func (r *MongoInteractionStore) CountByProduct(ctx context.Context) (map[string]int, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$product_id", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate interactions: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ProductID string `bson:"_id"`
		Count     int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode interaction counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.ProductID] = row.Count
	}
	return counts, nil
}
