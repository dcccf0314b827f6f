package store

import (
	"context"
	"fmt"
	"net"
	"strconv"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nanoncore/ont-cleaner/model"
	"github.com/nanoncore/ont-cleaner/types"
)

// MongoConfig addresses the MongoDB server
type MongoConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// URI returns the connection string without credentials
func (c MongoConfig) URI() string {
	return "mongodb://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Mongo stores records in olt_operations.ont_deletions
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// ConnectMongo opens a client and checks the server answers
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI())
	if cfg.Username != "" {
		clientOptions.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, types.NewError(types.ErrConnection, "connect "+cfg.URI(), err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, types.NewError(types.ErrConnection, "ping "+cfg.URI(), err)
	}

	log.WithField("uri", cfg.URI()).Debug("Connected to MongoDB")

	return NewMongo(client), nil
}

// NewMongo wraps an existing client
func NewMongo(client *mongo.Client) *Mongo {
	return &Mongo{
		client:     client,
		collection: client.Database(DatabaseName).Collection(CollectionName),
	}
}

// Insert implements Store
func (m *Mongo) Insert(ctx context.Context, rec model.DeletionRecord) error {
	if _, err := m.collection.InsertOne(ctx, rec); err != nil {
		return types.NewError(types.ErrStore, fmt.Sprintf("insert record for port %d", rec.Port), err)
	}
	return nil
}

// Count implements Store
func (m *Mongo) Count(ctx context.Context) (int64, error) {
	n, err := m.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, types.NewError(types.ErrStore, "count records", err)
	}
	return n, nil
}

// FindPage implements Store
func (m *Mongo) FindPage(ctx context.Context, skip, limit int64) ([]model.DeletionRecord, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "timestamp", Value: -1}})
	findOptions.SetSkip(skip)
	findOptions.SetLimit(limit)

	cur, err := m.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, types.NewError(types.ErrStore, "find records", err)
	}
	defer cur.Close(ctx)

	records := make([]model.DeletionRecord, 0, limit)
	for cur.Next(ctx) {
		var rec model.DeletionRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, types.NewError(types.ErrStore, "decode record", err)
		}
		rec.Timestamp = rec.Timestamp.UTC()
		records = append(records, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, types.NewError(types.ErrStore, "iterate records", err)
	}
	return records, nil
}

// Close disconnects the client
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

var _ Store = (*Mongo)(nil)
