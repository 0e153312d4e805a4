package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gadgetshop-be/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection    = "users"
	ProductsCollection = "products"

	UsersEmailIndex = "users_email_key"

	connectTimeout = 10 * time.Second
)

// Database bundles the long-lived client with the application database.
// It is created once at startup and passed to every repository.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func (d *Database) Users() *mongo.Collection {
	return d.DB.Collection(UsersCollection)
}

func (d *Database) Products() *mongo.Collection {
	return d.DB.Collection(ProductsCollection)
}

func (d *Database) Close(ctx context.Context) error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Disconnect(ctx)
}

func InitDB(cfg *config.Config, monitor *event.CommandMonitor) *Database {
	database, err := NewDatabase(cfg, monitor)
	if err != nil {
		log.Fatalf("%v", err)
	}

	log.Println("Pinged your deployment. You successfully connected to MongoDB!")
	return database
}

// NewDatabase connects, pings and prepares indexes. monitor may be nil.
func NewDatabase(cfg *config.Config, monitor *event.CommandMonitor) (*Database, error) {
	uri := cfg.StoreURI()
	if uri == "" {
		return nil, errors.New("failed to connect to DB: no connection string configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(uri, monitor))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	database := &Database{Client: client, DB: client.Database(cfg.DBName)}

	if err := EnsureIndexes(ctx, database.DB); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return database, nil
}

func clientOptions(uri string, monitor *event.CommandMonitor) *options.ClientOptions {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetServerSelectionTimeout(connectTimeout)
	if monitor != nil {
		opts.SetMonitor(monitor)
	}
	return opts
}

// EnsureIndexes creates the unique email index backing the one-account-per-email rule.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(UsersEmailIndex),
	})
	if err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}
	return nil
}
