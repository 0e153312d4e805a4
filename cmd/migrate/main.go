package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"gadgetshop-be/internal/config"
	"gadgetshop-be/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const migrationsCollection = "schema_migrations"

// migration is one versioned change to collections or indexes. Versions sort
// lexically in apply order.
type migration struct {
	Version string
	Up      func(ctx context.Context, database *mongo.Database) error
	Down    func(ctx context.Context, database *mongo.Database) error
}

type appliedMigration struct {
	Version   string    `bson:"_id"`
	AppliedAt time.Time `bson:"appliedAt"`
}

var migrations = []migration{
	{
		Version: "20240101_users_email_unique",
		Up:      db.EnsureIndexes,
		Down: func(ctx context.Context, database *mongo.Database) error {
			_, err := database.Collection(db.UsersCollection).Indexes().DropOne(ctx, db.UsersEmailIndex)
			return err
		},
	},
	{
		Version: "20240102_products_search_indexes",
		Up: func(ctx context.Context, database *mongo.Database) error {
			_, err := database.Collection(db.ProductsCollection).Indexes().CreateMany(ctx, productIndexes())
			return err
		},
		Down: func(ctx context.Context, database *mongo.Database) error {
			indexes := database.Collection(db.ProductsCollection).Indexes()
			for _, idx := range productIndexes() {
				if _, err := indexes.DropOne(ctx, *idx.Options.Name); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// productIndexes back the brand filter and the price sort of the catalog search.
func productIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "brand", Value: 1}, {Key: "price", Value: -1}},
			Options: options.Index().SetName("products_brand_price"),
		},
		{
			Keys:    bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("products_price"),
		},
	}
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	flag.Parse()

	cfg, err := config.LoadStoreConfig()
	if err != nil {
		log.Fatal(err)
	}

	database, err := db.NewDatabase(cfg, nil)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer database.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, database.DB, *mode, migrations); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, database *mongo.Database, mode string, all []migration) error {
	sorted := make([]migration, len(all))
	copy(sorted, all)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	switch mode {
	case "up":
		return runMigrationsUp(ctx, database, sorted)
	case "down":
		return runMigrationsDown(ctx, database, sorted)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up' or 'down')", mode)
	}
}

func runMigrationsUp(ctx context.Context, database *mongo.Database, all []migration) error {
	applied := database.Collection(migrationsCollection)

	for _, m := range all {
		err := applied.FindOne(ctx, bson.M{"_id": m.Version}).Err()
		if err == nil {
			fmt.Printf("⏭ Skipping already applied migration: %s\n", m.Version)
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("failed to check migration status: %w", err)
		}

		fmt.Printf("🚀 Applying migration: %s\n", m.Version)
		if err := m.Up(ctx, database); err != nil {
			return fmt.Errorf("❌ Migration failed (%s): %w", m.Version, err)
		}

		if _, err := applied.InsertOne(ctx, appliedMigration{Version: m.Version, AppliedAt: time.Now().UTC()}); err != nil {
			return fmt.Errorf("failed to record migration version: %w", err)
		}
	}
	fmt.Println("✅ All new migrations applied successfully.")
	return nil
}

func runMigrationsDown(ctx context.Context, database *mongo.Database, all []migration) error {
	applied := database.Collection(migrationsCollection)

	var last appliedMigration
	err := applied.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "appliedAt", Value: -1}, {Key: "_id", Value: -1}}),
	).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		fmt.Println("⚠️  No migrations to roll back.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	var target *migration
	for i := range all {
		if all[i].Version == last.Version {
			target = &all[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration not found for version: %s", last.Version)
	}

	fmt.Printf("🧹 Rolling back migration: %s\n", last.Version)
	if err := target.Down(ctx, database); err != nil {
		return fmt.Errorf("❌ Rollback failed (%s): %w", last.Version, err)
	}

	if _, err := applied.DeleteOne(ctx, bson.M{"_id": last.Version}); err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}

	fmt.Println("✅ Rollback successful.")
	return nil
}
