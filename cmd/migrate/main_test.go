package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const migrationsNS = "gadgetShop.schema_migrations"

// recorder builds migrations that only note when they ran.
type recorder struct {
	ups   []string
	downs []string
	fail  error
}

func (r *recorder) migration(version string) migration {
	return migration{
		Version: version,
		Up: func(ctx context.Context, database *mongo.Database) error {
			r.ups = append(r.ups, version)
			return r.fail
		},
		Down: func(ctx context.Context, database *mongo.Database) error {
			r.downs = append(r.downs, version)
			return r.fail
		},
	}
}

func appliedDoc(version string) bson.D {
	return bson.D{
		{Key: "_id", Value: version},
		{Key: "appliedAt", Value: time.Now().UTC()},
	}
}

func TestMigrationsSorted(t *testing.T) {
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
}

func TestRun_UnknownMode(t *testing.T) {
	err := run(context.Background(), nil, "sideways", nil)
	assert.ErrorContains(t, err, "unknown mode")
}

func TestRunMigrationsUp(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Skips applied and records new", func(mt *mtest.T) {
		rec := &recorder{}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, migrationsNS, mtest.FirstBatch, appliedDoc("001_a")),
			mtest.CreateCursorResponse(0, migrationsNS, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		// Given out of order on purpose
		err := run(ctx, mt.DB, "up", []migration{rec.migration("002_b"), rec.migration("001_a")})

		require.NoError(mt, err)
		assert.Equal(mt, []string{"002_b"}, rec.ups)
	})

	mt.Run("Stops on failure", func(mt *mtest.T) {
		rec := &recorder{fail: errors.New("boom")}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, migrationsNS, mtest.FirstBatch))

		err := run(ctx, mt.DB, "up", []migration{rec.migration("001_a"), rec.migration("002_b")})

		assert.ErrorContains(mt, err, "Migration failed (001_a)")
		assert.Equal(mt, []string{"001_a"}, rec.ups)
	})

	mt.Run("Status check error", func(mt *mtest.T) {
		rec := &recorder{}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))

		err := run(ctx, mt.DB, "up", []migration{rec.migration("001_a")})

		assert.ErrorContains(mt, err, "failed to check migration status")
		assert.Empty(mt, rec.ups)
	})
}

func TestRunMigrationsDown(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Rolls back latest", func(mt *mtest.T) {
		rec := &recorder{}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, migrationsNS, mtest.FirstBatch, appliedDoc("002_b")),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		err := run(ctx, mt.DB, "down", []migration{rec.migration("001_a"), rec.migration("002_b")})

		require.NoError(mt, err)
		assert.Equal(mt, []string{"002_b"}, rec.downs)
	})

	mt.Run("Nothing applied", func(mt *mtest.T) {
		rec := &recorder{}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, migrationsNS, mtest.FirstBatch))

		err := run(ctx, mt.DB, "down", []migration{rec.migration("001_a")})

		require.NoError(mt, err)
		assert.Empty(mt, rec.downs)
	})

	mt.Run("Unknown version", func(mt *mtest.T) {
		rec := &recorder{}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, migrationsNS, mtest.FirstBatch, appliedDoc("999_gone")))

		err := run(ctx, mt.DB, "down", []migration{rec.migration("001_a")})

		assert.ErrorContains(mt, err, "migration not found for version: 999_gone")
	})
}

func TestProductIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Up creates both indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, migrations[1].Up(context.Background(), mt.DB))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "createIndexes", started.CommandName)

		values, err := started.Command.Lookup("indexes").Array().Values()
		require.NoError(mt, err)
		assert.Len(mt, values, 2)
	})

	mt.Run("Names are set", func(mt *mtest.T) {
		for _, idx := range productIndexes() {
			require.NotNil(mt, idx.Options.Name)
			assert.NotEmpty(mt, *idx.Options.Name)
		}
	})
}
