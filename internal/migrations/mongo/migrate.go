package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"retreat/internal/migrations/mongo/validators"
	reservationsrepo "retreat/internal/reservations/repository"
	roomsrepo "retreat/internal/rooms/repository"
	"retreat/pkg/logger"
)

var (
	RoomsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "room_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "capacity", Value: 1}}},
	}

	ReservationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "room_ids", Value: 1},
			{Key: "check_in", Value: 1},
			{Key: "check_out", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	// _id already carries the uniqueness of (room, night)
	RoomNightSlotsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "reservation_id", Value: 1}}},
		{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "night", Value: 1}}},
	}
)

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	collections := map[string]collectionDef{
		roomsrepo.CollectionName: {
			Indexes:   RoomsIndexes,
			Validator: validators.RoomValidator,
		},
		reservationsrepo.CollectionName: {
			Indexes:   ReservationsIndexes,
			Validator: validators.ReservationValidator,
		},
		reservationsrepo.SlotCollectionName: {
			Indexes:   RoomNightSlotsIndexes,
			Validator: validators.RoomNightSlotValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
