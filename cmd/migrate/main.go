package main

import (
	"context"
	"time"

	mongoMigration "retreat/internal/migrations/mongo"
	roomsrepo "retreat/internal/rooms/repository"
	roomsvalidator "retreat/internal/rooms/validator"
	"retreat/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	migrateMongo(ctx, cfg)
	seedRooms(ctx, cfg)
	cfg.Log.Info("Migration completed successfully")
}

func migrateMongo(ctx context.Context, cfg *config.Config) {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}

func seedRooms(ctx context.Context, cfg *config.Config) {
	repo := roomsrepo.NewMongoRoomRepository(cfg)
	if _, err := mongoMigration.SeedRooms(ctx, repo, roomsvalidator.NewRoomValidator(), cfg.Log); err != nil {
		cfg.Log.Fatal("Room seed failed", "error", err)
	}
}
