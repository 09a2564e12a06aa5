package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	roomserrors "retreat/internal/rooms/errors"
	"retreat/pkg/config"
	mongotx "retreat/pkg/db/mongo"
	"retreat/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Rooms"
)

type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*model.Room, error)
	Find(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, error)
	Count(ctx context.Context, filter model.RoomFilter) (int64, error)
	InsertMany(ctx context.Context, rooms []*model.Room) error
}

type mongoRoomRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomRepository(cfg *config.Config) RoomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	var room model.Room
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", roomserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return &room, nil
}

// Find lists rooms ordered by room number. A limit of 0 returns every match.
func (r *mongoRoomRepository) Find(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSkip(offset).
		SetSort(bson.D{{Key: "room_number", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, buildRoomFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

func (r *mongoRoomRepository) Count(ctx context.Context, filter model.RoomFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildRoomFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

func (r *mongoRoomRepository) InsertMany(ctx context.Context, rooms []*model.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]any, len(rooms))
	for i, room := range rooms {
		room.CreatedAt = now
		room.UpdatedAt = now
		docs[i] = room
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert rooms: %w", err)
	}
	for i, id := range result.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			rooms[i].ID = oid.Hex()
		}
	}
	return nil
}

// buildRoomFilter matches type as a case-insensitive substring, so "suite"
// finds "Junior Suite" too. Regex metacharacters in the query are escaped.
func buildRoomFilter(f model.RoomFilter) bson.M {
	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Type), Options: "i"}
	}
	if f.MinCapacity > 0 {
		filter["capacity"] = bson.M{"$gte": f.MinCapacity}
	}
	return filter
}
