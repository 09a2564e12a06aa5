package repository

import (
	"context"
	"errors"
	"fmt"
	reservationserrors "retreat/internal/reservations/errors"
	"retreat/pkg/config"
	mongotx "retreat/pkg/db/mongo"
	"retreat/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SlotCollectionName = "Room_night_slots"
)

// SlotRepository claims and releases room-night slots. Slots are keyed by
// "<roomID>:<YYYY-MM-DD>", so the unique _id index makes a double booking fail
// on insert.
type SlotRepository interface {
	Claim(ctx context.Context, slots []model.RoomNightSlot) error
	ReleaseByReservation(ctx context.Context, reservationID string) (int64, error)
}

type mongoSlotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSlotRepository(cfg *config.Config) SlotRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotRepository{
		cfg:        cfg,
		collection: db.Collection(SlotCollectionName),
	}
}

// Claim inserts every slot or fails. A duplicate key is reported as a
// *SlotTakenError naming the first room that was already held.
func (r *mongoSlotRepository) Claim(ctx context.Context, slots []model.RoomNightSlot) error {
	if len(slots) == 0 {
		return nil
	}
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	docs := make([]any, len(slots))
	for i := range slots {
		docs[i] = slots[i]
	}

	result, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			slot := slots[firstFailedIndex(err)]
			return &reservationserrors.SlotTakenError{RoomID: slot.RoomID, Night: slot.Night, Err: err}
		}
		return fmt.Errorf("failed to claim room-night slots: %w", err)
	}

	if len(result.InsertedIDs) != len(slots) {
		return fmt.Errorf("%w: claimed %d of %d slots", reservationserrors.ErrPartialCommit, len(result.InsertedIDs), len(slots))
	}
	return nil
}

func (r *mongoSlotRepository) ReleaseByReservation(ctx context.Context, reservationID string) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"reservation_id": reservationID})
	if err != nil {
		return 0, fmt.Errorf("failed to release room-night slots: %w", err)
	}
	return result.DeletedCount, nil
}

func firstFailedIndex(err error) int {
	var bulkErr mongo.BulkWriteException
	if errors.As(err, &bulkErr) && len(bulkErr.WriteErrors) > 0 {
		return bulkErr.WriteErrors[0].Index
	}
	return 0
}
