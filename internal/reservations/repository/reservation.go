package repository

import (
	"context"
	"errors"
	"fmt"
	reservationserrors "retreat/internal/reservations/errors"
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
	CollectionName = "Reservations"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindActiveByRoom(ctx context.Context, roomID string, interval model.Interval) ([]*model.Reservation, error)
	Find(ctx context.Context, filter model.ReservationFilter, limit int, offset int64) ([]*model.Reservation, error)
	Count(ctx context.Context, filter model.ReservationFilter) (int64, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	ReplaceGuests(ctx context.Context, id string, guests []model.Guest) error
	Delete(ctx context.Context, id string) error

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}

	var reservation model.Reservation
	err = r.collection.FindOne(ctx, filter).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", reservationserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &reservation, nil
}

// FindActiveByRoom returns the non-cancelled reservations on roomID whose stay
// overlaps interval.
func (r *mongoReservationRepository) FindActiveByRoom(ctx context.Context, roomID string, interval model.Interval) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"room_ids":  roomID,
		"status":    bson.M{"$ne": config.Cancelled},
		"check_in":  bson.M{"$lt": interval.End},
		"check_out": bson.M{"$gt": interval.Start},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations for room %s: %w", roomID, err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

// Find lists reservations newest first.
func (r *mongoReservationRepository) Find(ctx context.Context, filter model.ReservationFilter, limit int, offset int64) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, buildSearchFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

func (r *mongoReservationRepository) Count(ctx context.Context, filter model.ReservationFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildSearchFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

func (r *mongoReservationRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.update(ctx, id, bson.M{"status": status})
}

func (r *mongoReservationRepository) ReplaceGuests(ctx context.Context, id string, guests []model.Guest) error {
	return r.update(ctx, id, bson.M{"guests": guests})
}

func (r *mongoReservationRepository) update(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := idFilter(id)
	if err != nil {
		return err
	}

	fields["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", reservationserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoReservationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := idFilter(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", reservationserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func idFilter(id string) (bson.M, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}
	return bson.M{"_id": objectID}, nil
}

func buildSearchFilter(f model.ReservationFilter) bson.M {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}
