package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/repository"
)

const bookingCollectionName = "bookings"

// mongoBookingRepository implements repository.BookingRepository
type mongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new Booking repository backed by MongoDB.
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	return &mongoBookingRepository{
		collection: db.Collection(bookingCollectionName),
	}
}

// Create inserts a new booking. The unique slot index turns a second booking
// of the same slot into repository.ErrConflict.
func (r *mongoBookingRepository) Create(ctx context.Context, b *domain.Booking) (string, error) {
	if b.AvailabilityID == "" || b.UserID == "" {
		return "", errors.New("booking requires availabilityId and userId")
	}

	b.ID = uuid.NewString()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Status == "" {
		b.Status = domain.BookingOpen
	}

	if _, err := r.collection.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrConflict
		}
		return "", err
	}
	return b.ID, nil
}

// GetByID retrieves a booking by its ID.
func (r *mongoBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByUser retrieves every booking of a user.
func (r *mongoBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// ListByAvailability retrieves the bookings made against one window.
func (r *mongoBookingRepository) ListByAvailability(ctx context.Context, availabilityID, userID string) ([]domain.Booking, error) {
	return r.find(ctx, bson.M{"availabilityId": availabilityID, "userId": userID})
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]domain.Booking, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "bookingDate", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []domain.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus sets the status of a booking and returns the updated document.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id, userID string, status domain.BookingStatus) (*domain.Booking, error) {
	filter := bson.M{"_id": id, "userId": userID}
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b domain.Booking
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Delete removes a booking owned by userID.
func (r *mongoBookingRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByAvailability removes every booking of a deleted window.
func (r *mongoBookingRepository) DeleteByAvailability(ctx context.Context, availabilityID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"availabilityId": availabilityID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteOpenBefore removes OPEN bookings dated before date.
func (r *mongoBookingRepository) DeleteOpenBefore(ctx context.Context, date string) (int64, error) {
	filter := bson.M{
		"status":      domain.BookingOpen,
		"bookingDate": bson.M{"$lt": date},
	}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureBookingIndexes creates the unique slot index and the lookup indexes.
func EnsureBookingIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "availabilityId", Value: 1},
				{Key: "startTime", Value: 1},
				{Key: "bookingDate", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("booking_slot_unique"),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "bookingDate", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "bookingDate", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
