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

const availabilityCollectionName = "availabilities"

// mongoAvailabilityRepository implements repository.AvailabilityRepository
type mongoAvailabilityRepository struct {
	collection *mongo.Collection
}

// NewMongoAvailabilityRepository creates a new Availability repository.
func NewMongoAvailabilityRepository(db *mongo.Database) repository.AvailabilityRepository {
	return &mongoAvailabilityRepository{
		collection: db.Collection(availabilityCollectionName),
	}
}

// Create inserts a new availability window.
func (r *mongoAvailabilityRepository) Create(ctx context.Context, a *domain.Availability) (string, error) {
	if a.UserID == "" || a.Date == "" {
		return "", errors.New("availability requires userId and date")
	}
	a.ID = uuid.NewString()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

// GetByID retrieves a single window by its ID.
func (r *mongoAvailabilityRepository) GetByID(ctx context.Context, id string) (*domain.Availability, error) {
	var a domain.Availability
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByUser retrieves the user's windows, optionally bounded by date.
// Dates are stored as YYYY-MM-DD so string comparison orders them.
func (r *mongoAvailabilityRepository) ListByUser(ctx context.Context, userID, startDate, endDate string) ([]domain.Availability, error) {
	filter := bson.M{"userId": userID}
	dateRange := bson.M{}
	if startDate != "" {
		dateRange["$gte"] = startDate
	}
	if endDate != "" {
		dateRange["$lte"] = endDate
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []domain.Availability{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update saves the editable fields of a window owned by a.UserID.
func (r *mongoAvailabilityRepository) Update(ctx context.Context, a *domain.Availability) error {
	a.UpdatedAt = time.Now().UTC()
	filter := bson.M{"_id": a.ID, "userId": a.UserID}
	update := bson.M{
		"$set": bson.M{
			"date":        a.Date,
			"startTime":   a.StartTime,
			"endTime":     a.EndTime,
			"sessionName": a.SessionName,
			"isRecurring": a.IsRecurring,
			"updatedAt":   a.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a window owned by userID.
func (r *mongoAvailabilityRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureAvailabilityIndexes creates the index used by date range listing.
func EnsureAvailabilityIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}, {Key: "startTime", Value: 1}},
	})
	return err
}
