// internal/app/store/inquiries/inquirystore.go
package inquiries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/tetsupaint/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no inquiry matches.
var ErrNotFound = errors.New("inquiry not found")

const (
	collectionName = "inquiries"
	maxRecent      = 200
)

// Store persists contact-form inquiries.
type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

// New creates a Store backed by the inquiries collection of db.
func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection(collectionName),
		now: time.Now,
	}
}

// EnsureIndexes creates the indexes used by the store.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_inquiry_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetName("uniq_inquiry_reference").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "client_hash", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_inquiry_client_created"),
		},
		{
			Keys:    bson.D{{Key: "notified", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_inquiry_notified_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create stores a new inquiry. ID, Reference, CreatedAt and the notified
// fields are assigned here; any values the caller set are overwritten.
func (s *Store) Create(ctx context.Context, in models.Inquiry) (models.Inquiry, error) {
	in.ID = primitive.NewObjectID()
	in.Reference = uuid.NewString()
	in.CreatedAt = s.now().UTC()
	in.Notified = false
	in.NotifiedAt = nil

	if _, err := s.c.InsertOne(ctx, in); err != nil {
		return models.Inquiry{}, fmt.Errorf("insert inquiry: %w", err)
	}
	return in, nil
}

// GetByReference returns the inquiry with the given reference.
func (s *Store) GetByReference(ctx context.Context, ref string) (models.Inquiry, error) {
	var in models.Inquiry
	err := s.c.FindOne(ctx, bson.M{"reference": ref}).Decode(&in)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Inquiry{}, ErrNotFound
	}
	if err != nil {
		return models.Inquiry{}, err
	}
	return in, nil
}

// MarkNotified records that the notification email for id went out.
func (s *Store) MarkNotified(ctx context.Context, id primitive.ObjectID) error {
	now := s.now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"notified": true, "notified_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRecent returns up to limit inquiries, newest first. limit is clamped
// to [1, 200].
func (s *Store) GetRecent(ctx context.Context, limit int) ([]models.Inquiry, error) {
	if limit <= 0 {
		limit = 1
	}
	if limit > maxRecent {
		limit = maxRecent
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Inquiry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUnnotified returns inquiries still waiting for their notification
// email, created in (createdAfter, createdBefore], oldest first.
func (s *Store) ListUnnotified(ctx context.Context, createdBefore, createdAfter time.Time, limit int) ([]models.Inquiry, error) {
	if limit <= 0 || limit > maxRecent {
		limit = maxRecent
	}
	filter := bson.M{
		"notified": false,
		"created_at": bson.M{
			"$lte": createdBefore.UTC(),
			"$gt":  createdAfter.UTC(),
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Inquiry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountSince returns how many inquiries the client sent at or after since.
func (s *Store) CountSince(ctx context.Context, clientHash string, since time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"client_hash": clientHash,
		"created_at":  bson.M{"$gte": since.UTC()},
	})
}
