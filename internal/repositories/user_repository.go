package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/ripplr-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for profile document operations
type UserRepository interface {
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	GetProfileByID(ctx context.Context, id string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
	DeleteProfile(ctx context.Context, id string) error
	SampleProfiles(ctx context.Context, n int) ([]models.UserProfile, error)
	SearchProfilesByName(ctx context.Context, query string) ([]models.UserProfile, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("profiles")}
}

// CreateProfile inserts a new profile document
func (r *MongoUserRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	if profile.Following == nil {
		profile.Following = []string{}
	}
	if profile.Followers == nil {
		profile.Followers = []string{}
	}
	if profile.Posts == nil {
		profile.Posts = []string{}
	}
	if profile.Replies == nil {
		profile.Replies = []string{}
	}
	if profile.Likes == nil {
		profile.Likes = []string{}
	}
	_, err := r.collection.InsertOne(ctx, profile)
	return err
}

// GetProfileByID retrieves a profile by its hex id
func (r *MongoUserRepository) GetProfileByID(ctx context.Context, id string) (*models.UserProfile, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	var profile models.UserProfile
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user profile %s: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &profile, nil
}

// SaveProfile replaces the stored document with the given one. Writes
// are full-document replaces, so concurrent writers on the same
// profile are last-writer-wins.
func (r *MongoUserRepository) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user profile %s: %w", profile.ID.Hex(), models.ErrNotFound)
	}
	return nil
}

// DeleteProfile deletes a profile document by its hex id
func (r *MongoUserRepository) DeleteProfile(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("user profile %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// SampleProfiles draws a uniform random sample of n profiles from the
// whole collection, independent of graph position.
func (r *MongoUserRepository) SampleProfiles(ctx context.Context, n int) ([]models.UserProfile, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": n}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.UserProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// SearchProfilesByName finds profiles whose name contains the query,
// case-insensitive.
func (r *MongoUserRepository) SearchProfilesByName(ctx context.Context, query string) ([]models.UserProfile, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.UserProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
