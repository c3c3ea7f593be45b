package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile is the denormalized profile document stored in MongoDB.
// Relationship edges are recorded on both sides: if B appears in
// A.Following then A must appear in B.Followers, and if a post id
// appears in Likes then this user's id must be a key in that post's
// likes map. The engine package is the only code path allowed to
// mutate these arrays.
type UserProfile struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name               string             `json:"name" bson:"name"`
	Gender             string             `json:"gender,omitempty" bson:"gender,omitempty"`
	BirthDate          *time.Time         `json:"birth_date,omitempty" bson:"birth_date,omitempty"`
	Bio                string             `json:"bio" bson:"bio"`
	ProfilePicturePath string             `json:"profile_picture_path" bson:"profile_picture_path"`
	Following          []string           `json:"following" bson:"following"`
	Followers          []string           `json:"followers" bson:"followers"`
	Posts              []string           `json:"posts" bson:"posts"`
	Replies            []string           `json:"replies" bson:"replies"`
	Likes              []string           `json:"likes" bson:"likes"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// UserSummary is the only user shape returned for lists (following,
// followers, suggestions, search results).
type UserSummary struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Bio                string `json:"bio"`
	ProfilePicturePath string `json:"profile_picture_path"`
}

// Summary projects the profile down to its display fields.
func (u *UserProfile) Summary() UserSummary {
	return UserSummary{
		ID:                 u.ID.Hex(),
		Name:               u.Name,
		Bio:                u.Bio,
		ProfilePicturePath: u.ProfilePicturePath,
	}
}

// UpdateProfileRequest defines the request body for updating profile display fields
type UpdateProfileRequest struct {
	Name               string     `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Gender             string     `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	Bio                string     `json:"bio,omitempty" validate:"omitempty,max=160"`
	ProfilePicturePath string     `json:"profile_picture_path,omitempty"`
}

// SearchUsersRequest defines the request body for a name search
type SearchUsersRequest struct {
	SearchQuery string `json:"search_query" validate:"required,min=1"`
}
