package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a content document stored in MongoDB. Top-level posts have
// an empty ParentPostID; replies carry the id of the thread root in
// ParentPostID (so the whole flat reply set of a thread is one query)
// and the id of the specific post they address in ReplyingTo (empty
// when replying to the root directly). The root's Replies array
// mirrors ParentPostID and lists every reply of the thread in
// creation order.
//
// The like count of a post is always len(Likes); there is no stored
// counter to drift.
type Post struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID             string             `json:"user_id" bson:"user_id"`
	Name               string             `json:"name" bson:"name"`
	ProfilePicturePath string             `json:"profile_picture_path" bson:"profile_picture_path"`
	Tag                string             `json:"tag,omitempty" bson:"tag,omitempty"`
	Description        string             `json:"description" bson:"description"`
	PostPicturePath    string             `json:"post_picture_path" bson:"post_picture_path"`
	Likes              map[string]bool    `json:"likes" bson:"likes"`
	Replies            []string           `json:"replies" bson:"replies"`
	ParentPostID       string             `json:"parent_post_id" bson:"parent_post_id"`
	ReplyingTo         string             `json:"replying_to" bson:"replying_to"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// ThreadEntry is a reply annotated with its nesting depth for display.
// Direct replies to the thread root are depth 0.
type ThreadEntry struct {
	Post
	Depth int `json:"depth"`
}

// CreatePostRequest defines the request body for creating a post or a reply.
// Description and post picture may not both be empty.
type CreatePostRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	Tag             string `json:"tag,omitempty" validate:"omitempty,max=30"`
	Description     string `json:"description,omitempty" validate:"omitempty,max=500"`
	PostPicturePath string `json:"post_picture_path,omitempty"`
}

// UpdatePostRequest defines the request body for editing a post
type UpdatePostRequest struct {
	Description     string `json:"description,omitempty" validate:"omitempty,max=500"`
	PostPicturePath string `json:"post_picture_path,omitempty"`
}
