// Package engine maintains referential consistency across the
// denormalized profile and post collections and derives transient
// views from the follow graph. It is the only code path allowed to
// mutate the Following/Followers, Likes and Posts/Replies arrays, so
// the bidirectional-reference invariants have a single enforcement
// point.
package engine

import (
	"context"
	"log"

	"github.com/ripplr-app/backend/internal/models"
	"github.com/ripplr-app/backend/internal/repositories"
)

// Relationships mutates the follow/follower and like/liked edge
// pairs. An edge is stored redundantly on both sides; every mutation
// here touches two documents with two independent, non-transactional
// writes. If the second write fails after the first succeeded the
// symmetry invariant is temporarily broken: that is logged and the
// operation still reports success with the data it wrote. The next
// toggle on the same pair re-establishes symmetry, so callers treat
// it as a retryable inconsistency.
type Relationships struct {
	users repositories.UserRepository
	posts repositories.PostRepository
}

// NewRelationships creates a new Relationships engine
func NewRelationships(users repositories.UserRepository, posts repositories.PostRepository) *Relationships {
	return &Relationships{users: users, posts: posts}
}

// ToggleFollow follows targetID on behalf of actorID, or unfollows if
// the edge already exists. Returns the actor's updated following list
// resolved to summaries.
func (r *Relationships) ToggleFollow(ctx context.Context, actorID, targetID string) ([]models.UserSummary, error) {
	if actorID == targetID {
		return nil, models.ErrSelfFollow
	}

	actor, err := r.users.GetProfileByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := r.users.GetProfileByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if containsID(actor.Following, targetID) {
		actor.Following = removeID(actor.Following, targetID)
		target.Followers = removeID(target.Followers, actorID)
	} else {
		actor.Following = append(actor.Following, targetID)
		target.Followers = append(target.Followers, actorID)
	}

	if err := r.users.SaveProfile(ctx, actor); err != nil {
		return nil, err
	}
	if err := r.users.SaveProfile(ctx, target); err != nil {
		// Partial dual-write: actor side is durable, target side is
		// not. Retrying the toggle repairs it.
		log.Printf("follow symmetry violated between %s and %s: %v", actorID, targetID, err)
	}

	return r.Summaries(ctx, actor.Following)
}

// ToggleLike likes postID on behalf of userID, or removes the like if
// present. The returned post carries the updated likes map; callers
// derive the count as len(Likes).
func (r *Relationships) ToggleLike(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := r.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	user, err := r.users.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if post.Likes == nil {
		post.Likes = map[string]bool{}
	}
	if post.Likes[userID] {
		delete(post.Likes, userID)
		user.Likes = removeID(user.Likes, postID)
	} else {
		post.Likes[userID] = true
		user.Likes = append(user.Likes, postID)
	}

	if err := r.posts.SavePost(ctx, post); err != nil {
		return nil, err
	}
	if err := r.users.SaveProfile(ctx, user); err != nil {
		log.Printf("like symmetry violated between user %s and post %s: %v", userID, postID, err)
	}

	return post, nil
}

// Following resolves a user's following list to summaries
func (r *Relationships) Following(ctx context.Context, userID string) ([]models.UserSummary, error) {
	user, err := r.users.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.Summaries(ctx, user.Following)
}

// Followers resolves a user's followers list to summaries
func (r *Relationships) Followers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	user, err := r.users.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.Summaries(ctx, user.Followers)
}

// Summaries resolves a list of profile ids to summary records,
// preserving order. A dangling id is a NotFound error, not a skip.
func (r *Relationships) Summaries(ctx context.Context, ids []string) ([]models.UserSummary, error) {
	summaries := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		profile, err := r.users.GetProfileByID(ctx, id)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, profile.Summary())
	}
	return summaries, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
