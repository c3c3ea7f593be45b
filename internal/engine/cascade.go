package engine

import (
	"context"
	"errors"
	"log"

	"github.com/ripplr-app/backend/internal/models"
	"github.com/ripplr-app/backend/internal/repositories"
)

// Cascade deletes posts and users by first repairing every
// denormalized collection that references them. There are no
// transactions: the cascade is an ordered sequence of idempotent
// repair steps, each durable before the referenced document is
// removed. A crash mid-cascade leaves dangling references, which a
// re-run of the same deletion repairs; references already gone when a
// step reaches them count as repaired, so re-running converges.
type Cascade struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	accounts repositories.AccountRepository // may be nil when profiles have no account row
}

// NewCascade creates a new Cascade coordinator
func NewCascade(users repositories.UserRepository, posts repositories.PostRepository, accounts repositories.AccountRepository) *Cascade {
	return &Cascade{users: users, posts: posts, accounts: accounts}
}

// DeletePost removes a post after repairing every collection that
// references it: likers' Likes arrays, the reply subtree (depth-first,
// children deleted before their parent document so no ParentPostID
// ever points at a missing document), the author's Posts or Replies
// array, and for a reply its root's Replies array. Returns the
// removed document for confirmation.
func (cs *Cascade) DeletePost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := cs.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := cs.deletePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (cs *Cascade) deletePost(ctx context.Context, post *models.Post) error {
	postID := post.ID.Hex()

	// Step 1: strip the post from every liker's likes array.
	for likerID := range post.Likes {
		liker, err := cs.users.GetProfileByID(ctx, likerID)
		if errors.Is(err, models.ErrNotFound) {
			continue // liker gone, nothing left to repair
		}
		if err != nil {
			return err
		}
		liker.Likes = removeID(liker.Likes, postID)
		if err := cs.users.SaveProfile(ctx, liker); err != nil {
			return err
		}
	}

	// Step 2: delete the reply subtree, children before parent.
	for _, replyID := range post.Replies {
		reply, err := cs.posts.GetPostByID(ctx, replyID)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := cs.deletePost(ctx, reply); err != nil {
			return err
		}
	}

	// Step 3: unlink from the author, and for a reply from its root.
	author, err := cs.users.GetProfileByID(ctx, post.UserID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		// orphaned-author content, no array to repair
	case err != nil:
		return err
	default:
		if post.ParentPostID == "" {
			author.Posts = removeID(author.Posts, postID)
		} else {
			author.Replies = removeID(author.Replies, postID)
		}
		if err := cs.users.SaveProfile(ctx, author); err != nil {
			return err
		}
	}
	if post.ParentPostID != "" {
		root, err := cs.posts.GetPostByID(ctx, post.ParentPostID)
		switch {
		case errors.Is(err, models.ErrNotFound):
			// root already deleted (this reply is being cascaded from it)
		case err != nil:
			return err
		default:
			if containsID(root.Replies, postID) {
				root.Replies = removeID(root.Replies, postID)
				if err := cs.posts.SavePost(ctx, root); err != nil {
					return err
				}
			}
		}
	}

	// Step 4: the document itself, only after every repair is durable.
	err = cs.posts.DeletePost(ctx, postID)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	return err
}

// DeleteUser removes a user after stripping them from every followee's
// Followers array and every follower's Following array. Posts and
// replies authored by the user are not cascaded; they remain as
// orphaned-author content. Returns the removed profile.
func (cs *Cascade) DeleteUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	user, err := cs.users.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, followedID := range user.Following {
		followed, err := cs.users.GetProfileByID(ctx, followedID)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		followed.Followers = removeID(followed.Followers, userID)
		if err := cs.users.SaveProfile(ctx, followed); err != nil {
			return nil, err
		}
	}
	for _, followerID := range user.Followers {
		follower, err := cs.users.GetProfileByID(ctx, followerID)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		follower.Following = removeID(follower.Following, userID)
		if err := cs.users.SaveProfile(ctx, follower); err != nil {
			return nil, err
		}
	}

	if cs.accounts != nil {
		if err := cs.accounts.DeleteAccountByProfileID(userID); err != nil {
			log.Printf("failed to delete account for profile %s: %v", userID, err)
		}
	}

	if err := cs.users.DeleteProfile(ctx, userID); err != nil {
		return nil, err
	}
	return user, nil
}
