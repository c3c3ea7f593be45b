package engine

import (
	"context"
	"time"

	"github.com/ripplr-app/backend/internal/models"
	"github.com/ripplr-app/backend/internal/repositories"
)

// editWindow is how long after creation a post stays editable.
const editWindow = time.Hour

// Content creates and edits posts, keeping the graph side effects
// consistent: a new post's id is appended to the author's Posts, a new
// reply's id to the thread root's Replies and the author's Replies.
type Content struct {
	users repositories.UserRepository
	posts repositories.PostRepository
}

// NewContent creates a new Content engine
func NewContent(users repositories.UserRepository, posts repositories.PostRepository) *Content {
	return &Content{users: users, posts: posts}
}

// CreatePost creates a top-level post for the given author. The
// author's name and picture are denormalized onto the document.
func (ct *Content) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	if req.Description == "" && req.PostPicturePath == "" {
		return nil, models.ErrEmptyContent
	}

	author, err := ct.users.GetProfileByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:             req.UserID,
		Name:               author.Name,
		ProfilePicturePath: author.ProfilePicturePath,
		Tag:                req.Tag,
		Description:        req.Description,
		PostPicturePath:    req.PostPicturePath,
		Likes:              map[string]bool{},
		Replies:            []string{},
	}
	if err := ct.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	author.Posts = append(author.Posts, post.ID.Hex())
	if err := ct.users.SaveProfile(ctx, author); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateReply creates a reply to the given post. ParentPostID always
// points at the thread root, whatever depth the addressed post sits
// at, so a thread's flat reply set stays one query; ReplyingTo records
// the specific post addressed (empty when that is the root itself).
func (ct *Content) CreateReply(ctx context.Context, targetPostID string, req models.CreatePostRequest) (*models.Post, error) {
	if req.Description == "" && req.PostPicturePath == "" {
		return nil, models.ErrEmptyContent
	}

	target, err := ct.posts.GetPostByID(ctx, targetPostID)
	if err != nil {
		return nil, err
	}
	author, err := ct.users.GetProfileByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	root := target
	replyingTo := ""
	if target.ParentPostID != "" {
		// Replying to a reply: root comes from its back-reference.
		replyingTo = targetPostID
		root, err = ct.posts.GetPostByID(ctx, target.ParentPostID)
		if err != nil {
			return nil, err
		}
	}

	reply := &models.Post{
		UserID:             req.UserID,
		Name:               author.Name,
		ProfilePicturePath: author.ProfilePicturePath,
		Tag:                req.Tag,
		Description:        req.Description,
		PostPicturePath:    req.PostPicturePath,
		Likes:              map[string]bool{},
		Replies:            []string{},
		ParentPostID:       root.ID.Hex(),
		ReplyingTo:         replyingTo,
	}
	if err := ct.posts.CreatePost(ctx, reply); err != nil {
		return nil, err
	}

	root.Replies = append(root.Replies, reply.ID.Hex())
	if err := ct.posts.SavePost(ctx, root); err != nil {
		return nil, err
	}
	author.Replies = append(author.Replies, reply.ID.Hex())
	if err := ct.users.SaveProfile(ctx, author); err != nil {
		return nil, err
	}
	return reply, nil
}

// UpdatePost edits a post's description and picture. Edits are only
// permitted within an hour of creation; everything else on the
// document is immutable.
func (ct *Content) UpdatePost(ctx context.Context, postID string, req models.UpdatePostRequest) (*models.Post, error) {
	if req.Description == "" && req.PostPicturePath == "" {
		return nil, models.ErrEmptyContent
	}

	post, err := ct.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if time.Since(post.CreatedAt) > editWindow {
		return nil, models.ErrEditWindowExpired
	}

	post.Description = req.Description
	post.PostPicturePath = req.PostPicturePath
	if err := ct.posts.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
