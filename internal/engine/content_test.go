package engine

import (
	"context"
	"testing"
	"time"

	"github.com/ripplr-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostAppendsToAuthor(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	content := NewContent(users, posts)

	author := users.add("alice")
	author.ProfilePicturePath = "alice.png"
	users.profiles[author.ID.Hex()] = cloneProfile(author)

	post, err := content.CreatePost(context.Background(), models.CreatePostRequest{
		UserID:      author.ID.Hex(),
		Description: "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", post.Name)
	assert.Equal(t, "alice.png", post.ProfilePicturePath)
	assert.Empty(t, post.ParentPostID)
	assert.NotNil(t, post.Likes)
	assert.Equal(t, []string{post.ID.Hex()}, users.get(author.ID.Hex()).Posts)
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	users := newFakeUserRepo()
	content := NewContent(users, newFakePostRepo())
	author := users.add("alice")

	_, err := content.CreatePost(context.Background(), models.CreatePostRequest{
		UserID: author.ID.Hex(),
	})
	assert.ErrorIs(t, err, models.ErrEmptyContent)
	// Rejected before any write.
	assert.Empty(t, users.get(author.ID.Hex()).Posts)
}

func TestCreateReplyToRoot(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	content := NewContent(users, posts)

	author := users.add("alice")
	replier := users.add("bob")
	root := posts.add(&models.Post{UserID: author.ID.Hex(), Description: "root"})

	reply, err := content.CreateReply(context.Background(), root.ID.Hex(), models.CreatePostRequest{
		UserID:      replier.ID.Hex(),
		Description: "first",
	})
	require.NoError(t, err)

	assert.Equal(t, root.ID.Hex(), reply.ParentPostID)
	assert.Empty(t, reply.ReplyingTo) // direct reply to the root
	assert.Equal(t, []string{reply.ID.Hex()}, posts.get(root.ID.Hex()).Replies)
	assert.Equal(t, []string{reply.ID.Hex()}, users.get(replier.ID.Hex()).Replies)
}

func TestCreateReplyToReplyResolvesRoot(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	content := NewContent(users, posts)

	author := users.add("alice")
	replier := users.add("bob")
	root := posts.add(&models.Post{UserID: author.ID.Hex(), Description: "root"})
	ctx := context.Background()

	first, err := content.CreateReply(ctx, root.ID.Hex(), models.CreatePostRequest{
		UserID:      replier.ID.Hex(),
		Description: "first",
	})
	require.NoError(t, err)

	nested, err := content.CreateReply(ctx, first.ID.Hex(), models.CreatePostRequest{
		UserID:      author.ID.Hex(),
		Description: "nested",
	})
	require.NoError(t, err)

	// ParentPostID always points at the thread root, ReplyingTo at
	// the specific post addressed; the flat reply set stays on the
	// root.
	assert.Equal(t, root.ID.Hex(), nested.ParentPostID)
	assert.Equal(t, first.ID.Hex(), nested.ReplyingTo)
	assert.Equal(t, []string{first.ID.Hex(), nested.ID.Hex()}, posts.get(root.ID.Hex()).Replies)
	assert.Empty(t, posts.get(first.ID.Hex()).Replies)
}

func TestUpdatePostWithinEditWindow(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	content := NewContent(users, posts)

	author := users.add("alice")
	post := posts.add(&models.Post{
		UserID:      author.ID.Hex(),
		Description: "before",
		CreatedAt:   time.Now().Add(-30 * time.Minute),
	})

	updated, err := content.UpdatePost(context.Background(), post.ID.Hex(), models.UpdatePostRequest{
		Description: "after",
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Description)
	assert.Equal(t, "after", posts.get(post.ID.Hex()).Description)
}

func TestUpdatePostRejectsExpiredWindow(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	content := NewContent(users, posts)

	author := users.add("alice")
	post := posts.add(&models.Post{
		UserID:      author.ID.Hex(),
		Description: "before",
		CreatedAt:   time.Now().Add(-2 * time.Hour),
	})

	_, err := content.UpdatePost(context.Background(), post.ID.Hex(), models.UpdatePostRequest{
		Description: "after",
	})
	assert.ErrorIs(t, err, models.ErrEditWindowExpired)
	// Original document unchanged.
	assert.Equal(t, "before", posts.get(post.ID.Hex()).Description)
}

func TestUpdatePostRejectsEmptyContent(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	content := NewContent(users, posts)

	author := users.add("alice")
	post := posts.add(&models.Post{UserID: author.ID.Hex(), Description: "before"})

	_, err := content.UpdatePost(context.Background(), post.ID.Hex(), models.UpdatePostRequest{})
	assert.ErrorIs(t, err, models.ErrEmptyContent)
}
