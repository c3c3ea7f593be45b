package handlers

import (
	"net/http"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ripplr-app/backend/internal/engine"
	"github.com/ripplr-app/backend/internal/models"
	"github.com/ripplr-app/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts and threads
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	content        *engine.Content
	cascade        *engine.Cascade
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, content *engine.Content, cas *engine.Cascade) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		content:        content,
		cascade:        cas,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/feed", h.GetFeed)
	g.GET("/posts/user/:userId", h.GetUserPosts)
	g.GET("/posts/tag/:tag", h.GetPostsByTag)
	g.GET("/posts/following/:userId", h.GetFollowingFeed)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/posts/:id/thread", h.GetThread)
	g.POST("/posts/:id/reply", h.CreateReply)
	g.PATCH("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a top-level post and returns the refreshed
// top-level feed, so clients can swap their list in place.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.content.CreatePost(c.Request().Context(), req); err != nil {
		return httpError(err)
	}

	feed, err := h.postRepository.GetFeedPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, feed)
}

// CreateReply creates a reply to a post and returns the refreshed feed
func (h *PostHandler) CreateReply(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.content.CreateReply(c.Request().Context(), c.Param("id"), req); err != nil {
		return httpError(err)
	}

	feed, err := h.postRepository.GetFeedPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, feed)
}

// GetPost retrieves a single post by id
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetFeed retrieves all top-level posts, newest first
func (h *PostHandler) GetFeed(c echo.Context) error {
	feed, err := h.postRepository.GetFeedPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, feed)
}

// GetUserPosts retrieves a user's own top-level posts, newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.userRepository.GetProfileByID(ctx, c.Param("userId"))
	if err != nil {
		return httpError(err)
	}

	posts := make([]models.Post, 0, len(user.Posts))
	for _, postID := range user.Posts {
		post, err := h.postRepository.GetPostByID(ctx, postID)
		if err != nil {
			return httpError(err)
		}
		if post.ParentPostID == "" {
			posts = append(posts, *post)
		}
	}
	sortNewestFirst(posts)
	return c.JSON(http.StatusOK, posts)
}

// GetPostsByTag retrieves top-level posts carrying a tag, newest first
func (h *PostHandler) GetPostsByTag(c echo.Context) error {
	posts, err := h.postRepository.GetPostsByTag(c.Request().Context(), c.Param("tag"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetFollowingFeed retrieves the top-level posts of everyone the user
// follows, newest first.
func (h *PostHandler) GetFollowingFeed(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.userRepository.GetProfileByID(ctx, c.Param("userId"))
	if err != nil {
		return httpError(err)
	}

	var posts []models.Post
	for _, followedID := range user.Following {
		followed, err := h.userRepository.GetProfileByID(ctx, followedID)
		if err != nil {
			return httpError(err)
		}
		for _, postID := range followed.Posts {
			post, err := h.postRepository.GetPostByID(ctx, postID)
			if err != nil {
				return httpError(err)
			}
			if post.ParentPostID == "" {
				posts = append(posts, *post)
			}
		}
	}
	sortNewestFirst(posts)
	return c.JSON(http.StatusOK, posts)
}

// ThreadResponse bundles a root post with its reconstructed replies
type ThreadResponse struct {
	Post    models.Post          `json:"post"`
	Replies []models.ThreadEntry `json:"replies"`
}

// GetThread retrieves a root post and its reply tree flattened for
// nested display, each reply annotated with its depth.
func (h *PostHandler) GetThread(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	replies, err := h.postRepository.GetReplies(ctx, post.ID.Hex())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ThreadResponse{
		Post:    *post,
		Replies: engine.ReconstructThread(replies),
	})
}

// UpdatePost edits a post's description and picture within the edit window
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.content.UpdatePost(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost cascade-deletes a post and returns the removed document
func (h *PostHandler) DeletePost(c echo.Context) error {
	post, err := h.cascade.DeletePost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

func sortNewestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
