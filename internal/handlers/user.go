package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ripplr-app/backend/internal/engine"
	"github.com/ripplr-app/backend/internal/models"
	"github.com/ripplr-app/backend/internal/repositories"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository repositories.UserRepository
	relationships  *engine.Relationships
	recommender    *engine.Recommender
	cascade        *engine.Cascade
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, rel *engine.Relationships, rec *engine.Recommender, cas *engine.Cascade) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		relationships:  rel,
		recommender:    rec,
		cascade:        cas,
	}
}

// RegisterUserRoutes registers profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetProfile)
	g.PATCH("/users/:id", h.UpdateProfile)
	g.DELETE("/users/:id", h.DeleteUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/suggested", h.GetUsersToFollow)
	g.GET("/users/:id/might-like", h.GetUsersYouMightLike)
	g.POST("/users/search", h.SearchUsers)
}

// GetProfile retrieves a user profile by id
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.userRepository.GetProfileByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates a profile's display fields. The relationship
// arrays are untouchable here; only the engine mutates those.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.userRepository.GetProfileByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.BirthDate != nil {
		profile.BirthDate = req.BirthDate
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.ProfilePicturePath != "" {
		profile.ProfilePicturePath = req.ProfilePicturePath
	}

	if err := h.userRepository.SaveProfile(c.Request().Context(), profile); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// DeleteUser cascade-deletes a user and returns the removed profile
func (h *UserHandler) DeleteUser(c echo.Context) error {
	profile, err := h.cascade.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetFollowers returns a user's followers as summaries
func (h *UserHandler) GetFollowers(c echo.Context) error {
	followers, err := h.relationships.Followers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, followers)
}

// GetFollowing returns the users a user follows, as summaries
func (h *UserHandler) GetFollowing(c echo.Context) error {
	following, err := h.relationships.Following(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, following)
}

// GetUsersToFollow returns random follow suggestions for a user
func (h *UserHandler) GetUsersToFollow(c echo.Context) error {
	suggestions, err := h.recommender.SuggestToFollow(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, suggestions)
}

// GetUsersYouMightLike returns 2-hop graph suggestions for a user
func (h *UserHandler) GetUsersYouMightLike(c echo.Context) error {
	suggestions, err := h.recommender.SuggestYouMightLike(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, suggestions)
}

// SearchUsers finds profiles by case-insensitive name substring
func (h *UserHandler) SearchUsers(c echo.Context) error {
	var req models.SearchUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profiles, err := h.userRepository.SearchProfilesByName(c.Request().Context(), req.SearchQuery)
	if err != nil {
		return httpError(err)
	}

	results := make([]models.UserSummary, 0, len(profiles))
	for i := range profiles {
		results = append(results, profiles[i].Summary())
	}
	return c.JSON(http.StatusOK, results)
}
