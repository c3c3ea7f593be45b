package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ripplr-app/backend/internal/engine"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	relationships *engine.Relationships
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(rel *engine.Relationships) *LikeHandler {
	return &LikeHandler{relationships: rel}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.PATCH("/posts/:id/like", h.ToggleLike)
}

// ToggleLikeRequest defines the request body for toggling a like
type ToggleLikeRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// ToggleLike likes the post if not yet liked by the user, removes the
// like otherwise, and returns the post with its updated likes map.
// Clients derive the like count as len(likes).
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	var req ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.relationships.ToggleLike(c.Request().Context(), req.UserID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}
