package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ripplr-app/backend/internal/engine"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	relationships *engine.Relationships
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(rel *engine.Relationships) *FollowHandler {
	return &FollowHandler{relationships: rel}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.PATCH("/users/:id/follow/:targetId", h.ToggleFollow)
}

// ToggleFollow follows the target if not yet followed, unfollows
// otherwise, and returns the actor's updated following list.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	actorID := c.Param("id")
	targetID := c.Param("targetId")

	following, err := h.relationships.ToggleFollow(c.Request().Context(), actorID, targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, following)
}
