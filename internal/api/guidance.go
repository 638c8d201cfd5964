package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/guidance"
)

// GuidanceRequest holds the query parameters of a guidance preview request.
type GuidanceRequest struct {
	UserRole string `query:"user_role" validate:"required"`
	Risk     string `query:"risk" validate:"required"`
}

// GuidanceResponse wraps an advisory with the echoed request parameters.
type GuidanceResponse struct {
	UserRole string            `json:"user_role"`
	Risk     string            `json:"risk"`
	Guidance guidance.Response `json:"guidance"`
}

// GetGuidance handles GET /guidance: an advisory preview without a
// classification and without persistence. Coordinates default to 0.0 here,
// so the conservation zone rule never applies on this endpoint.
func (c *Controller) GetGuidance(ctx echo.Context) error {
	var req GuidanceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid query parameters", http.StatusBadRequest)
	}
	if err := ctx.Validate(&req); err != nil {
		return c.HandleError(ctx, err, "user_role and risk query parameters are required", http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, GuidanceResponse{
		UserRole: req.UserRole,
		Risk:     req.Risk,
		Guidance: guidance.Lookup(req.UserRole, req.Risk, 0.0, 0.0),
	})
}
