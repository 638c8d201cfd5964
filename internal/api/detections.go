package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/datastore"
)

// DetectionResponse represents a detection in the API response
type DetectionResponse struct {
	ID         uint    `json:"id"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	UserRole   string  `json:"user_role"`
	Timestamp  string  `json:"timestamp"`
}

// GetDetections handles GET /detections: the full detection history ordered
// newest first. An optional limit query parameter bounds the result count.
func (c *Controller) GetDetections(ctx echo.Context) error {
	var (
		detections []datastore.Detection
		err        error
	)

	if limitParam := ctx.QueryParam("limit"); limitParam != "" {
		limit, parseErr := strconv.Atoi(limitParam)
		if parseErr != nil || limit < 1 {
			return c.HandleError(ctx, parseErr, "Invalid limit parameter", http.StatusBadRequest)
		}
		detections, err = c.DS.GetLastDetections(limit)
	} else {
		detections, err = c.DS.GetAllDetections()
	}
	if err != nil {
		return c.HandleError(ctx, err, "Failed to retrieve detections", http.StatusInternalServerError)
	}

	response := make([]DetectionResponse, 0, len(detections))
	for i := range detections {
		response = append(response, detectionToResponse(&detections[i]))
	}

	return ctx.JSON(http.StatusOK, response)
}

// detectionToResponse converts a stored detection to its API representation.
func detectionToResponse(d *datastore.Detection) DetectionResponse {
	return DetectionResponse{
		ID:         d.ID,
		Label:      d.Label,
		Confidence: d.Confidence,
		Latitude:   d.Latitude,
		Longitude:  d.Longitude,
		UserRole:   d.UserRole,
		Timestamp:  d.Timestamp.Format(time.RFC3339),
	}
}
