package api

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/datastore"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/errors"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/guidance"
)

// Risk labels derived from the winning-class confidence.
const (
	RiskHigh = "High"
	RiskLow  = "Low"
)

// PredictRequest holds the multipart form fields of a prediction request.
// The image file itself is read separately from the form.
type PredictRequest struct {
	UserRole     string  `form:"user_role" validate:"required"`
	LocationType string  `form:"location_type" validate:"required"`
	Latitude     float64 `form:"latitude"`
	Longitude    float64 `form:"longitude"`
}

// LocationResponse echoes the reported GPS coordinates.
type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ContextResponse echoes the reporter context. The location type is accepted
// and echoed but does not influence guidance or risk.
type ContextResponse struct {
	UserRole     string `json:"user_role"`
	LocationType string `json:"location_type"`
}

// PredictResponse is the composed result of one classification request.
type PredictResponse struct {
	Prediction string            `json:"prediction"`
	IsRockBee  bool              `json:"is_rock_bee"`
	Confidence float64           `json:"confidence"`
	Risk       string            `json:"risk"`
	Guidance   guidance.Response `json:"guidance"`
	Location   LocationResponse  `json:"location"`
	Context    ContextResponse   `json:"context"`
}

// PostPredict handles POST /predict: classify the uploaded image, derive the
// risk level, look up guidance, persist the detection and return the
// composed response.
func (c *Controller) PostPredict(ctx echo.Context) error {
	var req PredictRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid form data", http.StatusBadRequest)
	}
	if err := ctx.Validate(&req); err != nil {
		return c.HandleError(ctx, err, "Missing required form fields", http.StatusBadRequest)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return c.HandleError(ctx, err, "Image file is required", http.StatusBadRequest)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to open uploaded file", http.StatusInternalServerError)
	}
	defer func() {
		_ = src.Close()
	}()

	imageData, err := io.ReadAll(src)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to read uploaded file", http.StatusInternalServerError)
	}

	result, err := c.Classifier.Predict(imageData)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryImageDecode) {
			return c.HandleError(ctx, err, "Uploaded file is not a valid image", http.StatusBadRequest)
		}
		return c.HandleError(ctx, err, "Classification failed", http.StatusInternalServerError)
	}

	// Risk is derived from the winning-class confidence alone, matching the
	// decision table the guidance rules were written against.
	risk := RiskLow
	if result.Confidence >= c.Settings.Classifier.Threshold {
		risk = RiskHigh
	}

	advisory := guidance.Lookup(req.UserRole, risk, req.Latitude, req.Longitude)

	detection := &datastore.Detection{
		Label:      result.Label,
		Confidence: result.Confidence,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		UserRole:   req.UserRole,
	}
	if err := c.DS.Save(detection); err != nil {
		return c.HandleError(ctx, err, "Failed to save detection", http.StatusInternalServerError)
	}

	if c.apiLogger != nil {
		c.apiLogger.Info("detection recorded",
			"id", detection.ID,
			"label", result.Label,
			"confidence", result.Confidence,
			"status", result.Status,
			"user_role", req.UserRole,
			"latitude", req.Latitude,
			"longitude", req.Longitude,
		)
	}

	return ctx.JSON(http.StatusOK, PredictResponse{
		Prediction: result.Label,
		IsRockBee:  result.Confidence >= c.Settings.Classifier.Threshold,
		Confidence: result.Confidence,
		Risk:       risk,
		Guidance:   advisory,
		Location: LocationResponse{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		Context: ContextResponse{
			UserRole:     req.UserRole,
			LocationType: req.LocationType,
		},
	})
}
