// Package api implements the HTTP surface of the rock bee monitoring backend.
package api

import (
	"crypto/rand"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/classifier"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/conf"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/datastore"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/logging"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/observability"
)

// Classifier scores an uploaded image for the presence of a rock bee colony.
// Satisfied by *classifier.Classifier, stubbed in tests.
type Classifier interface {
	Predict(imageData []byte) (classifier.Result, error)
}

// Controller manages the API routes and handlers
type Controller struct {
	Echo       *echo.Echo
	DS         datastore.Interface
	Settings   *conf.Settings
	Classifier Classifier
	Metrics    *observability.Metrics

	apiLogger      *slog.Logger // Structured logger for API operations
	apiLoggerClose func() error // Function to close the log file
}

// CustomValidator wires go-playground/validator into echo's Validate hook.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// New creates a new API controller and registers all routes on the given
// Echo instance.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings, clf Classifier, metrics *observability.Metrics) (*Controller, error) {
	c := &Controller{
		Echo:       e,
		DS:         ds,
		Settings:   settings,
		Classifier: clf,
		Metrics:    metrics,
	}

	e.Validator = &CustomValidator{validator: validator.New()}

	// Structured logging to the web server log file when enabled, stdout
	// structured logger otherwise.
	if settings.WebServer.Log.Enabled {
		logger, closeFunc, err := logging.NewFileLogger(settings.WebServer.Log.Path, "api", slog.LevelInfo)
		if err != nil {
			return nil, err
		}
		c.apiLogger = logger
		c.apiLoggerClose = closeFunc
	} else {
		c.apiLogger = logging.ForService("api")
	}

	c.initRoutes()
	return c, nil
}

// initRoutes registers all API endpoints.
func (c *Controller) initRoutes() {
	c.Echo.GET("/", c.HealthCheck)
	c.Echo.POST("/predict", c.PostPredict)
	c.Echo.GET("/detections", c.GetDetections)
	c.Echo.GET("/guidance", c.GetGuidance)

	if c.Metrics != nil {
		c.Echo.GET("/metrics", echo.WrapHandler(c.Metrics.Handler()))
	}
}

// HealthCheck handles the liveness endpoint.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "Backend running"})
}

// Shutdown closes resources held by the controller.
func (c *Controller) Shutdown() {
	if c.apiLoggerClose != nil {
		_ = c.apiLoggerClose()
	}
}

// ErrorResponse is the uniform error payload returned by all endpoints.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"` // Unique identifier for tracking this error
}

// NewErrorResponse creates a new API error response
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	correlationID := generateCorrelationID()

	var errorStr string
	if err != nil {
		errorStr = err.Error()
	} else {
		errorStr = message
	}

	return &ErrorResponse{
		Error:         errorStr,
		Message:       message,
		Code:          code,
		CorrelationID: correlationID,
	}
}

// generateCorrelationID creates a unique identifier for error tracking using
// cryptographic randomness.
func generateCorrelationID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "ERR-RAND"
	}

	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// HandleError constructs and returns an appropriate error response
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	errorResp := NewErrorResponse(err, message, code)

	if c.apiLogger != nil {
		var errorStr string
		if err != nil {
			errorStr = err.Error()
		} else {
			errorStr = message
		}

		c.apiLogger.Error("API Error",
			"correlation_id", errorResp.CorrelationID,
			"message", message,
			"error", errorStr,
			"code", code,
			"path", ctx.Request().URL.Path,
			"method", ctx.Request().Method,
			"ip", ctx.RealIP(),
		)
	}

	return ctx.JSON(code, errorResp)
}
