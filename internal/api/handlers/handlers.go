package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/ride-records/internal/api/middleware"
	"github.com/gocomet/ride-records/internal/domain/ride"
	apperrors "github.com/gocomet/ride-records/pkg/errors"
	"github.com/gocomet/ride-records/pkg/logger"
	"github.com/gocomet/ride-records/pkg/websocket"
	gorilla "github.com/gorilla/websocket"
)

// RideService is what the ride endpoints need from the service layer
type RideService interface {
	CreateRide(ctx context.Context, body map[string]interface{}) (*ride.Ride, error)
	ListRides(ctx context.Context, values url.Values) (*ride.Page, error)
	GetRide(ctx context.Context, id int64) (*ride.Ride, error)
}

// Check reports whether a dependency is usable
type Check func(ctx context.Context) error

// Options holds optional handler settings
type Options struct {
	ReadBufferSize  int
	WriteBufferSize int
	// Checks are run by the readiness endpoint, keyed by dependency name
	Checks map[string]Check
}

// Handlers holds all handler dependencies
type Handlers struct {
	Rides    RideService
	Logger   *logger.Logger
	Hub      *websocket.Hub
	upgrader gorilla.Upgrader
	checks   map[string]Check
}

// NewHandlers creates a new Handlers instance
func NewHandlers(rides RideService, hub *websocket.Hub, log *logger.Logger, opts Options) *Handlers {
	return &Handlers{
		Rides:  rides,
		Logger: log,
		Hub:    hub,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  opts.ReadBufferSize,
			WriteBufferSize: opts.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true // the feed is read-only
			},
		},
		checks: opts.Checks,
	}
}

// respondError writes the {error_code, message} body for err. Server errors
// are logged with their cause, which never reaches the client.
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	fields := []logger.Field{
		logger.String("code", appErr.Code),
		logger.String("path", c.Request.URL.Path),
		logger.String("request_id", middleware.GetRequestID(c)),
	}
	if appErr.Status >= http.StatusInternalServerError {
		h.Logger.Error("Request failed", append(fields, logger.Err(err))...)
	} else {
		h.Logger.Warn(appErr.Message, fields...)
	}

	c.JSON(appErr.Status, appErr)
}
