package rides

import (
	"context"
	"errors"
	"net/url"

	"github.com/gocomet/ride-records/internal/domain/ride"
	apperrors "github.com/gocomet/ride-records/pkg/errors"
	"github.com/gocomet/ride-records/pkg/logger"
	"github.com/gocomet/ride-records/pkg/metrics"
	"github.com/gocomet/ride-records/pkg/monitoring"
	"github.com/gocomet/ride-records/pkg/websocket"
)

// FeedPublisher pushes messages to live feed subscribers
type FeedPublisher interface {
	Broadcast(message websocket.Message)
}

// Service handles ride creation and lookup
type Service struct {
	repo   ride.Repository
	feed   FeedPublisher
	nr     *monitoring.NewRelicApp
	logger *logger.Logger
}

// NewService creates a new ride service. feed and nr may be nil.
func NewService(repo ride.Repository, feed FeedPublisher, nr *monitoring.NewRelicApp, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		feed:   feed,
		nr:     nr,
		logger: log,
	}
}

// CreateRide validates a raw request body and stores the ride
func (s *Service) CreateRide(ctx context.Context, body map[string]interface{}) (*ride.Ride, error) {
	input, err := SerializeRideInput(body)
	if err != nil {
		metrics.ValidationFailures.Inc()
		return nil, err
	}

	created, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, apperrors.Storage(apperrors.Wrap(err, "create ride"))
	}

	metrics.RidesCreated.Inc()
	s.nr.RecordRideCreated(created.ID, created.DriverVehicle)

	s.logger.Info("Ride created",
		logger.Int64("ride_id", created.ID),
		logger.String("driver_vehicle", created.DriverVehicle),
	)

	if s.feed != nil {
		s.feed.Broadcast(websocket.Message{Type: websocket.TypeRideCreated, Data: created})
	}

	return created, nil
}

// ListRides returns one page of rides for the raw query parameters.
// An empty result is a valid page, not an error.
func (s *Service) ListRides(ctx context.Context, values url.Values) (*ride.Page, error) {
	query := SerializeRidesQuery(values)

	data, count, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, apperrors.Storage(apperrors.Wrap(err, "list rides"))
	}

	s.nr.RecordRidesListed(len(data))

	page := Paginate(data, count, query.Page, query.Limit)
	return &page, nil
}

// GetRide returns a single ride
func (s *Service) GetRide(ctx context.Context, id int64) (*ride.Ride, error) {
	found, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ride.ErrRideNotFound) {
		return nil, apperrors.ErrRidesNotFound
	}
	if err != nil {
		return nil, apperrors.Storage(apperrors.Wrap(err, "get ride"))
	}
	return found, nil
}
