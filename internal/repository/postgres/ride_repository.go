package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gocomet/ride-records/internal/domain/ride"
	"github.com/jmoiron/sqlx"
)

const rideColumns = `id, start_lat, start_long, end_lat, end_long, rider_name, driver_name, driver_vehicle, created_at`

// orderColumns whitelists what may be interpolated into ORDER BY
var orderColumns = map[ride.SortField]bool{
	ride.SortByCreatedAt:     true,
	ride.SortByRiderName:     true,
	ride.SortByDriverName:    true,
	ride.SortByDriverVehicle: true,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// RideRepository stores rides in PostgreSQL
type RideRepository struct {
	db *sqlx.DB
}

var _ ride.Repository = (*RideRepository)(nil)

// NewRideRepository creates a new ride repository
func NewRideRepository(db *sqlx.DB) *RideRepository {
	return &RideRepository{db: db}
}

// Create inserts a ride and returns the stored row
func (r *RideRepository) Create(ctx context.Context, input *ride.NewRide) (*ride.Ride, error) {
	query := `
		INSERT INTO rides (start_lat, start_long, end_lat, end_long, rider_name, driver_name, driver_vehicle)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + rideColumns

	var created ride.Ride
	err := r.db.QueryRowxContext(ctx, query,
		input.StartLat,
		input.StartLong,
		input.EndLat,
		input.EndLong,
		input.RiderName,
		input.DriverName,
		input.DriverVehicle,
	).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("insert ride: %w", err)
	}

	return &created, nil
}

// List returns one window of rides and the total number matching the keyword.
// Both statements read from the same snapshot.
func (r *RideRepository) List(ctx context.Context, q ride.Query) ([]ride.Ride, int64, error) {
	where, args := keywordFilter(q.Keyword)

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("begin list transaction: %w", err)
	}
	defer tx.Rollback()

	var count int64
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM rides`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count rides: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM rides%s %s LIMIT $%d OFFSET $%d`,
		rideColumns, where, orderBy(q.Sort), len(args)+1, len(args)+2)

	rides := []ride.Ride{}
	if err := tx.SelectContext(ctx, &rides, query, append(args, q.Limit, q.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("select rides: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit list transaction: %w", err)
	}

	return rides, count, nil
}

// GetByID returns ride.ErrRideNotFound when no row has the id
func (r *RideRepository) GetByID(ctx context.Context, id int64) (*ride.Ride, error) {
	var found ride.Ride
	err := r.db.GetContext(ctx, &found, `SELECT `+rideColumns+` FROM rides WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ride.ErrRideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ride %d: %w", id, err)
	}
	return &found, nil
}

// keywordFilter builds the OR-combined contains match. Wildcards in the
// keyword match literally.
func keywordFilter(keyword string) (string, []interface{}) {
	if keyword == "" {
		return "", nil
	}
	pattern := "%" + likeEscaper.Replace(keyword) + "%"
	return ` WHERE (rider_name LIKE $1 OR driver_name LIKE $1 OR driver_vehicle LIKE $1)`, []interface{}{pattern}
}

func orderBy(s ride.Sort) string {
	if !orderColumns[s.Field] || (s.Direction != ride.Ascending && s.Direction != ride.Descending) {
		s = ride.DefaultSort
	}
	// id breaks ties so pages never overlap
	return fmt.Sprintf("ORDER BY %s %s, id %s", s.Field, s.Direction, s.Direction)
}
