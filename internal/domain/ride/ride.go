package ride

import (
	"context"
	"errors"
	"time"
)

// Coordinate bounds in degrees
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Ride is a recorded trip. Rows are never updated once inserted.
type Ride struct {
	ID            int64     `json:"id" db:"id"`
	StartLat      float64   `json:"startLat" db:"start_lat"`
	StartLong     float64   `json:"startLong" db:"start_long"`
	EndLat        float64   `json:"endLat" db:"end_lat"`
	EndLong       float64   `json:"endLong" db:"end_long"`
	RiderName     string    `json:"riderName" db:"rider_name"`
	DriverName    string    `json:"driverName" db:"driver_name"`
	DriverVehicle string    `json:"driverVehicle" db:"driver_vehicle"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// NewRide holds the validated fields needed to insert a ride.
// ID and CreatedAt are assigned by the store.
type NewRide struct {
	StartLat      float64
	StartLong     float64
	EndLat        float64
	EndLong       float64
	RiderName     string
	DriverName    string
	DriverVehicle string
}

// SortField is a sortable ride column
type SortField string

const (
	SortByCreatedAt     SortField = "created_at"
	SortByRiderName     SortField = "rider_name"
	SortByDriverName    SortField = "driver_name"
	SortByDriverVehicle SortField = "driver_vehicle"
)

// Direction is a sort direction
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Sort orders a ride listing
type Sort struct {
	Field     SortField
	Direction Direction
}

// DefaultSort lists the newest rides first
var DefaultSort = Sort{Field: SortByCreatedAt, Direction: Descending}

// Query describes one page of a ride listing
type Query struct {
	// Keyword filters rides whose rider, driver or vehicle contains it. Empty means no filter.
	Keyword string
	Sort    Sort
	Page    int
	Limit   int
	Offset  int
}

// Page is a window of rides plus navigation metadata
type Page struct {
	Data        []Ride `json:"data"`
	Count       int64  `json:"count"`
	CurrentPage int    `json:"currentPage"`
	NextPage    *int   `json:"nextPage"`
	PrevPage    *int   `json:"prevPage"`
	LastPage    int    `json:"lastPage"`
}

// Repository interface
type Repository interface {
	Create(ctx context.Context, ride *NewRide) (*Ride, error)
	// List returns the requested window and the number of rides matching the filter.
	List(ctx context.Context, query Query) ([]Ride, int64, error)
	GetByID(ctx context.Context, id int64) (*Ride, error)
}

// Errors
var (
	ErrRideNotFound = errors.New("ride not found")
)

// ValidLatitude reports whether v is a finite latitude
func ValidLatitude(v float64) bool {
	return v >= MinLatitude && v <= MaxLatitude
}

// ValidLongitude reports whether v is a finite longitude
func ValidLongitude(v float64) bool {
	return v >= MinLongitude && v <= MaxLongitude
}
