package rides

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/gocomet/ride-records/internal/domain/ride"
	apperrors "github.com/gocomet/ride-records/pkg/errors"
)

// Validation messages, one per rule
const (
	MsgInvalidStartCoordinates = "Start latitude and longitude must be between -90 - 90 and -180 to 180 degrees respectively"
	MsgInvalidEndCoordinates   = "End latitude and longitude must be between -90 - 90 and -180 to 180 degrees respectively"
	MsgInvalidRiderName        = "Rider name must be a non empty string"
	MsgInvalidDriverName       = "Driver name must be a non empty string"
	MsgInvalidDriverVehicle    = "Driver's vehicle must be a non empty string"
)

// Request body field names
const (
	FieldStartLat      = "start_lat"
	FieldStartLong     = "start_long"
	FieldEndLat        = "end_lat"
	FieldEndLong       = "end_long"
	FieldRiderName     = "rider_name"
	FieldDriverName    = "driver_name"
	FieldDriverVehicle = "driver_vehicle"
)

// SerializeRideInput validates a decoded request body and maps it to a NewRide.
// Rules are checked in a fixed order and the first failure is returned.
func SerializeRideInput(body map[string]interface{}) (*ride.NewRide, error) {
	startLat := toFloat(body[FieldStartLat])
	startLong := toFloat(body[FieldStartLong])
	endLat := toFloat(body[FieldEndLat])
	endLong := toFloat(body[FieldEndLong])

	if !ride.ValidLatitude(startLat) || !ride.ValidLongitude(startLong) {
		return nil, apperrors.Validation(MsgInvalidStartCoordinates)
	}

	if !ride.ValidLatitude(endLat) || !ride.ValidLongitude(endLong) {
		return nil, apperrors.Validation(MsgInvalidEndCoordinates)
	}

	riderName, ok := nonEmptyString(body[FieldRiderName])
	if !ok {
		return nil, apperrors.Validation(MsgInvalidRiderName)
	}

	driverName, ok := nonEmptyString(body[FieldDriverName])
	if !ok {
		return nil, apperrors.Validation(MsgInvalidDriverName)
	}

	driverVehicle, ok := nonEmptyString(body[FieldDriverVehicle])
	if !ok {
		return nil, apperrors.Validation(MsgInvalidDriverVehicle)
	}

	return &ride.NewRide{
		StartLat:      startLat,
		StartLong:     startLong,
		EndLat:        endLat,
		EndLong:       endLong,
		RiderName:     riderName,
		DriverName:    driverName,
		DriverVehicle: driverVehicle,
	}, nil
}

// toFloat coerces a JSON value to a number. Values that cannot be read as a
// number come back as NaN, which no coordinate check accepts.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	return math.NaN()
}

func nonEmptyString(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok || len(s) < 1 {
		return "", false
	}
	return s, true
}
