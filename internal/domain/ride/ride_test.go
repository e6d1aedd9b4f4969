package ride

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidCoordinates tests the coordinate bounds including edges and NaN
func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		lat   bool
		long  bool
	}{
		{name: "zero", value: 0, lat: true, long: true},
		{name: "lat lower edge", value: -90, lat: true, long: true},
		{name: "lat upper edge", value: 90, lat: true, long: true},
		{name: "beyond lat", value: 90.0001, lat: false, long: true},
		{name: "long lower edge", value: -180, lat: false, long: true},
		{name: "beyond long", value: 180.5, lat: false, long: false},
		{name: "NaN", value: math.NaN(), lat: false, long: false},
		{name: "positive infinity", value: math.Inf(1), lat: false, long: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.lat, ValidLatitude(tt.value))
			assert.Equal(t, tt.long, ValidLongitude(tt.value))
		})
	}
}

// TestRide_JSONFieldNames tests the camelCase response shape
func TestRide_JSONFieldNames(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	body, err := json.Marshal(Ride{
		ID:            1,
		StartLat:      -10,
		StartLong:     -179,
		EndLat:        90,
		EndLong:       179,
		RiderName:     "Pak Leman",
		DriverName:    "Pak Doyok",
		DriverVehicle: "Beemer",
		CreatedAt:     created,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 1,
		"startLat": -10,
		"startLong": -179,
		"endLat": 90,
		"endLong": 179,
		"riderName": "Pak Leman",
		"driverName": "Pak Doyok",
		"driverVehicle": "Beemer",
		"createdAt": "2024-03-01T10:00:00Z"
	}`, string(body))
}

// TestPage_NullNavigation tests that absent pages serialise as null
func TestPage_NullNavigation(t *testing.T) {
	body, err := json.Marshal(Page{Data: []Ride{}, CurrentPage: 1, LastPage: 1})
	require.NoError(t, err)

	assert.JSONEq(t, `{"data":[],"count":0,"currentPage":1,"nextPage":null,"prevPage":null,"lastPage":1}`, string(body))
}
