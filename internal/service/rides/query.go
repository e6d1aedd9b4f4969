package rides

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gocomet/ride-records/internal/domain/ride"
)

// Listing defaults
const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// sortFields maps the public sort tokens to ride columns
var sortFields = map[string]ride.SortField{
	"date":    ride.SortByCreatedAt,
	"rider":   ride.SortByRiderName,
	"driver":  ride.SortByDriverName,
	"vehicle": ride.SortByDriverVehicle,
}

// GetSortKey resolves a sort token such as "rider" or "-date".
// A leading '-' sorts descending; unknown tokens fall back to newest first.
func GetSortKey(raw string) ride.Sort {
	direction := ride.Ascending
	key := raw
	if strings.HasPrefix(raw, "-") {
		direction = ride.Descending
		key = raw[1:]
	}

	field, ok := sortFields[key]
	if !ok {
		return ride.DefaultSort
	}
	return ride.Sort{Field: field, Direction: direction}
}

// SerializeRidesQuery turns raw query parameters into a listing query.
// It never fails: malformed or out of range numbers fall back to defaults.
func SerializeRidesQuery(values url.Values) ride.Query {
	limit := positiveInt(values, "limit", DefaultLimit)
	page := positiveInt(values, "page", DefaultPage)

	// keep the offset representable
	if maxPage := math.MaxInt/limit + 1; page > maxPage {
		page = maxPage
	}

	return ride.Query{
		Keyword: single(values, "keyword"),
		Sort:    GetSortKey(single(values, "sort")),
		Page:    page,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}
}

// single returns the value of key when it was given exactly once
func single(values url.Values, key string) string {
	v := values[key]
	if len(v) != 1 {
		return ""
	}
	return v[0]
}

func positiveInt(values url.Values, key string, fallback int) int {
	raw := single(values, key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
