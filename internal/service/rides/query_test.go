package rides

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/gocomet/ride-records/internal/domain/ride"
	"github.com/stretchr/testify/assert"
)

// TestGetSortKey tests sort token resolution
func TestGetSortKey(t *testing.T) {
	tests := []struct {
		raw      string
		expected ride.Sort
	}{
		{raw: "rider", expected: ride.Sort{Field: ride.SortByRiderName, Direction: ride.Ascending}},
		{raw: "driver", expected: ride.Sort{Field: ride.SortByDriverName, Direction: ride.Ascending}},
		{raw: "-driver", expected: ride.Sort{Field: ride.SortByDriverName, Direction: ride.Descending}},
		{raw: "vehicle", expected: ride.Sort{Field: ride.SortByDriverVehicle, Direction: ride.Ascending}},
		{raw: "date", expected: ride.Sort{Field: ride.SortByCreatedAt, Direction: ride.Ascending}},
		{raw: "-date", expected: ride.Sort{Field: ride.SortByCreatedAt, Direction: ride.Descending}},
		{raw: "bogus", expected: ride.DefaultSort},
		{raw: "-bogus", expected: ride.DefaultSort},
		{raw: "-", expected: ride.DefaultSort},
		{raw: "--rider", expected: ride.DefaultSort},
		{raw: "Rider", expected: ride.DefaultSort},
		{raw: "", expected: ride.DefaultSort},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSortKey(tt.raw))
		})
	}

	assert.Equal(t, ride.Sort{Field: ride.SortByCreatedAt, Direction: ride.Descending}, ride.DefaultSort)
}

// TestSerializeRidesQuery_AllParams tests a fully specified query
func TestSerializeRidesQuery_AllParams(t *testing.T) {
	values := url.Values{
		"page":    {"4"},
		"limit":   {"3"},
		"keyword": {"mock keyword"},
		"sort":    {"-rider"},
	}

	assert.Equal(t, ride.Query{
		Keyword: "mock keyword",
		Sort:    ride.Sort{Field: ride.SortByRiderName, Direction: ride.Descending},
		Page:    4,
		Limit:   3,
		Offset:  9,
	}, SerializeRidesQuery(values))
}

// TestSerializeRidesQuery_Defaults tests the empty query
func TestSerializeRidesQuery_Defaults(t *testing.T) {
	assert.Equal(t, ride.Query{
		Sort:   ride.DefaultSort,
		Page:   DefaultPage,
		Limit:  DefaultLimit,
		Offset: 0,
	}, SerializeRidesQuery(url.Values{}))
}

// TestSerializeRidesQuery_MalformedNumbers tests fallback instead of NaN propagation
func TestSerializeRidesQuery_MalformedNumbers(t *testing.T) {
	tests := []struct {
		name   string
		page   string
		limit  string
		expect [3]int // page, limit, offset
	}{
		{name: "non numeric", page: "abc", limit: "xyz", expect: [3]int{1, 10, 0}},
		{name: "zero", page: "0", limit: "0", expect: [3]int{1, 10, 0}},
		{name: "negative", page: "-2", limit: "-5", expect: [3]int{1, 10, 0}},
		{name: "fractional", page: "2.5", limit: "3.7", expect: [3]int{1, 10, 0}},
		{name: "whitespace", page: " 2 ", limit: " 5", expect: [3]int{2, 5, 5}},
		{name: "overflow", page: "99999999999999999999999", limit: "2", expect: [3]int{1, 2, 0}},
		{name: "valid page bad limit", page: "3", limit: "ten", expect: [3]int{3, 10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := SerializeRidesQuery(url.Values{"page": {tt.page}, "limit": {tt.limit}})
			assert.Equal(t, tt.expect, [3]int{q.Page, q.Limit, q.Offset})
		})
	}
}

// TestSerializeRidesQuery_OffsetNeverOverflows tests clamping of huge pages
func TestSerializeRidesQuery_OffsetNeverOverflows(t *testing.T) {
	q := SerializeRidesQuery(url.Values{
		"page":  {strconv.Itoa(math.MaxInt)},
		"limit": {"1000"},
	})

	assert.GreaterOrEqual(t, q.Offset, 0)
	assert.Equal(t, (q.Page-1)*q.Limit, q.Offset)
}

// TestSerializeRidesQuery_RepeatedParams tests that repeated params are ignored
func TestSerializeRidesQuery_RepeatedParams(t *testing.T) {
	q := SerializeRidesQuery(url.Values{
		"keyword": {"a", "b"},
		"sort":    {"rider", "driver"},
		"page":    {"2", "3"},
	})

	assert.Empty(t, q.Keyword)
	assert.Equal(t, ride.DefaultSort, q.Sort)
	assert.Equal(t, DefaultPage, q.Page)
}

// TestSerializeRidesQuery_EmptyKeyword tests that an empty keyword means no filter
func TestSerializeRidesQuery_EmptyKeyword(t *testing.T) {
	q := SerializeRidesQuery(url.Values{"keyword": {""}})
	assert.Empty(t, q.Keyword)
}
