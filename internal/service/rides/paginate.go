package rides

import "github.com/gocomet/ride-records/internal/domain/ride"

// Paginate wraps one window of rides with navigation metadata.
// The last page is never below 1, so an empty listing still reports page 1 of 1.
func Paginate(data []ride.Ride, count int64, page, limit int) ride.Page {
	if data == nil {
		data = []ride.Ride{}
	}

	lastPage := 1
	if limit > 0 && count > 0 {
		lastPage = int((count + int64(limit) - 1) / int64(limit))
	}

	var nextPage, prevPage *int
	if page+1 <= lastPage {
		next := page + 1
		nextPage = &next
	}
	if page-1 >= 1 {
		prev := page - 1
		prevPage = &prev
	}

	return ride.Page{
		Data:        data,
		Count:       count,
		CurrentPage: page,
		NextPage:    nextPage,
		PrevPage:    prevPage,
		LastPage:    lastPage,
	}
}
