package requests

import "github.com/techcare/core/pkg/models"

// View filtering is pure: every function derives its result from the slice it
// is handed and holds no state of its own.

// Bucket is a named status group used by the customer bookings view.
type Bucket string

const (
	BucketAll       Bucket = "All"
	BucketActive    Bucket = "Active"
	BucketCompleted Bucket = "Completed"
)

// FilterBucket applies the customer bookings buckets: Active is
// {Received, Under Repair}, Completed is {Ready for Pickup, Completed}.
func FilterBucket(reqs []models.ServiceRequest, bucket Bucket) []models.ServiceRequest {
	switch bucket {
	case BucketActive:
		return filter(reqs, func(r *models.ServiceRequest) bool { return r.Status.Active() })
	case BucketCompleted:
		return filter(reqs, func(r *models.ServiceRequest) bool { return !r.Status.Active() })
	default:
		return reqs
	}
}

// FilterStatus applies the staff management view's exact single-status filter.
func FilterStatus(reqs []models.ServiceRequest, status models.Status) []models.ServiceRequest {
	return filter(reqs, func(r *models.ServiceRequest) bool { return r.Status == status })
}

// Counts are the staff dashboard aggregates.
type Counts struct {
	Total     int
	Active    int
	Completed int
}

func CountRequests(reqs []models.ServiceRequest) Counts {
	c := Counts{Total: len(reqs)}
	for i := range reqs {
		if reqs[i].Status.Active() {
			c.Active++
		} else {
			c.Completed++
		}
	}

	return c
}

// Recent returns the first n entries of an already newest-first slice.
func Recent(reqs []models.ServiceRequest, n int) []models.ServiceRequest {
	if n < 0 {
		n = 0
	}
	if n > len(reqs) {
		n = len(reqs)
	}

	return reqs[:n]
}

// MapView converts typed records to the string-keyed maps the presentation
// boundary consumes.
func MapView(reqs []models.ServiceRequest) []map[string]string {
	out := make([]map[string]string, 0, len(reqs))
	for i := range reqs {
		out = append(out, reqs[i].Map())
	}

	return out
}

func filter(reqs []models.ServiceRequest, keep func(*models.ServiceRequest) bool) []models.ServiceRequest {
	var out []models.ServiceRequest
	for i := range reqs {
		if keep(&reqs[i]) {
			out = append(out, reqs[i])
		}
	}

	return out
}
