package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any listing can request.
	MaxLimit = 100
)

// Params holds listing inputs from controllers or services.
type Params struct {
	Page        int
	Limit       int
	SearchBy    string
	SearchQuery string
}

// Page is the envelope returned by every paginated listing.
//
// NextRecordID is the id of the first record expected on the next page,
// computed as last-id-on-page + 1; PreviousRecordID points at the first record
// of the previous page. Both are nil at the respective boundary.
type Page[T any] struct {
	CurrentPage      int    `json:"current_page"`
	Limit            int    `json:"limit"`
	TotalPages       int    `json:"total_pages"`
	TotalRecords     int64  `json:"total_records"`
	NextRecordID     *int64 `json:"next_record_id"`
	PreviousRecordID *int64 `json:"previous_record_id"`
	Records          []T    `json:"records"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// TotalPages returns the page count for the given totals, never below 1.
func TotalPages(totalRecords int64, limit int) int {
	pages := int((totalRecords + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Offset returns the row offset for the given page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// PreviousRecordID returns the id cursor of the previous page, or nil on the
// first page.
func PreviousRecordID(page, limit int) *int64 {
	if page <= 1 {
		return nil
	}
	id := int64((page-2)*limit) + 1
	if id < 1 {
		id = 1
	}
	return &id
}

// NextRecordID returns the id cursor of the next page given the id of the last
// record on the current page, or nil on the last page.
func NextRecordID(page, limit int, totalRecords, lastID int64) *int64 {
	if int64(page)*int64(limit) >= totalRecords {
		return nil
	}
	id := lastID + 1
	return &id
}
