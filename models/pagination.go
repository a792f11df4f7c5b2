package models

// TotalPages is ceil(count / pageSize), never less than 1: an empty
// result set still renders as one (empty) page.
func TotalPages(count int, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces the requested page into [1, totalPages]. Out-of-range
// requests never error; they land on the nearest valid boundary.
func ClampPage(requestedPage int, totalPages int) int {
	if requestedPage < 1 {
		return 1
	}
	if requestedPage > totalPages {
		return totalPages
	}
	return requestedPage
}

// Paginate slices one page out of the filtered sequence and reports the
// page actually served plus the page count.
func Paginate[T any](items []T, pageSize int, requestedPage int) ([]T, int, int) {
	totalPages := TotalPages(len(items), pageSize)
	page := ClampPage(requestedPage, totalPages)

	lo := (page - 1) * pageSize
	hi := page * pageSize
	if lo > len(items) {
		lo = len(items)
	}
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi], page, totalPages
}
