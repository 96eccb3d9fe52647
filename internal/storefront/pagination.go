package storefront

// PageSize is the number of cards per page
const PageSize = 8

// TotalPages is ceil(n/PageSize), never less than 1
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// ClampPage moves page into [1, TotalPages(n)]
func ClampPage(page, n int) int {
	if total := TotalPages(n); page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the items of the clamped page and the page itself
func Paginate[T any](items []T, page int) ([]T, int) {
	page = ClampPage(page, len(items))
	start := (page - 1) * PageSize
	if start >= len(items) {
		return nil, page
	}
	end := min(start+PageSize, len(items))
	return items[start:end], page
}
