package service

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// normalizePage clamps paging parameters and returns the row offset.
func normalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return page, limit, (page - 1) * limit
}
