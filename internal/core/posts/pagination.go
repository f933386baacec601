package posts

// NewPageInfo computes pagination metadata for one feed page.
// page is 1-based; totalCount is the live-post count under the feed's filter
// predicate, regardless of sort mode. With totalCount zero, totalPages is
// zero and every page is the last.
func NewPageInfo(page, limit, totalCount, currentElements int) PageInfo {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}

	return PageInfo{
		First:           page == 1,
		Last:            page*limit >= totalCount,
		CurrentElements: currentElements,
		Size:            limit,
		TotalElements:   totalCount,
		TotalPages:      totalPages,
		CurrentPage:     page,
	}
}
