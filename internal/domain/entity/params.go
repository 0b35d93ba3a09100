package entity

// DefaultPageLimit is used when a caller does not ask for a page size.
const DefaultPageLimit = 20

// CollectionsParams selects a page of collections.
type CollectionsParams struct {
	Limit  int
	Offset int
}

// ItemsParams selects a page of items of one collection.
type ItemsParams struct {
	CollectionID string
	Limit        int
	Cursor       string
}

// StatsParams selects the collection to aggregate.
type StatsParams struct {
	CollectionID string
}

// ActivityParams selects a page of recent activity of one collection.
type ActivityParams struct {
	CollectionID string
	Limit        int
	Cursor       string
}

// SearchParams is a free text item search.
type SearchParams struct {
	Query string
	Limit int
}

// PageLimit returns limit, or DefaultPageLimit when limit is not positive.
func PageLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	return limit
}
