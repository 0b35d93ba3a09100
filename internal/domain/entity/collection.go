package entity

// Collection is a normalized NFT collection as reported by an upstream.
// Numeric fields are zero when the upstream omits them.
type Collection struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Image       string  `json:"image"`
	Floor       float64 `json:"floor"`
	Volume24h   float64 `json:"volume24h"`
	Supply      int64   `json:"supply"`
	Owners      int64   `json:"owners"`
	Description string  `json:"description,omitempty"`
}

// Stats holds the aggregate market numbers of a collection.
type Stats struct {
	Floor     float64 `json:"floor"`
	Volume24h float64 `json:"volume24h"`
	Volume7d  float64 `json:"volume7d"`
	Supply    int64   `json:"supply"`
	Owners    int64   `json:"owners"`
}

// TraitBucket is a flattened (trait, value) -> count triple.
type TraitBucket struct {
	Trait string `json:"trait"`
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// CollectionOverview bundles the collection card with its stats and trait distribution.
type CollectionOverview struct {
	Collection Collection    `json:"collection"`
	Stats      Stats         `json:"stats"`
	Traits     []TraitBucket `json:"traits"`
}
