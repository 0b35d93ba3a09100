package entity

// Item is a single normalized NFT.
type Item struct {
	Address      string            `json:"address"`
	Title        string            `json:"title"`
	Image        string            `json:"image"`
	Price        *float64          `json:"price,omitempty"`
	IsForSale    bool              `json:"isForSale"`
	Traits       map[string]string `json:"traits"`
	CollectionID string            `json:"collectionId"`
	Rarity       *float64          `json:"rarity,omitempty"`
	LastSale     *float64          `json:"lastSale,omitempty"`
	Owner        string            `json:"owner,omitempty"`
}

// ItemPage is one page of a cursor-paginated listing. Items keep upstream order.
type ItemPage struct {
	Items  []Item `json:"items"`
	Total  int64  `json:"total"`
	Cursor string `json:"cursor,omitempty"`
}

// EmptyItemPage returns a page with a non-nil, empty item list.
func EmptyItemPage() ItemPage {
	return ItemPage{Items: []Item{}}
}
