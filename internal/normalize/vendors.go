package normalize

const nanoShift = -9

// TonAPI is the field table of the TonAPI v2 NFT endpoints.
var TonAPI = Mapping{
	Vendor: "tonapi",
	Collection: CollectionFields{
		ID:          R("address"),
		Title:       R("metadata.name", "name"),
		Image:       R("previews.1.url", "metadata.image"),
		Floor:       R("floor_price"),
		Volume24h:   R("volume_24h"),
		Supply:      R("items_count", "next_item_index"),
		Owners:      R("owners_count"),
		Description: R("metadata.description"),
	},
	Item: ItemFields{
		Address:      R("address"),
		Title:        R("metadata.name"),
		Image:        R("previews.1.url", "metadata.image"),
		Price:        Scaled(nanoShift, "sale.price.value"),
		ForSale:      R("sale"),
		CollectionID: R("collection.address"),
		Rarity:       R("rarity"),
		LastSale:     Scaled(nanoShift, "last_sale.price.value"),
		Owner:        R("owner.address"),
		Attributes:   AttributeShape{Path: "metadata.attributes", Key: "trait_type", Value: "value"},
	},
	Stats: StatsFields{
		Floor:     R("floor_price"),
		Volume24h: R("volume_24h"),
		Volume7d:  R("volume_7d"),
		Supply:    R("items_count"),
		Owners:    R("owners_count"),
	},
	Collections: ListShape{Items: "nft_collections"},
	Items:       ListShape{Items: "nft_items", OffsetCursor: true},
	Activity:    ListShape{Items: "events", Record: "nft", OffsetCursor: true},
	Search:      ListShape{Items: "nft_items"},
	Traits:      "traits",
}

// NFTScan is the field table of the NFTScan TON API. Amounts are already in TON.
var NFTScan = Mapping{
	Vendor:     "nftscan",
	StatusPath: "code",
	StatusOK:   "200",
	Collection: CollectionFields{
		ID:          R("contract_address"),
		Title:       R("name", "contract_name"),
		Image:       R("logo_url"),
		Floor:       R("floor_price"),
		Volume24h:   R("volume_24h", "volume_1d"),
		Supply:      R("items_total"),
		Owners:      R("owners_total"),
		Description: R("description"),
	},
	Item: ItemFields{
		Address:      R("token_address"),
		Title:        R("name"),
		Image:        R("image_uri", "nftscan_uri"),
		Price:        R("list_price"),
		CollectionID: R("contract_address"),
		Rarity:       R("rarity_score"),
		LastSale:     R("latest_trade_price"),
		Owner:        R("owner"),
		Attributes:   AttributeShape{Path: "attributes", Key: "attribute_name", Value: "attribute_value"},
	},
	Stats: StatsFields{
		Floor:     R("floor_price"),
		Volume24h: R("volume_24h", "volume_1d"),
		Volume7d:  R("volume_7d"),
		Supply:    R("items_total"),
		Owners:    R("owners_total"),
	},
	Collections:        ListShape{Items: "data"},
	Items:              ListShape{Items: "data.content", Total: "data.total", Cursor: "data.next"},
	Search:             ListShape{Items: "data.content", Total: "data.total", Cursor: "data.next"},
	CollectionEnvelope: "data",
	ItemEnvelope:       "data",
	StatsEnvelope:      "data",
	Traits:             "data.attributes",
}
