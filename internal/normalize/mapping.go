package normalize

// Rule lists candidate dotted paths for one canonical field. The first present value wins.
// Path segments address object keys or array indices, e.g. "previews.1.url".
type Rule struct {
	Paths []string
	// Shift is the decimal exponent applied to numeric values; -9 turns nanoTON into TON.
	Shift int32
}

// R is shorthand for a Rule without scaling.
func R(paths ...string) Rule {
	return Rule{Paths: paths}
}

// Scaled is shorthand for a Rule with a decimal exponent shift.
func Scaled(shift int32, paths ...string) Rule {
	return Rule{Paths: paths, Shift: shift}
}

// CollectionFields maps a vendor collection record.
type CollectionFields struct {
	ID, Title, Image, Floor, Volume24h, Supply, Owners, Description Rule
}

// AttributeShape describes an array of {key, value} objects holding item traits.
type AttributeShape struct {
	Path  string
	Key   string
	Value string
}

// ItemFields maps a vendor item record.
// An empty ForSale rule means an item is for sale when it has a positive price.
type ItemFields struct {
	Address, Title, Image, Price, ForSale, CollectionID, Rarity, LastSale, Owner Rule
	Attributes AttributeShape
}

// StatsFields maps a vendor statistics record.
type StatsFields struct {
	Floor, Volume24h, Volume7d, Supply, Owners Rule
}

// ListShape locates a record array inside a list response.
type ListShape struct {
	Items string
	// Record is the path of the item inside each array element, empty when the element is the item.
	Record string
	Total  string
	Cursor string
	// OffsetCursor derives the next cursor from offset pagination when the page is full.
	OffsetCursor bool
}

// Mapping is the complete field table of one vendor.
type Mapping struct {
	Vendor string

	// StatusPath and StatusOK describe an in-body status code; empty when the vendor relies on HTTP status.
	StatusPath string
	StatusOK   string

	Collection CollectionFields
	Item       ItemFields
	Stats      StatsFields

	Collections ListShape
	Items       ListShape
	Activity    ListShape
	Search      ListShape

	CollectionEnvelope string
	ItemEnvelope       string
	StatsEnvelope      string
	// Traits locates a nested {trait: {value: count}} object.
	Traits string
}
