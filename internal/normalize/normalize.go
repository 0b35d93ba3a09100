package normalize

import (
	"fmt"
	"sort"
	"strconv"

	"nft_aggregator/internal/domain/entity"
)

// Collection maps one vendor collection record.
func Collection(m *Mapping, rec any) entity.Collection {
	f := m.Collection
	return entity.Collection{
		ID:          f.ID.str(rec),
		Title:       f.Title.str(rec),
		Image:       f.Image.str(rec),
		Floor:       f.Floor.float(rec),
		Volume24h:   f.Volume24h.float(rec),
		Supply:      f.Supply.count(rec),
		Owners:      f.Owners.count(rec),
		Description: f.Description.str(rec),
	}
}

// Item maps one vendor item record. Traits is never nil.
func Item(m *Mapping, rec any) entity.Item {
	f := m.Item
	item := entity.Item{
		Address:      f.Address.str(rec),
		Title:        f.Title.str(rec),
		Image:        f.Image.str(rec),
		Price:        f.Price.optFloat(rec),
		CollectionID: f.CollectionID.str(rec),
		Rarity:       f.Rarity.optFloat(rec),
		LastSale:     f.LastSale.optFloat(rec),
		Owner:        f.Owner.str(rec),
		Traits:       attributes(f.Attributes, rec),
	}
	if len(f.ForSale.Paths) > 0 {
		item.IsForSale = f.ForSale.truthy(rec)
	} else {
		item.IsForSale = item.Price != nil && *item.Price > 0
	}
	return item
}

// Stats maps one vendor statistics record.
func Stats(m *Mapping, rec any) entity.Stats {
	f := m.Stats
	return entity.Stats{
		Floor:     f.Floor.float(rec),
		Volume24h: f.Volume24h.float(rec),
		Volume7d:  f.Volume7d.float(rec),
		Supply:    f.Supply.count(rec),
		Owners:    f.Owners.count(rec),
	}
}

// Traits flattens the nested {trait: {value: count}} object into buckets sorted by trait then value.
func Traits(m *Mapping, body any) []entity.TraitBucket {
	buckets := []entity.TraitBucket{}
	raw, ok := Lookup(body, m.Traits)
	if !ok {
		return buckets
	}
	traits, ok := raw.(map[string]any)
	if !ok {
		return buckets
	}
	for trait, values := range traits {
		byValue, ok := values.(map[string]any)
		if !ok {
			continue
		}
		for value, cnt := range byValue {
			d, ok := asDecimal(cnt)
			if !ok {
				continue
			}
			buckets = append(buckets, entity.TraitBucket{Trait: trait, Value: value, Count: d.IntPart()})
		}
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Trait != buckets[j].Trait {
			return buckets[i].Trait < buckets[j].Trait
		}
		return buckets[i].Value < buckets[j].Value
	})
	return buckets
}

// Collections maps a list response. The result is never nil.
func Collections(m *Mapping, body any) []entity.Collection {
	records := records(m.Collections, body)
	out := make([]entity.Collection, 0, len(records))
	for _, rec := range records {
		out = append(out, Collection(m, rec))
	}
	return out
}

// ItemPage maps a list response of items. offset and limit are the values the page was requested with
// and drive the cursor for offset-paginated vendors.
func ItemPage(m *Mapping, shape ListShape, body any, offset, limit int) entity.ItemPage {
	recs := records(shape, body)
	page := entity.ItemPage{Items: make([]entity.Item, 0, len(recs))}
	for _, rec := range recs {
		page.Items = append(page.Items, Item(m, rec))
	}

	page.Total = int64(len(page.Items))
	if shape.Total != "" {
		if d, ok := R(shape.Total).decimal(body); ok {
			page.Total = d.IntPart()
		}
	}

	switch {
	case shape.Cursor != "":
		page.Cursor = R(shape.Cursor).str(body)
	case shape.OffsetCursor && limit > 0 && len(page.Items) >= limit:
		page.Cursor = strconv.Itoa(offset + len(page.Items))
	}
	return page
}

// Envelope unwraps a single-record response. It reports false when the record is missing or empty.
func Envelope(body any, path string) (any, bool) {
	rec, ok := Lookup(body, path)
	if !ok {
		return nil, false
	}
	if obj, isObj := rec.(map[string]any); isObj && len(obj) == 0 {
		return nil, false
	}
	return rec, true
}

// CheckStatus validates an in-body status code for vendors that report one.
func CheckStatus(m *Mapping, body any) error {
	if m.StatusPath == "" {
		return nil
	}
	code := R(m.StatusPath).str(body)
	if code != m.StatusOK {
		msg := R("msg", "message").str(body)
		return fmt.Errorf("%s reported status %q: %s", m.Vendor, code, msg)
	}
	return nil
}

func records(shape ListShape, body any) []any {
	raw, ok := Lookup(body, shape.Items)
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	if shape.Record == "" {
		return list
	}
	out := make([]any, 0, len(list))
	for _, el := range list {
		if rec, ok := Lookup(el, shape.Record); ok {
			out = append(out, rec)
		}
	}
	return out
}

func attributes(shape AttributeShape, rec any) map[string]string {
	traits := make(map[string]string)
	if shape.Path == "" {
		return traits
	}
	raw, ok := Lookup(rec, shape.Path)
	if !ok {
		return traits
	}
	switch attrs := raw.(type) {
	case []any:
		for _, a := range attrs {
			key := R(shape.Key).str(a)
			if key == "" {
				continue
			}
			traits[key] = R(shape.Value).str(a)
		}
	case map[string]any:
		for k, v := range attrs {
			traits[k] = asString(v)
		}
	}
	return traits
}
