package normalize

import (
	"reflect"
	"testing"

	"nft_aggregator/internal/domain/entity"
)

func mustDecode(t *testing.T, body string) any {
	t.Helper()
	v, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return v
}

func TestLookup(t *testing.T) {
	doc := mustDecode(t, `{"a":{"b":[{"c":"x"},{"c":"y"}]},"n":null}`)

	tests := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{"a.b.1.c", "y", true},
		{"a.b.0.c", "x", true},
		{"a.b.2.c", nil, false},
		{"a.b.x", nil, false},
		{"n", nil, false},
		{"missing", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Lookup(doc, tt.path)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCollectionNumericDefaults(t *testing.T) {
	for _, m := range []*Mapping{&TonAPI, &NFTScan} {
		t.Run(m.Vendor, func(t *testing.T) {
			got := Collection(m, mustDecode(t, `{"name":"Bare"}`))
			if got.Floor != 0 || got.Volume24h != 0 || got.Supply != 0 || got.Owners != 0 {
				t.Errorf("expected zeroed numbers, got %+v", got)
			}
		})
	}
}

func TestTonAPICollection(t *testing.T) {
	rec := mustDecode(t, `{
		"address": "0:abc",
		"next_item_index": 120,
		"owners_count": "45",
		"floor_price": 12.5,
		"metadata": {"name": "Ton Punks", "image": "ipfs://punk.png", "description": "punks"},
		"previews": [{"url": "small.png"}, {"url": "medium.png"}]
	}`)

	got := Collection(&TonAPI, rec)
	want := entity.Collection{
		ID:          "0:abc",
		Title:       "Ton Punks",
		Image:       "medium.png",
		Floor:       12.5,
		Supply:      120,
		Owners:      45,
		Description: "punks",
	}
	if got != want {
		t.Errorf("Collection() = %+v, want %+v", got, want)
	}
}

func TestTonAPIItemScalesNanoTON(t *testing.T) {
	rec := mustDecode(t, `{
		"address": "0:item",
		"collection": {"address": "0:abc"},
		"owner": {"address": "0:owner"},
		"sale": {"price": {"value": "2500000000", "token_name": "TON"}},
		"metadata": {"name": "Punk #1", "image": "punk1.png",
			"attributes": [{"trait_type": "Color", "value": "Red"}, {"trait_type": "Level", "value": 3}]}
	}`)

	got := Item(&TonAPI, rec)
	if got.Price == nil || *got.Price != 2.5 {
		t.Fatalf("expected price 2.5, got %v", got.Price)
	}
	if !got.IsForSale {
		t.Errorf("expected item with sale to be for sale")
	}
	if got.CollectionID != "0:abc" || got.Owner != "0:owner" || got.Image != "punk1.png" {
		t.Errorf("unexpected item %+v", got)
	}
	wantTraits := map[string]string{"Color": "Red", "Level": "3"}
	if !reflect.DeepEqual(got.Traits, wantTraits) {
		t.Errorf("Traits = %v, want %v", got.Traits, wantTraits)
	}
	if got.Rarity != nil || got.LastSale != nil {
		t.Errorf("expected absent optional numbers, got rarity=%v lastSale=%v", got.Rarity, got.LastSale)
	}
}

func TestItemDefaults(t *testing.T) {
	got := Item(&TonAPI, mustDecode(t, `{"address":"0:bare"}`))
	if got.Traits == nil {
		t.Fatalf("Traits must never be nil")
	}
	if got.IsForSale || got.Price != nil {
		t.Errorf("expected bare item not for sale, got %+v", got)
	}
}

func TestNFTScanItemForSaleFromPrice(t *testing.T) {
	listed := Item(&NFTScan, mustDecode(t, `{"token_address":"EQa","list_price":1.2,"latest_trade_price":"0.9","rarity_score":87.5,
		"attributes":[{"attribute_name":"Background","attribute_value":"Blue"}]}`))
	if !listed.IsForSale || *listed.Price != 1.2 || *listed.LastSale != 0.9 || *listed.Rarity != 87.5 {
		t.Errorf("unexpected listed item %+v", listed)
	}
	if listed.Traits["Background"] != "Blue" {
		t.Errorf("expected Background trait, got %v", listed.Traits)
	}

	unlisted := Item(&NFTScan, mustDecode(t, `{"token_address":"EQb","list_price":0}`))
	if unlisted.IsForSale {
		t.Errorf("zero price must not be for sale")
	}
}

func TestTraitsFlattening(t *testing.T) {
	body := mustDecode(t, `{"traits":{"Color":{"Red":5,"Blue":3}}}`)

	got := Traits(&TonAPI, body)
	want := []entity.TraitBucket{
		{Trait: "Color", Value: "Blue", Count: 3},
		{Trait: "Color", Value: "Red", Count: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Traits() = %v, want %v", got, want)
	}
}

func TestTraitsIsDeterministic(t *testing.T) {
	body := mustDecode(t, `{"data":{"attributes":{"Eyes":{"Laser":1,"Sleepy":9},"Hat":{"Cap":4,"Crown":2,"None":30}}}}`)

	first := Traits(&NFTScan, body)
	for i := 0; i < 20; i++ {
		if again := Traits(&NFTScan, body); !reflect.DeepEqual(first, again) {
			t.Fatalf("iteration %d returned %v, want %v", i, again, first)
		}
	}
	if len(first) != 5 {
		t.Errorf("expected 5 buckets, got %d", len(first))
	}
}

func TestTraitsMissing(t *testing.T) {
	got := Traits(&TonAPI, mustDecode(t, `{}`))
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestItemPageOffsetCursor(t *testing.T) {
	body := mustDecode(t, `{"nft_items":[{"address":"a"},{"address":"b"}]}`)

	full := ItemPage(&TonAPI, TonAPI.Items, body, 10, 2)
	if full.Cursor != "12" || full.Total != 2 || len(full.Items) != 2 {
		t.Errorf("unexpected full page %+v", full)
	}

	last := ItemPage(&TonAPI, TonAPI.Items, body, 10, 5)
	if last.Cursor != "" {
		t.Errorf("short page must not carry a cursor, got %q", last.Cursor)
	}
}

func TestItemPageVendorCursor(t *testing.T) {
	body := mustDecode(t, `{"code":200,"data":{"total":340,"next":"abc==","content":[{"token_address":"EQa"}]}}`)

	page := ItemPage(&NFTScan, NFTScan.Items, body, 0, 20)
	if page.Total != 340 || page.Cursor != "abc==" || page.Items[0].Address != "EQa" {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestItemPageActivityRecords(t *testing.T) {
	body := mustDecode(t, `{"events":[{"lt":1,"nft":{"address":"a"}},{"lt":2},{"lt":3,"nft":{"address":"c"}}]}`)

	page := ItemPage(&TonAPI, TonAPI.Activity, body, 0, 10)
	if len(page.Items) != 2 || page.Items[1].Address != "c" {
		t.Errorf("unexpected activity page %+v", page)
	}
}

func TestItemPageEmptyBody(t *testing.T) {
	page := ItemPage(&TonAPI, TonAPI.Items, mustDecode(t, `{}`), 0, 10)
	if page.Items == nil || page.Total != 0 {
		t.Errorf("expected empty non-nil page, got %#v", page)
	}
}

func TestCheckStatus(t *testing.T) {
	if err := CheckStatus(&NFTScan, mustDecode(t, `{"code":200,"data":{}}`)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckStatus(&NFTScan, mustDecode(t, `{"code":4001,"msg":"invalid api key"}`)); err == nil {
		t.Errorf("expected error for non-200 code")
	}
	if err := CheckStatus(&TonAPI, mustDecode(t, `{}`)); err != nil {
		t.Errorf("TonAPI has no in-body status, got %v", err)
	}
}

func TestEnvelope(t *testing.T) {
	if _, ok := Envelope(mustDecode(t, `{"data":{}}`), "data"); ok {
		t.Errorf("empty object must not count as a record")
	}
	if _, ok := Envelope(mustDecode(t, `{"data":null}`), "data"); ok {
		t.Errorf("null must not count as a record")
	}
	if rec, ok := Envelope(mustDecode(t, `{"address":"x"}`), ""); !ok || rec == nil {
		t.Errorf("empty path should return the body itself")
	}
}

func TestCollectionIsIdempotent(t *testing.T) {
	body := []byte(`{"contract_address":"EQc","name":"Gifts","floor_price":"3.3","items_total":10,"owners_total":7}`)
	a := Collection(&NFTScan, mustDecode(t, string(body)))
	b := Collection(&NFTScan, mustDecode(t, string(body)))
	if a != b {
		t.Errorf("expected identical output, got %+v and %+v", a, b)
	}
}

func TestOffsetCursorOnlyOnPagedShapes(t *testing.T) {
	if TonAPI.Collections.OffsetCursor {
		t.Errorf("collection lists are not paged by cursor")
	}
	if !TonAPI.Items.OffsetCursor || !TonAPI.Activity.OffsetCursor {
		t.Errorf("TonAPI item listings page by offset")
	}
}
