package memorycache

import (
	"context"
	"testing"
	"time"

	"nft_aggregator/internal/domain/entity"
)

func TestSetGet(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute, time.Minute)

	price := 1.5
	in := entity.Result[entity.ItemPage]{
		Data: entity.ItemPage{
			Items: []entity.Item{{Address: "0:a", Price: &price, Traits: map[string]string{"Color": "Red"}}},
			Total: 1,
		},
		Source: entity.SourceSecondary,
	}
	if err := c.Set(ctx, "items:x", in, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var out entity.Result[entity.ItemPage]
	found, err := c.Get(ctx, "items:x", &out)
	if err != nil || !found {
		t.Fatalf("Get = %v, %v; want hit", found, err)
	}
	if out.Source != entity.SourceSecondary || out.Data.Items[0].Traits["Color"] != "Red" || *out.Data.Items[0].Price != 1.5 {
		t.Errorf("unexpected round trip %+v", out)
	}

	// decoded copies are independent of each other
	out.Data.Items[0].Traits["Color"] = "Blue"
	var again entity.Result[entity.ItemPage]
	if _, err := c.Get(ctx, "items:x", &again); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.Data.Items[0].Traits["Color"] != "Red" {
		t.Errorf("cached value was mutated through a previous read")
	}
}

func TestMiss(t *testing.T) {
	c := New(time.Minute, time.Minute)
	var out entity.Stats
	found, err := c.Get(context.Background(), "nope", &out)
	if found || err != nil {
		t.Errorf("Get = %v, %v; want miss without error", found, err)
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute, time.Minute)
	if err := c.Set(ctx, "stats:x", entity.Stats{Floor: 1}, 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	var out entity.Stats
	if found, _ := c.Get(ctx, "stats:x", &out); found {
		t.Errorf("expected entry to expire")
	}
}
