package rediscache

import (
	"context"
	"errors"
	"testing"
	"time"

	"nft_aggregator/internal/domain/entity"

	redismock "github.com/go-redis/redismock/v8"
)

// TestGet_Hit verifies that a stored value is decoded into dst.
func TestGet_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db, "nftagg:")

	mock.ExpectGet("nftagg:stats:EQc").SetVal(`{"data":{"floor":2.5,"volume24h":0,"volume7d":0,"supply":10,"owners":4},"source":"primary","degraded":false}`)

	var out entity.Result[entity.Stats]
	found, err := c.Get(context.Background(), "stats:EQc", &out)
	if err != nil || !found {
		t.Fatalf("Get = %v, %v; want hit", found, err)
	}
	if out.Data.Floor != 2.5 || out.Source != entity.SourcePrimary {
		t.Errorf("unexpected value %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

// TestGet_Miss verifies that redis.Nil is reported as a miss, not an error.
func TestGet_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db, "nftagg:")

	mock.ExpectGet("nftagg:traits:EQc").RedisNil()

	var out entity.Result[[]entity.TraitBucket]
	found, err := c.Get(context.Background(), "traits:EQc", &out)
	if found || err != nil {
		t.Fatalf("Get = %v, %v; want miss without error", found, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

// TestGet_Error verifies that transport errors surface to the caller.
func TestGet_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db, "nftagg:")

	mock.ExpectGet("nftagg:item:0:a").SetErr(errors.New("connection reset"))

	var out entity.Result[entity.Item]
	if _, err := c.Get(context.Background(), "item:0:a", &out); err == nil {
		t.Fatalf("expected error")
	}
}

// TestSet verifies that Set writes the encoded value with the prefixed key and ttl.
func TestSet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db, "nftagg:")

	value := entity.Result[entity.Stats]{Data: entity.Stats{Owners: 3}, Source: entity.SourceSecondary}
	payload, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	mock.ExpectSet("nftagg:stats:EQc", payload, 30*time.Second).SetVal("OK")

	if err := c.Set(context.Background(), "stats:EQc", value, 30*time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
