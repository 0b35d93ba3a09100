package service

import (
	"context"
	"errors"
	"sync/atomic"

	"nft_aggregator/internal/domain/entity"
)

// fakeUpstream answers deterministically from its name and fails on demand.
type fakeUpstream struct {
	name    string
	floor   float64
	failAll bool
	failIDs map[string]bool
	// gate, when set, blocks every call until it is closed.
	gate  chan struct{}
	calls atomic.Int32
}

func (f *fakeUpstream) Name() string { return f.name }

func (f *fakeUpstream) check(id string) error {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.failAll || f.failIDs[id] {
		return entity.NewUpstreamError(f.name, "fake", 503, errors.New("service unavailable"))
	}
	return nil
}

func (f *fakeUpstream) GetCollections(_ context.Context, p entity.CollectionsParams) ([]entity.Collection, error) {
	if err := f.check(""); err != nil {
		return nil, err
	}
	return []entity.Collection{{ID: f.name + "-col", Title: f.name, Floor: f.floor}}, nil
}

func (f *fakeUpstream) GetItems(_ context.Context, p entity.ItemsParams) (entity.ItemPage, error) {
	if err := f.check(p.CollectionID); err != nil {
		return entity.ItemPage{}, err
	}
	return entity.ItemPage{
		Items: []entity.Item{{Address: f.name + "-" + p.CollectionID, CollectionID: p.CollectionID, Traits: map[string]string{}}},
		Total: 1,
	}, nil
}

func (f *fakeUpstream) GetCollectionByID(_ context.Context, id string) (entity.Collection, error) {
	if err := f.check(id); err != nil {
		return entity.Collection{}, err
	}
	return entity.Collection{ID: id, Title: f.name, Floor: f.floor}, nil
}

func (f *fakeUpstream) GetTraits(_ context.Context, id string) ([]entity.TraitBucket, error) {
	if err := f.check(id); err != nil {
		return nil, err
	}
	return []entity.TraitBucket{{Trait: "Upstream", Value: f.name, Count: 1}}, nil
}

func (f *fakeUpstream) GetStats(_ context.Context, p entity.StatsParams) (entity.Stats, error) {
	if err := f.check(p.CollectionID); err != nil {
		return entity.Stats{}, err
	}
	return entity.Stats{Floor: f.floor, Supply: 100, Owners: 10}, nil
}

func (f *fakeUpstream) Search(_ context.Context, p entity.SearchParams) (entity.ItemPage, error) {
	if err := f.check(p.Query); err != nil {
		return entity.ItemPage{}, err
	}
	return entity.ItemPage{Items: []entity.Item{{Address: f.name + "-" + p.Query, Traits: map[string]string{}}}, Total: 1}, nil
}

// fullUpstream additionally offers the optional capabilities.
type fullUpstream struct {
	*fakeUpstream
}

func (f fullUpstream) GetItem(_ context.Context, address string) (entity.Item, error) {
	if err := f.check(address); err != nil {
		return entity.Item{}, err
	}
	return entity.Item{Address: address, Title: f.name, Traits: map[string]string{}}, nil
}

func (f fullUpstream) GetActivity(_ context.Context, p entity.ActivityParams) (entity.ItemPage, error) {
	if err := f.check(p.CollectionID); err != nil {
		return entity.ItemPage{}, err
	}
	return entity.ItemPage{Items: []entity.Item{{Address: f.name + "-activity", Traits: map[string]string{}}}, Total: 1}, nil
}
