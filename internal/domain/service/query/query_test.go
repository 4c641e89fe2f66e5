package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ah_market/internal/domain/entity"
	"ah_market/internal/domain/service/query"
	"ah_market/internal/store"
)

type fixedSnapshot struct {
	snapshot *store.Store
}

func (f fixedSnapshot) Load() *store.Store { return f.snapshot }

type fakeHistory struct {
	averages map[string]float64
}

func (f fakeHistory) Average(itemName string) (float64, bool) {
	avg, ok := f.averages[itemName]
	return avg, ok
}

func (f fakeHistory) AllAverages() map[string]any {
	all := make(map[string]any, len(f.averages))
	for itemName, avg := range f.averages {
		all[itemName] = avg
	}

	return all
}

func add(s *store.Store, item, bucket, uuid string, price int64, pet *entity.PetInfo) {
	s.Add(entity.ParsedAuction{
		ItemName: item,
		AttrKey:  bucket,
		Pet:      pet,
		Record:   entity.AuctionRecord{Price: price, UUID: uuid},
	}, false)
}

func newService(t *testing.T, averages map[string]float64, fill func(*store.Store)) *query.Service {
	t.Helper()

	snapshot := store.New()
	fill(snapshot)

	return query.NewService(fixedSnapshot{snapshot: snapshot}, fakeHistory{averages: averages})
}

func TestItem(t *testing.T) {
	rq := require.New(t)

	svc := newService(t, map[string]float64{"AURORA_CHESTPLATE": 123456}, func(s *store.Store) {
		add(s, "AURORA_CHESTPLATE", "BREEZE;5+MAGIC_FIND;4", "a-1", 100, nil)
		add(s, "AURORA_CHESTPLATE", "BREEZE;5+MAGIC_FIND;4", "a-2", 300, nil)
		add(s, "AURORA_CHESTPLATE", "VETERAN;3", "a-3", 500, nil)
	})

	result, ok := svc.Item("AURORA_CHESTPLATE", "")
	rq.True(ok)
	rq.Len(result.Auctions, 2)
	rq.InDelta(200, result.Auctions["BREEZE;5+MAGIC_FIND;4"].AvgPrice, 1e-9)
	rq.NotNil(result.OverallAvg)
	rq.InDelta(123456, *result.OverallAvg, 1e-9)

	_, ok = svc.Item("UNKNOWN_ITEM", "")
	rq.False(ok)
}

func TestItemAttributeFilter(t *testing.T) {
	rq := require.New(t)

	svc := newService(t, nil, func(s *store.Store) {
		add(s, "AURORA_CHESTPLATE", "BREEZE;5+MAGIC_FIND;4", "a-1", 100, nil)
		add(s, "AURORA_CHESTPLATE", "VETERAN;3", "a-2", 500, nil)
	})

	result, ok := svc.Item("AURORA_CHESTPLATE", "breeze;5")
	rq.True(ok)
	rq.Len(result.Auctions, 1)
	rq.Contains(result.Auctions, "BREEZE;5+MAGIC_FIND;4")

	// A history-less item has no overall average.
	rq.Nil(result.OverallAvg)

	// A filter matching nothing still reports the item, with no buckets.
	result, ok = svc.Item("AURORA_CHESTPLATE", "mending;9")
	rq.True(ok)
	rq.Empty(result.Auctions)
}

func TestByAttribute(t *testing.T) {
	rq := require.New(t)

	svc := newService(t, nil, func(s *store.Store) {
		add(s, "AURORA_CHESTPLATE", "BREEZE;5+MAGIC_FIND;4", "a-1", 900, nil)
		add(s, "AURORA_LEGGINGS", "BREEZE;5", "a-2", 100, nil)
		add(s, "AURORA_BOOTS", "BREEZE;3", "a-3", 50, nil)
		add(s, "TERROR_CHESTPLATE", "VETERAN;5", "a-4", 10, nil)
	})

	result, ok := svc.ByAttribute("breeze", 5, false, "")
	rq.True(ok)
	rq.Len(result.Auctions, 2)

	// Cheapest first, across items.
	rq.Equal("a-2", result.Auctions[0].UUID)
	rq.Equal("a-1", result.Auctions[1].UUID)
	rq.InDelta(500, result.AvgPrice, 1e-9)

	_, ok = svc.ByAttribute("breeze", 9, false, "")
	rq.False(ok)
}

func TestByAttributeOnwards(t *testing.T) {
	rq := require.New(t)

	svc := newService(t, nil, func(s *store.Store) {
		add(s, "AURORA_CHESTPLATE", "BREEZE;5", "a-1", 900, nil)
		add(s, "AURORA_BOOTS", "BREEZE;3", "a-2", 50, nil)
	})

	result, ok := svc.ByAttribute("breeze", 3, true, "")
	rq.True(ok)
	rq.Len(result.Auctions, 2)

	result, ok = svc.ByAttribute("breeze", 4, true, "")
	rq.True(ok)
	rq.Len(result.Auctions, 1)
	rq.Equal("a-1", result.Auctions[0].UUID)
}

func TestByAttributePieceAlias(t *testing.T) {
	rq := require.New(t)

	svc := newService(t, nil, func(s *store.Store) {
		add(s, "AURORA_CHESTPLATE", "BREEZE;5", "a-1", 900, nil)
		add(s, "MAGMA_LORD_GAUNTLET", "BREEZE;5", "a-2", 300, nil)
		add(s, "GLOWSTONE_BRACELET", "BREEZE;5", "a-3", 100, nil)
	})

	result, ok := svc.ByAttribute("breeze", 5, false, "bracelet")
	rq.True(ok)
	rq.Len(result.Auctions, 2)

	// The gauntlet counts as a bracelet.
	rq.Equal("a-3", result.Auctions[0].UUID)
	rq.Equal("a-2", result.Auctions[1].UUID)
}

func TestValidPiece(t *testing.T) {
	rq := require.New(t)

	rq.True(query.ValidPiece("helmet"))
	rq.True(query.ValidPiece(" Bracelet "))
	rq.False(query.ValidPiece("sword"))
}

func TestPets(t *testing.T) {
	rq := require.New(t)

	wolf30 := &entity.PetInfo{Tier: "RARE", Type: "WOLF", Level: 30, Candied: true}
	wolf99 := &entity.PetInfo{Tier: "RARE", Type: "WOLF", Level: 99}
	dragon := &entity.PetInfo{Tier: "LEGENDARY", Type: "ENDER_DRAGON", Level: 40}

	svc := newService(t, map[string]float64{entity.PetsItem: 777}, func(s *store.Store) {
		add(s, entity.PetsItem, "RARE_WOLF;1-80", "p-1", 100, wolf30)
		add(s, entity.PetsItem, "RARE_WOLF;99", "p-2", 900, wolf99)
		add(s, entity.PetsItem, "LEGENDARY_ENDER_DRAGON;1-80", "p-3", 5000, dragon)
	})

	// Default level 80 keeps only the 1-80 range buckets.
	result, ok := svc.Pets(query.PetQuery{Level: 80})
	rq.True(ok)
	rq.Len(result.Auctions, 2)
	rq.NotNil(result.OverallAvg)
	rq.InDelta(777, *result.OverallAvg, 1e-9)

	// Rarity and name narrow further.
	result, ok = svc.Pets(query.PetQuery{Rarity: "rare", Name: "wolf", Level: 80})
	rq.True(ok)
	rq.Len(result.Auctions, 1)

	bucket := result.Auctions["RARE_WOLF;1-80"]
	rq.Len(bucket.Auctions, 1)
	rq.Equal("p-1", bucket.Auctions[0].UUID)
	rq.Equal(30, bucket.Auctions[0].PetLevel)
	rq.True(bucket.Auctions[0].Candied)

	// An exact level selects the bare-number bucket.
	result, ok = svc.Pets(query.PetQuery{Rarity: "rare", Level: 99})
	rq.True(ok)
	rq.Contains(result.Auctions, "RARE_WOLF;99")
}

func TestPetsCandiedFilter(t *testing.T) {
	rq := require.New(t)

	candied := &entity.PetInfo{Tier: "RARE", Type: "WOLF", Level: 30, Candied: true}
	clean := &entity.PetInfo{Tier: "RARE", Type: "WOLF", Level: 40}

	svc := newService(t, nil, func(s *store.Store) {
		add(s, entity.PetsItem, "RARE_WOLF;1-80", "p-1", 100, candied)
		add(s, entity.PetsItem, "RARE_WOLF;1-80", "p-2", 200, clean)
	})

	result, ok := svc.Pets(query.PetQuery{Level: 80, FilterCandied: true, CandiedOnly: false})
	rq.True(ok)

	bucket := result.Auctions["RARE_WOLF;1-80"]
	rq.Len(bucket.Auctions, 1)
	rq.Equal("p-2", bucket.Auctions[0].UUID)

	result, ok = svc.Pets(query.PetQuery{Level: 80, FilterCandied: true, CandiedOnly: true})
	rq.True(ok)

	bucket = result.Auctions["RARE_WOLF;1-80"]
	rq.Len(bucket.Auctions, 1)
	rq.Equal("p-1", bucket.Auctions[0].UUID)
}

func TestPetsNoPetsListed(t *testing.T) {
	rq := require.New(t)

	svc := newService(t, nil, func(s *store.Store) {
		add(s, "HYPERION", "", "a-1", 100, nil)
	})

	_, ok := svc.Pets(query.PetQuery{Level: 80})
	rq.False(ok)
}

func TestRawAndAllAverages(t *testing.T) {
	rq := require.New(t)

	svc := newService(t, map[string]float64{"HYPERION": 42}, func(s *store.Store) {
		add(s, "HYPERION", "", "a-1", 100, nil)
	})

	buckets, ok := svc.Raw("HYPERION")
	rq.True(ok)
	rq.Len(buckets["default"], 1)

	_, ok = svc.Raw("UNKNOWN")
	rq.False(ok)

	all := svc.AllAverages()
	rq.Equal(42.0, all["HYPERION"])
}
