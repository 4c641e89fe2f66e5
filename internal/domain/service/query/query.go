// Package query exposes read-only projections over the latest
// committed auction snapshot. Every lookup reports "no data" through an
// ok-bool instead of an error; the HTTP edge turns that into 404.
package query

import (
	"sort"
	"strings"

	"ah_market/internal/domain/entity"
	"ah_market/internal/domain/value"
	"ah_market/internal/store"
	"ah_market/pkg/lox"
)

// CurrentSnapshots serves the last committed current-auctions snapshot.
type CurrentSnapshots interface {
	Load() *store.Store
}

// History provides aggregates over the accumulated ended auctions.
type History interface {
	Average(itemName string) (float64, bool)
	AllAverages() map[string]any
}

type Service struct {
	current CurrentSnapshots
	history History
}

func NewService(current CurrentSnapshots, history History) *Service {
	return &Service{
		current: current,
		history: history,
	}
}

type AuctionView struct {
	UUID  string `json:"uuid"`
	Price int64  `json:"price"`
}

type BucketView struct {
	Auctions []AuctionView `json:"auctions"`
	AvgPrice float64       `json:"avgPrice"`
}

type ItemResult struct {
	Auctions   map[string]BucketView `json:"auctions"`
	OverallAvg *float64              `json:"overallAvg"`
}

// Item returns the item's current buckets with per-bucket averages and
// the overall historical average. attrFilter, when non-empty, keeps
// only buckets whose canonical key contains the normalized term.
func (s *Service) Item(itemName, attrFilter string) (*ItemResult, bool) {
	buckets, ok := s.current.Load().Buckets(itemName)
	if !ok {
		return nil, false
	}

	searchAttr := value.NormalizeAttributeFilter(attrFilter)

	views := make(map[string]BucketView)
	for bucketKey, bucket := range buckets {
		if searchAttr != "" && !strings.Contains(bucketKey, searchAttr) {
			continue
		}

		views[bucketKey] = newBucketView(bucket)
	}

	return &ItemResult{
		Auctions:   views,
		OverallAvg: s.historicalAverage(itemName),
	}, true
}

type AttributeHit struct {
	ItemName  string `json:"itemName"`
	BucketKey string `json:"bucketKey"`
	UUID      string `json:"uuid"`
	Price     int64  `json:"price"`
}

type AttributeResult struct {
	Auctions []AttributeHit `json:"auctions"`
	AvgPrice float64        `json:"avgPrice"`
}

// ByAttribute searches every item for buckets carrying the attribute at
// the given level (exactly, or at least when onwards is set), with an
// optional equipment-piece filter. Hits are returned flat, cheapest
// first, with their mean price.
func (s *Service) ByAttribute(attribute string, level float64, onwards bool, piece string) (*AttributeResult, bool) {
	reqAttr := strings.ToUpper(strings.TrimSpace(attribute))
	suffixes := pieceSuffixes[strings.ToLower(strings.TrimSpace(piece))]

	var hits []AttributeHit
	var total float64

	snapshot := s.current.Load()
	for _, itemName := range snapshot.Items() {
		if piece != "" && !matchesPiece(itemName, suffixes) {
			continue
		}

		buckets, ok := snapshot.Buckets(itemName)
		if !ok {
			continue
		}

		for bucketKey, bucket := range buckets {
			if !attributeMatches(bucketKey, reqAttr, level, onwards) {
				continue
			}

			for _, a := range bucket {
				hits = append(hits, AttributeHit{
					ItemName:  itemName,
					BucketKey: bucketKey,
					UUID:      a.Record.UUID,
					Price:     a.Record.Price,
				})
				total += float64(a.Record.Price)
			}
		}
	}

	if len(hits) == 0 {
		return nil, false
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Price < hits[j].Price })

	return &AttributeResult{
		Auctions: hits,
		AvgPrice: total / float64(len(hits)),
	}, true
}

type PetView struct {
	UUID     string `json:"uuid"`
	Price    int64  `json:"price"`
	PetLevel int    `json:"petLevel"`
	Candied  bool   `json:"isCandied"`
}

type PetBucketView struct {
	Auctions []PetView `json:"auctions"`
	AvgPrice float64   `json:"avgPrice"`
}

type PetResult struct {
	Auctions   map[string]PetBucketView `json:"auctions"`
	OverallAvg *float64                 `json:"overallAvg"`
}

type PetQuery struct {
	Rarity string
	Name   string
	// Level selects the bucket range; callers default it to 80.
	Level         float64
	CandiedOnly   bool
	FilterCandied bool
}

// Pets filters the current pet auctions by rarity, pet type, bucket
// level range and candy status, enriching each record with the derived
// pet level.
func (s *Service) Pets(q PetQuery) (*PetResult, bool) {
	buckets, ok := s.current.Load().Buckets(entity.PetsItem)
	if !ok {
		return nil, false
	}

	reqRarity := strings.ToUpper(strings.TrimSpace(q.Rarity))
	reqName := strings.ToUpper(strings.TrimSpace(q.Name))

	views := make(map[string]PetBucketView)

	for bucketKey, bucket := range buckets {
		if reqRarity != "" && !strings.HasPrefix(bucketKey, reqRarity+"_") {
			continue
		}
		if reqName != "" && !strings.Contains(bucketKey, reqName) {
			continue
		}
		if !bucketRangeMatches(bucketKey, q.Level) {
			continue
		}

		if q.FilterCandied {
			bucket = lox.Filter(bucket, func(a entity.ParsedAuction) bool {
				return a.Pet != nil && a.Pet.Candied == q.CandiedOnly
			})
		}
		if len(bucket) == 0 {
			continue
		}

		var total float64
		petViews := lox.Map(bucket, func(a entity.ParsedAuction) PetView {
			total += float64(a.Record.Price)

			view := PetView{
				UUID:  a.Record.UUID,
				Price: a.Record.Price,
			}
			if a.Pet != nil {
				view.PetLevel = a.Pet.Level
				view.Candied = a.Pet.Candied
			}

			return view
		})

		views[bucketKey] = PetBucketView{
			Auctions: petViews,
			AvgPrice: total / float64(len(bucket)),
		}
	}

	return &PetResult{
		Auctions:   views,
		OverallAvg: s.historicalAverage(entity.PetsItem),
	}, true
}

// Raw returns the unprojected bucket map for one item.
func (s *Service) Raw(itemName string) (store.Buckets, bool) {
	return s.current.Load().Buckets(itemName)
}

// AllAverages returns per-item historical bucket averages.
func (s *Service) AllAverages() map[string]any {
	return s.history.AllAverages()
}

func (s *Service) historicalAverage(itemName string) *float64 {
	avg, ok := s.history.Average(itemName)
	if !ok {
		return nil
	}

	return &avg
}

func newBucketView(bucket []entity.ParsedAuction) BucketView {
	var total float64
	views := lox.Map(bucket, func(a entity.ParsedAuction) AuctionView {
		total += float64(a.Record.Price)

		return AuctionView{
			UUID:  a.Record.UUID,
			Price: a.Record.Price,
		}
	})

	return BucketView{
		Auctions: views,
		AvgPrice: total / float64(len(bucket)),
	}
}

func attributeMatches(bucketKey, reqAttr string, level float64, onwards bool) bool {
	for _, segment := range value.ParseAttributeKey(bucketKey) {
		if segment.Name != reqAttr {
			continue
		}

		if onwards && segment.Level >= level {
			return true
		}
		if !onwards && segment.Level == level {
			return true
		}
	}

	return false
}
