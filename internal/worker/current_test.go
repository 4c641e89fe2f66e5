package worker_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ah_market/internal/domain/entity"
	"ah_market/internal/infrastructure/hypixel"
	"ah_market/internal/store"
	"ah_market/internal/worker"
	"ah_market/pkg/tests"
)

type recordingInspector struct {
	seen []entity.ParsedAuction
}

func (r *recordingInspector) Inspect(_ context.Context, a entity.ParsedAuction) {
	r.seen = append(r.seen, a)
}

func binAuction(t *testing.T, uuid, id string, attrs map[string]int32, petInfo string, price int64) hypixel.Auction {
	t.Helper()

	itemBytes, err := tests.ItemBytes(id, attrs, petInfo, true)
	require.NoError(t, err)

	return hypixel.Auction{
		UUID:        uuid,
		ItemBytes:   itemBytes,
		Bin:         true,
		Price:       price,
		StartingBid: price,
	}
}

func writePage(t *testing.T, w http.ResponseWriter, page, totalPages int, auctions []hypixel.Auction) {
	t.Helper()

	require.NoError(t, json.NewEncoder(w).Encode(hypixel.AuctionsPage{
		Success:    true,
		Page:       page,
		TotalPages: totalPages,
		Auctions:   auctions,
	}))
}

func TestRefreshTwoPages(t *testing.T) {
	rq := require.New(t)

	pageOne := []hypixel.Auction{
		binAuction(t, "a-1", "ASPECT_OF_THE_END", nil, "", 100),
	}
	pageTwo := []hypixel.Auction{
		binAuction(t, "a-2", "PET", nil, `{"type":"WOLF","tier":"RARE","exp":50000,"candyUsed":0}`, 5_000_000),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			writePage(t, w, 1, 2, pageOne)
		case "2":
			writePage(t, w, 2, 2, pageTwo)
		default:
			http.Error(w, "no such page", http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := hypixel.NewClient(server.URL, time.Second)
	inspector := &recordingInspector{}
	refresher := worker.NewCurrentRefresher(client, store.NewPublished()).
		WithInspector(inspector).
		WithPageWorkers(2)

	rq.NoError(refresher.Refresh(context.Background()))

	snapshot := refresher.Published().Load()

	buckets, ok := snapshot.Buckets("ASPECT_OF_THE_END")
	rq.True(ok)
	rq.Len(buckets["default"], 1)
	rq.Equal(int64(100), buckets["default"][0].Record.Price)

	buckets, ok = snapshot.Buckets(entity.PetsItem)
	rq.True(ok)
	rq.Len(buckets["RARE_WOLF;1-80"], 1)

	pet := buckets["RARE_WOLF;1-80"][0].Pet
	rq.NotNil(pet)
	rq.Equal(30, pet.Level)

	// Every merged auction passed through the inspector exactly once.
	rq.Len(inspector.seen, 2)
}

func TestRefreshPageOneFailureKeepsPreviousSnapshot(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer server.Close()

	published := store.NewPublished()

	previous := store.New()
	previous.Add(entity.ParsedAuction{
		ItemName: "HYPERION",
		Record:   entity.AuctionRecord{Price: 100, UUID: "a-0"},
	}, false)
	published.Swap(previous)

	client := hypixel.NewClient(server.URL, time.Second)
	refresher := worker.NewCurrentRefresher(client, published)

	rq.Error(refresher.Refresh(context.Background()))
	rq.Same(previous, published.Load())
}

func TestRefreshFailedInnerPageLosesOnlyThatPage(t *testing.T) {
	rq := require.New(t)

	pageOne := []hypixel.Auction{
		binAuction(t, "a-1", "ASPECT_OF_THE_END", nil, "", 100),
	}
	pageThree := []hypixel.Auction{
		binAuction(t, "a-3", "HYPERION", nil, "", 900_000_000),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			writePage(t, w, 1, 3, pageOne)
		case "2":
			http.Error(w, "flaky page", http.StatusInternalServerError)
		case "3":
			writePage(t, w, 3, 3, pageThree)
		default:
			http.Error(w, "no such page", http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := hypixel.NewClient(server.URL, time.Second)
	refresher := worker.NewCurrentRefresher(client, store.NewPublished())

	rq.NoError(refresher.Refresh(context.Background()))

	snapshot := refresher.Published().Load()
	rq.ElementsMatch([]string{"ASPECT_OF_THE_END", "HYPERION"}, snapshot.Items())
}

func TestRefreshBoundedWorkers(t *testing.T) {
	rq := require.New(t)

	const totalPages = 20

	var inFlight, peak atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)

			for {
				observed := peak.Load()
				if current <= observed || peak.CompareAndSwap(observed, current) {
					break
				}
			}

			time.Sleep(20 * time.Millisecond)
		}

		writePage(t, w, 1, totalPages, []hypixel.Auction{})
	}))
	defer server.Close()

	client := hypixel.NewClient(server.URL, time.Second)
	refresher := worker.NewCurrentRefresher(client, store.NewPublished()).WithPageWorkers(3)

	rq.NoError(refresher.Refresh(context.Background()))
	rq.LessOrEqual(peak.Load(), int64(3), fmt.Sprintf("peak concurrent page fetches: %d", peak.Load()))
}
