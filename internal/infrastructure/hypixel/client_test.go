package hypixel_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ah_market/internal/infrastructure/hypixel"
)

func TestAuctionsPage(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/skyblock/auctions", r.URL.Path)
		rq.Equal("2", r.URL.Query().Get("page"))

		_, _ = w.Write([]byte(`{
			"success": true,
			"page": 2,
			"totalPages": 3,
			"auctions": [{"uuid": "a-1", "bin": true, "price": 100, "starting_bid": 50}]
		}`))
	}))
	defer server.Close()

	client := hypixel.NewClient(server.URL, time.Second)

	page, err := client.AuctionsPage(context.Background(), 2)
	rq.NoError(err)
	rq.Equal(3, page.TotalPages)
	rq.Len(page.Auctions, 1)
	rq.Equal("a-1", page.Auctions[0].UUID)
	rq.True(page.Auctions[0].Bin)
}

func TestAuctionsPageMissingAuctionsKey(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "page": 1, "totalPages": 1}`))
	}))
	defer server.Close()

	client := hypixel.NewClient(server.URL, time.Second)

	_, err := client.AuctionsPage(context.Background(), 1)
	rq.Error(err)
	rq.Contains(err.Error(), "lacks auctions")
}

func TestAuctionsPageUnexpectedStatus(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := hypixel.NewClient(server.URL, time.Second)

	_, err := client.AuctionsPage(context.Background(), 1)
	rq.Error(err)
	rq.Contains(err.Error(), "502")
}

func TestEndedAuctions(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/skyblock/auctions_ended", r.URL.Path)

		_, _ = w.Write([]byte(`{"success": true, "auctions": []}`))
	}))
	defer server.Close()

	client := hypixel.NewClient(server.URL, time.Second)

	ended, err := client.EndedAuctions(context.Background())
	rq.NoError(err)
	rq.Empty(ended.Auctions)
}
