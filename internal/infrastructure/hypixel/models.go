package hypixel

// Auction is one raw entry of the upstream listing feed. ItemBytes is a
// base64-encoded (usually gzipped) NBT item payload.
type Auction struct {
	UUID        string `json:"uuid"`
	ItemBytes   string `json:"item_bytes"`
	Bin         bool   `json:"bin"`
	Price       int64  `json:"price"`
	StartingBid int64  `json:"starting_bid"`
}

// AuctionsPage is one page of the paginated current-auctions listing.
type AuctionsPage struct {
	Success    bool      `json:"success"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	Auctions   []Auction `json:"auctions"`
}

// EndedAuctions is the recently-ended listing (single page).
type EndedAuctions struct {
	Success  bool      `json:"success"`
	Auctions []Auction `json:"auctions"`
}
