package entity

// PetsItem is the synthetic item identity every pet auction is stored
// under, regardless of pet type.
const PetsItem = "PETS"

// AuctionRecord is the priced core of an auction. Price is in coins,
// UUID is the upstream auction identifier. Immutable once created.
type AuctionRecord struct {
	Price int64  `json:"price"`
	UUID  string `json:"uuid"`
}

// ParsedAuction is one decoded BIN auction. AttrKey is empty for items
// without enchant-like attributes; for pets it holds the pet bucket key
// and Pet carries the decoded metadata.
type ParsedAuction struct {
	ItemName string        `json:"itemName"`
	Record   AuctionRecord `json:"auctionRecord"`
	AttrKey  string        `json:"attrKey,omitempty"`
	Pet      *PetInfo      `json:"petInfo,omitempty"`
}
