// Package decode turns a raw auction entry's base64 NBT item payload
// into a ParsedAuction. Decoding is pure and per-auction: every failure
// path returns no record so callers skip and continue.
package decode

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/Tnze/go-mc/nbt"
	jsoniter "github.com/json-iterator/go"

	"ah_market/internal/domain/entity"
	"ah_market/internal/domain/service/pets"
	"ah_market/internal/domain/value"
	"ah_market/internal/infrastructure/hypixel"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Upstream marks bugged/ended listings with this sentinel BIN price.
const buggedPriceSentinel = 888

// Item payloads hold a single-element item list; the identity and the
// auction-relevant attributes live under tag.ExtraAttributes.
type itemPayload struct {
	Items []struct {
		Tag struct {
			ExtraAttributes extraAttributes `nbt:"ExtraAttributes"`
		} `nbt:"tag"`
	} `nbt:"i"`
}

type extraAttributes struct {
	ID         string         `nbt:"id"`
	PetInfo    string         `nbt:"petInfo"`
	Attributes map[string]any `nbt:"attributes"`
}

type petInfoDoc struct {
	Type      string  `json:"type"`
	Tier      string  `json:"tier"`
	Exp       float64 `json:"exp"`
	CandyUsed float64 `json:"candyUsed"`
}

// ParseAuction decodes one raw auction entry. Non-BIN auctions return
// (nil, nil) and are never ingested; malformed payloads return an error.
func ParseAuction(auction hypixel.Auction) (*entity.ParsedAuction, error) {
	if !auction.Bin {
		return nil, nil
	}

	extra, err := decodeExtraAttributes(auction.ItemBytes)
	if err != nil {
		return nil, fmt.Errorf("decode item payload: %w", err)
	}

	record := entity.AuctionRecord{
		Price: selectPrice(auction),
		UUID:  auction.UUID,
	}

	if extra.PetInfo != "" {
		return parsePetAuction(record, extra.PetInfo)
	}

	return &entity.ParsedAuction{
		ItemName: extra.ID,
		Record:   record,
		AttrKey:  value.BuildAttributeKey(extra.Attributes),
	}, nil
}

// selectPrice prefers the BIN price unless it is non-positive or the
// bugged-listing sentinel, in which case the starting bid applies.
func selectPrice(auction hypixel.Auction) int64 {
	if auction.Price > 0 && auction.Price != buggedPriceSentinel {
		return auction.Price
	}

	return auction.StartingBid
}

func parsePetAuction(record entity.AuctionRecord, rawPetInfo string) (*entity.ParsedAuction, error) {
	var doc petInfoDoc
	if err := json.Unmarshal([]byte(rawPetInfo), &doc); err != nil {
		return nil, fmt.Errorf("parse petInfo: %w", err)
	}

	pet := &entity.PetInfo{
		Tier:      doc.Tier,
		Type:      doc.Type,
		Exp:       doc.Exp,
		CandyUsed: doc.CandyUsed,
		Level:     pets.Level(doc.Tier, doc.Exp),
		Candied:   doc.CandyUsed > 0,
	}

	return &entity.ParsedAuction{
		ItemName: entity.PetsItem,
		Record:   record,
		AttrKey:  pets.Bucket(doc.Tier, doc.Type, doc.Exp),
		Pet:      pet,
	}, nil
}

func decodeExtraAttributes(itemBytes string) (extraAttributes, error) {
	raw, err := base64.StdEncoding.DecodeString(itemBytes)
	if err != nil {
		return extraAttributes{}, fmt.Errorf("base64.Decode: %w", err)
	}

	raw, err = maybeGunzip(raw)
	if err != nil {
		return extraAttributes{}, fmt.Errorf("gunzip: %w", err)
	}

	var payload itemPayload
	if err := nbt.Unmarshal(raw, &payload); err != nil {
		return extraAttributes{}, fmt.Errorf("nbt.Unmarshal: %w", err)
	}

	if len(payload.Items) == 0 {
		return extraAttributes{}, fmt.Errorf("item payload holds no items")
	}

	return payload.Items[0].Tag.ExtraAttributes, nil
}

func maybeGunzip(raw []byte) ([]byte, error) {
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		return raw, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
