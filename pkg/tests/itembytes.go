package tests

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"

	"github.com/Tnze/go-mc/nbt"
)

type itemTag struct {
	ExtraAttributes extraAttributes `nbt:"ExtraAttributes"`
}

type extraAttributes struct {
	ID         string           `nbt:"id"`
	PetInfo    string           `nbt:"petInfo"`
	Attributes map[string]int32 `nbt:"attributes"`
}

type itemPayload struct {
	Items []struct {
		Tag itemTag `nbt:"tag"`
	} `nbt:"i"`
}

// ItemBytes builds the base64 NBT payload an upstream auction entry
// carries, optionally gzipped like the live feed.
func ItemBytes(id string, attrs map[string]int32, petInfo string, gzipped bool) (string, error) {
	var payload itemPayload

	payload.Items = make([]struct {
		Tag itemTag `nbt:"tag"`
	}, 1)
	payload.Items[0].Tag = itemTag{
		ExtraAttributes: extraAttributes{
			ID:         id,
			PetInfo:    petInfo,
			Attributes: attrs,
		},
	}

	raw, err := nbt.Marshal(payload)
	if err != nil {
		return "", err
	}

	if gzipped {
		var buf bytes.Buffer

		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return "", err
		}
		if err := zw.Close(); err != nil {
			return "", err
		}

		raw = buf.Bytes()
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}
