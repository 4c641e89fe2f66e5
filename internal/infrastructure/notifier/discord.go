// Package notifier delivers flip events to a Discord webhook. Delivery
// is fire-and-forget: failures are logged, never retried, and never
// block the ingestion pipeline.
package notifier

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"ah_market/internal/domain/entity"
	"ah_market/pkg/contextx"
	"ah_market/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const embedColorGold = 0xFFAA00

type DiscordWebhook struct {
	webhookURL string
	httpClient *http.Client
}

func NewDiscordWebhook(webhookURL string) *DiscordWebhook {
	return &DiscordWebhook{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// Run consumes flips until the channel closes or the context ends.
func (d *DiscordWebhook) Run(ctx context.Context, flips <-chan entity.Flip) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f, ok := <-flips:
			if !ok {
				return nil
			}

			if err := d.SendFlip(ctx, f); err != nil {
				logger(ctx).Error("failed to send flip",
					logx.FieldAuctionUUID, f.UUID,
					logx.FieldError, err,
				)
			}
		}
	}
}

// SendFlip posts one flip embed to the webhook.
func (d *DiscordWebhook) SendFlip(ctx context.Context, f entity.Flip) error {
	payload := webhookPayload{
		Embeds: []embed{{
			Title:       fmt.Sprintf("Flip found: %s", f.ItemName),
			Description: fmt.Sprintf("Listed at %s, baseline %s.\nView with `/viewauction %s`", FormatCoins(float64(f.Price)), FormatCoins(f.Baseline), f.UUID),
			Color:       embedColorGold,
			Fields: []embedField{
				{Name: "Profit", Value: FormatCoins(f.Profit), Inline: true},
				{Name: "Median", Value: FormatCoins(f.Median), Inline: true},
				{Name: "IQR", Value: FormatCoins(f.IQR), Inline: true},
			},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
