package domain

import "time"

// ConversionEvent journal record of one conversion attempt.
// String fields avoid precision issues when rendered in UI layers.
type ConversionEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"ts"`
	AssetID   string    `json:"asset_id"`
	Fiat      string    `json:"fiat"`
	Amount    string    `json:"amount"`
	UnitPrice string    `json:"unit_price,omitempty"`
	Result    string    `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// ConversionEventRecord bundles an event with the log index it originated from.
type ConversionEventRecord struct {
	Index uint64
	Event ConversionEvent
}
