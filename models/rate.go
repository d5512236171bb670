package models

import "time"

// RateSnapshot is one fetch of the provider's rate table. Rates are quoted
// against the provider's fixed base currency and are only valid for the
// request that fetched them.
type RateSnapshot struct {
	Timestamp time.Time          `json:"timestamp"`
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
}
