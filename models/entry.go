package models

import (
	"time"

	"github.com/google/uuid"
)

type ConversionLogEntry struct {
	EntryID         uuid.UUID `json:"entryId"`
	Timestamp       time.Time `json:"timestamp"`
	ClientAgent     string    `json:"clientAgent"`
	FromCurrency    string    `json:"fromCurrency"`
	ToCurrency      string    `json:"toCurrency"`
	Amount          float64   `json:"amount"`
	ConvertedAmount float64   `json:"convertedAmount"`
	ResponseTimeMs  int64     `json:"responseTimeMs"`
}

type ConversionResponse struct {
	ConvertedAmount float64 `json:"convertedAmount"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
