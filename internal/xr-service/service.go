package xrservice

import (
	"time"

	"github.com/AlexZav1327/converter/models"
	"github.com/sirupsen/logrus"
)

const (
	base             = "EUR"
	eurToEur float64 = 1
	eurToUsd float64 = 1.07
	eurToRub float64 = 99.35
	eurToGbp float64 = 0.86
	eurToJpy float64 = 161.24
	eurToChf float64 = 0.94
)

type Rate struct {
	log *logrus.Entry
}

func New(log *logrus.Logger) *Rate {
	return &Rate{
		log: log.WithField("module", "xr_service"),
	}
}

// GetSnapshot serves a static rate table in the provider's wire shape. Good
// enough for local runs and the integration suite; the numbers never change.
func (r *Rate) GetSnapshot() models.RateSnapshot {
	return models.RateSnapshot{
		Timestamp: time.Now().UTC(),
		Base:      base,
		Rates: map[string]float64{
			"EUR": eurToEur,
			"USD": eurToUsd,
			"RUB": eurToRub,
			"GBP": eurToGbp,
			"JPY": eurToJpy,
			"CHF": eurToChf,
		},
	}
}
