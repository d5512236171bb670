package converterservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AlexZav1327/converter/internal/exchange"
	"github.com/AlexZav1327/converter/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrMissingParams   = errors.New("missing conversion parameters")
	ErrInvalidAmount   = errors.New("amount is not a valid number")
	ErrUnknownCurrency = errors.New("currency codes are not valid")
)

type Service struct {
	rates   RateClient
	pg      LogStore
	log     *logrus.Entry
	metrics *metrics
}

type RateClient interface {
	FetchRates(ctx context.Context) (models.RateSnapshot, error)
}

type LogStore interface {
	AppendEntry(ctx context.Context, entry models.ConversionLogEntry) error
}

func New(rates RateClient, pg LogStore, log *logrus.Logger) *Service {
	return &Service{
		rates:   rates,
		pg:      pg,
		log:     log.WithField("module", "service"),
		metrics: newMetrics(),
	}
}

// Convert runs one conversion end to end: validate, fetch a rate snapshot,
// compute, log. Logging is best effort: a failed append is warned about and
// counted, and the converted amount is still returned to the caller.
func (s *Service) Convert(ctx context.Context, from, to, amount, clientAgent string) (float64, error) {
	if from == "" || to == "" || amount == "" {
		return 0, ErrMissingParams
	}

	parsedAmount, err := strconv.ParseFloat(amount, 64)
	if err != nil || !(parsedAmount >= 0) {
		return 0, ErrInvalidAmount
	}

	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	started := time.Now()

	snapshot, err := s.rates.FetchRates(ctx)
	if err != nil {
		return 0, fmt.Errorf("rates.FetchRates: %w", err)
	}

	baseRate, baseKnown := snapshot.Rates[from]
	targetRate, targetKnown := snapshot.Rates[to]

	if !baseKnown || !targetKnown {
		return 0, ErrUnknownCurrency
	}

	convertedAmount, err := exchange.Convert(parsedAmount, baseRate, targetRate)
	if err != nil {
		return 0, fmt.Errorf("exchange.Convert: %w", err)
	}

	elapsed := time.Since(started).Milliseconds()

	entry := models.ConversionLogEntry{
		ClientAgent:     clientAgent,
		FromCurrency:    from,
		ToCurrency:      to,
		Amount:          parsedAmount,
		ConvertedAmount: convertedAmount,
		ResponseTimeMs:  elapsed,
	}

	err = s.pg.AppendEntry(ctx, entry)
	if err != nil {
		s.metrics.persistenceFailures.Inc()
		s.log.Warningf("pg.AppendEntry: %s", err)
	}

	s.metrics.conversions.Inc()

	return convertedAmount, nil
}
