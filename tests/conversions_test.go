package tests

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AlexZav1327/converter/internal/postgres"
	"golang.org/x/sync/errgroup"
)

func (s *IntegrationTestSuite) TestConvert() {
	s.Run("convert normal case", func() {
		ctx := context.Background()

		code, body := s.convert(ctx, "USD", "RUB", "100")

		s.Require().Equal(http.StatusOK, code)
		s.Require().InDelta(100*(rubRate/usdRate), s.convertedAmount(body), 1e-9)

		count, err := s.pg.CountEntries(ctx)
		s.Require().NoError(err)
		s.Require().EqualValues(1, count)
	})

	s.Run("convert currency to itself", func() {
		ctx := context.Background()

		code, body := s.convert(ctx, "USD", "USD", "250")

		s.Require().Equal(http.StatusOK, code)
		s.Require().InDelta(250, s.convertedAmount(body), 1e-9)
	})

	s.Run("lowercase codes are normalized", func() {
		ctx := context.Background()

		code, _ := s.convert(ctx, "usd", "eur", "10")
		s.Require().Equal(http.StatusOK, code)

		entries, err := s.pg.ListEntries(ctx)
		s.Require().NoError(err)
		s.Require().NotEmpty(entries)

		last := entries[len(entries)-1]
		s.Require().Equal("USD", last.FromCurrency)
		s.Require().Equal("EUR", last.ToCurrency)
	})

	s.Run("missing parameter", func() {
		ctx := context.Background()

		before, err := s.pg.CountEntries(ctx)
		s.Require().NoError(err)

		code, body := s.convert(ctx, "USD", "", "100")

		s.Require().Equal(http.StatusBadRequest, code)
		s.Require().JSONEq(`{"error": "Missing query parameters: 'from', 'to', 'amount'"}`, body)

		after, err := s.pg.CountEntries(ctx)
		s.Require().NoError(err)
		s.Require().Equal(before, after)
	})

	s.Run("invalid amount", func() {
		ctx := context.Background()

		before, err := s.pg.CountEntries(ctx)
		s.Require().NoError(err)

		code, body := s.convert(ctx, "USD", "EUR", "abc")

		s.Require().Equal(http.StatusBadRequest, code)
		s.Require().JSONEq(`{"error": "Invalid amount value"}`, body)

		after, err := s.pg.CountEntries(ctx)
		s.Require().NoError(err)
		s.Require().Equal(before, after)
	})

	s.Run("unknown currency code", func() {
		ctx := context.Background()

		before, err := s.pg.CountEntries(ctx)
		s.Require().NoError(err)

		code, body := s.convert(ctx, "XYZ", "EUR", "100")

		s.Require().Equal(http.StatusBadRequest, code)
		s.Require().JSONEq(`{"error": "Invalid currency codes"}`, body)

		after, err := s.pg.CountEntries(ctx)
		s.Require().NoError(err)
		s.Require().Equal(before, after)
	})
}

func (s *IntegrationTestSuite) TestAggregates() {
	s.Run("count and average over recorded entries", func() {
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			code, _ := s.convert(ctx, "EUR", "USD", fmt.Sprintf("%d", (i+1)*10))
			s.Require().Equal(http.StatusOK, code)
		}

		count, err := s.pg.CountEntries(ctx)
		s.Require().NoError(err)
		s.Require().EqualValues(3, count)

		entries, err := s.pg.ListEntries(ctx)
		s.Require().NoError(err)
		s.Require().Len(entries, 3)

		var sum int64
		for _, entry := range entries {
			sum += entry.ResponseTimeMs
		}

		average, err := s.pg.AverageResponseTime(ctx)
		s.Require().NoError(err)
		s.Require().InDelta(float64(sum)/3, average, 1e-9)
	})

	s.Run("most common source currency", func() {
		ctx := context.Background()

		err := s.pg.TruncateTable(ctx, "conversion_log")
		s.Require().NoError(err)

		_, _ = s.convert(ctx, "USD", "EUR", "1")
		_, _ = s.convert(ctx, "USD", "RUB", "1")
		_, _ = s.convert(ctx, "EUR", "USD", "1")

		mostCommon, err := s.pg.MostCommonCurrency(ctx, "fromCurrency")
		s.Require().NoError(err)
		s.Require().Equal("USD", mostCommon)
	})

	s.Run("empty store sentinels", func() {
		ctx := context.Background()

		err := s.pg.TruncateTable(ctx, "conversion_log")
		s.Require().NoError(err)

		count, err := s.pg.CountEntries(ctx)
		s.Require().NoError(err)
		s.Require().Zero(count)

		average, err := s.pg.AverageResponseTime(ctx)
		s.Require().NoError(err)
		s.Require().Zero(average)

		mostCommon, err := s.pg.MostCommonCurrency(ctx, "fromCurrency")
		s.Require().NoError(err)
		s.Require().Equal(postgres.EmptyStoreSentinel, mostCommon)
	})
}

func (s *IntegrationTestSuite) TestConcurrentConversions() {
	const (
		requests       = 20
		dashboardReads = 5
	)

	ctx := context.Background()

	var g errgroup.Group

	for i := 0; i < requests; i++ {
		g.Go(func() error {
			code, _ := s.convert(ctx, "EUR", "USD", "100")
			if code != http.StatusOK {
				return fmt.Errorf("unexpected status %d", code)
			}

			return nil
		})
	}

	// aggregate reads may observe any count between 0 and 20, but must
	// never fail while appends are in flight
	for i := 0; i < dashboardReads; i++ {
		g.Go(func() error {
			code, _ := s.getDashboard(ctx)
			if code != http.StatusOK {
				return fmt.Errorf("unexpected dashboard status %d", code)
			}

			return nil
		})
	}

	err := g.Wait()
	s.Require().NoError(err)

	// no entry is ever lost: one append per successful conversion
	count, err := s.pg.CountEntries(ctx)
	s.Require().NoError(err)
	s.Require().EqualValues(requests, count)
}
