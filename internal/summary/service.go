package summary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/bmimportados/backoffice-backend/pkg/enums"
	pkgerrors "github.com/bmimportados/backoffice-backend/pkg/errors"
)

const (
	seriesDays        = 15
	recentQuotesLimit = 10
	topSKULimit       = 5

	dayFormat = "2006-01-02"
)

// Service computes the dashboard aggregation.
type Service interface {
	Summary(ctx context.Context) (*SummaryDTO, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// ServiceParams bundles the dependencies required to build a summary service.
// Now may be nil; time.Now is used then.
type ServiceParams struct {
	Repo Repository
	Now  func() time.Time
}

// NewService builds a summary service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("summary repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

// Summary runs the aggregate queries concurrently and assembles the
// dashboard payload. Any query failure fails the whole summary.
func (s *service) Summary(ctx context.Context) (*SummaryDTO, error) {
	today := startOfDay(s.now().UTC())
	windowStart := today.AddDate(0, 0, -(seriesDays - 1))

	var (
		totalProducts  int64
		activeProducts int64
		totalQuotes    int64
		byVariant      map[enums.Variant]int64
		perDay         []DayCount
		recent         []RecentQuote
		topSKUs        []SKUTotal
	)

	errs := make([]error, 7)
	var wg sync.WaitGroup
	run := func(slot int, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[slot] = fn()
		}()
	}

	run(0, func() (err error) {
		totalProducts, err = s.repo.CountProducts(ctx, false)
		return err
	})
	run(1, func() (err error) {
		activeProducts, err = s.repo.CountProducts(ctx, true)
		return err
	})
	run(2, func() (err error) {
		totalQuotes, err = s.repo.CountQuotes(ctx)
		return err
	})
	run(3, func() (err error) {
		byVariant, err = s.repo.CountQuotesByVariant(ctx)
		return err
	})
	run(4, func() (err error) {
		perDay, err = s.repo.QuotesPerDay(ctx, windowStart)
		return err
	})
	run(5, func() (err error) {
		recent, err = s.repo.RecentQuotes(ctx, recentQuotesLimit)
		return err
	})
	run(6, func() (err error) {
		topSKUs, err = s.repo.TopSKUs(ctx, topSKULimit)
		return err
	})
	wg.Wait()

	if err := multierr.Combine(errs...); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build summary")
	}

	variantCounts := map[enums.Variant]int64{
		enums.VariantImported: 0,
		enums.VariantReady:    0,
	}
	for variant, count := range byVariant {
		variantCounts[variant] = count
	}

	if recent == nil {
		recent = []RecentQuote{}
	}
	if topSKUs == nil {
		topSKUs = []SKUTotal{}
	}

	return &SummaryDTO{
		Totals: TotalsDTO{
			Products:       totalProducts,
			ActiveProducts: activeProducts,
			Quotes:         totalQuotes,
		},
		QuotesByVariant: variantCounts,
		DailySeries:     denseSeries(windowStart, perDay),
		RecentQuotes:    recent,
		TopSKUs:         topSKUs,
	}, nil
}

// denseSeries zero-fills every day of the window before applying the
// aggregated counts, so days without quotes still appear.
func denseSeries(windowStart time.Time, rows []DayCount) []DayBucketDTO {
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		key := row.Day
		if len(key) > len(dayFormat) {
			key = key[:len(dayFormat)]
		}
		counts[key] += row.Count
	}

	series := make([]DayBucketDTO, 0, seriesDays)
	for i := 0; i < seriesDays; i++ {
		date := windowStart.AddDate(0, 0, i).Format(dayFormat)
		series = append(series, DayBucketDTO{Date: date, Count: counts[date]})
	}
	return series
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
