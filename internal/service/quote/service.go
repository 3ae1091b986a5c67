package quote

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"quote-calc/internal/storage"
)

type QuoteStorage interface {
	GetRates(ctx context.Context) ([]storage.RateEntry, error)
	GetProject(ctx context.Context, id int64) (*storage.Project, error)
	GetModules(ctx context.Context, projectID int64) ([]storage.Module, error)
}

type QuoteService struct {
	storage QuoteStorage
}

func NewQuoteService(storage QuoteStorage) *QuoteService {
	return &QuoteService{storage: storage}
}

// CalculateProjectQuote prices a stored project. discounts holds per-role
// percentages for this request only; they are not saved anywhere.
func (s *QuoteService) CalculateProjectQuote(ctx context.Context, projectID int64, discounts map[string]float64) (Quote, error) {
	const op = "service.quote.CalculateProjectQuote"

	var (
		rates   []storage.RateEntry
		project *storage.Project
		modules []storage.Module
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rates, err = s.storage.GetRates(gCtx)
		if err != nil {
			return fmt.Errorf("rates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		project, err = s.storage.GetProject(gCtx, projectID)
		if err != nil {
			return fmt.Errorf("project: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		modules, err = s.storage.GetModules(gCtx, projectID)
		if err != nil {
			return fmt.Errorf("modules: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Quote{}, fmt.Errorf("%s: %w", op, err)
	}

	return Assemble(Input{
		Rates:              ApplyDiscounts(rates, discounts),
		Modules:            modules,
		DiscountPercentage: project.DiscountPercentage,
		OverlapDays:        OverlapFromSetting(project.OverlapDays),
	}), nil
}

// ApplyDiscounts returns a copy of the rate card with per-role discounts set.
func ApplyDiscounts(rates []storage.RateEntry, discounts map[string]float64) []storage.RateEntry {
	out := make([]storage.RateEntry, len(rates))
	copy(out, rates)

	if len(discounts) == 0 {
		return out
	}

	for i := range out {
		if d, ok := discounts[out[i].Role]; ok {
			out[i].Discount = d
		}
	}

	return out
}
